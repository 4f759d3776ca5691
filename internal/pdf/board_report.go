package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Generator renders board reports (easy to mock in tests).
type Generator interface {
	BoardReport(data BoardReportData) ([]byte, error)
}

type StageRow struct {
	Name      string
	TaskCount int
}

type BoardReportData struct {
	GeneratedAt time.Time
	Stages      []StageRow
	TotalTasks  int
	Overdue     int
}

type ReportGenerator struct{}

func NewReportGenerator() *ReportGenerator {
	return &ReportGenerator{}
}

func (g *ReportGenerator) BoardReport(data BoardReportData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Task Board Report", false)
	pdf.SetAuthor("TaskFlow", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "TASK BOARD REPORT", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, data.GeneratedAt.Format("02.01.2006 15:04"), "", 1, "C", false, 0, "")
	g.hr(pdf)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(120, 8, "Stage", "B", 0, "L", false, 0, "")
	pdf.CellFormat(0, 8, "Tasks", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	for _, row := range data.Stages {
		pdf.CellFormat(120, 8, row.Name, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 8, fmt.Sprintf("%d", row.TaskCount), "", 1, "R", false, 0, "")
	}

	g.hr(pdf)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(120, 8, "Total", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("%d", data.TotalTasks), "", 1, "R", false, 0, "")
	pdf.CellFormat(120, 8, "Overdue", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("%d", data.Overdue), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *ReportGenerator) hr(pdf *gofpdf.Fpdf) {
	pdf.Ln(2)
	x, y := pdf.GetXY()
	pageW, _ := pdf.GetPageSize()
	pdf.Line(x, y, pageW-20, y)
	pdf.Ln(4)
}
