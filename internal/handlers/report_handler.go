package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/pdf"
	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/services"
)

type ReportHandler struct {
	service   *services.ReportService
	generator pdf.Generator
}

func NewReportHandler(service *services.ReportService, generator pdf.Generator) *ReportHandler {
	return &ReportHandler{service: service, generator: generator}
}

// GET /reports/board
func (h *ReportHandler) BoardSummary(c *gin.Context) {
	summary, err := h.service.BoardSummary(c.Request.Context())
	if err != nil {
		respondErr(c, "report.board", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "report": summary})
}

// GET /reports/board/pdf
func (h *ReportHandler) BoardPDF(c *gin.Context) {
	summary, err := h.service.BoardSummary(c.Request.Context())
	if err != nil {
		respondErr(c, "report.pdf", err)
		return
	}

	data := pdf.BoardReportData{
		GeneratedAt: summary.GeneratedAt,
		TotalTasks:  summary.TotalTasks,
		Overdue:     summary.Overdue,
	}
	for _, s := range summary.Stages {
		data.Stages = append(data.Stages, pdf.StageRow{Name: s.Stage.Name, TaskCount: s.TaskCount})
	}

	out, err := h.generator.BoardReport(data)
	if err != nil {
		respondErr(c, "report.pdf", err)
		return
	}

	filename := fmt.Sprintf("board-report-%s.pdf", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", out)
}
