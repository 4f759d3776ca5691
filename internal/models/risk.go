package models

type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// RiskSignals echoes the inputs a risk score was computed from, so callers
// can reconstruct why a score was produced.
type RiskSignals struct {
	DaysToDue         *int         `json:"daysToDue"`
	Priority          TaskPriority `json:"priority"`
	Status            TaskStatus   `json:"status"`
	DaysSinceActivity int          `json:"daysSinceActivity"`
	TotalSubtasks     int          `json:"totalSubtasks"`
	CompletedSubtasks int          `json:"completedSubtasks"`
}

type RiskResult struct {
	Score   int         `json:"score"`
	Level   RiskLevel   `json:"level"`
	Signals RiskSignals `json:"signals"`
}
