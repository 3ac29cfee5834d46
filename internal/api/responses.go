package api

import (
	"github.com/grievancesense/grievancesense/internal/analyzer"
	"github.com/grievancesense/grievancesense/internal/domain"
	"github.com/grievancesense/grievancesense/internal/store"
)

// AnalyzeRequest carries one complaint for analysis or submission.
type AnalyzeRequest struct {
	ComplaintText string `json:"complaint_text" binding:"required"`
	Area          string `json:"area"`
}

// AnalyzeResponse returns the annotation for a single complaint.
type AnalyzeResponse struct {
	Result *domain.ComplaintAnnotation `json:"result"`
}

// BatchAnalyzeRequest carries many complaints for parallel analysis.
type BatchAnalyzeRequest struct {
	Complaints []analyzer.BatchRequest `json:"complaints" binding:"required,min=1,max=200"`
}

// BatchItemResponse is the outcome for one complaint in a batch.
type BatchItemResponse struct {
	Result *domain.ComplaintAnnotation `json:"result,omitempty"`
	Error  string                      `json:"error,omitempty"`
}

// BatchAnalyzeResponse summarizes a batch analysis.
type BatchAnalyzeResponse struct {
	Results []BatchItemResponse `json:"results"`
	Total   int                 `json:"total"`
	Success int                 `json:"success"`
	Failed  int                 `json:"failed"`
}

// SubmissionsResponse lists all stored submissions.
type SubmissionsResponse struct {
	Submissions []domain.ComplaintAnnotation `json:"submissions"`
	Total       int                          `json:"total"`
}

// DashboardResponse is the aggregated official dashboard view.
type DashboardResponse struct {
	Summary *store.Summary `json:"summary"`
}

// ErrorResponse carries a human-readable error message.
type ErrorResponse struct {
	Error string `json:"error"`
}
