// Package api exposes the grievance service over HTTP.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/grievancesense/grievancesense/internal/analyzer"
	"github.com/grievancesense/grievancesense/internal/domain"
	"github.com/grievancesense/grievancesense/internal/logging"
	"github.com/grievancesense/grievancesense/internal/store"
	"github.com/grievancesense/grievancesense/internal/telemetry"
)

// Handler handles HTTP requests for the grievance API.
type Handler struct {
	analyzer  *analyzer.Analyzer
	batch     *analyzer.BatchAnalyzer
	limiter   *analyzer.RateLimiter
	store     store.SubmissionStore
	telemetry *telemetry.Provider
	logger    logging.Logger
}

// NewHandler creates a new API handler.
func NewHandler(
	a *analyzer.Analyzer,
	batch *analyzer.BatchAnalyzer,
	limiter *analyzer.RateLimiter,
	submissions store.SubmissionStore,
	telemetryProvider *telemetry.Provider,
	logger logging.Logger,
) *Handler {
	return &Handler{
		analyzer:  a,
		batch:     batch,
		limiter:   limiter,
		store:     submissions,
		telemetry: telemetryProvider,
		logger:    logger,
	}
}

// Analyze handles POST /api/v1/complaints/analyze.
// It returns the annotation without persisting anything.
func (h *Handler) Analyze(c *gin.Context) {
	req, ok := h.bindComplaint(c)
	if !ok {
		return
	}

	annotation, err := h.analyzer.Analyze(c.Request.Context(), req.ComplaintText, req.Area)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, AnalyzeResponse{Result: annotation})
}

// Submit handles POST /api/v1/complaints.
// It analyzes the complaint and appends the annotation to the store.
func (h *Handler) Submit(c *gin.Context) {
	req, ok := h.bindComplaint(c)
	if !ok {
		return
	}

	annotation, err := h.analyzer.Analyze(c.Request.Context(), req.ComplaintText, req.Area)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.store.Append(c.Request.Context(), annotation); err != nil {
		if h.telemetry != nil {
			h.telemetry.Metrics.SubmissionsFailed.Inc()
		}
		h.logger.Error("failed to append submission", logging.Err(err))
		h.respondError(c, err)
		return
	}
	if h.telemetry != nil {
		h.telemetry.Metrics.SubmissionsTotal.Inc()
	}

	h.logger.Info("complaint submitted",
		logging.String("category", annotation.Category),
		logging.String("urgency", string(annotation.Urgency)),
		logging.String("area", annotation.Area),
	)

	c.JSON(http.StatusCreated, AnalyzeResponse{Result: annotation})
}

// AnalyzeBatch handles POST /api/v1/complaints/batch.
func (h *Handler) AnalyzeBatch(c *gin.Context) {
	if !h.limiter.Allow() {
		c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: "too many batch requests, slow down"})
		return
	}

	var req BatchAnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid batch request", logging.Err(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "request must carry between 1 and 200 complaints"})
		return
	}

	results := h.batch.Analyze(c.Request.Context(), req.Complaints)

	resp := BatchAnalyzeResponse{
		Results: make([]BatchItemResponse, len(results)),
		Total:   len(results),
	}
	for i, r := range results {
		if r.Err != nil {
			resp.Results[i] = BatchItemResponse{Error: userMessage(r.Err)}
			resp.Failed++
			continue
		}
		resp.Results[i] = BatchItemResponse{Result: r.Annotation}
		resp.Success++
	}

	c.JSON(http.StatusOK, resp)
}

// ListSubmissions handles GET /api/v1/complaints.
func (h *Handler) ListSubmissions(c *gin.Context) {
	submissions, err := h.store.ReadAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SubmissionsResponse{Submissions: submissions, Total: len(submissions)})
}

// Dashboard handles GET /api/v1/dashboard.
func (h *Handler) Dashboard(c *gin.Context) {
	submissions, err := h.store.ReadAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, DashboardResponse{Summary: store.Summarize(submissions)})
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ReadyCheck handles GET /ready. The service is ready once the artifact is
// loaded, which construction guarantees.
func (h *Handler) ReadyCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ready", "categories": h.analyzer.Categories()})
}

// bindComplaint parses and validates the single-complaint request body.
// Blank text is rejected here, before the core is invoked.
func (h *Handler) bindComplaint(c *gin.Context) (AnalyzeRequest, bool) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid complaint request", logging.Err(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "please enter a complaint"})
		return req, false
	}
	return req, true
}

// respondError maps each error kind to a distinct status and message.
// Raw error chains are logged, never presented as the only feedback.
func (h *Handler) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrArtifactLoad):
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", logging.Err(err))
	}
	c.JSON(status, ErrorResponse{Error: userMessage(err)})
}

// userMessage picks the human-readable message for an error kind.
func userMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return "please enter a complaint"
	case errors.Is(err, domain.ErrInvalidStore):
		return "the submission log is malformed; contact the administrator"
	case errors.Is(err, domain.ErrArtifactLoad):
		return "the classifier model is unavailable; try again later"
	case errors.Is(err, domain.ErrPersist):
		return "the submission could not be saved"
	case errors.Is(err, domain.ErrDataLoad):
		return "the training data could not be read"
	default:
		return "something went wrong processing the complaint"
	}
}
