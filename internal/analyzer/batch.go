package analyzer

import (
	"context"
	"sync"
	"time"

	"github.com/grievancesense/grievancesense/internal/domain"
	"github.com/grievancesense/grievancesense/internal/logging"
)

const defaultConcurrency = 10

// BatchRequest is one complaint inside a batch analysis.
type BatchRequest struct {
	ComplaintText string `json:"complaint_text"`
	Area          string `json:"area"`
}

// BatchResult holds the outcome for a single batch item. Err is set when
// the item failed; failures never abort the rest of the batch.
type BatchResult struct {
	Index      int
	Annotation *domain.ComplaintAnnotation
	Err        error
}

// BatchAnalyzer analyzes many complaints in parallel using a worker pool.
type BatchAnalyzer struct {
	analyzer    *Analyzer
	concurrency int
	logger      logging.Logger
}

// NewBatchAnalyzer creates a batch analyzer with the given worker count.
func NewBatchAnalyzer(analyzer *Analyzer, concurrency int, logger logging.Logger) *BatchAnalyzer {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &BatchAnalyzer{
		analyzer:    analyzer,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Analyze processes the batch and returns one result per request, in
// request order.
func (b *BatchAnalyzer) Analyze(ctx context.Context, requests []BatchRequest) []BatchResult {
	if len(requests) == 0 {
		return []BatchResult{}
	}

	start := time.Now()
	if b.analyzer.telemetry != nil {
		b.analyzer.telemetry.Metrics.BatchSize.Observe(float64(len(requests)))
	}

	type job struct {
		index int
		req   BatchRequest
	}

	jobs := make(chan job, len(requests))
	results := make([]BatchResult, len(requests))

	var wg sync.WaitGroup
	for range b.concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if b.analyzer.telemetry != nil {
				b.analyzer.telemetry.Metrics.ActiveWorkers.Inc()
				defer b.analyzer.telemetry.Metrics.ActiveWorkers.Dec()
			}
			for j := range jobs {
				select {
				case <-ctx.Done():
					results[j.index] = BatchResult{Index: j.index, Err: ctx.Err()}
					continue
				default:
				}
				annotation, err := b.analyzer.Analyze(ctx, j.req.ComplaintText, j.req.Area)
				results[j.index] = BatchResult{Index: j.index, Annotation: annotation, Err: err}
			}
		}()
	}

	for i, req := range requests {
		jobs <- job{index: i, req: req}
	}
	close(jobs)
	wg.Wait()

	succeeded := 0
	for _, r := range results {
		if r.Err == nil {
			succeeded++
		}
	}

	b.logger.Info("batch analysis complete",
		logging.Int("total", len(requests)),
		logging.Int("success", succeeded),
		logging.Int("errors", len(requests)-succeeded),
		logging.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	return results
}
