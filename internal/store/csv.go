package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/grievancesense/grievancesense/internal/domain"
)

// csvColumns is the header written to the flat file. The first five are the
// required submission columns; submitted_at is carried for audit.
var csvColumns = []string{"complaint_text", "category", "urgency", "credibility", "area", "submitted_at"}

// CSVStore is a flat-file SubmissionStore. The first-ever write creates the
// file with a header; later writes append without repeating it.
//
// The mutex only guards appends within one process; cross-process writers
// are out of scope by design.
type CSVStore struct {
	path string
	mu   sync.Mutex
}

// NewCSVStore creates a store backed by the CSV file at path. The file is
// created lazily on first append.
func NewCSVStore(path string) (*CSVStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	return &CSVStore{path: path}, nil
}

// Append writes one submission row, creating the file with a header when it
// does not exist yet.
func (s *CSVStore) Append(_ context.Context, annotation *domain.ComplaintAnnotation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	writeHeader := false
	if info, err := os.Stat(s.path); os.IsNotExist(err) || (err == nil && info.Size() == 0) {
		writeHeader = true
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open submission log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(csvColumns); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	record := []string{
		annotation.ComplaintText,
		annotation.Category,
		string(annotation.Urgency),
		strconv.Itoa(annotation.Credibility),
		annotation.Area,
		annotation.SubmittedAt.UTC().Format(time.RFC3339),
	}
	if err := w.Write(record); err != nil {
		return fmt.Errorf("write submission: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush submission log: %w", err)
	}
	return nil
}

// ReadAll reads the whole log back. A log that does not exist yet reads as
// empty; a log missing any required column wraps domain.ErrInvalidStore.
func (s *CSVStore) ReadAll(_ context.Context) ([]domain.ComplaintAnnotation, error) {
	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return []domain.ComplaintAnnotation{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open submission log: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrInvalidStore, s.path, err)
	}
	if len(rows) == 0 {
		return []domain.ComplaintAnnotation{}, nil
	}

	index := make(map[string]int, len(rows[0]))
	for i, col := range rows[0] {
		index[strings.TrimSpace(col)] = i
	}
	for _, required := range domain.SubmissionColumns {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("%w: %s is missing column %q", domain.ErrInvalidStore, s.path, required)
		}
	}

	submissions := make([]domain.ComplaintAnnotation, 0, len(rows)-1)
	for _, row := range rows[1:] {
		credibility, err := strconv.Atoi(row[index["credibility"]])
		if err != nil {
			return nil, fmt.Errorf("%w: bad credibility value %q", domain.ErrInvalidStore, row[index["credibility"]])
		}

		annotation := domain.ComplaintAnnotation{
			ComplaintText: row[index["complaint_text"]],
			Category:      row[index["category"]],
			Urgency:       domain.Urgency(row[index["urgency"]]),
			Credibility:   credibility,
			Area:          row[index["area"]],
		}
		if tsIdx, ok := index["submitted_at"]; ok {
			if ts, err := time.Parse(time.RFC3339, row[tsIdx]); err == nil {
				annotation.SubmittedAt = ts
			}
		}
		submissions = append(submissions, annotation)
	}

	return submissions, nil
}

// Close is a no-op; the file is opened per operation.
func (s *CSVStore) Close() error {
	return nil
}
