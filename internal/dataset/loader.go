// Package dataset loads labeled training data for the grievance classifier.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/grievancesense/grievancesense/internal/domain"
)

// Required training data columns.
const (
	columnText     = "complaint_text"
	columnCategory = "category"
)

// Load reads training examples from the CSV file at path.
// The file must carry a header row with complaint_text and category columns;
// rows missing either value are rejected rather than surfacing later as a
// prediction crash. All failures wrap domain.ErrDataLoad.
func Load(path string) ([]domain.TrainingExample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", domain.ErrDataLoad, path, err)
	}
	defer f.Close()

	examples, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrDataLoad, path, err)
	}
	return examples, nil
}

// Read parses training examples from r. Errors are returned unwrapped;
// Load attaches the domain.ErrDataLoad sentinel.
func Read(r io.Reader) ([]domain.TrainingExample, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	textIdx, catIdx := -1, -1
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case columnText:
			textIdx = i
		case columnCategory:
			catIdx = i
		}
	}
	if textIdx < 0 || catIdx < 0 {
		return nil, fmt.Errorf("header missing required columns %q and %q", columnText, columnCategory)
	}

	var examples []domain.TrainingExample
	row := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", row, err)
		}

		text := strings.TrimSpace(record[textIdx])
		category := strings.TrimSpace(record[catIdx])
		if text == "" || category == "" {
			return nil, fmt.Errorf("row %d: missing complaint_text or category", row)
		}

		examples = append(examples, domain.TrainingExample{Text: text, Category: category})
	}

	if len(examples) == 0 {
		return nil, fmt.Errorf("no training examples found")
	}

	return examples, nil
}
