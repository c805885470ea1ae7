package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// headerNames are first-cell values treated as a CSV header row rather
// than an obligation.
var headerNames = map[string]bool{
	"obligation":  true,
	"obligations": true,
	"requirement": true,
	"clause":      true,
}

// ReadObligations loads obligations from a CSV file, one per row, first
// column. A recognised header row is skipped. Blank rows are dropped
// and order is preserved.
func ReadObligations(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read obligations: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // Rows may have trailing columns

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse obligations csv: %w", err)
	}

	var obligations []string
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		text := strings.TrimSpace(row[0])
		if text == "" {
			continue
		}
		if i == 0 && headerNames[strings.ToLower(text)] {
			continue
		}
		obligations = append(obligations, text)
	}

	return obligations, nil
}
