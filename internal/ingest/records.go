// Package ingest reads contract text and obligation lists from disk
// into domain types.
package ingest

import (
	"fmt"
	"os"
	"strings"

	"github.com/custodia-labs/clausecheck-cli/internal/core/domain"
)

// ReadContract loads a plain-text contract and returns one record per
// non-blank line with page and line provenance. Form feeds (\f) mark
// page breaks, which text extracted from PDFs commonly carries.
func ReadContract(path string) ([]domain.TextRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read contract: %w", err)
	}
	return ParseContract(string(data)), nil
}

// ParseContract converts raw contract text into positioned records.
func ParseContract(text string) []domain.TextRecord {
	var records []domain.TextRecord

	for pageIdx, page := range strings.Split(text, "\f") {
		lineNum := 0
		for _, line := range strings.Split(page, "\n") {
			lineNum++
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			records = append(records, domain.TextRecord{
				Page: pageIdx + 1,
				Line: lineNum,
				Text: trimmed,
			})
		}
	}

	return records
}
