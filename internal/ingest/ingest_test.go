package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/clausecheck-cli/internal/core/domain"
)

func TestParseContractLineProvenance(t *testing.T) {
	text := "Clause one.\n\nClause two.\n"

	records := ParseContract(text)
	require.Len(t, records, 2)

	assert.Equal(t, domain.TextRecord{Page: 1, Line: 1, Text: "Clause one."}, records[0])
	assert.Equal(t, domain.TextRecord{Page: 1, Line: 3, Text: "Clause two."}, records[1])
}

func TestParseContractPageBreaks(t *testing.T) {
	text := "Page one clause.\fPage two clause.\nAnother line."

	records := ParseContract(text)
	require.Len(t, records, 3)

	assert.Equal(t, 1, records[0].Page)
	assert.Equal(t, 2, records[1].Page)
	assert.Equal(t, 1, records[1].Line, "line numbering restarts on a new page")
	assert.Equal(t, 2, records[2].Line)
}

func TestParseContractTrimsWhitespace(t *testing.T) {
	records := ParseContract("  indented clause  \n\t\n")
	require.Len(t, records, 1)
	assert.Equal(t, "indented clause", records[0].Text)
}

func TestReadContractMissingFile(t *testing.T) {
	_, err := ReadContract(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func writeObligations(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "obligations.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestReadObligationsSkipsHeader(t *testing.T) {
	path := writeObligations(t, "Obligation\nVendor must refund fees.\nVendor must provide support.\n")

	obligations, err := ReadObligations(path)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Vendor must refund fees.",
		"Vendor must provide support.",
	}, obligations)
}

func TestReadObligationsNoHeader(t *testing.T) {
	path := writeObligations(t, "Vendor must refund fees.\nVendor must provide support.\n")

	obligations, err := ReadObligations(path)
	require.NoError(t, err)
	assert.Len(t, obligations, 2)
}

func TestReadObligationsIgnoresExtraColumns(t *testing.T) {
	path := writeObligations(t, "Vendor must refund fees.,high,finance\nVendor must provide support.,low\n")

	obligations, err := ReadObligations(path)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Vendor must refund fees.",
		"Vendor must provide support.",
	}, obligations)
}

func TestReadObligationsQuotedCommas(t *testing.T) {
	path := writeObligations(t, "\"Vendor must refund fees, in full, on termination.\"\n")

	obligations, err := ReadObligations(path)
	require.NoError(t, err)
	require.Len(t, obligations, 1)
	assert.Equal(t, "Vendor must refund fees, in full, on termination.", obligations[0])
}

func TestReadObligationsEmptyFile(t *testing.T) {
	path := writeObligations(t, "")

	obligations, err := ReadObligations(path)
	require.NoError(t, err)
	assert.Empty(t, obligations)
}
