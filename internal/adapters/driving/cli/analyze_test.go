package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestInputs(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()

	contract := filepath.Join(dir, "contract.txt")
	require.NoError(t, os.WriteFile(contract,
		[]byte("Vendor shall refund all fees paid.\nVendor shall provide support.\n"), 0600))

	obligations := filepath.Join(dir, "obligations.csv")
	require.NoError(t, os.WriteFile(obligations,
		[]byte("Obligation\nVendor must refund fees.\nVendor must carry insurance.\n"), 0600))

	return contract, obligations
}

func TestAnalyzeCmd_Use(t *testing.T) {
	assert.Equal(t, "analyze [contract.txt] [obligations.csv]", analyzeCmd.Use)
}

func TestAnalyzeCmd_RequiresTwoArgs(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"analyze", "only-one.txt"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 2 arg(s)")
}

func TestAnalyzeCmd_Executes(t *testing.T) {
	cleanup := setupTestServices(&fakeAnalysisService{report: sampleReport()})
	defer cleanup()

	contract, obligations := writeTestInputs(t)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"analyze", contract, obligations})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Vendor must refund fees.")
	assert.Contains(t, out, "Present: Yes (confidence 81.2%, similarity 0.812)")
	assert.Contains(t, out, "Location: page 1, line 1")
	assert.Contains(t, out, "Suggestion: Add an explicit refund clause.")
	assert.Contains(t, out, "Summary: 1/2 obligations present")
	assert.Contains(t, out, "Indexed 2 chunks")
}

func TestAnalyzeCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices(&fakeAnalysisService{report: sampleReport()})
	defer cleanup()

	contract, obligations := writeTestInputs(t)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"analyze", "--json", contract, obligations})
	defer func() {
		rootCmd.SetArgs(nil)
		analyzeJSON = false
	}()

	err := rootCmd.Execute()
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"session_id": "test-session"`)
	assert.Contains(t, out, `"is_present": "Yes"`)
	assert.Contains(t, out, `"suggestion": null`)
}

func TestAnalyzeCmd_WritesOutputFile(t *testing.T) {
	cleanup := setupTestServices(&fakeAnalysisService{report: sampleReport()})
	defer cleanup()

	contract, obligations := writeTestInputs(t)
	outPath := filepath.Join(t.TempDir(), "report.json")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"analyze", "--output", outPath, contract, obligations})
	defer func() {
		rootCmd.SetArgs(nil)
		analyzeOutput = ""
	}()

	err := rootCmd.Execute()
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"chunk_count": 2`)
}

func TestAnalyzeCmd_MissingContractFile(t *testing.T) {
	cleanup := setupTestServices(&fakeAnalysisService{report: sampleReport()})
	defer cleanup()

	_, obligations := writeTestInputs(t)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"analyze", "/nonexistent/contract.txt", obligations})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	assert.Error(t, err)
}

func TestAnalyzeCmd_ServiceFailure(t *testing.T) {
	cleanup := setupTestServices(&fakeAnalysisService{err: errAnalysisBoom})
	defer cleanup()

	contract, obligations := writeTestInputs(t)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"analyze", contract, obligations})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "analysis failed")
}

func TestAnalyzeCmd_NoServiceConfigured(t *testing.T) {
	cleanup := setupTestServices(nil)
	defer cleanup()
	analysisService = nil

	contract, obligations := writeTestInputs(t)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"analyze", contract, obligations})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
