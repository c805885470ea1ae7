package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/clausecheck-cli/internal/core/domain"
)

func TestCacheStatsCmd_Executes(t *testing.T) {
	fake := &fakeAnalysisService{stats: domain.CacheStats{
		Size:          3,
		MaxSize:       100,
		Hits:          7,
		Misses:        3,
		HitRate:       70,
		TotalRequests: 10,
	}}
	cleanup := setupTestServices(fake)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"cache", "stats"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Entries:  3/100")
	assert.Contains(t, out, "Hit rate: 70.00% of 10 requests")
}

func TestCacheStatsCmd_JSON(t *testing.T) {
	fake := &fakeAnalysisService{stats: domain.CacheStats{Size: 1, MaxSize: 100}}
	cleanup := setupTestServices(fake)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"cache", "stats", "--json"})
	defer func() {
		rootCmd.SetArgs(nil)
		cacheStatsJSON = false
	}()

	err := rootCmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"max_size": 100`)
}

func TestCacheClearCmd_Executes(t *testing.T) {
	fake := &fakeAnalysisService{}
	cleanup := setupTestServices(fake)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"cache", "clear"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	require.NoError(t, err)
	assert.True(t, fake.cleared)
	assert.Contains(t, buf.String(), "cleared")
}
