package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDefaults() map[string]string {
	return map[string]string{
		"compliance": "Decide compliance for:\n%s\n\nClauses:\n%s",
		"keywords":   "Extract keywords from: %s",
	}
}

func TestPromptStoreLoadCreatesDefaults(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir, testDefaults())
	require.NoError(t, err)

	prompt, err := store.Load("compliance")
	require.NoError(t, err)
	assert.Equal(t, testDefaults()["compliance"], prompt)

	// First load materialises the default files on disk
	_, err = os.Stat(filepath.Join(dir, "compliance.txt"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "README.md"))
	assert.NoError(t, err)
}

func TestPromptStoreLoadsUserFile(t *testing.T) {
	dir := t.TempDir()
	custom := "Custom judging prompt %s %s"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "compliance.txt"), []byte(custom+"\n"), 0600))

	store, err := NewPromptStore(dir, testDefaults())
	require.NoError(t, err)

	prompt, err := store.Load("compliance")
	require.NoError(t, err)
	assert.Equal(t, custom, prompt, "user file wins over the default and is trimmed")
}

func TestPromptStoreUnknownName(t *testing.T) {
	store, err := NewPromptStore(t.TempDir(), testDefaults())
	require.NoError(t, err)

	_, err = store.Load("nonexistent")
	assert.Error(t, err)
}

func TestPromptStoreReloadPicksUpEdits(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir, testDefaults())
	require.NoError(t, err)

	_, err = store.Load("keywords")
	require.NoError(t, err)

	edited := "Edited: %s"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keywords.txt"), []byte(edited), 0600))

	// Cached value survives until Reload
	prompt, err := store.Load("keywords")
	require.NoError(t, err)
	assert.Equal(t, testDefaults()["keywords"], prompt)

	store.Reload()
	prompt, err = store.Load("keywords")
	require.NoError(t, err)
	assert.Equal(t, edited, prompt)
}

func TestConfigStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("llm.model", "gpt-4o-mini"))
	require.NoError(t, store.Set("analysis.top_k", 6))
	require.NoError(t, store.Set("analysis.batch", true))

	// A fresh store reads back the persisted values
	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", reopened.GetString("llm.model"))
	assert.Equal(t, 6, reopened.GetInt("analysis.top_k"))
	assert.True(t, reopened.GetBool("analysis.batch"))
	assert.Equal(t, filepath.Join(dir, "config.toml"), reopened.Path())
}

func TestConfigStoreMissingKeys(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	_, ok := store.Get("missing")
	assert.False(t, ok)
	assert.Empty(t, store.GetString("missing"))
	assert.Zero(t, store.GetInt("missing"))
	assert.False(t, store.GetBool("missing"))
}

func TestConfigStoreFlattensNestedTables(t *testing.T) {
	dir := t.TempDir()
	raw := "[embedding]\nprovider = \"ollama\"\nmodel = \"nomic-embed-text\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(raw), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "ollama", store.GetString("embedding.provider"))
	assert.Equal(t, "nomic-embed-text", store.GetString("embedding.model"))
}
