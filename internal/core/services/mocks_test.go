package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/clausecheck-cli/internal/core/ports/driven"
)

// --- Mock implementations shared across service tests ---

// mockEmbeddingService implements driven.EmbeddingService for testing.
// When embedFunc is nil, every text gets the fixed embedding.
type mockEmbeddingService struct {
	embedding []float32
	embedFunc func(text string) []float32
	embedErr  error
}

func (m *mockEmbeddingService) Embed(_ context.Context, text string) ([]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	if m.embedFunc != nil {
		return m.embedFunc(text), nil
	}
	return m.embedding, nil
}

func (m *mockEmbeddingService) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	result := make([][]float32, len(texts))
	for i, t := range texts {
		if m.embedFunc != nil {
			result[i] = m.embedFunc(t)
		} else {
			result[i] = m.embedding
		}
	}
	return result, nil
}

func (m *mockEmbeddingService) Dimensions() int {
	return 3
}

func (m *mockEmbeddingService) ModelName() string {
	return "mock-embed"
}

func (m *mockEmbeddingService) Ping(_ context.Context) error {
	return nil
}

func (m *mockEmbeddingService) Close() error {
	return nil
}

// mockLLMService implements driven.LLMService for testing.
type mockLLMService struct {
	mu          sync.Mutex
	chatReply   string
	chatFunc    func(messages []driven.ChatMessage) (string, error)
	chatErr     error
	chatCalls   int
	generateOut string
	generateErr error
}

func (m *mockLLMService) Generate(_ context.Context, _ string, _ driven.GenerateOptions) (string, error) {
	if m.generateErr != nil {
		return "", m.generateErr
	}
	return m.generateOut, nil
}

func (m *mockLLMService) Chat(_ context.Context, messages []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
	m.mu.Lock()
	m.chatCalls++
	m.mu.Unlock()

	if m.chatFunc != nil {
		return m.chatFunc(messages)
	}
	if m.chatErr != nil {
		return "", m.chatErr
	}
	return m.chatReply, nil
}

func (m *mockLLMService) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.chatCalls
}

func (m *mockLLMService) ModelName() string {
	return "mock-llm"
}

func (m *mockLLMService) Ping(_ context.Context) error {
	return nil
}

func (m *mockLLMService) Close() error {
	return nil
}

// mockVectorIndex implements driven.VectorIndex with real storage but
// canned search results.
type mockVectorIndex struct {
	mu        sync.Mutex
	added     map[string][]float32
	hits      []driven.VectorHit
	searchErr error
	addErr    error
}

func newMockVectorIndex() *mockVectorIndex {
	return &mockVectorIndex{added: make(map[string][]float32)}
}

func (m *mockVectorIndex) Add(_ context.Context, chunkID string, embedding []float32) error {
	if m.addErr != nil {
		return m.addErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.added[chunkID] = embedding
	return nil
}

func (m *mockVectorIndex) Delete(_ context.Context, chunkID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.added, chunkID)
	return nil
}

func (m *mockVectorIndex) Search(_ context.Context, _ []float32, k int) ([]driven.VectorHit, error) {
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if k > len(m.hits) {
		return m.hits, nil
	}
	return m.hits[:k], nil
}

func (m *mockVectorIndex) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.added)
}

func (m *mockVectorIndex) Close() error {
	return nil
}

// mockDetector implements driven.LanguageDetector for testing.
type mockDetector struct {
	tag        string
	confidence float64
	err        error
}

func (m *mockDetector) Detect(_ string) (string, float64, error) {
	if m.err != nil {
		return "", 0, m.err
	}
	return m.tag, m.confidence, nil
}

// mockTranslator implements driven.Translator for testing.
type mockTranslator struct {
	out string
	err error
}

func (m *mockTranslator) Translate(_ context.Context, _, _ string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.out, nil
}

func (m *mockTranslator) Ping(_ context.Context) error {
	return nil
}
