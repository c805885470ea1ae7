package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"github.com/custodia-labs/clausecheck-cli/internal/core/domain"
	"github.com/custodia-labs/clausecheck-cli/internal/core/ports/driven"
	"github.com/custodia-labs/clausecheck-cli/internal/logger"
)

// maxKeywords bounds the heuristic fallback term count.
const maxKeywords = 8

// universalDangerTerms are escape-hatch words appended to every keyword
// set. Counterparties reach for these regardless of obligation subject.
var universalDangerTerms = []string{
	"refund", "reimburse", "terminate", "cap", "limit",
	"sole discretion", "exclusive remedy", "unless", "except",
}

// stopwords excluded by the heuristic fallback extractor.
var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "that": true, "with": true,
	"shall": true, "must": true, "will": true, "may": true, "any": true,
	"all": true, "not": true, "have": true, "has": true, "are": true,
	"this": true, "from": true, "such": true, "its": true, "been": true,
	"vendor": true, "customer": true, "party": true, "parties": true,
	"agreement": true, "obligation": true,
}

// KeywordExtractor derives corroborating search terms per obligation.
// Terms are advisory only; they surface in results but never gate a
// verdict. Extraction results are cached for the process lifetime.
type KeywordExtractor struct {
	llmService driven.LLMService
	prompts    driven.PromptStore

	mu    sync.Mutex
	cache map[string][]string
}

// NewKeywordExtractor creates a keyword extractor.
// The llmService parameter is optional (can be nil); without it only the
// heuristic fallback runs.
func NewKeywordExtractor(llmService driven.LLMService) *KeywordExtractor {
	return &KeywordExtractor{
		llmService: llmService,
		cache:      make(map[string][]string),
	}
}

// SetPromptStore sets the prompt store for the keyword prompt.
func (e *KeywordExtractor) SetPromptStore(store driven.PromptStore) {
	e.prompts = store
}

// Extract derives keywords for each obligation. A failure for one
// obligation yields an empty list for that obligation only.
func (e *KeywordExtractor) Extract(ctx context.Context, obligations []string) domain.KeywordSet {
	set := make(domain.KeywordSet, len(obligations))
	for _, ob := range obligations {
		set[ob] = e.extractOne(ctx, ob)
	}
	return set
}

// Corroborate returns the keywords literally present in content,
// matched case-insensitively as substrings.
func (e *KeywordExtractor) Corroborate(keywords []string, content string) []string {
	contentLower := strings.ToLower(content)

	hits := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw != "" && strings.Contains(contentLower, kw) {
			hits = append(hits, kw)
		}
	}

	return hits
}

// extractOne returns the cached or freshly derived keywords for one
// obligation.
func (e *KeywordExtractor) extractOne(ctx context.Context, obligation string) []string {
	e.mu.Lock()
	if cached, ok := e.cache[obligation]; ok {
		e.mu.Unlock()
		logger.Debug("Keyword cache hit: %q", truncate(obligation, 60))
		return cached
	}
	e.mu.Unlock()

	keywords, err := e.llmKeywords(ctx, obligation)
	if err != nil {
		logger.Warn("LLM keyword generation failed: %v (using heuristic fallback)", err)
		keywords = heuristicKeywords(obligation)
	}

	keywords = normalizeKeywords(append(keywords, universalDangerTerms...))

	e.mu.Lock()
	e.cache[obligation] = keywords
	e.mu.Unlock()

	return keywords
}

// llmKeywords asks the model for escape-vocabulary terms.
func (e *KeywordExtractor) llmKeywords(ctx context.Context, obligation string) ([]string, error) {
	if e.llmService == nil {
		return nil, domain.ErrLLMUnavailable
	}

	prompt := fmt.Sprintf(loadPrompt(e.prompts, driven.PromptKeywords), obligation)

	raw, err := e.llmService.Chat(ctx, []driven.ChatMessage{
		{Role: "user", Content: prompt},
	}, driven.ChatOptions{
		Temperature: 0.2,
		JSONMode:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("keyword generation: %w", err)
	}

	var parsed struct {
		Keywords []string `json:"keywords"`
	}
	if err := jsoniter.UnmarshalFromString(stripCodeFences(raw), &parsed); err != nil {
		return nil, fmt.Errorf("parse keyword response: %w", err)
	}

	return parsed.Keywords, nil
}

// heuristicKeywords falls back to salient terms from the obligation text
// itself when the LLM is unavailable.
func heuristicKeywords(obligation string) []string {
	fields := strings.Fields(strings.ToLower(obligation))

	var out []string
	for _, f := range fields {
		f = strings.Trim(f, ".,;:()\"'")
		if len(f) <= 3 || stopwords[f] {
			continue
		}
		out = append(out, f)
		if len(out) >= maxKeywords {
			break
		}
	}

	return out
}

// normalizeKeywords lowercases, deduplicates, and sorts terms.
func normalizeKeywords(keywords []string) []string {
	seen := make(map[string]bool, len(keywords))
	out := make([]string, 0, len(keywords))

	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		out = append(out, kw)
	}

	sort.Strings(out)
	return out
}

// truncate shortens s for log output without severing a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:boundaryBefore(s, n)] + "..."
}
