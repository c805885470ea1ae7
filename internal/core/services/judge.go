package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/custodia-labs/clausecheck-cli/internal/core/domain"
	"github.com/custodia-labs/clausecheck-cli/internal/core/ports/driven"
	"github.com/custodia-labs/clausecheck-cli/internal/logger"
)

// judgeMaxTokens bounds the model's response length.
const judgeMaxTokens = 400

// judgeSeed fixes the sampling seed on providers that honour it.
const judgeSeed = 42

// supportingClauseLimit is the excerpt length per supporting clause.
const supportingClauseLimit = 250

// Terminal reason and suggestion strings. Callers detect failure-shaped
// results by matching against these.
const (
	reasonNoClauses      = "No relevant clauses retrieved."
	reasonParseFailure   = "Reason could not be parsed from model response."
	suggestionParseError = "Could not generate suggestion due to error."
	suggestionFallback   = "Consider adding explicit language to address this obligation."
	suggestionBatchError = "Unable to analyze due to error."
	reasonAnalysisPrefix = "Error during analysis: "
)

// judgeResponse is the strict JSON shape the model must return.
type judgeResponse struct {
	IsPresent  string  `json:"is_present"`
	Reason     string  `json:"reason"`
	Suggestion *string `json:"suggestion"`
}

// Judge decides whether an obligation is satisfied by its retrieved
// clauses. All failure paths terminate in a "No" result; judging a single
// obligation never returns an error past this boundary.
type Judge struct {
	llmService driven.LLMService
	extractor  *KeywordExtractor
	prompts    driven.PromptStore
}

// NewJudge creates a compliance judge.
func NewJudge(llmService driven.LLMService, extractor *KeywordExtractor) *Judge {
	return &Judge{
		llmService: llmService,
		extractor:  extractor,
	}
}

// SetPromptStore sets the prompt store for the decision prompt.
func (j *Judge) SetPromptStore(store driven.PromptStore) {
	j.prompts = store
}

// Judge evaluates one obligation against its retrieved chunks.
//
// Empty retrieval is a definitive "No" with no LLM call. Otherwise the
// decision prompt is sent at temperature 0 with a fixed seed, the JSON
// reply is decoded, and the verdict is normalized. Any call or parse
// failure becomes a "No" with a diagnostic reason.
func (j *Judge) Judge(
	ctx context.Context,
	obligation string,
	retrieved []retrievedChunk,
	keywords []string,
) domain.ComplianceResult {
	if len(retrieved) == 0 {
		return domain.ComplianceResult{
			Obligation:        obligation,
			IsPresent:         domain.VerdictNo.String(),
			Reason:            reasonNoClauses,
			SimilarityScore:   0,
			Confidence:        0,
			KeywordHits:       []string{},
			SupportingClauses: []string{},
			Suggestion:        strPtr(suggestionFallback),
		}
	}

	// Re-rank locally to anchor page/line attribution and confidence,
	// independent of the order the index returned.
	best := retrieved[0]
	for _, rc := range retrieved[1:] {
		if rc.similarity > best.similarity {
			best = rc
		}
	}

	similarity := round(best.similarity, 3)
	confidence := round(best.similarity*100, 1)

	var hits []string
	if j.extractor != nil {
		hits = j.extractor.Corroborate(keywords, best.chunk.Content)
	}
	if hits == nil {
		hits = []string{}
	}

	result := domain.ComplianceResult{
		Obligation:        obligation,
		SimilarityScore:   similarity,
		Confidence:        confidence,
		KeywordHits:       hits,
		Page:              intPtr(best.chunk.Page),
		Line:              intPtr(best.chunk.Line),
		SupportingClauses: supportingClauses(retrieved),
	}

	verdict, reason, suggestion := j.askModel(ctx, obligation, retrieved)

	result.IsPresent = verdict.Reported()
	result.Reason = reason

	// A "Yes" never carries a suggestion; a "No" always carries one.
	if result.IsPresent == domain.VerdictYes.String() {
		result.Suggestion = nil
	} else {
		if suggestion == "" {
			suggestion = suggestionFallback
		}
		result.Suggestion = strPtr(suggestion)
	}

	return result
}

// askModel runs the LLM call and parses its reply.
// Returns the verdict plus reason and suggestion text. Failures yield
// VerdictNo (call errors) or VerdictUnparseable (decode errors) with
// diagnostic strings.
func (j *Judge) askModel(
	ctx context.Context, obligation string, retrieved []retrievedChunk,
) (domain.Verdict, string, string) {
	if j.llmService == nil {
		return domain.VerdictNo,
			reasonAnalysisPrefix + domain.ErrLLMUnavailable.Error(),
			suggestionBatchError
	}

	var clauses strings.Builder
	for i, rc := range retrieved {
		if i > 0 {
			clauses.WriteString("\n\n")
		}
		clauses.WriteString(rc.chunk.Content)
	}

	prompt := fmt.Sprintf(loadPrompt(j.prompts, driven.PromptCompliance), obligation, clauses.String())
	system := loadPrompt(j.prompts, driven.PromptComplianceSystem)

	raw, err := j.llmService.Chat(ctx, []driven.ChatMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: prompt},
	}, driven.ChatOptions{
		MaxTokens:   judgeMaxTokens,
		Temperature: 0.0,
		Seed:        judgeSeed,
		JSONMode:    true,
	})
	if err != nil {
		logger.Warn("Judge: LLM call failed: %v", err)
		return domain.VerdictNo,
			reasonAnalysisPrefix + err.Error(),
			suggestionBatchError
	}

	var parsed judgeResponse
	if err := jsoniter.UnmarshalFromString(stripCodeFences(raw), &parsed); err != nil {
		logger.Warn("Judge: unparseable response: %v (raw: %s)", err, truncate(raw, 200))
		return domain.VerdictUnparseable, reasonParseFailure, suggestionParseError
	}

	verdict := domain.ParseVerdict(parsed.IsPresent)
	if verdict == domain.VerdictUnparseable {
		logger.Warn("Judge: unexpected verdict token %q", parsed.IsPresent)
		return domain.VerdictUnparseable, reasonParseFailure, suggestionParseError
	}

	reason := strings.TrimSpace(parsed.Reason)
	if reason == "" {
		reason = reasonParseFailure
	}

	suggestion := ""
	if parsed.Suggestion != nil {
		suggestion = strings.TrimSpace(*parsed.Suggestion)
		if strings.EqualFold(suggestion, "null") {
			suggestion = ""
		}
	}

	return verdict, reason, suggestion
}

// supportingClauses builds provenance-tagged excerpts of every retrieved
// chunk, in retrieval order.
func supportingClauses(retrieved []retrievedChunk) []string {
	out := make([]string, len(retrieved))
	for i, rc := range retrieved {
		excerpt := rc.chunk.Content
		if len(excerpt) > supportingClauseLimit {
			excerpt = excerpt[:boundaryBefore(excerpt, supportingClauseLimit)]
		}
		out[i] = fmt.Sprintf("[Page %d Line %d] %s", rc.chunk.Page, rc.chunk.Line, strings.TrimSpace(excerpt))
	}
	return out
}

// stripCodeFences removes optional ```json wrappers around a model reply.
func stripCodeFences(raw string) string {
	raw = strings.TrimSpace(raw)

	if idx := strings.Index(raw, "```json"); idx >= 0 {
		raw = raw[idx+len("```json"):]
		if end := strings.Index(raw, "```"); end >= 0 {
			raw = raw[:end]
		}
	} else if strings.Contains(raw, "```") {
		parts := strings.SplitN(raw, "```", 3)
		if len(parts) >= 2 {
			raw = parts[1]
		}
	}

	return strings.TrimSpace(raw)
}

// round rounds v to the given number of decimal places.
func round(v float64, places int) float64 {
	scale := math.Pow10(places)
	return math.Round(v*scale) / scale
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }
