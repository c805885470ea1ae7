package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/clausecheck-cli/internal/core/domain"
	"github.com/custodia-labs/clausecheck-cli/internal/core/ports/driven"
	"github.com/custodia-labs/clausecheck-cli/internal/logger"
)

// englishTag is the language code for text that needs no translation.
const englishTag = "en"

// unknownTag is the fallback when detection fails or is inconclusive.
const unknownTag = "unknown"

// minDetectionConfidence is the floor below which detection results are
// treated as unknown.
const minDetectionConfidence = 0.5

// Normalizer converts mixed-language input text to English before the
// pipeline runs. Every failure mode passes the original text through
// unchanged; normalization never aborts ingestion.
type Normalizer struct {
	detector   driven.LanguageDetector
	translator driven.Translator
	llmService driven.LLMService
}

// NewNormalizer creates a new language normalizer.
// All parameters are optional (can be nil); with none set, text passes
// through untouched.
func NewNormalizer(
	detector driven.LanguageDetector,
	translator driven.Translator,
	llmService driven.LLMService,
) *Normalizer {
	return &Normalizer{
		detector:   detector,
		translator: translator,
		llmService: llmService,
	}
}

// Detect returns the language tag for a text sample.
// Failures and low-confidence results collapse to "unknown".
func (n *Normalizer) Detect(text string) string {
	if n.detector == nil {
		return unknownTag
	}

	tag, confidence, err := n.detector.Detect(text)
	if err != nil || tag == "" {
		logger.Debug("Language detection failed: %v", err)
		return unknownTag
	}
	if confidence < minDetectionConfidence {
		logger.Debug("Language detection below confidence floor: %s (%.2f)", tag, confidence)
		return unknownTag
	}

	return tag
}

// TranslateToEnglish returns the English form of text.
// English or unknown-language text is returned unchanged. Otherwise the
// primary translator is tried first, then an LLM-based fallback; if both
// fail the original text is returned.
func (n *Normalizer) TranslateToEnglish(ctx context.Context, text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return text
	}

	tag := n.Detect(text)
	if tag == englishTag || tag == unknownTag {
		return text
	}

	logger.Debug("Translating %s text (%d chars)", tag, len(text))

	if n.translator != nil {
		translated, err := n.translator.Translate(ctx, text, tag)
		if err == nil && translated != "" {
			return translated
		}
		logger.Warn("Primary translation failed: %v (trying LLM fallback)", err)
	}

	if n.llmService != nil {
		translated, err := n.llmTranslate(ctx, text)
		if err == nil && translated != "" {
			return translated
		}
		logger.Warn("LLM translation fallback failed: %v (keeping original text)", err)
	}

	return text
}

// NormalizeRecords translates every record's text to English in place.
func (n *Normalizer) NormalizeRecords(ctx context.Context, records []domain.TextRecord) []domain.TextRecord {
	out := make([]domain.TextRecord, len(records))
	for i, rec := range records {
		rec.Text = n.TranslateToEnglish(ctx, rec.Text)
		out[i] = rec
	}
	return out
}

// NormalizeObligations translates every obligation to English.
func (n *Normalizer) NormalizeObligations(ctx context.Context, obligations []string) []string {
	out := make([]string, len(obligations))
	for i, ob := range obligations {
		out[i] = n.TranslateToEnglish(ctx, ob)
	}
	return out
}

// llmTranslate asks the LLM to translate text to English.
func (n *Normalizer) llmTranslate(ctx context.Context, text string) (string, error) {
	prompt := fmt.Sprintf(
		"Translate the following text to English. Return ONLY the translation, nothing else.\n\n%s",
		text,
	)

	translated, err := n.llmService.Generate(ctx, prompt, driven.GenerateOptions{
		Temperature: 0.0,
	})
	if err != nil {
		return "", fmt.Errorf("llm translate: %w", err)
	}

	return strings.TrimSpace(translated), nil
}
