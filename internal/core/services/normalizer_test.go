package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/clausecheck-cli/internal/core/domain"
)

func TestNormalizerEnglishPassesThrough(t *testing.T) {
	n := NewNormalizer(
		&mockDetector{tag: "en", confidence: 0.99},
		&mockTranslator{out: "should not be used"},
		nil,
	)

	got := n.TranslateToEnglish(context.Background(), "The vendor shall pay.")
	assert.Equal(t, "The vendor shall pay.", got)
}

func TestNormalizerTranslatesForeignText(t *testing.T) {
	n := NewNormalizer(
		&mockDetector{tag: "de", confidence: 0.95},
		&mockTranslator{out: "The vendor shall pay."},
		nil,
	)

	got := n.TranslateToEnglish(context.Background(), "Der Verkäufer zahlt.")
	assert.Equal(t, "The vendor shall pay.", got)
}

func TestNormalizerDetectionFailureKeepsOriginal(t *testing.T) {
	n := NewNormalizer(
		&mockDetector{err: errors.New("detector broken")},
		&mockTranslator{out: "should not be used"},
		nil,
	)

	got := n.TranslateToEnglish(context.Background(), "quelque texte")
	assert.Equal(t, "quelque texte", got)
}

func TestNormalizerLowConfidenceTreatedAsUnknown(t *testing.T) {
	n := NewNormalizer(
		&mockDetector{tag: "fr", confidence: 0.2},
		&mockTranslator{out: "should not be used"},
		nil,
	)

	got := n.TranslateToEnglish(context.Background(), "ambiguous text")
	assert.Equal(t, "ambiguous text", got)
}

func TestNormalizerFallsBackToLLM(t *testing.T) {
	llm := &mockLLMService{generateOut: "The contract terminates."}
	n := NewNormalizer(
		&mockDetector{tag: "es", confidence: 0.9},
		&mockTranslator{err: errors.New("service down")},
		llm,
	)

	got := n.TranslateToEnglish(context.Background(), "El contrato termina.")
	assert.Equal(t, "The contract terminates.", got)
}

func TestNormalizerAllFailuresKeepOriginal(t *testing.T) {
	llm := &mockLLMService{generateErr: errors.New("llm down")}
	n := NewNormalizer(
		&mockDetector{tag: "es", confidence: 0.9},
		&mockTranslator{err: errors.New("service down")},
		llm,
	)

	got := n.TranslateToEnglish(context.Background(), "El contrato termina.")
	assert.Equal(t, "El contrato termina.", got)
}

func TestNormalizerNilCollaborators(t *testing.T) {
	n := NewNormalizer(nil, nil, nil)

	got := n.TranslateToEnglish(context.Background(), "anything")
	assert.Equal(t, "anything", got)
}

func TestNormalizeRecordsPreservesProvenance(t *testing.T) {
	n := NewNormalizer(
		&mockDetector{tag: "de", confidence: 0.95},
		&mockTranslator{out: "translated"},
		nil,
	)

	records := n.NormalizeRecords(context.Background(), []domain.TextRecord{
		{Page: 3, Line: 12, Text: "Der Text"},
	})

	assert.Equal(t, 3, records[0].Page)
	assert.Equal(t, 12, records[0].Line)
	assert.Equal(t, "translated", records[0].Text)
}
