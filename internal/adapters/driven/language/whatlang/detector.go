// Package whatlang provides offline language detection using trigram
// analysis. Detection runs locally, so contract text never leaves the
// machine just to find out what language it is in.
package whatlang

import (
	"strings"

	"github.com/abadojack/whatlanggo"

	"github.com/custodia-labs/clausecheck-cli/internal/core/ports/driven"
)

// Ensure Detector implements the interface.
var _ driven.LanguageDetector = (*Detector)(nil)

// Detector detects the language of a text sample.
type Detector struct{}

// New creates a new language detector.
func New() *Detector {
	return &Detector{}
}

// Detect returns the ISO 639-1 code of the detected language and the
// detection confidence in [0, 1]. Text too short or too ambiguous to
// classify comes back as "unknown" with zero confidence.
func (d *Detector) Detect(text string) (string, float64, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "unknown", 0, nil
	}

	info := whatlanggo.Detect(trimmed)
	code := info.Lang.Iso6391()
	if code == "" {
		return "unknown", 0, nil
	}

	return code, info.Confidence, nil
}
