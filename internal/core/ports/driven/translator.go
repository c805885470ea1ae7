package driven

import "context"

// LanguageDetector identifies the language of a text sample.
// Detection is best-effort; callers treat failures as English.
type LanguageDetector interface {
	// Detect returns the ISO 639-1 code of the dominant language
	// (e.g. "en", "fr") and a confidence in [0,1].
	Detect(text string) (string, float64, error)
}

// Translator converts text to English.
// This is an optional service - when nil, non-English text passes
// through untranslated.
type Translator interface {
	// Translate converts text from the source language to English.
	// Source is an ISO 639-1 code, or "auto" to let the backend detect.
	Translate(ctx context.Context, text, source string) (string, error)

	// Ping validates the service is reachable.
	Ping(ctx context.Context) error
}
