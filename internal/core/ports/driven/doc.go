// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - LLMService: Judges obligation compliance and derives keywords
//   - EmbeddingService: Generates vector embeddings for chunks and obligations
//   - VectorIndex: Per-session vector storage and similarity search
//   - ResultCache: Memoizes per-obligation results
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - Translator: Converts non-English text to English. Without it, text passes through.
//   - LanguageDetector: Identifies text language. Without it, everything is treated as English.
//   - PromptStore: Custom prompt templates. Without it, embedded defaults are used.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
