// Package services contains the core business logic of ClauseCheck.
//
// The pipeline stages live here, each as its own type:
//
//   - Normalizer: language detection and translation to English
//   - Segmenter: boundary-preferring chunking with overlap
//   - KeywordExtractor: escape-vocabulary terms per obligation
//   - IndexBuilder: chunk embedding and vector index construction
//   - Retriever: top-k similarity lookup per obligation
//   - Judge: the LLM compliance decision protocol
//   - AnalysisService: the driving-port orchestrator tying them together
//
// Services depend only on domain types and driven ports. Adapters are
// injected at construction time; optional collaborators may be nil and
// every stage degrades or fails softly as documented on its type.
package services
