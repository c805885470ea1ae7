// Package domain defines the core business entities for ClauseCheck.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - TextRecord: One unit of extracted contract text with provenance
//   - Chunk: A retrieval unit produced by the segmenter
//   - ComplianceResult: The per-obligation verdict record
//   - Verdict: The normalized Yes/No/Unparseable judgment
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
