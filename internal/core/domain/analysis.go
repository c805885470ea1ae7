package domain

// TextRecord is one unit of extracted contract text.
// Records are produced by document ingestion (an external collaborator)
// and carry page/line provenance through the whole pipeline.
type TextRecord struct {
	// Page is the 1-based page number in the source document.
	Page int

	// Line is the 1-based line (or paragraph/row) number within the page.
	Line int

	// Text is the extracted text, already normalized to English.
	Text string
}

// Chunk is a bounded slice of a TextRecord's text, used as the
// retrieval unit for semantic search.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// Content is the text content of this chunk.
	Content string

	// Page is the page of the originating record.
	Page int

	// Line is the line of the originating record.
	Line int

	// Index is the ordinal position of this chunk within its record.
	Index int

	// Embedding is the vector representation for semantic search.
	Embedding []float32
}

// KeywordSet maps an obligation to its derived search terms.
// Terms are lowercase and deduplicated. The set is advisory only:
// it is surfaced in results but never gates a verdict.
type KeywordSet map[string][]string

// Keywords returns the terms for an obligation, or nil if none were derived.
func (k KeywordSet) Keywords(obligation string) []string {
	if k == nil {
		return nil
	}
	return k[obligation]
}

// ComplianceResult is the output record for one obligation.
// It has the same shape whether the obligation was judged, skipped for
// lack of relevant clauses, or failed during analysis.
type ComplianceResult struct {
	// Obligation is the normalized English obligation text.
	Obligation string `json:"obligation"`

	// IsPresent is "Yes" or "No".
	IsPresent string `json:"is_present"`

	// Reason is the model's (or the pipeline's) short rationale.
	Reason string `json:"reason"`

	// SimilarityScore is the cosine similarity of the best retrieved
	// chunk, rounded to 3 decimals, in [0,1].
	SimilarityScore float64 `json:"similarity_score"`

	// Confidence is SimilarityScore expressed as a percentage,
	// rounded to 1 decimal.
	Confidence float64 `json:"confidence"`

	// KeywordHits lists obligation keywords literally present in the
	// best retrieved chunk.
	KeywordHits []string `json:"keyword_hits"`

	// Page and Line locate the best retrieved chunk. Nil when no
	// chunks were retrieved.
	Page *int `json:"page"`
	Line *int `json:"line"`

	// SupportingClauses are provenance-tagged excerpts of every
	// retrieved chunk, included regardless of verdict.
	SupportingClauses []string `json:"supporting_clauses"`

	// Suggestion proposes contract language when the verdict is "No".
	// Always nil when the verdict is "Yes".
	Suggestion *string `json:"suggestion"`
}

// AnalysisReport aggregates one analysis run for presentation.
type AnalysisReport struct {
	// SessionID identifies the run.
	SessionID string `json:"session_id"`

	// Results holds one entry per obligation, in input order.
	Results []ComplianceResult `json:"results"`

	// ChunkCount is the number of chunks indexed for the contract.
	ChunkCount int `json:"chunk_count"`
}

// Compliant returns the number of results with a "Yes" verdict.
func (r *AnalysisReport) Compliant() int {
	n := 0
	for i := range r.Results {
		if r.Results[i].IsPresent == VerdictYes.String() {
			n++
		}
	}
	return n
}

// AverageSimilarity returns the mean similarity score across results,
// or 0 when there are no results.
func (r *AnalysisReport) AverageSimilarity() float64 {
	if len(r.Results) == 0 {
		return 0
	}
	sum := 0.0
	for i := range r.Results {
		sum += r.Results[i].SimilarityScore
	}
	return sum / float64(len(r.Results))
}

// AverageConfidence returns the mean confidence across results,
// or 0 when there are no results.
func (r *AnalysisReport) AverageConfidence() float64 {
	if len(r.Results) == 0 {
		return 0
	}
	sum := 0.0
	for i := range r.Results {
		sum += r.Results[i].Confidence
	}
	return sum / float64(len(r.Results))
}

// CacheStats describes result cache behaviour over the process lifetime.
type CacheStats struct {
	// Size is the current number of cached entries.
	Size int `json:"size"`

	// MaxSize is the configured capacity.
	MaxSize int `json:"max_size"`

	// Hits and Misses count lookups since the last clear.
	Hits   int `json:"hits"`
	Misses int `json:"misses"`

	// HitRate is Hits as a percentage of total requests, rounded to
	// 2 decimals.
	HitRate float64 `json:"hit_rate"`

	// TotalRequests is Hits + Misses.
	TotalRequests int `json:"total_requests"`
}
