package services

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/custodia-labs/clausecheck-cli/internal/core/domain"
	"github.com/custodia-labs/clausecheck-cli/internal/logger"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 2000

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 200

// separators are tried in order when looking for a split boundary.
// The empty string means a hard character cut.
var separators = []string{"\n\n", "\n", ". ", " "}

// Segmenter splits text records into bounded overlapping chunks.
// Splits prefer paragraph, then newline, then sentence, then word
// boundaries before falling back to a hard cut, so clauses are not
// severed mid-sentence.
type Segmenter struct {
	chunkSize int
	overlap   int
}

// SegmenterOption configures the segmenter.
type SegmenterOption func(*Segmenter)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) SegmenterOption {
	return func(s *Segmenter) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) SegmenterOption {
	return func(s *Segmenter) {
		if overlap >= 0 {
			s.overlap = overlap
		}
	}
}

// NewSegmenter creates a new segmenter with the given options.
func NewSegmenter(opts ...SegmenterOption) *Segmenter {
	s := &Segmenter{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(s)
	}

	// Ensure overlap doesn't exceed chunk size
	if s.overlap >= s.chunkSize {
		s.overlap = s.chunkSize / 4
	}

	return s
}

// Segment splits each record's text into chunks, preserving the record's
// page/line on every chunk. Output order follows input record order, then
// intra-record chunk order.
func (s *Segmenter) Segment(records []domain.TextRecord) []domain.Chunk {
	chunks := make([]domain.Chunk, 0, len(records))

	for _, rec := range records {
		text := strings.TrimSpace(rec.Text)
		if text == "" {
			continue
		}

		pieces := s.split(text, separators)
		for i, piece := range pieces {
			chunks = append(chunks, domain.Chunk{
				ID:      uuid.New().String(),
				Content: piece,
				Page:    rec.Page,
				Line:    rec.Line,
				Index:   i,
			})
		}
	}

	logger.Debug("Segmenter: %d records -> %d chunks (size=%d, overlap=%d)",
		len(records), len(chunks), s.chunkSize, s.overlap)

	return chunks
}

// split breaks text into pieces of at most chunkSize characters, trying
// each separator in order before resorting to a hard cut.
func (s *Segmenter) split(text string, seps []string) []string {
	if len(text) <= s.chunkSize {
		return []string{text}
	}

	if len(seps) == 0 {
		return s.hardCut(text)
	}

	sep := seps[0]
	if !strings.Contains(text, sep) {
		return s.split(text, seps[1:])
	}

	parts := strings.SplitAfter(text, sep)

	// Oversized parts are re-split at the next finer boundary.
	flat := make([]string, 0, len(parts))
	for _, part := range parts {
		if len(part) > s.chunkSize {
			flat = append(flat, s.split(part, seps[1:])...)
		} else {
			flat = append(flat, part)
		}
	}

	return s.merge(flat)
}

// merge greedily packs parts into chunks up to chunkSize, seeding each new
// chunk with the overlap suffix of its predecessor.
func (s *Segmenter) merge(parts []string) []string {
	var out []string
	var current strings.Builder
	seedLen := 0

	flush := func() {
		piece := strings.TrimSpace(current.String())
		if piece != "" {
			out = append(out, piece)
		}
		current.Reset()
		seedLen = 0
		if len(out) > 0 && s.overlap > 0 {
			prev := out[len(out)-1]
			seed := prev
			if len(prev) > s.overlap {
				seed = prev[boundaryAfter(prev, len(prev)-s.overlap):]
			}
			current.WriteString(seed)
			seedLen = len(seed)
		}
	}

	for _, part := range parts {
		if current.Len()+len(part) > s.chunkSize {
			if current.Len() > seedLen {
				flush()
			}
			// Drop the seed rather than exceed the size bound.
			if current.Len()+len(part) > s.chunkSize && current.Len() == seedLen {
				current.Reset()
				seedLen = 0
			}
		}
		current.WriteString(part)
	}

	if current.Len() > seedLen {
		if piece := strings.TrimSpace(current.String()); piece != "" {
			out = append(out, piece)
		}
	}

	return out
}

// hardCut slices text at fixed offsets with overlap carry-over.
// Cut points are pulled back to rune boundaries so multibyte
// characters are never severed.
func (s *Segmenter) hardCut(text string) []string {
	step := s.chunkSize - s.overlap
	if step <= 0 {
		step = s.chunkSize
	}

	var out []string
	start := 0
	for start < len(text) {
		end := len(text)
		if start+s.chunkSize < len(text) {
			end = boundaryBefore(text, start+s.chunkSize)
		}
		out = append(out, text[start:end])
		if end == len(text) {
			break
		}

		next := boundaryBefore(text, start+step)
		if next <= start {
			next = end
		}
		start = next
	}

	return out
}

// boundaryBefore returns the largest rune boundary in s not after i.
func boundaryBefore(s string, i int) int {
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}

// boundaryAfter returns the smallest rune boundary in s not before i.
func boundaryAfter(s string, i int) int {
	for i < len(s) && !utf8.RuneStart(s[i]) {
		i++
	}
	return i
}
