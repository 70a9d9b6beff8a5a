// Package chunker splits document text into size-bounded, overlapping
// chunks along sentence boundaries.
package chunker

import (
	"strings"

	"github.com/custodia-labs/blograg/internal/logger"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 500

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 100

// Splitter splits text into chunks of at most chunkSize characters, with
// consecutive chunks sharing a trailing word window of at most overlap
// characters.
type Splitter struct {
	chunkSize int
	overlap   int
}

// Option configures the splitter.
type Option func(*Splitter)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(s *Splitter) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(s *Splitter) {
		if overlap >= 0 {
			s.overlap = overlap
		}
	}
}

// New creates a new splitter with the given options.
func New(opts ...Option) *Splitter {
	s := &Splitter{
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

// ChunkSize returns the configured chunk size.
func (s *Splitter) ChunkSize() int { return s.chunkSize }

// Overlap returns the configured overlap.
func (s *Splitter) Overlap() int { return s.overlap }

// Split splits text into chunks. It is deterministic and side-effect-free.
// Empty or whitespace-only input yields no chunks.
func (s *Splitter) Split(text string) []string {
	return Split(text, s.chunkSize, s.overlap)
}

// Split splits text into chunks of at most chunkSize characters.
//
// Sentences are accumulated greedily; when the next sentence would not
// fit, the chunk is closed and the next one is seeded with a trailing
// window of whole words from the closed chunk, bounded by chunkOverlap
// characters. A sentence longer than chunkSize is split on word
// boundaries; every full piece is emitted directly and the final partial
// piece seeds the next chunk. The only chunks allowed to exceed chunkSize
// are single atomic tokens that cannot be split further.
func Split(text string, chunkSize, chunkOverlap int) []string {
	// Collapse whitespace runs to single spaces and trim.
	text = strings.Join(strings.Fields(text), " ")
	if text == "" || chunkSize <= 0 {
		return nil
	}

	var chunks []string
	var cur []string
	curLen := 0

	add := func(part string) {
		if curLen == 0 {
			curLen = len(part)
		} else {
			curLen += 1 + len(part)
		}
		cur = append(cur, part)
	}

	for _, sentence := range splitSentences(text) {
		if len(sentence) > chunkSize {
			// Oversized sentence: close the running chunk, then split the
			// sentence on word boundaries. All full pieces become chunks of
			// their own; the final partial piece seeds the next chunk.
			if len(cur) > 0 {
				chunks = append(chunks, strings.Join(cur, " "))
				cur, curLen = nil, 0
			}
			pieces := packWords(strings.Split(sentence, " "), chunkSize)
			for _, piece := range pieces[:len(pieces)-1] {
				chunks = append(chunks, piece)
			}
			add(pieces[len(pieces)-1])
			continue
		}

		if curLen == 0 || curLen+1+len(sentence) <= chunkSize {
			add(sentence)
			continue
		}

		// Close the current chunk and seed the next with a trailing
		// overlap window from its end.
		closed := strings.Join(cur, " ")
		chunks = append(chunks, closed)
		cur, curLen = nil, 0
		for _, w := range overlapWindow(closed, chunkOverlap, chunkSize-len(sentence)-1) {
			add(w)
		}
		add(sentence)
	}

	if len(cur) > 0 {
		last := strings.Join(cur, " ")
		switch {
		case len(last) <= chunkSize:
			chunks = append(chunks, last)
		case len(cur) == 1 && !strings.Contains(last, " "):
			// Single atomic token longer than the chunk size.
			chunks = append(chunks, last)
		default:
			logger.Warn("dropping trailing chunk of %d chars exceeding limit %d", len(last), chunkSize)
		}
	}

	return chunks
}

// splitSentences splits on terminal punctuation followed by whitespace.
// A rough approximation, not true sentence segmentation: abbreviations
// may over-split. The punctuation stays with its sentence.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for i := 0; i < len(text)-1; i++ {
		c := text[i]
		if (c == '.' || c == '!' || c == '?') && text[i+1] == ' ' {
			sentences = append(sentences, text[start:i+1])
			start = i + 2
		}
	}
	if start < len(text) {
		sentences = append(sentences, text[start:])
	}
	return sentences
}

// packWords greedily packs words into consecutive pieces of at most size
// characters. A single word longer than size forms its own piece.
func packWords(words []string, size int) []string {
	var pieces []string
	var piece []string
	pieceLen := 0
	for _, w := range words {
		projected := pieceLen + len(w)
		if pieceLen > 0 {
			projected++
		}
		if pieceLen > 0 && projected > size {
			pieces = append(pieces, strings.Join(piece, " "))
			piece, pieceLen = nil, 0
		}
		if pieceLen == 0 {
			pieceLen = len(w)
		} else {
			pieceLen += 1 + len(w)
		}
		piece = append(piece, w)
	}
	if len(piece) > 0 {
		pieces = append(pieces, strings.Join(piece, " "))
	}
	return pieces
}

// overlapWindow collects whole words backward from the end of closed
// until adding one more would exceed overlap characters, or until the
// window no longer leaves room for the incoming sentence (budget). The
// budget keeps seeded chunks within the size limit.
func overlapWindow(closed string, overlap, budget int) []string {
	if overlap <= 0 || budget <= 0 {
		return nil
	}
	if budget < overlap {
		overlap = budget
	}
	words := strings.Split(closed, " ")
	var window []string
	windowLen := 0
	for i := len(words) - 1; i >= 0; i-- {
		projected := windowLen + len(words[i])
		if windowLen > 0 {
			projected++
		}
		if projected > overlap {
			break
		}
		window = append([]string{words[i]}, window...)
		windowLen = projected
	}
	return window
}
