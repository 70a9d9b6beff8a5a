package chunker

import (
	"strings"
	"testing"
)

func TestSplitEmptyInput(t *testing.T) {
	if got := Split("", 500, 100); got != nil {
		t.Errorf("Split(empty) = %v, want nil", got)
	}
	if got := Split("   \n\t  ", 500, 100); got != nil {
		t.Errorf("Split(whitespace) = %v, want nil", got)
	}
}

func TestSplitShortTextSingleChunk(t *testing.T) {
	text := "A short sentence. Another one."
	got := Split(text, 500, 100)
	if len(got) != 1 {
		t.Fatalf("got %d chunks, want 1", len(got))
	}
	if got[0] != text {
		t.Errorf("chunk = %q, want %q", got[0], text)
	}
}

func TestSplitCollapsesWhitespace(t *testing.T) {
	got := Split("one\n\ntwo\t three", 500, 100)
	if len(got) != 1 {
		t.Fatalf("got %d chunks, want 1", len(got))
	}
	if got[0] != "one two three" {
		t.Errorf("chunk = %q, want %q", got[0], "one two three")
	}
}

func TestSplitSentenceOverlap(t *testing.T) {
	got := Split("Sentence one. Sentence two. Sentence three.", 20, 5)
	want := []string{
		"Sentence one.",
		"one. Sentence two.",
		"two. Sentence three.",
	}
	if len(got) != len(want) {
		t.Fatalf("got %d chunks %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("chunk %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSplitChunksNeverExceedSize(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 80; i++ {
		sb.WriteString("The quick brown fox jumps over the lazy dog. ")
	}
	for _, size := range []int{50, 100, 500} {
		for _, chunk := range Split(sb.String(), size, size/5) {
			if len(chunk) > size {
				t.Errorf("size %d: chunk of %d chars: %q", size, len(chunk), chunk)
			}
		}
	}
}

func TestSplitOversizedSentenceOnWordBoundaries(t *testing.T) {
	// One 60+ char sentence, no internal terminal punctuation.
	text := "alpha beta gamma delta epsilon zeta eta theta iota kappa lambda."
	got := Split(text, 20, 5)
	if len(got) < 2 {
		t.Fatalf("expected multiple chunks, got %v", got)
	}
	for _, chunk := range got {
		if len(chunk) > 20 {
			t.Errorf("chunk of %d chars: %q", len(chunk), chunk)
		}
	}
	// All words survive, in order.
	rejoined := strings.Fields(strings.Join(got, " "))
	original := strings.Fields(text)
	j := 0
	for _, w := range rejoined {
		if j < len(original) && w == original[j] {
			j++
		}
	}
	if j != len(original) {
		t.Errorf("words lost: matched %d of %d in %v", j, len(original), got)
	}
}

func TestSplitAtomicTokenExceedsSize(t *testing.T) {
	token := "supercalifragilisticexpialidocious"
	got := Split(token, 10, 2)
	if len(got) != 1 {
		t.Fatalf("got %d chunks %v, want 1", len(got), got)
	}
	if got[0] != token {
		t.Errorf("chunk = %q, want the unsplittable token intact", got[0])
	}
}

func TestSplitDeterministic(t *testing.T) {
	text := "First sentence here. Second sentence follows. Third closes it out."
	a := Split(text, 30, 10)
	b := Split(text, 30, 10)
	if len(a) != len(b) {
		t.Fatalf("non-deterministic chunk count: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("chunk %d differs: %q vs %q", i, a[i], b[i])
		}
	}
}

func TestNewCapsOverlapAtQuarterSize(t *testing.T) {
	s := New(WithChunkSize(100), WithOverlap(200))
	if s.Overlap() != 25 {
		t.Errorf("overlap = %d, want 25", s.Overlap())
	}
	if s.ChunkSize() != 100 {
		t.Errorf("chunk size = %d, want 100", s.ChunkSize())
	}
}

func TestNewDefaults(t *testing.T) {
	s := New()
	if s.ChunkSize() != DefaultChunkSize {
		t.Errorf("chunk size = %d, want %d", s.ChunkSize(), DefaultChunkSize)
	}
	if s.Overlap() != DefaultChunkOverlap {
		t.Errorf("overlap = %d, want %d", s.Overlap(), DefaultChunkOverlap)
	}
}

func TestSplitSentences(t *testing.T) {
	got := splitSentences("One. Two! Three? Four")
	want := []string{"One.", "Two!", "Three?", "Four"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sentence %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSplitSentencesNoTerminator(t *testing.T) {
	got := splitSentences("no punctuation at all")
	if len(got) != 1 || got[0] != "no punctuation at all" {
		t.Errorf("got %v, want the whole text as one sentence", got)
	}
}
