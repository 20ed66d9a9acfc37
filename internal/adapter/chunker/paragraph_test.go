package chunker

import (
	"strings"
	"testing"

	"docqa/internal/domain"
)

func TestParagraphChunkerBasic(t *testing.T) {
	chunker := NewParagraphChunker()

	doc := domain.Document{
		Path:    "/test/story.txt",
		Content: "Once upon a time.\n\na wolf appeared.",
	}

	chunks, err := chunker.Chunk(doc)
	if err != nil {
		t.Fatal(err)
	}

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].Text != "Once upon a time." {
		t.Errorf("expected first chunk 'Once upon a time.', got %q", chunks[0].Text)
	}
	if chunks[1].Text != "a wolf appeared." {
		t.Errorf("expected second chunk 'a wolf appeared.', got %q", chunks[1].Text)
	}
	if chunks[0].Index != 0 || chunks[1].Index != 1 {
		t.Errorf("expected indices 0,1, got %d,%d", chunks[0].Index, chunks[1].Index)
	}
}

func TestParagraphChunkerReconstruction(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"single paragraph", "just one paragraph with no breaks"},
		{"two paragraphs", "first paragraph\n\nsecond paragraph"},
		{"trailing delimiter", "paragraph one\n\nparagraph two\n\n"},
		{"leading delimiter", "\n\nstarts with a break"},
		{"triple newline", "alpha\n\n\nbeta"},
		{"quadruple newline", "alpha\n\n\n\nbeta"},
		{"internal single newlines", "line one\nline two\n\nline three\nline four"},
		{"whitespace paragraphs", "  \n\n\t\n\n  "},
	}

	chunker := NewParagraphChunker()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks, err := chunker.Chunk(domain.Document{Content: tt.content})
			if err != nil {
				t.Fatal(err)
			}

			texts := make([]string, len(chunks))
			for i, c := range chunks {
				texts[i] = c.Text
			}

			if got := strings.Join(texts, "\n\n"); got != tt.content {
				t.Errorf("reconstruction mismatch:\n got %q\nwant %q", got, tt.content)
			}
		})
	}
}

func TestParagraphChunkerEmptyContent(t *testing.T) {
	chunker := NewParagraphChunker()

	chunks, err := chunker.Chunk(domain.Document{Content: ""})
	if err != nil {
		t.Fatal(err)
	}

	if len(chunks) != 1 {
		t.Fatalf("expected exactly 1 chunk for empty content, got %d", len(chunks))
	}
	if chunks[0].Text != "" {
		t.Errorf("expected empty chunk text, got %q", chunks[0].Text)
	}
	if chunks[0].Index != 0 {
		t.Errorf("expected index 0, got %d", chunks[0].Index)
	}
}

func TestParagraphChunkerConsecutiveBreaks(t *testing.T) {
	chunker := NewParagraphChunker()

	// Four newlines are two adjacent delimiters: the segment between
	// them is empty and must be kept.
	chunks, err := chunker.Chunk(domain.Document{Content: "alpha\n\n\n\nbeta"})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"alpha", "", "beta"}
	if len(chunks) != len(want) {
		t.Fatalf("expected %d chunks, got %d", len(want), len(chunks))
	}
	for i, w := range want {
		if chunks[i].Text != w {
			t.Errorf("chunk %d: expected %q, got %q", i, w, chunks[i].Text)
		}
	}

	// Three newlines leave a stray newline at the start of the next
	// segment. No trimming happens.
	chunks, err = chunker.Chunk(domain.Document{Content: "alpha\n\n\nbeta"})
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[1].Text != "\nbeta" {
		t.Errorf("expected %q, got %q", "\nbeta", chunks[1].Text)
	}
}

func TestParagraphChunkerDeterminism(t *testing.T) {
	chunker := NewParagraphChunker()
	doc := domain.Document{Content: "one\n\ntwo\n\nthree\n\n\nfour"}

	first, err := chunker.Chunk(doc)
	if err != nil {
		t.Fatal(err)
	}
	second, err := chunker.Chunk(doc)
	if err != nil {
		t.Fatal(err)
	}

	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("chunk %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestParagraphChunkerIndices(t *testing.T) {
	chunker := NewParagraphChunker()

	chunks, err := chunker.Chunk(domain.Document{Content: "a\n\nb\n\nc\n\nd\n\ne"})
	if err != nil {
		t.Fatal(err)
	}

	for i, c := range chunks {
		if c.Index != i {
			t.Errorf("expected sequential index %d, got %d", i, c.Index)
		}
	}
}
