package ingest

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain text is kept", "Hello, world!", "Hello, world!"},
		{"whitespace collapses", "  a \t\n b\n\nc  ", "a b c"},
		{"symbols become spaces", "x*y=z#1", "x y z 1"},
		{"punctuation survives", "Q: why? A; because - yes.", "Q: why? A; because - yes."},
		{"non ascii letters are dropped", "café naïve", "caf na ve"},
		{"empty", "", ""},
		{"only symbols", "@#$%^&*()", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeText(tt.input); got != tt.expected {
				t.Errorf("NormalizeText(%q) = %q; want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeText_Idempotent(t *testing.T) {
	inputs := []string{
		"Chapter 1:\n\n The  Sun & the Moon (part 2)...",
		" ~tabs\tand lines\r\n",
		"already clean text.",
	}
	for _, in := range inputs {
		once := NormalizeText(in)
		if twice := NormalizeText(once); twice != once {
			t.Errorf("normalizing twice changed %q into %q", once, twice)
		}
	}
}

func TestSplitText_InvalidConfig(t *testing.T) {
	tests := []struct {
		size, overlap int
	}{
		{0, 0},
		{-1, 0},
		{10, 10},
		{10, 11},
		{10, -1},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("size=%d overlap=%d", tt.size, tt.overlap), func(t *testing.T) {
			_, err := SplitText("some text", tt.size, tt.overlap)
			if !errors.Is(err, ErrInvalidChunkConfig) {
				t.Fatalf("expected ErrInvalidChunkConfig, got %v", err)
			}
		})
	}
}

func TestSplitText_Cuts(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		size, overlap int
		expected      []string
	}{
		{"empty input", "", 10, 2, nil},
		{"fits in one chunk", "short text", 10, 2, []string{"short text"}},
		{"sentence end then word boundary", "Aaaa bbbb. Cccc dddd eeee", 15, 2, []string{"Aaaa bbbb.", "b. Cccc dddd ", "d eeee"}},
		{"paragraph break wins", "ab\n\ncd efgh", 8, 1, []string{"ab\n\n", "\ncd efgh"}},
		{"hard cut without separators", "abcdefghij", 4, 1, []string{"abcd", "defg", "ghij"}},
		{"measured in runes", "ééééé", 2, 0, []string{"éé", "éé", "é"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitText(tt.text, tt.size, tt.overlap)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("SplitText = %q; want %q", got, tt.expected)
			}
		})
	}
}

func TestSplitText_Reconstruction(t *testing.T) {
	sample := strings.Repeat("The water cycle moves water around the earth. Rain falls! Does it stop? ", 40) +
		"\n\nA new paragraph starts here with more words than before. " +
		strings.Repeat("x", 700) + " tail words"

	configs := []struct{ size, overlap int }{
		{500, 50}, {100, 0}, {64, 63}, {37, 5}, {1, 0},
	}
	for _, c := range configs {
		t.Run(fmt.Sprintf("size=%d overlap=%d", c.size, c.overlap), func(t *testing.T) {
			chunks, err := SplitText(sample, c.size, c.overlap)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			var rebuilt strings.Builder
			for i, chunk := range chunks {
				runes := []rune(chunk)
				if len(runes) > c.size {
					t.Fatalf("chunk %d has %d runes, limit %d", i, len(runes), c.size)
				}
				if i == 0 {
					rebuilt.WriteString(chunk)
					continue
				}
				prev := []rune(chunks[i-1])
				if string(prev[len(prev)-c.overlap:]) != string(runes[:c.overlap]) {
					t.Fatalf("chunk %d does not start with the overlap of chunk %d", i, i-1)
				}
				rebuilt.WriteString(string(runes[c.overlap:]))
			}
			if rebuilt.String() != sample {
				t.Fatal("chunks do not rebuild the input")
			}

			again, _ := SplitText(sample, c.size, c.overlap)
			if !reflect.DeepEqual(chunks, again) {
				t.Fatal("splitting is not deterministic")
			}
		})
	}
}

func TestExtractPDFText_InvalidInput(t *testing.T) {
	inputs := map[string][]byte{
		"garbage":   []byte("this is definitely not a pdf document, just some bytes"),
		"empty":     {},
		"truncated": []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog"),
	}
	for name, data := range inputs {
		t.Run(name, func(t *testing.T) {
			_, err := ExtractPDFText(name+".pdf", data)
			var extractionErr *ExtractionError
			if !errors.As(err, &extractionErr) {
				t.Fatalf("expected *ExtractionError, got %v", err)
			}
			if extractionErr.Name != name+".pdf" {
				t.Errorf("unexpected name %q", extractionErr.Name)
			}
		})
	}
}

func TestExtractPDFText_SinglePage(t *testing.T) {
	data := buildPDF("Plants need sunlight")
	text, err := ExtractPDFText("plants.pdf", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, "Plants need sunlight") {
		t.Errorf("expected page text, got %q", text)
	}
}

// buildPDF writes a one page pdf with exact xref offsets.
func buildPDF(text string) []byte {
	content := fmt.Sprintf("BT /F1 24 Tf 72 700 Td (%s) Tj ET", text)
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, body := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

// --- Loader ---

func writeZip(t *testing.T, path string, members map[string]string, order []string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	zw := zip.NewWriter(f)
	for _, name := range order {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(members[name])); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
}

// textExtractor treats member bytes as the document text and fails on "broken" members.
func textExtractor(name string, data []byte) (string, error) {
	if strings.Contains(name, "broken") {
		return "", &ExtractionError{Name: name, Err: errors.New("bad pdf")}
	}
	return string(data), nil
}

func newTestLoader(t *testing.T) (*Loader, string) {
	t.Helper()
	root := t.TempDir()
	classDir := filepath.Join(root, "class3_books")
	if err := os.MkdirAll(classDir, 0o755); err != nil {
		t.Fatal(err)
	}

	writeZip(t, filepath.Join(classDir, "a_english.zip"), map[string]string{
		"lesson1.pdf":  "The cat sat on the mat.",
		"notes.txt":    "ignored because it is not a pdf",
		"broken.pdf":   "unused",
		"shared.pdf":   "first copy of shared",
		"folder/x.pdf": "Nested document text.",
	}, []string{"lesson1.pdf", "notes.txt", "broken.pdf", "shared.pdf", "folder/x.pdf"})

	writeZip(t, filepath.Join(classDir, "b_English_extra.zip"), map[string]string{
		"shared.pdf": "second copy of shared",
		"empty.pdf":  "   ",
	}, []string{"shared.pdf", "empty.pdf"})

	writeZip(t, filepath.Join(classDir, "maths.zip"), map[string]string{
		"numbers.pdf": "One two three.",
	}, []string{"numbers.pdf"})

	if err := os.WriteFile(filepath.Join(classDir, "corrupt_english.zip"), []byte("not a zip"), 0o644); err != nil {
		t.Fatal(err)
	}

	loader := NewLoader(root)
	loader.Extract = textExtractor
	return loader, root
}

func TestLoader_Load(t *testing.T) {
	loader, _ := newTestLoader(t)

	corpus, ok := loader.Load(context.Background(), "class3_books", "english")
	if !ok {
		t.Fatal("expected load to succeed")
	}

	var sources []string
	for _, c := range corpus.Chunks {
		sources = append(sources, c.Source)
	}
	expectedSources := []string{"lesson1.pdf", "shared.pdf", "folder/x.pdf", "shared.pdf"}
	if !reflect.DeepEqual(sources, expectedSources) {
		t.Errorf("flat sequence sources = %v; want %v", sources, expectedSources)
	}

	if got := corpus.Documents["shared.pdf"]; len(got) != 1 || got[0].Text != "second copy of shared" {
		t.Errorf("expected later archive to replace mapping entry, got %+v", got)
	}
	if _, ok := corpus.Documents["broken.pdf"]; ok {
		t.Error("failing member should be skipped")
	}
	if _, ok := corpus.Documents["notes.txt"]; ok {
		t.Error("non pdf member should be ignored")
	}
	if _, ok := corpus.Documents["numbers.pdf"]; ok {
		t.Error("subject filter should exclude maths archive")
	}
	if chunks, ok := corpus.Documents["empty.pdf"]; !ok || len(chunks) != 0 {
		t.Errorf("empty document should be recorded without chunks, got %v %v", chunks, ok)
	}
	if chunks, ok := corpus.Lookup("x.pdf"); !ok || chunks[0].Source != "folder/x.pdf" {
		t.Errorf("expected base name lookup to find folder/x.pdf")
	}
}

func TestLoader_LoadOutcomes(t *testing.T) {
	loader, _ := newTestLoader(t)

	tests := []struct {
		name       string
		class      string
		filter     string
		expectOK   bool
		expectDocs int
	}{
		{"missing class folder", "class9_books", "english", false, 0},
		{"no matching archive", "class3_books", "evs", false, 0},
		{"filter is case insensitive", "class3_books", "MATHS", true, 1},
		{"empty filter keeps all archives", "class3_books", "", true, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			corpus, ok := loader.Load(context.Background(), tt.class, tt.filter)
			if ok != tt.expectOK {
				t.Fatalf("ok = %v; want %v", ok, tt.expectOK)
			}
			if corpus == nil {
				t.Fatal("corpus must never be nil")
			}
			if corpus.DocumentCount() != tt.expectDocs {
				t.Errorf("documents = %d; want %d", corpus.DocumentCount(), tt.expectDocs)
			}
		})
	}
}

func TestLoader_ChunkIndexes(t *testing.T) {
	root := t.TempDir()
	classDir := filepath.Join(root, "class4_books")
	if err := os.MkdirAll(classDir, 0o755); err != nil {
		t.Fatal(err)
	}
	long := strings.Repeat("Leaves are green. ", 20)
	writeZip(t, filepath.Join(classDir, "evs.zip"), map[string]string{"leaves.pdf": long}, []string{"leaves.pdf"})

	loader := NewLoader(root)
	loader.Extract = textExtractor
	loader.ChunkSize = 50
	loader.ChunkOverlap = 5

	corpus, ok := loader.Load(context.Background(), "class4_books", "evs")
	if !ok {
		t.Fatal("expected chunks")
	}
	chunks := corpus.Documents["leaves.pdf"]
	if len(chunks) < 2 {
		t.Fatalf("expected several chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if c.Index != i || c.Source != "leaves.pdf" {
			t.Errorf("chunk %d has index %d source %q", i, c.Index, c.Source)
		}
	}
}

func TestLoader_CancelledContext(t *testing.T) {
	loader, _ := newTestLoader(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	corpus, ok := loader.Load(ctx, "class3_books", "english")
	if ok || corpus.Len() != 0 {
		t.Fatalf("expected empty corpus on cancelled context, got %d chunks", corpus.Len())
	}
}
