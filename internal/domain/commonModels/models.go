package commonModels

import (
	"path"
	"time"
)

// RawDocument is one extracted pdf member of a subject archive.
type RawDocument struct {
	Name    string `json:"doc_name"`
	Class   string `json:"class"`
	Subject string `json:"subject"`
	Archive string `json:"archive"`
	Text    string `json:"-"`
}

// Chunk is immutable once produced; Index is the position inside Source.
type Chunk struct {
	Text   string `json:"content"`
	Source string `json:"doc_name"`
	Index  int    `json:"chunk_order"`
}

// Corpus holds the chunks of the active selection twice: flat in load order and grouped per document.
type Corpus struct {
	Chunks        []Chunk
	Documents     map[string][]Chunk
	DocumentOrder []string
}

func NewCorpus() *Corpus {
	return &Corpus{
		Documents: make(map[string][]Chunk),
	}
}

// Add appends chunks to the flat sequence and sets the document entry. A repeated name replaces the
// mapping entry while the flat sequence keeps both copies.
func (c *Corpus) Add(name string, chunks []Chunk) {
	c.Chunks = append(c.Chunks, chunks...)
	if _, seen := c.Documents[name]; !seen {
		c.DocumentOrder = append(c.DocumentOrder, name)
	}
	c.Documents[name] = chunks
}

func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Chunks)
}

func (c *Corpus) DocumentCount() int {
	if c == nil {
		return 0
	}
	return len(c.Documents)
}

// Lookup finds a document by exact name, then by a unique base name match so "lesson1.pdf" finds
// "english/lesson1.pdf" when the archive stores members under folders.
func (c *Corpus) Lookup(name string) ([]Chunk, bool) {
	if c == nil {
		return nil, false
	}
	if chunks, ok := c.Documents[name]; ok {
		return chunks, true
	}
	var found []Chunk
	matches := 0
	for _, docName := range c.DocumentOrder {
		if path.Base(docName) == name {
			found = c.Documents[docName]
			matches++
		}
	}
	if matches == 1 {
		return found, true
	}
	return nil, false
}

// Selection is zero until a class and subject have been loaded.
type Selection struct {
	Class         string `json:"class"`
	Subject       string `json:"subject"`
	ClassFolder   string `json:"-"`
	SubjectFilter string `json:"-"`
}

func (s Selection) IsSet() bool {
	return s.Class != "" && s.Subject != ""
}

// ChatEntry is one question/answer pair in the transcript.
type ChatEntry struct {
	Id        string    `json:"id"`
	Class     string    `json:"class"`
	Subject   string    `json:"subject"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Mode      string    `json:"mode"`
	Sources   []string  `json:"sources"`
	CreatedAt time.Time `json:"created_at"`
}
