package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/daily-word/backend/internal/models"
)

//go:embed words.json
var wordsRawJSON []byte

// Catalog is the ordered, immutable word list. Words are addressed by their
// index; the length is fixed for the life of the process.
type Catalog struct {
	words []models.WordEntry
}

// Load parses the embedded word list.
func Load() (*Catalog, error) {
	var words []models.WordEntry
	if err := json.Unmarshal(wordsRawJSON, &words); err != nil {
		return nil, fmt.Errorf("parse word catalog: %w", err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word catalog is empty")
	}
	return &Catalog{words: words}, nil
}

// FromWords builds a catalog from an explicit word list. Used by tests.
func FromWords(words []models.WordEntry) *Catalog {
	return &Catalog{words: words}
}

// Count returns the number of words in the catalog.
func (c *Catalog) Count() int {
	return len(c.words)
}

// Word returns the entry at index, or false when out of range.
func (c *Catalog) Word(index int) (models.WordEntry, bool) {
	if index < 0 || index >= len(c.words) {
		return models.WordEntry{}, false
	}
	return c.words[index], true
}

// FindByText returns the index of the entry whose word matches text,
// case-insensitively, or -1.
func (c *Catalog) FindByText(text string) int {
	text = strings.ToLower(strings.TrimSpace(text))
	for i, w := range c.words {
		if strings.ToLower(w.Word) == text {
			return i
		}
	}
	return -1
}

// WordTexts returns catalog index → word text for the given indices, for
// feeding the text scanner. Out-of-range indices are skipped.
func (c *Catalog) WordTexts(indices []int) map[int]string {
	texts := make(map[int]string, len(indices))
	for _, i := range indices {
		if i >= 0 && i < len(c.words) {
			texts[i] = c.words[i].Word
		}
	}
	return texts
}
