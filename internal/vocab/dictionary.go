// Package vocab holds the static vocabulary dictionary. The dictionary is
// loaded once at startup from an external source and never mutated; the
// scheduling engine only reads from it.
package vocab

import (
	"sort"

	"github.com/google/uuid"

	"github.com/hanzideck/hanzideck-api/internal/domain"
)

// Dictionary is an immutable, indexed collection of vocabulary words.
type Dictionary struct {
	words []*domain.VocabularyWord
	byID  map[uuid.UUID]*domain.VocabularyWord
}

// NewDictionary builds a dictionary from a list of words. Duplicate IDs
// (identical source fields appearing twice) keep the first occurrence.
func NewDictionary(words []*domain.VocabularyWord) *Dictionary {
	d := &Dictionary{
		byID: make(map[uuid.UUID]*domain.VocabularyWord, len(words)),
	}
	for _, w := range words {
		if _, dup := d.byID[w.ID]; dup {
			continue
		}
		d.byID[w.ID] = w
		d.words = append(d.words, w)
	}
	return d
}

// All returns every word in the dictionary in load order.
// The returned slice must not be modified.
func (d *Dictionary) All() []*domain.VocabularyWord {
	return d.words
}

// Get returns the word with the given ID, or nil if it does not exist.
func (d *Dictionary) Get(id uuid.UUID) *domain.VocabularyWord {
	return d.byID[id]
}

// Filter returns the words passing the given level/category filters, in
// load order. An unknown level or category simply matches nothing.
func (d *Dictionary) Filter(filters domain.Filters) []*domain.VocabularyWord {
	var out []*domain.VocabularyWord
	for _, w := range d.words {
		if filters.Match(w) {
			out = append(out, w)
		}
	}
	return out
}

// Levels returns the distinct level tags present in the dictionary, sorted.
func (d *Dictionary) Levels() []string {
	return distinct(d.words, func(w *domain.VocabularyWord) string { return w.Level })
}

// Categories returns the distinct category tags present in the dictionary, sorted.
func (d *Dictionary) Categories() []string {
	return distinct(d.words, func(w *domain.VocabularyWord) string { return w.Category })
}

// Len returns the number of words in the dictionary.
func (d *Dictionary) Len() int {
	return len(d.words)
}

func distinct(words []*domain.VocabularyWord, field func(*domain.VocabularyWord) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, w := range words {
		v := field(w)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
