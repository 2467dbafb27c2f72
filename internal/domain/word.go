package domain

import (
	"errors"

	"github.com/google/uuid"
)

// Word-specific validation errors
var (
	// ErrWordCharacterEmpty is returned when a word has no display text.
	ErrWordCharacterEmpty = errors.New("word character cannot be empty")

	// ErrWordDefinitionEmpty is returned when a word has no definition.
	ErrWordDefinitionEmpty = errors.New("word definition cannot be empty")
)

// wordNamespace is the fixed UUID namespace used to derive stable word IDs.
// It must never change: progress records reference word IDs derived from it,
// and a changed namespace would orphan all existing progress.
var wordNamespace = uuid.MustParse("8f0e2f5a-1c84-4b55-9a52-6c2d7e3b9f10")

// VocabularyWord is a single dictionary entry. Words are immutable and
// externally supplied; the scheduling engine never modifies them.
//
// The ID is derived deterministically from the immutable source fields, so
// reloading the dictionary maps each word to the same identifier and existing
// progress records stay attached to it.
type VocabularyWord struct {
	ID         uuid.UUID `json:"id"`
	Character  string    `json:"character"`
	Pinyin     string    `json:"pinyin"`
	Definition string    `json:"definition"`
	Level      string    `json:"level"`
	Category   string    `json:"category"`
}

// WordID returns the stable identifier for a word with the given source
// fields. The same inputs always produce the same UUID across reloads.
// Fields are NUL-separated in the hashed key so content from one field
// cannot bleed into the next and collide with a different word.
func WordID(character, pinyin, definition string) uuid.UUID {
	key := character + "\x00" + pinyin + "\x00" + definition
	return uuid.NewSHA1(wordNamespace, []byte(key))
}

// NewVocabularyWord creates a VocabularyWord with a stable content-derived ID.
// Returns an error if validation fails.
func NewVocabularyWord(character, pinyin, definition, level, category string) (*VocabularyWord, error) {
	word := &VocabularyWord{
		ID:         WordID(character, pinyin, definition),
		Character:  character,
		Pinyin:     pinyin,
		Definition: definition,
		Level:      level,
		Category:   category,
	}

	if err := word.Validate(); err != nil {
		return nil, err
	}

	return word, nil
}

// Validate checks if the VocabularyWord has valid data.
// Returns an error if any field fails validation.
func (w *VocabularyWord) Validate() error {
	if w.Character == "" {
		return ErrWordCharacterEmpty
	}

	if w.Definition == "" {
		return ErrWordDefinitionEmpty
	}

	return nil
}
