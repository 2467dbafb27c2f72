package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNewVocabularyWord(t *testing.T) {
	t.Parallel() // Enable parallel execution

	word, err := NewVocabularyWord("你好", "nǐ hǎo", "hello", "HSK1", "greetings")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if word.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}
	if word.Character != "你好" {
		t.Errorf("Expected character 你好, got %s", word.Character)
	}
	if word.Level != "HSK1" {
		t.Errorf("Expected level HSK1, got %s", word.Level)
	}
}

func TestNewVocabularyWordValidation(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		character  string
		definition string
		wantErr    error
	}{
		{
			name:       "empty character rejected",
			character:  "",
			definition: "hello",
			wantErr:    ErrWordCharacterEmpty,
		},
		{
			name:       "empty definition rejected",
			character:  "你好",
			definition: "",
			wantErr:    ErrWordDefinitionEmpty,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewVocabularyWord(tc.character, "pin", tc.definition, "HSK1", "misc")
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Expected error %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestWordIDStable(t *testing.T) {
	t.Parallel()

	// The same source fields must always map to the same identifier, so
	// progress survives a dictionary reload.
	a := WordID("学习", "xué xí", "to study")
	b := WordID("学习", "xué xí", "to study")
	if a != b {
		t.Errorf("Expected identical IDs, got %s and %s", a, b)
	}

	// Any field change must produce a different identifier.
	c := WordID("学习", "xué xí", "to learn")
	if a == c {
		t.Error("Expected different IDs for different definitions")
	}

	// Field boundaries matter: shifting content across the separator must
	// not collide.
	d := WordID("学", "习xué xí", "to study")
	if a == d {
		t.Error("Expected different IDs for different field boundaries")
	}

	// Fields containing a separator-looking character must not collide
	// with the same bytes split differently across fields.
	e := WordID("a|b", "c", "to study")
	f := WordID("a", "b|c", "to study")
	if e == f {
		t.Error("Expected different IDs when punctuation shifts across fields")
	}
}
