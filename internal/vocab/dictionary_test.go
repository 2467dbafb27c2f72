package vocab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanzideck/hanzideck-api/internal/domain"
)

func mustWord(t *testing.T, character, pinyin, definition, level, category string) *domain.VocabularyWord {
	t.Helper()
	w, err := domain.NewVocabularyWord(character, pinyin, definition, level, category)
	require.NoError(t, err)
	return w
}

func TestDictionaryFilter(t *testing.T) {
	t.Parallel()

	dict := NewDictionary([]*domain.VocabularyWord{
		mustWord(t, "水", "shuǐ", "water", "HSK1", "nature"),
		mustWord(t, "火", "huǒ", "fire", "HSK1", "nature"),
		mustWord(t, "米饭", "mǐ fàn", "rice", "HSK1", "food"),
		mustWord(t, "经济", "jīng jì", "economy", "HSK4", "society"),
	})

	assert.Len(t, dict.Filter(domain.Filters{}), 4)
	assert.Len(t, dict.Filter(domain.Filters{Levels: []string{"HSK1"}}), 3)
	assert.Len(t, dict.Filter(domain.Filters{Categories: []string{"nature"}}), 2)
	assert.Len(t, dict.Filter(domain.Filters{Levels: []string{"HSK1"}, Categories: []string{"food"}}), 1)

	// An unknown filter value matches nothing and is not an error.
	assert.Empty(t, dict.Filter(domain.Filters{Levels: []string{"HSK9"}}))
}

func TestDictionaryLevelsAndCategories(t *testing.T) {
	t.Parallel()

	dict := NewDictionary([]*domain.VocabularyWord{
		mustWord(t, "水", "shuǐ", "water", "HSK1", "nature"),
		mustWord(t, "经济", "jīng jì", "economy", "HSK4", "society"),
		mustWord(t, "火", "huǒ", "fire", "HSK1", "nature"),
	})

	assert.Equal(t, []string{"HSK1", "HSK4"}, dict.Levels())
	assert.Equal(t, []string{"nature", "society"}, dict.Categories())
}

func TestDictionaryDeduplicates(t *testing.T) {
	t.Parallel()

	a := mustWord(t, "水", "shuǐ", "water", "HSK1", "nature")
	b := mustWord(t, "水", "shuǐ", "water", "HSK1", "nature")
	dict := NewDictionary([]*domain.VocabularyWord{a, b})

	assert.Equal(t, 1, dict.Len())
	assert.Same(t, a, dict.Get(a.ID))
}
