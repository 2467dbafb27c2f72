package vocab

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hanzideck/hanzideck-api/internal/domain"
)

// CSV loading errors
var (
	ErrMissingHeader = errors.New("dictionary CSV has no header row")
	ErrMissingColumn = errors.New("dictionary CSV is missing a required column")
)

// requiredColumns are the header names the dictionary file must carry.
// Column order is free; lookup is by name.
var requiredColumns = []string{"character", "level", "category", "pinyin", "definition"}

// LoadCSV reads a vocabulary dictionary from CSV. The first row is a
// header naming the columns. Rows missing a character or definition are
// skipped rather than failing the whole load, matching how the source
// dictionary files are curated (sparse rows are commentary or padding).
func LoadCSV(r io.Reader) (*Dictionary, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read dictionary header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	var words []*domain.VocabularyWord
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read dictionary row: %w", err)
		}

		field := func(name string) string {
			i := index[name]
			if i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		word, err := domain.NewVocabularyWord(
			field("character"),
			field("pinyin"),
			field("definition"),
			field("level"),
			field("category"),
		)
		if err != nil {
			// Incomplete row, skip it.
			continue
		}
		words = append(words, word)
	}

	return NewDictionary(words), nil
}

// LoadCSVFile reads a vocabulary dictionary from a file on disk.
func LoadCSVFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	return LoadCSV(f)
}
