package api

import (
	"log/slog"
	"net/http"

	"github.com/hanzideck/hanzideck-api/internal/api/shared"
	"github.com/hanzideck/hanzideck-api/internal/vocab"
)

// VocabHandler serves read-only views of the loaded dictionary.
type VocabHandler struct {
	dict   *vocab.Dictionary
	logger *slog.Logger
}

// NewVocabHandler creates a new VocabHandler
func NewVocabHandler(dict *vocab.Dictionary, logger *slog.Logger) *VocabHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for VocabHandler")
	}

	return &VocabHandler{
		dict:   dict,
		logger: logger.With(slog.String("component", "vocab_handler")),
	}
}

// GetLevels handles GET /vocabulary/levels requests
// It returns the distinct difficulty levels present in the dictionary.
func (h *VocabHandler) GetLevels(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, map[string][]string{
		"levels": h.dict.Levels(),
	})
}

// GetCategories handles GET /vocabulary/categories requests
// It returns the distinct word categories present in the dictionary.
func (h *VocabHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, map[string][]string{
		"categories": h.dict.Categories(),
	})
}

// GetWords handles GET /vocabulary/words requests
// It returns dictionary entries matching the optional level and category
// filters.
func (h *VocabHandler) GetWords(w http.ResponseWriter, r *http.Request) {
	filters := filtersFromQuery(r)
	shared.RespondWithJSON(w, r, http.StatusOK, batchToResponse(h.dict.Filter(filters)))
}
