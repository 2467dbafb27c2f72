package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hanzideck/hanzideck-api/internal/api/shared"
	"github.com/hanzideck/hanzideck-api/internal/domain"
	"github.com/hanzideck/hanzideck-api/internal/platform/logger"
	"github.com/hanzideck/hanzideck-api/internal/redact"
	"github.com/hanzideck/hanzideck-api/internal/service/study"
)

// WordResponse represents the response data for a vocabulary word
type WordResponse struct {
	ID         string `json:"id"`
	Character  string `json:"character"`
	Pinyin     string `json:"pinyin,omitempty"`
	Definition string `json:"definition"`
	Level      string `json:"level,omitempty"`
	Category   string `json:"category,omitempty"`
}

// BatchResponse represents a selected batch of study words
type BatchResponse struct {
	Words []WordResponse `json:"words"`
	Count int            `json:"count"`
}

// StudyResultsRequest represents the request body for submitting session outcomes
type StudyResultsRequest struct {
	Results []study.StudyResult `json:"results" validate:"required,min=1,dive"`
}

// BookmarkResponse represents the state of a word bookmark after toggling
type BookmarkResponse struct {
	WordID       string `json:"word_id"`
	IsBookmarked bool   `json:"is_bookmarked"`
}

// StudyHandler handles study-related HTTP requests
type StudyHandler struct {
	studyService study.StudyService
	logger       *slog.Logger
}

// NewStudyHandler creates a new StudyHandler
func NewStudyHandler(studyService study.StudyService, logger *slog.Logger) *StudyHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for StudyHandler")
	}

	return &StudyHandler{
		studyService: studyService,
		logger:       logger.With(slog.String("component", "study_handler")),
	}
}

// GetLearningWords handles GET /study/learn requests
// It returns today's batch of new words for the user, truncated to the
// remaining daily learning quota.
func (h *StudyHandler) GetLearningWords(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := userIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	filters := filtersFromQuery(r)
	goal, err := intQueryParam(r, "goal")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid goal parameter")
		return
	}

	words, err := h.studyService.GetWordsForLearning(r.Context(), userID, filters, goal)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("served learning batch",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(words)))
	shared.RespondWithJSON(w, r, http.StatusOK, batchToResponse(words))
}

// GetReviewWords handles GET /study/review requests
// It returns today's due words, most overdue first, truncated to the
// remaining daily review quota.
func (h *StudyHandler) GetReviewWords(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := userIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	filters := filtersFromQuery(r)
	limit, err := intQueryParam(r, "limit")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit parameter")
		return
	}

	words, err := h.studyService.GetWordsForReview(r.Context(), userID, filters, limit)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("served review batch",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(words)))
	shared.RespondWithJSON(w, r, http.StatusOK, batchToResponse(words))
}

// GetTodaysBatch handles GET /study/batch/{mode} requests
// It replays the batch already selected today for the mode, reshuffled,
// bypassing the quota check. Returns an empty batch when nothing has been
// selected yet today.
func (h *StudyHandler) GetTodaysBatch(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := userIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	mode := domain.BatchMode(chi.URLParam(r, "mode"))
	filters := filtersFromQuery(r)

	words, err := h.studyService.GetTodaysBatch(r.Context(), userID, mode, filters)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, batchToResponse(words))
}

// SubmitResults handles POST /study/results requests
// It applies a session's outcomes and returns the updated daily summary.
func (h *StudyHandler) SubmitResults(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := userIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req StudyResultsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", userID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	summary, err := h.studyService.ProcessStudyResults(r.Context(), userID, req.Results)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("processed study results",
		slog.String("user_id", userID.String()),
		slog.Int("processed", summary.Processed))
	shared.RespondWithJSON(w, r, http.StatusOK, summary)
}

// ToggleBookmark handles POST /words/{id}/bookmark requests
func (h *StudyHandler) ToggleBookmark(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := userIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	pathWordID := chi.URLParam(r, "id")
	wordID, err := uuid.Parse(pathWordID)
	if err != nil {
		log.Warn("invalid word ID format", slog.String("word_id", pathWordID))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid word ID format")
		return
	}

	bookmarked, err := h.studyService.ToggleBookmark(r.Context(), userID, wordID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, BookmarkResponse{
		WordID:       wordID.String(),
		IsBookmarked: bookmarked,
	})
}

// GetProgressStats handles GET /progress/stats requests
func (h *StudyHandler) GetProgressStats(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := userIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	stats, err := h.studyService.GetProgressStats(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}

// userIDFromContext extracts the user ID placed in the context by the user
// middleware.
func userIDFromContext(r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	return userID, ok && userID != uuid.Nil
}

// filtersFromQuery parses the levels and categories query parameters.
// Both accept comma-separated lists; absence means no restriction.
func filtersFromQuery(r *http.Request) domain.Filters {
	return domain.Filters{
		Levels:     splitQueryList(r.URL.Query().Get("levels")),
		Categories: splitQueryList(r.URL.Query().Get("categories")),
	}
}

func splitQueryList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// intQueryParam parses an optional non-negative integer query parameter.
// Returns 0 (meaning "use the configured default") when absent.
func intQueryParam(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, &strconv.NumError{Func: "Atoi", Num: raw, Err: strconv.ErrSyntax}
	}
	return value, nil
}

func wordToResponse(word *domain.VocabularyWord) WordResponse {
	return WordResponse{
		ID:         word.ID.String(),
		Character:  word.Character,
		Pinyin:     word.Pinyin,
		Definition: word.Definition,
		Level:      word.Level,
		Category:   word.Category,
	}
}

func batchToResponse(words []*domain.VocabularyWord) BatchResponse {
	out := make([]WordResponse, len(words))
	for i, w := range words {
		out[i] = wordToResponse(w)
	}
	return BatchResponse{Words: out, Count: len(out)}
}
