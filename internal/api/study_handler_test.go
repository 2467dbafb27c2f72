package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanzideck/hanzideck-api/internal/api"
	apimiddleware "github.com/hanzideck/hanzideck-api/internal/api/middleware"
	"github.com/hanzideck/hanzideck-api/internal/domain"
	"github.com/hanzideck/hanzideck-api/internal/domain/srs"
	"github.com/hanzideck/hanzideck-api/internal/platform/memory"
	"github.com/hanzideck/hanzideck-api/internal/service/study"
	"github.com/hanzideck/hanzideck-api/internal/vocab"
)

// newTestLogger returns a logger that discards output, keeping test runs
// quiet.
func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestRouter wires a study handler over in-memory stores behind the
// same middleware stack the real router uses.
func newTestRouter(t *testing.T) (http.Handler, *vocab.Dictionary) {
	t.Helper()

	words := make([]*domain.VocabularyWord, 0, 10)
	for i := 0; i < 10; i++ {
		w, err := domain.NewVocabularyWord(
			fmt.Sprintf("词%d", i),
			fmt.Sprintf("ci%d", i),
			fmt.Sprintf("word %d", i),
			"HSK1",
			"nouns",
		)
		require.NoError(t, err)
		words = append(words, w)
	}
	dict := vocab.NewDictionary(words)

	service := study.NewStudyService(
		dict,
		memory.NewProgressStore(),
		memory.NewStatsStore(),
		memory.NewBatchStore(),
		srs.NewDefaultService(),
		study.NewClock(),
		nil,
		study.Config{DailyGoal: 5, ReviewLimit: 10},
		nil,
	)

	logger := newTestLogger()
	studyHandler := api.NewStudyHandler(service, logger)
	vocabHandler := api.NewVocabHandler(dict, logger)

	r := chi.NewRouter()
	r.Use(apimiddleware.TraceMiddleware)
	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(apimiddleware.UserMiddleware)
			r.Get("/study/learn", studyHandler.GetLearningWords)
			r.Get("/study/review", studyHandler.GetReviewWords)
			r.Get("/study/batch/{mode}", studyHandler.GetTodaysBatch)
			r.Post("/study/results", studyHandler.SubmitResults)
			r.Post("/words/{id}/bookmark", studyHandler.ToggleBookmark)
			r.Get("/progress/stats", studyHandler.GetProgressStats)
		})
		r.Get("/vocabulary/levels", vocabHandler.GetLevels)
		r.Get("/vocabulary/categories", vocabHandler.GetCategories)
		r.Get("/vocabulary/words", vocabHandler.GetWords)
	})
	return r, dict
}

func doRequest(
	t *testing.T,
	handler http.Handler,
	method, path string,
	userID string,
	body any,
) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Buffer = bytes.NewBuffer(nil)
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(data)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if userID != "" {
		req.Header.Set(apimiddleware.UserIDHeader, userID)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestGetLearningWords(t *testing.T) {
	t.Parallel()
	router, _ := newTestRouter(t)
	userID := uuid.New().String()

	rec := doRequest(t, router, http.MethodGet, "/api/study/learn?goal=3", userID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.BatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Count)
	assert.Len(t, resp.Words, 3)
	assert.NotEmpty(t, resp.Words[0].Character)
}

func TestGetLearningWords_RequiresUser(t *testing.T) {
	t.Parallel()
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/study/learn", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/study/learn", "not-a-uuid", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetLearningWords_InvalidGoal(t *testing.T) {
	t.Parallel()
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/study/learn?goal=lots", uuid.New().String(), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitResults_RoundTrip(t *testing.T) {
	t.Parallel()
	router, _ := newTestRouter(t)
	userID := uuid.New().String()

	rec := doRequest(t, router, http.MethodGet, "/api/study/learn", userID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var batch api.BatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &batch))
	require.NotEmpty(t, batch.Words)

	results := make([]study.StudyResult, len(batch.Words))
	for i, w := range batch.Words {
		results[i] = study.StudyResult{WordID: uuid.MustParse(w.ID), Correct: true}
	}

	rec = doRequest(t, router, http.MethodPost, "/api/study/results", userID,
		api.StudyResultsRequest{Results: results})
	require.Equal(t, http.StatusOK, rec.Code)

	var summary study.StudySummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, len(results), summary.Processed)
	assert.Equal(t, len(results), summary.WordsLearnedToday)
	assert.Equal(t, 1, summary.CurrentStreak)
}

func TestSubmitResults_EmptyBody(t *testing.T) {
	t.Parallel()
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/study/results", uuid.New().String(),
		api.StudyResultsRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetTodaysBatch_InvalidMode(t *testing.T) {
	t.Parallel()
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/study/batch/cramming", uuid.New().String(), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestToggleBookmark(t *testing.T) {
	t.Parallel()
	router, dict := newTestRouter(t)
	userID := uuid.New().String()
	wordID := dict.All()[0].ID

	rec := doRequest(t, router, http.MethodPost, "/api/words/"+wordID.String()+"/bookmark", userID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.BookmarkResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.IsBookmarked)

	rec = doRequest(t, router, http.MethodPost, "/api/words/"+uuid.New().String()+"/bookmark", userID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/words/not-a-uuid/bookmark", userID, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetProgressStats(t *testing.T) {
	t.Parallel()
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/progress/stats", uuid.New().String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats study.ProgressStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 5, stats.RemainingLearningQuota)
	assert.Equal(t, 10, stats.RemainingReviewQuota)
}

func TestVocabularyEndpoints(t *testing.T) {
	t.Parallel()
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/vocabulary/levels", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var levels map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &levels))
	assert.Equal(t, []string{"HSK1"}, levels["levels"])

	rec = doRequest(t, router, http.MethodGet, "/api/vocabulary/words?levels=HSK1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var words api.BatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &words))
	assert.Equal(t, 10, words.Count)
}

// errorResponseShape guards the wire contract of error payloads.
func TestErrorResponseShape(t *testing.T) {
	t.Parallel()
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/study/learn", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Contains(t, payload, "error")
}
