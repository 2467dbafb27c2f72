package study

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/hanzideck/hanzideck-api/internal/domain"
	"github.com/hanzideck/hanzideck-api/internal/domain/srs"
	"github.com/hanzideck/hanzideck-api/internal/platform/logger"
	"github.com/hanzideck/hanzideck-api/internal/store"
	"github.com/hanzideck/hanzideck-api/internal/vocab"
)

// Config holds the study quotas in effect when a request does not carry
// its own. The defaults match a moderate daily workload.
type Config struct {
	DailyGoal   int
	ReviewLimit int
}

// DefaultConfig returns the default study quotas.
func DefaultConfig() Config {
	return Config{
		DailyGoal:   20,
		ReviewLimit: 50,
	}
}

// Verify interface compliance at compile time
var _ StudyService = (*studyServiceImpl)(nil)

// studyServiceImpl implements the StudyService interface.
type studyServiceImpl struct {
	dict          *vocab.Dictionary
	progressStore store.ProgressStore
	statsStore    store.StatsStore
	batchStore    store.BatchStore
	srsService    srs.Service
	clock         Clock
	cfg           Config

	// db is optional. When set, outcome application runs inside a single
	// transaction using the stores' WithTx variants; when nil (in-memory
	// backends) operations apply directly.
	db *sql.DB

	logger *slog.Logger
}

// NewStudyService creates a new StudyService implementation.
// db may be nil for backends without transaction support.
func NewStudyService(
	dict *vocab.Dictionary,
	progressStore store.ProgressStore,
	statsStore store.StatsStore,
	batchStore store.BatchStore,
	srsService srs.Service,
	clock Clock,
	db *sql.DB,
	cfg Config,
	log *slog.Logger,
) StudyService {
	// Validate inputs
	if dict == nil {
		panic("dict cannot be nil")
	}
	if progressStore == nil {
		panic("progressStore cannot be nil")
	}
	if statsStore == nil {
		panic("statsStore cannot be nil")
	}
	if batchStore == nil {
		panic("batchStore cannot be nil")
	}
	if srsService == nil {
		panic("srsService cannot be nil")
	}
	if clock == nil {
		clock = NewClock()
	}
	if cfg.DailyGoal <= 0 {
		cfg.DailyGoal = DefaultConfig().DailyGoal
	}
	if cfg.ReviewLimit <= 0 {
		cfg.ReviewLimit = DefaultConfig().ReviewLimit
	}

	// Use provided logger or create default
	if log == nil {
		log = slog.Default()
	}

	return &studyServiceImpl{
		dict:          dict,
		progressStore: progressStore,
		statsStore:    statsStore,
		batchStore:    batchStore,
		srsService:    srsService,
		clock:         clock,
		cfg:           cfg,
		db:            db,
		logger:        log.With(slog.String("component", "study_service")),
	}
}

// GetWordsForLearning implements StudyService.GetWordsForLearning.
func (s *studyServiceImpl) GetWordsForLearning(
	ctx context.Context,
	userID uuid.UUID,
	filters domain.Filters,
	dailyGoal int,
) ([]*domain.VocabularyWord, error) {
	if dailyGoal <= 0 {
		dailyGoal = s.cfg.DailyGoal
	}

	log := logger.FromContextOrDefault(ctx, s.logger)
	day := s.clock.Today()

	progressByWord, err := s.progressByWord(ctx, userID)
	if err != nil {
		return nil, NewSelectBatchError("failed to load progress", err)
	}

	stats, err := s.dailyCounts(ctx, userID, day)
	if err != nil {
		return nil, NewSelectBatchError("failed to load daily stats", err)
	}
	remaining := remainingQuota(dailyGoal, stats.NewWordsLearned)

	eligible := func(wordID uuid.UUID) bool {
		return isNewWord(progressByWord[wordID])
	}

	// A batch cached earlier today for the same filters and goal fixes
	// the membership; words studied since then drop out through the
	// eligibility check. A changed goal invalidates the cache.
	cached, err := s.batchStore.Get(ctx, userID, domain.BatchModeLearning, day, filters.Key())
	if err == nil && cached.Matches(day, filters.Key(), dailyGoal) {
		words := s.resolveWords(cached.WordIDs, eligible)
		return truncate(words, remaining), nil
	}
	if err != nil && !errors.Is(err, store.ErrBatchNotFound) {
		return nil, NewSelectBatchError("failed to load cached batch", err)
	}

	var pool []*domain.VocabularyWord
	for _, w := range s.dict.Filter(filters) {
		if eligible(w.ID) {
			pool = append(pool, w)
		}
	}

	selected := truncate(
		shuffleWords(pool, daySeed(userID, domain.BatchModeLearning, day)),
		remaining,
	)

	if err := s.cacheBatch(ctx, userID, domain.BatchModeLearning, day, filters, dailyGoal, selected); err != nil {
		return nil, NewSelectBatchError("failed to cache batch", err)
	}

	log.Debug("selected learning batch",
		slog.String("user_id", userID.String()),
		slog.Int("pool_size", len(pool)),
		slog.Int("selected", len(selected)),
		slog.Int("remaining_quota", remaining))
	return selected, nil
}

// GetWordsForReview implements StudyService.GetWordsForReview.
func (s *studyServiceImpl) GetWordsForReview(
	ctx context.Context,
	userID uuid.UUID,
	filters domain.Filters,
	reviewLimit int,
) ([]*domain.VocabularyWord, error) {
	if reviewLimit <= 0 {
		reviewLimit = s.cfg.ReviewLimit
	}

	log := logger.FromContextOrDefault(ctx, s.logger)
	day := s.clock.Today()

	progressByWord, err := s.progressByWord(ctx, userID)
	if err != nil {
		return nil, NewSelectBatchError("failed to load progress", err)
	}

	stats, err := s.dailyCounts(ctx, userID, day)
	if err != nil {
		return nil, NewSelectBatchError("failed to load daily stats", err)
	}
	remaining := remainingQuota(reviewLimit, stats.ReviewsCompleted)

	eligible := func(wordID uuid.UUID) bool {
		return s.isDue(progressByWord[wordID], day)
	}

	cached, err := s.batchStore.Get(ctx, userID, domain.BatchModeReview, day, filters.Key())
	if err == nil && cached.Matches(day, filters.Key(), reviewLimit) {
		words := s.resolveWords(cached.WordIDs, eligible)
		return truncate(words, remaining), nil
	}
	if err != nil && !errors.Is(err, store.ErrBatchNotFound) {
		return nil, NewSelectBatchError("failed to load cached batch", err)
	}

	var pool []*domain.VocabularyWord
	for _, w := range s.dict.Filter(filters) {
		if eligible(w.ID) {
			pool = append(pool, w)
		}
	}

	// Seeded shuffle first, then a stable sort by due date: most overdue
	// words come first and ties keep the deterministic shuffled order
	// instead of arbitrary structural order.
	shuffled := shuffleWords(pool, daySeed(userID, domain.BatchModeReview, day))
	sort.SliceStable(shuffled, func(i, j int) bool {
		a := progressByWord[shuffled[i].ID].NextReviewAt
		b := progressByWord[shuffled[j].ID].NextReviewAt
		return a.Before(*b)
	})

	selected := truncate(shuffled, remaining)

	if err := s.cacheBatch(ctx, userID, domain.BatchModeReview, day, filters, reviewLimit, selected); err != nil {
		return nil, NewSelectBatchError("failed to cache batch", err)
	}

	log.Debug("selected review batch",
		slog.String("user_id", userID.String()),
		slog.Int("pool_size", len(pool)),
		slog.Int("selected", len(selected)),
		slog.Int("remaining_quota", remaining))
	return selected, nil
}

// GetTodaysBatch implements StudyService.GetTodaysBatch.
func (s *studyServiceImpl) GetTodaysBatch(
	ctx context.Context,
	userID uuid.UUID,
	mode domain.BatchMode,
	filters domain.Filters,
) ([]*domain.VocabularyWord, error) {
	if !domain.IsValidBatchMode(mode) {
		return nil, ErrInvalidMode
	}

	day := s.clock.Today()
	cached, err := s.batchStore.Get(ctx, userID, mode, day, filters.Key())
	if errors.Is(err, store.ErrBatchNotFound) {
		return []*domain.VocabularyWord{}, nil
	}
	if err != nil {
		return nil, NewSelectBatchError("failed to load cached batch", err)
	}

	// Membership is preserved exactly; only the order changes, driven by
	// a per-session seed so repeating the batch feels fresh.
	words := s.resolveWords(cached.WordIDs, nil)
	return shuffleWords(words, s.clock.Now().UnixNano()), nil
}

// ProcessStudyResults implements StudyService.ProcessStudyResults.
func (s *studyServiceImpl) ProcessStudyResults(
	ctx context.Context,
	userID uuid.UUID,
	results []StudyResult,
) (*StudySummary, error) {
	if len(results) == 0 {
		return nil, ErrEmptyResults
	}

	if s.db == nil {
		return s.applyResults(ctx, userID, results, s.progressStore, s.statsStore)
	}

	// Apply the whole session atomically so a persistence failure leaves
	// no partially counted session behind.
	var summary *StudySummary
	err := s.runInTransaction(ctx, func(progressStore store.ProgressStore, statsStore store.StatsStore) error {
		var err error
		summary, err = s.applyResults(ctx, userID, results, progressStore, statsStore)
		return err
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// applyResults performs the outcome application against the given stores.
func (s *studyServiceImpl) applyResults(
	ctx context.Context,
	userID uuid.UUID,
	results []StudyResult,
	progressStore store.ProgressStore,
	statsStore store.StatsStore,
) (*StudySummary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.clock.Now()
	today := s.clock.Today()

	streak, err := s.loadStreak(ctx, statsStore, userID)
	if err != nil {
		return nil, NewProcessResultsError("failed to load streak", err)
	}

	// A stored activity date ahead of today means the clock went
	// backwards. Treat it as "not a new day": counters accrue to the
	// stored day and the streak is not awarded again.
	effectiveToday := today
	if streak.LastActivityDate != nil && domain.DaysBetween(*streak.LastActivityDate, today) < 0 {
		log.Warn("current date precedes last activity date, treating as same day",
			slog.String("user_id", userID.String()),
			slog.Time("today", today),
			slog.Time("last_activity", *streak.LastActivityDate))
		effectiveToday = domain.DateOnly(*streak.LastActivityDate)
	}

	stats, err := statsStore.GetDaily(ctx, userID, effectiveToday)
	if errors.Is(err, store.ErrDailyStatsNotFound) {
		stats = domain.NewDailyStats(userID, effectiveToday)
	} else if err != nil {
		return nil, NewProcessResultsError("failed to load daily stats", err)
	}

	summary := &StudySummary{}

	for _, result := range results {
		if s.dict.Get(result.WordID) == nil {
			summary.UnknownWords++
			log.Warn("study result references unknown word, skipping entry",
				slog.String("user_id", userID.String()),
				slog.String("word_id", result.WordID.String()))
			continue
		}

		progress, err := progressStore.Get(ctx, userID, result.WordID)
		firstInteraction := false
		if errors.Is(err, store.ErrProgressNotFound) {
			firstInteraction = true
			progress, err = domain.NewWordProgress(userID, result.WordID, now)
			if err != nil {
				return nil, NewProcessResultsError("failed to create progress", err)
			}
		} else if err != nil {
			return nil, NewProcessResultsError("failed to load progress", err)
		}

		if result.Skipped {
			// A skip schedules nothing but still consumes quota: the
			// word was put in front of the user today.
			if firstInteraction {
				if err := progressStore.Upsert(ctx, progress); err != nil {
					return nil, NewProcessResultsError("failed to save progress", err)
				}
			}
		} else {
			updated, err := s.srsService.Apply(progress, result.Correct, now)
			if err != nil {
				return nil, NewProcessResultsError("failed to apply outcome", err)
			}
			if err := progressStore.Upsert(ctx, updated); err != nil {
				return nil, NewProcessResultsError("failed to save progress", err)
			}
		}

		// Counting is per-word-history, not per-session-mode: the first
		// ever interaction with a word is "learned", everything after
		// is "reviewed", whatever mode the session ran in.
		if firstInteraction {
			stats.NewWordsLearned++
		} else {
			stats.ReviewsCompleted++
		}
		summary.Processed++
	}

	if err := statsStore.UpsertDaily(ctx, stats); err != nil {
		return nil, NewProcessResultsError("failed to save daily stats", err)
	}

	updateStreak(streak, effectiveToday)
	if err := statsStore.UpsertStreak(ctx, streak); err != nil {
		return nil, NewProcessResultsError("failed to save streak", err)
	}

	summary.WordsLearnedToday = stats.NewWordsLearned
	summary.WordsReviewedToday = stats.ReviewsCompleted
	summary.CurrentStreak = streak.CurrentStreak
	summary.LongestStreak = streak.LongestStreak

	log.Debug("processed study results",
		slog.String("user_id", userID.String()),
		slog.Int("processed", summary.Processed),
		slog.Int("unknown_words", summary.UnknownWords),
		slog.Int("current_streak", summary.CurrentStreak))
	return summary, nil
}

// ToggleBookmark implements StudyService.ToggleBookmark.
func (s *studyServiceImpl) ToggleBookmark(
	ctx context.Context,
	userID, wordID uuid.UUID,
) (bool, error) {
	if s.dict.Get(wordID) == nil {
		return false, ErrUnknownWord
	}

	now := s.clock.Now()
	progress, err := s.progressStore.Get(ctx, userID, wordID)
	if errors.Is(err, store.ErrProgressNotFound) {
		progress, err = domain.NewWordProgress(userID, wordID, now)
		if err != nil {
			return false, fmt.Errorf("failed to create progress: %w", err)
		}
	} else if err != nil {
		return false, fmt.Errorf("failed to load progress: %w", err)
	}

	updated := progress.Clone()
	updated.IsBookmarked = !progress.IsBookmarked
	updated.UpdatedAt = now

	if err := s.progressStore.Upsert(ctx, updated); err != nil {
		return false, fmt.Errorf("failed to save progress: %w", err)
	}

	return updated.IsBookmarked, nil
}

// GetProgressStats implements StudyService.GetProgressStats.
func (s *studyServiceImpl) GetProgressStats(
	ctx context.Context,
	userID uuid.UUID,
) (*ProgressStats, error) {
	day := s.clock.Today()

	stats, err := s.dailyCounts(ctx, userID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to load daily stats: %w", err)
	}

	streak, err := s.loadStreak(ctx, s.statsStore, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load streak: %w", err)
	}

	records, err := s.progressStore.AllForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}

	out := &ProgressStats{
		WordsLearnedToday:      stats.NewWordsLearned,
		WordsReviewedToday:     stats.ReviewsCompleted,
		RemainingLearningQuota: remainingQuota(s.cfg.DailyGoal, stats.NewWordsLearned),
		RemainingReviewQuota:   remainingQuota(s.cfg.ReviewLimit, stats.ReviewsCompleted),
		CurrentStreak:          streak.CurrentStreak,
		LongestStreak:          streak.LongestStreak,
		TotalWordsLearned:      len(records),
	}
	out.LearningGoalReached = out.RemainingLearningQuota == 0
	out.ReviewGoalReached = out.RemainingReviewQuota == 0

	for _, p := range records {
		switch {
		case s.srsService.StateOf(p.IntervalIndex, p.EverAnsweredCorrectly()) == domain.WordStateMastered:
			out.MasteredCount++
		case s.isDue(p, day):
			out.DueCount++
		}
	}

	return out, nil
}

// --- internals ---

// isNewWord reports whether a word is still eligible for the learning
// pool: no record at all, or a record that has never been answered
// correctly and sits at the bottom of the ladder. One correct answer
// removes it from the "new" pool forever.
func isNewWord(progress *domain.WordProgress) bool {
	if progress == nil {
		return true
	}
	return !progress.EverAnsweredCorrectly() && progress.IntervalIndex == 0
}

// isDue reports whether a progress record is due for review on the given
// day: scheduled, not past mastery, and with a review date of today or
// earlier.
func (s *studyServiceImpl) isDue(progress *domain.WordProgress, day time.Time) bool {
	if progress == nil || progress.NextReviewAt == nil {
		return false
	}
	if s.srsService.StateOf(progress.IntervalIndex, progress.EverAnsweredCorrectly()) == domain.WordStateMastered {
		return false
	}
	return !domain.DateOnly(*progress.NextReviewAt).After(domain.DateOnly(day))
}

// progressByWord loads all of a user's progress records into a map keyed
// by word ID.
func (s *studyServiceImpl) progressByWord(
	ctx context.Context,
	userID uuid.UUID,
) (map[uuid.UUID]*domain.WordProgress, error) {
	records, err := s.progressStore.AllForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	byWord := make(map[uuid.UUID]*domain.WordProgress, len(records))
	for _, p := range records {
		byWord[p.WordID] = p
	}
	return byWord, nil
}

// dailyCounts returns the stats row for the given day, or a zeroed row if
// the user has not studied yet today. The per-day keying is what resets
// counters at the day boundary: a new day simply reads an absent row.
func (s *studyServiceImpl) dailyCounts(
	ctx context.Context,
	userID uuid.UUID,
	day time.Time,
) (*domain.DailyStats, error) {
	stats, err := s.statsStore.GetDaily(ctx, userID, day)
	if errors.Is(err, store.ErrDailyStatsNotFound) {
		return domain.NewDailyStats(userID, day), nil
	}
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *studyServiceImpl) loadStreak(
	ctx context.Context,
	statsStore store.StatsStore,
	userID uuid.UUID,
) (*domain.StreakState, error) {
	streak, err := statsStore.GetStreak(ctx, userID)
	if errors.Is(err, store.ErrStreakNotFound) {
		return domain.NewStreakState(userID), nil
	}
	if err != nil {
		return nil, err
	}
	return streak, nil
}

// resolveWords maps cached word IDs back to dictionary words, preserving
// order. IDs no longer present in the dictionary are dropped. When
// eligible is non-nil, words failing it are dropped too.
func (s *studyServiceImpl) resolveWords(
	ids []uuid.UUID,
	eligible func(uuid.UUID) bool,
) []*domain.VocabularyWord {
	var out []*domain.VocabularyWord
	for _, id := range ids {
		w := s.dict.Get(id)
		if w == nil {
			continue
		}
		if eligible != nil && !eligible(id) {
			continue
		}
		out = append(out, w)
	}
	return out
}

func (s *studyServiceImpl) cacheBatch(
	ctx context.Context,
	userID uuid.UUID,
	mode domain.BatchMode,
	day time.Time,
	filters domain.Filters,
	quota int,
	words []*domain.VocabularyWord,
) error {
	ids := make([]uuid.UUID, len(words))
	for i, w := range words {
		ids[i] = w.ID
	}

	batch, err := domain.NewDailyBatch(userID, mode, day, filters.Key(), quota, ids)
	if err != nil {
		return err
	}
	return s.batchStore.Put(ctx, batch)
}

// updateStreak advances or breaks the consecutive-day streak for one study
// action on the given day. Idempotent within a day: a second session does
// not increment again.
func updateStreak(streak *domain.StreakState, today time.Time) {
	day := domain.DateOnly(today)

	switch {
	case streak.LastActivityDate == nil:
		streak.CurrentStreak = 1
	case domain.SameDay(*streak.LastActivityDate, day):
		// Already counted today.
	case domain.DaysBetween(*streak.LastActivityDate, day) == 1:
		streak.CurrentStreak++
	default:
		streak.CurrentStreak = 1
	}

	streak.LastActivityDate = &day
	if streak.CurrentStreak > streak.LongestStreak {
		streak.LongestStreak = streak.CurrentStreak
	}
}

func remainingQuota(goal, done int) int {
	if remaining := goal - done; remaining > 0 {
		return remaining
	}
	return 0
}

func truncate(words []*domain.VocabularyWord, limit int) []*domain.VocabularyWord {
	if limit < len(words) {
		return words[:limit]
	}
	return words
}

// runInTransaction runs the given function with transactional stores.
func (s *studyServiceImpl) runInTransaction(
	ctx context.Context,
	fn func(store.ProgressStore, store.StatsStore) error,
) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrTransactionFailed, err)
	}

	if err := fn(s.progressStore.WithTx(tx), s.statsStore.WithTx(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx error: %v, rollback error: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrTransactionFailed, err)
	}
	return nil
}
