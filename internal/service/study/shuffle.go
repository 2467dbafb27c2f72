package study

import (
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/hanzideck/hanzideck-api/internal/domain"
)

// daySeed derives the deterministic shuffle seed for one (user, mode, day)
// combination. It depends only on the calendar date, never the time of
// day, so reopening the app during the same day reproduces the same
// ordering. The mode keeps learning and review shuffles from coinciding
// for the same user and day.
func daySeed(userID uuid.UUID, mode domain.BatchMode, day time.Time) int64 {
	h := fnv.New64a()
	_, _ = h.Write(userID[:])
	_, _ = h.Write([]byte(mode))
	_, _ = h.Write([]byte(domain.DateOnly(day).Format(time.DateOnly)))
	return int64(h.Sum64())
}

// shuffleWords returns a copy of words in seeded Fisher-Yates order.
// The input slice is left untouched.
func shuffleWords(words []*domain.VocabularyWord, seed int64) []*domain.VocabularyWord {
	out := append([]*domain.VocabularyWord(nil), words...)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
