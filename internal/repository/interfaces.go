package repository

import (
	"context"
	"time"

	"github.com/SteampunkGill/readmemory/internal/models"
)

// VocabularyRepository handles per-user learning records
type VocabularyRepository interface {
	// Get returns nil, nil when the item does not exist or belongs to
	// another user.
	Get(ctx context.Context, userID, itemID int64) (*models.VocabularyItem, error)
	Insert(ctx context.Context, item models.VocabularyItem) (int64, error)
	DueWords(ctx context.Context, filter models.DueWordFilter, now time.Time) ([]models.VocabularyItem, error)
	// CountEligible returns the size of the full candidate set and of the
	// due-within-24h subset for the same filter.
	CountEligible(ctx context.Context, filter models.DueWordFilter, now time.Time) (total int, due int, err error)
	CountAll(ctx context.Context, userID int64) (int, error)
	CountMastered(ctx context.Context, userID int64) (int, error)
	// UpdateMastery persists a review outcome only if the stored mastery
	// level still equals prevLevel. Returns false when the row was not
	// found or was changed concurrently.
	UpdateMastery(ctx context.Context, item models.VocabularyItem, prevLevel int) (bool, error)
	// Skip pushes the next review date and bumps skip_count. Returns false
	// when the item is not the user's.
	Skip(ctx context.Context, userID, itemID int64, nextReview, now time.Time) (bool, error)
	// Reset clears learning state per the flags and bumps reset_count.
	// Returns false when the item is not the user's.
	Reset(ctx context.Context, userID, itemID int64, resetMastery, resetReviewCount bool, now time.Time) (bool, error)
	// RandomWithDefinition samples the user's own vocabulary, definition
	// required. Fallback pool for the distractor sampler.
	RandomWithDefinition(ctx context.Context, userID int64, limit int) ([]models.Distractor, error)
}

// DictionaryRepository handles the shared read-only word store
type DictionaryRepository interface {
	// RandomDistractors samples dictionary entries that have a definition.
	RandomDistractors(ctx context.Context, limit int) ([]models.Distractor, error)
}

// SessionRepository handles review sessions and the daily stat rollup
type SessionRepository interface {
	// Insert writes the session row and folds its counts into the daily
	// stat for its completion date, atomically.
	Insert(ctx context.Context, s models.ReviewSession) (int64, error)
	// GetBySessionID returns nil, nil when no session with that client id
	// exists for the user.
	GetBySessionID(ctx context.Context, userID int64, sessionID string) (*models.ReviewSession, error)
	List(ctx context.Context, filter models.SessionFilter) ([]models.ReviewSession, error)
	Count(ctx context.Context, filter models.SessionFilter) (int, error)
	Delete(ctx context.Context, userID, id int64) (bool, error)
	DeleteAll(ctx context.Context, userID int64) (int64, error)
	// DistinctReviewDates returns YYYY-MM-DD dates with at least one
	// session, newest first.
	DistinctReviewDates(ctx context.Context, userID int64) ([]string, error)
	// Totals returns lifetime session count, words reviewed and mean
	// session accuracy.
	Totals(ctx context.Context, userID int64) (sessions int, words int, avgAccuracy float64, err error)
	// DayTotals returns session and word counts for one YYYY-MM-DD date.
	DayTotals(ctx context.Context, userID int64, date string) (sessions int, words int, err error)
	// DayAggregates returns per-day totals for completed_at dates in
	// [from, to], both YYYY-MM-DD inclusive.
	DayAggregates(ctx context.Context, userID int64, from, to string) ([]models.DayAggregate, error)
	// SumReviewedBetween sums words_reviewed from the daily stats over
	// [from, to], both YYYY-MM-DD inclusive.
	SumReviewedBetween(ctx context.Context, userID int64, from, to string) (int, error)
}

// SettingsRepository handles the per-user review plan row
type SettingsRepository interface {
	// Get returns nil, nil when the user has never saved a plan.
	Get(ctx context.Context, userID int64) (*models.ReviewSettings, error)
	Upsert(ctx context.Context, s models.ReviewSettings) error
	// RemindersDue lists plans with reminders on whose preferred time
	// matches the given HH:mm.
	RemindersDue(ctx context.Context, hhmm string) ([]models.ReviewSettings, error)
}

// AuthRepository resolves bearer tokens
type AuthRepository interface {
	// UserIDForToken returns 0, nil when the token is unknown or expired.
	UserIDForToken(ctx context.Context, token string, now time.Time) (int64, error)
}
