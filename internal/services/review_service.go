package services

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/SteampunkGill/readmemory/internal/errors"
	"github.com/SteampunkGill/readmemory/internal/logger"
	"github.com/SteampunkGill/readmemory/internal/models"
	"github.com/SteampunkGill/readmemory/internal/repository"
	"github.com/SteampunkGill/readmemory/internal/review"
)

const (
	distractorPoolSize = 50
	// Retries for the conditional mastery write when a concurrent submit
	// touches the same item.
	masteryUpdateRetries = 3
)

// ReviewService handles the review round lifecycle: due-word selection,
// outcome submission, skip/reset overrides and session history.
type ReviewService interface {
	GetDueWords(ctx context.Context, userID int64, filter models.DueWordFilter) (*models.DueWordsResult, error)
	SubmitSession(ctx context.Context, userID int64, sub models.SessionSubmission) (*models.SessionResult, error)
	SkipWord(ctx context.Context, userID, itemID int64, skipDays int) (*models.VocabularyItem, error)
	ResetWord(ctx context.Context, userID, itemID int64, resetMastery, resetReviewCount bool) (*models.VocabularyItem, error)
	ListHistory(ctx context.Context, filter models.SessionFilter) ([]models.ReviewSession, int, error)
	DeleteHistory(ctx context.Context, userID, sessionRowID int64) error
	ClearHistory(ctx context.Context, userID int64) (int64, error)
}

type reviewService struct {
	vocab    repository.VocabularyRepository
	sessions repository.SessionRepository
	dict     repository.DictionaryRepository
	clock    func() time.Time
}

// NewReviewService creates a new ReviewService
func NewReviewService(vocab repository.VocabularyRepository, sessions repository.SessionRepository, dict repository.DictionaryRepository, clock func() time.Time) ReviewService {
	if clock == nil {
		clock = time.Now
	}
	return &reviewService{vocab: vocab, sessions: sessions, dict: dict, clock: clock}
}

func (s *reviewService) GetDueWords(ctx context.Context, userID int64, filter models.DueWordFilter) (*models.DueWordsResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting due words: user_id=%d, limit=%d", userID, filter.Limit)

	filter.UserID = userID
	now := s.clock()

	items, err := s.vocab.DueWords(ctx, filter, now)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	total, due, err := s.vocab.CountEligible(ctx, filter, now)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	words := make([]models.DueWord, 0, len(items))
	for _, item := range items {
		words = append(words, models.DueWord{
			VocabularyItem: item,
			Priority:       review.Priority(item.NextReviewDate, now),
		})
	}

	distractors, err := s.dict.RandomDistractors(ctx, distractorPoolSize)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if len(distractors) == 0 {
		log.Debug("dictionary empty, falling back to user vocabulary for distractors")
		distractors, err = s.vocab.RandomWithDefinition(ctx, userID, distractorPoolSize)
		if err != nil {
			return nil, errors.NewInternalError(err)
		}
	}

	return &models.DueWordsResult{
		Words:       words,
		Distractors: distractors,
		Total:       total,
		DueCount:    due,
	}, nil
}

func (s *reviewService) SubmitSession(ctx context.Context, userID int64, sub models.SessionSubmission) (*models.SessionResult, error) {
	log := logger.FromContext(ctx)

	sessionID := strings.TrimSpace(sub.SessionID)
	if sessionID == "" {
		return nil, errors.NewValidationError("session_id", "cannot be blank")
	}
	if len(sub.Results) == 0 {
		return nil, errors.NewValidationError("results", "cannot be empty")
	}

	log.Debug("submitting session: user_id=%d, session_id=%s, results=%d", userID, sessionID, len(sub.Results))

	// Resubmitting an already-recorded session returns the stored
	// aggregates and writes nothing.
	existing, err := s.sessions.GetBySessionID(ctx, userID, sessionID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if existing != nil {
		log.Info("duplicate session submission: session_id=%s", sessionID)
		return &models.SessionResult{Session: *existing, Duplicate: true}, nil
	}

	now := s.clock()
	var updated, skipped []int64
	correctWords := 0
	responseSum, responseCount := 0, 0

	for _, r := range sub.Results {
		if r.Correct {
			correctWords++
		}
		if r.ResponseTimeMs != nil {
			responseSum += *r.ResponseTimeMs
			responseCount++
		}
		// Item failures never abort the batch; the word is just left out
		// of the updated list.
		if r.WordID <= 0 {
			skipped = append(skipped, r.WordID)
			continue
		}
		if s.applyOutcome(ctx, userID, r.WordID, r.Correct, now) {
			updated = append(updated, r.WordID)
		} else {
			skipped = append(skipped, r.WordID)
		}
	}

	total := len(sub.Results)
	session := models.ReviewSession{
		UserID:       userID,
		SessionID:    sessionID,
		TotalWords:   total,
		CorrectWords: correctWords,
		Accuracy:     round2(float64(correctWords) / float64(total) * 100),
		Duration:     sub.Duration,
		Mode:         sub.Mode,
		CompletedAt:  now,
	}
	if responseCount > 0 {
		session.AvgResponseTime = round2(float64(responseSum) / float64(responseCount))
	}

	id, err := s.sessions.Insert(ctx, session)
	if err != nil {
		// A racing submit may have won the unique constraint; report the
		// stored row as the duplicate.
		if stored, getErr := s.sessions.GetBySessionID(ctx, userID, sessionID); getErr == nil && stored != nil {
			log.Warn("session insert lost race, returning stored session: session_id=%s", sessionID)
			return &models.SessionResult{Session: *stored, Duplicate: true}, nil
		}
		return nil, errors.NewInternalError(err)
	}
	session.ID = id

	log.Info("session recorded: session_id=%s, words=%d, accuracy=%.2f, updated=%d, skipped=%d",
		sessionID, total, session.Accuracy, len(updated), len(skipped))

	return &models.SessionResult{
		Session:      session,
		UpdatedWords: updated,
		SkippedWords: skipped,
	}, nil
}

// applyOutcome runs one mastery transition with a compare-and-swap write,
// retrying when another submit changed the item in between. Reports whether
// the item ended up updated.
func (s *reviewService) applyOutcome(ctx context.Context, userID, itemID int64, correct bool, now time.Time) bool {
	log := logger.FromContext(ctx)

	for attempt := 0; attempt < masteryUpdateRetries; attempt++ {
		item, err := s.vocab.Get(ctx, userID, itemID)
		if err != nil {
			log.Warn("mastery update read failed, skipping item %d: %v", itemID, err)
			return false
		}
		if item == nil {
			log.Debug("unknown vocabulary item %d, skipping", itemID)
			return false
		}

		next := review.ApplyOutcome(*item, correct, now)
		ok, err := s.vocab.UpdateMastery(ctx, next, item.MasteryLevel)
		if err != nil {
			log.Warn("mastery update write failed, skipping item %d: %v", itemID, err)
			return false
		}
		if ok {
			return true
		}
		log.Debug("mastery update raced on item %d, retrying", itemID)
	}
	log.Warn("mastery update gave up after %d attempts: item %d", masteryUpdateRetries, itemID)
	return false
}

func (s *reviewService) SkipWord(ctx context.Context, userID, itemID int64, skipDays int) (*models.VocabularyItem, error) {
	log := logger.FromContext(ctx)

	if skipDays == 0 {
		skipDays = 1
	}
	if skipDays < 1 || skipDays > 30 {
		return nil, errors.NewValidationError("skip_days", "must be between 1 and 30")
	}

	item, err := s.vocab.Get(ctx, userID, itemID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if item == nil {
		return nil, errors.NewNotFoundError("vocabulary item", itemID)
	}

	now := s.clock()
	base := now
	if item.NextReviewDate != nil {
		base = *item.NextReviewDate
	}
	next := base.AddDate(0, 0, skipDays)
	if floor := now.Add(24 * time.Hour); next.Before(floor) {
		next = floor
	}

	log.Debug("skipping word: id=%d, days=%d, next_review=%s", itemID, skipDays, next.Format(time.RFC3339))

	ok, err := s.vocab.Skip(ctx, userID, itemID, next, now)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if !ok {
		return nil, errors.NewNotFoundError("vocabulary item", itemID)
	}

	item, err = s.vocab.Get(ctx, userID, itemID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return item, nil
}

func (s *reviewService) ResetWord(ctx context.Context, userID, itemID int64, resetMastery, resetReviewCount bool) (*models.VocabularyItem, error) {
	log := logger.FromContext(ctx)
	log.Debug("resetting word: id=%d, mastery=%t, review_count=%t", itemID, resetMastery, resetReviewCount)

	ok, err := s.vocab.Reset(ctx, userID, itemID, resetMastery, resetReviewCount, s.clock())
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if !ok {
		return nil, errors.NewNotFoundError("vocabulary item", itemID)
	}

	item, err := s.vocab.Get(ctx, userID, itemID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return item, nil
}

func (s *reviewService) ListHistory(ctx context.Context, filter models.SessionFilter) ([]models.ReviewSession, int, error) {
	sessions, err := s.sessions.List(ctx, filter)
	if err != nil {
		return nil, 0, errors.NewInternalError(err)
	}
	total, err := s.sessions.Count(ctx, filter)
	if err != nil {
		return nil, 0, errors.NewInternalError(err)
	}
	return sessions, total, nil
}

func (s *reviewService) DeleteHistory(ctx context.Context, userID, sessionRowID int64) error {
	ok, err := s.sessions.Delete(ctx, userID, sessionRowID)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if !ok {
		return errors.NewNotFoundError("review session", sessionRowID)
	}
	return nil
}

func (s *reviewService) ClearHistory(ctx context.Context, userID int64) (int64, error) {
	n, err := s.sessions.DeleteAll(ctx, userID)
	if err != nil {
		return 0, errors.NewInternalError(err)
	}
	logger.FromContext(ctx).Info("cleared review history: user_id=%d, deleted=%d", userID, n)
	return n, nil
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
