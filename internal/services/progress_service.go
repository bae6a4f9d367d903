package services

import (
	"context"
	"time"

	"github.com/SteampunkGill/readmemory/internal/errors"
	"github.com/SteampunkGill/readmemory/internal/logger"
	"github.com/SteampunkGill/readmemory/internal/models"
	"github.com/SteampunkGill/readmemory/internal/repository"
)

const dateLayout = "2006-01-02"

// ProgressService derives streaks, goal progress and the review calendar
// from session history.
type ProgressService interface {
	GetProgress(ctx context.Context, userID int64) (*models.ProgressSummary, error)
	GetStats(ctx context.Context, userID int64) (*models.ReviewStats, error)
	GetCalendar(ctx context.Context, userID int64, year, month int) ([]models.CalendarDay, error)
}

type progressService struct {
	vocab    repository.VocabularyRepository
	sessions repository.SessionRepository
	settings repository.SettingsRepository
	clock    func() time.Time
}

// NewProgressService creates a new ProgressService
func NewProgressService(vocab repository.VocabularyRepository, sessions repository.SessionRepository, settings repository.SettingsRepository, clock func() time.Time) ProgressService {
	if clock == nil {
		clock = time.Now
	}
	return &progressService{vocab: vocab, sessions: sessions, settings: settings, clock: clock}
}

func (s *progressService) GetProgress(ctx context.Context, userID int64) (*models.ProgressSummary, error) {
	log := logger.FromContext(ctx)
	log.Debug("computing progress: user_id=%d", userID)

	plan, err := s.settings.Get(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if plan == nil {
		defaults := models.DefaultReviewSettings(userID)
		plan = &defaults
	}

	now := s.clock()
	today := now.Format(dateLayout)
	weekStart := startOfWeek(now).Format(dateLayout)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format(dateLayout)

	dailyDone, err := s.sessions.SumReviewedBetween(ctx, userID, today, today)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	weeklyDone, err := s.sessions.SumReviewedBetween(ctx, userID, weekStart, today)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	monthlyDone, err := s.sessions.SumReviewedBetween(ctx, userID, monthStart, today)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	dates, err := s.sessions.DistinctReviewDates(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	totalWords, err := s.vocab.CountAll(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	mastered, err := s.vocab.CountMastered(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	_, due, err := s.vocab.CountEligible(ctx, models.DueWordFilter{UserID: userID}, now)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	dailyTarget := plan.DailyTargetWords
	weeklyTarget := dailyTarget * plan.WeeklyTargetDays
	// Monthly goal approximates four active weeks.
	monthlyTarget := weeklyTarget * 4

	return &models.ProgressSummary{
		Daily:         goalProgress(dailyTarget, dailyDone),
		Weekly:        goalProgress(weeklyTarget, weeklyDone),
		Monthly:       goalProgress(monthlyTarget, monthlyDone),
		CurrentStreak: currentStreak(dates, today),
		TotalWords:    totalWords,
		MasteredWords: mastered,
		DueCount:      due,
	}, nil
}

func (s *progressService) GetStats(ctx context.Context, userID int64) (*models.ReviewStats, error) {
	log := logger.FromContext(ctx)
	log.Debug("computing review stats: user_id=%d", userID)

	sessionCount, wordCount, avgAccuracy, err := s.sessions.Totals(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	dates, err := s.sessions.DistinctReviewDates(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	now := s.clock()
	today := now.Format(dateLayout)
	todaySessions, todayWords, err := s.sessions.DayTotals(ctx, userID, today)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	return &models.ReviewStats{
		TotalSessions:      sessionCount,
		TotalWordsReviewed: wordCount,
		AverageAccuracy:    round2(avgAccuracy),
		CurrentStreak:      currentStreak(dates, today),
		LongestStreak:      longestStreak(dates),
		TodaySessions:      todaySessions,
		TodayWordsReviewed: todayWords,
	}, nil
}

func (s *progressService) GetCalendar(ctx context.Context, userID int64, year, month int) ([]models.CalendarDay, error) {
	log := logger.FromContext(ctx)

	if year < 2000 || year > 2100 {
		return nil, errors.NewValidationError("year", "must be between 2000 and 2100")
	}
	if month < 1 || month > 12 {
		return nil, errors.NewValidationError("month", "must be between 1 and 12")
	}

	log.Debug("building calendar: user_id=%d, %04d-%02d", userID, year, month)

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	aggs, err := s.sessions.DayAggregates(ctx, userID, first.Format(dateLayout), last.Format(dateLayout))
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	byDate := make(map[string]models.DayAggregate, len(aggs))
	for _, a := range aggs {
		byDate[a.Date] = a
	}

	days := make([]models.CalendarDay, 0, last.Day())
	for d := 1; d <= last.Day(); d++ {
		date := time.Date(year, time.Month(month), d, 0, 0, 0, 0, time.UTC).Format(dateLayout)
		day := models.CalendarDay{Date: date}
		if a, ok := byDate[date]; ok {
			day.ReviewCount = a.SessionCount
			day.WordCount = a.WordCount
			if a.WordCount > 0 {
				day.Accuracy = round2(float64(a.CorrectCount) / float64(a.WordCount) * 100)
			}
			day.HasReview = true
		}
		days = append(days, day)
	}
	return days, nil
}

func goalProgress(target, completed int) models.GoalProgress {
	p := models.GoalProgress{Target: target, Completed: completed}
	if target > 0 {
		p.Percent = round2(float64(completed) / float64(target) * 100)
	}
	return p
}

// startOfWeek returns the Monday of the week containing t.
func startOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return t.AddDate(0, 0, -(weekday - 1))
}

// currentStreak counts consecutive review days ending today. Dates are
// YYYY-MM-DD, newest first. A day without a review so far means streak 0;
// yesterday is not grace.
func currentStreak(dates []string, today string) int {
	if len(dates) == 0 || dates[0] != today {
		return 0
	}
	expect, err := time.Parse(dateLayout, today)
	if err != nil {
		return 0
	}
	streak := 0
	for _, d := range dates {
		day, err := time.Parse(dateLayout, d)
		if err != nil || !day.Equal(expect) {
			break
		}
		streak++
		expect = expect.AddDate(0, 0, -1)
	}
	return streak
}

// longestStreak finds the longest run of consecutive review days anywhere
// in the history. Dates are YYYY-MM-DD, newest first.
func longestStreak(dates []string) int {
	longest, run := 0, 0
	var prev time.Time
	for i, d := range dates {
		day, err := time.Parse(dateLayout, d)
		if err != nil {
			continue
		}
		if i > 0 && prev.AddDate(0, 0, -1).Equal(day) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
		prev = day
	}
	return longest
}
