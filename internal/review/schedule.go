// Package review holds the pure spaced-repetition rules: the interval
// table, mastery-level transitions, and the mastered threshold. Everything
// here is deterministic so the services can inject their own clock.
package review

import (
	"time"

	"github.com/SteampunkGill/readmemory/internal/models"
)

// MasteredThreshold is the mastery level at or above which a word counts
// as mastered.
const MasteredThreshold = 8

// MaxMasteryLevel caps the mastery scale.
const MaxMasteryLevel = 10

// intervalDays maps a mastery level to the days until the next review.
var intervalDays = map[int]int{
	0: 1,
	1: 2,
	2: 4,
	3: 7,
	4: 14,
	5: 30,
	6: 60,
	7: 90,
	8: 180,
	9: 365,
}

// NextIntervalDays returns the review interval for a mastery level.
// Levels outside the table get 30 days.
func NextIntervalDays(level int) int {
	if d, ok := intervalDays[level]; ok {
		return d
	}
	return 30
}

// NextLevel applies one review outcome to a mastery level, clamped to
// [0, MaxMasteryLevel].
func NextLevel(level int, correct bool) int {
	if correct {
		level++
	} else {
		level--
	}
	if level < 0 {
		return 0
	}
	if level > MaxMasteryLevel {
		return MaxMasteryLevel
	}
	return level
}

// IsMastered reports whether a mastery level counts as mastered.
func IsMastered(level int) bool {
	return level >= MasteredThreshold
}

// ApplyOutcome computes the post-review learning state for an item without
// mutating it. The next review date is scheduled from now using the
// interval for the new level.
func ApplyOutcome(item models.VocabularyItem, correct bool, now time.Time) models.VocabularyItem {
	item.MasteryLevel = NextLevel(item.MasteryLevel, correct)
	item.ReviewCount++
	item.IsMastered = IsMastered(item.MasteryLevel)
	item.LastReviewedAt = &now

	next := now.AddDate(0, 0, NextIntervalDays(item.MasteryLevel))
	item.NextReviewDate = &next
	item.UpdatedAt = now
	return item
}

// Priority buckets an item's next review date relative to now: overdue
// when the date has arrived, due_today when it falls within the next 24
// hours, scheduled otherwise. Items with no schedule yet are overdue so
// they surface first.
func Priority(nextReview *time.Time, now time.Time) string {
	if nextReview == nil {
		return models.PriorityOverdue
	}
	switch {
	case !nextReview.After(now):
		return models.PriorityOverdue
	case !nextReview.After(now.Add(24 * time.Hour)):
		return models.PriorityDueToday
	default:
		return models.PriorityScheduled
	}
}
