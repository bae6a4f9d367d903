package models

import "time"

// WordResult is the per-word outcome reported by the client when a review
// round finishes. ResponseTimeMs is optional; nil means not measured.
type WordResult struct {
	WordID         int64 `json:"word_id"`
	Correct        bool  `json:"correct"`
	ResponseTimeMs *int  `json:"response_time_ms,omitempty"`
}

// SessionSubmission is the batch payload for a completed review round.
// Duration is in seconds. Mode is a free-text label ("flashcard", "quiz").
type SessionSubmission struct {
	SessionID string       `json:"session_id"`
	Results   []WordResult `json:"results"`
	Duration  int          `json:"duration,omitempty"`
	Mode      string       `json:"mode,omitempty"`
}

// ReviewSession is one persisted review round. Immutable after insert.
type ReviewSession struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	SessionID       string    `json:"session_id"`
	TotalWords      int       `json:"total_words"`
	CorrectWords    int       `json:"correct_words"`
	Accuracy        float64   `json:"accuracy"`
	Duration        int       `json:"duration"`
	Mode            string    `json:"mode,omitempty"`
	AvgResponseTime float64   `json:"average_response_time"`
	CompletedAt     time.Time `json:"completed_at"`
	CreatedAt       time.Time `json:"created_at"`
}

// SessionResult is the submit response: stored aggregates plus whether the
// submission replayed an already-recorded session id.
type SessionResult struct {
	Session      ReviewSession `json:"session"`
	UpdatedWords []int64       `json:"updated_words"`
	SkippedWords []int64       `json:"skipped_words,omitempty"`
	Duplicate    bool          `json:"duplicate"`
}

// SessionFilter narrows session history queries.
type SessionFilter struct {
	UserID int64
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// DailyLearningStat is the per-day rollup of review activity. Sessions add
// their contribution to the existing row for the date.
type DailyLearningStat struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	LearningDate   string    `json:"learning_date"` // YYYY-MM-DD
	WordsReviewed  int       `json:"words_reviewed"`
	WordsCorrect   int       `json:"words_correct"`
	WordsIncorrect int       `json:"words_incorrect"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DayAggregate is one day's session totals as read back for the calendar
// and stats views. Date is YYYY-MM-DD.
type DayAggregate struct {
	Date         string
	SessionCount int
	WordCount    int
	CorrectCount int
}
