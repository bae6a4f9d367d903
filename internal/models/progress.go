package models

// GoalProgress is target vs completed over one window. Percent can exceed
// 100 when the user reviews past the goal.
type GoalProgress struct {
	Target    int     `json:"target"`
	Completed int     `json:"completed"`
	Percent   float64 `json:"percent"`
}

// ProgressSummary is the goal-tracking view for the dashboard.
type ProgressSummary struct {
	Daily         GoalProgress `json:"daily"`
	Weekly        GoalProgress `json:"weekly"`
	Monthly       GoalProgress `json:"monthly"`
	CurrentStreak int          `json:"current_streak"`
	TotalWords    int          `json:"total_words"`
	MasteredWords int          `json:"mastered_words"`
	DueCount      int          `json:"due_count"`
}

// ReviewStats is the lifetime review aggregate view.
type ReviewStats struct {
	TotalSessions      int     `json:"total_sessions"`
	TotalWordsReviewed int     `json:"total_words_reviewed"`
	AverageAccuracy    float64 `json:"average_accuracy"`
	CurrentStreak      int     `json:"current_streak"`
	LongestStreak      int     `json:"longest_streak"`
	TodaySessions      int     `json:"today_sessions"`
	TodayWordsReviewed int     `json:"today_words_reviewed"`
}

// CalendarDay is one cell of the monthly review calendar.
type CalendarDay struct {
	Date        string  `json:"date"`
	ReviewCount int     `json:"review_count"`
	WordCount   int     `json:"word_count"`
	Accuracy    float64 `json:"accuracy"`
	HasReview   bool    `json:"has_review"`
}
