package models

import "time"

// ReviewSettings is a user's review plan. Every user has an effective plan;
// a missing row means the defaults apply.
type ReviewSettings struct {
	UserID           int64     `json:"user_id"`
	DailyTargetWords int       `json:"daily_target_words"`
	WeeklyTargetDays int       `json:"weekly_target_days"`
	PreferredTime    string    `json:"preferred_time"`
	PreferredDays    []string  `json:"preferred_days,omitempty"`
	LanguageFocus    string    `json:"language_focus,omitempty"`
	DifficultyLevel  string    `json:"difficulty_level,omitempty"`
	ReminderEnabled  bool      `json:"reminder_enabled"`
	SoundEnabled     bool      `json:"sound_enabled"`
	VibrationEnabled bool      `json:"vibration_enabled"`
	SnoozeMinutes    int       `json:"snooze_minutes"`
	CreatedAt        time.Time `json:"created_at,omitempty"`
	UpdatedAt        time.Time `json:"updated_at,omitempty"`
}

// DefaultReviewSettings returns the plan applied when a user has never
// saved one. No row is created for defaults.
func DefaultReviewSettings(userID int64) ReviewSettings {
	return ReviewSettings{
		UserID:           userID,
		DailyTargetWords: 20,
		WeeklyTargetDays: 5,
		PreferredTime:    "18:00",
		ReminderEnabled:  true,
		SoundEnabled:     true,
		VibrationEnabled: true,
		SnoozeMinutes:    15,
	}
}

// ReviewSettingsPatch carries partial plan updates. Nil fields keep the
// previous value, or the default when no row existed.
type ReviewSettingsPatch struct {
	DailyTargetWords *int      `json:"daily_target_words,omitempty"`
	WeeklyTargetDays *int      `json:"weekly_target_days,omitempty"`
	PreferredTime    *string   `json:"preferred_time,omitempty"`
	PreferredDays    *[]string `json:"preferred_days,omitempty"`
	LanguageFocus    *string   `json:"language_focus,omitempty"`
	DifficultyLevel  *string   `json:"difficulty_level,omitempty"`
	ReminderEnabled  *bool     `json:"reminder_enabled,omitempty"`
	SoundEnabled     *bool     `json:"sound_enabled,omitempty"`
	VibrationEnabled *bool     `json:"vibration_enabled,omitempty"`
	SnoozeMinutes    *int      `json:"snooze_minutes,omitempty"`
}
