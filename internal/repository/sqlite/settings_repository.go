package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/SteampunkGill/readmemory/internal/logger"
	"github.com/SteampunkGill/readmemory/internal/models"
	"github.com/SteampunkGill/readmemory/internal/repository"
)

const settingsColumns = "user_id, daily_target_words, weekly_target_days, preferred_time, preferred_days, language_focus, difficulty_level, reminder_enabled, sound_enabled, vibration_enabled, snooze_minutes, created_at, updated_at"

type settingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new SettingsRepository implementation
func NewSettingsRepository(db *sql.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

// Preferred days are stored as a comma-joined string.
func joinDays(days []string) string {
	return strings.Join(days, ",")
}

func splitDays(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func scanSettings(row interface{ Scan(...any) error }) (models.ReviewSettings, error) {
	var s models.ReviewSettings
	var days string
	err := row.Scan(&s.UserID, &s.DailyTargetWords, &s.WeeklyTargetDays, &s.PreferredTime, &days, &s.LanguageFocus, &s.DifficultyLevel,
		&s.ReminderEnabled, &s.SoundEnabled, &s.VibrationEnabled, &s.SnoozeMinutes, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return s, err
	}
	s.PreferredDays = splitDays(days)
	return s, nil
}

func (r *settingsRepository) Get(ctx context.Context, userID int64) (*models.ReviewSettings, error) {
	log := logger.FromContext(ctx).WithPrefix("settings_repo")
	log.Debug("getting review settings: user_id=%d", userID)

	row := r.db.QueryRowContext(ctx, `
SELECT `+settingsColumns+`
FROM review_settings
WHERE user_id = ?
`, userID)
	s, err := scanSettings(row)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no settings row: user_id=%d", userID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get settings: %v", err)
		return nil, err
	}
	return &s, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, s models.ReviewSettings) error {
	log := logger.FromContext(ctx).WithPrefix("settings_repo")
	log.Debug("upserting review settings: user_id=%d, daily_target=%d", s.UserID, s.DailyTargetWords)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO review_settings (user_id, daily_target_words, weekly_target_days, preferred_time, preferred_days, language_focus, difficulty_level, reminder_enabled, sound_enabled, vibration_enabled, snooze_minutes)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (user_id) DO UPDATE SET
    daily_target_words = excluded.daily_target_words,
    weekly_target_days = excluded.weekly_target_days,
    preferred_time = excluded.preferred_time,
    preferred_days = excluded.preferred_days,
    language_focus = excluded.language_focus,
    difficulty_level = excluded.difficulty_level,
    reminder_enabled = excluded.reminder_enabled,
    sound_enabled = excluded.sound_enabled,
    vibration_enabled = excluded.vibration_enabled,
    snooze_minutes = excluded.snooze_minutes,
    updated_at = CURRENT_TIMESTAMP
`, s.UserID, s.DailyTargetWords, s.WeeklyTargetDays, s.PreferredTime, joinDays(s.PreferredDays), s.LanguageFocus, s.DifficultyLevel,
		s.ReminderEnabled, s.SoundEnabled, s.VibrationEnabled, s.SnoozeMinutes)
	if err != nil {
		log.Error("failed to upsert settings: %v", err)
	}
	return err
}

func (r *settingsRepository) RemindersDue(ctx context.Context, hhmm string) ([]models.ReviewSettings, error) {
	log := logger.FromContext(ctx).WithPrefix("settings_repo")
	log.Debug("listing reminder plans for %s", hhmm)

	rows, err := r.db.QueryContext(ctx, `
SELECT `+settingsColumns+`
FROM review_settings
WHERE reminder_enabled = 1 AND preferred_time = ?
`, hhmm)
	if err != nil {
		log.Error("failed to list reminder plans: %v", err)
		return nil, err
	}
	defer rows.Close()

	var plans []models.ReviewSettings
	for rows.Next() {
		s, err := scanSettings(rows)
		if err != nil {
			log.Error("failed to scan settings row: %v", err)
			return nil, err
		}
		plans = append(plans, s)
	}
	return plans, rows.Err()
}
