package services

import (
	"context"
	"regexp"
	"time"

	"github.com/SteampunkGill/readmemory/internal/errors"
	"github.com/SteampunkGill/readmemory/internal/logger"
	"github.com/SteampunkGill/readmemory/internal/models"
	"github.com/SteampunkGill/readmemory/internal/repository"
)

var hhmmRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// SettingsService reads and writes per-user review plans. Reads never
// create a row; the defaults are returned when none exists.
type SettingsService interface {
	GetPlan(ctx context.Context, userID int64) (*models.ReviewSettings, error)
	UpdatePlan(ctx context.Context, userID int64, patch models.ReviewSettingsPatch) (*models.ReviewSettings, error)
}

type settingsService struct {
	settings repository.SettingsRepository
	clock    func() time.Time
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(settings repository.SettingsRepository, clock func() time.Time) SettingsService {
	if clock == nil {
		clock = time.Now
	}
	return &settingsService{settings: settings, clock: clock}
}

func (s *settingsService) GetPlan(ctx context.Context, userID int64) (*models.ReviewSettings, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting review plan: user_id=%d", userID)

	plan, err := s.settings.Get(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if plan == nil {
		defaults := models.DefaultReviewSettings(userID)
		return &defaults, nil
	}
	return plan, nil
}

func (s *settingsService) UpdatePlan(ctx context.Context, userID int64, patch models.ReviewSettingsPatch) (*models.ReviewSettings, error) {
	log := logger.FromContext(ctx)

	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	// Absent fields keep the stored value, or the default when the user
	// has never saved a plan.
	current, err := s.settings.Get(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	plan := models.DefaultReviewSettings(userID)
	if current != nil {
		plan = *current
	}

	if patch.DailyTargetWords != nil {
		plan.DailyTargetWords = *patch.DailyTargetWords
	}
	if patch.WeeklyTargetDays != nil {
		plan.WeeklyTargetDays = *patch.WeeklyTargetDays
	}
	if patch.PreferredTime != nil {
		plan.PreferredTime = *patch.PreferredTime
	}
	if patch.PreferredDays != nil {
		plan.PreferredDays = *patch.PreferredDays
	}
	if patch.LanguageFocus != nil {
		plan.LanguageFocus = *patch.LanguageFocus
	}
	if patch.DifficultyLevel != nil {
		plan.DifficultyLevel = *patch.DifficultyLevel
	}
	if patch.ReminderEnabled != nil {
		plan.ReminderEnabled = *patch.ReminderEnabled
	}
	if patch.SoundEnabled != nil {
		plan.SoundEnabled = *patch.SoundEnabled
	}
	if patch.VibrationEnabled != nil {
		plan.VibrationEnabled = *patch.VibrationEnabled
	}
	if patch.SnoozeMinutes != nil {
		plan.SnoozeMinutes = *patch.SnoozeMinutes
	}

	log.Debug("updating review plan: user_id=%d, daily_target=%d", userID, plan.DailyTargetWords)

	if err := s.settings.Upsert(ctx, plan); err != nil {
		return nil, errors.NewInternalError(err)
	}

	stored, err := s.settings.Get(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if stored == nil {
		return &plan, nil
	}
	return stored, nil
}

// validatePatch rejects out-of-range values before anything is written.
func validatePatch(patch models.ReviewSettingsPatch) error {
	if patch.DailyTargetWords != nil && (*patch.DailyTargetWords < 1 || *patch.DailyTargetWords > 1000) {
		return errors.NewValidationError("daily_target_words", "must be between 1 and 1000")
	}
	if patch.WeeklyTargetDays != nil && (*patch.WeeklyTargetDays < 1 || *patch.WeeklyTargetDays > 7) {
		return errors.NewValidationError("weekly_target_days", "must be between 1 and 7")
	}
	if patch.PreferredTime != nil && !hhmmRe.MatchString(*patch.PreferredTime) {
		return errors.NewValidationError("preferred_time", "must be HH:mm in 24-hour form")
	}
	if patch.SnoozeMinutes != nil && (*patch.SnoozeMinutes < 1 || *patch.SnoozeMinutes > 60) {
		return errors.NewValidationError("snooze_minutes", "must be between 1 and 60")
	}
	return nil
}
