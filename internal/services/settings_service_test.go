package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SteampunkGill/readmemory/internal/errors"
	"github.com/SteampunkGill/readmemory/internal/models"
	"github.com/SteampunkGill/readmemory/internal/testutil/mocks"
)

func newSettingsServiceForTest() (SettingsService, *mocks.MockSettingsRepository) {
	settings := new(mocks.MockSettingsRepository)
	return NewSettingsService(settings, fixedClock), settings
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestGetPlanDefaultsWithoutRow(t *testing.T) {
	svc, settings := newSettingsServiceForTest()

	settings.On("Get", mock.Anything, int64(7)).Return(nil, nil)

	plan, err := svc.GetPlan(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 20, plan.DailyTargetWords)
	assert.Equal(t, 5, plan.WeeklyTargetDays)
	assert.Equal(t, "18:00", plan.PreferredTime)
	assert.True(t, plan.ReminderEnabled)
	assert.Equal(t, 15, plan.SnoozeMinutes)
	// Reading defaults never writes a row.
	settings.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestUpdatePlanMergesPatch(t *testing.T) {
	svc, settings := newSettingsServiceForTest()
	ctx := context.Background()

	stored := models.DefaultReviewSettings(7)
	stored.DailyTargetWords = 30
	stored.PreferredTime = "07:30"

	settings.On("Get", mock.Anything, int64(7)).Return(&stored, nil).Once()

	var upserted models.ReviewSettings
	settings.On("Upsert", mock.Anything, mock.MatchedBy(func(s models.ReviewSettings) bool {
		upserted = s
		return true
	})).Return(nil)
	settings.On("Get", mock.Anything, int64(7)).Return(&upserted, nil)

	got, err := svc.UpdatePlan(ctx, 7, models.ReviewSettingsPatch{
		DailyTargetWords: intPtr(50),
	})
	require.NoError(t, err)
	assert.Equal(t, 50, got.DailyTargetWords)
	// Untouched fields keep the stored values.
	assert.Equal(t, "07:30", got.PreferredTime)
	assert.Equal(t, 5, got.WeeklyTargetDays)
}

func TestUpdatePlanInsertsDefaultsForNewUser(t *testing.T) {
	svc, settings := newSettingsServiceForTest()

	settings.On("Get", mock.Anything, int64(7)).Return(nil, nil).Once()
	var upserted models.ReviewSettings
	settings.On("Upsert", mock.Anything, mock.MatchedBy(func(s models.ReviewSettings) bool {
		upserted = s
		return true
	})).Return(nil)
	settings.On("Get", mock.Anything, int64(7)).Return(&upserted, nil)

	got, err := svc.UpdatePlan(context.Background(), 7, models.ReviewSettingsPatch{
		PreferredTime: strPtr("21:15"),
	})
	require.NoError(t, err)
	assert.Equal(t, "21:15", got.PreferredTime)
	assert.Equal(t, 20, got.DailyTargetWords)
	assert.Equal(t, 15, got.SnoozeMinutes)
}

func TestUpdatePlanValidation(t *testing.T) {
	svc, settings := newSettingsServiceForTest()
	ctx := context.Background()

	cases := []models.ReviewSettingsPatch{
		{DailyTargetWords: intPtr(0)},
		{DailyTargetWords: intPtr(1001)},
		{WeeklyTargetDays: intPtr(8)},
		{PreferredTime: strPtr("24:00")},
		{PreferredTime: strPtr("9:00")},
		{SnoozeMinutes: intPtr(0)},
		{SnoozeMinutes: intPtr(61)},
	}
	for _, patch := range cases {
		_, err := svc.UpdatePlan(ctx, 7, patch)
		require.Error(t, err)
		appErr, ok := err.(*errors.AppError)
		require.True(t, ok)
		assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
	}
	// Violations are rejected before any read or write.
	settings.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	settings.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestUpdatePlanBoundaryValuesAccepted(t *testing.T) {
	svc, settings := newSettingsServiceForTest()
	ctx := context.Background()

	settings.On("Get", mock.Anything, int64(7)).Return(nil, nil)
	settings.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	for _, target := range []int{1, 1000} {
		_, err := svc.UpdatePlan(ctx, 7, models.ReviewSettingsPatch{DailyTargetWords: intPtr(target)})
		require.NoError(t, err, "daily target %d", target)
	}
}
