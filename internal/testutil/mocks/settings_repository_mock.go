package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/SteampunkGill/readmemory/internal/models"
)

// MockSettingsRepository is a mock implementation of repository.SettingsRepository
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Get(ctx context.Context, userID int64) (*models.ReviewSettings, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReviewSettings), args.Error(1)
}

func (m *MockSettingsRepository) Upsert(ctx context.Context, s models.ReviewSettings) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSettingsRepository) RemindersDue(ctx context.Context, hhmm string) ([]models.ReviewSettings, error) {
	args := m.Called(ctx, hhmm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReviewSettings), args.Error(1)
}
