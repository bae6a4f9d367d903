package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/SteampunkGill/readmemory/internal/models"
)

// MockSessionRepository is a mock implementation of repository.SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Insert(ctx context.Context, s models.ReviewSession) (int64, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSessionRepository) GetBySessionID(ctx context.Context, userID int64, sessionID string) (*models.ReviewSession, error) {
	args := m.Called(ctx, userID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReviewSession), args.Error(1)
}

func (m *MockSessionRepository) List(ctx context.Context, filter models.SessionFilter) ([]models.ReviewSession, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReviewSession), args.Error(1)
}

func (m *MockSessionRepository) Count(ctx context.Context, filter models.SessionFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockSessionRepository) Delete(ctx context.Context, userID, id int64) (bool, error) {
	args := m.Called(ctx, userID, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockSessionRepository) DeleteAll(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSessionRepository) DistinctReviewDates(ctx context.Context, userID int64) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockSessionRepository) Totals(ctx context.Context, userID int64) (int, int, float64, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Int(1), args.Get(2).(float64), args.Error(3)
}

func (m *MockSessionRepository) DayTotals(ctx context.Context, userID int64, date string) (int, int, error) {
	args := m.Called(ctx, userID, date)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *MockSessionRepository) DayAggregates(ctx context.Context, userID int64, from, to string) ([]models.DayAggregate, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DayAggregate), args.Error(1)
}

func (m *MockSessionRepository) SumReviewedBetween(ctx context.Context, userID int64, from, to string) (int, error) {
	args := m.Called(ctx, userID, from, to)
	return args.Int(0), args.Error(1)
}
