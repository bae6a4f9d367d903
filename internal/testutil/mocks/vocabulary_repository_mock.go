package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/SteampunkGill/readmemory/internal/models"
)

// MockVocabularyRepository is a mock implementation of repository.VocabularyRepository
type MockVocabularyRepository struct {
	mock.Mock
}

func (m *MockVocabularyRepository) Get(ctx context.Context, userID, itemID int64) (*models.VocabularyItem, error) {
	args := m.Called(ctx, userID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VocabularyItem), args.Error(1)
}

func (m *MockVocabularyRepository) Insert(ctx context.Context, item models.VocabularyItem) (int64, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVocabularyRepository) DueWords(ctx context.Context, filter models.DueWordFilter, now time.Time) ([]models.VocabularyItem, error) {
	args := m.Called(ctx, filter, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.VocabularyItem), args.Error(1)
}

func (m *MockVocabularyRepository) CountEligible(ctx context.Context, filter models.DueWordFilter, now time.Time) (int, int, error) {
	args := m.Called(ctx, filter, now)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *MockVocabularyRepository) CountAll(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockVocabularyRepository) CountMastered(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockVocabularyRepository) UpdateMastery(ctx context.Context, item models.VocabularyItem, prevLevel int) (bool, error) {
	args := m.Called(ctx, item, prevLevel)
	return args.Bool(0), args.Error(1)
}

func (m *MockVocabularyRepository) Skip(ctx context.Context, userID, itemID int64, nextReview, now time.Time) (bool, error) {
	args := m.Called(ctx, userID, itemID, nextReview, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockVocabularyRepository) Reset(ctx context.Context, userID, itemID int64, resetMastery, resetReviewCount bool, now time.Time) (bool, error) {
	args := m.Called(ctx, userID, itemID, resetMastery, resetReviewCount, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockVocabularyRepository) RandomWithDefinition(ctx context.Context, userID int64, limit int) ([]models.Distractor, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Distractor), args.Error(1)
}
