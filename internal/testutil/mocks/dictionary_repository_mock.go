package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/SteampunkGill/readmemory/internal/models"
)

// MockDictionaryRepository is a mock implementation of repository.DictionaryRepository
type MockDictionaryRepository struct {
	mock.Mock
}

func (m *MockDictionaryRepository) RandomDistractors(ctx context.Context, limit int) ([]models.Distractor, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Distractor), args.Error(1)
}
