package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockAuthRepository is a mock implementation of repository.AuthRepository
type MockAuthRepository struct {
	mock.Mock
}

func (m *MockAuthRepository) UserIDForToken(ctx context.Context, token string, now time.Time) (int64, error) {
	args := m.Called(ctx, token, now)
	return args.Get(0).(int64), args.Error(1)
}
