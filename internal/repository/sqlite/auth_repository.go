package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/SteampunkGill/readmemory/internal/logger"
	"github.com/SteampunkGill/readmemory/internal/repository"
)

type authRepository struct {
	db *sql.DB
}

// NewAuthRepository creates a new AuthRepository implementation
func NewAuthRepository(db *sql.DB) repository.AuthRepository {
	return &authRepository{db: db}
}

func (r *authRepository) UserIDForToken(ctx context.Context, token string, now time.Time) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("auth_repo")

	var userID int64
	err := r.db.QueryRowContext(ctx, `
SELECT user_id
FROM user_tokens
WHERE token = ? AND expires_at > ?
`, token, now).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("token unknown or expired")
		return 0, nil
	}
	if err != nil {
		log.Error("failed to resolve token: %v", err)
		return 0, err
	}
	return userID, nil
}
