package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/SteampunkGill/readmemory/internal/repository"
	"github.com/SteampunkGill/readmemory/internal/repository/sqlite"
	"github.com/SteampunkGill/readmemory/internal/testutil"
)

type AuthRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.AuthRepository
}

func (s *AuthRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewAuthRepository(s.db)
}

func (s *AuthRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *AuthRepositorySuite) TestUserIDForToken() {
	ctx := context.Background()
	now := time.Now()

	res, err := s.db.ExecContext(ctx, `INSERT INTO users (username, email) VALUES ('learner', 'learner@example.com')`)
	s.Require().NoError(err)
	userID, err := res.LastInsertId()
	s.Require().NoError(err)

	_, err = s.db.ExecContext(ctx, `INSERT INTO user_tokens (token, user_id, expires_at) VALUES (?, ?, ?)`, "tok-live", userID, now.Add(time.Hour))
	s.Require().NoError(err)
	_, err = s.db.ExecContext(ctx, `INSERT INTO user_tokens (token, user_id, expires_at) VALUES (?, ?, ?)`, "tok-dead", userID, now.Add(-time.Hour))
	s.Require().NoError(err)

	got, err := s.repo.UserIDForToken(ctx, "tok-live", now)
	s.Require().NoError(err)
	s.Assert().Equal(userID, got)

	got, err = s.repo.UserIDForToken(ctx, "tok-dead", now)
	s.Require().NoError(err)
	s.Assert().Zero(got)

	got, err = s.repo.UserIDForToken(ctx, "nope", now)
	s.Require().NoError(err)
	s.Assert().Zero(got)
}

func TestAuthRepositorySuite(t *testing.T) {
	suite.Run(t, new(AuthRepositorySuite))
}
