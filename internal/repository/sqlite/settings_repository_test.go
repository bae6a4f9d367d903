package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/SteampunkGill/readmemory/internal/models"
	"github.com/SteampunkGill/readmemory/internal/repository"
	"github.com/SteampunkGill/readmemory/internal/repository/sqlite"
	"github.com/SteampunkGill/readmemory/internal/testutil"
)

type SettingsRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.SettingsRepository
}

func (s *SettingsRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewSettingsRepository(s.db)
}

func (s *SettingsRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *SettingsRepositorySuite) setupUser(username string) int64 {
	ctx := context.Background()
	res, err := s.db.ExecContext(ctx, `INSERT INTO users (username, email) VALUES (?, ?)`, username, username+"@example.com")
	s.Require().NoError(err)
	id, err := res.LastInsertId()
	s.Require().NoError(err)
	return id
}

func (s *SettingsRepositorySuite) TestGetMissingReturnsNil() {
	ctx := context.Background()
	userID := s.setupUser("learner")

	got, err := s.repo.Get(ctx, userID)
	s.Require().NoError(err)
	s.Assert().Nil(got)
}

func (s *SettingsRepositorySuite) TestUpsertRoundTrip() {
	ctx := context.Background()
	userID := s.setupUser("learner")

	plan := models.DefaultReviewSettings(userID)
	plan.DailyTargetWords = 30
	plan.PreferredDays = []string{"monday", "wednesday", "friday"}
	s.Require().NoError(s.repo.Upsert(ctx, plan))

	got, err := s.repo.Get(ctx, userID)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal(30, got.DailyTargetWords)
	s.Assert().Equal([]string{"monday", "wednesday", "friday"}, got.PreferredDays)
	s.Assert().Equal("18:00", got.PreferredTime)

	// Second upsert updates in place.
	plan.DailyTargetWords = 50
	s.Require().NoError(s.repo.Upsert(ctx, plan))

	got, err = s.repo.Get(ctx, userID)
	s.Require().NoError(err)
	s.Assert().Equal(50, got.DailyTargetWords)
}

func (s *SettingsRepositorySuite) TestRemindersDue() {
	ctx := context.Background()
	morning := s.setupUser("morning")
	evening := s.setupUser("evening")
	muted := s.setupUser("muted")

	a := models.DefaultReviewSettings(morning)
	a.PreferredTime = "08:00"
	s.Require().NoError(s.repo.Upsert(ctx, a))

	b := models.DefaultReviewSettings(evening)
	s.Require().NoError(s.repo.Upsert(ctx, b))

	c := models.DefaultReviewSettings(muted)
	c.PreferredTime = "08:00"
	c.ReminderEnabled = false
	s.Require().NoError(s.repo.Upsert(ctx, c))

	plans, err := s.repo.RemindersDue(ctx, "08:00")
	s.Require().NoError(err)
	s.Require().Len(plans, 1)
	s.Assert().Equal(morning, plans[0].UserID)
}

func TestSettingsRepositorySuite(t *testing.T) {
	suite.Run(t, new(SettingsRepositorySuite))
}
