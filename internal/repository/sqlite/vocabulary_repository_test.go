package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/SteampunkGill/readmemory/internal/models"
	"github.com/SteampunkGill/readmemory/internal/repository"
	"github.com/SteampunkGill/readmemory/internal/repository/sqlite"
	"github.com/SteampunkGill/readmemory/internal/testutil"
)

type VocabularyRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.VocabularyRepository
}

func (s *VocabularyRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewVocabularyRepository(s.db)
}

func (s *VocabularyRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *VocabularyRepositorySuite) setupUser(username string) int64 {
	ctx := context.Background()
	_, err := s.db.ExecContext(ctx, `INSERT INTO users (username, email) VALUES (?, ?)`, username, username+"@example.com")
	s.Require().NoError(err)

	var userID int64
	err = s.db.QueryRowContext(ctx, `SELECT id FROM users WHERE username = ?`, username).Scan(&userID)
	s.Require().NoError(err)
	return userID
}

func (s *VocabularyRepositorySuite) setupWord(word, definition string) int64 {
	ctx := context.Background()
	res, err := s.db.ExecContext(ctx, `INSERT INTO words (word, definition, language, difficulty) VALUES (?, ?, 'en', 'medium')`, word, definition)
	s.Require().NoError(err)
	id, err := res.LastInsertId()
	s.Require().NoError(err)
	return id
}

func (s *VocabularyRepositorySuite) addVocab(userID, wordID int64, level int, next *time.Time) int64 {
	ctx := context.Background()
	mastered := level >= 8
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO user_vocabulary (user_id, word_id, mastery_level, is_mastered, next_review_date, source)
		VALUES (?, ?, ?, ?, ?, 'reading')
	`, userID, wordID, level, mastered, next)
	s.Require().NoError(err)
	id, err := res.LastInsertId()
	s.Require().NoError(err)
	return id
}

func (s *VocabularyRepositorySuite) TestGetScopedToOwner() {
	ctx := context.Background()
	owner := s.setupUser("owner")
	other := s.setupUser("other")
	wordID := s.setupWord("ephemeral", "lasting a very short time")
	itemID := s.addVocab(owner, wordID, 3, nil)

	item, err := s.repo.Get(ctx, owner, itemID)
	s.Require().NoError(err)
	s.Require().NotNil(item)
	s.Assert().Equal("ephemeral", item.Word)
	s.Assert().Equal(3, item.MasteryLevel)

	// Another user never sees the row.
	item, err = s.repo.Get(ctx, other, itemID)
	s.Require().NoError(err)
	s.Assert().Nil(item)
}

func (s *VocabularyRepositorySuite) TestDueWordsOrdering() {
	ctx := context.Background()
	userID := s.setupUser("learner")
	now := time.Now()

	past := now.Add(-2 * time.Hour)
	in12h := now.Add(12 * time.Hour)
	in3d := now.AddDate(0, 0, 3)

	scheduledID := s.addVocab(userID, s.setupWord("serene", "calm and peaceful"), 2, &in3d)
	overdueID := s.addVocab(userID, s.setupWord("luminous", "emitting light"), 1, &past)
	dueTodayID := s.addVocab(userID, s.setupWord("vivid", "intensely bright"), 3, &in12h)

	items, err := s.repo.DueWords(ctx, models.DueWordFilter{UserID: userID, Limit: 10}, now)
	s.Require().NoError(err)
	s.Require().Len(items, 3)
	s.Assert().Equal(overdueID, items[0].ID)
	s.Assert().Equal(dueTodayID, items[1].ID)
	s.Assert().Equal(scheduledID, items[2].ID)
}

func (s *VocabularyRepositorySuite) TestDueWordsExcludesMastered() {
	ctx := context.Background()
	userID := s.setupUser("learner")
	now := time.Now()
	past := now.Add(-time.Hour)

	s.addVocab(userID, s.setupWord("arcane", "understood by few"), 9, &past)
	keptID := s.addVocab(userID, s.setupWord("lucid", "clearly expressed"), 2, &past)

	items, err := s.repo.DueWords(ctx, models.DueWordFilter{UserID: userID}, now)
	s.Require().NoError(err)
	s.Require().Len(items, 1)
	s.Assert().Equal(keptID, items[0].ID)
}

func (s *VocabularyRepositorySuite) TestCountEligible() {
	ctx := context.Background()
	userID := s.setupUser("learner")
	now := time.Now()

	past := now.Add(-time.Hour)
	in3d := now.AddDate(0, 0, 3)

	s.addVocab(userID, s.setupWord("a", "def a"), 1, &past)
	s.addVocab(userID, s.setupWord("b", "def b"), 2, nil)
	s.addVocab(userID, s.setupWord("c", "def c"), 3, &in3d)
	s.addVocab(userID, s.setupWord("d", "def d"), 9, &past) // mastered, not eligible

	total, due, err := s.repo.CountEligible(ctx, models.DueWordFilter{UserID: userID}, now)
	s.Require().NoError(err)
	s.Assert().Equal(3, total)
	s.Assert().Equal(2, due)
}

func (s *VocabularyRepositorySuite) TestUpdateMasteryCompareAndSwap() {
	ctx := context.Background()
	userID := s.setupUser("learner")
	itemID := s.addVocab(userID, s.setupWord("keen", "sharp"), 4, nil)

	now := time.Now()
	next := now.AddDate(0, 0, 30)
	item := models.VocabularyItem{
		ID:             itemID,
		UserID:         userID,
		MasteryLevel:   5,
		IsMastered:     false,
		LastReviewedAt: &now,
		NextReviewDate: &next,
		UpdatedAt:      now,
	}

	ok, err := s.repo.UpdateMastery(ctx, item, 4)
	s.Require().NoError(err)
	s.Assert().True(ok)

	// Stale expected level misses.
	ok, err = s.repo.UpdateMastery(ctx, item, 4)
	s.Require().NoError(err)
	s.Assert().False(ok)

	var level, reviewCount int
	err = s.db.QueryRowContext(ctx, `SELECT mastery_level, review_count FROM user_vocabulary WHERE id = ?`, itemID).Scan(&level, &reviewCount)
	s.Require().NoError(err)
	s.Assert().Equal(5, level)
	s.Assert().Equal(1, reviewCount)
}

func (s *VocabularyRepositorySuite) TestSkipAndReset() {
	ctx := context.Background()
	userID := s.setupUser("learner")
	itemID := s.addVocab(userID, s.setupWord("brisk", "quick and active"), 6, nil)
	now := time.Now()

	ok, err := s.repo.Skip(ctx, userID, itemID, now.AddDate(0, 0, 5), now)
	s.Require().NoError(err)
	s.Assert().True(ok)

	ok, err = s.repo.Reset(ctx, userID, itemID, true, false, now)
	s.Require().NoError(err)
	s.Assert().True(ok)

	var level, skipCount, resetCount int
	var mastered bool
	err = s.db.QueryRowContext(ctx, `SELECT mastery_level, is_mastered, skip_count, reset_count FROM user_vocabulary WHERE id = ?`, itemID).
		Scan(&level, &mastered, &skipCount, &resetCount)
	s.Require().NoError(err)
	s.Assert().Equal(0, level)
	s.Assert().False(mastered)
	s.Assert().Equal(1, skipCount)
	s.Assert().Equal(1, resetCount)

	// Unknown item reports not found, not an error.
	ok, err = s.repo.Skip(ctx, userID, 99999, now, now)
	s.Require().NoError(err)
	s.Assert().False(ok)
}

func (s *VocabularyRepositorySuite) TestRandomWithDefinition() {
	ctx := context.Background()
	userID := s.setupUser("learner")
	s.addVocab(userID, s.setupWord("terse", "brief and to the point"), 1, nil)
	s.addVocab(userID, s.setupWord("blank", ""), 1, nil)

	out, err := s.repo.RandomWithDefinition(ctx, userID, 10)
	s.Require().NoError(err)
	s.Require().Len(out, 1)
	s.Assert().Equal("terse", out[0].Word)
}

func TestVocabularyRepositorySuite(t *testing.T) {
	suite.Run(t, new(VocabularyRepositorySuite))
}
