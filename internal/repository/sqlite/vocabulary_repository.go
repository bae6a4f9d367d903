package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/SteampunkGill/readmemory/internal/logger"
	"github.com/SteampunkGill/readmemory/internal/models"
	"github.com/SteampunkGill/readmemory/internal/repository"
)

const vocabularyColumns = `uv.id, uv.user_id, uv.word_id, w.word, w.language, w.definition, w.example, w.phonetic, w.part_of_speech, w.difficulty,
       uv.mastery_level, uv.review_count, uv.is_mastered, uv.last_reviewed_at, uv.next_review_date, uv.source,
       uv.skip_count, uv.reset_count, uv.last_reset_at, uv.created_at, uv.updated_at`

type vocabularyRepository struct {
	db *sql.DB
}

// NewVocabularyRepository creates a new VocabularyRepository implementation
func NewVocabularyRepository(db *sql.DB) repository.VocabularyRepository {
	return &vocabularyRepository{db: db}
}

func scanVocabularyItem(row interface{ Scan(...any) error }) (models.VocabularyItem, error) {
	var item models.VocabularyItem
	var lastReviewed, nextReview, lastReset sql.NullTime
	err := row.Scan(&item.ID, &item.UserID, &item.WordID, &item.Word, &item.Language, &item.Definition, &item.Example, &item.Phonetic, &item.PartOfSpeech, &item.Difficulty,
		&item.MasteryLevel, &item.ReviewCount, &item.IsMastered, &lastReviewed, &nextReview, &item.Source,
		&item.SkipCount, &item.ResetCount, &lastReset, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return item, err
	}
	item.LastReviewedAt = timePtr(lastReviewed)
	item.NextReviewDate = timePtr(nextReview)
	item.LastResetAt = timePtr(lastReset)
	return item, nil
}

func (r *vocabularyRepository) Get(ctx context.Context, userID, itemID int64) (*models.VocabularyItem, error) {
	log := logger.FromContext(ctx).WithPrefix("vocab_repo")
	log.Debug("getting vocabulary item: id=%d, user_id=%d", itemID, userID)

	row := r.db.QueryRowContext(ctx, `
SELECT `+vocabularyColumns+`
FROM user_vocabulary uv
JOIN words w ON w.id = uv.word_id
WHERE uv.id = ? AND uv.user_id = ?
`, itemID, userID)
	item, err := scanVocabularyItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("vocabulary item not found: id=%d", itemID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get vocabulary item: %v", err)
		return nil, err
	}
	return &item, nil
}

func (r *vocabularyRepository) Insert(ctx context.Context, item models.VocabularyItem) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("vocab_repo")
	log.Debug("inserting vocabulary item: user_id=%d, word_id=%d", item.UserID, item.WordID)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO user_vocabulary (user_id, word_id, mastery_level, review_count, is_mastered, last_reviewed_at, next_review_date, source)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, item.UserID, item.WordID, item.MasteryLevel, item.ReviewCount, item.IsMastered, item.LastReviewedAt, item.NextReviewDate, item.Source)
	if err != nil {
		log.Error("failed to insert vocabulary item: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get vocabulary item id: %v", err)
		return 0, err
	}
	log.Debug("vocabulary item inserted: id=%d", id)
	return id, nil
}

// eligibleQuery applies the candidate-set conditions shared by DueWords and
// CountEligible: owned by the user, not mastered, optional filters.
func eligibleQuery(base squirrel.SelectBuilder, filter models.DueWordFilter, now time.Time) squirrel.SelectBuilder {
	q := base.
		From("user_vocabulary uv").
		Join("words w ON w.id = uv.word_id").
		Where(squirrel.Eq{"uv.user_id": filter.UserID}).
		Where(squirrel.Eq{"uv.is_mastered": false})

	if filter.Language != "" {
		q = q.Where(squirrel.Eq{"w.language": filter.Language})
	}
	if filter.Difficulty != "" {
		q = q.Where(squirrel.Eq{"w.difficulty": filter.Difficulty})
	}
	if filter.FreshOnly {
		q = q.Where("DATE(uv.created_at) = DATE(?)", now).
			Where(squirrel.NotEq{"uv.source": ""})
	}
	return q
}

func (r *vocabularyRepository) DueWords(ctx context.Context, filter models.DueWordFilter, now time.Time) ([]models.VocabularyItem, error) {
	log := logger.FromContext(ctx).WithPrefix("vocab_repo")
	log.Debug("fetching due words: user_id=%d, limit=%d, language=%s, difficulty=%s, fresh_only=%t",
		filter.UserID, filter.Limit, filter.Language, filter.Difficulty, filter.FreshOnly)

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	query := eligibleQuery(sqlBuilder.Select(vocabularyColumns), filter, now).
		OrderByClause(
			"CASE WHEN uv.next_review_date IS NULL OR uv.next_review_date <= ? THEN 0 WHEN uv.next_review_date <= ? THEN 1 ELSE 2 END, uv.next_review_date ASC",
			now, now.Add(24*time.Hour),
		).
		Limit(uint64(limit))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build due-words query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query due words: %v", err)
		return nil, err
	}
	defer rows.Close()

	var items []models.VocabularyItem
	for rows.Next() {
		item, err := scanVocabularyItem(rows)
		if err != nil {
			log.Error("failed to scan vocabulary row: %v", err)
			return nil, err
		}
		items = append(items, item)
	}
	log.Debug("found %d due words", len(items))
	return items, rows.Err()
}

func (r *vocabularyRepository) CountEligible(ctx context.Context, filter models.DueWordFilter, now time.Time) (int, int, error) {
	log := logger.FromContext(ctx).WithPrefix("vocab_repo")

	query := eligibleQuery(sqlBuilder.Select(
		"COUNT(*)",
		"COALESCE(SUM(CASE WHEN uv.next_review_date IS NULL OR uv.next_review_date <= ? THEN 1 ELSE 0 END), 0)",
	), filter, now)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build eligible-count query: %v", err)
		return 0, 0, err
	}
	// The SUM placeholder sits in the SELECT list, before the WHERE args.
	args = append([]any{now.Add(24 * time.Hour)}, args...)

	var total, due int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&total, &due); err != nil {
		log.Error("failed to count eligible words: %v", err)
		return 0, 0, err
	}
	return total, due, nil
}

func (r *vocabularyRepository) CountAll(ctx context.Context, userID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM user_vocabulary WHERE user_id = ?`, userID).Scan(&n)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("vocab_repo").Error("failed to count vocabulary: %v", err)
	}
	return n, err
}

func (r *vocabularyRepository) CountMastered(ctx context.Context, userID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM user_vocabulary WHERE user_id = ? AND is_mastered = 1`, userID).Scan(&n)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("vocab_repo").Error("failed to count mastered words: %v", err)
	}
	return n, err
}

func (r *vocabularyRepository) UpdateMastery(ctx context.Context, item models.VocabularyItem, prevLevel int) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("vocab_repo")
	log.Debug("updating mastery: id=%d, level=%d->%d", item.ID, prevLevel, item.MasteryLevel)

	res, err := r.db.ExecContext(ctx, `
UPDATE user_vocabulary
SET mastery_level = ?, review_count = review_count + 1, is_mastered = ?, last_reviewed_at = ?, next_review_date = ?, updated_at = ?
WHERE id = ? AND user_id = ? AND mastery_level = ?
`, item.MasteryLevel, item.IsMastered, item.LastReviewedAt, item.NextReviewDate, item.UpdatedAt, item.ID, item.UserID, prevLevel)
	if err != nil {
		log.Error("failed to update mastery: %v", err)
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		log.Debug("mastery update missed: id=%d, expected level=%d", item.ID, prevLevel)
	}
	return n > 0, nil
}

func (r *vocabularyRepository) Skip(ctx context.Context, userID, itemID int64, nextReview, now time.Time) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("vocab_repo")
	log.Debug("skipping item: id=%d, next_review=%s", itemID, nextReview.Format(time.RFC3339))

	res, err := r.db.ExecContext(ctx, `
UPDATE user_vocabulary
SET next_review_date = ?, skip_count = skip_count + 1, updated_at = ?
WHERE id = ? AND user_id = ?
`, nextReview, now, itemID, userID)
	if err != nil {
		log.Error("failed to skip item: %v", err)
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *vocabularyRepository) Reset(ctx context.Context, userID, itemID int64, resetMastery, resetReviewCount bool, now time.Time) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("vocab_repo")
	log.Debug("resetting item: id=%d, mastery=%t, review_count=%t", itemID, resetMastery, resetReviewCount)

	query := sqlBuilder.Update("user_vocabulary").
		Set("reset_count", squirrel.Expr("reset_count + 1")).
		Set("last_reset_at", now).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": itemID, "user_id": userID})
	if resetMastery {
		query = query.
			Set("mastery_level", 0).
			Set("is_mastered", false).
			Set("next_review_date", now.Add(24*time.Hour))
	}
	if resetReviewCount {
		query = query.Set("review_count", 0)
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build reset query: %v", err)
		return false, err
	}
	res, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to reset item: %v", err)
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *vocabularyRepository) RandomWithDefinition(ctx context.Context, userID int64, limit int) ([]models.Distractor, error) {
	log := logger.FromContext(ctx).WithPrefix("vocab_repo")
	log.Debug("sampling user vocabulary for distractors: user_id=%d, limit=%d", userID, limit)

	rows, err := r.db.QueryContext(ctx, `
SELECT w.id, w.word, w.definition, w.phonetic
FROM user_vocabulary uv
JOIN words w ON w.id = uv.word_id
WHERE uv.user_id = ? AND w.definition != ''
ORDER BY RANDOM()
LIMIT ?
`, userID, limit)
	if err != nil {
		log.Error("failed to sample user vocabulary: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []models.Distractor
	for rows.Next() {
		var d models.Distractor
		if err := rows.Scan(&d.ID, &d.Word, &d.Definition, &d.Phonetic); err != nil {
			log.Error("failed to scan distractor row: %v", err)
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
