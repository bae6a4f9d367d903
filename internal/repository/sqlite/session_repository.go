package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"

	"github.com/SteampunkGill/readmemory/internal/logger"
	"github.com/SteampunkGill/readmemory/internal/models"
	"github.com/SteampunkGill/readmemory/internal/repository"
)

const sessionColumns = "id, user_id, session_id, total_words, correct_words, accuracy, duration, mode, average_response_time, completed_at, created_at"

type sessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SessionRepository implementation
func NewSessionRepository(db *sql.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Insert(ctx context.Context, s models.ReviewSession) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("recording session: user_id=%d, session_id=%s, words=%d", s.UserID, s.SessionID, s.TotalWords)

	var id int64
	err := tx(ctx, r.db, func(t *sql.Tx) error {
		res, err := t.ExecContext(ctx, `
INSERT INTO review_sessions (user_id, session_id, total_words, correct_words, accuracy, duration, mode, average_response_time, completed_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`, s.UserID, s.SessionID, s.TotalWords, s.CorrectWords, s.Accuracy, s.Duration, s.Mode, s.AvgResponseTime, s.CompletedAt)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		if err != nil {
			return err
		}

		incorrect := s.TotalWords - s.CorrectWords
		date := s.CompletedAt.Format("2006-01-02")
		_, err = t.ExecContext(ctx, `
INSERT INTO daily_learning_stats (user_id, learning_date, words_reviewed, words_correct, words_incorrect)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (user_id, learning_date) DO UPDATE SET
    words_reviewed = words_reviewed + excluded.words_reviewed,
    words_correct = words_correct + excluded.words_correct,
    words_incorrect = words_incorrect + excluded.words_incorrect,
    updated_at = CURRENT_TIMESTAMP
`, s.UserID, date, s.TotalWords, s.CorrectWords, incorrect)
		return err
	})
	if err != nil {
		log.Error("failed to record session: %v", err)
		return 0, err
	}
	log.Debug("session recorded: id=%d", id)
	return id, nil
}

func scanSession(row interface{ Scan(...any) error }) (models.ReviewSession, error) {
	var s models.ReviewSession
	err := row.Scan(&s.ID, &s.UserID, &s.SessionID, &s.TotalWords, &s.CorrectWords, &s.Accuracy, &s.Duration, &s.Mode, &s.AvgResponseTime, &s.CompletedAt, &s.CreatedAt)
	return s, err
}

func (r *sessionRepository) GetBySessionID(ctx context.Context, userID int64, sessionID string) (*models.ReviewSession, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")

	row := r.db.QueryRowContext(ctx, `
SELECT `+sessionColumns+`
FROM review_sessions
WHERE user_id = ? AND session_id = ?
`, userID, sessionID)
	s, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get session by session_id: %v", err)
		return nil, err
	}
	return &s, nil
}

// sessionFilterQuery applies the history filter conditions shared by List
// and Count.
func sessionFilterQuery(base squirrel.SelectBuilder, filter models.SessionFilter) squirrel.SelectBuilder {
	q := base.From("review_sessions").Where(squirrel.Eq{"user_id": filter.UserID})
	if filter.From != nil {
		q = q.Where(squirrel.GtOrEq{"completed_at": *filter.From})
	}
	if filter.To != nil {
		q = q.Where(squirrel.LtOrEq{"completed_at": *filter.To})
	}
	return q
}

func (r *sessionRepository) List(ctx context.Context, filter models.SessionFilter) ([]models.ReviewSession, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("listing sessions: user_id=%d, limit=%d, offset=%d", filter.UserID, filter.Limit, filter.Offset)

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := sessionFilterQuery(sqlBuilder.Select(sessionColumns), filter).
		OrderBy("completed_at DESC").
		Limit(uint64(limit)).Offset(uint64(offset))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build session list query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list sessions: %v", err)
		return nil, err
	}
	defer rows.Close()

	var sessions []models.ReviewSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			log.Error("failed to scan session row: %v", err)
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func (r *sessionRepository) Count(ctx context.Context, filter models.SessionFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")

	sqlStr, args, err := sessionFilterQuery(sqlBuilder.Select("COUNT(*)"), filter).ToSql()
	if err != nil {
		log.Error("failed to build session count query: %v", err)
		return 0, err
	}
	var n int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&n); err != nil {
		log.Error("failed to count sessions: %v", err)
		return 0, err
	}
	return n, nil
}

func (r *sessionRepository) Delete(ctx context.Context, userID, id int64) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("deleting session: id=%d, user_id=%d", id, userID)

	res, err := r.db.ExecContext(ctx, `DELETE FROM review_sessions WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		log.Error("failed to delete session: %v", err)
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *sessionRepository) DeleteAll(ctx context.Context, userID int64) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("clearing session history: user_id=%d", userID)

	res, err := r.db.ExecContext(ctx, `DELETE FROM review_sessions WHERE user_id = ?`, userID)
	if err != nil {
		log.Error("failed to clear session history: %v", err)
		return 0, err
	}
	return res.RowsAffected()
}

func (r *sessionRepository) DistinctReviewDates(ctx context.Context, userID int64) ([]string, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT DISTINCT DATE(completed_at)
FROM review_sessions
WHERE user_id = ?
ORDER BY DATE(completed_at) DESC
`, userID)
	if err != nil {
		log.Error("failed to query review dates: %v", err)
		return nil, err
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			log.Error("failed to scan review date: %v", err)
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

func (r *sessionRepository) Totals(ctx context.Context, userID int64) (int, int, float64, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")

	var sessions, words int
	var avgAccuracy float64
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*), COALESCE(SUM(total_words), 0), COALESCE(AVG(accuracy), 0)
FROM review_sessions
WHERE user_id = ?
`, userID).Scan(&sessions, &words, &avgAccuracy)
	if err != nil {
		log.Error("failed to query session totals: %v", err)
		return 0, 0, 0, err
	}
	return sessions, words, avgAccuracy, nil
}

func (r *sessionRepository) DayTotals(ctx context.Context, userID int64, date string) (int, int, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")

	var sessions, words int
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*), COALESCE(SUM(total_words), 0)
FROM review_sessions
WHERE user_id = ? AND DATE(completed_at) = ?
`, userID, date).Scan(&sessions, &words)
	if err != nil {
		log.Error("failed to query day totals: %v", err)
		return 0, 0, err
	}
	return sessions, words, nil
}

func (r *sessionRepository) DayAggregates(ctx context.Context, userID int64, from, to string) ([]models.DayAggregate, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("aggregating sessions by day: user_id=%d, from=%s, to=%s", userID, from, to)

	rows, err := r.db.QueryContext(ctx, `
SELECT DATE(completed_at), COUNT(*), COALESCE(SUM(total_words), 0), COALESCE(SUM(correct_words), 0)
FROM review_sessions
WHERE user_id = ? AND DATE(completed_at) BETWEEN ? AND ?
GROUP BY DATE(completed_at)
ORDER BY DATE(completed_at)
`, userID, from, to)
	if err != nil {
		log.Error("failed to aggregate sessions by day: %v", err)
		return nil, err
	}
	defer rows.Close()

	var aggs []models.DayAggregate
	for rows.Next() {
		var a models.DayAggregate
		if err := rows.Scan(&a.Date, &a.SessionCount, &a.WordCount, &a.CorrectCount); err != nil {
			log.Error("failed to scan day aggregate: %v", err)
			return nil, err
		}
		aggs = append(aggs, a)
	}
	return aggs, rows.Err()
}

func (r *sessionRepository) SumReviewedBetween(ctx context.Context, userID int64, from, to string) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")

	var n int
	err := r.db.QueryRowContext(ctx, `
SELECT COALESCE(SUM(words_reviewed), 0)
FROM daily_learning_stats
WHERE user_id = ? AND learning_date BETWEEN ? AND ?
`, userID, from, to).Scan(&n)
	if err != nil {
		log.Error("failed to sum reviewed words: %v", err)
		return 0, err
	}
	return n, nil
}
