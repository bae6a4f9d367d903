package sqlite

import (
	"context"
	"database/sql"

	"github.com/SteampunkGill/readmemory/internal/logger"
	"github.com/SteampunkGill/readmemory/internal/models"
	"github.com/SteampunkGill/readmemory/internal/repository"
)

type dictionaryRepository struct {
	db *sql.DB
}

// NewDictionaryRepository creates a new DictionaryRepository implementation
func NewDictionaryRepository(db *sql.DB) repository.DictionaryRepository {
	return &dictionaryRepository{db: db}
}

func (r *dictionaryRepository) RandomDistractors(ctx context.Context, limit int) ([]models.Distractor, error) {
	log := logger.FromContext(ctx).WithPrefix("dictionary_repo")
	log.Debug("sampling dictionary for distractors: limit=%d", limit)

	rows, err := r.db.QueryContext(ctx, `
SELECT id, word, definition, phonetic
FROM words
WHERE definition != ''
ORDER BY RANDOM()
LIMIT ?
`, limit)
	if err != nil {
		log.Error("failed to sample dictionary: %v", err)
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
	log.Debug("sampled %d dictionary distractors", len(out))
	return out, rows.Err()
}
