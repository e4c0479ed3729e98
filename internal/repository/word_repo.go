package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
)

const defaultInsertBatch = 500

var ErrInvalidBatch = errors.New("invalid batch size")

// WordRepository stores the dictionary in the words table. It doubles as a
// vocabulary source for the index.
type WordRepository struct {
	db *sqlx.DB
}

func NewWordRepository(db *sqlx.DB) *WordRepository {
	return &WordRepository{db: db}
}

// Words returns every stored word in insertion order.
func (r *WordRepository) Words(ctx context.Context) ([]string, error) {
	var words []string
	if err := r.db.SelectContext(ctx, &words, `SELECT word FROM words ORDER BY id`); err != nil {
		return nil, err
	}
	return words, nil
}

func (r *WordRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM words`); err != nil {
		return 0, err
	}
	return n, nil
}

// InsertBatch inserts words in chunks of batchSize inside one transaction.
// Words already present are skipped. It returns the number of new rows.
func (r *WordRepository) InsertBatch(ctx context.Context, words []string, batchSize int) (int64, error) {
	if batchSize < 0 {
		return 0, ErrInvalidBatch
	}
	if batchSize == 0 {
		batchSize = defaultInsertBatch
	}
	if len(words) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var inserted int64
	for start := 0; start < len(words); start += batchSize {
		end := min(start+batchSize, len(words))
		chunk := words[start:end]

		args := make([]any, len(chunk))
		for i, w := range chunk {
			args[i] = w
		}
		res, err := tx.ExecContext(ctx, insertWordsQuery(len(chunk)), args...)
		if err != nil {
			return 0, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		inserted += n
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

func insertWordsQuery(n int) string {
	return `INSERT IGNORE INTO words (word) VALUES ` + strings.TrimSuffix(strings.Repeat("(?),", n), ",")
}
