package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/cinescribe/cinescribe/internal/common"
)

// PostgresRepository stores leaves in a single documents table
// (path text primary key, value jsonb).
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// escapeLike neutralizes LIKE metacharacters so a path prefix matches
// literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func (r *PostgresRepository) Replace(ctx context.Context, path string, ancestors []string, leaves map[string][]byte) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`DELETE FROM documents WHERE path = $1 OR path LIKE $2`,
		path, escapeLike(path)+"/%")
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	for _, a := range ancestors {
		if _, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE path = $1`, a); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
	}

	for p, v := range leaves {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO documents (path, value) VALUES ($1, $2)
			 ON CONFLICT (path) DO UPDATE SET value = EXCLUDED.value`,
			p, v)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, path string) ([]byte, error) {
	var v []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM documents WHERE path = $1`, path).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return v, nil
}

func (r *PostgresRepository) ListPrefix(ctx context.Context, path string) (map[string][]byte, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT path, value FROM documents WHERE path = $1 OR path LIKE $2`,
		path, escapeLike(path)+"/%")
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]byte)
	for rows.Next() {
		var p string
		var v []byte
		if err := rows.Scan(&p, &v); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out[p] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) DeletePrefix(ctx context.Context, path string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM documents WHERE path = $1 OR path LIKE $2`,
		path, escapeLike(path)+"/%")
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
