package repository

import (
	"context"
	"fmt"

	"github.com/imirazoki/lantegi/internal/db"
	"github.com/imirazoki/lantegi/internal/domain"
)

// SQLiteConflictRepo implements ConflictRepo using a SQLite database.
type SQLiteConflictRepo struct {
	db db.DBTX
}

// NewSQLiteConflictRepo creates a new SQLiteConflictRepo.
func NewSQLiteConflictRepo(conn db.DBTX) *SQLiteConflictRepo {
	return &SQLiteConflictRepo{db: conn}
}

func (r *SQLiteConflictRepo) ReplaceAll(ctx context.Context, conflicts []domain.Conflict) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM conflicts`); err != nil {
		return fmt.Errorf("clearing conflicts: %w", err)
	}
	for _, c := range conflicts {
		query := `INSERT OR REPLACE INTO conflicts (key, project, client, message) VALUES (?, ?, ?, ?)`
		if _, err := r.db.ExecContext(ctx, query, c.Key, c.Project, c.Client, c.Message); err != nil {
			return fmt.Errorf("storing conflict: %w", err)
		}
	}

	// Dismissals for conflicts that no longer exist are stale; drop them so
	// a conflict that reappears later surfaces again.
	query := `DELETE FROM dismissed_conflicts WHERE key NOT IN (SELECT key FROM conflicts)`
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("pruning dismissals: %w", err)
	}
	return nil
}

func (r *SQLiteConflictRepo) List(ctx context.Context) ([]domain.Conflict, error) {
	query := `SELECT key, project, client, message FROM conflicts ORDER BY project, message`
	return r.query(ctx, query)
}

func (r *SQLiteConflictRepo) ListActive(ctx context.Context) ([]domain.Conflict, error) {
	query := `SELECT c.key, c.project, c.client, c.message FROM conflicts c
		LEFT JOIN dismissed_conflicts d ON d.key = c.key
		WHERE d.key IS NULL ORDER BY c.project, c.message`
	return r.query(ctx, query)
}

func (r *SQLiteConflictRepo) query(ctx context.Context, query string) ([]domain.Conflict, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing conflicts: %w", err)
	}
	defer rows.Close()

	var conflicts []domain.Conflict
	for rows.Next() {
		var c domain.Conflict
		if err := rows.Scan(&c.Key, &c.Project, &c.Client, &c.Message); err != nil {
			return nil, fmt.Errorf("scanning conflict: %w", err)
		}
		conflicts = append(conflicts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating conflicts: %w", err)
	}
	return conflicts, nil
}

func (r *SQLiteConflictRepo) Dismiss(ctx context.Context, key string) error {
	query := `INSERT OR IGNORE INTO dismissed_conflicts (key) VALUES (?)`
	if _, err := r.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("dismissing conflict: %w", err)
	}
	return nil
}
