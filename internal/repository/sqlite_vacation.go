package repository

import (
	"context"
	"fmt"

	"github.com/imirazoki/lantegi/internal/db"
	"github.com/imirazoki/lantegi/internal/domain"
)

// SQLiteVacationRepo implements VacationRepo using a SQLite database.
type SQLiteVacationRepo struct {
	db db.DBTX
}

// NewSQLiteVacationRepo creates a new SQLiteVacationRepo.
func NewSQLiteVacationRepo(conn db.DBTX) *SQLiteVacationRepo {
	return &SQLiteVacationRepo{db: conn}
}

func (r *SQLiteVacationRepo) List(ctx context.Context) ([]domain.Vacation, error) {
	query := `SELECT id, worker, start_day, end_day FROM vacations ORDER BY start_day, worker, id`
	return r.query(ctx, query)
}

func (r *SQLiteVacationRepo) ListByWorker(ctx context.Context, worker string) ([]domain.Vacation, error) {
	query := `SELECT id, worker, start_day, end_day FROM vacations WHERE worker = ? ORDER BY start_day, id`
	return r.query(ctx, query, worker)
}

func (r *SQLiteVacationRepo) query(ctx context.Context, query string, args ...any) ([]domain.Vacation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing vacations: %w", err)
	}
	defer rows.Close()

	var vacations []domain.Vacation
	for rows.Next() {
		var v domain.Vacation
		if err := rows.Scan(&v.ID, &v.Worker, &v.Start, &v.End); err != nil {
			return nil, fmt.Errorf("scanning vacation: %w", err)
		}
		vacations = append(vacations, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating vacations: %w", err)
	}
	return vacations, nil
}

func (r *SQLiteVacationRepo) Add(ctx context.Context, v domain.Vacation) error {
	query := `INSERT INTO vacations (id, worker, start_day, end_day) VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, v.ID, v.Worker, v.Start, v.End); err != nil {
		return fmt.Errorf("adding vacation: %w", err)
	}
	return nil
}

func (r *SQLiteVacationRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM vacations WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting vacation: %w", err)
	}
	return nil
}

func (r *SQLiteVacationRepo) RenameWorker(ctx context.Context, oldName, newName string) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE vacations SET worker = ? WHERE worker = ?`, newName, oldName); err != nil {
		return fmt.Errorf("renaming vacations: %w", err)
	}
	return nil
}
