package repository

import (
	"context"
	"fmt"

	"github.com/imirazoki/lantegi/internal/db"
	"github.com/imirazoki/lantegi/internal/roster"
)

// SQLiteOverrideRepo implements OverrideRepo using a SQLite database.
type SQLiteOverrideRepo struct {
	db db.DBTX
}

// NewSQLiteOverrideRepo creates a new SQLiteOverrideRepo.
func NewSQLiteOverrideRepo(conn db.DBTX) *SQLiteOverrideRepo {
	return &SQLiteOverrideRepo{db: conn}
}

func (r *SQLiteOverrideRepo) Limits(ctx context.Context) (roster.Limits, error) {
	l := roster.Limits{
		Flat:        make(map[string]float64),
		PerDay:      make(map[string]map[string]float64),
		GlobalDaily: make(map[string]float64),
	}

	rows, err := r.db.QueryContext(ctx, `SELECT worker, hours FROM hour_overrides`)
	if err != nil {
		return l, fmt.Errorf("listing hour overrides: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var worker string
		var hours float64
		if err := rows.Scan(&worker, &hours); err != nil {
			return l, fmt.Errorf("scanning hour override: %w", err)
		}
		l.Flat[worker] = hours
	}
	if err := rows.Err(); err != nil {
		return l, fmt.Errorf("iterating hour overrides: %w", err)
	}

	dayRows, err := r.db.QueryContext(ctx, `SELECT worker, day, hours FROM day_overrides`)
	if err != nil {
		return l, fmt.Errorf("listing day overrides: %w", err)
	}
	defer dayRows.Close()
	for dayRows.Next() {
		var worker, day string
		var hours float64
		if err := dayRows.Scan(&worker, &day, &hours); err != nil {
			return l, fmt.Errorf("scanning day override: %w", err)
		}
		if l.PerDay[worker] == nil {
			l.PerDay[worker] = make(map[string]float64)
		}
		l.PerDay[worker][day] = hours
	}
	if err := dayRows.Err(); err != nil {
		return l, fmt.Errorf("iterating day overrides: %w", err)
	}

	capRows, err := r.db.QueryContext(ctx, `SELECT day, hours FROM global_caps`)
	if err != nil {
		return l, fmt.Errorf("listing global caps: %w", err)
	}
	defer capRows.Close()
	for capRows.Next() {
		var day string
		var hours float64
		if err := capRows.Scan(&day, &hours); err != nil {
			return l, fmt.Errorf("scanning global cap: %w", err)
		}
		l.GlobalDaily[day] = hours
	}
	if err := capRows.Err(); err != nil {
		return l, fmt.Errorf("iterating global caps: %w", err)
	}

	return l, nil
}

func (r *SQLiteOverrideRepo) SetFlat(ctx context.Context, worker string, hours float64) error {
	query := `INSERT INTO hour_overrides (worker, hours) VALUES (?, ?)
		ON CONFLICT(worker) DO UPDATE SET hours = excluded.hours`
	if _, err := r.db.ExecContext(ctx, query, worker, hours); err != nil {
		return fmt.Errorf("storing hour override: %w", err)
	}
	return nil
}

func (r *SQLiteOverrideRepo) ClearFlat(ctx context.Context, worker string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM hour_overrides WHERE worker = ?`, worker); err != nil {
		return fmt.Errorf("clearing hour override: %w", err)
	}
	return nil
}

func (r *SQLiteOverrideRepo) SetDay(ctx context.Context, worker, day string, hours float64) error {
	query := `INSERT INTO day_overrides (worker, day, hours) VALUES (?, ?, ?)
		ON CONFLICT(worker, day) DO UPDATE SET hours = excluded.hours`
	if _, err := r.db.ExecContext(ctx, query, worker, day, hours); err != nil {
		return fmt.Errorf("storing day override: %w", err)
	}
	return nil
}

func (r *SQLiteOverrideRepo) ClearDay(ctx context.Context, worker, day string) error {
	query := `DELETE FROM day_overrides WHERE worker = ? AND day = ?`
	if _, err := r.db.ExecContext(ctx, query, worker, day); err != nil {
		return fmt.Errorf("clearing day override: %w", err)
	}
	return nil
}

func (r *SQLiteOverrideRepo) SetGlobalCap(ctx context.Context, day string, hours float64) error {
	query := `INSERT INTO global_caps (day, hours) VALUES (?, ?)
		ON CONFLICT(day) DO UPDATE SET hours = excluded.hours`
	if _, err := r.db.ExecContext(ctx, query, day, hours); err != nil {
		return fmt.Errorf("storing global cap: %w", err)
	}
	return nil
}

func (r *SQLiteOverrideRepo) ClearGlobalCap(ctx context.Context, day string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM global_caps WHERE day = ?`, day); err != nil {
		return fmt.Errorf("clearing global cap: %w", err)
	}
	return nil
}

func (r *SQLiteOverrideRepo) RenameWorker(ctx context.Context, oldName, newName string) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE hour_overrides SET worker = ? WHERE worker = ?`, newName, oldName); err != nil {
		return fmt.Errorf("renaming hour overrides: %w", err)
	}
	if _, err := r.db.ExecContext(ctx,
		`UPDATE day_overrides SET worker = ? WHERE worker = ?`, newName, oldName); err != nil {
		return fmt.Errorf("renaming day overrides: %w", err)
	}
	return nil
}
