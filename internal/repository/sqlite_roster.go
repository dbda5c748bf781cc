package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/imirazoki/lantegi/internal/db"
	"github.com/imirazoki/lantegi/internal/domain"
	"github.com/imirazoki/lantegi/internal/roster"
)

// SQLiteRosterRepo implements RosterRepo using a SQLite database.
type SQLiteRosterRepo struct {
	db db.DBTX
}

// NewSQLiteRosterRepo creates a new SQLiteRosterRepo.
func NewSQLiteRosterRepo(conn db.DBTX) *SQLiteRosterRepo {
	return &SQLiteRosterRepo{db: conn}
}

func (r *SQLiteRosterRepo) Inputs(ctx context.Context) (roster.Inputs, error) {
	in := roster.Inputs{
		Renames:  make(map[string]string),
		Inactive: make(map[string]bool),
	}

	rows, err := r.db.QueryContext(ctx, `SELECT name FROM added_workers ORDER BY created_at, name`)
	if err != nil {
		return in, fmt.Errorf("listing added workers: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return in, fmt.Errorf("scanning added worker: %w", err)
		}
		in.Added = append(in.Added, name)
	}
	if err := rows.Err(); err != nil {
		return in, fmt.Errorf("iterating added workers: %w", err)
	}

	renameRows, err := r.db.QueryContext(ctx, `SELECT old_name, new_name FROM worker_renames`)
	if err != nil {
		return in, fmt.Errorf("listing renames: %w", err)
	}
	defer renameRows.Close()
	for renameRows.Next() {
		var oldName, newName string
		if err := renameRows.Scan(&oldName, &newName); err != nil {
			return in, fmt.Errorf("scanning rename: %w", err)
		}
		in.Renames[oldName] = newName
	}
	if err := renameRows.Err(); err != nil {
		return in, fmt.Errorf("iterating renames: %w", err)
	}

	orderRows, err := r.db.QueryContext(ctx, `SELECT name FROM worker_order ORDER BY position`)
	if err != nil {
		return in, fmt.Errorf("listing worker order: %w", err)
	}
	defer orderRows.Close()
	for orderRows.Next() {
		var name string
		if err := orderRows.Scan(&name); err != nil {
			return in, fmt.Errorf("scanning worker order: %w", err)
		}
		in.Order = append(in.Order, name)
	}
	if err := orderRows.Err(); err != nil {
		return in, fmt.Errorf("iterating worker order: %w", err)
	}

	inactiveRows, err := r.db.QueryContext(ctx, `SELECT name FROM inactive_workers`)
	if err != nil {
		return in, fmt.Errorf("listing inactive workers: %w", err)
	}
	defer inactiveRows.Close()
	for inactiveRows.Next() {
		var name string
		if err := inactiveRows.Scan(&name); err != nil {
			return in, fmt.Errorf("scanning inactive worker: %w", err)
		}
		in.Inactive[name] = true
	}
	if err := inactiveRows.Err(); err != nil {
		return in, fmt.Errorf("iterating inactive workers: %w", err)
	}

	return in, nil
}

func (r *SQLiteRosterRepo) AddWorker(ctx context.Context, name string) error {
	query := `INSERT INTO added_workers (name, created_at) VALUES (?, ?)`
	if _, err := r.db.ExecContext(ctx, query, name, nowUTC()); err != nil {
		return fmt.Errorf("adding worker: %w", err)
	}
	return nil
}

// RenameWorker rewrites the roster-side tables. Rename chains are
// compacted so a worker renamed twice keeps a single mapping from its
// original name.
func (r *SQLiteRosterRepo) RenameWorker(ctx context.Context, oldName, newName string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE worker_renames SET new_name = ? WHERE new_name = ?`, newName, oldName)
	if err != nil {
		return fmt.Errorf("compacting rename chain: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("compacting rename chain: %w", err)
	}
	if affected == 0 {
		_, err = r.db.ExecContext(ctx,
			`INSERT OR REPLACE INTO worker_renames (old_name, new_name) VALUES (?, ?)`,
			oldName, newName)
		if err != nil {
			return fmt.Errorf("recording rename: %w", err)
		}
	}

	updates := []struct{ query string }{
		{`UPDATE added_workers SET name = ? WHERE name = ?`},
		{`UPDATE worker_order SET name = ? WHERE name = ?`},
		{`UPDATE inactive_workers SET name = ? WHERE name = ?`},
		{`UPDATE worker_notes SET worker = ? WHERE worker = ?`},
		{`UPDATE manual_unplanned SET worker = ? WHERE worker = ?`},
	}
	for _, u := range updates {
		if _, err := r.db.ExecContext(ctx, u.query, newName, oldName); err != nil {
			return fmt.Errorf("cascading rename: %w", err)
		}
	}
	return nil
}

func (r *SQLiteRosterRepo) SetOrder(ctx context.Context, names []string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM worker_order`); err != nil {
		return fmt.Errorf("clearing worker order: %w", err)
	}
	for i, name := range names {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO worker_order (name, position) VALUES (?, ?)`, name, i)
		if err != nil {
			return fmt.Errorf("storing worker order: %w", err)
		}
	}
	return nil
}

func (r *SQLiteRosterRepo) SetActive(ctx context.Context, name string, active bool) error {
	var err error
	if active {
		_, err = r.db.ExecContext(ctx, `DELETE FROM inactive_workers WHERE name = ?`, name)
	} else {
		_, err = r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO inactive_workers (name) VALUES (?)`, name)
	}
	if err != nil {
		return fmt.Errorf("setting worker active state: %w", err)
	}
	return nil
}

func (r *SQLiteRosterRepo) Note(ctx context.Context, worker string) (string, error) {
	var note string
	err := r.db.QueryRowContext(ctx,
		`SELECT note FROM worker_notes WHERE worker = ?`, worker).Scan(&note)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading worker note: %w", err)
	}
	return note, nil
}

func (r *SQLiteRosterRepo) SetNote(ctx context.Context, worker, note string) error {
	query := `INSERT INTO worker_notes (worker, note) VALUES (?, ?)
		ON CONFLICT(worker) DO UPDATE SET note = excluded.note`
	if _, err := r.db.ExecContext(ctx, query, worker, note); err != nil {
		return fmt.Errorf("storing worker note: %w", err)
	}
	return nil
}

func (r *SQLiteRosterRepo) ListManual(ctx context.Context) ([]domain.ManualEntry, error) {
	query := `SELECT id, worker, day, hours, note FROM manual_unplanned ORDER BY day, worker, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing manual entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.ManualEntry
	for rows.Next() {
		var e domain.ManualEntry
		if err := rows.Scan(&e.ID, &e.Worker, &e.Day, &e.Hours, &e.Note); err != nil {
			return nil, fmt.Errorf("scanning manual entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating manual entries: %w", err)
	}
	return entries, nil
}

func (r *SQLiteRosterRepo) AddManual(ctx context.Context, e domain.ManualEntry) error {
	query := `INSERT INTO manual_unplanned (id, worker, day, hours, note) VALUES (?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, e.ID, e.Worker, e.Day, e.Hours, e.Note); err != nil {
		return fmt.Errorf("adding manual entry: %w", err)
	}
	return nil
}

func (r *SQLiteRosterRepo) DeleteManual(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM manual_unplanned WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting manual entry: %w", err)
	}
	return nil
}
