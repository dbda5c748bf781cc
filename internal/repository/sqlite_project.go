package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/imirazoki/lantegi/internal/db"
	"github.com/imirazoki/lantegi/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo using a SQLite database. Nested
// project shapes (phases, assignments, frozen tasks, pinned starts) are
// stored as JSON text columns and decoded back into domain form on load.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

const projectColumns = `id, name, client, planned, start_date, due_date, due_confirmed,
	phases, assigned, segment_workers, frozen_tasks, segment_starts, segment_start_hours,
	blocked, color, auto_hours, kanban_fields, end_date`

type encodedShapes struct {
	phases, assigned, segmentWorkers, frozenTasks string
	segmentStarts, segmentStartHours              string
	autoHours, kanbanFields                       string
}

func encodeShapes(p *domain.Project) (encodedShapes, error) {
	var e encodedShapes
	var err error
	if e.phases, err = encodeJSON(p.Phases, "phases"); err != nil {
		return e, err
	}
	if e.assigned, err = encodeJSON(p.Assigned, "assigned"); err != nil {
		return e, err
	}
	if e.segmentWorkers, err = encodeJSON(p.SegmentWorkers, "segment_workers"); err != nil {
		return e, err
	}
	if e.frozenTasks, err = encodeJSON(p.FrozenTasks, "frozen_tasks"); err != nil {
		return e, err
	}
	if e.segmentStarts, err = encodeJSON(p.SegmentStarts, "segment_starts"); err != nil {
		return e, err
	}
	if e.segmentStartHours, err = encodeJSON(p.SegmentStartHours, "segment_start_hours"); err != nil {
		return e, err
	}
	if e.autoHours, err = encodeJSON(p.AutoHours, "auto_hours"); err != nil {
		return e, err
	}
	if e.kanbanFields, err = encodeJSON(p.KanbanFields, "kanban_fields"); err != nil {
		return e, err
	}
	return e, nil
}

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	e, err := encodeShapes(p)
	if err != nil {
		return err
	}
	now := nowUTC()
	query := `INSERT INTO projects (` + projectColumns + `, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		p.ID, p.Name, p.Client, boolToInt(p.Planned),
		p.StartDate, p.DueDate, boolToInt(p.DueConfirmed),
		e.phases, e.assigned, e.segmentWorkers, e.frozenTasks,
		e.segmentStarts, e.segmentStartHours,
		boolToInt(p.Blocked), p.Color, e.autoHours, e.kanbanFields, p.EndDate,
		now, now,
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`
	return scanProject(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteProjectRepo) GetByName(ctx context.Context, name string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE name = ?`
	return scanProject(r.db.QueryRowContext(ctx, query, name))
}

func (r *SQLiteProjectRepo) List(ctx context.Context) ([]*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	e, err := encodeShapes(p)
	if err != nil {
		return err
	}
	query := `UPDATE projects SET name = ?, client = ?, planned = ?, start_date = ?,
		due_date = ?, due_confirmed = ?, phases = ?, assigned = ?, segment_workers = ?,
		frozen_tasks = ?, segment_starts = ?, segment_start_hours = ?, blocked = ?,
		color = ?, auto_hours = ?, kanban_fields = ?, end_date = ?, updated_at = ?
		WHERE id = ?`
	_, err = r.db.ExecContext(ctx, query,
		p.Name, p.Client, boolToInt(p.Planned), p.StartDate,
		p.DueDate, boolToInt(p.DueConfirmed),
		e.phases, e.assigned, e.segmentWorkers, e.frozenTasks,
		e.segmentStarts, e.segmentStartHours, boolToInt(p.Blocked),
		p.Color, e.autoHours, e.kanbanFields, p.EndDate, nowUTC(),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) SaveScheduleState(ctx context.Context, p *domain.Project) error {
	starts, err := encodeJSON(p.SegmentStarts, "segment_starts")
	if err != nil {
		return err
	}
	hours, err := encodeJSON(p.SegmentStartHours, "segment_start_hours")
	if err != nil {
		return err
	}
	frozen, err := encodeJSON(p.FrozenTasks, "frozen_tasks")
	if err != nil {
		return err
	}
	query := `UPDATE projects SET segment_starts = ?, segment_start_hours = ?,
		frozen_tasks = ?, end_date = ?, updated_at = ? WHERE id = ?`
	_, err = r.db.ExecContext(ctx, query, starts, hours, frozen, p.EndDate, nowUTC(), p.ID)
	if err != nil {
		return fmt.Errorf("saving schedule state: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scan logic.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var p domain.Project
	var planned, dueConfirmed, blocked int
	var phases, assigned, segmentWorkers, frozenTasks string
	var segmentStarts, segmentStartHours, autoHours, kanbanFields string

	err := row.Scan(
		&p.ID, &p.Name, &p.Client, &planned,
		&p.StartDate, &p.DueDate, &dueConfirmed,
		&phases, &assigned, &segmentWorkers, &frozenTasks,
		&segmentStarts, &segmentStartHours,
		&blocked, &p.Color, &autoHours, &kanbanFields, &p.EndDate,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("project not found")
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}

	p.Planned = intToBool(planned)
	p.DueConfirmed = intToBool(dueConfirmed)
	p.Blocked = intToBool(blocked)

	if err := decodeJSON(phases, &p.Phases, "phases"); err != nil {
		return nil, err
	}
	if err := decodeJSON(assigned, &p.Assigned, "assigned"); err != nil {
		return nil, err
	}
	if err := decodeJSON(segmentWorkers, &p.SegmentWorkers, "segment_workers"); err != nil {
		return nil, err
	}
	if err := decodeJSON(frozenTasks, &p.FrozenTasks, "frozen_tasks"); err != nil {
		return nil, err
	}
	if err := decodeJSON(segmentStarts, &p.SegmentStarts, "segment_starts"); err != nil {
		return nil, err
	}
	if err := decodeJSON(segmentStartHours, &p.SegmentStartHours, "segment_start_hours"); err != nil {
		return nil, err
	}
	if err := decodeJSON(autoHours, &p.AutoHours, "auto_hours"); err != nil {
		return nil, err
	}
	if err := decodeJSON(kanbanFields, &p.KanbanFields, "kanban_fields"); err != nil {
		return nil, err
	}
	return &p, nil
}
