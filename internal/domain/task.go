package domain

import "time"

// Task is the atomic scheduled unit: one block of one phase of one project
// placed on one worker-day. Tasks are owned by the per-worker schedule and
// recomputed on every pass; they are never the source of truth.
type Task struct {
	ProjectID string
	Project   string
	Client    string
	Phase     string
	Part      *int
	Day       string

	Hours float64
	// Start is the offset in hours from the workday start.
	Start float64

	StartsAt time.Time
	EndsAt   time.Time

	Color        string
	DueDate      string
	DueConfirmed bool
	Late         bool
	DueStatus    DueStatus
	Deadline     PhaseDeadlineStatus

	Frozen  bool
	Blocked bool
}

// End returns the task's end offset within its day.
func (t *Task) End() float64 {
	return t.Start + t.Hours
}
