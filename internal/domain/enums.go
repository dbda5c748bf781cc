package domain

// DueStatus classifies a scheduled task against its project's due date.
type DueStatus string

const (
	DueNone   DueStatus = ""
	DueMet    DueStatus = "met"
	DueBefore DueStatus = "before"
	DueAfter  DueStatus = "after"
)

// PhaseDeadlineStatus classifies a task against its phase-specific
// deadline, which is independent of the project due date.
type PhaseDeadlineStatus string

const (
	PhaseDeadlineNone PhaseDeadlineStatus = ""
	PhaseDeadlineMet  PhaseDeadlineStatus = "met"
	PhaseDeadlineLate PhaseDeadlineStatus = "late"
)

// VacationPhase is the synthetic phase kind used for full-day vacation
// placeholder tasks, so that schedule scans treat vacations uniformly.
const VacationPhase = "vacaciones"

// ManualPhase marks hand-placed blocks overlaid on the calendar view.
// Manual entries never participate in placement.
const ManualPhase = "manual"
