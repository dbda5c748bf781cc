package domain

import "sort"

// FrozenTask is a manually locked placement that scheduling must
// reproduce exactly rather than recompute.
type FrozenTask struct {
	Worker string  `json:"worker"`
	Day    string  `json:"day"`
	Start  float64 `json:"start"`
	Hours  float64 `json:"hours"`
	Phase  string  `json:"phase"`
	Part   *int    `json:"part,omitempty"`
}

// Project is a manufacturing work order. Date fields are kept as raw
// strings because external records may carry malformed values; the
// scheduler parses them leniently at placement time.
type Project struct {
	ID           string
	Name         string
	Client       string
	Planned      bool
	StartDate    string
	DueDate      string
	DueConfirmed bool

	Phases         map[string]Requirement
	Assigned       map[string]string
	SegmentWorkers map[string][]string
	FrozenTasks    []FrozenTask

	// SegmentStarts / SegmentStartHours pin the start of each phase
	// segment, either set by the user or recorded after auto-placement so
	// replays reproduce the same calendar.
	SegmentStarts     map[string][]string
	SegmentStartHours map[string][]float64

	Blocked      bool
	Color        string
	AutoHours    map[string]bool
	KanbanFields map[string]string

	// EndDate is derived on every scheduling pass.
	EndDate string
}

// OrderedPhaseKeys returns the project's phase keys in canonical base
// order, then by numeric suffix.
func (p *Project) OrderedPhaseKeys() []string {
	keys := make([]string, 0, len(p.Phases))
	for k := range p.Phases {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return PhaseLess(keys[i], keys[j]) })
	return keys
}

// WorkerFor resolves the assigned worker for a phase segment: explicit
// per-segment assignment first, then the per-phase assignment. Empty means
// unassigned.
func (p *Project) WorkerFor(phase string, part int) string {
	if ws, ok := p.SegmentWorkers[phase]; ok && part < len(ws) && ws[part] != "" {
		return ws[part]
	}
	return p.Assigned[phase]
}

// FrozenForPhase returns the frozen placements locked for the given phase.
func (p *Project) FrozenForPhase(phase string) []FrozenTask {
	var out []FrozenTask
	for _, ft := range p.FrozenTasks {
		if ft.Phase == phase {
			out = append(out, ft)
		}
	}
	return out
}

// ManualStart returns the pinned start day and hour for a phase segment,
// if one exists.
func (p *Project) ManualStart(phase string, part int) (string, float64, bool) {
	starts, ok := p.SegmentStarts[phase]
	if !ok || part >= len(starts) || starts[part] == "" {
		return "", 0, false
	}
	hour := 0.0
	if hours, ok := p.SegmentStartHours[phase]; ok && part < len(hours) {
		hour = hours[part]
	}
	return starts[part], hour, true
}

// RecordSegmentStart stores the first day and hour actually used for a
// phase segment. Recording is idempotent: an already-pinned segment is
// never overwritten, which keeps replays stable.
func (p *Project) RecordSegmentStart(phase string, part int, day string, hour float64) {
	if p.SegmentStarts == nil {
		p.SegmentStarts = make(map[string][]string)
	}
	if p.SegmentStartHours == nil {
		p.SegmentStartHours = make(map[string][]float64)
	}
	starts := p.SegmentStarts[phase]
	hours := p.SegmentStartHours[phase]
	for len(starts) <= part {
		starts = append(starts, "")
	}
	for len(hours) <= part {
		hours = append(hours, 0)
	}
	if starts[part] == "" {
		starts[part] = day
		hours[part] = hour
	}
	p.SegmentStarts[phase] = starts
	p.SegmentStartHours[phase] = hours
}

// ClearSegmentStarts drops the pinned starts for a phase so the next pass
// re-places it from scratch (used when unfreezing).
func (p *Project) ClearSegmentStarts(phase string) {
	delete(p.SegmentStarts, phase)
	delete(p.SegmentStartHours, phase)
}

// deadlineFields maps each base phase to the kanban custom field that
// carries its phase-specific deadline, when the board provides one.
var deadlineFields = map[string]string{
	PhaseDibujo:      "Fecha Dibujo",
	PhaseRecepcionar: "Fecha Material",
	PhaseMontar:      "Fecha Montaje",
	PhaseSoldar:      "Fecha Soldadura",
	PhasePintar:      "Fecha Pintura",
	PhaseMecanizar:   "Fecha Mecanizado",
	PhaseTratamiento: "Fecha Tratamiento",
}

// PhaseDeadline returns the raw phase-specific deadline derived from the
// project's kanban display fields, or "" when the board set none.
func (p *Project) PhaseDeadline(phase string) string {
	field, ok := deadlineFields[BasePhase(phase)]
	if !ok {
		return ""
	}
	return p.KanbanFields[field]
}

// Clone returns a deep copy of the project. Query utilities schedule
// against clones so read-only passes never mutate persisted records.
func (p *Project) Clone() *Project {
	c := *p
	c.Phases = make(map[string]Requirement, len(p.Phases))
	for k, v := range p.Phases {
		if v.Kind == ReqSegments {
			v.Segments = append([]float64(nil), v.Segments...)
		}
		c.Phases[k] = v
	}
	c.Assigned = cloneStrMap(p.Assigned)
	c.KanbanFields = cloneStrMap(p.KanbanFields)
	c.SegmentWorkers = make(map[string][]string, len(p.SegmentWorkers))
	for k, v := range p.SegmentWorkers {
		c.SegmentWorkers[k] = append([]string(nil), v...)
	}
	c.SegmentStarts = make(map[string][]string, len(p.SegmentStarts))
	for k, v := range p.SegmentStarts {
		c.SegmentStarts[k] = append([]string(nil), v...)
	}
	c.SegmentStartHours = make(map[string][]float64, len(p.SegmentStartHours))
	for k, v := range p.SegmentStartHours {
		c.SegmentStartHours[k] = append([]float64(nil), v...)
	}
	c.AutoHours = make(map[string]bool, len(p.AutoHours))
	for k, v := range p.AutoHours {
		c.AutoHours[k] = v
	}
	c.FrozenTasks = append([]FrozenTask(nil), p.FrozenTasks...)
	return &c
}

func cloneStrMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
