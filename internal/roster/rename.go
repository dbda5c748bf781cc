package roster

import "github.com/imirazoki/lantegi/internal/domain"

// RenameInProject rewrites every reference to oldName inside a project:
// the per-phase assignment map, per-segment worker lists, and frozen
// tasks. It reports whether anything changed so callers only persist
// touched projects.
func RenameInProject(p *domain.Project, oldName, newName string) bool {
	changed := false
	for phase, w := range p.Assigned {
		if w == oldName {
			p.Assigned[phase] = newName
			changed = true
		}
	}
	for _, ws := range p.SegmentWorkers {
		for i, w := range ws {
			if w == oldName {
				ws[i] = newName
				changed = true
			}
		}
	}
	for i := range p.FrozenTasks {
		if p.FrozenTasks[i].Worker == oldName {
			p.FrozenTasks[i].Worker = newName
			changed = true
		}
	}
	return changed
}
