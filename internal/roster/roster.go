// Package roster builds the effective worker roster for a scheduling pass
// and resolves per-worker daily hour limits. A Roster is an immutable
// snapshot constructed from persisted inputs at the start of each pass;
// roster-affecting operations rebuild it rather than mutating shared
// state.
package roster

import (
	"fmt"

	"github.com/imirazoki/lantegi/internal/domain"
)

// Inputs are the persisted records a roster is built from.
type Inputs struct {
	// Added lists user-created workers in creation order; they inherit the
	// default capability set.
	Added []string
	// Renames maps old worker names to their current names.
	Renames map[string]string
	// Order is the persisted display order; workers missing from it are
	// appended in capability-table order.
	Order []string
	// Inactive workers keep their historical data but receive no new
	// placements.
	Inactive map[string]bool
}

// Roster is the effective worker set for one scheduling pass.
type Roster struct {
	workers []*domain.Worker
	byName  map[string]*domain.Worker
}

// Build merges the static capability table with the persisted inputs into
// an ordered roster snapshot.
func Build(in Inputs) *Roster {
	byName := make(map[string]*domain.Worker)
	tableOrder := make([]string, 0, len(domain.BaseOrder)+len(in.Added))

	for _, name := range domain.BaseOrder {
		caps := append([]string(nil), domain.BaseCapabilities[name]...)
		effective := effectiveName(name, in.Renames)
		byName[effective] = &domain.Worker{
			Name:         effective,
			Capabilities: caps,
			Active:       !in.Inactive[effective],
		}
		tableOrder = append(tableOrder, effective)
	}

	for _, name := range in.Added {
		effective := effectiveName(name, in.Renames)
		if _, exists := byName[effective]; exists {
			continue
		}
		byName[effective] = &domain.Worker{
			Name:         effective,
			Capabilities: append([]string(nil), domain.DefaultCapabilities...),
			Active:       !in.Inactive[effective],
		}
		tableOrder = append(tableOrder, effective)
	}

	ordered := make([]*domain.Worker, 0, len(byName))
	seen := make(map[string]bool, len(byName))
	for _, name := range in.Order {
		if w, ok := byName[name]; ok && !seen[name] {
			ordered = append(ordered, w)
			seen[name] = true
		}
	}
	for _, name := range tableOrder {
		if !seen[name] {
			ordered = append(ordered, byName[name])
			seen[name] = true
		}
	}

	return &Roster{workers: ordered, byName: byName}
}

func effectiveName(name string, renames map[string]string) string {
	if renamed, ok := renames[name]; ok && renamed != "" {
		return renamed
	}
	return name
}

// Get returns the roster entry for name.
func (r *Roster) Get(name string) (*domain.Worker, bool) {
	w, ok := r.byName[name]
	return w, ok
}

// IsActive reports whether name is a known, active worker.
func (r *Roster) IsActive(name string) bool {
	w, ok := r.byName[name]
	return ok && w.Active
}

// Workers returns the roster in display order.
func (r *Roster) Workers() []*domain.Worker {
	return r.workers
}

// Names returns the worker names in display order.
func (r *Roster) Names() []string {
	names := make([]string, len(r.workers))
	for i, w := range r.workers {
		names[i] = w.Name
	}
	return names
}

// ValidateRename checks that a rename target does not collide with an
// existing worker or the unplanned sentinel.
func (r *Roster) ValidateRename(oldName, newName string) error {
	if newName == "" {
		return fmt.Errorf("new worker name is required")
	}
	if domain.IsVirtualWorker(newName) {
		return fmt.Errorf("%q is a reserved resource name", newName)
	}
	if _, ok := r.byName[oldName]; !ok {
		return fmt.Errorf("worker not found: %q", oldName)
	}
	if _, ok := r.byName[newName]; ok {
		return fmt.Errorf("worker %q already exists", newName)
	}
	return nil
}
