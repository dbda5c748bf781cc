package roster

import (
	"math"

	"github.com/imirazoki/lantegi/internal/calendar"
	"github.com/imirazoki/lantegi/internal/domain"
)

// Override bounds: a daily hour limit set by the user must stay within a
// plausible shift length.
const (
	minOverrideHours = 1
	maxOverrideHours = 12
)

// Limits resolves the effective daily hour limit for a worker. All maps
// key days by calendar.DayLayout.
type Limits struct {
	// Flat is the per-worker override of the default daily limit.
	Flat map[string]float64
	// PerDay overrides the limit for a single worker on a single day. It
	// replaces the computed limit outright rather than intersecting it.
	PerDay map[string]map[string]float64
	// GlobalDaily caps every non-infinite worker on the given day.
	GlobalDaily map[string]float64
}

// For resolves the limit for worker w on day d performing phase.
// Infinite-capacity resources ignore every limit source.
func (l *Limits) For(w, day, phase string) float64 {
	if domain.IsVirtualWorker(w) {
		return math.Inf(1)
	}

	limit := calendar.HoursPerDay
	if flat, ok := l.Flat[w]; ok {
		limit = flat
	}

	if !domain.IsMachinePhase(phase) {
		if dayCap, ok := l.GlobalDaily[day]; ok && dayCap < limit {
			limit = dayCap
		}
	}

	if byDay, ok := l.PerDay[w]; ok {
		if override, ok := byDay[day]; ok {
			limit = override
		}
	}
	return limit
}

// ValidOverride reports whether a user-set hour limit is inside the
// accepted range.
func ValidOverride(v float64) bool {
	return v >= minOverrideHours && v <= maxOverrideHours
}

// SanitizeFlat drops flat overrides that are out of range or reference an
// unknown worker. Invalid rows are discarded silently: bad configuration
// must not halt scheduling.
func SanitizeFlat(raw map[string]float64, r *Roster) map[string]float64 {
	out := make(map[string]float64, len(raw))
	for worker, v := range raw {
		if _, ok := r.Get(worker); !ok {
			continue
		}
		if !ValidOverride(v) {
			continue
		}
		out[worker] = v
	}
	return out
}

// SanitizePerDay drops per-day overrides with unknown workers, malformed
// day keys, or out-of-range values.
func SanitizePerDay(raw map[string]map[string]float64, r *Roster) map[string]map[string]float64 {
	out := make(map[string]map[string]float64, len(raw))
	for worker, byDay := range raw {
		if _, ok := r.Get(worker); !ok {
			continue
		}
		clean := make(map[string]float64, len(byDay))
		for day, v := range byDay {
			if _, ok := calendar.ParseDay(day); !ok {
				continue
			}
			if !ValidOverride(v) {
				continue
			}
			clean[day] = v
		}
		if len(clean) > 0 {
			out[worker] = clean
		}
	}
	return out
}

// SanitizeGlobalDaily drops global daily caps with malformed day keys or
// out-of-range values.
func SanitizeGlobalDaily(raw map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(raw))
	for day, v := range raw {
		if _, ok := calendar.ParseDay(day); !ok {
			continue
		}
		if !ValidOverride(v) {
			continue
		}
		out[day] = v
	}
	return out
}
