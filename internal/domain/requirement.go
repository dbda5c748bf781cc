package domain

import (
	"encoding/json"
	"fmt"
)

// RequirementKind discriminates the shapes a phase requirement can take.
type RequirementKind int

const (
	// ReqHours is a single hour count placed as one run.
	ReqHours RequirementKind = iota
	// ReqSegments is a list of hour counts, each an independent run that
	// may be assigned to a different worker.
	ReqSegments
	// ReqDateRange is a procurement-style target end day; the phase is
	// tracked as a continuous date range rather than allocated hours.
	ReqDateRange
)

// Requirement is the tagged union behind a project's phase entry. The
// external records mix scalars, lists and date strings in the same field;
// the shape is resolved once at load time, never at placement time.
type Requirement struct {
	Kind      RequirementKind
	Hours     float64
	Segments  []float64
	TargetDay string
}

// HoursReq builds a scalar requirement.
func HoursReq(hours float64) Requirement {
	return Requirement{Kind: ReqHours, Hours: hours}
}

// SegmentsReq builds a multi-run requirement.
func SegmentsReq(hours ...float64) Requirement {
	return Requirement{Kind: ReqSegments, Segments: hours}
}

// DateRangeReq builds a procurement requirement targeting the given day.
func DateRangeReq(day string) Requirement {
	return Requirement{Kind: ReqDateRange, TargetDay: day}
}

// IsZero reports whether the requirement carries no work at all. Zero
// requirements are skipped entirely: no task, no cursor advance.
func (r Requirement) IsZero() bool {
	switch r.Kind {
	case ReqDateRange:
		return r.TargetDay == ""
	case ReqSegments:
		for _, h := range r.Segments {
			if h > 0 {
				return false
			}
		}
		return true
	default:
		return r.Hours <= 0
	}
}

// SegmentHours normalizes the requirement into a per-segment hour list. A
// scalar requirement is a single segment; a date range has one synthetic
// zero-hour segment.
func (r Requirement) SegmentHours() []float64 {
	switch r.Kind {
	case ReqSegments:
		return r.Segments
	case ReqDateRange:
		return []float64{0}
	default:
		return []float64{r.Hours}
	}
}

// TotalHours sums the hour content of the requirement.
func (r Requirement) TotalHours() float64 {
	total := 0.0
	for _, h := range r.SegmentHours() {
		total += h
	}
	return total
}

// UnmarshalJSON resolves the external mixed shape: a number, a list of
// numbers, or a date string.
func (r *Requirement) UnmarshalJSON(b []byte) error {
	var hours float64
	if err := json.Unmarshal(b, &hours); err == nil {
		*r = HoursReq(hours)
		return nil
	}
	var segments []float64
	if err := json.Unmarshal(b, &segments); err == nil {
		*r = SegmentsReq(segments...)
		return nil
	}
	var day string
	if err := json.Unmarshal(b, &day); err == nil {
		*r = DateRangeReq(day)
		return nil
	}
	return fmt.Errorf("phase requirement has unsupported shape: %s", b)
}

// MarshalJSON writes the requirement back in its external shape.
func (r Requirement) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case ReqSegments:
		return json.Marshal(r.Segments)
	case ReqDateRange:
		return json.Marshal(r.TargetDay)
	default:
		return json.Marshal(r.Hours)
	}
}
