package scheduler

import (
	"sort"
	"strconv"

	"github.com/imirazoki/lantegi/internal/domain"
)

// SegmentRef locates one scheduled block of a project for downstream
// consumers: conflict displays, unfreeze recalculation and the calendar
// views.
type SegmentRef struct {
	Worker string
	Day    string
	Phase  string
	Hours  float64
	Part   *int
}

func partKey(part *int) string {
	if part == nil {
		return ""
	}
	return strconv.Itoa(*part)
}

// Mapping schedules a deep clone of the input's projects and returns
// project ID → ordered scheduled segments, sorted by day, then worker,
// then segment index (blank index first). The caller's projects are never
// mutated.
func Mapping(in Input) map[string][]SegmentRef {
	cloned := make([]*domain.Project, len(in.Projects))
	for i, p := range in.Projects {
		cloned[i] = p.Clone()
	}
	in.Projects = cloned

	result := Run(in)

	mapping := make(map[string][]SegmentRef)
	for _, worker := range result.Schedule.Workers() {
		for _, day := range result.Schedule.Days(worker) {
			for _, t := range result.Schedule.TasksOn(worker, day) {
				if t.ProjectID == "" {
					continue
				}
				mapping[t.ProjectID] = append(mapping[t.ProjectID], SegmentRef{
					Worker: worker,
					Day:    day,
					Phase:  t.Phase,
					Hours:  t.Hours,
					Part:   t.Part,
				})
			}
		}
	}

	for _, refs := range mapping {
		sort.SliceStable(refs, func(i, j int) bool {
			if refs[i].Day != refs[j].Day {
				return refs[i].Day < refs[j].Day
			}
			if refs[i].Worker != refs[j].Worker {
				return refs[i].Worker < refs[j].Worker
			}
			return partKey(refs[i].Part) < partKey(refs[j].Part)
		})
	}
	return mapping
}

// PhaseStarts returns, for each project, the earliest scheduled day per
// phase key.
func PhaseStarts(in Input) map[string]map[string]string {
	starts := make(map[string]map[string]string)
	for projectID, refs := range Mapping(in) {
		byPhase := make(map[string]string)
		for _, ref := range refs {
			if cur, ok := byPhase[ref.Phase]; !ok || ref.Day < cur {
				byPhase[ref.Phase] = ref.Day
			}
		}
		starts[projectID] = byPhase
	}
	return starts
}
