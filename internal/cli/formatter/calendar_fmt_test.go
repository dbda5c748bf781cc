package formatter

import (
	"testing"

	"github.com/imirazoki/lantegi/internal/contract"
	"github.com/imirazoki/lantegi/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeeks_GroupsByISOWeek(t *testing.T) {
	days := []string{
		"2026-01-05", "2026-01-06", "2026-01-09", // week 2
		"2026-01-12", "2026-01-13", // week 3
		"2026-01-19", // week 4
	}

	weeks := Weeks(days)

	require.Len(t, weeks, 3)
	assert.Equal(t, []string{"2026-01-05", "2026-01-06", "2026-01-09"}, weeks[0])
	assert.Equal(t, []string{"2026-01-12", "2026-01-13"}, weeks[1])
	assert.Equal(t, []string{"2026-01-19"}, weeks[2])
}

func TestWeeks_SkipsMalformedDays(t *testing.T) {
	weeks := Weeks([]string{"2026-01-05", "garbage", "2026-01-06"})

	require.Len(t, weeks, 1)
	assert.Equal(t, []string{"2026-01-05", "2026-01-06"}, weeks[0])
}

func TestFormatWeek_SkipsWorkersWithoutWork(t *testing.T) {
	view := contract.CalendarView{
		Days:    []string{"2026-01-05"},
		Workers: []string{"Mikel", "Fabio"},
		Cells: map[string]map[string][]contract.TaskView{
			"Mikel": {
				"2026-01-05": {{Project: "Silo", Phase: "montar", Hours: 8}},
			},
		},
	}

	out := FormatWeek(view, []string{"2026-01-05"})

	assert.Contains(t, out, "Mikel")
	assert.Contains(t, out, "Silo montar 8h")
	assert.NotContains(t, out, "Fabio")
	assert.Contains(t, out, "lun 05/01")
}

func TestFormatWeek_EmptyWhenNothingPlaced(t *testing.T) {
	view := contract.CalendarView{
		Days:    []string{"2026-01-05"},
		Workers: []string{"Mikel"},
		Cells:   map[string]map[string][]contract.TaskView{},
	}

	assert.Empty(t, FormatWeek(view, []string{"2026-01-05"}))
}

func TestFormatCalendar_RendersOneTablePerWeek(t *testing.T) {
	view := contract.CalendarView{
		Days:    []string{"2026-01-05", "2026-01-12"},
		Workers: []string{"Mikel"},
		Cells: map[string]map[string][]contract.TaskView{
			"Mikel": {
				"2026-01-05": {{Project: "Silo", Phase: "montar", Hours: 8}},
				"2026-01-12": {{Project: "Silo", Phase: "soldar", Hours: 4}},
			},
		},
	}

	out := FormatCalendar(view)

	assert.Contains(t, out, "SEMANA DE 2026-01-05")
	assert.Contains(t, out, "SEMANA DE 2026-01-12")
}

func TestTaskLabel_VacationAndSegments(t *testing.T) {
	part := 1
	segment := taskLabel(contract.TaskView{Project: "Silo", Phase: "soldar", Part: &part, Hours: 4})
	assert.Contains(t, segment, "Silo soldar#2 4h")

	vacation := taskLabel(contract.TaskView{Phase: domain.VacationPhase})
	assert.Contains(t, vacation, "vacaciones")
}

func TestTaskLabel_FrozenMarker(t *testing.T) {
	out := taskLabel(contract.TaskView{Project: "Silo", Phase: "montar", Hours: 8, Frozen: true})
	assert.Contains(t, out, "❄")
}
