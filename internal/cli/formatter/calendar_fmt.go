package formatter

import (
	"fmt"
	"strings"

	"github.com/imirazoki/lantegi/internal/calendar"
	"github.com/imirazoki/lantegi/internal/contract"
	"github.com/imirazoki/lantegi/internal/domain"
)

// Weeks splits the view's day keys into consecutive ISO weeks, preserving
// chronological order.
func Weeks(days []string) [][]string {
	var weeks [][]string
	var current []string
	lastYear, lastWeek := 0, 0

	for _, day := range days {
		d, ok := calendar.ParseDay(day)
		if !ok {
			continue
		}
		year, week := d.ISOWeek()
		if len(current) > 0 && (year != lastYear || week != lastWeek) {
			weeks = append(weeks, current)
			current = nil
		}
		current = append(current, day)
		lastYear, lastWeek = year, week
	}
	if len(current) > 0 {
		weeks = append(weeks, current)
	}
	return weeks
}

// FormatWeek renders one week of the calendar as a table with a row per
// worker and a column per day.
func FormatWeek(view contract.CalendarView, week []string) string {
	headers := make([]string, 0, len(week)+1)
	headers = append(headers, "Trabajador")
	for _, day := range week {
		headers = append(headers, dayHeader(day))
	}

	var rows [][]string
	for _, worker := range view.Workers {
		row := make([]string, 0, len(week)+1)
		row = append(row, Bold(worker))
		empty := true
		for _, day := range week {
			cell := cellText(view.Cells[worker][day])
			if cell != "" {
				empty = false
			}
			row = append(row, cell)
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		return ""
	}
	return RenderTable(headers, rows)
}

// FormatCalendar renders the full grid, one table per week.
func FormatCalendar(view contract.CalendarView) string {
	weeks := Weeks(view.Days)
	if len(weeks) == 0 {
		return Dim("Sin trabajo planificado.")
	}

	var b strings.Builder
	for i, week := range weeks {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(Header("Semana de " + week[0]))
		b.WriteString("\n")
		b.WriteString(FormatWeek(view, week))
	}
	return b.String()
}

func dayHeader(day string) string {
	d, ok := calendar.ParseDay(day)
	if !ok {
		return day
	}
	names := [...]string{"dom", "lun", "mar", "mié", "jue", "vie", "sáb"}
	return fmt.Sprintf("%s %s", names[int(d.Weekday())], d.Format("02/01"))
}

// cellText renders the blocks placed in one worker-day cell, ordered by
// start hour.
func cellText(tasks []contract.TaskView) string {
	if len(tasks) == 0 {
		return ""
	}
	parts := make([]string, 0, len(tasks))
	for _, t := range tasks {
		parts = append(parts, taskLabel(t))
	}
	return strings.Join(parts, Dim(" · "))
}

func taskLabel(t contract.TaskView) string {
	if t.Phase == domain.VacationPhase {
		return StyleBlue.Render("vacaciones")
	}
	if t.Phase == domain.ManualPhase {
		label := t.Project
		if t.Hours > 0 {
			label += fmt.Sprintf(" %gh", t.Hours)
		}
		return StyleYellow.Render(label)
	}

	label := fmt.Sprintf("%s %s", t.Project, domain.BasePhase(t.Phase))
	if t.Part != nil {
		label += fmt.Sprintf("#%d", *t.Part+1)
	}
	if t.Hours > 0 {
		label += fmt.Sprintf(" %gh", t.Hours)
	}
	if marker := DeadlineMarker(t.Deadline); marker != "" {
		label += " " + marker
	}

	style := DueStyle(t.Status)
	if t.Late {
		style = StyleRed
	}
	if t.Blocked {
		style = StyleDim
	}
	rendered := style.Render(label)
	if t.Frozen {
		rendered = StylePurple.Render("❄") + rendered
	}
	return rendered
}
