package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/imirazoki/lantegi/internal/cli/formatter"
	"github.com/imirazoki/lantegi/internal/contract"
)

type calendarKeyMap struct {
	Prev key.Binding
	Next key.Binding
	Quit key.Binding
}

func (k calendarKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Quit}
}

func (k calendarKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var calendarKeys = calendarKeyMap{
	Prev: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "semana anterior"),
	),
	Next: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "semana siguiente"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "salir"),
	),
}

// calendarModel pages through the calendar one week at a time.
type calendarModel struct {
	view      contract.CalendarView
	weeks     [][]string
	week      int
	conflicts int
	keys      calendarKeyMap
	help      help.Model
	width     int
	quitting  bool
}

func newCalendarModel(view contract.CalendarView, conflicts int) calendarModel {
	return calendarModel{
		view:      view,
		weeks:     formatter.Weeks(view.Days),
		conflicts: conflicts,
		keys:      calendarKeys,
		help:      help.New(),
	}
}

func (m calendarModel) Init() tea.Cmd {
	return nil
}

func (m calendarModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Prev):
			if m.week > 0 {
				m.week--
			}
			return m, nil

		case key.Matches(msg, m.keys.Next):
			if m.week < len(m.weeks)-1 {
				m.week++
			}
			return m, nil

		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m calendarModel) View() string {
	if m.quitting {
		return ""
	}
	if len(m.weeks) == 0 {
		return formatter.Dim("Sin trabajo planificado.") + "\n\n" + m.help.View(m.keys)
	}

	week := m.weeks[m.week]

	var b strings.Builder
	b.WriteString(formatter.Header(fmt.Sprintf("Semana de %s (%d/%d)", week[0], m.week+1, len(m.weeks))))
	b.WriteString("\n")

	table := formatter.FormatWeek(m.view, week)
	if table == "" {
		table = formatter.Dim("Semana vacía.")
	}
	b.WriteString(table)
	b.WriteString("\n\n")

	if m.conflicts > 0 {
		b.WriteString(formatter.StyleRed.Render(fmt.Sprintf("%d conflictos de entrega", m.conflicts)))
		b.WriteString(formatter.Dim("  (lantegi conflicts list)"))
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))
	return b.String()
}
