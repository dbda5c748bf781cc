package formatter

import (
	"fmt"
	"strings"

	"github.com/imirazoki/lantegi/internal/contract"
	"github.com/imirazoki/lantegi/internal/domain"
)

// FormatProjectList renders the project overview table.
func FormatProjectList(summaries []contract.ProjectSummary) string {
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		state := StyleGreen.Render("activo")
		if s.Blocked {
			state = StyleDim.Render("bloqueado")
		} else if !s.Planned {
			state = StyleYellow.Render("sin planificar")
		}
		rows = append(rows, []string{
			Bold(s.Name),
			s.Client,
			s.StartDate,
			s.DueDate,
			s.EndDate,
			fmt.Sprintf("%d", s.Phases),
			state,
		})
	}
	return RenderTable(
		[]string{"Proyecto", "Cliente", "Inicio", "Entrega", "Fin", "Fases", "Estado"},
		rows,
	)
}

// FormatProjectInspect renders the detail view of one project, including
// the computed start day of each phase when available.
func FormatProjectInspect(p *domain.Project, phaseStarts map[string]string) string {
	var b strings.Builder
	b.WriteString(Header(p.Name))
	b.WriteString("\n")

	field := func(label, value string) {
		if value == "" {
			value = Dim("—")
		}
		b.WriteString(fmt.Sprintf("%s %s\n", StyleHeader.Render(label+":"), value))
	}
	field("Cliente", p.Client)
	field("Inicio", p.StartDate)
	due := p.DueDate
	if due != "" && !p.DueConfirmed {
		due += Dim(" (sin confirmar)")
	}
	field("Entrega", due)
	field("Fin previsto", p.EndDate)
	if p.Blocked {
		b.WriteString(StyleDim.Render("Proyecto bloqueado") + "\n")
	}

	if len(p.Phases) == 0 {
		return b.String()
	}

	b.WriteString("\n")
	rows := make([][]string, 0, len(p.Phases))
	for _, phase := range p.OrderedPhaseKeys() {
		req := p.Phases[phase]
		frozen := ""
		if len(p.FrozenForPhase(phase)) > 0 {
			frozen = StylePurple.Render("❄")
		}
		rows = append(rows, []string{
			phase,
			DescribeRequirement(req),
			p.Assigned[phase],
			phaseStarts[phase],
			frozen,
		})
	}
	b.WriteString(RenderTable([]string{"Fase", "Carga", "Asignado", "Empieza", ""}, rows))
	return b.String()
}

// DescribeRequirement renders a phase requirement in short form.
func DescribeRequirement(req domain.Requirement) string {
	switch req.Kind {
	case domain.ReqHours:
		return fmt.Sprintf("%gh", req.Hours)
	case domain.ReqSegments:
		parts := make([]string, len(req.Segments))
		for i, h := range req.Segments {
			parts[i] = fmt.Sprintf("%gh", h)
		}
		return strings.Join(parts, " + ")
	case domain.ReqDateRange:
		return "hasta " + req.TargetDay
	default:
		return Dim("—")
	}
}
