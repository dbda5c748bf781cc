package formatter

import (
	"strings"

	"github.com/imirazoki/lantegi/internal/domain"
)

// FormatConflicts renders the due-date conflict list.
func FormatConflicts(conflicts []domain.Conflict) string {
	if len(conflicts) == 0 {
		return StyleGreen.Render("Sin conflictos de entrega.")
	}

	var b strings.Builder
	b.WriteString(Header("Conflictos"))
	b.WriteString("\n")

	rows := make([][]string, 0, len(conflicts))
	for _, c := range conflicts {
		rows = append(rows, []string{
			StyleRed.Render(c.Project),
			c.Client,
			c.Message,
			Dim(c.Key),
		})
	}
	b.WriteString(RenderTable([]string{"Proyecto", "Cliente", "Motivo", "Clave"}, rows))
	return b.String()
}
