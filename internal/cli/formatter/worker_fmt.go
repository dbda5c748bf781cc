package formatter

import (
	"fmt"
	"strings"

	"github.com/imirazoki/lantegi/internal/contract"
	"github.com/imirazoki/lantegi/internal/domain"
)

// FormatWorkerList renders the roster table.
func FormatWorkerList(views []contract.WorkerView) string {
	rows := make([][]string, 0, len(views))
	for _, v := range views {
		state := StyleGreen.Render("activo")
		if !v.Active {
			state = StyleDim.Render("inactivo")
		}
		limit := ""
		if v.HasFlatLimit {
			limit = fmt.Sprintf("%gh/día", v.FlatLimit)
		}
		rows = append(rows, []string{
			Bold(v.Name),
			strings.Join(v.Capabilities, ", "),
			state,
			limit,
			Dim(v.Note),
		})
	}
	return RenderTable([]string{"Trabajador", "Fases", "Estado", "Límite", "Nota"}, rows)
}

// FormatManualList renders the hand-placed entry table.
func FormatManualList(entries []domain.ManualEntry) string {
	if len(entries) == 0 {
		return Dim("Sin entradas manuales.")
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		worker := e.Worker
		if worker == "" {
			worker = domain.WorkerUnplanned
		}
		rows = append(rows, []string{
			Bold(worker),
			e.Day,
			fmt.Sprintf("%gh", e.Hours),
			e.Note,
			Dim(e.ID),
		})
	}
	return RenderTable([]string{"Fila", "Día", "Horas", "Nota", "ID"}, rows)
}

// FormatVacationList renders the vacation table.
func FormatVacationList(vacations []domain.Vacation) string {
	if len(vacations) == 0 {
		return Dim("Sin vacaciones registradas.")
	}
	rows := make([][]string, 0, len(vacations))
	for _, v := range vacations {
		rows = append(rows, []string{Bold(v.Worker), v.Start, v.End, Dim(v.ID)})
	}
	return RenderTable([]string{"Trabajador", "Desde", "Hasta", "ID"}, rows)
}
