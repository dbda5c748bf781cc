package domain

// Virtual resources. Unplanned is the infinite-capacity bucket for work
// with no usable assignee; the machine pools host unlimited distinct
// blocks per day with each block capped at one workday unit.
const (
	WorkerUnplanned = "Sin planificar"
	PoolMecanizar   = "Mecanizar"
	PoolTratamiento = "Tratamiento"
)

// VirtualWorkers lists the resources that are not people.
var VirtualWorkers = []string{WorkerUnplanned, PoolMecanizar, PoolTratamiento}

// IsVirtualWorker reports whether name is one of the virtual resources.
func IsVirtualWorker(name string) bool {
	return name == WorkerUnplanned || name == PoolMecanizar || name == PoolTratamiento
}

// Worker is a roster entry: a person (or virtual resource) with the set of
// phases it can perform.
type Worker struct {
	Name         string
	Capabilities []string
	Active       bool
	// Infinite marks resources whose daily capacity is unbounded.
	Infinite bool
}

// CanDo reports whether the worker is capable of the given phase key.
func (w *Worker) CanDo(phase string) bool {
	base := BasePhase(phase)
	for _, c := range w.Capabilities {
		if c == base {
			return true
		}
	}
	return false
}

// BaseCapabilities is the static capability table of the workshop's
// permanent roster.
var BaseCapabilities = map[string][]string{
	"Pilar":   {PhaseDibujo},
	"Joseba":  {PhaseDibujo, PhaseMontar},
	"Irene":   {PhaseRecepcionar},
	"Mikel":   {PhaseMontar, PhaseMecanizar, PhaseTratamiento},
	"Iban":    {PhaseMontar},
	"Naparra": {PhaseMontar},
	"Unai":    {PhaseMontar, PhaseSoldar},
	"Fabio":   {PhaseSoldar},
	"Beltxa":  {PhaseSoldar},
	"Igor":    {PhaseSoldar},
	"Albi":    {PhaseRecepcionar, PhaseSoldar, PhaseMontar},
	"Eneko":   {PhasePintar, PhaseMontar, PhaseSoldar},
}

// BaseOrder is the display order of the permanent roster; user-added
// workers not present in a persisted order are appended after these.
var BaseOrder = []string{
	"Pilar", "Joseba", "Irene", "Mikel", "Iban", "Naparra",
	"Unai", "Fabio", "Beltxa", "Igor", "Albi", "Eneko",
}

// DefaultCapabilities is the capability set inherited by user-added
// workers.
var DefaultCapabilities = []string{PhaseMontar, PhaseSoldar, PhasePintar}
