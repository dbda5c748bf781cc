package domain

import (
	"strconv"
	"strings"
)

// Manufacturing phases in canonical shop-floor order.
const (
	PhaseDibujo      = "dibujo"
	PhaseRecepcionar = "recepcionar material"
	PhaseMontar      = "montar"
	PhaseSoldar      = "soldar"
	PhasePintar      = "pintar"
	PhaseMecanizar   = "mecanizar"
	PhaseTratamiento = "tratamiento"
)

// PhaseOrder is the canonical ordering of base phases within a project.
var PhaseOrder = []string{
	PhaseDibujo,
	PhaseRecepcionar,
	PhaseMontar,
	PhaseSoldar,
	PhasePintar,
	PhaseMecanizar,
	PhaseTratamiento,
}

var phaseIndex = buildPhaseIndex()

func buildPhaseIndex() map[string]int {
	m := make(map[string]int, len(PhaseOrder))
	for i, p := range PhaseOrder {
		m[p] = i
	}
	return m
}

// SplitPhaseKey splits a phase key into its base phase and numeric suffix.
// A key like "montar#2" denotes a second, independently ordered occurrence
// of the montar phase; a bare key has suffix 0.
func SplitPhaseKey(key string) (string, int) {
	base, suffix, found := strings.Cut(key, "#")
	if !found {
		return key, 0
	}
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return base, 0
	}
	return base, n
}

// BasePhase returns the canonical phase name for a (possibly suffixed) key.
func BasePhase(key string) string {
	base, _ := SplitPhaseKey(key)
	return base
}

// PhaseRank returns the sort rank of a phase key: canonical base order
// first, then suffix. Unknown bases sort after all known phases.
func PhaseRank(key string) (int, int) {
	base, suffix := SplitPhaseKey(key)
	idx, ok := phaseIndex[base]
	if !ok {
		idx = len(PhaseOrder)
	}
	return idx, suffix
}

// PhaseLess orders two phase keys by canonical base order, then suffix.
func PhaseLess(a, b string) bool {
	ai, as := PhaseRank(a)
	bi, bs := PhaseRank(b)
	if ai != bi {
		return ai < bi
	}
	return as < bs
}

// IsMachinePhase reports whether the phase runs on a shared machine pool
// rather than a human worker.
func IsMachinePhase(key string) bool {
	base := BasePhase(key)
	return base == PhaseMecanizar || base == PhaseTratamiento
}

// IsProcurementPhase reports whether the phase is tracked as a date range
// instead of allocated hours.
func IsProcurementPhase(key string) bool {
	return BasePhase(key) == PhaseRecepcionar
}
