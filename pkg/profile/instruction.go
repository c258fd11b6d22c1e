package profile

import "github.com/medsig/engine/pkg/fhirtype"

// SignatureInstruction is the FHIR R4 Dosage-shaped output. The
// shape is exactly fhirtype.Dosage; this alias exists so builder/strategy
// code reads in domain terms without duplicating the type.
type SignatureInstruction = fhirtype.Dosage

// TitrationPhase is one element of a parsed titration schedule,
// combining pkg/timing's parsed timing/bounds with the dose amount for
// that phase, which only the caller (not the temporal parser) knows.
type TitrationPhase struct {
	Timing             fhirtype.Timing
	DoseAmount         float64
	DoseUnit           string
	Duration           fhirtype.Duration
	IsMaintenancePhase bool
	Description        string
	SequenceIndex      int
}

// PositiveInfinity models an unbounded maintenance-phase duration: a
// maintenance phase has duration.value = +∞.
const PositiveInfinity = float64(1e18)

// IsUnbounded reports whether d represents an unbounded (maintenance
// phase) duration.
func IsUnbounded(d fhirtype.Duration) bool {
	return d.Value >= PositiveInfinity
}
