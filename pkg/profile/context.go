package profile

import (
	"fmt"

	"github.com/medsig/engine/pkg/common"
)

// PatientContext is the subset of patient data the builders/strategies may
// condition on (dose adjustment by weight/renal-hepatic function, gender
// eligibility, allergy/interaction surfacing is explicitly out of scope).
type PatientContext struct {
	ID                 string
	AgeYears           float64
	WeightKg           *float64
	HeightCm           *float64
	RenalFunction      string
	HepaticFunction    string
	Allergies          []string
	Conditions         []string
	ConcurrentMedications []string
}

// Dose is the requested amount and unit, e.g. {1, "tablet"}.
type Dose struct {
	Value float64
	Unit  string
}

// MedicationRequestContext is the transient input to both the builder and
// dispatcher pipelines. It is constructed once by the caller and
// never mutated; Snapshot returns a deep-immutable copy for audit trails.
type MedicationRequestContext struct {
	RequestID string
	Timestamp string // ISO-8601

	Profile *MedicationProfile

	Patient PatientContext

	Dose Dose

	// Frequency is a free-form string, a []string (titration), or a
	// *fhirtype.Timing, matching pkg/timing.Parse's accepted input shapes.
	Frequency any

	Route string

	Duration           *string
	DispenseQuantity   *float64
	Refills            *int
	SpecialInstructions []string
	IsPRN              bool
	MaxDosePerPeriod   *DosageConstraintRatio
}

// DosageConstraintRatio is a numerator/denominator pair, e.g. "6 tablet /
// 1 d" for maxDosePerPeriod.
type DosageConstraintRatio struct {
	NumeratorValue   float64
	NumeratorUnit    string
	DenominatorValue float64
	DenominatorUnit  string
}

// Validate checks the request-level invariants: dose value
// must be positive, and a profile reference must be present.
func (c *MedicationRequestContext) Validate() error {
	if c.Profile == nil {
		return fmt.Errorf("context: profile reference is required")
	}
	if c.Dose.Value <= 0 {
		return fmt.Errorf("context: dose value must be positive, got %v", c.Dose.Value)
	}
	if c.Dose.Unit == "" {
		return fmt.Errorf("context: dose unit is required")
	}
	return nil
}

// Snapshot returns a deep-immutable copy suitable for storing in a
// builder's audit trail, a deep-immutable copy for its lifecycle
// note, using pkg/common's JSON-roundtrip Clone.
func (c *MedicationRequestContext) Snapshot() *MedicationRequestContext {
	return common.Clone(c)
}
