package dayssupply

import (
	"github.com/medsig/engine/pkg/profile"
	"github.com/medsig/engine/pkg/strategy"
)

// Context is a days-supply request: a dispensed package, a single dose, a
// timing, and the medication it's for.
//
// Timing accepts anything pkg/timing.Parse does (string, []string, or a
// structured *fhirtype.Timing) and is what TitrationDaysSupplyStrategy's
// Matches checks via its IsTitration flag. A titration schedule's per-phase
// dose amounts aren't recoverable from timing text alone (pkg/timing only
// ever sees timing strings, per its own Phase doc comment), so a titration
// request also supplies Phases directly — the same profile.TitrationPhase
// shape pkg/builders' TaperingDoseBuilder assembles phase-by-phase.
type Context struct {
	PackageQuantity float64
	PackageUnit     string
	DoseAmount      float64
	DoseUnit        string
	Timing          any
	Medication      *profile.MedicationProfile
	Phases          []profile.TitrationPhase
}

// PhaseBreakdown is one titration phase's contribution to a days-supply
// Result.
type PhaseBreakdown struct {
	SequenceIndex     int
	DosesInPhase      float64
	TotalConsumption  float64
	PhaseDurationDays float64
}

// Result is a days-supply calculation's output.
type Result struct {
	DaysSupply        int
	CalculationMethod string
	Breakdown         []PhaseBreakdown
	Confidence        float64
	Warnings          []string
}

// Strategy computes days-supply for the inputs it matches.
// Specificity is reused from pkg/strategy rather than redeclared: both
// dispatchers rank strategies on the same DEFAULT/DOSE_FORM/
// DOSE_FORM_AND_INGREDIENT/MEDICATION_ID/MEDICATION_SKU scale, even though
// the two Strategy interfaces otherwise share no method.
type Strategy interface {
	Name() string
	Specificity() strategy.Specificity
	Matches(ctx Context) bool
	Calculate(ctx Context) (Result, error)
}
