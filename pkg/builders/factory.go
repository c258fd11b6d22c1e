package builders

import "github.com/medsig/engine/pkg/profile"

// RegimenHint tells NewForMedication which non-default regimen shape the
// caller intends to build, since a MedicationProfile alone can't tell a
// tapering schedule from a PRN range from a plain dose.
type RegimenHint int

const (
	// RegimenNone requests no complex-regimen override.
	RegimenNone RegimenHint = iota
	RegimenTapering
	RegimenDoseOrFrequencyRange
)

// NewForMedication runs the builder factory decision tree and
// returns a Builder already configured for the matched kind. requestsFraction
// should be true when the caller is about to request a non-integer dose
// (the factory can't see the dose amount before BuildDose runs).
func NewForMedication(ctx *profile.MedicationRequestContext, hint RegimenHint, requestsFraction bool) *Builder {
	p := ctx.Profile

	if p.Dispenser != nil && p.Dispenser.Type == "topiclick" {
		return NewTopiclickBuilder(ctx)
	}
	if p.DoseForm == profile.DoseFormNasalSpray {
		return NewNasalSprayBuilder(ctx)
	}
	if p.Classification == profile.ClassificationCompound || len(p.Ingredients) >= 2 {
		return NewMultiIngredientBuilder(ctx)
	}
	if hint == RegimenTapering {
		return NewTaperingDoseBuilder(ctx)
	}
	if hint == RegimenDoseOrFrequencyRange {
		return NewComplexPRNBuilder(ctx)
	}
	if p.IsCountable() {
		if p.Scoring != profile.ScoringNone && requestsFraction {
			return NewFractionalTabletBuilder(ctx)
		}
		return NewSimpleTabletBuilder(ctx)
	}
	return NewSimpleLiquidBuilder(ctx)
}
