package builders

import (
	"fmt"

	"github.com/medsig/engine/pkg/profile"
	"github.com/medsig/engine/pkg/units"
)

// validateDoseShape is the "shape" half of the validation algorithm:
// positive amount, recognized unit, via pkg/units' Value Object
// constructors. Semantic validation against medication constraints happens
// separately, aspect by aspect.
func validateDoseShape(value float64, unit string) error {
	if _, err := units.NewMass(value, units.MassUnit(unit)); err == nil {
		return nil
	}
	if _, err := units.NewVolume(value, units.VolumeUnit(unit)); err == nil {
		return nil
	}
	if _, err := units.NewCount(value, units.CountUnit(unit)); err == nil {
		return nil
	}
	if value <= 0 {
		return fmt.Errorf("dose value must be positive, got %v", value)
	}
	return fmt.Errorf("unrecognized dose unit %q", unit)
}

// applyScoring enforces SimpleTabletBuilder's fractional-dose rule: NONE
// rejects any fraction, HALF allows down to 0.5, QUARTER
// allows down to 0.25. Builders that don't set fractionalRounding skip the
// finer-grained FractionalTabletBuilder behavior but still enforce scoring.
func (b *Builder) applyScoring(value float64) {
	if b.medProfile == nil || b.medProfile.Scoring == "" {
		return
	}
	fraction := value - float64(int(value))
	if fraction == 0 {
		return
	}

	switch b.medProfile.Scoring {
	case profile.ScoringNone:
		b.addError(fmt.Errorf("%s: medication does not permit fractional dosing, got %v", b.Kind, value))
	case profile.ScoringHalf:
		if !isMultipleOf(fraction, 0.5) {
			b.addError(fmt.Errorf("%s: medication is only half-scored, got fractional dose %v", b.Kind, value))
		}
	case profile.ScoringQuarter:
		if !isMultipleOf(fraction, 0.25) {
			b.addError(fmt.Errorf("%s: medication is only quarter-scored, got fractional dose %v", b.Kind, value))
		}
	}
}

func isMultipleOf(fraction, step float64) bool {
	const epsilon = 1e-9
	ratio := fraction / step
	rounded := float64(int(ratio + 0.5))
	return abs(ratio-rounded) < epsilon
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
