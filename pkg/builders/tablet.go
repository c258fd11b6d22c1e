package builders

import (
	"fmt"

	"github.com/medsig/engine/pkg/fhirtype"
	"github.com/medsig/engine/pkg/profile"
	"github.com/medsig/engine/pkg/template"
)

// NewSimpleTabletBuilder builds tablets, capsules, ODT, and troches. It
// enforces the oral/sublingual/buccal route whitelist and the
// medication's scoring rule.
func NewSimpleTabletBuilder(ctx *profile.MedicationRequestContext) *Builder {
	b := newBuilder(KindSimpleTablet, ctx)
	b.enforceSolidOralRoute = true
	return b
}

// NewFractionalTabletBuilder is NewSimpleTabletBuilder plus rounding to
// the nearest quarter tablet and a "split in half" note when the rounded
// dose isn't achievable with a single half-split.
func NewFractionalTabletBuilder(ctx *profile.MedicationRequestContext) *Builder {
	b := NewSimpleTabletBuilder(ctx)
	b.Kind = KindFractionalTablet
	b.fractionalRounding = true
	return b
}

func (b *Builder) buildTabletInstruction() (profile.SignatureInstruction, error) {
	dose := b.dose.value
	if b.fractionalRounding {
		rounded := roundToNearestQuarter(dose)
		if rounded != dose {
			b.addWarning(fmt.Sprintf("dose %v rounded to nearest quarter tablet (%v)", dose, rounded))
			dose = rounded
		}
		if isQuarterButNotHalf(dose) {
			b.additionalInstructions = append(b.additionalInstructions, "Split tablet in half")
		}
	}

	verb := template.SelectVerb(doseFormString(b), b.route.Canonical)
	doseText := template.FormatDoseAmount(dose, b.dose.unit)
	freqText := frequencyText(b.timingResult)

	rendered, err := template.Render(template.OralTabletTemplate, b.buildDataBag(verb, doseText, freqText))
	if err != nil {
		return profile.SignatureInstruction{}, err
	}

	return profile.SignatureInstruction{
		Text:   rendered,
		Timing: timingPtr(b.timingResult),
		DoseAndRate: []fhirtype.DoseAndRate{{
			DoseQuantity: quantityPtr(fhirtype.NewQuantity(dose, b.dose.unit)),
		}},
	}, nil
}

// roundToNearestQuarter rounds a dose amount to the nearest 0.25.
func roundToNearestQuarter(value float64) float64 {
	return float64(int(value*4+0.5)) / 4
}

// isQuarterButNotHalf reports whether value is an odd multiple of 0.25
// (0.25 or 0.75, not 0.5 or a whole number) — the case that needs a
// "Split tablet in half" note because the remaining quarter can't be
// achieved by a single half-split alone.
func isQuarterButNotHalf(value float64) bool {
	frac := value - float64(int(value))
	return frac == 0.25 || frac == 0.75
}
