package builders

import (
	"fmt"
	"strings"

	"github.com/medsig/engine/pkg/fhirtype"
	"github.com/medsig/engine/pkg/profile"
	"github.com/medsig/engine/pkg/template"
)

// NewMultiIngredientBuilder builds compounds and multi-ingredient products:
// the dispensed dose is pro-rated across each ingredient via
// its own strength ratio, so "5 mL" becomes "5 mL (IngrA: 50 mg, IngrB: 20
// mg)".
func NewMultiIngredientBuilder(ctx *profile.MedicationRequestContext) *Builder {
	b := newBuilder(KindMultiIngredient, ctx)
	b.multiIngredient = true
	return b
}

func (b *Builder) buildMultiIngredientInstruction() (profile.SignatureInstruction, error) {
	verb := template.SelectVerb(doseFormString(b), b.route.Canonical)
	doseText := template.FormatDoseAmount(b.dose.value, b.dose.unit)
	if b.medProfile != nil && len(b.medProfile.Ingredients) > 0 {
		if breakdown := proRatedBreakdown(b.dose.value, b.dose.unit, b.medProfile.Ingredients); breakdown != "" {
			doseText = fmt.Sprintf("%s (%s)", doseText, breakdown)
		}
	}
	freqText := frequencyText(b.timingResult)

	rendered, err := template.Render(template.DefaultTemplate, b.buildDataBag(verb, doseText, freqText))
	if err != nil {
		return profile.SignatureInstruction{}, err
	}

	return profile.SignatureInstruction{
		Text:   rendered,
		Timing: timingPtr(b.timingResult),
		DoseAndRate: []fhirtype.DoseAndRate{{
			DoseQuantity: quantityPtr(fhirtype.NewQuantity(b.dose.value, b.dose.unit)),
		}},
	}, nil
}

// proRatedBreakdown pro-rates doseValue (expressed in doseUnit) across each
// ingredient whose strength ratio denominator matches doseUnit, e.g. a 50
// mg/mL ratio turns a 5 mL dose into "IngrA: 250 mg". Ingredients whose
// ratio doesn't bridge doseUnit are skipped rather than guessed at.
func proRatedBreakdown(doseValue float64, doseUnit string, ingredients []profile.Ingredient) string {
	parts := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		if ing.Strength.DenominatorUnit != doseUnit || ing.Strength.DenominatorValue <= 0 {
			continue
		}
		amount := doseValue * (ing.Strength.NumeratorValue / ing.Strength.DenominatorValue)
		parts = append(parts, fmt.Sprintf("%s: %s", ing.Name, template.FormatDoseAmount(amount, ing.Strength.NumeratorUnit)))
	}
	return strings.Join(parts, ", ")
}
