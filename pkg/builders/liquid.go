package builders

import (
	"fmt"

	"github.com/medsig/engine/pkg/convert"
	"github.com/medsig/engine/pkg/fhirtype"
	"github.com/medsig/engine/pkg/profile"
	"github.com/medsig/engine/pkg/template"
)

// NewSimpleLiquidBuilder builds solutions, suspensions, syrups, and
// elixirs. Suspensions get a standing "shake well" note.
func NewSimpleLiquidBuilder(ctx *profile.MedicationRequestContext) *Builder {
	b := newBuilder(KindSimpleLiquid, ctx)
	if b.medProfile != nil && b.medProfile.DoseForm == profile.DoseFormSuspension {
		b.suspensionNote = true
	}
	return b
}

func (b *Builder) buildLiquidInstruction() (profile.SignatureInstruction, error) {
	if b.suspensionNote {
		b.additionalInstructions = append(b.additionalInstructions, "Shake well before use")
	}

	verb := template.SelectVerb(doseFormString(b), b.route.Canonical)
	doseText := template.FormatDoseAmount(b.dose.value, b.dose.unit)
	if dual, ok := b.dualDoseText(); ok {
		doseText = dual
	}
	freqText := frequencyText(b.timingResult)

	rendered, err := template.Render(template.LiquidDoseTemplate, b.buildDataBag(verb, doseText, freqText))
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

// dualDoseText computes a "250 mg, as 5 mL"-style dual dose
// when the requested dose is in a weight unit and the medication carries
// a strength ratio bridging it to the liquid's volume unit.
func (b *Builder) dualDoseText() (string, bool) {
	if b.medProfile == nil {
		return "", false
	}
	strength := b.medProfile.PrimaryStrength()
	if strength.DenominatorValue <= 0 || b.dose.unit != strength.NumeratorUnit {
		return "", false
	}
	volume, err := convert.Convert(convert.NewQuantity(b.dose.value, b.dose.unit), strength.DenominatorUnit, convert.Context{Strength: &strength})
	if err != nil {
		return "", false
	}
	return fmt.Sprintf("%s, as %s", template.FormatDoseAmount(b.dose.value, b.dose.unit),
		template.FormatDoseAmount(volume.Value.InexactFloat64(), volume.Unit)), true
}
