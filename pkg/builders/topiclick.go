package builders

import (
	"fmt"

	"github.com/medsig/engine/pkg/convert"
	"github.com/medsig/engine/pkg/fhirtype"
	"github.com/medsig/engine/pkg/profile"
	"github.com/medsig/engine/pkg/template"
)

// topiclickDispenser is the fixed 4-click-per-mL Topiclick ratio.
var topiclickDispenser = convert.DispenserInfo{Type: "topiclick", Unit: "click", BridgeUnit: "mL", ConversionRatio: 4}

// NewTopiclickBuilder builds cream/gel doses dispensed by Topiclick clicks,
// bridging clicks to mL and (when the profile carries a strength ratio) on
// to a displayed mass.
func NewTopiclickBuilder(ctx *profile.MedicationRequestContext) *Builder {
	b := newBuilder(KindTopiclick, ctx)
	b.dispenser = &dispenserAspect{info: topiclickDispenser}
	return b
}

// topiclickDeviceInstructions are the standing device-usage notes every
// Topiclick instruction carries.
var topiclickDeviceInstructions = []string{
	"Prime device with 4 clicks before first use",
	"Each click dispenses 0.25 mL",
	"Rotate base until you hear the required number of clicks",
}

func (b *Builder) buildTopiclickInstruction() (profile.SignatureInstruction, error) {
	clicks := b.dose.value
	ml, err := b.clicksToMl(clicks)
	if err != nil {
		return profile.SignatureInstruction{}, fmt.Errorf("%s: %w", b.Kind, err)
	}
	b.additionalInstructions = append(b.additionalInstructions, topiclickDeviceInstructions...)

	displayValue, displayUnit := clicks, "click"
	if b.medProfile != nil {
		strength := b.medProfile.PrimaryStrength()
		if strength.DenominatorValue > 0 {
			mass, err := convert.Convert(ml, strength.NumeratorUnit, convert.Context{Strength: &strength})
			if err == nil {
				displayValue, displayUnit = mass.Value.InexactFloat64(), mass.Unit
			}
		}
	}

	verb := template.SelectVerb(doseFormString(b), b.route.Canonical)
	doseText := fmt.Sprintf("%s (%s)", template.FormatDoseAmount(clicks, "click"), template.FormatDoseAmount(displayValue, displayUnit))
	freqText := frequencyText(b.timingResult)

	rendered, err := template.Render(template.TopiclickTemplate, b.buildDataBag(verb, doseText, freqText))
	if err != nil {
		return profile.SignatureInstruction{}, err
	}

	return profile.SignatureInstruction{
		Text:   rendered,
		Timing: timingPtr(b.timingResult),
		DoseAndRate: []fhirtype.DoseAndRate{{
			DoseQuantity: quantityPtr(fhirtype.NewQuantity(clicks, "click")),
		}},
	}, nil
}
