package builders

import (
	"fmt"

	"github.com/medsig/engine/pkg/convert"
	"github.com/medsig/engine/pkg/fhirtype"
	"github.com/medsig/engine/pkg/profile"
	"github.com/medsig/engine/pkg/template"
)

// NewNasalSprayBuilder builds nasal spray doses, enforcing the
// medication's max-sprays-per-administration limit when its profile
// carries one.
func NewNasalSprayBuilder(ctx *profile.MedicationRequestContext) *Builder {
	b := newBuilder(KindNasalSpray, ctx)
	aspect := &dispenserAspect{info: convert.DispenserInfo{Type: "spray", Unit: "spray", BridgeUnit: "spray", ConversionRatio: 1}}
	if b.medProfile != nil && b.medProfile.Constraints != nil && b.medProfile.Constraints.MaxSingleDose != nil {
		aspect.maxUnitsPerDay = *b.medProfile.Constraints.MaxSingleDose
	}
	b.dispenser = aspect
	return b
}

func (b *Builder) buildNasalSprayInstruction() (profile.SignatureInstruction, error) {
	verb := template.SelectVerb(doseFormString(b), b.route.Canonical)
	doseText := fmt.Sprintf("%s per nostril", template.FormatDoseAmount(b.dose.value, "spray"))
	freqText := frequencyText(b.timingResult)

	rendered, err := template.Render(template.DefaultTemplate, b.buildDataBag(verb, doseText, freqText))
	if err != nil {
		return profile.SignatureInstruction{}, err
	}

	return profile.SignatureInstruction{
		Text:   rendered,
		Timing: timingPtr(b.timingResult),
		DoseAndRate: []fhirtype.DoseAndRate{{
			DoseQuantity: quantityPtr(fhirtype.NewQuantity(b.dose.value, "spray")),
		}},
	}, nil
}
