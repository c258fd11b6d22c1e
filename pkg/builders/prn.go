package builders

import (
	"fmt"

	"github.com/medsig/engine/pkg/fhirtype"
	"github.com/medsig/engine/pkg/profile"
	"github.com/medsig/engine/pkg/template"
)

// NewComplexPRNBuilder builds dose-range/frequency-range regimens with an
// optional max-daily-dose constraint, e.g. "1 to 2 tablets
// every 4 to 6 hours as needed, max 6 tablets per day".
func NewComplexPRNBuilder(ctx *profile.MedicationRequestContext) *Builder {
	b := newBuilder(KindComplexPRN, ctx)
	b.rangeDose = &rangeDoseAspect{}
	b.enforceSolidOralRoute = true
	return b
}

func (b *Builder) buildComplexPRNInstruction() (profile.SignatureInstruction, error) {
	verb := template.SelectVerb(doseFormString(b), b.route.Canonical)
	freqText := frequencyText(b.timingResult)

	var doseText string
	var doseAndRate fhirtype.DoseAndRate
	if b.hasDoseRange {
		doseText = fmt.Sprintf("%s to %s", formatPlainNumber(b.doseRangeLow), template.FormatDoseAmount(b.doseRangeHigh, b.dose.unit))
		doseAndRate.DoseRange = &fhirtype.Range{
			Low:  fhirtype.NewQuantity(b.doseRangeLow, b.dose.unit),
			High: fhirtype.NewQuantity(b.doseRangeHigh, b.dose.unit),
		}
	} else {
		doseText = template.FormatDoseAmount(b.dose.value, b.dose.unit)
		doseAndRate.DoseQuantity = quantityPtr(fhirtype.NewQuantity(b.dose.value, b.dose.unit))
	}

	rendered, err := template.Render(template.PRNRangeTemplate, b.buildDataBag(verb, doseText, freqText))
	if err != nil {
		return profile.SignatureInstruction{}, err
	}

	instr := profile.SignatureInstruction{
		Text:        rendered,
		Timing:      timingPtr(b.timingResult),
		DoseAndRate: []fhirtype.DoseAndRate{doseAndRate},
	}
	if b.rangeDose != nil && b.rangeDose.maxDailyDose > 0 {
		instr.MaxDosePerPeriod = &fhirtype.Ratio{
			Numerator:   fhirtype.NewQuantity(b.rangeDose.maxDailyDose, b.rangeDose.maxDailyUnit),
			Denominator: fhirtype.NewQuantity(1, string(fhirtype.PeriodUnitDay)),
		}
		b.additionalInstructions = append(b.additionalInstructions,
			fmt.Sprintf("Do not exceed %s %s in 24 hours", formatPlainNumber(b.rangeDose.maxDailyDose), b.rangeDose.maxDailyUnit))
	}
	if b.rangeDose != nil && b.rangeDose.maxFrequency > 0 && b.timingResult.Timing != nil {
		minInterval, maxInterval, _ := b.rangeDose.derivedIntervals(b.timingResult.Timing.Repeat.Period)
		if minInterval > 0 {
			b.additionalInstructions = append(b.additionalInstructions,
				fmt.Sprintf("Wait at least %s hours between doses", formatPlainNumber(minInterval)))
		}
		if maxInterval > 0 {
			b.additionalInstructions = append(b.additionalInstructions,
				fmt.Sprintf("May space doses up to %s hours apart", formatPlainNumber(maxInterval)))
		}
	}
	return instr, nil
}

func formatPlainNumber(v float64) string {
	return fmt.Sprintf("%g", v)
}
