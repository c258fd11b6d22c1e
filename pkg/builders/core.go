package builders

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/medsig/engine/pkg/fhirtype"
	"github.com/medsig/engine/pkg/profile"
	"github.com/medsig/engine/pkg/route"
	"github.com/medsig/engine/pkg/template"
	"github.com/medsig/engine/pkg/timing"
)

// Kind names a concrete builder, used for toJSON's "type" field and in
// audit/explain output.
type Kind string

const (
	KindSimpleTablet     Kind = "SimpleTabletBuilder"
	KindSimpleLiquid     Kind = "SimpleLiquidBuilder"
	KindFractionalTablet Kind = "FractionalTabletBuilder"
	KindTopiclick        Kind = "TopiclickBuilder"
	KindNasalSpray       Kind = "NasalSprayBuilder"
	KindComplexPRN       Kind = "ComplexPRNBuilder"
	KindMultiIngredient  Kind = "MultiIngredientBuilder"
	KindTaperingDose     Kind = "TaperingDoseBuilder"
)

// solidOralRoutes is the route whitelist SimpleTabletBuilder and its
// tablet-family variants enforce.
var solidOralRoutes = map[string]bool{"Orally": true, "Sublingually": true, "Buccally": true}

// Builder is the shared core state every concrete builder constructor
// configures via aspect fields, then drives through the fluent contract.
type Builder struct {
	Kind    Kind
	ctx     *profile.MedicationRequestContext
	medProfile *profile.MedicationProfile

	// aspect configuration, set by the concrete constructors.
	enforceSolidOralRoute bool
	fractionalRounding    bool
	suspensionNote        bool
	dispenser             *dispenserAspect
	rangeDose             *rangeDoseAspect
	multiIngredient       bool
	taper                 *taperAspect

	dose          doseState
	doseRangeLow  float64
	doseRangeHigh float64
	hasDoseRange  bool

	timingResult  timing.Result
	route         route.Result

	asNeeded      bool
	asNeededText  string

	additionalInstructions []string
	warnings                []string
	errs                    []error
	audit                   []string

	result []profile.SignatureInstruction
}

type doseState struct {
	value float64
	unit  string
	set   bool
}

func newBuilder(kind Kind, ctx *profile.MedicationRequestContext) *Builder {
	b := &Builder{Kind: kind, ctx: ctx}
	if ctx != nil {
		b.medProfile = ctx.Profile
	}
	b.logAudit(fmt.Sprintf("constructed %s", kind))
	return b
}

func (b *Builder) logAudit(msg string) {
	b.audit = append(b.audit, fmt.Sprintf("[%s] %s", time.Now().UTC().Format(time.RFC3339), msg))
}

func (b *Builder) addError(err error) {
	if err != nil {
		b.errs = append(b.errs, err)
		b.logAudit("error: " + err.Error())
	}
}

func (b *Builder) addWarning(msg string) {
	b.warnings = append(b.warnings, msg)
	b.additionalInstructions = append(b.additionalInstructions, "Clinical advice: "+msg)
	b.logAudit("warning: " + msg)
}

// BuildDose validates and records the requested dose. Shape validation
// (positive amount, recognized unit) runs first via pkg/units; semantic
// validation (scoring, dispenser limits) is aspect-specific and dispatched
// from here.
func (b *Builder) BuildDose(value float64, unit string) *Builder {
	if err := validateDoseShape(value, unit); err != nil {
		b.addError(fmt.Errorf("%s: %w", b.Kind, err))
		return b
	}
	b.dose = doseState{value: value, unit: unit, set: true}
	b.logAudit(fmt.Sprintf("buildDose(%v, %q)", value, unit))

	b.applyScoring(value)
	b.applyDispenserLimits(value)
	return b
}

// BuildDoseRange records a {minValue,maxValue,unit} dose range, used by
// ComplexPRNBuilder.
func (b *Builder) BuildDoseRange(minValue, maxValue float64, unit string) *Builder {
	if b.rangeDose == nil {
		b.addError(fmt.Errorf("%s: does not support dose ranges", b.Kind))
		return b
	}
	if err := validateDoseShape(minValue, unit); err != nil {
		b.addError(err)
		return b
	}
	if maxValue < minValue {
		b.addError(fmt.Errorf("%s: dose range max %v is below min %v", b.Kind, maxValue, minValue))
		return b
	}
	b.dose = doseState{value: minValue, unit: unit, set: true}
	b.doseRangeLow, b.doseRangeHigh = minValue, maxValue
	b.hasDoseRange = true
	b.logAudit(fmt.Sprintf("buildDoseRange(%v, %v, %q)", minValue, maxValue, unit))
	return b
}

// BuildTiming parses a frequency (string, []string, or *fhirtype.Timing)
// via pkg/timing.
func (b *Builder) BuildTiming(frequency any) *Builder {
	result := timing.Parse(frequency)
	b.timingResult = result
	for _, w := range result.Warnings {
		b.addWarning(w)
	}
	b.logAudit(fmt.Sprintf("buildTiming(confidence=%.2f, titration=%v)", result.Confidence, result.IsTitration))
	return b
}

// BuildFrequencyRange records a frequency range, used by ComplexPRNBuilder.
func (b *Builder) BuildFrequencyRange(minFrequency, maxFrequency, period float64, periodUnit fhirtype.PeriodUnit) *Builder {
	if b.rangeDose == nil {
		b.addError(fmt.Errorf("%s: does not support frequency ranges", b.Kind))
		return b
	}
	if maxFrequency < minFrequency {
		b.addError(fmt.Errorf("%s: frequency range max %v is below min %v", b.Kind, maxFrequency, minFrequency))
		return b
	}
	b.rangeDose.minFrequency = minFrequency
	b.rangeDose.maxFrequency = maxFrequency
	b.timingResult = timing.Result{
		Timing: &fhirtype.Timing{Repeat: fhirtype.TimingRepeat{
			Frequency: minFrequency, FrequencyMax: maxFrequency, Period: period, PeriodUnit: periodUnit,
		}},
		Confidence: 0.9,
	}
	b.logAudit(fmt.Sprintf("buildFrequencyRange(%v-%v per %v%s)", minFrequency, maxFrequency, period, periodUnit))
	return b
}

// BuildRoute validates and canonicalizes the administration route.
func (b *Builder) BuildRoute(routeInput string) *Builder {
	doseForm := ""
	if b.medProfile != nil {
		doseForm = string(b.medProfile.DoseForm)
	}
	result := route.Validate(routeInput, doseForm)
	if result.IsValid && b.route.IsValid && result.Canonical == b.route.Canonical {
		return b
	}
	b.route = result
	for _, w := range result.Warnings {
		b.addWarning(w)
	}
	if !result.IsValid {
		b.addError(fmt.Errorf("%s: invalid route %q", b.Kind, routeInput))
		return b
	}
	if b.enforceSolidOralRoute && !solidOralRoutes[result.Canonical] {
		b.addError(fmt.Errorf("%s: route %q is not valid for a solid oral dose form", b.Kind, result.Canonical))
		return b
	}
	b.logAudit(fmt.Sprintf("buildRoute(%q)", result.Canonical))
	return b
}

// BuildConstraints records maxDosePerPeriod / max-daily-dose constraints,
// used by ComplexPRNBuilder.
func (b *Builder) BuildConstraints(maxDailyDose float64, unit string) *Builder {
	if b.rangeDose == nil {
		return b
	}
	b.rangeDose.maxDailyDose = maxDailyDose
	b.rangeDose.maxDailyUnit = unit
	b.logAudit(fmt.Sprintf("buildConstraints(maxDailyDose=%v %s)", maxDailyDose, unit))
	return b
}

// BuildAsNeeded marks the instruction PRN, optionally with a condition.
func (b *Builder) BuildAsNeeded(isPRN bool, condition string) *Builder {
	b.asNeeded = isPRN
	b.asNeededText = condition
	b.logAudit(fmt.Sprintf("buildAsNeeded(%v)", isPRN))
	return b
}

// BuildSpecialInstructions appends free-text additional instructions.
func (b *Builder) BuildSpecialInstructions(instructions ...string) *Builder {
	b.additionalInstructions = append(b.additionalInstructions, instructions...)
	b.logAudit(fmt.Sprintf("buildSpecialInstructions(%d)", len(instructions)))
	return b
}

// GetResult finalizes the builder into its SignatureInstruction(s).
func (b *Builder) GetResult() ([]profile.SignatureInstruction, error) {
	if b.Kind == KindTaperingDose {
		return b.getTaperingResult()
	}

	if err := b.firstError(); err != nil {
		return nil, err
	}
	if !b.dose.set && !b.hasDoseRange {
		return nil, fmt.Errorf("%s: dose was never built", b.Kind)
	}

	var instr profile.SignatureInstruction
	var err error
	switch b.Kind {
	case KindSimpleTablet, KindFractionalTablet:
		instr, err = b.buildTabletInstruction()
	case KindSimpleLiquid:
		instr, err = b.buildLiquidInstruction()
	case KindTopiclick:
		instr, err = b.buildTopiclickInstruction()
	case KindNasalSpray:
		instr, err = b.buildNasalSprayInstruction()
	case KindComplexPRN:
		instr, err = b.buildComplexPRNInstruction()
	case KindMultiIngredient:
		instr, err = b.buildMultiIngredientInstruction()
	default:
		return nil, fmt.Errorf("unknown builder kind %q", b.Kind)
	}
	if err != nil {
		return nil, err
	}

	instr.AdditionalInstruction = textsToCodeableConcepts(b.additionalInstructions)
	if b.asNeeded {
		asNeeded := true
		instr.AsNeeded = &fhirtype.AsNeeded{Boolean: &asNeeded}
		if b.asNeededText != "" {
			instr.AsNeeded.For = &fhirtype.CodeableConcept{Text: b.asNeededText}
		}
	}
	if b.route.Metadata != nil {
		concept := fhirtype.NewSnomedConcept(b.route.Metadata.SnomedCode, b.route.Metadata.Display)
		instr.Route = &concept
	}

	b.result = []profile.SignatureInstruction{instr}
	return b.result, nil
}

// Explain returns the accumulated audit trail.
func (b *Builder) Explain() []string {
	return append([]string(nil), b.audit...)
}

// ToJSON serializes the builder's state and type.
func (b *Builder) ToJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type                    Kind     `json:"type"`
		DoseValue               float64  `json:"doseValue,omitempty"`
		DoseUnit                string   `json:"doseUnit,omitempty"`
		Route                   string   `json:"route,omitempty"`
		AsNeeded                bool     `json:"asNeeded"`
		Warnings                []string `json:"warnings,omitempty"`
		AdditionalInstructions  []string `json:"additionalInstructions,omitempty"`
	}{
		Type:                   b.Kind,
		DoseValue:              b.dose.value,
		DoseUnit:                b.dose.unit,
		Route:                  b.route.Canonical,
		AsNeeded:               b.asNeeded,
		Warnings:               b.warnings,
		AdditionalInstructions: b.additionalInstructions,
	})
}

// firstError returns the first accumulated build error, if any; GetResult
// calls this before assembling the final instruction.
func (b *Builder) firstError() error {
	if len(b.errs) == 0 {
		return nil
	}
	return b.errs[0]
}

// buildDataBag assembles the shared template.DataBag fields every
// non-tapering builder's GetResult uses to render text.
func (b *Builder) buildDataBag(verb, doseText, freqText string) template.DataBag {
	return template.DataBag{
		Verb:          verb,
		Dose:          doseText,
		RouteText:     template.RouteText(b.route.Canonical),
		FrequencyText: freqText,
		AsNeeded:      b.asNeeded,
	}
}
