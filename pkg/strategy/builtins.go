package strategy

import (
	"fmt"
	"strings"

	"github.com/medsig/engine/pkg/convert"
	"github.com/medsig/engine/pkg/fhirtype"
	"github.com/medsig/engine/pkg/profile"
	"github.com/medsig/engine/pkg/route"
	"github.com/medsig/engine/pkg/template"
	"github.com/medsig/engine/pkg/timing"
)

// buildBasicInstruction assembles the FHIR Dosage shape DefaultStrategy,
// TabletStrategy, and LiquidStrategy share: validate the route, parse the
// frequency, and render a verb/dose/route/frequency sentence.
func buildBasicInstruction(ctx *profile.MedicationRequestContext, templateName string) (profile.SignatureInstruction, error) {
	doseForm := ""
	if ctx.Profile != nil {
		doseForm = string(ctx.Profile.DoseForm)
	}
	routeResult := route.Validate(ctx.Route, doseForm)
	if !routeResult.IsValid {
		return profile.SignatureInstruction{}, fmt.Errorf("strategy: invalid route %q", ctx.Route)
	}
	timingResult := timing.Parse(ctx.Frequency)

	verb := template.SelectVerb(doseForm, routeResult.Canonical)
	rendered, err := template.Render(templateName, template.DataBag{
		Verb:          verb,
		Dose:          template.FormatDoseAmount(ctx.Dose.Value, ctx.Dose.Unit),
		RouteText:     template.RouteText(routeResult.Canonical),
		FrequencyText: frequencySentence(timingResult),
		AsNeeded:      ctx.IsPRN,
	})
	if err != nil {
		return profile.SignatureInstruction{}, err
	}

	instr := profile.SignatureInstruction{
		Text:   rendered,
		Timing: timingResult.Timing,
		DoseAndRate: []fhirtype.DoseAndRate{{
			DoseQuantity: quantityPointer(fhirtype.NewQuantity(ctx.Dose.Value, ctx.Dose.Unit)),
		}},
	}
	if routeResult.Metadata != nil {
		concept := fhirtype.NewSnomedConcept(routeResult.Metadata.SnomedCode, routeResult.Metadata.Display)
		instr.Route = &concept
	}
	if len(ctx.SpecialInstructions) > 0 {
		instr.AdditionalInstruction = textsToCodeableConcepts(ctx.SpecialInstructions)
	}
	if ctx.IsPRN {
		asNeeded := true
		instr.AsNeeded = &fhirtype.AsNeeded{Boolean: &asNeeded}
	}
	return instr, nil
}

func quantityPointer(q fhirtype.Quantity) *fhirtype.Quantity { return &q }

func textsToCodeableConcepts(texts []string) []fhirtype.CodeableConcept {
	if len(texts) == 0 {
		return nil
	}
	out := make([]fhirtype.CodeableConcept, len(texts))
	for i, t := range texts {
		out[i] = fhirtype.CodeableConcept{Text: t}
	}
	return out
}

// DefaultStrategy matches every context; it's the fallback no other base
// strategy overrides.
type DefaultStrategy struct{}

func NewDefaultStrategy() *DefaultStrategy { return &DefaultStrategy{} }

func (s *DefaultStrategy) Name() string              { return "DefaultStrategy" }
func (s *DefaultStrategy) Specificity() Specificity   { return SpecificityDefault }
func (s *DefaultStrategy) Matches(*profile.MedicationRequestContext) bool { return true }
func (s *DefaultStrategy) Build(ctx *profile.MedicationRequestContext) (profile.SignatureInstruction, error) {
	return buildBasicInstruction(ctx, template.DefaultTemplate)
}

// TabletStrategy matches tablet-family dose forms.
type TabletStrategy struct{}

func NewTabletStrategy() *TabletStrategy { return &TabletStrategy{} }

var tabletDoseForms = map[profile.DoseForm]bool{
	profile.DoseFormTablet: true, profile.DoseFormCapsule: true,
	profile.DoseFormODT: true, profile.DoseFormTroche: true,
}

func (s *TabletStrategy) Name() string            { return "TabletStrategy" }
func (s *TabletStrategy) Specificity() Specificity { return SpecificityDoseForm }
func (s *TabletStrategy) Matches(ctx *profile.MedicationRequestContext) bool {
	return ctx.Profile != nil && tabletDoseForms[ctx.Profile.DoseForm]
}
func (s *TabletStrategy) Build(ctx *profile.MedicationRequestContext) (profile.SignatureInstruction, error) {
	return buildBasicInstruction(ctx, template.OralTabletTemplate)
}

// LiquidStrategy matches solution/suspension/syrup/elixir dose forms.
type LiquidStrategy struct{}

func NewLiquidStrategy() *LiquidStrategy { return &LiquidStrategy{} }

var liquidDoseForms = map[profile.DoseForm]bool{
	profile.DoseFormSolution: true, profile.DoseFormSuspension: true,
	profile.DoseFormSyrup: true, profile.DoseFormElixir: true,
}

func (s *LiquidStrategy) Name() string            { return "LiquidStrategy" }
func (s *LiquidStrategy) Specificity() Specificity { return SpecificityDoseForm }
func (s *LiquidStrategy) Matches(ctx *profile.MedicationRequestContext) bool {
	return ctx.Profile != nil && liquidDoseForms[ctx.Profile.DoseForm]
}
func (s *LiquidStrategy) Build(ctx *profile.MedicationRequestContext) (profile.SignatureInstruction, error) {
	instr, err := buildBasicInstruction(ctx, template.LiquidDoseTemplate)
	if err != nil {
		return instr, err
	}
	if ctx.Profile != nil && ctx.Profile.DoseForm == profile.DoseFormSuspension {
		instr.AdditionalInstruction = append(instr.AdditionalInstruction, fhirtype.CodeableConcept{Text: "Shake well before use"})
	}
	return instr, nil
}

// TestosteroneCypionateStrategy is the MEDICATION_ID-specificity example:
// it renders a dual-unit "100 mg (½ mL)" dose display
// whenever the profile's id/display name identifies it, regardless of
// dose form (testosterone cypionate ships as an injectable, but the
// identity match is on the medication itself, not its dose form).
type TestosteroneCypionateStrategy struct{}

func NewTestosteroneCypionateStrategy() *TestosteroneCypionateStrategy {
	return &TestosteroneCypionateStrategy{}
}

func (s *TestosteroneCypionateStrategy) Name() string            { return "TestosteroneCypionateStrategy" }
func (s *TestosteroneCypionateStrategy) Specificity() Specificity { return SpecificityMedicationID }
func (s *TestosteroneCypionateStrategy) Matches(ctx *profile.MedicationRequestContext) bool {
	if ctx.Profile == nil {
		return false
	}
	id := strings.ToLower(ctx.Profile.ID)
	name := strings.ToLower(ctx.Profile.DisplayName)
	return id == "testosterone-cypionate" || strings.Contains(name, "testosterone cypionate")
}
func (s *TestosteroneCypionateStrategy) Build(ctx *profile.MedicationRequestContext) (profile.SignatureInstruction, error) {
	doseForm := ""
	if ctx.Profile != nil {
		doseForm = string(ctx.Profile.DoseForm)
	}
	routeResult := route.Validate(ctx.Route, doseForm)
	if !routeResult.IsValid {
		return profile.SignatureInstruction{}, fmt.Errorf("strategy: invalid route %q", ctx.Route)
	}
	timingResult := timing.Parse(ctx.Frequency)
	verb := template.SelectVerb(doseForm, routeResult.Canonical)

	doseText := template.FormatDoseAmount(ctx.Dose.Value, ctx.Dose.Unit)
	strength := ctx.Profile.PrimaryStrength()
	if strength.DenominatorValue > 0 && ctx.Dose.Unit == strength.NumeratorUnit {
		volume, err := convert.Convert(convert.NewQuantity(ctx.Dose.Value, ctx.Dose.Unit), strength.DenominatorUnit,
			convert.Context{Strength: &strength})
		if err == nil {
			doseText = fmt.Sprintf("%s (%s)", doseText, template.FormatDoseAmount(volume.Value.InexactFloat64(), volume.Unit))
		}
	}

	rendered, err := template.Render(template.DefaultTemplate, template.DataBag{
		Verb:          verb,
		Dose:          doseText,
		RouteText:     template.RouteText(routeResult.Canonical),
		FrequencyText: frequencySentence(timingResult),
		AsNeeded:      ctx.IsPRN,
	})
	if err != nil {
		return profile.SignatureInstruction{}, err
	}

	instr := profile.SignatureInstruction{
		Text:   rendered,
		Timing: timingResult.Timing,
		DoseAndRate: []fhirtype.DoseAndRate{{
			DoseQuantity: quantityPointer(fhirtype.NewQuantity(ctx.Dose.Value, ctx.Dose.Unit)),
		}},
	}
	if routeResult.Metadata != nil {
		concept := fhirtype.NewSnomedConcept(routeResult.Metadata.SnomedCode, routeResult.Metadata.Display)
		instr.Route = &concept
	}
	return instr, nil
}

// TopiclickModifier decorates an instruction built for a Topiclick-
// dispensed medication with click display and a priming note. It matches
// regardless of which base strategy won, so it fires even when
// DefaultStrategy handled a dose form (cream, gel) the other built-ins
// don't recognize.
type TopiclickModifier struct{}

func NewTopiclickModifier() *TopiclickModifier { return &TopiclickModifier{} }

func (m *TopiclickModifier) Name() string { return "TopiclickModifier" }
func (m *TopiclickModifier) Priority() int { return 10 }
func (m *TopiclickModifier) AppliesTo(ctx *profile.MedicationRequestContext) bool {
	return ctx.Profile != nil && ctx.Profile.Dispenser != nil && ctx.Profile.Dispenser.Type == "topiclick"
}
func (m *TopiclickModifier) Apply(ctx *profile.MedicationRequestContext, instr profile.SignatureInstruction) (profile.SignatureInstruction, error) {
	instr.AdditionalInstruction = append(instr.AdditionalInstruction,
		fhirtype.CodeableConcept{Text: "Prime device with 4 clicks before first use"},
		fhirtype.CodeableConcept{Text: "Each click dispenses 0.25 mL"},
	)
	if len(instr.DoseAndRate) == 0 || instr.DoseAndRate[0].DoseQuantity == nil {
		return instr, nil
	}
	dispenser := *ctx.Profile.Dispenser
	clicks := instr.DoseAndRate[0].DoseQuantity.Value
	mL, err := convert.Convert(convert.NewQuantity(clicks, dispenser.Unit), dispenser.BridgeUnit, convert.Context{Dispenser: &dispenser})
	if err != nil {
		return instr, nil
	}
	strength := ctx.Profile.PrimaryStrength()
	if strength.DenominatorValue <= 0 {
		return instr, nil
	}
	mg, err := convert.Convert(mL, strength.NumeratorUnit, convert.Context{Strength: &strength})
	if err != nil {
		return instr, nil
	}
	instr.Text = strings.Replace(instr.Text,
		template.FormatDoseAmount(clicks, dispenser.Unit),
		fmt.Sprintf("%s (%s)", template.FormatDoseAmount(clicks, dispenser.Unit), template.FormatDoseAmount(mg.Value.InexactFloat64(), mg.Unit)),
		1)
	return instr, nil
}

// StrengthDisplayModifier annotates a solid-oral, countable dose with its
// total strength in mg, e.g. a 2-tablet 500 mg dose gets an additional
// instruction reading "Total dose: 1000 mg".
type StrengthDisplayModifier struct{}

func NewStrengthDisplayModifier() *StrengthDisplayModifier { return &StrengthDisplayModifier{} }

func (m *StrengthDisplayModifier) Name() string { return "StrengthDisplayModifier" }
func (m *StrengthDisplayModifier) Priority() int { return 20 }
func (m *StrengthDisplayModifier) AppliesTo(ctx *profile.MedicationRequestContext) bool {
	if ctx.Profile == nil || !ctx.Profile.IsCountable() {
		return false
	}
	strength := ctx.Profile.PrimaryStrength()
	return strength.DenominatorValue > 0 && strength.DenominatorUnit == ctx.Dose.Unit
}
func (m *StrengthDisplayModifier) Apply(ctx *profile.MedicationRequestContext, instr profile.SignatureInstruction) (profile.SignatureInstruction, error) {
	strength := ctx.Profile.PrimaryStrength()
	total := ctx.Dose.Value * (strength.NumeratorValue / strength.DenominatorValue)
	instr.AdditionalInstruction = append(instr.AdditionalInstruction,
		fhirtype.CodeableConcept{Text: fmt.Sprintf("Total dose: %s", template.FormatDoseAmount(total, strength.NumeratorUnit))})
	return instr, nil
}
