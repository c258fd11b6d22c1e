package builders

import (
	"testing"

	"github.com/medsig/engine/pkg/convert"
	"github.com/medsig/engine/pkg/fhirtype"
	"github.com/medsig/engine/pkg/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustProfile(t *testing.T, p profile.MedicationProfile) *profile.MedicationProfile {
	t.Helper()
	out, err := profile.NewMedicationProfile(p)
	require.NoError(t, err)
	return out
}

func newCtx(p *profile.MedicationProfile) *profile.MedicationRequestContext {
	return &profile.MedicationRequestContext{Profile: p}
}

func TestSimpleTabletBuilderMetformin(t *testing.T) {
	med := mustProfile(t, profile.MedicationProfile{
		ID: "metformin-500", DisplayName: "Metformin 500mg", DoseForm: profile.DoseFormTablet,
		Scoring:     profile.ScoringNone,
		Ingredients: []profile.Ingredient{{Name: "Metformin", Strength: convert.StrengthRatio{NumeratorValue: 500, NumeratorUnit: "mg", DenominatorValue: 1, DenominatorUnit: "tablet"}}},
	})

	b := NewSimpleTabletBuilder(newCtx(med))
	b.BuildDose(1, "tablet").BuildTiming("twice daily").BuildRoute("po")
	instrs, err := b.GetResult()
	require.NoError(t, err)
	require.Len(t, instrs, 1)

	instr := instrs[0]
	assert.Equal(t, "Take 1 tablet by mouth twice daily.", instr.Text)
	require.NotNil(t, instr.Route)
	assert.Equal(t, "26643006", instr.Route.Coding[0].Code)
	require.Len(t, instr.DoseAndRate, 1)
	require.NotNil(t, instr.DoseAndRate[0].DoseQuantity)
	assert.Equal(t, 1.0, instr.DoseAndRate[0].DoseQuantity.Value)
}

func TestSimpleTabletBuilderRejectsIVRoute(t *testing.T) {
	med := mustProfile(t, profile.MedicationProfile{
		ID: "metformin-500", DoseForm: profile.DoseFormTablet, Scoring: profile.ScoringNone,
		Ingredients: []profile.Ingredient{{Name: "Metformin", Strength: convert.StrengthRatio{NumeratorValue: 500, NumeratorUnit: "mg", DenominatorValue: 1, DenominatorUnit: "tablet"}}},
	})

	b := NewSimpleTabletBuilder(newCtx(med))
	b.BuildDose(1, "tablet").BuildTiming("once daily").BuildRoute("intravenously")
	_, err := b.GetResult()
	assert.Error(t, err)
}

func TestFractionalTabletBuilderLevothyroxine(t *testing.T) {
	med := mustProfile(t, profile.MedicationProfile{
		ID: "levo-50", DoseForm: profile.DoseFormTablet, Scoring: profile.ScoringHalf,
		Ingredients: []profile.Ingredient{{Name: "Levothyroxine", Strength: convert.StrengthRatio{NumeratorValue: 50, NumeratorUnit: "mcg", DenominatorValue: 1, DenominatorUnit: "tablet"}}},
	})

	b := NewFractionalTabletBuilder(newCtx(med))
	b.BuildDose(0.5, "tablet").BuildTiming("once daily").BuildRoute("orally")
	instrs, err := b.GetResult()
	require.NoError(t, err)
	assert.Contains(t, instrs[0].Text, "½")
}

func TestFractionalTabletBuilderRejectsQuarterWhenOnlyHalfScored(t *testing.T) {
	med := mustProfile(t, profile.MedicationProfile{
		ID: "levo-50", DoseForm: profile.DoseFormTablet, Scoring: profile.ScoringHalf,
		Ingredients: []profile.Ingredient{{Name: "Levothyroxine", Strength: convert.StrengthRatio{NumeratorValue: 50, NumeratorUnit: "mcg", DenominatorValue: 1, DenominatorUnit: "tablet"}}},
	})

	b := NewFractionalTabletBuilder(newCtx(med))
	b.BuildDose(0.25, "tablet")
	_, err := b.GetResult()
	assert.Error(t, err)
}

func TestTopiclickBuilderCreamFourClicks(t *testing.T) {
	dispenser := convert.DispenserInfo{Type: "topiclick", Unit: "click", BridgeUnit: "mL", ConversionRatio: 4}
	med := mustProfile(t, profile.MedicationProfile{
		ID: "progesterone-cream", DoseForm: profile.DoseFormCream, Dispenser: &dispenser,
		Ingredients: []profile.Ingredient{{Name: "Progesterone", Strength: convert.StrengthRatio{NumeratorValue: 10, NumeratorUnit: "mg", DenominatorValue: 1, DenominatorUnit: "mL"}}},
	})

	b := NewTopiclickBuilder(newCtx(med))
	b.BuildDose(4, "click").BuildTiming("once daily").BuildRoute("topically")
	instrs, err := b.GetResult()
	require.NoError(t, err)

	instr := instrs[0]
	assert.Contains(t, instr.Text, "4 clicks")
	assert.Contains(t, instr.Text, "10 mg")
	additional := make([]string, len(instr.AdditionalInstruction))
	for i, a := range instr.AdditionalInstruction {
		additional[i] = a.Text
	}
	assert.Contains(t, additional, "Each click dispenses 0.25 mL")
}

func TestComplexPRNBuilderIbuprofenDoseAndFrequencyRange(t *testing.T) {
	med := mustProfile(t, profile.MedicationProfile{
		ID: "ibuprofen-200", DoseForm: profile.DoseFormTablet, Scoring: profile.ScoringNone,
		Ingredients: []profile.Ingredient{{Name: "Ibuprofen", Strength: convert.StrengthRatio{NumeratorValue: 200, NumeratorUnit: "mg", DenominatorValue: 1, DenominatorUnit: "tablet"}}},
	})

	b := NewComplexPRNBuilder(newCtx(med))
	b.BuildDoseRange(1, 2, "tablet").
		BuildFrequencyRange(4, 6, 24, fhirtype.PeriodUnitHour).
		BuildConstraints(6, "tablet").
		BuildRoute("orally").
		BuildAsNeeded(true, "pain")

	instrs, err := b.GetResult()
	require.NoError(t, err)
	instr := instrs[0]

	require.NotNil(t, instr.DoseAndRate[0].DoseRange)
	assert.Equal(t, 1.0, instr.DoseAndRate[0].DoseRange.Low.Value)
	assert.Equal(t, 2.0, instr.DoseAndRate[0].DoseRange.High.Value)
	require.NotNil(t, instr.MaxDosePerPeriod)
	assert.Equal(t, 6.0, instr.MaxDosePerPeriod.Numerator.Value)
	require.NotNil(t, instr.AsNeeded)
	require.NotNil(t, instr.AsNeeded.Boolean)
	assert.True(t, *instr.AsNeeded.Boolean)

	additional := make([]string, len(instr.AdditionalInstruction))
	for i, a := range instr.AdditionalInstruction {
		additional[i] = a.Text
	}
	assert.Contains(t, additional, "Do not exceed 6 tablet in 24 hours")
}

func TestTaperingDoseBuilderPrednisoneDescendingTaper(t *testing.T) {
	med := mustProfile(t, profile.MedicationProfile{
		ID: "prednisone-20", DoseForm: profile.DoseFormTablet, Scoring: profile.ScoringNone, RequiresSlowTaper: true,
		Ingredients: []profile.Ingredient{{Name: "Prednisone", Strength: convert.StrengthRatio{NumeratorValue: 20, NumeratorUnit: "mg", DenominatorValue: 1, DenominatorUnit: "tablet"}}},
	})

	onceDaily := fhirtype.Timing{Repeat: fhirtype.TimingRepeat{Frequency: 1, Period: 1, PeriodUnit: fhirtype.PeriodUnitDay}}
	b := NewTaperingDoseBuilder(newCtx(med))
	b.AddPhase(2, "tablet", onceDaily, fhirtype.Duration{Value: 5, Unit: "d"}, false).
		AddPhase(1, "tablet", onceDaily, fhirtype.Duration{Value: 5, Unit: "d"}, false).
		AddPhase(0.5, "tablet", onceDaily, fhirtype.Duration{Value: 0, Unit: "d"}, true)

	instrs, err := b.GetResult()
	require.NoError(t, err)
	require.Len(t, instrs, 3)

	assert.Equal(t, 0, instrs[0].Sequence)
	assert.Nil(t, instrs[0].Relationship)
	require.NotNil(t, instrs[1].Relationship)
	assert.Equal(t, fhirtype.RelationshipSequential, instrs[1].Relationship.Type)
	assert.Equal(t, "phase-0", instrs[1].Relationship.TargetID)
}

func TestTaperingDoseBuilderRequiresAtLeastOnePhase(t *testing.T) {
	med := mustProfile(t, profile.MedicationProfile{
		ID: "prednisone-20", DoseForm: profile.DoseFormTablet,
		Ingredients: []profile.Ingredient{{Name: "Prednisone", Strength: convert.StrengthRatio{NumeratorValue: 20, NumeratorUnit: "mg", DenominatorValue: 1, DenominatorUnit: "tablet"}}},
	})

	b := NewTaperingDoseBuilder(newCtx(med))
	_, err := b.GetResult()
	assert.Error(t, err)
}

func TestMultiIngredientBuilderProRatesEachIngredient(t *testing.T) {
	med := mustProfile(t, profile.MedicationProfile{
		ID: "compound-pain-cream", DoseForm: profile.DoseFormCream, Classification: profile.ClassificationCompound,
		Ingredients: []profile.Ingredient{
			{Name: "Ketamine", Strength: convert.StrengthRatio{NumeratorValue: 50, NumeratorUnit: "mg", DenominatorValue: 1, DenominatorUnit: "mL"}},
			{Name: "Gabapentin", Strength: convert.StrengthRatio{NumeratorValue: 20, NumeratorUnit: "mg", DenominatorValue: 1, DenominatorUnit: "mL"}},
		},
	})

	b := NewMultiIngredientBuilder(newCtx(med))
	b.BuildDose(2, "mL").BuildTiming("twice daily").BuildRoute("topically")
	instrs, err := b.GetResult()
	require.NoError(t, err)
	assert.Contains(t, instrs[0].Text, "Ketamine: 100 mg")
	assert.Contains(t, instrs[0].Text, "Gabapentin: 40 mg")
}

func TestNewForMedicationFactoryPicksTopiclick(t *testing.T) {
	dispenser := convert.DispenserInfo{Type: "topiclick", Unit: "click", BridgeUnit: "mL", ConversionRatio: 4}
	med := mustProfile(t, profile.MedicationProfile{
		ID: "cream", DoseForm: profile.DoseFormCream, Dispenser: &dispenser,
		Ingredients: []profile.Ingredient{{Name: "X", Strength: convert.StrengthRatio{NumeratorValue: 10, NumeratorUnit: "mg", DenominatorValue: 1, DenominatorUnit: "mL"}}},
	})
	b := NewForMedication(newCtx(med), RegimenNone, false)
	assert.Equal(t, KindTopiclick, b.Kind)
}

func TestNewForMedicationFactoryPicksSimpleTabletForCountableSolid(t *testing.T) {
	med := mustProfile(t, profile.MedicationProfile{
		ID: "metformin-500", DoseForm: profile.DoseFormTablet, Scoring: profile.ScoringNone,
		Ingredients: []profile.Ingredient{{Name: "Metformin", Strength: convert.StrengthRatio{NumeratorValue: 500, NumeratorUnit: "mg", DenominatorValue: 1, DenominatorUnit: "tablet"}}},
	})
	b := NewForMedication(newCtx(med), RegimenNone, false)
	assert.Equal(t, KindSimpleTablet, b.Kind)
}

func TestNewForMedicationFactoryPicksMultiIngredientForCompound(t *testing.T) {
	med := mustProfile(t, profile.MedicationProfile{
		ID: "compound", DoseForm: profile.DoseFormCream, Classification: profile.ClassificationCompound,
		Ingredients: []profile.Ingredient{
			{Name: "A", Strength: convert.StrengthRatio{NumeratorValue: 1, NumeratorUnit: "mg", DenominatorValue: 1, DenominatorUnit: "mL"}},
		},
	})
	b := NewForMedication(newCtx(med), RegimenNone, false)
	assert.Equal(t, KindMultiIngredient, b.Kind)
}

func TestExplainReturnsAuditTrail(t *testing.T) {
	med := mustProfile(t, profile.MedicationProfile{
		ID: "metformin-500", DoseForm: profile.DoseFormTablet, Scoring: profile.ScoringNone,
		Ingredients: []profile.Ingredient{{Name: "Metformin", Strength: convert.StrengthRatio{NumeratorValue: 500, NumeratorUnit: "mg", DenominatorValue: 1, DenominatorUnit: "tablet"}}},
	})
	b := NewSimpleTabletBuilder(newCtx(med))
	b.BuildDose(1, "tablet")
	assert.NotEmpty(t, b.Explain())
}

func TestToJSONSerializesBuilderState(t *testing.T) {
	med := mustProfile(t, profile.MedicationProfile{
		ID: "metformin-500", DoseForm: profile.DoseFormTablet, Scoring: profile.ScoringNone,
		Ingredients: []profile.Ingredient{{Name: "Metformin", Strength: convert.StrengthRatio{NumeratorValue: 500, NumeratorUnit: "mg", DenominatorValue: 1, DenominatorUnit: "tablet"}}},
	})
	b := NewSimpleTabletBuilder(newCtx(med))
	b.BuildDose(1, "tablet").BuildRoute("po")
	data, err := b.ToJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"SimpleTabletBuilder"`)
}
