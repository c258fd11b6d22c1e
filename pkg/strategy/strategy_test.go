package strategy

import (
	"testing"

	"github.com/medsig/engine/pkg/common"
	"github.com/medsig/engine/pkg/convert"
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

func metforminCtx(t *testing.T) *profile.MedicationRequestContext {
	med := mustProfile(t, profile.MedicationProfile{
		ID: "metformin-500", DisplayName: "Metformin 500mg", DoseForm: profile.DoseFormTablet,
		Scoring: profile.ScoringNone,
		Ingredients: []profile.Ingredient{{Name: "Metformin", Strength: convert.StrengthRatio{
			NumeratorValue: 500, NumeratorUnit: "mg", DenominatorValue: 1, DenominatorUnit: "tablet",
		}}},
	})
	return &profile.MedicationRequestContext{
		RequestID: "req-1", Profile: med,
		Dose: profile.Dose{Value: 1, Unit: "tablet"}, Frequency: "twice daily", Route: "po",
	}
}

func TestDefaultStrategyMatchesAnyContext(t *testing.T) {
	s := NewDefaultStrategy()
	assert.True(t, s.Matches(metforminCtx(t)))
	assert.Equal(t, SpecificityDefault, s.Specificity())
}

func TestTabletStrategyRendersMetformin(t *testing.T) {
	s := NewTabletStrategy()
	ctx := metforminCtx(t)
	require.True(t, s.Matches(ctx))

	instr, err := s.Build(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Take 1 tablet by mouth twice daily.", instr.Text)
	require.NotNil(t, instr.Route)
	assert.Equal(t, "26643006", instr.Route.Coding[0].Code)
}

func TestTabletStrategyDoesNotMatchLiquid(t *testing.T) {
	med := mustProfile(t, profile.MedicationProfile{
		ID: "amoxicillin-susp", DoseForm: profile.DoseFormSuspension,
		Ingredients: []profile.Ingredient{{Name: "Amoxicillin", Strength: convert.StrengthRatio{
			NumeratorValue: 250, NumeratorUnit: "mg", DenominatorValue: 5, DenominatorUnit: "mL",
		}}},
	})
	ctx := &profile.MedicationRequestContext{Profile: med, Dose: profile.Dose{Value: 5, Unit: "mL"}, Frequency: "twice daily", Route: "po"}
	assert.False(t, NewTabletStrategy().Matches(ctx))
	assert.True(t, NewLiquidStrategy().Matches(ctx))
}

func TestLiquidStrategyAddsShakeWellForSuspension(t *testing.T) {
	med := mustProfile(t, profile.MedicationProfile{
		ID: "amoxicillin-susp", DoseForm: profile.DoseFormSuspension,
		Ingredients: []profile.Ingredient{{Name: "Amoxicillin", Strength: convert.StrengthRatio{
			NumeratorValue: 250, NumeratorUnit: "mg", DenominatorValue: 5, DenominatorUnit: "mL",
		}}},
	})
	ctx := &profile.MedicationRequestContext{Profile: med, Dose: profile.Dose{Value: 5, Unit: "mL"}, Frequency: "twice daily", Route: "po"}

	instr, err := NewLiquidStrategy().Build(ctx)
	require.NoError(t, err)
	require.Len(t, instr.AdditionalInstruction, 1)
	assert.Equal(t, "Shake well before use", instr.AdditionalInstruction[0].Text)
}

func TestTestosteroneCypionateStrategyMatchesByDisplayName(t *testing.T) {
	med := mustProfile(t, profile.MedicationProfile{
		ID: "test-cyp-200", DisplayName: "Testosterone Cypionate 200mg/mL", DoseForm: profile.DoseFormInjection,
		Ingredients: []profile.Ingredient{{Name: "Testosterone Cypionate", Strength: convert.StrengthRatio{
			NumeratorValue: 200, NumeratorUnit: "mg", DenominatorValue: 1, DenominatorUnit: "mL",
		}}},
	})
	ctx := &profile.MedicationRequestContext{
		Profile: med, Dose: profile.Dose{Value: 100, Unit: "mg"}, Frequency: "once weekly", Route: "intramuscularly",
	}
	s := NewTestosteroneCypionateStrategy()
	require.True(t, s.Matches(ctx))
	assert.Equal(t, SpecificityMedicationID, s.Specificity())

	instr, err := s.Build(ctx)
	require.NoError(t, err)
	assert.Contains(t, instr.Text, "100 mg")
	// 0.5 renders as the Unicode fraction glyph, matching
	// template.FormatDoseAmount's convention for every caller.
	assert.Contains(t, instr.Text, "½ mL")

	assert.False(t, NewTabletStrategy().Matches(ctx))
}

func TestRegistryRejectsDuplicateStrategyName(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(NewDefaultStrategy()))
	err := r.Register(NewDefaultStrategy())
	require.Error(t, err)
	var dupErr *common.DuplicateStrategyError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, "DefaultStrategy", dupErr.Name)
}

func TestRegistryWarnsOnSameSpecificityStrategies(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(NewTabletStrategy()))
	require.NoError(t, r.Register(NewLiquidStrategy()))
	require.Len(t, r.Warnings, 1)
}

func TestRegistryRejectsModifierPriorityConflict(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.RegisterModifier(NewTopiclickModifier()))
	err := r.RegisterModifier(stubModifier{name: "Clash", priority: NewTopiclickModifier().Priority()})
	require.Error(t, err)
	var conflictErr *common.PriorityConflictError
	require.ErrorAs(t, err, &conflictErr)
}

type stubModifier struct {
	name     string
	priority int
}

func (m stubModifier) Name() string  { return m.name }
func (m stubModifier) Priority() int { return m.priority }
func (m stubModifier) AppliesTo(*profile.MedicationRequestContext) bool { return false }
func (m stubModifier) Apply(_ *profile.MedicationRequestContext, instr profile.SignatureInstruction) (profile.SignatureInstruction, error) {
	return instr, nil
}

func TestDispatcherPicksHighestSpecificityMatch(t *testing.T) {
	r := NewDefaultRegistry()
	d := NewDispatcher(r, 10)

	instr, err := d.Dispatch(metforminCtx(t))
	require.NoError(t, err)
	assert.Equal(t, "Take 1 tablet by mouth twice daily.", instr.Text)

	log := d.AuditLog()
	require.Len(t, log, 1)
	assert.Equal(t, "TabletStrategy", log[0].Winner)
}

func TestDispatcherThrowsAmbiguousStrategyError(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(stubStrategy{name: "A", specificity: SpecificityDoseForm, match: true}))
	require.NoError(t, r.Register(stubStrategy{name: "B", specificity: SpecificityDoseForm, match: true}))
	d := NewDispatcher(r, 10)

	_, err := d.Dispatch(metforminCtx(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous")
}

func TestDispatcherThrowsNoMatchingStrategyError(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(stubStrategy{name: "A", specificity: SpecificityDoseForm, match: false}))
	d := NewDispatcher(r, 10)

	_, err := d.Dispatch(metforminCtx(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no matching strategy")
}

func TestDispatcherAppliesTopiclickModifier(t *testing.T) {
	dispenser := convert.DispenserInfo{Type: "topiclick", Unit: "click", BridgeUnit: "mL", ConversionRatio: 4}
	med := mustProfile(t, profile.MedicationProfile{
		ID: "progesterone-cream", DoseForm: profile.DoseFormCream, Dispenser: &dispenser,
		Ingredients: []profile.Ingredient{{Name: "Progesterone", Strength: convert.StrengthRatio{
			NumeratorValue: 10, NumeratorUnit: "mg", DenominatorValue: 1, DenominatorUnit: "mL",
		}}},
	})
	ctx := &profile.MedicationRequestContext{
		Profile: med, Dose: profile.Dose{Value: 4, Unit: "click"}, Frequency: "twice daily", Route: "topically",
	}

	d := NewDispatcher(NewDefaultRegistry(), 10)
	instr, err := d.Dispatch(ctx)
	require.NoError(t, err)

	found := false
	for _, ai := range instr.AdditionalInstruction {
		if ai.Text == "Prime device with 4 clicks before first use" {
			found = true
		}
	}
	assert.True(t, found)

	log := d.AuditLog()
	require.Len(t, log, 1)
	assert.Contains(t, log[0].Modifiers, "TopiclickModifier")
}

func TestPreviewAndExplainSelection(t *testing.T) {
	d := NewDispatcher(NewDefaultRegistry(), 10)
	ctx := metforminCtx(t)

	name, modifiers, err := d.Preview(ctx)
	require.NoError(t, err)
	assert.Equal(t, "TabletStrategy", name)
	assert.Contains(t, modifiers, "StrengthDisplayModifier")

	explanation := d.ExplainSelection(ctx)
	assert.Contains(t, explanation, "winner: TabletStrategy")
}

func TestGetPerformanceStatsAggregatesDurations(t *testing.T) {
	d := NewDispatcher(NewDefaultRegistry(), 10)
	for i := 0; i < 5; i++ {
		_, err := d.Dispatch(metforminCtx(t))
		require.NoError(t, err)
	}
	stats := d.GetPerformanceStats()
	assert.Equal(t, 5, stats.Count)
	assert.True(t, stats.P99 >= stats.P50)
}

// stubStrategy is a minimal Strategy used to exercise Dispatcher's
// ambiguity/no-match handling without depending on the built-ins.
type stubStrategy struct {
	name        string
	specificity Specificity
	match       bool
}

func (s stubStrategy) Name() string            { return s.name }
func (s stubStrategy) Specificity() Specificity { return s.specificity }
func (s stubStrategy) Matches(*profile.MedicationRequestContext) bool { return s.match }
func (s stubStrategy) Build(*profile.MedicationRequestContext) (profile.SignatureInstruction, error) {
	return profile.SignatureInstruction{Text: s.name}, nil
}
