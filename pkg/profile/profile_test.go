package profile

import (
	"testing"

	"github.com/medsig/engine/pkg/convert"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProfile() MedicationProfile {
	return MedicationProfile{
		ID: "med-1", DisplayName: "Metformin 500mg", DoseForm: DoseFormTablet,
		Classification: ClassificationMedication,
		Ingredients: []Ingredient{
			{Name: "Metformin", Strength: convert.StrengthRatio{
				NumeratorValue: 500, NumeratorUnit: "mg", DenominatorValue: 1, DenominatorUnit: "tablet",
			}},
		},
		Scoring: ScoringNone,
	}
}

func TestNewMedicationProfileValid(t *testing.T) {
	p, err := NewMedicationProfile(validProfile())
	require.NoError(t, err)
	assert.True(t, p.IsCountable())
}

func TestNewMedicationProfileRejectsUnknownDoseForm(t *testing.T) {
	bad := validProfile()
	bad.DoseForm = "powder"
	_, err := NewMedicationProfile(bad)
	assert.Error(t, err)
}

func TestNewMedicationProfileRejectsNoIngredients(t *testing.T) {
	bad := validProfile()
	bad.Ingredients = nil
	_, err := NewMedicationProfile(bad)
	assert.Error(t, err)
}

func TestNewMedicationProfileRejectsNonPositiveStrength(t *testing.T) {
	bad := validProfile()
	bad.Ingredients[0].Strength.NumeratorValue = 0
	_, err := NewMedicationProfile(bad)
	assert.Error(t, err)
}

func TestMedicationRequestContextValidate(t *testing.T) {
	p, err := NewMedicationProfile(validProfile())
	require.NoError(t, err)

	ctx := &MedicationRequestContext{
		RequestID: "req-1",
		Profile:   p,
		Dose:      Dose{Value: 1, Unit: "tablet"},
		Route:     "Orally",
		Frequency: "twice daily",
	}
	assert.NoError(t, ctx.Validate())
}

func TestMedicationRequestContextRejectsNonPositiveDose(t *testing.T) {
	p, _ := NewMedicationProfile(validProfile())
	ctx := &MedicationRequestContext{Profile: p, Dose: Dose{Value: 0, Unit: "tablet"}}
	assert.Error(t, ctx.Validate())
}

func TestSnapshotIsIndependentCopy(t *testing.T) {
	p, _ := NewMedicationProfile(validProfile())
	ctx := &MedicationRequestContext{
		RequestID: "req-1", Profile: p, Dose: Dose{Value: 1, Unit: "tablet"},
	}
	snap := ctx.Snapshot()
	snap.RequestID = "mutated"
	assert.Equal(t, "req-1", ctx.RequestID)
	assert.Equal(t, "mutated", snap.RequestID)
}
