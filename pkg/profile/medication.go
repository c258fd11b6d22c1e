package profile

import (
	"fmt"

	"github.com/medsig/engine/pkg/convert"
)

// Classification is MedicationProfile's top-level kind.
type Classification string

const (
	ClassificationMedication Classification = "medication"
	ClassificationSupplement Classification = "supplement"
	ClassificationCompound   Classification = "compound"
)

// DoseForm is restricted to a closed set of known dose forms.
type DoseForm string

const (
	DoseFormTablet      DoseForm = "tablet"
	DoseFormCapsule     DoseForm = "capsule"
	DoseFormODT         DoseForm = "odt"
	DoseFormTroche      DoseForm = "troche"
	DoseFormSolution    DoseForm = "solution"
	DoseFormSuspension  DoseForm = "suspension"
	DoseFormSyrup       DoseForm = "syrup"
	DoseFormElixir      DoseForm = "elixir"
	DoseFormInjection   DoseForm = "injection"
	DoseFormVial        DoseForm = "vial"
	DoseFormCream       DoseForm = "cream"
	DoseFormGel         DoseForm = "gel"
	DoseFormOintment    DoseForm = "ointment"
	DoseFormPatch       DoseForm = "patch"
	DoseFormSuppository DoseForm = "suppository"
	DoseFormInhaler     DoseForm = "inhaler"
	DoseFormNasalSpray  DoseForm = "nasal spray"
	DoseFormDrops       DoseForm = "drops"
)

var validDoseForms = map[DoseForm]bool{
	DoseFormTablet: true, DoseFormCapsule: true, DoseFormODT: true, DoseFormTroche: true,
	DoseFormSolution: true, DoseFormSuspension: true, DoseFormSyrup: true, DoseFormElixir: true,
	DoseFormInjection: true, DoseFormVial: true, DoseFormCream: true, DoseFormGel: true,
	DoseFormOintment: true, DoseFormPatch: true, DoseFormSuppository: true, DoseFormInhaler: true,
	DoseFormNasalSpray: true, DoseFormDrops: true,
}

// countableDoseForms are dispensed as discrete units (tablets, clicks, ...)
// rather than measured as mass/volume.
var countableDoseForms = map[DoseForm]bool{
	DoseFormTablet: true, DoseFormCapsule: true, DoseFormODT: true, DoseFormTroche: true,
	DoseFormSuppository: true,
}

// Scoring restricts which fractional doses a solid dose form permits.
type Scoring string

const (
	ScoringNone    Scoring = "NONE"
	ScoringHalf    Scoring = "HALF"
	ScoringQuarter Scoring = "QUARTER"
)

var validScorings = map[Scoring]bool{ScoringNone: true, ScoringHalf: true, ScoringQuarter: true}

// Ingredient is one constituent of a (possibly compound) medication.
type Ingredient struct {
	Name     string
	Strength convert.StrengthRatio
}

// DosageConstraints bounds a single dose and per-period dose.
type DosageConstraints struct {
	MinSingleDose  *float64
	MaxSingleDose  *float64
	MaxPerPeriod   *convert.StrengthRatio // numerator = max amount, denominator = period
}

// PackageInfo describes a dispensed package.
type PackageInfo struct {
	Quantity float64
	Unit     string
	PackSize float64
}

// MedicationProfile is the immutable descriptor for a medication,
// supplement, or compound.
type MedicationProfile struct {
	ID             string
	DisplayName    string
	Classification Classification
	DoseForm       DoseForm
	Ingredients    []Ingredient
	Scoring        Scoring
	Dispenser      *convert.DispenserInfo
	Constraints    *DosageConstraints
	Package        *PackageInfo
	EligibleGenders []string
	RouteWhitelist  []string
	RequiresSlowTaper bool
}

// NewMedicationProfile validates and constructs a MedicationProfile,
// enforcing its invariants: at least one ingredient, every
// ingredient's strength ratio strictly positive, dose form in the closed
// set, and scoring (if set) one of the three recognized values.
func NewMedicationProfile(p MedicationProfile) (*MedicationProfile, error) {
	if p.ID == "" {
		return nil, fmt.Errorf("profile: id is required")
	}
	if !validDoseForms[p.DoseForm] {
		return nil, fmt.Errorf("profile: unrecognized dose form %q", p.DoseForm)
	}
	if len(p.Ingredients) == 0 {
		return nil, fmt.Errorf("profile: at least one ingredient is required")
	}
	for _, ing := range p.Ingredients {
		if ing.Strength.NumeratorValue <= 0 || ing.Strength.DenominatorValue <= 0 {
			return nil, fmt.Errorf("profile: ingredient %q strength ratio must be strictly positive", ing.Name)
		}
	}
	if p.Scoring != "" && !validScorings[p.Scoring] {
		return nil, fmt.Errorf("profile: unrecognized scoring %q", p.Scoring)
	}
	out := p
	return &out, nil
}

// IsCountable reports whether the profile's dose form is dispensed as
// discrete units (tablet, capsule, ...) rather than measured volume/mass.
func (p *MedicationProfile) IsCountable() bool {
	return countableDoseForms[p.DoseForm]
}

// PrimaryStrength returns the first ingredient's strength ratio, the
// common case for single-ingredient medications.
func (p *MedicationProfile) PrimaryStrength() convert.StrengthRatio {
	if len(p.Ingredients) == 0 {
		return convert.StrengthRatio{}
	}
	return p.Ingredients[0].Strength
}
