package strategy

import "github.com/medsig/engine/pkg/profile"

// Specificity ranks how narrowly a strategy matches a context.
// Dispatch always prefers the highest-specificity match.
type Specificity int

const (
	SpecificityDefault Specificity = iota
	SpecificityDoseForm
	SpecificityDoseFormAndIngredient
	SpecificityMedicationID
	SpecificityMedicationSKU
)

func (s Specificity) String() string {
	switch s {
	case SpecificityDefault:
		return "DEFAULT"
	case SpecificityDoseForm:
		return "DOSE_FORM"
	case SpecificityDoseFormAndIngredient:
		return "DOSE_FORM_AND_INGREDIENT"
	case SpecificityMedicationID:
		return "MEDICATION_ID"
	case SpecificityMedicationSKU:
		return "MEDICATION_SKU"
	default:
		return "UNKNOWN"
	}
}

// Strategy builds a FHIR Dosage directly from a context, bypassing
// pkg/builders' fluent contract entirely.
type Strategy interface {
	Name() string
	Specificity() Specificity
	Matches(ctx *profile.MedicationRequestContext) bool
	Build(ctx *profile.MedicationRequestContext) (profile.SignatureInstruction, error)
}

// Modifier decorates an instruction a Strategy already built. Modifiers
// execute in ascending-priority order and never run before a base
// strategy has produced an instruction.
type Modifier interface {
	Name() string
	Priority() int
	AppliesTo(ctx *profile.MedicationRequestContext) bool
	Apply(ctx *profile.MedicationRequestContext, instr profile.SignatureInstruction) (profile.SignatureInstruction, error)
}
