package fhirtype

// RelationshipType classifies how one instruction in a titration/phased
// sequence relates to the next.
type RelationshipType string

const (
	RelationshipSequential RelationshipType = "SEQUENTIAL"
	RelationshipConcurrent RelationshipType = "CONCURRENT"
	RelationshipConditional RelationshipType = "CONDITIONAL"
)

// Relationship links one SignatureInstruction to another, used for tapering
// phases and conditional regimens.
type Relationship struct {
	Type      RelationshipType `json:"type"`
	TargetID  string           `json:"targetId,omitempty"`
	Condition string           `json:"condition,omitempty"`
}

// DoseAndRate carries exactly one of DoseQuantity or DoseRange, matching
// FHIR R4 Dosage.doseAndRate.
type DoseAndRate struct {
	Type         *CodeableConcept `json:"type,omitempty"`
	DoseQuantity *Quantity        `json:"doseQuantity,omitempty"`
	DoseRange    *Range           `json:"doseRange,omitempty"`
}

// AsNeeded is present iff the dosage is PRN; it distinguishes a bare boolean
// asNeeded from a coded asNeededFor condition (value[x] in the FHIR spec).
type AsNeeded struct {
	Boolean *bool            `json:"asNeededBoolean,omitempty"`
	For     *CodeableConcept `json:"asNeededFor,omitempty"`
}

// Dosage is the FHIR R4 Dosage-shaped output this engine produces. Exactly
// one of DoseAndRate[i].DoseQuantity/DoseRange is set per element.
type Dosage struct {
	Sequence              int               `json:"sequence,omitempty"`
	Text                  string            `json:"text"`
	AdditionalInstruction []CodeableConcept `json:"additionalInstruction,omitempty"`
	Timing                *Timing           `json:"timing,omitempty"`
	*AsNeeded
	Route            *CodeableConcept `json:"route,omitempty"`
	DoseAndRate      []DoseAndRate    `json:"doseAndRate,omitempty"`
	MaxDosePerPeriod *Ratio           `json:"maxDosePerPeriod,omitempty"`
	Relationship     *Relationship    `json:"relationship,omitempty"`
	Phase            string           `json:"phase,omitempty"`
}

// HasDoseQuantity reports whether the first doseAndRate entry is a single
// quantity (as opposed to a range).
func (d *Dosage) HasDoseQuantity() bool {
	return len(d.DoseAndRate) > 0 && d.DoseAndRate[0].DoseQuantity != nil
}

// HasDoseRange reports whether the first doseAndRate entry is a range.
func (d *Dosage) HasDoseRange() bool {
	return len(d.DoseAndRate) > 0 && d.DoseAndRate[0].DoseRange != nil
}
