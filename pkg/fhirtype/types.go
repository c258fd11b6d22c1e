package fhirtype

// Quantity is the FHIR R4 Quantity data type: a measured amount with a
// UCUM-coded unit.
type Quantity struct {
	Value  float64 `json:"value"`
	Unit   string  `json:"unit,omitempty"`
	System string  `json:"system,omitempty"`
	Code   string  `json:"code,omitempty"`
}

// NewQuantity builds a UCUM-coded Quantity.
func NewQuantity(value float64, unit string) Quantity {
	return Quantity{Value: value, Unit: unit, System: "http://unitsofmeasure.org", Code: unit}
}

// Ratio is the FHIR R4 Ratio data type, used for strength ratios and
// maxDosePerPeriod.
type Ratio struct {
	Numerator   Quantity `json:"numerator"`
	Denominator Quantity `json:"denominator"`
}

// Range is the FHIR R4 Range data type, used for dose ranges.
type Range struct {
	Low  Quantity `json:"low"`
	High Quantity `json:"high"`
}

// Duration is the FHIR R4 Duration data type.
type Duration struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// Coding is a single coded value within a CodeableConcept.
type Coding struct {
	System  string `json:"system,omitempty"`
	Code    string `json:"code,omitempty"`
	Display string `json:"display,omitempty"`
}

// CodeableConcept is a value drawn from a coded system, with optional text.
type CodeableConcept struct {
	Coding []Coding `json:"coding,omitempty"`
	Text   string   `json:"text,omitempty"`
}

// NewSnomedConcept builds a CodeableConcept with a single SNOMED CT coding.
func NewSnomedConcept(code, display string) CodeableConcept {
	return CodeableConcept{
		Coding: []Coding{{System: "http://snomed.info/sct", Code: code, Display: display}},
		Text:   display,
	}
}

// Annotation is free-text or coded additional instruction text.
type Annotation struct {
	Text string `json:"text"`
}
