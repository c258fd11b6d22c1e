package builders

import "github.com/medsig/engine/pkg/fhirtype"

// textsToCodeableConcepts renders free-text additional instructions as
// FHIR CodeableConcepts with only Text set.
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

func quantityPtr(q fhirtype.Quantity) *fhirtype.Quantity {
	return &q
}
