package route

import (
	"sort"
	"strings"
)

// Metadata is the canonical descriptor for an administration route: an id,
// the FHIR coding system's code, applicable dose forms, and whether special
// instructions are typically required for this route.
type Metadata struct {
	ID                          string
	SnomedCode                  string
	FHIRCode                    string
	Display                     string
	ApplicableDoseForms         []string
	RequiresSpecialInstructions bool
}

var canonical = map[string]Metadata{
	"Orally": {
		ID: "oral", SnomedCode: "26643006", FHIRCode: "PO", Display: "Orally",
		ApplicableDoseForms: []string{"tablet", "capsule", "odt", "troche", "solution", "suspension", "syrup", "elixir"},
	},
	"Sublingually": {
		ID: "sublingual", SnomedCode: "37839007", FHIRCode: "SL", Display: "Sublingually",
		ApplicableDoseForms: []string{"tablet", "odt", "troche"},
	},
	"Buccally": {
		ID: "buccal", SnomedCode: "54485002", FHIRCode: "BUCCAL", Display: "Buccally",
		ApplicableDoseForms: []string{"tablet", "troche"},
	},
	"Intramuscularly": {
		ID: "im", SnomedCode: "78421000", FHIRCode: "IM", Display: "Intramuscularly",
		ApplicableDoseForms: []string{"injection", "vial"}, RequiresSpecialInstructions: true,
	},
	"Subcutaneously": {
		ID: "subq", SnomedCode: "34206005", FHIRCode: "SC", Display: "Subcutaneously",
		ApplicableDoseForms: []string{"injection", "vial"}, RequiresSpecialInstructions: true,
	},
	"Intravenously": {
		ID: "iv", SnomedCode: "47625008", FHIRCode: "IV", Display: "Intravenously",
		ApplicableDoseForms: []string{"injection", "vial"}, RequiresSpecialInstructions: true,
	},
	"Topically": {
		ID: "topical", SnomedCode: "6064005", FHIRCode: "TOPICAL", Display: "Topically",
		ApplicableDoseForms: []string{"cream", "gel", "ointment"},
	},
	"Transdermally": {
		ID: "transdermal", SnomedCode: "45890007", FHIRCode: "TD", Display: "Transdermally",
		ApplicableDoseForms: []string{"patch"},
	},
	"Rectally": {
		ID: "rectal", SnomedCode: "37161004", FHIRCode: "PR", Display: "Rectally",
		ApplicableDoseForms: []string{"suppository"},
	},
	"By Inhalation": {
		ID: "inhalation", SnomedCode: "447694001", FHIRCode: "IH", Display: "By inhalation",
		ApplicableDoseForms: []string{"inhaler"}, RequiresSpecialInstructions: true,
	},
	"Intranasally": {
		ID: "nasal", SnomedCode: "46713006", FHIRCode: "NASINHLC", Display: "Intranasally",
		ApplicableDoseForms: []string{"nasal spray", "drops"}, RequiresSpecialInstructions: true,
	},
	"In the Eye": {
		ID: "ophthalmic", SnomedCode: "54485002", FHIRCode: "OPTHALM", Display: "In the eye",
		ApplicableDoseForms: []string{"drops"},
	},
	"In the Ear": {
		ID: "otic", SnomedCode: "10547007", FHIRCode: "AURICULAR", Display: "In the ear",
		ApplicableDoseForms: []string{"drops"},
	},
}

// aliases maps a lower-cased free-form route string to its canonical name.
// At least 30 aliases; extendable at runtime via LoadAliasOverrides.
var aliases = map[string]string{
	"po": "Orally", "oral": "Orally", "by mouth": "Orally", "orally": "Orally",
	"sl": "Sublingually", "sublingual": "Sublingually", "under the tongue": "Sublingually",
	"buccal": "Buccally", "buccally": "Buccally", "in the cheek": "Buccally",
	"im": "Intramuscularly", "intramuscular": "Intramuscularly", "intramuscularly": "Intramuscularly",
	"subq": "Subcutaneously", "sub-q": "Subcutaneously", "sc": "Subcutaneously",
	"subcutaneous": "Subcutaneously", "subcutaneously": "Subcutaneously", "subcut": "Subcutaneously",
	"iv": "Intravenously", "intravenous": "Intravenously", "intravenously": "Intravenously",
	"topical": "Topically", "topically": "Topically", "on the skin": "Topically",
	"transdermal": "Transdermally", "transdermally": "Transdermally", "patch": "Transdermally",
	"pr": "Rectally", "rectal": "Rectally", "rectally": "Rectally",
	"inh": "By Inhalation", "inhaled": "By Inhalation", "by inhalation": "By Inhalation", "inhalation": "By Inhalation",
	"nasal": "Intranasally", "intranasal": "Intranasally", "intranasally": "Intranasally", "nasally": "Intranasally",
	"ophthalmic": "In the Eye", "in the eye": "In the Eye", "eye": "In the Eye", "od": "In the Eye",
	"otic": "In the Ear", "in the ear": "In the Ear", "ear": "In the Ear",
}

// Canonicalize resolves a free-form route string to its canonical name.
// Matching is case-insensitive and whitespace-trimmed.
func Canonicalize(input string) (string, bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", false
	}
	if _, ok := canonical[trimmed]; ok {
		return trimmed, true
	}
	if name, ok := aliases[strings.ToLower(trimmed)]; ok {
		return name, true
	}
	return "", false
}

// Lookup returns the canonical metadata for an already-canonicalized route name.
func Lookup(canonicalName string) (Metadata, bool) {
	m, ok := canonical[canonicalName]
	return m, ok
}

// CanonicalNames returns every registered canonical route name, stably sorted.
func CanonicalNames() []string {
	names := make([]string, 0, len(canonical))
	for name := range canonical {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterAlias adds or overrides a single alias -> canonical route mapping.
// canonicalName must already be a registered canonical route.
func RegisterAlias(alias, canonicalName string) error {
	if _, ok := canonical[canonicalName]; !ok {
		return errUnknownCanonicalRoute(canonicalName)
	}
	aliases[strings.ToLower(strings.TrimSpace(alias))] = canonicalName
	return nil
}
