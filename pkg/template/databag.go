package template

import (
	"fmt"
	"strings"
)

// DataBag is the parameter set a template renders. All text fields arrive
// pre-formatted (pluralized, fractioned, verb-selected): the template
// itself only arranges them into a sentence.
type DataBag struct {
	Verb          string
	Dose          string
	RouteText     string
	FrequencyText string
	AsNeeded      bool
	Trailer       string
}

// routeTextByCanonical maps a canonical route name to the adverbial phrase a
// sentence needs, e.g. "Orally" -> "by mouth", "Topically" -> "topically".
var routeTextByCanonical = map[string]string{
	"Orally":          "by mouth",
	"Sublingually":    "sublingually",
	"Buccally":        "buccally",
	"Intramuscularly": "intramuscularly",
	"Subcutaneously":  "subcutaneously",
	"Intravenously":   "intravenously",
	"Topically":       "topically",
	"Transdermally":   "transdermally",
	"Rectally":        "rectally",
	"By Inhalation":   "by inhalation",
	"Intranasally":    "intranasally",
	"In the Eye":      "in the eye",
	"In the Ear":      "in the ear",
}

// RouteText resolves a canonical route to its sentence phrase, falling
// back to a lower-cased form of the route name itself.
func RouteText(canonicalRoute string) string {
	if text, ok := routeTextByCanonical[canonicalRoute]; ok {
		return text
	}
	return strings.ToLower(canonicalRoute)
}

var verbByDoseForm = map[string]string{
	"tablet":      "Take",
	"capsule":     "Take",
	"odt":         "Take",
	"solution":    "Take",
	"suspension":  "Take",
	"syrup":       "Take",
	"elixir":      "Take",
	"troche":      "Place",
	"cream":       "Apply",
	"gel":         "Apply",
	"ointment":    "Apply",
	"patch":       "Apply",
	"injection":   "Inject",
	"vial":        "Inject",
	"inhaler":     "Inhale",
	"suppository": "Insert",
	"drops":       "Instill",
	"nasal spray": "Instill",
}

// SelectVerb picks the administration verb for a dose form from a fixed
// verb set: Take/Apply/Inject/Inhale/Insert/Instill/Place/Infuse.
// Route "Intravenously" overrides an injection/vial dose form to "Infuse",
// since an IV dose is infused rather than injected.
func SelectVerb(doseForm, canonicalRoute string) string {
	doseForm = strings.ToLower(doseForm)
	if canonicalRoute == "Intravenously" && (doseForm == "injection" || doseForm == "vial") {
		return "Infuse"
	}
	if verb, ok := verbByDoseForm[doseForm]; ok {
		return verb
	}
	return "Take"
}

// fractionGlyphs maps quarter-resolution fractional amounts to their
// Unicode glyph.
var fractionGlyphs = map[float64]string{
	0.25: "¼",
	0.5:  "½",
	0.75: "¾",
}

// unitsNeverPluralized are abbreviation-style units that read the same in
// singular and plural (mg, mL, ...).
var unitsNeverPluralized = map[string]bool{
	"mg": true, "mcg": true, "g": true, "kg": true,
	"mL": true, "L": true, "mg/mL": true,
}

// FormatDoseAmount renders a numeric amount as a sentence fragment,
// substituting a Unicode fraction glyph for exact quarter/half/three-
// quarter amounts below 1, and pluralizing unit appropriately otherwise.
func FormatDoseAmount(amount float64, unit string) string {
	if glyph, ok := fractionGlyphs[amount]; ok {
		return fmt.Sprintf("%s %s", glyph, unit)
	}

	formatted := formatNumber(amount)
	return fmt.Sprintf("%s %s", formatted, Pluralize(unit, amount))
}

// Pluralize appends "s" to countable units when amount != 1; abbreviation
// units (mg, mL, ...) are left unchanged.
func Pluralize(unit string, amount float64) string {
	if unitsNeverPluralized[unit] {
		return unit
	}
	if amount == 1 {
		return unit
	}
	if strings.HasSuffix(unit, "s") {
		return unit
	}
	return unit + "s"
}

func formatNumber(v float64) string {
	s := fmt.Sprintf("%.4f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return s
}
