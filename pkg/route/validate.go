package route

import (
	"fmt"
	"strings"
)

// Result is the validation outcome: isValid/errors/warnings plus,
// on a no-match, suggestedRoutes computed via Levenshtein distance.
type Result struct {
	IsValid         bool
	Errors          []string
	Warnings        []string
	SuggestedRoutes []string
	Canonical       string
	Metadata        *Metadata
}

// Validate canonicalizes routeInput and, when doseForm is non-empty, checks
// route/dose-form compatibility. An unrecognized dose form produces a
// warning, not a failure, since the dose form vocabulary is open-ended.
func Validate(routeInput, doseForm string) Result {
	name, ok := Canonicalize(routeInput)
	if !ok {
		return Result{
			IsValid:         false,
			Errors:          []string{fmt.Sprintf("%q is not a recognized administration route", routeInput)},
			SuggestedRoutes: SuggestRoutes(routeInput, 2, 5),
		}
	}

	meta, _ := Lookup(name)
	result := Result{IsValid: true, Canonical: name, Metadata: &meta}

	doseForm = strings.TrimSpace(strings.ToLower(doseForm))
	if doseForm == "" {
		return result
	}

	if len(meta.ApplicableDoseForms) == 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("route %q has no known applicable dose forms on record", name))
		return result
	}

	for _, form := range meta.ApplicableDoseForms {
		if form == doseForm {
			return result
		}
	}
	result.Warnings = append(result.Warnings, fmt.Sprintf("dose form %q is not typically administered via route %q", doseForm, name))
	return result
}
