package dayssupply

import (
	"fmt"
	"math"
	"strings"

	"github.com/medsig/engine/pkg/common"
	"github.com/medsig/engine/pkg/convert"
	"github.com/medsig/engine/pkg/fhirtype"
	"github.com/medsig/engine/pkg/profile"
	"github.com/medsig/engine/pkg/timing"
	"github.com/medsig/engine/pkg/ucum"
)

// normalizeCountUnit strips a trailing plural "s" from a countable
// dose-form unit ("tablets" -> "tablet"), leaving abbreviation-style units
// (mg, mL, ...) untouched since they never pluralize.
func normalizeCountUnit(unit string) string {
	if strings.HasSuffix(unit, "s") {
		singular := strings.TrimSuffix(unit, "s")
		if ucum.IsCountUnit(strings.ToLower(singular)) {
			return singular
		}
	}
	return unit
}

// isMultipleOf reports whether fraction is a whole-number multiple of step,
// mirroring pkg/builders/dose.go's scoring check.
func isMultipleOf(fraction, step float64) bool {
	const epsilon = 1e-9
	ratio := fraction / step
	rounded := math.Floor(ratio + 0.5)
	return math.Abs(ratio-rounded) < epsilon
}

// scoringWarning reports an uncommon fractional dose count against the
// medication's scoring rule, or "" if none applies.
func scoringWarning(med *profile.MedicationProfile, doseAmount float64) string {
	if med == nil || med.Scoring == "" {
		return ""
	}
	fraction := doseAmount - math.Floor(doseAmount)
	if fraction == 0 {
		return ""
	}
	switch med.Scoring {
	case profile.ScoringNone:
		return fmt.Sprintf("dose amount %v includes a fraction, but this medication's scoring is NONE", doseAmount)
	case profile.ScoringHalf:
		if !isMultipleOf(fraction, 0.5) {
			return fmt.Sprintf("dose amount %v is not a half-tablet multiple, but this medication is only half-scored", doseAmount)
		}
	case profile.ScoringQuarter:
		if !isMultipleOf(fraction, 0.25) {
			return fmt.Sprintf("dose amount %v is not a quarter-tablet multiple, but this medication is only quarter-scored", doseAmount)
		}
	}
	return ""
}

// effectiveDoseInPackageUnits converts ctx's dose into the package's unit
// via the medication's dispenser and/or strength-ratio bridges when the two
// units differ — concentration conversions, or bridging Topiclick clicks
// (÷4) — reporting whether a fallback conversion was used so the caller can
// downgrade confidence.
func effectiveDoseInPackageUnits(ctx Context) (amount float64, usedFallback bool, err error) {
	doseUnit := normalizeCountUnit(ctx.DoseUnit)
	packageUnit := normalizeCountUnit(ctx.PackageUnit)
	if doseUnit == packageUnit {
		return ctx.DoseAmount, false, nil
	}
	if ctx.Medication == nil {
		return 0, false, common.NewInternalError("doseUnit", "dose unit differs from package unit and no medication was supplied to bridge them")
	}
	strength := ctx.Medication.PrimaryStrength()
	convCtx := convert.Context{Strength: &strength, Dispenser: ctx.Medication.Dispenser}
	converted, convErr := convert.Convert(convert.NewQuantity(ctx.DoseAmount, doseUnit), packageUnit, convCtx)
	if convErr != nil {
		return 0, false, common.NewInternalError("doseUnit", fmt.Sprintf("no conversion path from %q to %q", doseUnit, packageUnit))
	}
	return converted.Value.InexactFloat64(), true, nil
}

// dosesPerDayFromTiming parses ctx.Timing and converts its repeat pattern
// into a doses-per-day rate, returning the parsed
// timing.Result alongside so callers can fold its confidence in.
func dosesPerDayFromTiming(rawTiming any) (dosesPerDay float64, result timing.Result) {
	result = timing.Parse(rawTiming)
	if result.Timing == nil {
		return 0, result
	}
	return timing.DosesPerPeriod(*result.Timing, fhirtype.PeriodUnitDay, 1), result
}
