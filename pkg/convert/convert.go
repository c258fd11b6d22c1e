package convert

import (
	"fmt"

	"github.com/medsig/engine/pkg/ucum"
	"github.com/shopspring/decimal"
)

// DefaultPrecision is the number of decimal places results are rounded to
// when the caller does not request a specific precision.
const DefaultPrecision = 4

// Quantity is a unit-tagged decimal amount, the input/output shape of Convert.
type Quantity struct {
	Value decimal.Decimal
	Unit  string
}

// NewQuantity builds a Quantity from a float64 convenience value.
func NewQuantity(value float64, unit string) Quantity {
	return Quantity{Value: decimal.NewFromFloat(value), Unit: unit}
}

// StrengthRatio bridges a medication's two strength units, e.g. 50 mg / 1 mL
// (medication.ingredient[0].strengthRatio).
type StrengthRatio struct {
	NumeratorValue    float64
	NumeratorUnit     string
	DenominatorValue  float64
	DenominatorUnit   string
}

// DispenserInfo describes a counted-dose dispenser (Topiclick, a metered
// spray pump, ...) in terms of how many dispenser units make up one unit of
// its bridge measure, e.g. 4 clicks = 1 mL -> {Unit: "click", BridgeUnit:
// "mL", ConversionRatio: 4}.
type DispenserInfo struct {
	Type            string
	Unit            string
	BridgeUnit      string
	ConversionRatio float64
}

// Context supplies the medication-specific bridges a conversion may need.
type Context struct {
	Strength  *StrengthRatio
	Dispenser *DispenserInfo
	Precision int // 0 means DefaultPrecision
}

func (c Context) precision() int32 {
	if c.Precision <= 0 {
		return DefaultPrecision
	}
	return int32(c.Precision)
}

// Convert converts qty to targetUnit using, in order: identity, the
// mass/volume ladder, dispenser bridging, and strength-ratio bridging.
// The result is always finite, positive, and rounded to ctx.Precision (or
// DefaultPrecision). A failed conversion returns a non-nil error; callers
// doing display augmentation must treat that as non-fatal.
func Convert(qty Quantity, targetUnit string, ctx Context) (Quantity, error) {
	if !qty.Value.IsPositive() {
		return Quantity{}, fmt.Errorf("convert: quantity must be positive, got %s", qty.Value)
	}

	if qty.Unit == targetUnit {
		return round(qty, ctx.precision()), nil
	}

	if result, ok := ladderConvert(qty, targetUnit); ok {
		return round(result, ctx.precision()), nil
	}

	if ctx.Dispenser != nil {
		if result, ok := dispenserConvert(qty, targetUnit, *ctx.Dispenser, ctx); ok {
			return round(result, ctx.precision()), nil
		}
	}

	if ctx.Strength != nil {
		if result, ok := strengthConvert(qty, targetUnit, *ctx.Strength); ok {
			return round(result, ctx.precision()), nil
		}
	}

	return Quantity{}, fmt.Errorf("convert: no conversion path from %q to %q", qty.Unit, targetUnit)
}

// ladderConvert handles the plain mass (mcg/mg/g/kg) and volume (mL/L)
// ladders via pkg/ucum's canonical-unit factors.
func ladderConvert(qty Quantity, targetUnit string) (Quantity, bool) {
	if !ucum.IsKnownUnit(qty.Unit) || !ucum.IsKnownUnit(targetUnit) {
		return Quantity{}, false
	}
	sourceCanonical := ucum.GetCanonicalUnit(qty.Unit)
	targetCanonical := ucum.GetCanonicalUnit(targetUnit)
	if sourceCanonical == "" || sourceCanonical != targetCanonical {
		return Quantity{}, false
	}

	sourceNorm := ucum.Normalize(1, qty.Unit)
	targetNorm := ucum.Normalize(1, targetUnit)
	if targetNorm.Value == 0 {
		return Quantity{}, false
	}

	factor := decimal.NewFromFloat(sourceNorm.Value / targetNorm.Value)
	return Quantity{Value: qty.Value.Mul(factor), Unit: targetUnit}, true
}

// dispenserConvert bridges a dispenser's counted unit (click, spray, ...) to
// or from its BridgeUnit, then (if the target is something other than the
// bridge unit) continues via the ladder or strength ratio.
func dispenserConvert(qty Quantity, targetUnit string, d DispenserInfo, ctx Context) (Quantity, bool) {
	ratio := decimal.NewFromFloat(d.ConversionRatio)
	if ratio.IsZero() {
		return Quantity{}, false
	}

	switch {
	case qty.Unit == d.Unit:
		bridged := Quantity{Value: qty.Value.Div(ratio), Unit: d.BridgeUnit}
		if bridged.Unit == targetUnit {
			return bridged, true
		}
		return continueConversion(bridged, targetUnit, ctx)

	case targetUnit == d.Unit:
		bridgedTarget, ok := func() (Quantity, bool) {
			if qty.Unit == d.BridgeUnit {
				return qty, true
			}
			return continueConversion(qty, d.BridgeUnit, ctx)
		}()
		if !ok {
			return Quantity{}, false
		}
		return Quantity{Value: bridgedTarget.Value.Mul(ratio), Unit: targetUnit}, true
	}

	return Quantity{}, false
}

// continueConversion retries ladder then strength-ratio bridging, used to
// chain a dispenser bridge into a further mass/volume or strength hop
// (e.g. spray -> mL -> mg).
func continueConversion(qty Quantity, targetUnit string, ctx Context) (Quantity, bool) {
	if result, ok := ladderConvert(qty, targetUnit); ok {
		return result, true
	}
	if ctx.Strength != nil {
		if result, ok := strengthConvert(qty, targetUnit, *ctx.Strength); ok {
			return result, true
		}
	}
	return Quantity{}, false
}

// strengthConvert bridges {numerator.unit}<->{denominator.unit} via the
// medication's strength ratio, e.g. 50 mg / 1 mL.
func strengthConvert(qty Quantity, targetUnit string, ratio StrengthRatio) (Quantity, bool) {
	if ratio.NumeratorValue <= 0 || ratio.DenominatorValue <= 0 {
		return Quantity{}, false
	}

	num := decimal.NewFromFloat(ratio.NumeratorValue)
	den := decimal.NewFromFloat(ratio.DenominatorValue)

	switch {
	case qty.Unit == ratio.DenominatorUnit && targetUnit == ratio.NumeratorUnit:
		// amount (denominator units) * (numerator / denominator) = numerator units
		return Quantity{Value: qty.Value.Mul(num).Div(den), Unit: targetUnit}, true
	case qty.Unit == ratio.NumeratorUnit && targetUnit == ratio.DenominatorUnit:
		return Quantity{Value: qty.Value.Mul(den).Div(num), Unit: targetUnit}, true
	default:
		return Quantity{}, false
	}
}

func round(qty Quantity, precision int32) Quantity {
	return Quantity{Value: qty.Value.Round(precision), Unit: qty.Unit}
}
