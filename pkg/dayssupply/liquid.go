package dayssupply

import (
	"math"

	"github.com/medsig/engine/pkg/strategy"
)

// LiquidDaysSupplyStrategy computes days-supply for any non-countable dose
// form: identical shape to the tablet calculation, but
// effectiveDoseInPackageUnits' conversion routinely
// crosses a weight<->volume boundary (concentration) or bridges a
// dispenser's counted unit (Topiclick clicks) on the way there.
type LiquidDaysSupplyStrategy struct{}

func NewLiquidDaysSupplyStrategy() *LiquidDaysSupplyStrategy { return &LiquidDaysSupplyStrategy{} }

// smallVolumeThresholdML is the precision-warning cutoff.
const smallVolumeThresholdML = 0.1

func (s *LiquidDaysSupplyStrategy) Name() string { return "LiquidDaysSupplyStrategy" }
func (s *LiquidDaysSupplyStrategy) Specificity() strategy.Specificity {
	return strategy.SpecificityDoseForm
}
func (s *LiquidDaysSupplyStrategy) Matches(ctx Context) bool {
	return ctx.Medication != nil && !ctx.Medication.IsCountable()
}
func (s *LiquidDaysSupplyStrategy) Calculate(ctx Context) (Result, error) {
	if ctx.PackageQuantity == 0 {
		return Result{CalculationMethod: s.Name(), Confidence: 0.5, Warnings: []string{"package quantity is zero"}}, nil
	}

	effectiveDose, usedFallback, err := effectiveDoseInPackageUnits(ctx)
	if err != nil {
		return Result{}, err
	}

	var warnings []string
	if effectiveDose > 0 && effectiveDose < smallVolumeThresholdML && ctx.PackageUnit == "mL" {
		warnings = append(warnings, "dose converts to less than 0.1 mL; days-supply precision is reduced at this volume")
	}

	dosesPerDay, timingResult := dosesPerDayFromTiming(ctx.Timing)
	consumptionPerDay := effectiveDose * dosesPerDay
	if consumptionPerDay <= 0 {
		warnings = append(warnings, "unable to determine consumption per day from the supplied timing")
		return Result{CalculationMethod: s.Name(), Confidence: 0.5, Warnings: warnings}, nil
	}

	confidence := 0.9
	if usedFallback || timingResult.Confidence < 0.9 {
		confidence = 0.7
	}

	return Result{
		DaysSupply:        int(math.Floor(ctx.PackageQuantity / consumptionPerDay)),
		CalculationMethod: s.Name(),
		Confidence:        confidence,
		Warnings:          warnings,
	}, nil
}
