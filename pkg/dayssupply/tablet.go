package dayssupply

import (
	"math"

	"github.com/medsig/engine/pkg/profile"
	"github.com/medsig/engine/pkg/strategy"
)

// TabletDaysSupplyStrategy computes days-supply for solid orals: effective
// dose in package units x doses per
// day gives daily consumption, floored into package quantity.
type TabletDaysSupplyStrategy struct{}

func NewTabletDaysSupplyStrategy() *TabletDaysSupplyStrategy { return &TabletDaysSupplyStrategy{} }

var tabletDaysSupplyDoseForms = map[profile.DoseForm]bool{
	profile.DoseFormTablet: true, profile.DoseFormCapsule: true,
	profile.DoseFormODT: true, profile.DoseFormTroche: true,
	profile.DoseFormSuppository: true,
}

func (s *TabletDaysSupplyStrategy) Name() string { return "TabletDaysSupplyStrategy" }
func (s *TabletDaysSupplyStrategy) Specificity() strategy.Specificity {
	return strategy.SpecificityDoseForm
}
func (s *TabletDaysSupplyStrategy) Matches(ctx Context) bool {
	return ctx.Medication != nil && tabletDaysSupplyDoseForms[ctx.Medication.DoseForm]
}
func (s *TabletDaysSupplyStrategy) Calculate(ctx Context) (Result, error) {
	if ctx.PackageQuantity == 0 {
		return Result{CalculationMethod: s.Name(), Confidence: 0.5, Warnings: []string{"package quantity is zero"}}, nil
	}

	effectiveDose, usedFallback, err := effectiveDoseInPackageUnits(ctx)
	if err != nil {
		return Result{}, err
	}

	dosesPerDay, timingResult := dosesPerDayFromTiming(ctx.Timing)
	consumptionPerDay := effectiveDose * dosesPerDay

	var warnings []string
	if warn := scoringWarning(ctx.Medication, ctx.DoseAmount); warn != "" {
		warnings = append(warnings, warn)
	}

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
