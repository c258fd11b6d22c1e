package dayssupply

import (
	"math"

	"github.com/medsig/engine/pkg/common"
	"github.com/medsig/engine/pkg/fhirtype"
	"github.com/medsig/engine/pkg/profile"
	"github.com/medsig/engine/pkg/strategy"
	"github.com/medsig/engine/pkg/timing"
)

// TitrationDaysSupplyStrategy computes days-supply across a multi-phase
// titration schedule: sum each non-maintenance phase's consumption, then
// extend the maintenance phase for whatever package quantity remains.
type TitrationDaysSupplyStrategy struct{}

func NewTitrationDaysSupplyStrategy() *TitrationDaysSupplyStrategy {
	return &TitrationDaysSupplyStrategy{}
}

func (s *TitrationDaysSupplyStrategy) Name() string { return "TitrationDaysSupplyStrategy" }
func (s *TitrationDaysSupplyStrategy) Specificity() strategy.Specificity {
	return strategy.SpecificityDoseFormAndIngredient
}

// Matches reports whether ctx describes a titration schedule, either
// because phase data was supplied directly or because its raw Timing
// parses as one.
func (s *TitrationDaysSupplyStrategy) Matches(ctx Context) bool {
	if len(ctx.Phases) > 0 {
		return true
	}
	return timing.Parse(ctx.Timing).IsTitration
}

// durationInDays converts a phase duration into days. Only "wk" and "d"
// ever appear in a parsed titration phase (pkg/timing's parsePhaseBounds),
// so this is a narrower duplicate of pkg/timing's own periodInDays rather
// than a shared export.
func durationInDays(d fhirtype.Duration) float64 {
	switch d.Unit {
	case "wk":
		return d.Value * 7
	case "d":
		return d.Value
	default:
		return d.Value
	}
}

func (s *TitrationDaysSupplyStrategy) Calculate(ctx Context) (Result, error) {
	if ctx.PackageQuantity == 0 {
		return Result{CalculationMethod: s.Name(), Confidence: 0.5, Warnings: []string{"package quantity is zero"}}, nil
	}
	if len(ctx.Phases) == 0 {
		return Result{}, common.NewValidationError("phases", "titration days-supply requires the per-phase dose schedule")
	}

	var (
		breakdown            []PhaseBreakdown
		titrationConsumption float64
		titrationDays        float64
		maintenance          *profile.TitrationPhase
		warnings             []string
		lowConfidence        bool
	)

	for i := range ctx.Phases {
		phase := ctx.Phases[i]
		if phase.IsMaintenancePhase {
			if maintenance == nil {
				maintenance = &ctx.Phases[i]
			}
			continue
		}

		durationDays := durationInDays(phase.Duration)
		dosesPerDay := timing.DosesPerPeriod(phase.Timing, fhirtype.PeriodUnitDay, 1)
		dosesInPhase := dosesPerDay * durationDays
		totalConsumption := dosesInPhase * phase.DoseAmount

		titrationConsumption += totalConsumption
		titrationDays += durationDays
		breakdown = append(breakdown, PhaseBreakdown{
			SequenceIndex: phase.SequenceIndex, DosesInPhase: dosesInPhase,
			TotalConsumption: totalConsumption, PhaseDurationDays: durationDays,
		})
		if dosesPerDay <= 0 {
			lowConfidence = true
		}
	}

	remaining := ctx.PackageQuantity - titrationConsumption
	if remaining < 0 {
		return partialTitrationFit(s.Name(), ctx.PackageQuantity, breakdown), nil
	}

	var additionalDays float64
	if maintenance == nil {
		warnings = append(warnings, "no maintenance phase was supplied; days-supply reflects titration phases only")
	} else {
		maintenanceDosesPerDay := timing.DosesPerPeriod(maintenance.Timing, fhirtype.PeriodUnitDay, 1)
		maintenanceConsumptionPerDay := maintenanceDosesPerDay * maintenance.DoseAmount
		if maintenanceConsumptionPerDay > 0 {
			additionalDays = math.Floor(remaining / maintenanceConsumptionPerDay)
		} else {
			warnings = append(warnings, "maintenance phase consumption per day could not be determined")
			lowConfidence = true
		}
	}

	confidence := 0.9
	if lowConfidence {
		confidence = 0.7
	}

	return Result{
		DaysSupply:        int(math.Floor(titrationDays)) + int(additionalDays),
		CalculationMethod: s.Name(),
		Breakdown:         breakdown,
		Confidence:        confidence,
		Warnings:          warnings,
	}, nil
}

// partialTitrationFit handles the "package quantity insufficient to
// complete the titration schedule" boundary: it returns
// days-supply for however many whole non-maintenance phases fit within
// packageQuantity, plus the partial days a package that runs out mid-phase
// still covers, and a warning.
func partialTitrationFit(method string, packageQuantity float64, breakdown []PhaseBreakdown) Result {
	var usedQuantity, fitDays float64
	var fitBreakdown []PhaseBreakdown

	for _, pb := range breakdown {
		remainingCapacity := packageQuantity - usedQuantity
		if pb.TotalConsumption <= remainingCapacity {
			usedQuantity += pb.TotalConsumption
			fitDays += pb.PhaseDurationDays
			fitBreakdown = append(fitBreakdown, pb)
			continue
		}
		if pb.DosesInPhase > 0 {
			consumptionPerDay := pb.TotalConsumption / pb.PhaseDurationDays
			if consumptionPerDay > 0 {
				fitDays += math.Floor(remainingCapacity / consumptionPerDay)
			}
		}
		break
	}

	return Result{
		DaysSupply:        int(math.Floor(fitDays)),
		CalculationMethod: method,
		Breakdown:         fitBreakdown,
		Confidence:        0.5,
		Warnings:          []string{"package quantity is insufficient to complete the titration schedule"},
	}
}
