package timing

import "github.com/medsig/engine/pkg/fhirtype"

// Result is the Temporal Parser's output.
type Result struct {
	Timing      *fhirtype.Timing
	Timings     []fhirtype.Timing
	IsTitration bool
	Phases      []Phase
	Confidence  float64
	Warnings    []string
}

// Parse accepts a string, a []string, or an already-structured
// fhirtype.Timing/*fhirtype.Timing and produces a Result. Any other input
// type is reported as a warning with confidence 0, per the "on exception"
// rule.
func Parse(input any) Result {
	switch v := input.(type) {
	case fhirtype.Timing:
		return Result{Timing: &v, Confidence: 1.0}
	case *fhirtype.Timing:
		if v == nil {
			return Result{Warnings: []string{"timing: nil structured Timing"}, Confidence: 0}
		}
		return Result{Timing: v, Confidence: 1.0}
	case []string:
		return parseTitrationArray(v)
	case string:
		return parseString(v)
	default:
		return Result{Warnings: []string{"timing: unsupported input type"}, Confidence: 0}
	}
}

func parseString(s string) Result {
	if !isTitrationString(s) {
		freqMatch, ok := parseFrequency(s)
		if !ok {
			freqMatch = fallbackFrequency()
		}
		t := fhirtype.Timing{Repeat: freqMatch.repeat}
		return Result{Timing: &t, Confidence: freqMatch.confidence}
	}

	rawPhases := splitPhases(s)
	if len(rawPhases) == 0 {
		return Result{Warnings: []string{"timing: titration string produced no phases"}, Confidence: 0}
	}
	return buildTitrationResult(rawPhases)
}

func parseTitrationArray(items []string) Result {
	if len(items) == 0 {
		return Result{Warnings: []string{"timing: empty titration array"}, Confidence: 0}
	}
	// Only length >= 2 is *always* titration; single-element arrays are
	// parsed as one non-titration timing for simplicity.
	if len(items) == 1 {
		return parseString(items[0])
	}
	return buildTitrationResult(items)
}

func buildTitrationResult(rawPhases []string) Result {
	phases := make([]Phase, 0, len(rawPhases))
	timings := make([]fhirtype.Timing, 0, len(rawPhases))
	var warnings []string
	maintenanceCount := 0

	for i, raw := range rawPhases {
		phase := parsePhase(raw, i)
		if phase.IsMaintenance {
			maintenanceCount++
		}
		phases = append(phases, phase)
		timings = append(timings, phase.Timing)
	}

	if maintenanceCount == 0 {
		warnings = append(warnings, "timing: titration sequence has no maintenance phase")
	} else if maintenanceCount > 1 {
		warnings = append(warnings, "timing: titration sequence has more than one maintenance phase")
	} else if !phases[len(phases)-1].IsMaintenance {
		warnings = append(warnings, "timing: maintenance phase is not the last phase")
	}

	return Result{
		Timings:     timings,
		IsTitration: true,
		Phases:      phases,
		Confidence:  0.85,
		Warnings:    warnings,
	}
}
