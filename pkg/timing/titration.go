package timing

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/medsig/engine/pkg/fhirtype"
)

// Phase is one parsed segment of a titration schedule. It mirrors the
// TitrationPhase entity's timing-related fields; dose amounts are supplied
// by the caller (e.g. pkg/builders' TaperingDoseBuilder) since the
// temporal parser only ever sees timing text.
type Phase struct {
	Raw           string
	Timing        fhirtype.Timing
	IsMaintenance bool
	Confidence    float64
	SequenceIndex int
}

var (
	weekRange  = regexp.MustCompile(`(?i)week\s+(\d+)\s*-\s*(\d+)`)
	weekPlus   = regexp.MustCompile(`(?i)week\s+(\d+)\s*\+`)
	dayRange   = regexp.MustCompile(`(?i)day\s+(\d+)\s*-\s*(\d+)`)
	dayPlus    = regexp.MustCompile(`(?i)day\s+(\d+)\s*\+`)
	titrationKeyword = regexp.MustCompile(`(?i)\b(then|increase|titrate|escalate)\b`)

	// splitBeforeWeek matches a comma immediately preceding "week N", used
	// as a phase-split boundary; "week N" is captured so splitPhases can
	// keep it with the following segment.
	splitBeforeWeek = regexp.MustCompile(`(?i),\s*(week\s+\d+)`)
	splitThen       = regexp.MustCompile(`(?i)\s*(?:,\s*then|;\s*then|\bthen\b)\s*`)
)

// isTitrationString reports whether a single frequency string describes a
// titration sequence.
func isTitrationString(s string) bool {
	return weekRange.MatchString(s) || weekPlus.MatchString(s) ||
		dayRange.MatchString(s) || dayPlus.MatchString(s) ||
		titrationKeyword.MatchString(s)
}

// splitPhases splits a titration string on "then"/", then"/"; then", ".",
// and commas immediately preceding "week N". Empty segments are discarded;
// order is preserved.
func splitPhases(s string) []string {
	s = splitBeforeWeek.ReplaceAllString(s, "|$1")
	s = splitThen.ReplaceAllString(s, "|")
	s = strings.ReplaceAll(s, ".", "|")

	var phases []string
	for _, part := range strings.Split(s, "|") {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			phases = append(phases, trimmed)
		}
	}
	return phases
}

// parsePhase extracts the week/day range (if any), a frequency, and builds
// the resulting fhirtype.Timing for one phase string. Confidence follows
// the frequency match; the week/day range only contributes
// boundsDuration and the maintenance flag.
func parsePhase(raw string, index int) Phase {
	boundsDuration, isMaintenance := parsePhaseBounds(raw)

	freqMatch, ok := parseFrequency(raw)
	if !ok {
		freqMatch = fallbackFrequency()
	}
	repeat := freqMatch.repeat
	repeat.BoundsDuration = boundsDuration
	if boundsDuration != nil {
		repeat.Count = int(repeat.Frequency * boundsDuration.Value)
	}

	return Phase{
		Raw:           raw,
		Timing:        fhirtype.Timing{Repeat: repeat},
		IsMaintenance: isMaintenance,
		Confidence:    freqMatch.confidence,
		SequenceIndex: index,
	}
}

// parsePhaseBounds extracts a week/day range into a boundsDuration. A
// "Week X+" or "Day X+" phase is the maintenance phase: duration is
// unbounded, so boundsDuration stays nil.
func parsePhaseBounds(raw string) (boundsDuration *fhirtype.Duration, isMaintenance bool) {
	if m := weekRange.FindStringSubmatch(raw); m != nil {
		start, _ := strconv.Atoi(m[1])
		end, _ := strconv.Atoi(m[2])
		return &fhirtype.Duration{Value: float64(end - start + 1), Unit: "wk"}, false
	}
	if weekPlus.MatchString(raw) {
		return nil, true
	}
	if m := dayRange.FindStringSubmatch(raw); m != nil {
		start, _ := strconv.Atoi(m[1])
		end, _ := strconv.Atoi(m[2])
		return &fhirtype.Duration{Value: float64(end - start + 1), Unit: "d"}, false
	}
	if dayPlus.MatchString(raw) {
		return nil, true
	}
	return nil, false
}
