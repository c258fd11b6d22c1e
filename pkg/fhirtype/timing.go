package fhirtype

// PeriodUnit is a UCUM time-unit code restricted to FHIR Timing.repeat's
// allowed set.
type PeriodUnit string

const (
	PeriodUnitSecond PeriodUnit = "s"
	PeriodUnitMinute PeriodUnit = "min"
	PeriodUnitHour   PeriodUnit = "h"
	PeriodUnitDay    PeriodUnit = "d"
	PeriodUnitWeek   PeriodUnit = "wk"
	PeriodUnitMonth  PeriodUnit = "mo"
	PeriodUnitYear   PeriodUnit = "a"
)

// TimingRepeat is the FHIR R4 Timing.repeat element, restricted to the
// fields the signature engine produces or consumes.
type TimingRepeat struct {
	Frequency      float64     `json:"frequency"`
	FrequencyMax   float64     `json:"frequencyMax,omitempty"`
	Period         float64     `json:"period"`
	PeriodMax      float64     `json:"periodMax,omitempty"`
	PeriodUnit     PeriodUnit  `json:"periodUnit"`
	When           []string    `json:"when,omitempty"`
	Count          int         `json:"count,omitempty"`
	BoundsDuration *Duration   `json:"boundsDuration,omitempty"`
}

// Timing is the FHIR R4 Timing data type.
type Timing struct {
	Repeat TimingRepeat `json:"repeat"`
	Code   *CodeableConcept `json:"code,omitempty"`
}
