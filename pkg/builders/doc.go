// Package builders implements the Builder family: a small
// shared core state struct (Builder) plus orthogonal aspect configuration
// (scoring, dispenser bridging, range dosing, tapering), composed rather
// than chained through an inheritance hierarchy — a single Kind picks
// which aspects a concrete constructor (NewSimpleTabletBuilder,
// NewTopiclickBuilder, ...) turns on.
//
// Every builder shares the same fluent contract — BuildDose, BuildTiming,
// BuildRoute, BuildConstraints, BuildAsNeeded, BuildSpecialInstructions,
// GetResult, Explain, ToJSON — the same shape a generated-per-resource
// fluent builder would have, generalized here from one builder per FHIR
// resource to one hand-written builder per dose-form/regimen class.
package builders
