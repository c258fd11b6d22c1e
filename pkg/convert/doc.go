// Package convert is the Unit Converter: it converts a
// quantity from a source unit to a target unit by trying, in order,
// same-unit identity, the plain mass/volume ladders in pkg/ucum,
// dispenser-ratio bridging (e.g. Topiclick clicks, metered sprays), and
// medication strength-ratio bridging.
//
// Conversion failure (unrelated units, missing strength ratio) is returned
// as an explicit, non-fatal error: callers doing display augmentation
// (e.g. "1 mL (= 50 mg)") are expected to degrade gracefully rather than
// treat it as fatal.
//
// The strength-ratio and dispenser-ratio bridging rules are grounded on
// pkg/ucum's canonicalUnits ladder-and-factor pattern, generalized here
// from a fixed ladder to a caller-supplied bridge.
package convert
