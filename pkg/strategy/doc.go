// Package strategy is the rule-based alternative to pkg/builders: instead
// of a caller driving a fluent builder through its fixed
// aspect methods, a Registry of Strategy/Modifier values is built once at
// start-up and a Dispatcher picks the most specific matching strategy for
// a given MedicationRequestContext, then folds applicable modifiers over
// its output in priority order. Use this package when a medication needs a
// bespoke rendering a generic builder kind can't express (dual-unit
// testosterone cypionate dosing, a one-off device quirk) without adding a
// ninth Kind to pkg/builders.
package strategy
