package strategy

import (
	"fmt"

	"github.com/medsig/engine/pkg/common"
)

// Registry holds every registered Strategy/Modifier as an immutable value:
// it is built once at start-up via Register/RegisterModifier and then only
// read by a Dispatcher; it is not safe to mutate concurrently with
// dispatch; registration is allowed at start-up only.
type Registry struct {
	strategies         []Strategy
	modifiers          []Modifier
	strategyNames      map[string]bool
	modifierPriorities map[int]string

	// Warnings accumulates non-fatal notices, e.g. two base strategies
	// registered at the same specificity level, surfaced here rather than
	// logged directly since pkg/... library code never logs on its own
	// initiative.
	Warnings []string
}

// NewRegistry returns an empty Registry ready for Register/RegisterModifier.
func NewRegistry() *Registry {
	return &Registry{
		strategyNames:      make(map[string]bool),
		modifierPriorities: make(map[int]string),
	}
}

// Register adds a base strategy. Registering two strategies under the same
// name is a hard error (DuplicateStrategyError); registering two at the
// same specificity level is allowed but recorded as a Warning, since
// ambiguity is only fatal at dispatch time if both actually match a
// context.
func (r *Registry) Register(s Strategy) error {
	if r.strategyNames[s.Name()] {
		return &common.DuplicateStrategyError{Name: s.Name()}
	}
	for _, existing := range r.strategies {
		if existing.Specificity() == s.Specificity() {
			r.Warnings = append(r.Warnings, fmt.Sprintf(
				"strategy %q registered at the same specificity (%s) as %q",
				s.Name(), s.Specificity(), existing.Name()))
		}
	}
	r.strategyNames[s.Name()] = true
	r.strategies = append(r.strategies, s)
	return nil
}

// RegisterModifier adds a modifier. Two modifiers sharing a priority is a
// hard error (PriorityConflictError): modifier ordering is load-bearing
// so a tie can't be broken silently.
func (r *Registry) RegisterModifier(m Modifier) error {
	if existing, ok := r.modifierPriorities[m.Priority()]; ok {
		return &common.PriorityConflictError{Priority: m.Priority(), Existing: existing, New: m.Name()}
	}
	r.modifierPriorities[m.Priority()] = m.Name()
	r.modifiers = append(r.modifiers, m)
	return nil
}

// Strategies returns the registered base strategies in registration order.
func (r *Registry) Strategies() []Strategy {
	return append([]Strategy(nil), r.strategies...)
}

// Modifiers returns the registered modifiers in registration order (not
// priority order; a Dispatcher sorts by priority at dispatch time).
func (r *Registry) Modifiers() []Modifier {
	return append([]Modifier(nil), r.modifiers...)
}

// NewDefaultRegistry builds a Registry pre-populated with this package's
// built-in strategies and modifiers.
// Panics only if the built-ins themselves collide, which would be a
// programming error in this package, not a caller mistake.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, s := range []Strategy{
		NewDefaultStrategy(),
		NewTabletStrategy(),
		NewLiquidStrategy(),
		NewTestosteroneCypionateStrategy(),
	} {
		if err := r.Register(s); err != nil {
			panic(fmt.Sprintf("strategy: built-in registration failed: %v", err))
		}
	}
	for _, m := range []Modifier{
		NewTopiclickModifier(),
		NewStrengthDisplayModifier(),
	} {
		if err := r.RegisterModifier(m); err != nil {
			panic(fmt.Sprintf("strategy: built-in modifier registration failed: %v", err))
		}
	}
	return r
}
