package dayssupply

import (
	"fmt"

	"github.com/medsig/engine/pkg/common"
)

// Registry holds every registered days-supply Strategy, mirroring
// pkg/strategy.Registry's shape without a Modifier concept, since
// days-supply has none.
type Registry struct {
	strategies    []Strategy
	strategyNames map[string]bool

	// Warnings accumulates non-fatal notices, e.g. two strategies
	// registered at the same specificity level.
	Warnings []string
}

// NewRegistry returns an empty Registry ready for Register.
func NewRegistry() *Registry {
	return &Registry{strategyNames: make(map[string]bool)}
}

// Register adds a strategy. Two strategies sharing a name is a hard error;
// two at the same specificity level is allowed but recorded as a Warning.
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

// Strategies returns the registered strategies in registration order.
func (r *Registry) Strategies() []Strategy {
	return append([]Strategy(nil), r.strategies...)
}

// NewDefaultRegistry builds a Registry pre-populated with this package's
// three built-in strategies.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, s := range []Strategy{
		NewTitrationDaysSupplyStrategy(),
		NewTabletDaysSupplyStrategy(),
		NewLiquidDaysSupplyStrategy(),
	} {
		if err := r.Register(s); err != nil {
			panic(fmt.Sprintf("dayssupply: built-in registration failed: %v", err))
		}
	}
	return r
}
