package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/medsig/engine/pkg/dayssupply"
)

func newDaysSupplyCmd(state *cliState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dayssupply [request.json]",
		Short: "Compute days-supply for a dispensed package",
		Long: `Compute days-supply from a JSON-encoded days-supply request: a
package quantity/unit, a dose amount/unit, a timing, and the dispensed
medication (and, for a titration schedule, its per-phase doses).

Example:
  medsig dayssupply request.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx, err := readDaysSupplyContext(args[0])
			if err != nil {
				return err
			}

			registry := dayssupply.NewDefaultRegistry()
			dispatcher := dayssupply.NewDispatcher(registry, state.cfg.AuditCapacity)
			dispatcher.Logger = &state.logger

			result, err := dispatcher.Calculate(*ctx)
			if err != nil {
				return fmt.Errorf("calculate: %w", err)
			}

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal result: %w", err)
			}
			fmt.Println(string(out))
			return nil
		},
	}
	return cmd
}
