package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/medsig/engine/pkg/strategy"
)

func newSignCmd(state *cliState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign [request.json]",
		Short: "Build a medication administration instruction from a request file",
		Long: `Build a FHIR R4 Dosage-shaped signature instruction from a JSON-encoded
medication request.

Example:
  medsig sign request.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx, err := readRequestContext(args[0])
			if err != nil {
				return err
			}

			registry := strategy.NewDefaultRegistry()
			dispatcher := strategy.NewDispatcher(registry, state.cfg.AuditCapacity)
			dispatcher.Logger = &state.logger

			instruction, err := dispatcher.Dispatch(ctx)
			if err != nil {
				return fmt.Errorf("dispatch: %w", err)
			}

			out, err := json.MarshalIndent(instruction, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal result: %w", err)
			}
			fmt.Println(string(out))
			return nil
		},
	}
	return cmd
}
