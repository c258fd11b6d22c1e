package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/medsig/engine/pkg/strategy"
)

func newStrategyCmd(state *cliState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strategy",
		Short: "Inspect strategy dispatch",
	}
	cmd.AddCommand(newStrategyExplainCmd(state))
	return cmd
}

func newStrategyExplainCmd(state *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "explain [request.json]",
		Short: "Trace which strategy and modifiers would handle a request",
		Long: `Print the dispatch trace for a request without building a signature:
which strategy matched at which specificity, any ambiguity among
same-specificity candidates, and which modifiers would apply.

Example:
  medsig strategy explain request.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx, err := readRequestContext(args[0])
			if err != nil {
				return err
			}

			registry := strategy.NewDefaultRegistry()
			dispatcher := strategy.NewDispatcher(registry, state.cfg.AuditCapacity)

			fmt.Println(dispatcher.ExplainSelection(ctx))
			return nil
		},
	}
}
