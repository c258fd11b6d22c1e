package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/medsig/engine/pkg/route"
)

func newRouteCmd() *cobra.Command {
	var doseForm string
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "route [route]",
		Short: "Validate and canonicalize an administration route",
		Long: `Validate a route string against the canonical route registry, optionally
checking it against a dose form's typically applicable routes.

Examples:
  medsig route "by mouth"
  medsig route "PO" --dose-form tablet
  medsig route "oral" --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			result := route.Validate(args[0], doseForm)

			if outputFormat == "json" {
				out, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal result: %w", err)
				}
				fmt.Println(string(out))
				return nil
			}

			if !result.IsValid {
				fmt.Printf("invalid: %v\n", result.Errors)
				if len(result.SuggestedRoutes) > 0 {
					fmt.Printf("did you mean: %v\n", result.SuggestedRoutes)
				}
				return nil
			}
			fmt.Printf("canonical: %s\n", result.Canonical)
			for _, w := range result.Warnings {
				fmt.Printf("warning: %s\n", w)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&doseForm, "dose-form", "", "dose form to check route compatibility against")
	cmd.Flags().StringVarP(&outputFormat, "output", "o", "text", "output format (text, json)")

	return cmd
}
