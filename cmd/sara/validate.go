package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// validateCmd checks a flow file without starting anything.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the flow for consistency",
	Long: `Loads the flow file and reports structural problems: missing edges,
unreachable nodes, cycles, duplicate IDs or incomplete tool definitions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flow, err := loadFlow(cmd)
		if err != nil {
			return err
		}
		fmt.Printf("Flow %q is valid: %d nodes from %s\n", flow.Name(), len(flow.Nodes()), flow.Start().ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
