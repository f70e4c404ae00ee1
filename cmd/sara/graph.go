package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coccinelle-ai/sara/internal/presentation/graph"
)

// graphCmd prints the conversation graph as a Mermaid diagram.
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the conversation graph visualization",
	Long:  `Outputs a Mermaid diagram (graph TD) of the configured call flow.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flow, err := loadFlow(cmd)
		if err != nil {
			return err
		}
		fmt.Print(graph.GenerateMermaid(flow, nil))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
