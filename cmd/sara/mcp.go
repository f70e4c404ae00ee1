package main

import (
	"github.com/spf13/cobra"

	"github.com/coccinelle-ai/sara/pkg/adapters/mcp"
	"github.com/coccinelle-ai/sara/pkg/domain"
	"github.com/coccinelle-ai/sara/pkg/session"
)

// mcpCmd exposes Sara over the Model Context Protocol.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Exposes the call as MCP tools (sara_start_call, sara_reply,
sara_hangup) on stdio, or over SSE with --port.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(cmd)

		engine, err := newEngine(cmd, logger, domain.LifecycleHooks{})
		if err != nil {
			return err
		}
		gateway := newGateway(logger)

		store, closeStore, err := newStore(logger)
		if err != nil {
			return err
		}
		defer closeStore()

		srv := mcp.NewServer(engine, gateway, session.NewManager(store, session.WithLogger(logger)))

		if port, _ := cmd.Flags().GetInt("port"); port > 0 {
			return srv.ServeSSE(cmd.Context(), port)
		}
		return srv.ServeStdio()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().Int("port", 0, "Serve over SSE on this port instead of stdio")
}
