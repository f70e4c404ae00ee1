package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coccinelle-ai/sara/internal/presentation/tui"
	"github.com/coccinelle-ai/sara/pkg/domain"
	"github.com/coccinelle-ai/sara/pkg/runner"
)

// runCmd hosts an interactive call on stdin/stdout.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Take a call interactively in the terminal",
	Long: `Starts a call on stdin/stdout: Sara speaks, you answer. Type "exit"
or "au revoir" to hang up.`,
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

		plain, _ := cmd.Flags().GetBool("plain")
		maxRetries, _ := cmd.Flags().GetInt("max-retries")

		opts := []runner.Option{
			runner.WithStore(store),
			runner.WithLogger(logger),
			runner.WithMaxPromptRetries(maxRetries),
		}
		if !plain {
			tui.PrintBanner()
			opts = append(opts, runner.WithRenderer(tui.NewRenderer()))
		}

		r := runner.New(engine, gateway, opts...)
		st, err := r.Run(cmd.Context(), "")
		switch {
		case errors.Is(err, runner.ErrHangup):
			fmt.Println("Au revoir !")
			return nil
		case errors.Is(err, runner.ErrTooManyAttempts):
			fmt.Println("Je n'ai pas réussi à vous comprendre. Au revoir !")
			return nil
		case err != nil:
			return err
		}

		logger.Info("call complete", "session_id", st.SessionID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("plain", false, "Disable the banner and markdown rendering")
	runCmd.Flags().Int("max-retries", 0, "Give up after N invalid answers at one question (0 = never)")

	// Running sara with no subcommand starts a call.
	rootCmd.RunE = runCmd.RunE
}
