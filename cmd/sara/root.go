package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/coccinelle-ai/sara"
	"github.com/coccinelle-ai/sara/internal/logging"
	"github.com/coccinelle-ai/sara/pkg/adapters/memory"
	"github.com/coccinelle-ai/sara/pkg/adapters/redis"
	"github.com/coccinelle-ai/sara/pkg/booking"
	"github.com/coccinelle-ai/sara/pkg/domain"
	"github.com/coccinelle-ai/sara/pkg/graphio"
	"github.com/coccinelle-ai/sara/pkg/observability"
	"github.com/coccinelle-ai/sara/pkg/ports"

	httpadapter "github.com/coccinelle-ai/sara/pkg/adapters/http"
)

// Environment keys for backend and store configuration, usually via .env.
const (
	envBackendURL    = "SARA_BACKEND_URL"
	envBackendSecret = "SARA_BACKEND_SECRET"
	envRedisAddr     = "SARA_REDIS_ADDR"
)

var rootCmd = &cobra.Command{
	Use:   "sara",
	Short: "Sara is a voice appointment-booking assistant",
	Long: `Sara walks callers through booking an appointment: she checks
availability, offers time slots, collects contact details and creates the
appointment through the booking backend.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env")
		if err := godotenv.Load(envFile); err != nil && cmd.Flags().Changed("env") {
			return fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("flow", "", "Flow file (YAML); built-in booking flow when omitted")
	rootCmd.PersistentFlags().String("env", ".env", "Env file with backend configuration")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	return logging.New(level)
}

// loadFlow returns the configured conversation graph.
func loadFlow(cmd *cobra.Command) (*domain.Graph, error) {
	path, _ := cmd.Flags().GetString("flow")
	if path == "" {
		return booking.Flow(), nil
	}
	g, err := graphio.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load flow %s: %w", path, err)
	}
	return g, nil
}

func newEngine(cmd *cobra.Command, logger *slog.Logger, hooks domain.LifecycleHooks) (*sara.Engine, error) {
	flow, err := loadFlow(cmd)
	if err != nil {
		return nil, err
	}
	return sara.New(flow,
		sara.WithLogger(logger),
		sara.WithHooks(observability.Combine(hooks, observability.LogHooks(logger))),
	)
}

// newGateway targets the real backend when SARA_BACKEND_URL is set and
// falls back to the scripted in-memory gateway otherwise.
func newGateway(logger *slog.Logger) ports.ToolGateway {
	if url := os.Getenv(envBackendURL); url != "" {
		logger.Info("using booking backend", "url", url)
		return httpadapter.NewGateway(url, httpadapter.WithSecret(os.Getenv(envBackendSecret)))
	}
	logger.Warn("no backend configured, using in-memory availability")
	return memory.NewGateway()
}

// newStore returns the redis store when SARA_REDIS_ADDR is set, otherwise
// an in-memory one. The caller owns the returned closer.
func newStore(logger *slog.Logger) (ports.StateStore, func(), error) {
	if addr := os.Getenv(envRedisAddr); addr != "" {
		logger.Info("using redis store", "addr", addr)
		store := redis.New(addr, "", 0)
		return store, func() { _ = store.Close() }, nil
	}
	return memory.NewStore(), func() {}, nil
}
