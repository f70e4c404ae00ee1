package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/coccinelle-ai/sara/pkg/observability"
	"github.com/coccinelle-ai/sara/pkg/session"

	httpadapter "github.com/coccinelle-ai/sara/pkg/adapters/http"
	redisadapter "github.com/coccinelle-ai/sara/pkg/adapters/redis"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the call server",
	Long: `Starts the HTTP server hosting calls as durable sessions, with
prometheus metrics on /metrics. With a redis store configured, any replica
can take the next turn of any call.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(cmd)
		port, _ := cmd.Flags().GetString("port")

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())
		metrics := observability.NewMetrics(reg)

		engine, err := newEngine(cmd, logger, metrics.Hooks())
		if err != nil {
			return err
		}
		gateway := newGateway(logger)

		store, closeStore, err := newStore(logger)
		if err != nil {
			return err
		}
		defer closeStore()

		sessionOpts := []session.Option{session.WithLogger(logger)}
		if redisStore, ok := store.(*redisadapter.Store); ok {
			sessionOpts = append(sessionOpts, session.WithLocker(redisadapter.NewLocker(redisStore.Client())))
		}
		sessions := session.NewManager(store, sessionOpts...)

		callServer := httpadapter.NewServer(engine, gateway, sessions,
			httpadapter.WithLogger(logger),
		)

		router := chi.NewRouter()
		router.Mount("/", callServer)
		router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: router,
		}

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("sara server listening", "addr", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.Info("shutting down", "signal", sig.String())

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "err", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("could not stop server: %w", err)
				}
			}
			logger.Info("sara server stopped")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
}
