package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httpadapter "smarthome-bridge/internal/adapters/input/http"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the REST API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := the.logger

		if the.cfg.UseHomeAssistant && the.cfg.HomeAssistantConfigured() {
			if ok, err := the.hub.TestConnection(cmd.Context()); err != nil || !ok {
				log.Warn("Home Assistant not reachable yet", zap.Error(err))
			}
		}

		server := httpadapter.NewServer(the.home, the.hub, log, the.cfg.HTTP.Log).HTTPServer(the.cfg.HTTP.Port)

		done := make(chan struct{})
		go gracefulShutdown(server, log, done)

		log.Info("http server listening", zap.String("addr", server.Addr), zap.String("backend", the.home.Backend()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		<-done
		log.Info("graceful shutdown complete")
		return nil
	},
}

func gracefulShutdown(server *http.Server, log *zap.Logger, done chan<- struct{}) {
	defer close(done)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info("shutting down gracefully, press Ctrl+C again to force")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}
}
