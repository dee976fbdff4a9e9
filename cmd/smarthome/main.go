package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"smarthome-bridge/internal/adapters/output/homeassistant"
	"smarthome-bridge/internal/adapters/output/persistence"
	"smarthome-bridge/internal/config"
	"smarthome-bridge/internal/domain/model"
	"smarthome-bridge/internal/domain/service"
	"smarthome-bridge/internal/logging"
)

var Commit string

// app holds what PersistentPreRunE builds for every subcommand.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	hub    *homeassistant.Client
	home   *service.SmartHomeService
}

var (
	configFile string
	logLevel   string
	the        app
)

func main() {
	Execute()
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "smarthome",
	Short:         "Control smart-home devices from a local store or Home Assistant",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if skipSetup(cmd) {
			return nil
		}
		return setup(cmd.Context())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if the.logger != nil {
			_ = the.logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "YAML config file (default $CONFIG_FILE)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log_level")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(Commit)
	},
}

// skipSetup reports commands that never touch the store or the hub.
func skipSetup(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case versionCmd.Name(), "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return true
		}
	}
	return false
}

func setup(ctx context.Context) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	logger.Debug("using config", zap.Any("config", cfg.Redacted()))

	store, err := persistence.Open(ctx, cfg.DataPath, logger)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	hub := homeassistant.NewClient(cfg.HomeAssistant.URL, cfg.HomeAssistant.Token, cfg.HomeAssistant.Timeout, logger)
	if cfg.UseHomeAssistant && !cfg.HomeAssistantConfigured() {
		logger.Warn("use_home_assistant is set but home_assistant.url or home_assistant.token is empty")
	}
	backend := service.SelectBackend(cfg.UseHomeAssistant, hub, store, logger)

	the = app{
		cfg:    cfg,
		logger: logger,
		hub:    hub,
		home:   service.NewSmartHomeService(backend, logger),
	}
	logger.Info("backend selected", zap.String("backend", backend.Name()))
	return nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var (
	errNotFound     = errors.New("not found")
	errTypeMismatch = errors.New("operation not supported by this device")
)

// printResult prints the value of an Ok result and turns every other outcome
// into an error naming id.
func printResult[T any](id string, r model.Result[T]) error {
	switch r.Outcome {
	case model.OutcomeOK:
		return printJSON(r.Value)
	case model.OutcomeNotFound:
		return fmt.Errorf("%s: %w", id, errNotFound)
	case model.OutcomeTypeMismatch:
		return fmt.Errorf("%s: %w", id, errTypeMismatch)
	default:
		return fmt.Errorf("%s: %w", id, r.Err)
	}
}
