package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/onboard"
	"github.com/aretw0/onboard/internal/config"
	"github.com/aretw0/onboard/internal/logging"
	"github.com/aretw0/onboard/pkg/domain"
	"github.com/aretw0/onboard/pkg/ports"
	"github.com/aretw0/onboard/pkg/registration"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Onboard runs the staged registration form",
	Long: `Onboard validates a three-stage registration form (identity, account,
credentials) and exposes it over HTTP, MCP or an interactive terminal wizard.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "onboard.yaml", "Path to the configuration file (YAML or JSON)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (overrides config)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json (overrides config)")
}

// loadConfig reads the configuration file and applies flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.Log.Level = v
	}
	if v, _ := cmd.Flags().GetString("log-format"); v != "" {
		cfg.Log.Format = v
	}
	return cfg, nil
}

func newLogger(cfg config.Config) *slog.Logger {
	return logging.NewWithFormat(os.Stderr, logging.ParseLevel(cfg.Log.Level), logging.Format(cfg.Log.Format))
}

// logSubmissions is the submission handler of the bundled binaries: accepted
// registrations are logged, never stored.
func logSubmissions(logger *slog.Logger) ports.SubmissionHandler {
	return ports.SubmissionHandlerFunc(func(ctx context.Context, state *domain.State, record map[string]any) error {
		rec, err := registration.Decode(record)
		if err != nil {
			return err
		}
		logger.InfoContext(ctx, "registration accepted",
			"session_id", state.SessionID,
			"email", rec.Email,
			"account_type", rec.AccountType,
			"risk_tolerance", rec.RiskTolerance,
		)
		return nil
	})
}

// newEngine builds the engine shared by every command.
func newEngine(logger *slog.Logger, opts ...onboard.Option) (*onboard.Engine, error) {
	base := []onboard.Option{
		onboard.WithLogger(logger),
		onboard.WithSubmissionHandler(logSubmissions(logger)),
	}
	engine, err := onboard.New(append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize engine: %w", err)
	}
	return engine, nil
}
