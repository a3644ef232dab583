package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/avrlabs/cattleport/internal/backend"
	"github.com/avrlabs/cattleport/internal/config"
	"github.com/avrlabs/cattleport/internal/logging"
	"github.com/avrlabs/cattleport/internal/portal"
	"github.com/avrlabs/cattleport/internal/session"
	"github.com/avrlabs/cattleport/internal/tui"
)

type uiFlags struct {
	configPath string
	mode       string
	baseURL    string
	logLevel   string
	logFile    string
}

func newUICmd() *cobra.Command {
	flags := &uiFlags{}
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the cattle portal",
		Long: `Launch the interactive portal TUI.

Mock mode simulates every backend effect locally, including the fixed
test OTP; live mode talks to a running portal API.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(flags)
		},
	}

	cmd.Flags().StringVar(&flags.configPath, "config", "", "Path to a YAML config file")
	cmd.Flags().StringVar(&flags.mode, "mode", "", "Backend mode: mock or live (overrides config)")
	cmd.Flags().StringVar(&flags.baseURL, "base-url", "", "Portal API base URL (overrides config)")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "", "Log level: silent, error, info, verbose, debug")
	cmd.Flags().StringVar(&flags.logFile, "log-file", "", "Write logs to this file")

	return cmd
}

func runUI(flags *uiFlags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(logging.ParseLevel(cfg.Log.Level), cfg.Log.File)
	if err != nil {
		return err
	}
	defer logger.Close()

	logger.LogStartup(string(cfg.Mode), cfg.API.BaseURL, flags.configPath)

	b, err := buildBackend(cfg, logger)
	if err != nil {
		return err
	}

	ctrl := portal.New(session.New(), b, logger, cfg.Mode == config.ModeMock)
	return tui.Run(ctrl, logger)
}

// loadConfig resolves the effective configuration: file (or defaults), then
// flag overrides, then a final validation pass.
func loadConfig(flags *uiFlags) (*config.Config, error) {
	var cfg *config.Config
	if flags.configPath != "" {
		loaded, err := config.LoadConfig(flags.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = config.DefaultConfig()
	}

	if flags.mode != "" {
		cfg.Mode = config.Mode(flags.mode)
	}
	if flags.baseURL != "" {
		cfg.API.BaseURL = flags.baseURL
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if flags.logFile != "" {
		cfg.Log.File = flags.logFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildBackend(cfg *config.Config, logger *logging.Logger) (backend.Backend, error) {
	if cfg.Mode == config.ModeLive {
		return backend.NewHTTP(cfg.API.BaseURL, time.Duration(cfg.API.TimeoutSec)*time.Second, logger)
	}
	return backend.NewMock(backend.MockOptions{
		OTP:            cfg.Mock.OTP,
		ResendCooldown: time.Duration(cfg.Mock.ResendCooldownSec) * time.Second,
		VerifyDelay:    time.Duration(cfg.Mock.VerifyDelayMs) * time.Millisecond,
		PredictDelay:   time.Duration(cfg.Mock.PredictDelayMs) * time.Millisecond,
	}), nil
}

func newValidateConfigCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "validate-config",
		Short: "Validate a config file and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Config OK: mode=%s", cfg.Mode)
			if cfg.Mode == config.ModeLive {
				fmt.Fprintf(os.Stdout, " api=%s", cfg.API.BaseURL)
			}
			fmt.Fprintln(os.Stdout)
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	return cmd
}
