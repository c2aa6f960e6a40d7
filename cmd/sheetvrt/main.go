// Package main provides the CLI entry point for sheetvrt.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetvrt-go/pkg/sheetvrt"
	"github.com/ukaji3/sheetvrt-go/pkg/sheetvrt/config"
	"github.com/ukaji3/sheetvrt-go/pkg/sheetvrt/logging"
)

var (
	configPath string
	logLevel   string
	logFormat  string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sheetvrt",
		Short: "Expose spreadsheet sheets as OGR virtual layers",
		Long: `sheetvrt writes OGR VRT descriptors for spreadsheet sheets, inferring
field types and optionally building point geometry from two columns.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text, json")

	rootCmd.AddCommand(newBuildCmd(), newPreviewCmd(), newSheetsCmd(), newInspectCmd())
	return rootCmd
}

// setup loads configuration, installs the logger and returns a session.
func setup(cmd *cobra.Command) (*sheetvrt.Session, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFormat != "" {
		cfg.Logging.Format = logFormat
	}

	logger := logging.Setup(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
	cmd.SetContext(logging.WithLogger(cmd.Context(), logger))

	policies, err := cfg.Policies()
	if err != nil {
		return nil, err
	}

	b := sheetvrt.NewBuilder(sheetvrt.Options{
		Policies:       policies,
		SampleRows:     cfg.Build.SampleRows,
		SQLPointCompat: cfg.Build.SQLPointCompat,
		Logger:         logger,
		Notify: func(sev sheetvrt.Severity, msg string) {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", sev, msg)
		},
	})
	return sheetvrt.NewSession(b), nil
}

// openInput validates and opens the input file.
func openInput(cmd *cobra.Command, s *sheetvrt.Session, path string) error {
	logger := logging.FromContext(cmd.Context())

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", path)
	}
	if err := s.Open(path); err != nil {
		return fmt.Errorf("open failed: %w", err)
	}

	logger.Debug("input opened", "path", path, "driver", s.Driver(), "sheets", len(s.Sheets()))
	return nil
}
