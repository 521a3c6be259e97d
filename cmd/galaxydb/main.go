package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wrenholt/galaxydb/internal/config"
)

// version is set at build time via ldflags
var version = "dev"

var (
	dataDir  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "galaxydb",
	Short: "Turn crowd-sourced survey data into a relational galaxy database",
	Long: `galaxydb is the pipeline for the community star survey: it cleans the raw
hand-entered survey file into a canonical galaxy file, loads the galaxy and
the resource catalog into SQLite, PostgreSQL or MySQL, and reports on what
was loaded.`,
	Version:      version,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory holding the data files (default: working directory)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, or error")
}

// setup loads the configuration, applies the global flag overrides, and
// builds the logger every subcommand shares.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return cfg, log, nil
}

// newLogger builds a console logger on stdout. Recoverable data anomalies
// surface there as warnings.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
