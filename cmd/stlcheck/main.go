package main

import (
	"context"
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"github.com/philipparndt/stlcheck/internal/config"
	"github.com/philipparndt/stlcheck/internal/logger"
	"github.com/philipparndt/stlcheck/version"
)

const configEnv = "STLCHECK_CONFIG"

var (
	configPath string
	logLevel   string
	logFile    string

	// cfg is populated by loadConfig before any subcommand runs
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "stlcheck",
	Short: "Check STL meshes for printability defects",
	Long: `stlcheck inspects triangulated meshes and reports topological defects that
matter for 3D printing: degenerate faces, non-manifold and boundary edges,
disconnected components, watertightness and inconsistent face winding.
It supports both ASCII and binary STL files.`,
	Version:           version.GetFullVersion(),
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Path to config file (env "+configEnv+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write JSON logs to this file (rotated)")
}

// loadConfig applies defaults, then the config file, then command line flags.
func loadConfig(cmd *cobra.Command, _ []string) error {
	path := configPath
	if !cmd.Flags().Changed("config") {
		if env := os.Getenv(configEnv); env != "" {
			path = env
		}
	}

	c, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("log-level") {
		c.Logging.Level = logLevel
	}
	if cmd.Flags().Changed("log-file") {
		c.Logging.File = logFile
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := logger.Init(c.Logging.Level, c.Logging.File); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	cfg = c
	return nil
}

func main() {
	err := rootCmd.ExecuteContext(context.Background())
	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
