package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

const defaultConfigFile = "planbrowser.yaml"

// CLI flags that override config file values
var (
	cfgFile   string
	logLevel  string
	logFormat string
	backend   string
	dataDir   string
	noColor   bool
)

var rootCmd = &cobra.Command{
	Use:   "planbrowser",
	Short: "Insurance plan catalog browser",
	Long: `Browse, filter and compare insurance plans from the terminal.

Features:
  - Filter by carrier, plan type and feature, plus free-text search
  - Side-by-side comparison of up to 4 plans
  - Favorites that persist between runs
  - Add, update and delete plans in the catalog
  - Memory, file or MySQL storage`,
	Version:      Version,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", defaultConfigFile,
		"Path to configuration file (defaults apply when the default file is absent)")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Storage overrides
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "",
		"Override storage backend (memory, file, mysql)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "",
		"Override data directory for the file backend")

	// Display overrides
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable colored output")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// CLIOverrides contains flag values that override config file settings
type CLIOverrides struct {
	LogLevel  string
	LogFormat string
	Backend   string
	DataDir   string
	NoColor   bool
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() CLIOverrides {
	return CLIOverrides{
		LogLevel:  logLevel,
		LogFormat: logFormat,
		Backend:   backend,
		DataDir:   dataDir,
		NoColor:   noColor,
	}
}
