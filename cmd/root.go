// =============================================================================
// Cart Parser - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (cartparser)
//   ├── validateCmd (cartparser validate <file>)
//   ├── parseCmd    (cartparser parse <file>)
//   ├── processCmd  (cartparser process)
//   └── versionCmd  (cartparser version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Loading the YAML configuration before any subcommand runs
//   3. Setting up logging
//
// =============================================================================

package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ginjaninja78/cart-parser/internal/config"
	"github.com/ginjaninja78/cart-parser/internal/obs"
	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
var cfgFile string

// verbose forces debug logging.
var verbose bool

// appConfig is the configuration loaded for the running command.
var appConfig *config.Config

// logger is the structured logger for the running command.
var logger *slog.Logger

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "cartparser",
	Short: "Cart Parser - Validate and parse shopping cart CSV exports",
	Long: `Cart Parser validates cart exports against the fixed cart schema
(Product name, Price, Quantity) and turns valid carts into JSON or XML
documents with per-item identifiers and an aggregated total.

Key Features:
  - Header, row and cell validation with row/column positions
  - CSV, plain text and XLSX workbook sources
  - JSON and XML cart documents
  - Concurrent batch processing with error logs and input archival

Example Usage:
  cartparser validate cart.csv          # Report validation errors
  cartparser parse cart.csv --format xml
  cartparser process                    # Process every file in the input directory
  cartparser process --config ./my.yaml # Use a custom configuration file`,

	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// initConfig loads the configuration file and builds the logger.
// A missing configuration file falls back to the defaults.
func initConfig(cmd *cobra.Command) error {
	cfg, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}

	appConfig = cfg
	logger = obs.NewLogger(cmd.ErrOrStderr(), level, cfg.LogFormat)
	logger.Debug("configuration loaded", "config", cfgFile, "input_dir", cfg.InputDir, "output_dir", cfg.OutputDir)
	return nil
}
