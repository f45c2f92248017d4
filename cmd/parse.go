// =============================================================================
// Cart Parser - Parse Command
// =============================================================================
//
// COMMAND USAGE:
//   cartparser parse <file> [--format json|xml]
//
// Validates and parses a single cart file and writes the cart document to
// stdout. Invalid files produce no document; run 'validate' for the details.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/ginjaninja78/cart-parser/internal/cartparser"
	"github.com/ginjaninja78/cart-parser/internal/report"
	"github.com/ginjaninja78/cart-parser/internal/source"
	"github.com/spf13/cobra"
)

// parseFormat overrides the configured output format.
var parseFormat string

// parseCmd represents the 'parse' command.
var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a cart file and print the cart document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runParse(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(
		&parseFormat,
		"format",
		"f",
		"",
		"Document format: json or xml (defaults to output_format from the config)",
	)
}

// runParse parses the file and writes the document to the command output.
func runParse(cmd *cobra.Command, path string) error {
	name := parseFormat
	if name == "" {
		name = appConfig.OutputFormat
	}
	format, err := report.ParseFormat(name)
	if err != nil {
		return err
	}

	parser := cartparser.New(source.NewFileLoader(appConfig.Sheet))
	cart, err := parser.Parse(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	logger.Debug("parsed cart", "file", path, "items", len(cart.Items), "total", cart.Total)
	return report.Write(cmd.OutOrStdout(), cart, format)
}
