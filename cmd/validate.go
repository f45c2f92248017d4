// =============================================================================
// Cart Parser - Validate Command
// =============================================================================
//
// COMMAND USAGE:
//   cartparser validate <file> [--json]
//
// Prints every header, row and cell error found in the file. The command
// exits non-zero when the file is invalid.
//
// =============================================================================

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/ginjaninja78/cart-parser/internal/cartparser"
	"github.com/ginjaninja78/cart-parser/internal/schema"
	"github.com/ginjaninja78/cart-parser/internal/source"
	"github.com/ginjaninja78/cart-parser/internal/validation"
	"github.com/spf13/cobra"
)

// validateJSON prints the errors as a JSON array instead of a text list.
var validateJSON bool

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a cart file against the cart schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(
		&validateJSON,
		"json",
		false,
		"Print validation errors as JSON",
	)
}

// runValidate loads the file, validates it and prints the result.
func runValidate(cmd *cobra.Command, path string) error {
	text, err := source.NewFileLoader(appConfig.Sheet).Load(path)
	if err != nil {
		return fmt.Errorf("failed to load cart source: %w", err)
	}

	errs := validation.Validate(text)
	logger.Debug("validated file", "file", path, "errors", len(errs))

	out := cmd.OutOrStdout()
	if validateJSON {
		if errs == nil {
			errs = []validation.ValidationError{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(errs); err != nil {
			return fmt.Errorf("failed to encode errors: %w", err)
		}
	} else {
		fmt.Fprintln(out, validation.FormatErrors(errs))
		if validation.CountByKind(errs)[validation.KindHeader] > 0 {
			fmt.Fprintf(out, "Expected header: %s\n", schema.Cart.Header())
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s: %d error(s): %w", path, len(errs), cartparser.ErrValidationFailed)
	}
	return nil
}
