// =============================================================================
// Cart Parser - Main Entry Point
// =============================================================================
//
// USAGE:
//   cartparser validate <file>  - Report validation errors for a cart file
//   cartparser parse <file>     - Print the cart document for a valid file
//   cartparser process          - Process all cart files in the input directory
//   cartparser version          - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : Validation, parsing, loading and reporting
//   - pkg/utils  : File management shared by the batch pipeline
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/cart-parser/cmd"
)

func main() {
	cmd.Execute()
}
