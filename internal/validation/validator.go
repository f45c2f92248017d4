// =============================================================================
// Cart Parser - Validation Engine
// =============================================================================
//
// This module walks the raw cart text and classifies every problem it finds
// into a positionally addressed ValidationError.
//
// VALIDATION STRATEGY:
//   Validation is performed at three levels, in scan order:
//   1. Header-level: each header cell is compared with the schema column name
//   2. Row-level: each data row must have exactly as many cells as the schema
//   3. Cell-level: each cell of a well-formed row is checked against its kind
//
// ERROR HANDLING:
//   - Errors are collected, never thrown
//   - Header errors do not stop the scan of data rows
//   - A row with the wrong cell count yields one row error and no cell errors
//   - Blank lines are skipped and do not count toward row indexes
//
// =============================================================================

package validation

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/cart-parser/internal/schema"
)

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// ErrorKind classifies a validation error.
type ErrorKind string

const (
	// KindHeader marks a header cell that does not match the schema column name.
	KindHeader ErrorKind = "header"

	// KindRow marks a data row with the wrong number of cells.
	KindRow ErrorKind = "row"

	// KindCell marks a cell whose value fails its column rule.
	KindCell ErrorKind = "cell"
)

// ValidationError represents a single validation error.
type ValidationError struct {
	// Kind is the error class.
	Kind ErrorKind `json:"type"`

	// Row is the zero-based index of the content line (the header is row 0).
	Row int `json:"row"`

	// Column is the zero-based column index. Row errors always report 0.
	Column int `json:"column"`

	// Message is a human-readable error message.
	Message string `json:"message"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] row %d, column %d: %s",
		strings.ToUpper(string(e.Kind)),
		e.Row,
		e.Column,
		e.Message,
	)
}

// newError is the single constructor used by every check below.
func newError(kind ErrorKind, row, column int, message string) ValidationError {
	return ValidationError{
		Kind:    kind,
		Row:     row,
		Column:  column,
		Message: message,
	}
}

// =============================================================================
// MAIN VALIDATION FUNCTION
// =============================================================================

// Validate validates cart text against the cart schema.
// This is the main entry point for validation.
//
// PARAMETERS:
//   - text: The complete cart table, header line first.
//
// RETURNS:
//   - The errors in scan order. An empty result means the text is valid.
func Validate(text string) []ValidationError {
	return ValidateWithSchema(text, schema.Cart)
}

// ValidateWithSchema validates text against an arbitrary schema.
func ValidateWithSchema(text string, s schema.Schema) []ValidationError {
	lines := schema.Lines(text)

	var header string
	if len(lines) > 0 {
		header = lines[0]
	}

	errors := validateHeader(header, s)

	for row := 1; row < len(lines); row++ {
		errors = append(errors, validateRow(lines[row], row, s)...)
	}

	return errors
}

// validateHeader compares each header cell with the schema column name.
// Cells beyond the schema width are ignored.
func validateHeader(line string, s schema.Schema) []ValidationError {
	var errors []ValidationError

	cells := schema.Cells(line)
	for i, col := range s {
		var received string
		if i < len(cells) {
			received = cells[i]
		}

		if received != col.Name {
			errors = append(errors, newError(KindHeader, 0, i,
				fmt.Sprintf("Expected header to be named \"%s\" but received \"%s\".", col.Name, received)))
		}
	}

	return errors
}

// validateRow checks the cell count of a data row and, when it matches,
// every cell against its column kind.
func validateRow(line string, row int, s schema.Schema) []ValidationError {
	cells := schema.Cells(line)

	if len(cells) != s.Len() {
		return []ValidationError{
			newError(KindRow, row, 0,
				fmt.Sprintf("Expected row to have %d cells but received %d.", s.Len(), len(cells))),
		}
	}

	var errors []ValidationError
	for i, col := range s {
		if msg, ok := schema.ValidateCell(col.Kind, cells[i]); !ok {
			errors = append(errors, newError(KindCell, row, i, msg))
		}
	}

	return errors
}

// =============================================================================
// ERROR FORMATTING
// =============================================================================

// FormatErrors formats validation errors for display or logging.
func FormatErrors(errors []ValidationError) string {
	if len(errors) == 0 {
		return "No validation errors."
	}

	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("Validation completed with %d error(s):\n\n", len(errors)))

	for i, err := range errors {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, err.Error()))
	}

	return builder.String()
}

// CountByKind tallies errors per kind.
func CountByKind(errors []ValidationError) map[ErrorKind]int {
	counts := make(map[ErrorKind]int, 3)
	for _, err := range errors {
		counts[err.Kind]++
	}
	return counts
}
