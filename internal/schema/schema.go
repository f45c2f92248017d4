// =============================================================================
// Cart Parser - Schema Module
// =============================================================================
//
// This module holds the fixed column layout of a cart table and the cell
// validators attached to each column kind.
//
// CART TABLE LAYOUT:
//
//   | Column 0      | Column 1 | Column 2 |
//   |---------------|----------|----------|
//   | Product name  | Price    | Quantity |
//   | Mollis        | 9.00     | 2        |
//
// The column order and names are authoritative: the validator compares the
// header line against them position by position.
//
// =============================================================================

package schema

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Delimiter separates cells within a line. Quoting is not supported.
const Delimiter = ","

// =============================================================================
// COLUMN KINDS
// =============================================================================

// Kind is the value kind of a column.
type Kind int

const (
	// KindNonemptyString accepts any value with at least one non-space character.
	KindNonemptyString Kind = iota

	// KindPositiveNumber accepts finite numbers strictly greater than zero.
	KindPositiveNumber
)

// String returns the kind name used in logs.
func (k Kind) String() string {
	switch k {
	case KindNonemptyString:
		return "nonempty_string"
	case KindPositiveNumber:
		return "positive_number"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// =============================================================================
// SCHEMA STRUCTURE
// =============================================================================

// Column describes a single expected column.
type Column struct {
	// Name is the exact header text expected at this position.
	Name string

	// Kind selects the cell validator for this column.
	Kind Kind
}

// Schema is the ordered list of expected columns.
type Schema []Column

// Cart is the schema of a shopping cart table.
var Cart = Schema{
	{Name: "Product name", Kind: KindNonemptyString},
	{Name: "Price", Kind: KindPositiveNumber},
	{Name: "Quantity", Kind: KindPositiveNumber},
}

// Len returns the number of columns.
func (s Schema) Len() int {
	return len(s)
}

// names returns the column names in schema order.
func (s Schema) names() []string {
	names := make([]string, len(s))
	for i, col := range s {
		names[i] = col.Name
	}
	return names
}

// Header renders the header line the schema expects.
func (s Schema) Header() string {
	return strings.Join(s.names(), Delimiter)
}

// =============================================================================
// CELL VALIDATION
// =============================================================================

// ValidateCell checks a raw cell value against the rule for kind.
//
// PARAMETERS:
//   - kind: The column kind.
//   - raw: The cell text as it appeared in the row (already trimmed by the caller).
//
// RETURNS:
//   - The empty string and true if the value is valid.
//   - A human-readable message and false otherwise.
func ValidateCell(kind Kind, raw string) (string, bool) {
	switch kind {
	case KindNonemptyString:
		if strings.TrimSpace(raw) == "" {
			return fmt.Sprintf("Expected cell to be a nonempty string but received \"%s\".", raw), false
		}
		return "", true

	case KindPositiveNumber:
		// ParseNumber rejects "NaN" and infinities, so the literal NaN text
		// falls into the same branch as any other unparseable value.
		value, err := ParseNumber(raw)
		if err != nil || value <= 0 {
			return fmt.Sprintf("Expected cell to be a positive number but received \"%s\".", raw), false
		}
		return "", true

	default:
		return fmt.Sprintf("Unsupported column kind %s for value %q.", kind, raw), false
	}
}

// ParseNumber parses a trimmed numeric cell as a finite float64.
func ParseNumber(raw string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", raw, err)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("invalid number %q: not finite", raw)
	}
	return value, nil
}

// =============================================================================
// LINE SPLITTING
// =============================================================================

// Lines splits text into trimmed content lines. Lines that are empty after
// trimming are dropped, so the index of a returned line is its row index.
func Lines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// Cells splits a line on the delimiter and trims every cell.
func Cells(line string) []string {
	cells := strings.Split(line, Delimiter)
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}
