// =============================================================================
// Cart Parser - Cart Parser Module
// =============================================================================
//
// This module turns validated cart text into typed records and aggregates
// them into a cart total.
//
// PARSING PIPELINE:
//   1. Load the source text through the injected Loader
//   2. Validate the text (fail fast on any error)
//   3. Parse every data line after the header into a CartRecord
//   4. Sum price*quantity over the records
//
// The pipeline is all-or-nothing: when validation reports anything, no
// records and no total are produced.
//
// =============================================================================

package cartparser

import (
	"errors"
	"fmt"
	"math"

	"github.com/ginjaninja78/cart-parser/internal/schema"
	"github.com/ginjaninja78/cart-parser/internal/types"
	"github.com/ginjaninja78/cart-parser/internal/validation"
	"github.com/google/uuid"
)

// ErrValidationFailed is returned by Parse and ParseText when the source text
// has at least one validation error. Call validation.Validate for the details.
var ErrValidationFailed = errors.New("validation failed")

// =============================================================================
// COLLABORATORS
// =============================================================================

// Loader acquires the complete source text for a path or handle.
type Loader interface {
	Load(path string) (string, error)
}

// IDGenerator returns a fresh record identifier on every call.
type IDGenerator func() string

// NewID returns a random (version 4) UUID string.
func NewID() string {
	return uuid.NewString()
}

// =============================================================================
// PARSER
// =============================================================================

// Parser composes validation, record parsing and aggregation.
type Parser struct {
	loader Loader
	newID  IDGenerator
}

// Option configures a Parser.
type Option func(*Parser)

// WithIDGenerator replaces the random identifier source.
func WithIDGenerator(gen IDGenerator) Option {
	return func(p *Parser) {
		if gen != nil {
			p.newID = gen
		}
	}
}

// New creates a Parser reading its input through loader.
func New(loader Loader, opts ...Option) *Parser {
	p := &Parser{
		loader: loader,
		newID:  NewID,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse loads the text at path and parses it into a cart.
//
// PARAMETERS:
//   - path: The path or handle passed to the Loader.
//
// RETURNS:
//   - The parsed cart.
//   - ErrValidationFailed if the text is invalid, or a wrapped loader error.
func (p *Parser) Parse(path string) (*types.Cart, error) {
	if p.loader == nil {
		return nil, fmt.Errorf("failed to load cart source %q: no loader configured", path)
	}

	text, err := p.loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart source: %w", err)
	}

	return p.ParseText(text)
}

// ParseText validates text and, when it is valid, parses every data line.
func (p *Parser) ParseText(text string) (*types.Cart, error) {
	if errs := validation.Validate(text); len(errs) > 0 {
		return nil, ErrValidationFailed
	}

	lines := schema.Lines(text)

	// Line 0 is the header.
	items := make([]types.CartRecord, 0, len(lines)-1)
	for _, line := range lines[1:] {
		items = append(items, p.ParseRecord(line))
	}

	return &types.Cart{
		Items: items,
		Total: CalcTotal(items),
	}, nil
}

// ParseRecord parses one data line using the parser's identifier source.
// See the package-level ParseRecord for the precondition.
func (p *Parser) ParseRecord(line string) types.CartRecord {
	return parseRecord(line, p.newID)
}

// =============================================================================
// RECORD PARSING
// =============================================================================

// ParseRecord converts a single valid data line into a CartRecord with a
// random identifier.
//
// The line must already have passed validation: correct cell count and every
// cell valid for its column. ParseRecord panics otherwise.
func ParseRecord(line string) types.CartRecord {
	return parseRecord(line, NewID)
}

func parseRecord(line string, newID IDGenerator) types.CartRecord {
	cells := schema.Cells(line)
	if len(cells) != schema.Cart.Len() {
		panic(fmt.Sprintf("cartparser: record %q has %d cells, want %d", line, len(cells), schema.Cart.Len()))
	}

	price, err := schema.ParseNumber(cells[1])
	if err != nil {
		panic(fmt.Sprintf("cartparser: record %q: price: %v", line, err))
	}

	quantity, err := schema.ParseNumber(cells[2])
	if err != nil {
		panic(fmt.Sprintf("cartparser: record %q: quantity: %v", line, err))
	}

	return types.CartRecord{
		ID:       newID(),
		Name:     cells[0],
		Price:    price,
		Quantity: truncQuantity(quantity),
	}
}

// truncQuantity truncates toward zero. Values at or above math.MaxInt clamp
// to math.MaxInt.
func truncQuantity(quantity float64) int {
	if quantity >= float64(math.MaxInt) {
		return math.MaxInt
	}
	return int(math.Trunc(quantity))
}

// =============================================================================
// AGGREGATION
// =============================================================================

// CalcTotal sums price*quantity over records in slice order. No rounding is
// applied, so callers should compare the result with a tolerance.
func CalcTotal(records []types.CartRecord) float64 {
	var total float64
	for _, record := range records {
		total += record.Price * float64(record.Quantity)
	}
	return total
}
