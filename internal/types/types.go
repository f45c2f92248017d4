// =============================================================================
// Cart Parser - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - cartparser
//   - report
//   - processor
//
// =============================================================================

package types

// =============================================================================
// CART TYPES
// =============================================================================

// CartRecord is one parsed data row of a cart table.
type CartRecord struct {
	// ID is generated when the row is parsed. It is never derived from the
	// row content.
	ID string `json:"id"`

	// Name is the product name.
	Name string `json:"name"`

	// Price is the unit price.
	Price float64 `json:"price"`

	// Quantity is the number of units.
	Quantity int `json:"quantity"`
}

// Cart is the parsed cart with its aggregated total.
// Total always equals the sum of Price*Quantity over Items.
type Cart struct {
	Items []CartRecord `json:"items"`
	Total float64      `json:"total"`
}
