// =============================================================================
// Cart Parser - Report Writer Module
// =============================================================================
//
// This module renders a parsed cart as a JSON or XML document.
//
// JSON STRUCTURE:
//   {"items":[{"id":"...","name":"...","price":9,"quantity":2}],"total":28.32}
//
// XML STRUCTURE:
//   <?xml version="1.0" encoding="UTF-8"?>
//   <cart>
//     <items>
//       <item id="3e6def17-...">
//         <name>Mollis consequat</name>
//         <price>9.00</price>
//         <quantity>2</quantity>
//       </item>
//     </items>
//     <total>28.32</total>
//   </cart>
//
// Money values are rounded to cents in XML only. JSON carries the raw floats.
//
// =============================================================================

package report

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/ginjaninja78/cart-parser/internal/types"
)

// ErrNotFinite is returned by Encode when the cart total or a price is not a
// finite number. Large valid prices and quantities can overflow the total.
var ErrNotFinite = errors.New("cart amount out of range")

// =============================================================================
// OUTPUT FORMATS
// =============================================================================

// Format is a cart document format.
type Format string

const (
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
)

// ParseFormat maps a configured format name to a Format.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatXML:
		return FormatXML, nil
	default:
		return "", fmt.Errorf("unknown output format %q", name)
	}
}

// Extension returns the file extension for the format, including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// =============================================================================
// DOCUMENT GENERATION
// =============================================================================

// Indent is the indentation used by both formats.
const Indent = "  "

// Encode renders the cart in the given format.
//
// PARAMETERS:
//   - cart: The parsed cart.
//   - format: The document format.
//
// RETURNS:
//   - The document bytes, newline terminated.
//   - An error if the format is unknown or encoding fails.
func Encode(cart *types.Cart, format Format) ([]byte, error) {
	if cart == nil {
		return nil, fmt.Errorf("no cart to encode")
	}
	if err := checkFinite(cart); err != nil {
		return nil, err
	}

	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(cart, "", Indent)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return append(data, '\n'), nil

	case FormatXML:
		return encodeXML(cart)

	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// checkFinite rejects carts whose amounts neither format can represent.
func checkFinite(cart *types.Cart) error {
	if math.IsInf(cart.Total, 0) || math.IsNaN(cart.Total) {
		return fmt.Errorf("total %v: %w", cart.Total, ErrNotFinite)
	}
	for i, item := range cart.Items {
		if math.IsInf(item.Price, 0) || math.IsNaN(item.Price) {
			return fmt.Errorf("item %d price %v: %w", i, item.Price, ErrNotFinite)
		}
	}
	return nil
}

// Write encodes the cart and writes it to w.
func Write(w io.Writer, cart *types.Cart, format Format) error {
	data, err := Encode(cart, format)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}

// =============================================================================
// XML DOCUMENT BUILDING
// =============================================================================

// xmlCart is the root <cart> element.
type xmlCart struct {
	XMLName xml.Name  `xml:"cart"`
	Items   []xmlItem `xml:"items>item"`
	Total   string    `xml:"total"`
}

// xmlItem is one <item> element.
type xmlItem struct {
	ID       string `xml:"id,attr"`
	Name     string `xml:"name"`
	Price    string `xml:"price"`
	Quantity int    `xml:"quantity"`
}

func encodeXML(cart *types.Cart) ([]byte, error) {
	doc := xmlCart{
		Items: make([]xmlItem, len(cart.Items)),
		Total: formatMoney(cart.Total),
	}
	for i, item := range cart.Items {
		doc.Items[i] = xmlItem{
			ID:       item.ID,
			Name:     item.Name,
			Price:    formatMoney(item.Price),
			Quantity: item.Quantity,
		}
	}

	var buffer bytes.Buffer
	buffer.WriteString(xml.Header)

	enc := xml.NewEncoder(&buffer)
	enc.Indent("", Indent)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to marshal XML: %w", err)
	}
	buffer.WriteString("\n")

	return buffer.Bytes(), nil
}

// formatMoney renders a value with two decimals.
func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
