package report

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/ginjaninja78/cart-parser/internal/types"
)

func sampleCart() *types.Cart {
	return &types.Cart{
		Items: []types.CartRecord{
			{ID: "id-1", Name: "Mollis consequat", Price: 9, Quantity: 2},
			{ID: "id-2", Name: "Fish & Chips", Price: 10.32, Quantity: 1},
		},
		Total: 28.32,
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat(" XML "); err != nil || f != FormatXML {
		t.Fatalf("got %q, %v", f, err)
	}
	if f, err := ParseFormat("json"); err != nil || f != FormatJSON {
		t.Fatalf("got %q, %v", f, err)
	}
	if _, err := ParseFormat("yaml"); err == nil {
		t.Fatalf("expected an error for an unknown format")
	}
	if FormatXML.Extension() != ".xml" {
		t.Fatalf("unexpected extension %q", FormatXML.Extension())
	}
}

func TestEncodeJSON(t *testing.T) {
	data, err := Encode(sampleCart(), FormatJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var doc struct {
		Items []map[string]any `json:"items"`
		Total float64          `json:"total"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(doc.Items) != 2 || doc.Total != 28.32 {
		t.Fatalf("unexpected document %+v", doc)
	}
	for _, key := range []string{"id", "name", "price", "quantity"} {
		if _, ok := doc.Items[0][key]; !ok {
			t.Fatalf("item is missing %q: %v", key, doc.Items[0])
		}
	}
}

func TestEncodeJSONEmptyCart(t *testing.T) {
	data, err := Encode(&types.Cart{Items: []types.CartRecord{}}, FormatJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(data), `"items": []`) {
		t.Fatalf("expected an empty items array, got %s", data)
	}
}

func TestEncodeXML(t *testing.T) {
	data, err := Encode(sampleCart(), FormatXML)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := string(data)
	if !strings.HasPrefix(out, xml.Header) {
		t.Fatalf("missing XML declaration: %q", out)
	}
	for _, want := range []string{
		`<item id="id-1">`,
		`<name>Fish &amp; Chips</name>`,
		`<price>10.32</price>`,
		`<quantity>2</quantity>`,
		`<total>28.32</total>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}

	var doc xmlCart
	if err := xml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("invalid XML: %v", err)
	}
	if len(doc.Items) != 2 || doc.Items[1].Name != "Fish & Chips" {
		t.Fatalf("unexpected document %+v", doc)
	}
}

func TestEncodeErrors(t *testing.T) {
	if _, err := Encode(nil, FormatJSON); err == nil {
		t.Fatalf("expected an error for a nil cart")
	}
	if _, err := Encode(sampleCart(), Format("csv")); err == nil {
		t.Fatalf("expected an error for an unknown format")
	}
}

func TestEncodeRejectsOverflowedTotal(t *testing.T) {
	cart := &types.Cart{
		Items: []types.CartRecord{{ID: "id-1", Name: "A", Price: 1e308, Quantity: 10}},
		Total: math.Inf(1),
	}
	for _, format := range []Format{FormatJSON, FormatXML} {
		if _, err := Encode(cart, format); !errors.Is(err, ErrNotFinite) {
			t.Fatalf("%s: expected ErrNotFinite, got %v", format, err)
		}
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleCart(), FormatJSON); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(buf.String(), "}\n") {
		t.Fatalf("expected a newline-terminated document, got %q", buf.String())
	}
}
