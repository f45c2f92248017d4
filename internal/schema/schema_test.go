package schema

import "testing"

func TestCartSchemaLayout(t *testing.T) {
	if Cart.Len() != 3 {
		t.Fatalf("expected 3 columns, got %d", Cart.Len())
	}
	if got := Cart.Header(); got != "Product name,Price,Quantity" {
		t.Fatalf("unexpected header %q", got)
	}
	if Cart[0].Kind != KindNonemptyString || Cart[1].Kind != KindPositiveNumber || Cart[2].Kind != KindPositiveNumber {
		t.Fatalf("unexpected kinds: %+v", Cart)
	}
}

func TestValidateCellNonemptyString(t *testing.T) {
	if msg, ok := ValidateCell(KindNonemptyString, "Mollis consequat"); !ok {
		t.Fatalf("expected valid, got %q", msg)
	}
	msg, ok := ValidateCell(KindNonemptyString, "")
	if ok {
		t.Fatalf("expected empty string to fail")
	}
	if msg != `Expected cell to be a nonempty string but received "".` {
		t.Fatalf("unexpected message %q", msg)
	}
	if _, ok := ValidateCell(KindNonemptyString, "   "); ok {
		t.Fatalf("expected whitespace-only string to fail")
	}
}

func TestValidateCellPositiveNumber(t *testing.T) {
	valid := []string{"9.00", "10.32", "1", "28.72", "1e2", ".5"}
	for _, v := range valid {
		if msg, ok := ValidateCell(KindPositiveNumber, v); !ok {
			t.Errorf("%q: expected valid, got %q", v, msg)
		}
	}

	invalid := []string{"", "o", "a", "NaN", "nan", "-1", "-13.90", "0", "0.00", "Inf", "+Inf", "1,5", "1e400"}
	for _, v := range invalid {
		msg, ok := ValidateCell(KindPositiveNumber, v)
		if ok {
			t.Errorf("%q: expected invalid", v)
			continue
		}
		want := `Expected cell to be a positive number but received "` + v + `".`
		if msg != want {
			t.Errorf("%q: got message %q, want %q", v, msg, want)
		}
	}
}

func TestParseNumber(t *testing.T) {
	v, err := ParseNumber(" 13.90 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 13.9 {
		t.Fatalf("expected 13.9, got %v", v)
	}
	if _, err := ParseNumber("NaN"); err == nil {
		t.Fatalf("expected NaN to be rejected")
	}
}

func TestKindString(t *testing.T) {
	if KindPositiveNumber.String() != "positive_number" {
		t.Fatalf("unexpected kind name %q", KindPositiveNumber.String())
	}
}

func TestLinesSkipsBlankLines(t *testing.T) {
	text := "  Product name,Price,Quantity\r\n\n\t A,9.00,2\n   \nB,10.32,1\n"
	lines := Lines(text)
	if len(lines) != 3 {
		t.Fatalf("expected 3 content lines, got %d: %q", len(lines), lines)
	}
	if lines[0] != "Product name,Price,Quantity" || lines[1] != "A,9.00,2" || lines[2] != "B,10.32,1" {
		t.Fatalf("unexpected lines %q", lines)
	}
}

func TestCellsTrims(t *testing.T) {
	cells := Cells(" A , 9.00 ,2")
	if len(cells) != 3 || cells[0] != "A" || cells[1] != "9.00" || cells[2] != "2" {
		t.Fatalf("unexpected cells %q", cells)
	}
	if got := Cells(""); len(got) != 1 || got[0] != "" {
		t.Fatalf("expected a single empty cell, got %q", got)
	}
}
