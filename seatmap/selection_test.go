package seatmap

import "testing"

func TestSelectToggle(t *testing.T) {
	var sel Selection
	seat := Seat{Number: "14A", Status: StatusAvailable}

	if got := sel.Select(seat); got != "14A" {
		t.Fatalf("expected 14A selected, got %q", got)
	}
	if got := sel.Select(seat); got != "" {
		t.Fatalf("re-selecting should deselect, got %q", got)
	}
}

func TestSingleSelection(t *testing.T) {
	var sel Selection
	a := Seat{Number: "14A", Status: StatusAvailable}
	b := Seat{Number: "14B", Status: StatusAvailable}

	sel.Select(a)
	sel.Select(b)

	if sel.IsSelected("14A") {
		t.Fatal("14A should have been deselected by selecting 14B")
	}
	if !sel.IsSelected("14B") {
		t.Fatal("14B should be the sole selection")
	}
}

func TestSelectNonAvailableIsNoop(t *testing.T) {
	var sel Selection
	sel.Select(Seat{Number: "14A", Status: StatusAvailable})

	for _, status := range []Status{StatusOccupied, StatusBlocked, StatusUnknown} {
		if got := sel.Select(Seat{Number: "14B", Status: status}); got != "14A" {
			t.Fatalf("tapping a %s seat must not change the selection, got %q", status, got)
		}
	}
}

func TestClear(t *testing.T) {
	var sel Selection
	sel.Select(Seat{Number: "14A", Status: StatusAvailable})
	sel.Clear()
	if sel.Selected() != "" {
		t.Fatal("clear should drop the selection")
	}
}

func TestStyleSelectionWins(t *testing.T) {
	for _, status := range []Status{StatusAvailable, StatusOccupied, StatusBlocked, StatusUnknown} {
		got := StyleFor(status, true)
		if got != selectedColors {
			t.Fatalf("selection must override %s styling, got %+v", status, got)
		}
	}
}

func TestStyleByStatus(t *testing.T) {
	if StyleFor(StatusAvailable, false) == StyleFor(StatusOccupied, false) {
		t.Fatal("available and occupied seats must not share colors")
	}
	if StyleFor(StatusBlocked, false) == StyleFor(StatusUnknown, false) {
		t.Fatal("blocked and unknown seats must not share colors")
	}
}

func TestDescribeSeat(t *testing.T) {
	seat := Seat{
		Number:          "17C",
		Status:          StatusOccupied,
		Characteristics: []string{"A", "EXIT_ROW", "NOT_A_CODE"},
	}

	info := DescribeSeat(seat)

	if info.Number != "17C" || info.Status != StatusOccupied {
		t.Fatalf("unexpected payload %+v", info)
	}
	if len(info.Characteristics) != 2 {
		t.Fatalf("unknown codes should be omitted, got %v", info.Characteristics)
	}
}

func TestGlyphByCabin(t *testing.T) {
	premium := GlyphFor(Business)
	if GlyphFor(First) != premium {
		t.Fatal("FIRST and BUSINESS share the premium glyph")
	}
	if GlyphFor(Economy) == premium {
		t.Fatal("ECONOMY must use a different glyph from premium cabins")
	}
	if GlyphFor(PremiumEconomy) != GlyphFor(Economy) {
		t.Fatal("PREMIUM_ECONOMY renders with the economy glyph")
	}
}
