package seatmap

import "testing"

func seatAt(row, y int) Seat {
	return Seat{
		Row:         row,
		Coordinates: Coordinates{X: row, Y: y},
		Status:      StatusAvailable,
		Cabin:       Economy,
	}
}

func rowOfSeats(row int, ys ...int) []Seat {
	seats := make([]Seat, 0, len(ys))
	for _, y := range ys {
		seats = append(seats, seatAt(row, y))
	}
	return seats
}

func TestAlignmentInvariant(t *testing.T) {
	deck := Deck{Seats: append(
		rowOfSeats(1, 2, 3, 4, 5, 6, 7, 8, 9),
		rowOfSeats(2, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9)...,
	)}

	plan := Layout(deck, 400)

	if plan.MaxCols != 10 {
		t.Fatalf("expected 10 columns, got %d", plan.MaxCols)
	}
	for _, row := range plan.Rows {
		if row.Width != plan.Width {
			t.Fatalf("row %d width %d differs from plan width %d", row.Row, row.Width, plan.Width)
		}
	}

	// The shorter row starts at y=2 and must open with a spacer worth two
	// seats and one gap.
	short := plan.Rows[0]
	if short.Row != 1 {
		t.Fatalf("expected row 1 first, got %d", short.Row)
	}
	lead := short.Items[0]
	if lead.Kind != ItemSpacer || lead.Span != 2 {
		t.Fatalf("expected a leading 2-column spacer, got kind=%d span=%d", lead.Kind, lead.Span)
	}
	wantLead := 2*plan.SeatSize + plan.GapSize
	if lead.Width != wantLead {
		t.Fatalf("expected leading width %d, got %d", wantLead, lead.Width)
	}
}

func TestAisleGapWidth(t *testing.T) {
	deck := Deck{Seats: rowOfSeats(1, 0, 3, 4)}

	plan := Layout(deck, 400)

	row := plan.Rows[0]
	if len(row.Items) != 4 {
		t.Fatalf("expected seat, spacer, seat, seat; got %d items", len(row.Items))
	}
	gap := row.Items[1]
	if gap.Kind != ItemSpacer {
		t.Fatal("expected an aisle spacer between y=0 and y=3")
	}
	// d=3 means a 2-seat-wide aisle with one inner gap.
	want := 2*plan.SeatSize + plan.GapSize
	if gap.Width != want {
		t.Fatalf("expected aisle width %d, got %d", want, gap.Width)
	}
	if row.Items[2].Kind != ItemSeat || row.Items[3].Kind != ItemSeat {
		t.Fatal("adjacent seats (d=1) must not get a spacer between them")
	}
}

func TestSeatSizeClamp(t *testing.T) {
	deck := Deck{Seats: rowOfSeats(1, 0, 1, 2)}

	plan := Layout(deck, 5000)

	if plan.SeatSize != 50 {
		t.Fatalf("seat size should clamp at 50, got %d", plan.SeatSize)
	}
}

func TestGridFitsNarrowViewport(t *testing.T) {
	deck := Deck{Seats: rowOfSeats(1, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9)}

	plan := Layout(deck, 160)

	if plan.SeatSize < 1 {
		t.Fatalf("seat size must stay positive, got %d", plan.SeatSize)
	}
	if plan.Width > 160 {
		t.Fatalf("grid width %d overflows the 160px viewport", plan.Width)
	}
	if plan.FontSize < 8 {
		t.Fatalf("font size has an 8px floor, got %d", plan.FontSize)
	}
	if !plan.Compact() {
		t.Fatal("a squeezed plan should report compact rendering")
	}
}

func TestGapTiers(t *testing.T) {
	cases := []struct {
		cols int
		gap  int
	}{
		{10, 4},
		{8, 6},
		{6, 8},
		{4, 10},
	}
	for _, tc := range cases {
		ys := make([]int, tc.cols)
		for i := range ys {
			ys[i] = i
		}
		plan := Layout(Deck{Seats: rowOfSeats(1, ys...)}, 400)
		if plan.GapSize != tc.gap {
			t.Fatalf("%d columns: expected gap %d, got %d", tc.cols, tc.gap, plan.GapSize)
		}
	}
}

func TestEmptyDeck(t *testing.T) {
	plan := Layout(Deck{}, 400)
	if len(plan.Rows) != 0 {
		t.Fatal("an empty deck should produce an empty plan")
	}
}

func TestLayoutDecksSkipsEmpty(t *testing.T) {
	m := Seatmap{Decks: []Deck{
		{Type: "LOWER", Seats: rowOfSeats(1, 0, 1)},
		{Type: "UPPER"},
	}}

	plans := LayoutDecks(m, 400)

	if len(plans) != 1 {
		t.Fatalf("empty decks must be skipped, got %d plans", len(plans))
	}
	if plans[0].Label != "" {
		t.Fatalf("single populated deck should carry no label, got %q", plans[0].Label)
	}
}

func TestLayoutDecksLabels(t *testing.T) {
	m := Seatmap{Decks: []Deck{
		{Type: "LOWER", Seats: rowOfSeats(1, 0, 1)},
		{Type: "UPPER", Seats: rowOfSeats(1, 0, 1)},
		{Type: "", Seats: rowOfSeats(2, 0, 1)},
	}}

	plans := LayoutDecks(m, 400)

	if len(plans) != 3 {
		t.Fatalf("expected 3 plans, got %d", len(plans))
	}
	if plans[0].Label != "LOWER DECK" {
		t.Fatalf("expected LOWER DECK, got %q", plans[0].Label)
	}
	if plans[1].Label != "UPPER DECK" {
		t.Fatalf("expected UPPER DECK, got %q", plans[1].Label)
	}
	if plans[2].Label != "DECK 3" {
		t.Fatalf("expected DECK 3, got %q", plans[2].Label)
	}
}

func TestMultiDeckIndependentSizing(t *testing.T) {
	m := Seatmap{Decks: []Deck{
		{Type: "LOWER", Seats: rowOfSeats(1, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9)},
		{Type: "UPPER", Seats: rowOfSeats(1, 0, 1, 2)},
	}}

	plans := LayoutDecks(m, 300)

	if plans[0].Plan.SeatSize >= plans[1].Plan.SeatSize {
		t.Fatal("the wider deck should get smaller seats than the narrow one")
	}
}
