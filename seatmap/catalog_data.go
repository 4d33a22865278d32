package seatmap

// rowOverrides assigns the same characteristic codes to every listed
// column of one row.
func rowOverrides(dst map[SeatKey]SeatOverride, row int, columns []string, perColumn map[string][]string, shared ...string) {
	for _, col := range columns {
		codes := append([]string{}, perColumn[col]...)
		codes = append(codes, shared...)
		dst[SeatKey{Row: row, Column: col}] = SeatOverride{Characteristics: codes}
	}
}

func qatar777Entry() Entry {
	// Qsuite business cabin, 1-2-1. Odd rows face the windows, even rows
	// face each other across the center pair, so the two patterns are
	// modeled as separate sections sharing the cabin class.
	qsuiteOdd := CabinSection{
		Name:       "Business Class (Qsuite)",
		Cabin:      Business,
		Rows:       []int{1, 3, 5, 7, 9, 11},
		Columns:    []string{"A", "E", "F", "K"},
		AisleAfter: []string{"A", "F"},
	}
	qsuiteEven := CabinSection{
		Name:       "Business Class (Qsuite)",
		Cabin:      Business,
		Rows:       []int{2, 4, 6, 8, 10},
		Columns:    []string{"D", "E", "F", "G"},
		AisleAfter: []string{"D", "F"},
	}
	economy := CabinSection{
		Name:       "Economy Class",
		Cabin:      Economy,
		Rows:       []int{17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31, 32, 33, 34, 35, 36, 37, 38, 39, 40, 41, 42, 43},
		Columns:    []string{"A", "B", "C", "D", "E", "F", "G", "H", "J", "K"},
		AisleAfter: []string{"C", "G"},
	}

	overrides := make(map[SeatKey]SeatOverride)

	qsuiteSides := map[string][]string{
		"A": {"WINDOW"}, "K": {"WINDOW"},
		"D": {"AISLE"}, "E": {"AISLE"}, "F": {"AISLE"}, "G": {"AISLE"},
	}
	rowOverrides(overrides, 1, qsuiteOdd.Columns, qsuiteSides, "QSUITE", "FRONT_ROW")
	rowOverrides(overrides, 11, qsuiteOdd.Columns, qsuiteSides, "QSUITE", "NEAR_GALLEY")
	for _, row := range []int{3, 5, 7, 9} {
		rowOverrides(overrides, row, qsuiteOdd.Columns, qsuiteSides, "QSUITE")
	}
	for _, row := range qsuiteEven.Rows {
		rowOverrides(overrides, row, qsuiteEven.Columns, qsuiteSides, "QSUITE", "QUAD_SUITE")
	}

	economySides := map[string][]string{
		"A": {"WINDOW"}, "K": {"WINDOW"},
		"C": {"AISLE"}, "D": {"AISLE"}, "G": {"AISLE"}, "H": {"AISLE"},
		"B": {"MIDDLE"}, "E": {"MIDDLE"}, "F": {"MIDDLE"}, "J": {"MIDDLE"},
	}
	rowOverrides(overrides, 17, economy.Columns, economySides, "EXIT_ROW", "EXTRA_LEGROOM")
	rowOverrides(overrides, 30, economy.Columns, economySides, "EXIT_ROW", "EXTRA_LEGROOM")
	rowOverrides(overrides, 43, economy.Columns, economySides, "LAST_ROW", "LIMITED_RECLINE")

	return Entry{
		Airline:      "Qatar Airways",
		AirlineCode:  "QR",
		Aircraft:     "Boeing 777-300ER",
		AircraftCode: "77W",
		Sections:     []CabinSection{qsuiteOdd, qsuiteEven, economy},
		Overrides:    overrides,
	}
}

// DefaultCatalog holds the layouts for aircraft whose live seat data is
// known to come back sparse. The 777-300ER flies under both the 77W and
// 773 equipment codes.
func DefaultCatalog() *Catalog {
	qr77w := qatar777Entry()
	return NewCatalog(qr77w).Register("773", qr77w)
}
