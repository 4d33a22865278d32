package seatmap

// characteristicDescriptions maps seat characteristic codes to display
// text. Covers the airline-distribution standard codes plus the synthetic
// codes the static catalog emits.
var characteristicDescriptions = map[string]string{
	"1":                   "Restricted seat - General",
	"9":                   "Center seat (not window, not aisle)",
	"A":                   "Aisle seat",
	"RS":                  "Right side of aircraft",
	"DE":                  "Deportee",
	"C":                   "Crew seat",
	"CH":                  "Chargeable seats",
	"E":                   "Exit row seat",
	"LS":                  "Left side of aircraft",
	"K":                   "Bulkhead seat",
	"L":                   "Leg space seat",
	"1A_AQC_PREMIUM_SEAT": "Premium seat",
	"O":                   "Preferential seat",
	"1A":                  "Seat not allowed for infant",
	"1B":                  "Seat not allowed for medical",
	"1D":                  "Restricted recline seat",
	"U":                   "Seat suitable for unaccompanied minors",
	"V":                   "Seat to be left vacant or offered last",
	"W":                   "Window seat",
	"IE":                  "Seat not suitable for child",
	"FC":                  "Front of cabin class/compartment",

	// Synthetic codes used by the static catalog.
	"QSUITE":          "Qatar Airways Qsuite",
	"BUDDY_SUITE":     "Buddy suite - can be combined with adjacent seat",
	"QUAD_SUITE":      "Quad suite - can be combined into 4-seat suite",
	"WINDOW":          "Window seat",
	"AISLE":           "Aisle seat",
	"FRONT_ROW":       "Front of cabin",
	"NEAR_GALLEY":     "Near galley",
	"EXIT_ROW":        "Exit row - extra legroom",
	"EXTRA_LEGROOM":   "Extra legroom",
	"LAST_ROW":        "Last row of cabin",
	"LIMITED_RECLINE": "Limited recline",
	"MIDDLE":          "Middle seat",
}

// Describe resolves a characteristic code to display text. ok is false for
// unknown codes, which callers omit from display rather than surface.
func Describe(code string) (string, bool) {
	desc, ok := characteristicDescriptions[code]
	return desc, ok
}

// DescribeAll resolves a list of codes, dropping unknown ones and
// duplicates while keeping the first-seen order.
func DescribeAll(codes []string) []string {
	var out []string
	seen := make(map[string]bool, len(codes))
	for _, code := range codes {
		if seen[code] {
			continue
		}
		seen[code] = true
		if desc, ok := Describe(code); ok {
			out = append(out, desc)
		}
	}
	return out
}
