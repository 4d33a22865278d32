package seatmap

// Selection tracks the single selected seat. Only one seat may be
// selected at a time; selecting another replaces it.
type Selection struct {
	seatNumber string
}

// Select applies a tap on a seat. Re-selecting the current seat clears
// the selection; tapping a non-available seat leaves it untouched. The
// returned number is the new selection, empty for none.
func (sel *Selection) Select(seat Seat) string {
	if !seat.Selectable() {
		return sel.seatNumber
	}
	if sel.seatNumber == seat.Number {
		sel.seatNumber = ""
	} else {
		sel.seatNumber = seat.Number
	}
	return sel.seatNumber
}

// Selected returns the current seat number, empty for no selection.
func (sel *Selection) Selected() string {
	return sel.seatNumber
}

func (sel *Selection) IsSelected(seatNumber string) bool {
	return sel.seatNumber != "" && sel.seatNumber == seatNumber
}

// Clear drops any selection, used when the seatmap data changes under
// the user.
func (sel *Selection) Clear() {
	sel.seatNumber = ""
}

// InfoPayload describes a tapped seat for a transient info display. It
// is produced on every tap regardless of status.
type InfoPayload struct {
	Number          string
	Status          Status
	Characteristics []string
}

// DescribeSeat builds the info payload for a seat. Characteristics
// resolve through the lexicon; unknown codes are omitted.
func DescribeSeat(seat Seat) InfoPayload {
	return InfoPayload{
		Number:          seat.Number,
		Status:          seat.Status,
		Characteristics: DescribeAll(seat.Characteristics),
	}
}

// SeatColors is the semantic color set for drawing one seat.
type SeatColors struct {
	Body    string
	Accent  string
	Text    string
	Armrest string
}

var (
	selectedColors  = SeatColors{Body: "#007AFF", Accent: "#007AFF", Text: "#FFFFFF", Armrest: "#005BBF"}
	availableColors = SeatColors{Body: "#FFFFFF", Accent: "#E0E0E0", Text: "#333333", Armrest: "#C8C8C8"}
	occupiedColors  = SeatColors{Body: "#2C3E6B", Accent: "#777777", Text: "#AAAAAA", Armrest: "#555555"}
	blockedColors   = SeatColors{Body: "#4A4649", Accent: "#959595", Text: "#E6E6E6", Armrest: "#6B6B6B"}
	unknownColors   = SeatColors{Body: "#707070", Accent: "#606060", Text: "#AAAAAA", Armrest: "#505050"}
)

// StyleFor resolves the colors for a seat. Selection always wins over
// the underlying status.
func StyleFor(status Status, isSelected bool) SeatColors {
	if isSelected {
		return selectedColors
	}
	switch status {
	case StatusAvailable:
		return availableColors
	case StatusOccupied:
		return occupiedColors
	case StatusBlocked:
		return blockedColors
	default:
		return unknownColors
	}
}

// GlyphFor picks the seat glyph for a cabin class. Premium cabins use a
// distinct shape from the economy cabins.
func GlyphFor(cabin CabinClass) string {
	switch cabin {
	case First, Business:
		return "▣"
	default:
		return "■"
	}
}
