// Package seatmap normalizes airline seat-map data and computes grid
// layouts that keep every row column-aligned regardless of aircraft
// configuration.
package seatmap

// CabinClass is the fare cabin a seat belongs to.
type CabinClass string

const (
	First          CabinClass = "FIRST"
	Business       CabinClass = "BUSINESS"
	PremiumEconomy CabinClass = "PREMIUM_ECONOMY"
	Economy        CabinClass = "ECONOMY"
)

// Status is a seat's availability as reconciled from the payload.
type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusOccupied  Status = "OCCUPIED"
	StatusBlocked   Status = "BLOCKED"
	StatusUnknown   Status = "UNKNOWN"
)

// Coordinates positions a seat on the deck grid. X is the physical row
// number. Y is a spacing unit, not a column index: aisle gaps shift it.
type Coordinates struct {
	X int
	Y int
}

type Seat struct {
	Number          string
	Row             int
	Column          string
	Coordinates     Coordinates
	Cabin           CabinClass
	Status          Status
	Characteristics []string
}

// Selectable reports whether tapping the seat may change the selection.
func (s Seat) Selectable() bool {
	return s.Status == StatusAvailable
}

// Deck is one physical level of the aircraft.
type Deck struct {
	Type  string
	Seats []Seat
}

func (d Deck) HasSeats() bool {
	return len(d.Seats) > 0
}

// Seatmap is the normalized unit consumed by the layout engine.
type Seatmap struct {
	CarrierCode  string
	FlightNumber string
	AircraftCode string
	AircraftName string
	Decks        []Deck
}

// Empty reports whether no deck carries any seats. An empty seatmap is a
// valid "no data" result, never an error.
func (m Seatmap) Empty() bool {
	for _, d := range m.Decks {
		if d.HasSeats() {
			return false
		}
	}
	return true
}

// Seat looks up a seat by number across all decks.
func (m Seatmap) Seat(number string) (Seat, bool) {
	for _, d := range m.Decks {
		for _, s := range d.Seats {
			if s.Number == number {
				return s, true
			}
		}
	}
	return Seat{}, false
}
