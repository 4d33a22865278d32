package seatmap

import (
	"strings"

	"skyseat-cli/model"
)

// catalogOverrideThreshold is the live-seat count under which a catalog
// entry, when one exists, replaces the live data wholesale.
const catalogOverrideThreshold = 10

// Normalizer reconciles live seatmap payloads with the static catalog.
type Normalizer struct {
	catalog *Catalog
}

func NewNormalizer(catalog *Catalog) *Normalizer {
	return &Normalizer{catalog: catalog}
}

// Normalize picks the authoritative source for one flight's seatmap. When
// a catalog entry exists for the airline+aircraft pair and the live first
// deck carries fewer than 10 seats, the live data is discarded and the
// catalog expansion substituted, filtered to cabinFilter when non-empty.
// Otherwise the live seatmap passes through unchanged. The two sources
// are never blended seat by seat.
func (n *Normalizer) Normalize(live Seatmap, airlineCode, aircraftCode string, cabinFilter CabinClass) Seatmap {
	entry, ok := n.catalog.Lookup(airlineCode, aircraftCode)
	if ok && firstDeckSeatCount(live) < catalogOverrideThreshold {
		m := entry.Seatmap(cabinFilter)
		if live.FlightNumber != "" {
			m.FlightNumber = live.FlightNumber
		}
		return m
	}
	return live
}

func firstDeckSeatCount(m Seatmap) int {
	if len(m.Decks) == 0 {
		return 0
	}
	return len(m.Decks[0].Seats)
}

// Parse converts a raw seatmap payload into the typed form. It is the one
// boundary where missing fields are tolerated: seats without coordinates
// are dropped, absent decks or seat arrays yield an empty seatmap, and
// unknown statuses come out as UNKNOWN. Dictionary lookups for the
// aircraft name are the caller's concern.
func Parse(data model.SeatmapData) Seatmap {
	m := Seatmap{
		CarrierCode:  data.CarrierCode,
		FlightNumber: data.Number,
	}
	if data.Aircraft != nil {
		m.AircraftCode = data.Aircraft.Code
	}
	for _, rawDeck := range data.Decks {
		deck := Deck{Type: rawDeck.DeckType}
		for _, raw := range rawDeck.Seats {
			if raw.Coordinates == nil || raw.Coordinates.X == nil || raw.Coordinates.Y == nil {
				continue
			}
			deck.Seats = append(deck.Seats, Seat{
				Number: raw.Number,
				Row:    *raw.Coordinates.X,
				Column: columnOf(raw.Number),
				Coordinates: Coordinates{
					X: *raw.Coordinates.X,
					Y: *raw.Coordinates.Y,
				},
				Cabin:           parseCabin(raw.Cabin),
				Status:          extractStatus(raw),
				Characteristics: raw.CharacteristicsCodes,
			})
		}
		m.Decks = append(m.Decks, deck)
	}
	return m
}

func columnOf(number string) string {
	for i := 0; i < len(number); i++ {
		if number[i] < '0' || number[i] > '9' {
			return number[i:]
		}
	}
	return ""
}

func parseCabin(s string) CabinClass {
	switch CabinClass(strings.ToUpper(s)) {
	case First, Business, PremiumEconomy, Economy:
		return CabinClass(strings.ToUpper(s))
	default:
		return Economy
	}
}

// statusStrategy inspects one known payload shape for a seat's
// availability. ok is false when the shape is absent, handing off to the
// next strategy.
type statusStrategy func(model.RawSeat) (Status, bool)

// Ordered by authority. Traveler pricing wins because a non-available
// pricing record means the seat cannot be selected regardless of what a
// top-level availability field claims.
var statusStrategies = []statusStrategy{
	statusFromTravelerPricing,
	statusFromAvailableField,
}

func extractStatus(raw model.RawSeat) Status {
	for _, strategy := range statusStrategies {
		if status, ok := strategy(raw); ok {
			return status
		}
	}
	return StatusUnknown
}

func statusFromTravelerPricing(raw model.RawSeat) (Status, bool) {
	if len(raw.TravelerPricing) == 0 {
		return "", false
	}
	for _, tp := range raw.TravelerPricing {
		if s := parseStatus(tp.SeatAvailabilityStatus); s != StatusUnknown && s != StatusAvailable {
			return s, true
		}
	}
	for _, tp := range raw.TravelerPricing {
		if parseStatus(tp.SeatAvailabilityStatus) == StatusAvailable {
			return StatusAvailable, true
		}
	}
	return "", false
}

func statusFromAvailableField(raw model.RawSeat) (Status, bool) {
	if raw.Available == "" {
		return "", false
	}
	return parseStatus(raw.Available), true
}

func parseStatus(s string) Status {
	switch strings.ToUpper(s) {
	case "AVAILABLE":
		return StatusAvailable
	case "OCCUPIED", "TAKEN":
		return StatusOccupied
	case "BLOCKED", "RESTRICTED":
		return StatusBlocked
	default:
		return StatusUnknown
	}
}
