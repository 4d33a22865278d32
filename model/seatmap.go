package model

// SeatmapResponse is the body returned by the Amadeus seat-map display
// endpoint. Every nested field is optional on the wire; the normalizer is
// responsible for deciding what is usable.
type SeatmapResponse struct {
	Data []SeatmapData `json:"data"`
}

type SeatmapData struct {
	Id                     string         `json:"id,omitempty"`
	Type                   string         `json:"type,omitempty"`
	CarrierCode            string         `json:"carrierCode,omitempty"`
	Number                 string         `json:"number,omitempty"`
	Aircraft               *Aircraft      `json:"aircraft,omitempty"`
	Departure              *SegmentPoint  `json:"departure,omitempty"`
	Arrival                *SegmentPoint  `json:"arrival,omitempty"`
	Class                  string         `json:"class,omitempty"`
	Decks                  []RawDeck      `json:"decks,omitempty"`
	AvailableSeatsCounters []SeatsCounter `json:"availableSeatsCounters,omitempty"`
}

type RawDeck struct {
	DeckType          string             `json:"deckType,omitempty"`
	DeckConfiguration *DeckConfiguration `json:"deckConfiguration,omitempty"`
	Seats             []RawSeat          `json:"seats,omitempty"`
}

type DeckConfiguration struct {
	Width         int `json:"width,omitempty"`
	Length        int `json:"length,omitempty"`
	StartSeatRow  int `json:"startSeatRow,omitempty"`
	EndSeatRow    int `json:"endSeatRow,omitempty"`
	StartWingsRow int `json:"startWingsRow,omitempty"`
	EndWingsRow   int `json:"endWingsRow,omitempty"`
}

type RawSeat struct {
	Cabin                string          `json:"cabin,omitempty"`
	Number               string          `json:"number,omitempty"`
	CharacteristicsCodes []string        `json:"characteristicsCodes,omitempty"`
	TravelerPricing      []SeatPricing   `json:"travelerPricing,omitempty"`
	Coordinates          *RawCoordinates `json:"coordinates,omitempty"`
	Available            string          `json:"available,omitempty"`
}

type SeatPricing struct {
	TravelerId             string `json:"travelerId,omitempty"`
	SeatAvailabilityStatus string `json:"seatAvailabilityStatus,omitempty"`
	Price                  *Price `json:"price,omitempty"`
}

type RawCoordinates struct {
	X *int `json:"x,omitempty"`
	Y *int `json:"y,omitempty"`
}

type SeatsCounter struct {
	TravelerId string `json:"travelerId,omitempty"`
	Value      int    `json:"value,omitempty"`
}
