package model

import "strings"

// FlightOffersResponse is the body returned by the Amadeus flight-offers
// search endpoint.
type FlightOffersResponse struct {
	Data         []FlightOffer `json:"data"`
	Dictionaries Dictionaries  `json:"dictionaries"`
}

type FlightOffer struct {
	Id               string            `json:"id"`
	Source           string            `json:"source"`
	Itineraries      []Itinerary       `json:"itineraries"`
	Price            Price             `json:"price"`
	TravelerPricings []TravelerPricing `json:"travelerPricings"`
}

type Itinerary struct {
	Duration string    `json:"duration"`
	Segments []Segment `json:"segments"`
}

type Segment struct {
	Id          string           `json:"id"`
	Departure   SegmentPoint     `json:"departure"`
	Arrival     SegmentPoint     `json:"arrival"`
	CarrierCode string           `json:"carrierCode"`
	Number      string           `json:"number"`
	Aircraft    Aircraft         `json:"aircraft"`
	Operating   *OperatingFlight `json:"operating,omitempty"`
}

type SegmentPoint struct {
	IataCode string `json:"iataCode"`
	Terminal string `json:"terminal,omitempty"`
	At       string `json:"at"`
}

type Aircraft struct {
	Code string `json:"code"`
}

type OperatingFlight struct {
	CarrierCode string `json:"carrierCode"`
	Number      string `json:"number,omitempty"`
}

type Price struct {
	Currency string `json:"currency"`
	Total    string `json:"total"`
}

type TravelerPricing struct {
	TravelerId           string        `json:"travelerId"`
	FareOption           string        `json:"fareOption"`
	FareDetailsBySegment []FareDetails `json:"fareDetailsBySegment"`
}

type FareDetails struct {
	SegmentId string `json:"segmentId"`
	Cabin     string `json:"cabin"`
	Class     string `json:"class"`
}

type Dictionaries struct {
	Aircraft map[string]string `json:"aircraft"`
	Carriers map[string]string `json:"carriers"`
}

// FirstSegment returns the first segment of the first itinerary, the leg the
// seat map is requested for. ok is false when the offer carries no segments.
func (o FlightOffer) FirstSegment() (Segment, bool) {
	if len(o.Itineraries) == 0 || len(o.Itineraries[0].Segments) == 0 {
		return Segment{}, false
	}
	return o.Itineraries[0].Segments[0], true
}

// OperatingCarrier resolves the airline actually flying the first segment,
// falling back to the marketing carrier for non-codeshare flights.
func (o FlightOffer) OperatingCarrier() string {
	seg, ok := o.FirstSegment()
	if !ok {
		return ""
	}
	if seg.Operating != nil && seg.Operating.CarrierCode != "" {
		return seg.Operating.CarrierCode
	}
	return seg.CarrierCode
}

// CabinClass returns the booked cabin of the first fare segment, defaulting
// to ECONOMY when the pricing breakdown is absent.
func (o FlightOffer) CabinClass() string {
	for _, tp := range o.TravelerPricings {
		for _, fd := range tp.FareDetailsBySegment {
			if fd.Cabin != "" {
				return fd.Cabin
			}
		}
	}
	return "ECONOMY"
}

// AircraftCode returns the equipment code of the first segment.
func (o FlightOffer) AircraftCode() string {
	seg, ok := o.FirstSegment()
	if !ok {
		return ""
	}
	return seg.Aircraft.Code
}

// AircraftName resolves an aircraft code through the response dictionaries,
// falling back to the code itself.
func (d Dictionaries) AircraftName(code string) string {
	if name, ok := d.Aircraft[code]; ok && name != "" {
		return toTitle(name)
	}
	return code
}

func toTitle(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
