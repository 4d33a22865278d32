package model

// LocationsResponse is the body returned by the Amadeus airport and city
// search endpoint.
type LocationsResponse struct {
	Data []Airport `json:"data"`
}

type Airport struct {
	IataCode string  `json:"iataCode"`
	Name     string  `json:"name"`
	SubType  string  `json:"subType,omitempty"`
	Address  Address `json:"address"`
}

type Address struct {
	CityName    string `json:"cityName,omitempty"`
	CountryName string `json:"countryName,omitempty"`
}
