package model

// airlineNames covers the carriers most likely to show up in searches.
// Anything missing falls back to the raw IATA code.
var airlineNames = map[string]string{
	"AA": "American Airlines",
	"AC": "Air Canada",
	"AF": "Air France",
	"AY": "Finnair",
	"AZ": "ITA Airways",
	"BA": "British Airways",
	"CX": "Cathay Pacific",
	"DL": "Delta Air Lines",
	"EK": "Emirates",
	"EY": "Etihad Airways",
	"F9": "Frontier Airlines",
	"IB": "Iberia",
	"JL": "Japan Airlines",
	"KL": "KLM",
	"LH": "Lufthansa",
	"LX": "Swiss International Air Lines",
	"NH": "All Nippon Airways",
	"NK": "Spirit Airlines",
	"OS": "Austrian Airlines",
	"QF": "Qantas",
	"QR": "Qatar Airways",
	"SQ": "Singapore Airlines",
	"TK": "Turkish Airlines",
	"TP": "TAP Air Portugal",
	"UA": "United Airlines",
	"VS": "Virgin Atlantic",
	"WN": "Southwest Airlines",
}

// AirlineName resolves an IATA carrier code to a display name.
func AirlineName(code string) string {
	if name, ok := airlineNames[code]; ok {
		return name
	}
	return code
}
