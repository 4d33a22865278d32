package seatmap

import "strconv"

// SkipColumn is a placeholder in a section's column list. It reserves a
// grid position without emitting a seat, which lets staggered cabins keep
// column alignment.
const SkipColumn = "-"

// CabinSection describes one contiguous seat block of a static layout.
// Column order defines left-to-right position; AisleAfter names the
// columns an aisle gap follows.
type CabinSection struct {
	Name       string
	Cabin      CabinClass
	Rows       []int
	Columns    []string
	AisleAfter []string
}

// SeatKey addresses one seat inside a catalog entry.
type SeatKey struct {
	Row    int
	Column string
}

// SeatOverride replaces the defaults a section expansion would assign.
// A zero Status leaves the default AVAILABLE in place.
type SeatOverride struct {
	Characteristics []string
	Status          Status
}

// Entry is a hand-authored layout for one airline+aircraft pair.
type Entry struct {
	Airline      string
	AirlineCode  string
	Aircraft     string
	AircraftCode string
	Sections     []CabinSection
	Overrides    map[SeatKey]SeatOverride
}

// Catalog is an immutable registry of static layouts, keyed by
// airline and aircraft code. Construct once, share by reference.
type Catalog struct {
	entries map[string]Entry
}

func catalogKey(airlineCode, aircraftCode string) string {
	return airlineCode + "-" + aircraftCode
}

// NewCatalog builds a registry from entries, each keyed by its airline
// and aircraft code.
func NewCatalog(entries ...Entry) *Catalog {
	c := &Catalog{entries: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		c.entries[catalogKey(e.AirlineCode, e.AircraftCode)] = e
	}
	return c
}

// Register returns a copy of the catalog with entry added under the given
// aircraft code. Used for aircraft that fly the same layout under more
// than one equipment code.
func (c *Catalog) Register(aircraftCode string, e Entry) *Catalog {
	next := &Catalog{entries: make(map[string]Entry, len(c.entries)+1)}
	for k, v := range c.entries {
		next.entries[k] = v
	}
	next.entries[catalogKey(e.AirlineCode, aircraftCode)] = e
	return next
}

// Lookup finds the entry for an exact airline+aircraft pair. Absence is
// not an error, it means "use live data".
func (c *Catalog) Lookup(airlineCode, aircraftCode string) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	e, ok := c.entries[catalogKey(airlineCode, aircraftCode)]
	return e, ok
}

// yOffset counts the aisle gaps a seat at colIdx sits to the right of.
// An aisle after the leftmost column shifts nothing; the gap units only
// accumulate for aisles strictly between the origin and the seat.
func (s CabinSection) yOffset(colIdx int) int {
	offset := 0
	for _, aisle := range s.AisleAfter {
		aisleIdx := -1
		for i, col := range s.Columns {
			if col == aisle {
				aisleIdx = i
				break
			}
		}
		if aisleIdx > 0 && aisleIdx < colIdx {
			offset++
		}
	}
	return offset
}

// Expand emits one seat per (row, column) pair of the section's cross
// product, skipping SkipColumn placeholders. Skip columns still occupy
// their index so y positions stay staggered. Overrides may replace a
// seat's characteristics and status; everything else defaults to
// AVAILABLE with no characteristics.
func (s CabinSection) Expand(overrides map[SeatKey]SeatOverride) []Seat {
	seats := make([]Seat, 0, len(s.Rows)*len(s.Columns))
	for _, row := range s.Rows {
		for colIdx, col := range s.Columns {
			if col == SkipColumn {
				continue
			}
			seat := Seat{
				Number: strconv.Itoa(row) + col,
				Row:    row,
				Column: col,
				Coordinates: Coordinates{
					X: row,
					Y: colIdx + s.yOffset(colIdx),
				},
				Cabin:  s.Cabin,
				Status: StatusAvailable,
			}
			if ov, ok := overrides[SeatKey{Row: row, Column: col}]; ok {
				seat.Characteristics = ov.Characteristics
				if ov.Status != "" {
					seat.Status = ov.Status
				}
			}
			seats = append(seats, seat)
		}
	}
	return seats
}

// Seatmap expands the entry into a single-deck normalized seatmap. A
// non-empty cabinFilter keeps only the sections of that cabin class.
func (e Entry) Seatmap(cabinFilter CabinClass) Seatmap {
	var seats []Seat
	for _, section := range e.Sections {
		if cabinFilter != "" && section.Cabin != cabinFilter {
			continue
		}
		seats = append(seats, section.Expand(e.Overrides)...)
	}
	m := Seatmap{
		CarrierCode:  e.AirlineCode,
		AircraftCode: e.AircraftCode,
		AircraftName: e.Aircraft,
	}
	if len(seats) > 0 {
		m.Decks = []Deck{{Seats: seats}}
	}
	return m
}
