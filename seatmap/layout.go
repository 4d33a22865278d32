package seatmap

import (
	"fmt"
	"sort"
	"strings"
)

// maxSeatSize caps how large seats grow on wide viewports. There is no
// lower clamp: the grid shrinks to fit rather than overflow.
const maxSeatSize = 50

// minFontSize keeps seat numbers legible once seats get small.
const minFontSize = 8

// ItemKind tags a render item as a seat or blank space.
type ItemKind int

const (
	ItemSeat ItemKind = iota
	ItemSpacer
)

// RenderItem is one cell run within a row. Span is the number of grid
// columns covered; Width is the pixel width at the plan's seat size.
type RenderItem struct {
	Kind  ItemKind
	Span  int
	Width int
	Seat  *Seat
}

type RenderRow struct {
	Row   int
	Items []RenderItem
	Width int
}

// RenderPlan is the computed layout for one deck. SeatSize, FontSize and
// GapSize apply uniformly; every row's Width equals the plan Width.
type RenderPlan struct {
	SeatSize int
	FontSize int
	GapSize  int
	MaxCols  int
	Width    int
	Rows     []RenderRow
}

// Compact reports whether the plan hit the font floor, the cue for
// renderers to fall back to a denser glyph treatment.
func (p RenderPlan) Compact() bool {
	return p.FontSize == minFontSize
}

// gapFor narrows the inter-seat gap as aircraft get wider so the grid
// still fits the viewport.
func gapFor(maxCols int) int {
	switch {
	case maxCols > 9:
		return 4
	case maxCols > 7:
		return 6
	case maxCols > 5:
		return 8
	default:
		return 10
	}
}

func estimatedAisles(maxCols int) int {
	if maxCols > 7 {
		return 2
	}
	return 1
}

func spacerWidth(span, seatSize, gapSize int) int {
	if span <= 0 {
		return 0
	}
	return span*seatSize + (span-1)*gapSize
}

// Layout computes the render plan for one deck. Rows are partitioned by
// the x coordinate and aligned against the global y extent, so columns
// line up vertically even when rows differ in seat count. An empty deck
// yields an empty plan, never an error.
func Layout(deck Deck, viewportWidth int) RenderPlan {
	if !deck.HasSeats() {
		return RenderPlan{}
	}

	byRow := make(map[int][]Seat)
	globalMinCol := deck.Seats[0].Coordinates.Y
	globalMaxCol := globalMinCol
	for _, s := range deck.Seats {
		byRow[s.Coordinates.X] = append(byRow[s.Coordinates.X], s)
		if s.Coordinates.Y < globalMinCol {
			globalMinCol = s.Coordinates.Y
		}
		if s.Coordinates.Y > globalMaxCol {
			globalMaxCol = s.Coordinates.Y
		}
	}

	maxCols := globalMaxCol - globalMinCol + 1
	gapSize := gapFor(maxCols)

	aisleReserve := estimatedAisles(maxCols) * 2 * gapSize
	seatSize := (viewportWidth - aisleReserve - (maxCols-1)*gapSize) / maxCols
	if seatSize > maxSeatSize {
		seatSize = maxSeatSize
	}
	if seatSize < 1 {
		seatSize = 1
	}
	fontSize := seatSize * 10 / 28
	if fontSize < minFontSize {
		fontSize = minFontSize
	}

	rowNumbers := make([]int, 0, len(byRow))
	for row := range byRow {
		rowNumbers = append(rowNumbers, row)
	}
	sort.Ints(rowNumbers)

	plan := RenderPlan{
		SeatSize: seatSize,
		FontSize: fontSize,
		GapSize:  gapSize,
		MaxCols:  maxCols,
		Width:    maxCols*seatSize + (maxCols-1)*gapSize,
		Rows:     make([]RenderRow, 0, len(rowNumbers)),
	}

	for _, row := range rowNumbers {
		seats := byRow[row]
		sort.Slice(seats, func(i, j int) bool {
			return seats[i].Coordinates.Y < seats[j].Coordinates.Y
		})

		rr := RenderRow{Row: row}
		appendSpacer := func(span int) {
			if span > 0 {
				rr.Items = append(rr.Items, RenderItem{
					Kind:  ItemSpacer,
					Span:  span,
					Width: spacerWidth(span, seatSize, gapSize),
				})
			}
		}

		appendSpacer(seats[0].Coordinates.Y - globalMinCol)
		for i := range seats {
			if i > 0 {
				// Seats more than one unit apart sit across an aisle.
				appendSpacer(seats[i].Coordinates.Y - seats[i-1].Coordinates.Y - 1)
			}
			seat := seats[i]
			rr.Items = append(rr.Items, RenderItem{
				Kind:  ItemSeat,
				Span:  1,
				Width: seatSize,
				Seat:  &seat,
			})
		}
		appendSpacer(globalMaxCol - seats[len(seats)-1].Coordinates.Y)

		for i, item := range rr.Items {
			if i > 0 {
				rr.Width += gapSize
			}
			rr.Width += item.Width
		}
		plan.Rows = append(plan.Rows, rr)
	}

	return plan
}

// DeckPlan pairs a laid-out deck with its label. Label is empty unless
// more than one deck has seats.
type DeckPlan struct {
	Label string
	Plan  RenderPlan
}

// LayoutDecks lays out every non-empty deck independently. Decks without
// seats are skipped entirely, neither rendered nor labeled.
func LayoutDecks(m Seatmap, viewportWidth int) []DeckPlan {
	populated := 0
	for _, d := range m.Decks {
		if d.HasSeats() {
			populated++
		}
	}

	var plans []DeckPlan
	n := 0
	for _, d := range m.Decks {
		if !d.HasSeats() {
			continue
		}
		n++
		dp := DeckPlan{Plan: Layout(d, viewportWidth)}
		if populated > 1 {
			dp.Label = deckLabel(d.Type, n)
		}
		plans = append(plans, dp)
	}
	return plans
}

func deckLabel(deckType string, n int) string {
	switch strings.ToUpper(deckType) {
	case "LOWER", "MAIN":
		return "LOWER DECK"
	case "UPPER":
		return "UPPER DECK"
	default:
		return fmt.Sprintf("DECK %d", n)
	}
}
