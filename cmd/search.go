package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/manifoldco/promptui"
	"golang.org/x/exp/maps"
	"skyseat-cli/model"
	"skyseat-cli/seatmap"
	"skyseat-cli/service"
	"skyseat-cli/store"
)

func searchOffers(origin, destination, date, class string) error {
	var err error
	if origin == "" {
		if origin, err = promptIATA("Origin airport"); err != nil {
			return err
		}
	}
	if destination == "" {
		if destination, err = promptIATA("Destination airport"); err != nil {
			return err
		}
	}
	if date == "" {
		if date, err = promptDate(); err != nil {
			return err
		}
	}
	if class == "" {
		if class, err = promptClass(); err != nil {
			return err
		}
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	ctx := context.Background()
	resp, err := client.SearchFlightOffers(ctx, service.OfferSearch{
		Origin:        strings.ToUpper(origin),
		Destination:   strings.ToUpper(destination),
		DepartureDate: date,
		TravelClass:   class,
	})
	if err != nil {
		return err
	}
	if len(resp.Data) == 0 {
		fmt.Println("No flights found for this route and date.")
		return nil
	}

	_ = store.RememberRoute(store.RecentRoute{
		Origin:      strings.ToUpper(origin),
		Destination: strings.ToUpper(destination),
		Date:        date,
		TravelClass: class,
	})

	renderOffers(resp)

	offer, ok, err := promptSelectOffer(resp.Data)
	if err != nil || !ok {
		return err
	}
	return showSeatmap(client, offer)
}

func renderOffers(resp model.FlightOffersResponse) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Flight", "Airline", "Route", "Departure", "Aircraft", "Cabin", "Price"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, AutoMerge: true, WidthMax: 24},
		{Number: 5, AutoMerge: true, WidthMax: 24},
	})
	t.Style().Options.SeparateRows = true

	for _, offer := range resp.Data {
		seg, ok := offer.FirstSegment()
		if !ok {
			continue
		}
		t.AppendRow(table.Row{
			seg.CarrierCode + " " + seg.Number,
			model.AirlineName(offer.OperatingCarrier()),
			seg.Departure.IataCode + " -> " + seg.Arrival.IataCode,
			formatSegmentTime(seg.Departure.At),
			resp.Dictionaries.AircraftName(seg.Aircraft.Code),
			offer.CabinClass(),
			offer.Price.Total + " " + offer.Price.Currency,
		})
	}
	t.Render()
}

// showSeatmap prints a plain-text rendering of the seat map, one glyph
// column per seat, aisles widened by the coordinate gaps.
func showSeatmap(client *service.Client, offer model.FlightOffer) error {
	resp, err := client.GetSeatmap(context.Background(), offer)
	if err != nil {
		if service.IsNotFound(err) {
			fmt.Println("No seat map available for this flight.")
			return nil
		}
		return err
	}
	if len(resp.Data) == 0 {
		fmt.Println("No seat map available for this flight.")
		return nil
	}

	normalizer := seatmap.NewNormalizer(seatmap.DefaultCatalog())
	parsed := seatmap.Parse(resp.Data[0])
	m := normalizer.Normalize(parsed, offer.OperatingCarrier(), offer.AircraftCode(), "")
	if m.Empty() {
		fmt.Println("No seat map available for this flight.")
		return nil
	}

	fmt.Printf("\n%s %s%s • %s\n", model.AirlineName(m.CarrierCode), m.CarrierCode, m.FlightNumber, m.AircraftName)
	for _, dp := range seatmap.LayoutDecks(m, 80*8) {
		if dp.Label != "" {
			fmt.Println(dp.Label)
		}
		printDeck(dp.Plan)
	}
	fmt.Println("o available   x occupied   # blocked   ? unknown")
	return nil
}

func printDeck(plan seatmap.RenderPlan) {
	for _, row := range plan.Rows {
		var b strings.Builder
		fmt.Fprintf(&b, "%3d  ", row.Row)
		for _, item := range row.Items {
			if item.Kind == seatmap.ItemSpacer {
				b.WriteString(strings.Repeat("  ", item.Span))
				continue
			}
			b.WriteString(statusGlyph(item.Seat.Status))
			b.WriteString(" ")
		}
		fmt.Println(strings.TrimRight(b.String(), " "))
	}
}

func statusGlyph(status seatmap.Status) string {
	switch status {
	case seatmap.StatusAvailable:
		return "o"
	case seatmap.StatusOccupied:
		return "x"
	case seatmap.StatusBlocked:
		return "#"
	default:
		return "?"
	}
}

func promptIATA(label string) (string, error) {
	validate := func(input string) error {
		if len(input) != 3 {
			return errors.New("enter a 3-letter IATA code")
		}
		return nil
	}

	prompt := promptui.Prompt{
		Label:    label,
		Validate: validate,
	}
	return prompt.Run()
}

func promptDate() (string, error) {
	validate := func(input string) error {
		if _, err := time.Parse(time.DateOnly, input); err != nil {
			return errors.New("enter a date as YYYY-MM-DD")
		}
		return nil
	}

	prompt := promptui.Prompt{
		Label:    "Departure date",
		Default:  time.Now().AddDate(0, 0, 7).Format(time.DateOnly),
		Validate: validate,
	}
	return prompt.Run()
}

func promptClass() (string, error) {
	classByLabel := map[string]string{
		"Economy":         "ECONOMY",
		"Premium Economy": "PREMIUM_ECONOMY",
		"Business":        "BUSINESS",
		"First":           "FIRST",
	}

	selectClass := promptui.Select{
		Label: "Travel class",
		Items: maps.Keys(classByLabel),
		Size:  4,
	}
	_, label, err := selectClass.Run()
	if err != nil {
		return "", err
	}
	return classByLabel[label], nil
}

func promptSelectOffer(offers []model.FlightOffer) (model.FlightOffer, bool, error) {
	labels := make([]string, 0, len(offers)+1)
	offerByLabel := make(map[string]model.FlightOffer, len(offers))
	for _, offer := range offers {
		seg, ok := offer.FirstSegment()
		if !ok {
			continue
		}
		label := fmt.Sprintf("%s %s  %s -> %s  %s %s",
			seg.CarrierCode, seg.Number,
			seg.Departure.IataCode, seg.Arrival.IataCode,
			offer.Price.Total, offer.Price.Currency)
		labels = append(labels, label)
		offerByLabel[label] = offer
	}
	const done = "Done, no seat map"
	labels = append(labels, done)

	selectOffer := promptui.Select{
		Label: "View seat map",
		Items: labels,
		Size:  10,
	}
	_, label, err := selectOffer.Run()
	if err != nil || label == done {
		return model.FlightOffer{}, false, err
	}
	offer, ok := offerByLabel[label]
	return offer, ok, nil
}

func formatSegmentTime(at string) string {
	ts, err := time.Parse("2006-01-02T15:04:05", at)
	if err != nil {
		return at
	}
	return ts.Format("Jan 2 15:04")
}
