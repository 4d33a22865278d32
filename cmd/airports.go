package cmd

import (
	"context"
	"errors"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/manifoldco/promptui"
	"skyseat-cli/model"
	"skyseat-cli/store"
)

func searchAirports(keyword string) error {
	if keyword == "" {
		var err error
		keyword, err = promptKeyword()
		if err != nil {
			return err
		}
	}

	airports, err := lookupAirports(keyword)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Code", "Airport", "City", "Country"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 40},
	})
	for _, airport := range airports {
		t.AppendRow(table.Row{
			airport.IataCode,
			airport.Name,
			airport.Address.CityName,
			airport.Address.CountryName,
		})
	}
	t.Render()
	return nil
}

// lookupAirports serves from the local cache when fresh, hitting the API
// only on a miss.
func lookupAirports(keyword string) ([]model.Airport, error) {
	if cached, fresh, err := store.LoadAirportCache(keyword); err == nil && fresh {
		return cached, nil
	}

	client, err := newClient()
	if err != nil {
		return nil, err
	}
	airports, err := client.SearchAirports(context.Background(), keyword)
	if err != nil {
		return nil, err
	}
	if len(airports) > 0 {
		_ = store.SaveAirportCache(keyword, airports)
	}
	return airports, nil
}

func promptKeyword() (string, error) {
	validate := func(input string) error {
		if input == "" {
			return errors.New("keyword is required")
		}
		return nil
	}

	prompt := promptui.Prompt{
		Label:    "City or airport",
		Validate: validate,
	}
	return prompt.Run()
}
