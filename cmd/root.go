package cmd

import (
	"fmt"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"skyseat-cli/config"
	"skyseat-cli/service"
	"skyseat-cli/tui"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of SkySeat CLI",
	Long:  `SkySeat CLI Version`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("SkySeat CLI v0.1 -- HEAD")
	},
}

var rootCmd = &cobra.Command{
	Use:   "skyseat",
	Short: "Amadeus flight and seat-map CLI",
	Long:  `Search flights and browse aircraft seat maps from the terminal :)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		_, err = tea.NewProgram(tui.New(client), tea.WithAltScreen()).Run()
		return err
	},
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search flight offers for a route",
	Long:  `Search flight offers between two airports and browse the seat map of one of them`,
	RunE: func(cmd *cobra.Command, args []string) error {
		origin, _ := cmd.Flags().GetString("origin")
		destination, _ := cmd.Flags().GetString("destination")
		date, _ := cmd.Flags().GetString("date")
		class, _ := cmd.Flags().GetString("class")
		return searchOffers(origin, destination, date, class)
	},
}

var airportsCmd = &cobra.Command{
	Use:   "airports",
	Short: "Look up airports by name or code",
	Long:  `Look up airports by city name, airport name or IATA code`,
	RunE: func(cmd *cobra.Command, args []string) error {
		keyword, _ := cmd.Flags().GetString("keyword")
		return searchAirports(keyword)
	},
}

func Execute() {
	rootCmd.AddCommand(searchCmd, airportsCmd, versionCmd)
	searchCmd.Flags().String("origin", "", "origin airport IATA code ex: JFK")
	searchCmd.Flags().String("destination", "", "destination airport IATA code ex: DOH")
	searchCmd.Flags().String("date", "", "departure date ex: 2026-09-14")
	searchCmd.Flags().String("class", "", "travel class ex: [ECONOMY, BUSINESS]")
	airportsCmd.Flags().String("keyword", "", "city or airport name to look up")
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newClient() (*service.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	httpClient := &http.Client{Timeout: 30 * time.Second}
	return service.NewClient(httpClient, cfg.ClientID, cfg.ClientSecret, cfg.BaseURL()), nil
}
