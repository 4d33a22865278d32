package store

import (
	"testing"

	"skyseat-cli/model"
)

func setTestDirs(t *testing.T) {
	t.Helper()
	root := t.TempDir()
	t.Setenv("HOME", root)
	t.Setenv("XDG_CONFIG_HOME", root)
	t.Setenv("XDG_CACHE_HOME", root)
}

func TestRememberRoute_RoundTrip(t *testing.T) {
	setTestDirs(t)

	routes, err := LoadRecentRoutes()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(routes) != 0 {
		t.Fatalf("expected empty history, got %+v", routes)
	}

	first := RecentRoute{Origin: "JFK", Destination: "DOH", Date: "2026-09-10", TravelClass: "BUSINESS"}
	second := RecentRoute{Origin: "LHR", Destination: "DOH", Date: "2026-09-12", TravelClass: "ECONOMY"}
	if err := RememberRoute(first); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if err := RememberRoute(second); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	routes, err = LoadRecentRoutes()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(routes) != 2 {
		t.Fatalf("expected 2 routes, got %d", len(routes))
	}
	if routes[0].Origin != "LHR" {
		t.Fatalf("most recent route should lead, got %+v", routes[0])
	}
}

func TestRememberRoute_DeduplicatesSameRoute(t *testing.T) {
	setTestDirs(t)

	route := RecentRoute{Origin: "JFK", Destination: "DOH", Date: "2026-09-10", TravelClass: "BUSINESS"}
	if err := RememberRoute(route); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	route.Date = "2026-09-20"
	if err := RememberRoute(route); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	routes, err := LoadRecentRoutes()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(routes) != 1 {
		t.Fatalf("the same route should replace its earlier entry, got %+v", routes)
	}
	if routes[0].Date != "2026-09-20" {
		t.Fatalf("expected the newer date kept, got %s", routes[0].Date)
	}
}

func TestAirportCache_RoundTrip(t *testing.T) {
	setTestDirs(t)

	_, fresh, err := LoadAirportCache("doha")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if fresh {
		t.Fatal("missing cache must not report fresh")
	}

	airports := []model.Airport{{IataCode: "DOH", Name: "HAMAD INTL"}}
	if err := SaveAirportCache("doha", airports); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	cached, fresh, err := LoadAirportCache("Doha")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !fresh {
		t.Fatal("a just-saved cache should be fresh")
	}
	if len(cached) != 1 || cached[0].IataCode != "DOH" {
		t.Fatalf("unexpected cached airports: %+v", cached)
	}
}

func TestCacheKeySanitizesKeyword(t *testing.T) {
	if got := cacheKey("New York / JFK"); got != "new_york___jfk" {
		t.Fatalf("unexpected cache key %q", got)
	}
}
