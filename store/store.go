package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"skyseat-cli/model"
)

const (
	airportCacheTTL = 7 * 24 * time.Hour
	maxRecentRoutes = 8
)

type cacheEnvelope[T any] struct {
	UpdatedAt time.Time `json:"updated_at"`
	Data      T         `json:"data"`
}

// RecentRoute is one remembered search.
type RecentRoute struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Date        string `json:"date"`
	TravelClass string `json:"travel_class"`
}

type routeHistory struct {
	Routes []RecentRoute `json:"routes"`
}

// LoadAirportCache returns cached airport results for a keyword. The
// second return reports whether the cache is still fresh.
func LoadAirportCache(keyword string) ([]model.Airport, bool, error) {
	path, err := cachePath(fmt.Sprintf("airports_%s.json", cacheKey(keyword)))
	if err != nil {
		return nil, false, err
	}
	cache, err := loadCache[[]model.Airport](path)
	if err != nil {
		return nil, false, err
	}
	return cache.Data, time.Since(cache.UpdatedAt) <= airportCacheTTL, nil
}

func SaveAirportCache(keyword string, airports []model.Airport) error {
	path, err := cachePath(fmt.Sprintf("airports_%s.json", cacheKey(keyword)))
	if err != nil {
		return err
	}
	return saveCache(path, airports)
}

func LoadRecentRoutes() ([]RecentRoute, error) {
	path, err := configPath("history.json")
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var history routeHistory
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, errors.New("invalid route history format")
	}
	return history.Routes, nil
}

// RememberRoute puts a search at the front of the history, dropping any
// earlier entry for the same route and class.
func RememberRoute(route RecentRoute) error {
	history, _ := LoadRecentRoutes()
	next := []RecentRoute{route}

	for _, existing := range history {
		if strings.EqualFold(existing.Origin, route.Origin) &&
			strings.EqualFold(existing.Destination, route.Destination) &&
			strings.EqualFold(existing.TravelClass, route.TravelClass) {
			continue
		}
		next = append(next, existing)
		if len(next) >= maxRecentRoutes {
			break
		}
	}

	return saveRecentRoutes(next)
}

func loadCache[T any](path string) (cacheEnvelope[T], error) {
	var cache cacheEnvelope[T]
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cache, nil
		}
		return cache, err
	}
	if err := json.Unmarshal(data, &cache); err != nil {
		return cache, err
	}
	return cache, nil
}

func saveCache[T any](path string, data T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	cache := cacheEnvelope[T]{
		UpdatedAt: time.Now(),
		Data:      data,
	}
	payload, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

func saveRecentRoutes(routes []RecentRoute) error {
	path, err := configPath("history.json")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	history := routeHistory{Routes: routes}
	payload, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

func configPath(name string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "skyseat-cli", name), nil
}

func cachePath(name string) (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "skyseat-cli", name), nil
}

func cacheKey(keyword string) string {
	key := strings.ToLower(strings.TrimSpace(keyword))
	var b strings.Builder
	for _, r := range key {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
