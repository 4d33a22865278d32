package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"skyseat-cli/model"
)

// newTestServer wraps a handler with the token endpoint so client calls
// can authenticate. tokenCalls counts token fetches.
func newTestServer(t *testing.T, tokenCalls *int32, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/security/oauth2/token" {
			if tokenCalls != nil {
				atomic.AddInt32(tokenCalls, 1)
			}
			if err := r.ParseForm(); err != nil {
				t.Fatalf("parse token form: %v", err)
			}
			if r.PostForm.Get("grant_type") != "client_credentials" {
				t.Fatalf("unexpected grant type: %s", r.PostForm.Get("grant_type"))
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"test-token","expires_in":1799}`))
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Fatalf("unexpected authorization header: %q", got)
		}
		handler(w, r)
	}))
}

func TestTokenIsCachedAcrossRequests(t *testing.T) {
	var tokenCalls int32
	server := newTestServer(t, &tokenCalls, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[]}`))
	})
	defer server.Close()

	client := NewClient(server.Client(), "id", "secret", server.URL)

	for i := 0; i < 3; i++ {
		if _, err := client.SearchAirports(context.Background(), "DOH"); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
	}
	if tokenCalls != 1 {
		t.Fatalf("expected 1 token fetch, got %d", tokenCalls)
	}
}

func TestTokenRefreshesAfterUnauthorized(t *testing.T) {
	var tokenCalls, dataCalls int32
	server := newTestServer(t, &tokenCalls, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&dataCalls, 1) == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[]}`))
	})
	defer server.Close()

	client := NewClient(server.Client(), "id", "secret", server.URL)

	if _, err := client.SearchAirports(context.Background(), "DOH"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if tokenCalls != 2 {
		t.Fatalf("expected the token to be refetched after a 401, got %d fetches", tokenCalls)
	}
}

func TestDoJSON_Non2xxReturnsError(t *testing.T) {
	server := newTestServer(t, nil, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	})
	defer server.Close()

	client := NewClient(server.Client(), "id", "secret", server.URL)
	client.maxAttempts = 1

	_, err := client.SearchAirports(context.Background(), "DOH")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "500") || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDoJSON_RetriesTransientServerErrors(t *testing.T) {
	var attempts int32
	server := newTestServer(t, nil, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("retry later"))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"iataCode":"DOH","name":"HAMAD INTL"}]}`))
	})
	defer server.Close()

	client := NewClient(server.Client(), "id", "secret", server.URL)
	client.retryBase = time.Millisecond
	client.retryCap = 2 * time.Millisecond

	airports, err := client.SearchAirports(context.Background(), "DOH")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
	if len(airports) != 1 || airports[0].IataCode != "DOH" {
		t.Fatalf("unexpected payload: %+v", airports)
	}
}

func TestDoJSON_DoesNotRetryOnClientErrors(t *testing.T) {
	var attempts int32
	server := newTestServer(t, nil, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("bad request"))
	})
	defer server.Close()

	client := NewClient(server.Client(), "id", "secret", server.URL)
	client.retryBase = time.Millisecond
	client.retryCap = 2 * time.Millisecond

	_, err := client.SearchAirports(context.Background(), "DOH")
	if err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}
}

func TestIsNotFound(t *testing.T) {
	server := newTestServer(t, nil, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	defer server.Close()

	client := NewClient(server.Client(), "id", "secret", server.URL)

	_, err := client.SearchAirports(context.Background(), "XXX")
	if !IsNotFound(err) {
		t.Fatalf("expected a not-found error, got %v", err)
	}
}

func TestSearchFlightOffers_OK(t *testing.T) {
	server := newTestServer(t, nil, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/shopping/flight-offers" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("originLocationCode") != "JFK" || q.Get("destinationLocationCode") != "DOH" {
			t.Fatalf("unexpected route query: %s", r.URL.RawQuery)
		}
		if q.Get("travelClass") != "BUSINESS" {
			t.Fatalf("unexpected travel class: %s", q.Get("travelClass"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "data": [
    {
      "id": "1",
      "itineraries": [
        {
          "duration": "PT12H25M",
          "segments": [
            {
              "departure": {"iataCode": "JFK", "at": "2026-09-10T22:30:00"},
              "arrival": {"iataCode": "DOH", "at": "2026-09-11T17:55:00"},
              "carrierCode": "QR",
              "number": "704",
              "aircraft": {"code": "77W"}
            }
          ]
        }
      ],
      "price": {"currency": "USD", "total": "4321.00"},
      "travelerPricings": [
        {"travelerId": "1", "fareDetailsBySegment": [{"segmentId": "1", "cabin": "BUSINESS"}]}
      ]
    }
  ],
  "dictionaries": {"aircraft": {"77W": "BOEING 777-300ER"}, "carriers": {"QR": "QATAR AIRWAYS"}}
}`))
	})
	defer server.Close()

	client := NewClient(server.Client(), "id", "secret", server.URL)

	resp, err := client.SearchFlightOffers(context.Background(), OfferSearch{
		Origin:        "JFK",
		Destination:   "DOH",
		DepartureDate: "2026-09-10",
		TravelClass:   "BUSINESS",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(resp.Data) != 1 {
		t.Fatalf("expected 1 offer, got %d", len(resp.Data))
	}
	offer := resp.Data[0]
	if offer.AircraftCode() != "77W" {
		t.Fatalf("unexpected aircraft: %s", offer.AircraftCode())
	}
	if offer.OperatingCarrier() != "QR" {
		t.Fatalf("unexpected carrier: %s", offer.OperatingCarrier())
	}
	if offer.CabinClass() != "BUSINESS" {
		t.Fatalf("unexpected cabin: %s", offer.CabinClass())
	}
	if resp.Dictionaries.AircraftName("77W") != "Boeing 777-300er" {
		t.Fatalf("unexpected aircraft name: %s", resp.Dictionaries.AircraftName("77W"))
	}
}

func TestGetSeatmap_PostsOfferBack(t *testing.T) {
	server := newTestServer(t, nil, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/shopping/seatmaps" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", r.Method)
		}
		var body struct {
			Data []model.FlightOffer `json:"data"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		if len(body.Data) != 1 || body.Data[0].Id != "1" {
			t.Fatalf("offer should be posted back verbatim, got %+v", body.Data)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "data": [
    {
      "carrierCode": "QR",
      "number": "704",
      "aircraft": {"code": "77W"},
      "decks": [
        {
          "deckType": "MAIN",
          "seats": [
            {
              "number": "14A",
              "coordinates": {"x": 14, "y": 0},
              "travelerPricing": [{"seatAvailabilityStatus": "AVAILABLE"}],
              "characteristicsCodes": ["W", "CH"]
            }
          ]
        }
      ]
    }
  ]
}`))
	})
	defer server.Close()

	client := NewClient(server.Client(), "id", "secret", server.URL)

	offer := model.FlightOffer{
		Id:          "1",
		Itineraries: []model.Itinerary{{Segments: []model.Segment{{CarrierCode: "QR"}}}},
	}
	resp, err := client.GetSeatmap(context.Background(), offer)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(resp.Data) != 1 {
		t.Fatalf("expected 1 seatmap, got %d", len(resp.Data))
	}
	deck := resp.Data[0].Decks[0]
	if len(deck.Seats) != 1 || deck.Seats[0].Number != "14A" {
		t.Fatalf("unexpected deck: %+v", deck)
	}
}
