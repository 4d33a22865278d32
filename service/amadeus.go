package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"skyseat-cli/model"
)

const (
	defaultBaseURL     = "https://test.api.amadeus.com"
	defaultMaxAttempts = 3
	defaultRetryBase   = 200 * time.Millisecond
	defaultRetryCap    = 1200 * time.Millisecond

	// Refresh the token slightly before the server-side expiry so
	// in-flight requests never race it.
	tokenExpirySkew = 30 * time.Second
)

// Client wraps HTTP access to the Amadeus self-service APIs. It handles
// the OAuth2 client-credentials flow and caches the access token until
// shortly before expiry.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	clientID     string
	clientSecret string
	maxAttempts  int
	retryBase    time.Duration
	retryCap     time.Duration

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// APIError is returned when the Amadeus API responds with a non-2xx status.
type APIError struct {
	StatusCode int
	Status     string
	Endpoint   string
	Body       string
}

func (e *APIError) Error() string {
	if e == nil {
		return "amadeus api error"
	}
	return fmt.Sprintf("amadeus api error: %s: %s", e.Status, e.Body)
}

// IsNotFound reports whether the error represents a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// NewClient creates a new API client. If httpClient is nil, a default
// client is used. baseURL may be empty to use the test environment.
func NewClient(httpClient *http.Client, clientID, clientSecret, baseURL string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 12 * time.Second}
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient:   httpClient,
		baseURL:      strings.TrimRight(baseURL, "/"),
		clientID:     clientID,
		clientSecret: clientSecret,
		maxAttempts:  defaultMaxAttempts,
		retryBase:    defaultRetryBase,
		retryCap:     defaultRetryCap,
	}
}

// SearchAirports looks up airports matching a keyword.
func (c *Client) SearchAirports(ctx context.Context, keyword string) ([]model.Airport, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, errors.New("keyword is required")
	}
	params := url.Values{}
	params.Set("subType", "AIRPORT")
	params.Set("keyword", keyword)
	params.Set("page[limit]", "5")
	endpoint := fmt.Sprintf("%s/v1/reference-data/locations?%s", c.baseURL, params.Encode())

	var resp model.LocationsResponse
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// OfferSearch holds the query for one flight-offers search.
type OfferSearch struct {
	Origin        string
	Destination   string
	DepartureDate string
	Adults        int
	TravelClass   string
	Max           int
}

// SearchFlightOffers fetches flight offers for a route and date.
func (c *Client) SearchFlightOffers(ctx context.Context, search OfferSearch) (model.FlightOffersResponse, error) {
	if search.Origin == "" || search.Destination == "" || search.DepartureDate == "" {
		return model.FlightOffersResponse{}, errors.New("origin, destination and departure date are required")
	}
	if search.Adults < 1 {
		search.Adults = 1
	}
	if search.Max < 1 {
		search.Max = 20
	}
	if search.TravelClass == "" {
		search.TravelClass = "ECONOMY"
	}

	params := url.Values{}
	params.Set("originLocationCode", search.Origin)
	params.Set("destinationLocationCode", search.Destination)
	params.Set("departureDate", search.DepartureDate)
	params.Set("adults", fmt.Sprintf("%d", search.Adults))
	params.Set("travelClass", search.TravelClass)
	params.Set("max", fmt.Sprintf("%d", search.Max))
	params.Set("currencyCode", "USD")
	endpoint := fmt.Sprintf("%s/v2/shopping/flight-offers?%s", c.baseURL, params.Encode())

	var resp model.FlightOffersResponse
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return model.FlightOffersResponse{}, err
	}
	return resp, nil
}

// GetSeatmap fetches the seat map display for one flight offer. The
// offer is posted back verbatim, as the API requires.
func (c *Client) GetSeatmap(ctx context.Context, offer model.FlightOffer) (model.SeatmapResponse, error) {
	if len(offer.Itineraries) == 0 {
		return model.SeatmapResponse{}, errors.New("offer has no itineraries")
	}
	endpoint := fmt.Sprintf("%s/v1/shopping/seatmaps", c.baseURL)
	body := struct {
		Data []model.FlightOffer `json:"data"`
	}{Data: []model.FlightOffer{offer}}

	var resp model.SeatmapResponse
	if err := c.doJSON(ctx, http.MethodPost, endpoint, body, &resp); err != nil {
		return model.SeatmapResponse{}, err
	}
	return resp, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// token returns a cached access token, fetching a fresh one when the
// cache is empty or about to expire.
func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)

	endpoint := fmt.Sprintf("%s/v1/security/oauth2/token", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, 8<<10))
		return "", &APIError{
			StatusCode: res.StatusCode,
			Status:     res.Status,
			Endpoint:   endpoint,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	var tok tokenResponse
	if err := json.NewDecoder(res.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if tok.AccessToken == "" {
		return "", errors.New("token response missing access_token")
	}

	c.accessToken = tok.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - tokenExpirySkew)
	return c.accessToken, nil
}

// invalidateToken drops the cached token so the next request fetches a
// fresh one. Called after a 401.
func (c *Client) invalidateToken() {
	c.mu.Lock()
	c.accessToken = ""
	c.tokenExpiry = time.Time{}
	c.mu.Unlock()
}

func (c *Client) doJSON(ctx context.Context, method, endpoint string, body any, out any) error {
	maxAttempts := c.maxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		tok, err := c.token(ctx)
		if err != nil {
			return err
		}

		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+tok)
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		res, err := c.httpClient.Do(req)
		if err != nil {
			if c.shouldRetryNetworkError(err) && attempt < maxAttempts {
				if waitErr := c.waitRetry(ctx, attempt); waitErr != nil {
					return waitErr
				}
				continue
			}
			return fmt.Errorf("request failed: %w", err)
		}

		if res.StatusCode == http.StatusUnauthorized {
			_ = res.Body.Close()
			c.invalidateToken()
			if attempt < maxAttempts {
				continue
			}
			return &APIError{StatusCode: res.StatusCode, Status: res.Status, Endpoint: endpoint}
		}

		if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
			snippet, _ := io.ReadAll(io.LimitReader(res.Body, 8<<10))
			_ = res.Body.Close()

			apiErr := &APIError{
				StatusCode: res.StatusCode,
				Status:     res.Status,
				Endpoint:   endpoint,
				Body:       strings.TrimSpace(string(snippet)),
			}
			if c.shouldRetryStatus(res.StatusCode) && attempt < maxAttempts {
				if waitErr := c.waitRetry(ctx, attempt); waitErr != nil {
					return waitErr
				}
				continue
			}
			return apiErr
		}

		dec := json.NewDecoder(res.Body)
		err = dec.Decode(out)
		_ = res.Body.Close()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("decode response from %s: %w", endpoint, err)
		}
		return nil
	}

	return errors.New("request failed after retries")
}

func (c *Client) shouldRetryStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func (c *Client) shouldRetryNetworkError(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

func (c *Client) waitRetry(ctx context.Context, attempt int) error {
	delay := c.retryDelay(attempt)
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Client) retryDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	base := c.retryBase
	if base <= 0 {
		base = defaultRetryBase
	}
	cap := c.retryCap
	if cap <= 0 {
		cap = defaultRetryCap
	}

	delay := base
	for i := 1; i < attempt; i++ {
		if delay >= cap/2 {
			return cap
		}
		delay *= 2
	}
	if delay > cap {
		return cap
	}
	return delay
}
