package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/akarpov/realocate/internal/cache"
	"github.com/akarpov/realocate/internal/model"
)

// Retry/backoff policy for primary-provider timeouts
const (
	retryBaseDelay = 500 * time.Millisecond
	retryMaxDelay  = 4 * time.Second
	maxBodyBytes   = 1_000_000
)

// Nominatim is the broad-coverage, OpenStreetMap-derived primary provider.
// Every request passes the shared rate limiter; results are cached in a
// bounded evict-oldest map keyed by the normalized query tuple.
type Nominatim struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	country    string
	limiter    *Limiter
	cache      *cache.Bounded
	maxRetries int
}

// NewNominatim creates the primary provider client. The limiter is shared
// with every other caller in the process.
func NewNominatim(cfg model.GeocodeConfig, limiter *Limiter) *Nominatim {
	return &Nominatim{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimSuffix(cfg.PrimaryBaseURL, "/"),
		userAgent:  cfg.UserAgent,
		country:    cfg.Country,
		limiter:    limiter,
		cache:      cache.NewBounded(cfg.CacheSize),
		maxRetries: cfg.MaxRetries,
	}
}

// nominatimResult is one feature from the provider's JSON response
type nominatimResult struct {
	Lat         string            `json:"lat"`
	Lon         string            `json:"lon"`
	DisplayName string            `json:"display_name"`
	Class       string            `json:"class"`
	Type        string            `json:"type"`
	Importance  float64           `json:"importance"`
	Address     map[string]string `json:"address"`
}

// Search geocodes one query. Provider errors and exhausted retries are
// demoted to ErrNotFound; the pipeline above never sees transport failures.
func (n *Nominatim) Search(ctx context.Context, query string, kind model.LocationKind) (*model.GeocodedLocation, error) {
	key := cache.Key("nominatim", string(kind), strings.ToLower(strings.TrimSpace(query)))
	if data, found := n.cache.Get(key); found {
		var loc model.GeocodedLocation
		if err := json.Unmarshal(data, &loc); err == nil {
			return &loc, nil
		}
	}

	results, err := n.fetch(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("geocode %q: %w", query, ErrNotFound)
	}

	best := results[0]
	lat, latErr := strconv.ParseFloat(best.Lat, 64)
	lon, lonErr := strconv.ParseFloat(best.Lon, 64)
	if latErr != nil || lonErr != nil {
		return nil, fmt.Errorf("geocode %q: %w", query, ErrNotFound)
	}

	loc := &model.GeocodedLocation{
		Latitude:         lat,
		Longitude:        lon,
		FormattedAddress: best.DisplayName,
		LocationType:     kind,
		Confidence:       nominatimConfidence(kind, best),
		Components:       best.Address,
	}

	if data, err := json.Marshal(loc); err == nil {
		_ = n.cache.Set(key, data, 0)
	}
	return loc, nil
}

// fetch performs the HTTP request with rate limiting and timeout retries
func (n *Nominatim) fetch(ctx context.Context, query string) ([]nominatimResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("addressdetails", "1")
	if n.country != "" {
		params.Set("countrycodes", n.country)
	}
	endpoint := n.baseURL + "/search?" + params.Encode()

	var lastErr error
	for attempt := 0; attempt <= n.maxRetries; attempt++ {
		if attempt > 0 {
			delay := retryBaseDelay << (attempt - 1)
			if delay > retryMaxDelay {
				delay = retryMaxDelay
			}
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("geocode: %w", ErrNotFound)
			case <-time.After(delay):
			}
		}

		if err := n.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("geocode: %w", ErrNotFound)
		}

		results, err := n.doRequest(ctx, endpoint)
		if err == nil {
			return results, nil
		}
		lastErr = err
		if !isRetryable(err) {
			break
		}
	}

	// Fail closed: the caller sees not-found, never a transport error
	return nil, fmt.Errorf("geocode after retries (%v): %w", lastErr, ErrNotFound)
}

func (n *Nominatim) doRequest(ctx context.Context, endpoint string) ([]nominatimResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", n.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var results []nominatimResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return results, nil
}

// statusError is a non-2xx response from the provider
type statusError int

func (e statusError) Error() string {
	return fmt.Sprintf("unexpected status: %d", int(e))
}

// isRetryable reports whether an error is worth another attempt: timeouts
// and provider-side 5xx responses qualify, anything else does not.
func isRetryable(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var s statusError
	if errors.As(err, &s) {
		return int(s) >= 500
	}
	return false
}

// nominatimConfidence derives confidence from how well the returned feature
// class/type matches the requested kind, scaled by the provider's own
// importance score. A building-grade hit for an address query lands near
// 0.95; a generic hit for the wrong kind caps near 0.75-0.85.
func nominatimConfidence(kind model.LocationKind, r nominatimResult) float64 {
	var base float64
	switch kind {
	case model.KindAddress:
		switch {
		case r.Class == "building",
			r.Type == "house", r.Type == "residential", r.Type == "apartments":
			base = 0.95
		case r.Class == "highway":
			base = 0.85 // Street-level hit for an address query
		default:
			base = 0.75
		}
	case model.KindIntersection:
		if r.Class == "highway" {
			base = 0.90
		} else {
			base = 0.75
		}
	case model.KindPostalCode:
		if r.Type == "postcode" || r.Class == "place" {
			base = 0.90
		} else {
			base = 0.80
		}
	case model.KindNeighborhood:
		if r.Class == "place" &&
			(r.Type == "suburb" || r.Type == "neighbourhood" || r.Type == "quarter") {
			base = 0.90
		} else {
			base = 0.75
		}
	default:
		base = 0.75
	}

	if r.Importance <= 0 {
		return base
	}
	scale := 0.85 + 0.15*math.Min(r.Importance/0.75, 1.0)
	return math.Min(base*scale, 1.0)
}
