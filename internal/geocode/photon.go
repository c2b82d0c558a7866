package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/akarpov/realocate/internal/cache"
	"github.com/akarpov/realocate/internal/model"
)

// Photon is the POI/street-index secondary provider, used preferentially
// for intersections and ambiguous landmark queries. Results are cached
// with a TTL rather than bounded by count.
type Photon struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	cache      *cache.Memory
	ttl        time.Duration
}

// NewPhoton creates the secondary provider client
func NewPhoton(cfg model.GeocodeConfig) *Photon {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Photon{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimSuffix(cfg.SecondaryBaseURL, "/"),
		userAgent:  cfg.UserAgent,
		cache:      cache.NewMemory(ttl, 10*time.Minute),
		ttl:        ttl,
	}
}

// photonFeature is one GeoJSON feature from the provider
type photonFeature struct {
	Geometry struct {
		Coordinates []float64 `json:"coordinates"` // lon, lat
	} `json:"geometry"`
	Properties struct {
		Name        string    `json:"name"`
		Street      string    `json:"street"`
		HouseNumber string    `json:"housenumber"`
		City        string    `json:"city"`
		State       string    `json:"state"`
		Postcode    string    `json:"postcode"`
		Country     string    `json:"country"`
		OSMKey      string    `json:"osm_key"`
		OSMValue    string    `json:"osm_value"`
		Extent      []float64 `json:"extent"` // minLon, maxLat, maxLon, minLat
	} `json:"properties"`
}

type photonResponse struct {
	Features []photonFeature `json:"features"`
}

// Search geocodes one query through the POI index. Fails closed: any
// transport or decode problem surfaces as ErrNotFound.
func (p *Photon) Search(ctx context.Context, query string, kind model.LocationKind) (*model.GeocodedLocation, error) {
	key := cache.Key("photon", string(kind), strings.ToLower(strings.TrimSpace(query)))
	if data, found := p.cache.Get(key); found {
		var loc model.GeocodedLocation
		if err := json.Unmarshal(data, &loc); err == nil {
			return &loc, nil
		}
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", "1")
	params.Set("lang", "en")
	endpoint := p.baseURL + "/api?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("geocode %q: %w", query, ErrNotFound)
	}
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode %q: %w", query, ErrNotFound)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode %q (status %d): %w", query, resp.StatusCode, ErrNotFound)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("geocode %q: %w", query, ErrNotFound)
	}

	var decoded photonResponse
	if err := json.Unmarshal(body, &decoded); err != nil || len(decoded.Features) == 0 {
		return nil, fmt.Errorf("geocode %q: %w", query, ErrNotFound)
	}

	feat := decoded.Features[0]
	if len(feat.Geometry.Coordinates) < 2 {
		return nil, fmt.Errorf("geocode %q: %w", query, ErrNotFound)
	}

	loc := &model.GeocodedLocation{
		Latitude:         feat.Geometry.Coordinates[1],
		Longitude:        feat.Geometry.Coordinates[0],
		FormattedAddress: formatPhoton(feat),
		LocationType:     kind,
		Confidence:       photonConfidence(kind, feat),
		Components:       photonComponents(feat),
	}

	if data, err := json.Marshal(loc); err == nil {
		_ = p.cache.Set(key, data, p.ttl)
	}
	return loc, nil
}

// photonConfidence scores a feature against the requested kind: type match
// is worth the most, each populated field adds a little, and a precise
// extent (a building, not a district) adds the rest. The caller discards
// anything under its acceptance threshold.
func photonConfidence(kind model.LocationKind, f photonFeature) float64 {
	confidence := 0.5

	if photonTypeMatches(kind, f) {
		confidence += 0.2
	}
	if f.Properties.Name != "" {
		confidence += 0.1
	}
	if f.Properties.Street != "" {
		confidence += 0.05
	}
	if f.Properties.City != "" {
		confidence += 0.05
	}
	if f.Properties.Postcode != "" {
		confidence += 0.05
	}
	if preciseExtent(f.Properties.Extent) {
		confidence += 0.1
	}

	return math.Min(confidence, 1.0)
}

func photonTypeMatches(kind model.LocationKind, f photonFeature) bool {
	key, value := f.Properties.OSMKey, f.Properties.OSMValue
	switch kind {
	case model.KindAddress:
		return key == "building" || f.Properties.HouseNumber != ""
	case model.KindIntersection:
		return key == "highway"
	case model.KindNeighborhood:
		return key == "place" &&
			(value == "suburb" || value == "neighbourhood" || value == "quarter" || value == "locality")
	case model.KindPostalCode:
		return value == "postcode"
	}
	return false
}

// preciseExtent reports whether the feature's bounding box is tight enough
// to be a single site rather than a district.
func preciseExtent(extent []float64) bool {
	if len(extent) != 4 {
		return false
	}
	dLon := math.Abs(extent[2] - extent[0])
	dLat := math.Abs(extent[1] - extent[3])
	return dLon < 0.01 && dLat < 0.01
}

func formatPhoton(f photonFeature) string {
	var parts []string
	p := f.Properties
	if p.Name != "" {
		parts = append(parts, p.Name)
	}
	if p.Street != "" {
		street := p.Street
		if p.HouseNumber != "" {
			street = p.HouseNumber + " " + street
		}
		parts = append(parts, street)
	}
	for _, s := range []string{p.City, p.State, p.Postcode, p.Country} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

func photonComponents(f photonFeature) map[string]string {
	p := f.Properties
	components := make(map[string]string)
	for key, value := range map[string]string{
		"name":        p.Name,
		"street":      p.Street,
		"housenumber": p.HouseNumber,
		"city":        p.City,
		"state":       p.State,
		"postcode":    p.Postcode,
		"country":     p.Country,
	} {
		if value != "" {
			components[key] = value
		}
	}
	return components
}
