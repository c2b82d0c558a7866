package geocode

import (
	"context"
	"fmt"
	"strings"

	"github.com/akarpov/realocate/internal/model"
)

// Gateway fronts both providers and owns query construction per location
// kind. The resolution pipeline talks only to the gateway; it never builds
// provider query strings itself.
type Gateway struct {
	primary       *Nominatim
	secondary     *Photon
	province      string
	minConfidence float64
}

// NewGateway wires both provider clients from one config block. The rate
// limiter is created here so every primary request in the process shares it.
func NewGateway(cfg model.GeocodeConfig) *Gateway {
	limiter := NewLimiter(cfg.RequestsPerSec)
	return &Gateway{
		primary:       NewNominatim(cfg, limiter),
		secondary:     NewPhoton(cfg),
		province:      cfg.Province,
		minConfidence: cfg.MinConfidence,
	}
}

// MinConfidence is the acceptance threshold for secondary-provider results
func (g *Gateway) MinConfidence() float64 {
	return g.minConfidence
}

// Address geocodes a full street address through the primary provider.
// City, province and country are appended so the provider does not wander
// off to a same-named street elsewhere.
func (g *Gateway) Address(ctx context.Context, streetAddress, city string) (*model.GeocodedLocation, error) {
	parts := []string{streetAddress}
	if city != "" {
		parts = append(parts, city)
	}
	if g.province != "" {
		parts = append(parts, g.province)
	}
	parts = append(parts, "Canada")
	return g.primary.Search(ctx, strings.Join(parts, ", "), model.KindAddress)
}

// intersectionVariants are tried in order until one geocodes. Providers
// disagree on which phrasing their street index understands.
func intersectionVariants(streetA, streetB string) []string {
	return []string{
		fmt.Sprintf("%s and %s", streetA, streetB),
		fmt.Sprintf("%s & %s", streetA, streetB),
		fmt.Sprintf("intersection of %s and %s", streetA, streetB),
		fmt.Sprintf("%s and %s", streetB, streetA),
	}
}

// IntersectionSecondary resolves a street crossing through the POI index,
// trying each phrasing variant until one succeeds.
func (g *Gateway) IntersectionSecondary(ctx context.Context, streetA, streetB, city string) (*model.GeocodedLocation, error) {
	return g.intersection(ctx, g.secondary.Search, streetA, streetB, city)
}

// IntersectionPrimary is the broad-coverage fallback for street crossings
// the POI index does not know.
func (g *Gateway) IntersectionPrimary(ctx context.Context, streetA, streetB, city string) (*model.GeocodedLocation, error) {
	return g.intersection(ctx, g.primary.Search, streetA, streetB, city)
}

type searchFunc func(ctx context.Context, query string, kind model.LocationKind) (*model.GeocodedLocation, error)

func (g *Gateway) intersection(ctx context.Context, search searchFunc, streetA, streetB, city string) (*model.GeocodedLocation, error) {
	suffix := g.placeSuffix(city)
	var lastErr error
	for _, variant := range intersectionVariants(streetA, streetB) {
		loc, err := search(ctx, variant+suffix, model.KindIntersection)
		if err == nil {
			return loc, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return nil, fmt.Errorf("intersection %s / %s: %w", streetA, streetB, lastErr)
}

// Landmark resolves a named place through the POI index
func (g *Gateway) Landmark(ctx context.Context, name, city string) (*model.GeocodedLocation, error) {
	return g.secondary.Search(ctx, name+g.placeSuffix(city), model.KindNeighborhood)
}

// PostalCode geocodes a normalized postal code through the primary
// provider. Full codes go out in the canonical single-space form; bare
// FSAs go out as-is.
func (g *Gateway) PostalCode(ctx context.Context, info *model.PostalCodeInfo) (*model.GeocodedLocation, error) {
	query := info.Code + ", Canada"
	return g.primary.Search(ctx, query, model.KindPostalCode)
}

// Neighborhood resolves a known neighborhood name, retrying with both
// spellings of the qualifier when the bare name does not geocode.
func (g *Gateway) Neighborhood(ctx context.Context, name, city string) (*model.GeocodedLocation, error) {
	suffix := g.placeSuffix(city)
	queries := []string{
		name + suffix,
		name + " neighbourhood" + suffix,
		name + " neighborhood" + suffix,
	}
	var lastErr error
	for _, query := range queries {
		loc, err := g.primary.Search(ctx, query, model.KindNeighborhood)
		if err == nil {
			return loc, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return nil, fmt.Errorf("neighborhood %q: %w", name, lastErr)
}

func (g *Gateway) placeSuffix(city string) string {
	var b strings.Builder
	if city != "" {
		b.WriteString(", ")
		b.WriteString(city)
	}
	if g.province != "" {
		b.WriteString(", ")
		b.WriteString(g.province)
	}
	b.WriteString(", Canada")
	return b.String()
}
