package addresskey

import (
	"regexp"
	"strings"

	"github.com/akarpov/realocate/internal/model"
)

// Confidence weights for key construction. The base applies to any valid
// street key; the rest reward specificity.
const (
	confidenceBase      = 0.5
	confidenceNumber    = 0.3
	confidenceUnit      = 0.1
	confidenceCleanName = 0.1
)

// cityOverrides maps multi-word municipality spellings to their key form.
// Anything not listed is normalized by stripping whitespace.
var cityOverrides = map[string]string{
	"richmond hill":    "richmondhill",
	"king city":        "kingcity",
	"east gwillimbury": "eastgwillimbury",
	"halton hills":     "haltonhills",
}

var (
	nonAlnum  = regexp.MustCompile(`[^a-z0-9]+`)
	alphaOnly = regexp.MustCompile(`^[a-z]+$`)
)

// Normalizer builds canonical lookup keys from address components
type Normalizer struct{}

// NewNormalizer creates a new address key normalizer
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize derives lookup keys from the given components. forceCity, when
// non-empty, overrides any city carried in the components. The exact key is
// built only when a street number resolved; missing name or suffix yields
// confidence 0.0 and no keys.
func (n *Normalizer) Normalize(c model.AddressComponents, forceCity string) model.NormalizedAddress {
	var result model.NormalizedAddress

	if c.StreetName == "" || c.StreetSuffix == "" {
		if c.StreetName == "" {
			result.Notes = append(result.Notes, "missing street name")
		}
		if c.StreetSuffix == "" {
			result.Notes = append(result.Notes, "missing street suffix")
		}
		return result
	}

	suffix, ok := CanonicalSuffix(c.StreetSuffix)
	if !ok {
		// Unknown suffix: use it cleaned as-is rather than dropping the key
		suffix = clean(c.StreetSuffix)
		result.Notes = append(result.Notes, "unrecognized street suffix: "+c.StreetSuffix)
	}

	city := forceCity
	if city == "" {
		city = c.City
	}
	cityKey := normalizeCity(city)

	name := clean(c.StreetName)
	streetKey := name + suffix + cityKey
	result.StreetAddressKey = streetKey

	if c.StreetNumber != "" {
		result.ExactAddressKey = clean(c.UnitNumber) + clean(c.StreetNumber) + streetKey
	}

	result.SearchQueryFallback = buildFallbackQuery(c, city)

	confidence := confidenceBase
	if c.StreetNumber != "" {
		confidence += confidenceNumber
	}
	if c.UnitNumber != "" {
		confidence += confidenceUnit
	}
	if alphaOnly.MatchString(name) {
		confidence += confidenceCleanName
	}
	result.Confidence = confidence

	return result
}

// clean lowercases a component and strips every non-alphanumeric character
// (periods, hyphens, apostrophes, whitespace).
func clean(s string) string {
	return nonAlnum.ReplaceAllString(strings.ToLower(s), "")
}

// normalizeCity folds known multi-word municipalities and strips whitespace
// from everything else.
func normalizeCity(city string) string {
	lower := strings.ToLower(strings.TrimSpace(city))
	if override, ok := cityOverrides[lower]; ok {
		return override
	}
	return clean(lower)
}

// buildFallbackQuery produces a human-readable query for providers that
// cannot consume lookup keys.
func buildFallbackQuery(c model.AddressComponents, city string) string {
	var parts []string
	if c.StreetNumber != "" {
		parts = append(parts, c.StreetNumber)
	}
	parts = append(parts, strings.TrimSpace(c.StreetName), c.StreetSuffix)
	street := strings.Join(parts, " ")
	if city != "" {
		return street + ", " + city
	}
	return street
}
