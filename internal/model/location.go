package model

// LocationQuery is a single user turn's worth of location input
type LocationQuery struct {
	RawText     string           `json:"raw_text"`               // The utterance as typed
	SessionHint *LocationContext `json:"session_hint,omitempty"` // Prior turn's authoritative location, if any
}

// Intent classifies what kind of location mention a message contains
type Intent string

const (
	IntentAddressSearch Intent = "address_search" // Full civic address (number + street)
	IntentStreetSearch  Intent = "street_search"  // Street without a civic number
	IntentNotAddress    Intent = "not_address"    // No address-like content
)

// AddressComponents holds the pieces of an address pulled out of free text
type AddressComponents struct {
	StreetNumber string `json:"street_number,omitempty"` // Civic number ("55")
	StreetName   string `json:"street_name,omitempty"`   // Name without suffix ("Bamburgh")
	StreetSuffix string `json:"street_suffix,omitempty"` // Canonical long suffix ("circle")
	UnitNumber   string `json:"unit_number,omitempty"`   // Unit/suite/apartment ("1209")
	City         string `json:"city,omitempty"`
}

// HasExactAddress reports whether number, name, and suffix are all present.
func (c AddressComponents) HasExactAddress() bool {
	return c.StreetNumber != "" && c.StreetName != "" && c.StreetSuffix != ""
}

// HasStreetOnly reports whether name and suffix are present without a number.
func (c AddressComponents) HasStreetOnly() bool {
	return c.StreetNumber == "" && c.StreetName != "" && c.StreetSuffix != ""
}

// NormalizedAddress carries the canonical lookup keys derived from components
type NormalizedAddress struct {
	ExactAddressKey     string   `json:"exact_address_key,omitempty"`  // [unit][number][name][suffix][city], present only with a street number
	StreetAddressKey    string   `json:"street_address_key,omitempty"` // [name][suffix][city]
	SearchQueryFallback string   `json:"search_query_fallback,omitempty"`
	Confidence          float64  `json:"confidence"` // 0.0 when no usable key could be built
	Notes               []string `json:"notes,omitempty"`
}

// LocationKind identifies the kind of place a geocoding query targets
type LocationKind string

const (
	KindAddress      LocationKind = "address"
	KindIntersection LocationKind = "intersection"
	KindPostalCode   LocationKind = "postal_code"
	KindNeighborhood LocationKind = "neighborhood"
)

// GeocodedLocation is an immutable provider result for one query
type GeocodedLocation struct {
	Latitude         float64           `json:"latitude"`
	Longitude        float64           `json:"longitude"`
	FormattedAddress string            `json:"formatted_address"`
	LocationType     LocationKind      `json:"location_type"`
	Confidence       float64           `json:"confidence"`           // [0,1], provider-specific heuristic
	Components       map[string]string `json:"components,omitempty"` // Raw address component map from the provider
}

// PostalCodeInfo is the parsed form of a Canadian postal code or FSA
type PostalCodeInfo struct {
	Code     string `json:"code"`               // Canonical form: "M5V 1A1" or "M5V"
	FSA      string `json:"fsa"`                // First three characters
	IsFull   bool   `json:"is_full"`            // Six characters vs FSA-only
	City     string `json:"city,omitempty"`     // From the curated FSA table, when known
	Province string `json:"province,omitempty"` // From the leading-letter table
	IsUrban  bool   `json:"is_urban"`           // Rural FSAs carry a zero in the second position
}

// DetectionMethod names which orchestrator stage produced a LocationContext
type DetectionMethod string

const (
	DetectPostalCode            DetectionMethod = "postal_code"
	DetectStreetAddress         DetectionMethod = "street_address"
	DetectStreetOnly            DetectionMethod = "street_only"
	DetectIntersectionSecondary DetectionMethod = "intersection_secondary"
	DetectLandmark              DetectionMethod = "landmark"
	DetectIntersectionPrimary   DetectionMethod = "intersection_primary"
	DetectNeighborhood          DetectionMethod = "neighborhood"
)

// LocationContext is the single authoritative location for a session.
// It lives until the next turn produces a new non-empty context or it is
// explicitly cleared.
type LocationContext struct {
	LocationType    LocationKind    `json:"location_type"`
	Latitude        *float64        `json:"latitude,omitempty"`
	Longitude       *float64        `json:"longitude,omitempty"`
	RadiusKM        float64         `json:"radius_km"`
	PostalCode      string          `json:"postal_code,omitempty"`
	StreetAddress   string          `json:"street_address,omitempty"`
	Neighborhood    string          `json:"neighborhood,omitempty"`
	Confidence      float64         `json:"confidence"`
	DetectionMethod DetectionMethod `json:"detection_method"`
	IsValidated     bool            `json:"is_validated"`
}
