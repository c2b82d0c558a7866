package model

// TransactionType distinguishes sale from lease listings
type TransactionType string

const (
	TransactionSale  TransactionType = "sale"
	TransactionLease TransactionType = "lease"
)

// SearchFilters are the structured filters handed to the property index
type SearchFilters struct {
	TransactionType TransactionType `json:"transaction_type,omitempty"` // Empty means both
	Bedrooms        int             `json:"bedrooms,omitempty"`
	PriceMin        float64         `json:"price_min,omitempty"`
	PriceMax        float64         `json:"price_max,omitempty"`
}

// Listing is an opaque record from the upstream property index. Only the
// identifier and postal code are interpreted here; everything else passes
// through untouched.
type Listing struct {
	ID              string          `json:"id"`
	Address         string          `json:"address,omitempty"`
	PostalCode      string          `json:"postal_code,omitempty"`
	TransactionType TransactionType `json:"transaction_type,omitempty"`
	Price           float64         `json:"price,omitempty"`
}

// SearchTier names one step of the widening search strategy
type SearchTier string

const (
	TierExact         SearchTier = "exact"          // Full postal code, normal page size
	TierPageSizeRetry SearchTier = "pagesize_retry" // Full postal code, large page size
	TierFSAFallback   SearchTier = "fsa_fallback"   // Three-character FSA, exhaustive pagination
)

// SearchTierResult is the outcome of one widening search, including which
// tier produced it and the mandatory user-facing disclosure.
type SearchTierResult struct {
	Tier            SearchTier `json:"fallback_type"`
	PostalCodeUsed  string     `json:"postal_code_used"`
	Properties      []Listing  `json:"properties"`
	FallbackMessage string     `json:"fallback_message,omitempty"` // Always set unless the exact tier succeeded
}
