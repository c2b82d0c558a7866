package search

import (
	"context"

	"github.com/akarpov/realocate/internal/model"
)

// Params is one page-sized query against the property index. Exactly one
// of PostalCode, AddressKey, or the coordinate triple scopes the search.
type Params struct {
	PostalCode      string
	AddressKey      string
	Latitude        float64
	Longitude       float64
	RadiusKM        float64
	Page            int // 1-based
	PageSize        int
	TransactionType model.TransactionType // Empty means both
}

// Page is one page of listings plus the index's total match count
type Page struct {
	Listings []model.Listing
	Count    int
}

// Client is the property index the fallback strategy widens over
type Client interface {
	Search(ctx context.Context, params Params) (*Page, error)
}
