package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/akarpov/realocate/internal/model"
	"github.com/akarpov/realocate/internal/postal"
)

// ErrInvalidPostalCode means the input failed postal grammar validation.
// It is raised before any upstream call is made.
var ErrInvalidPostalCode = errors.New("invalid postal code")

// Strategy widens a postal-code-scoped search through three tiers, moving
// to the next tier only when the current one's deduplicated, post-filtered
// result set is empty. Every outcome names its tier; an empty result is
// never returned without a message saying what was tried.
type Strategy struct {
	client        Client
	postal        *postal.Resolver
	pageSizeExact int
	pageSizeWide  int
	maxFSAPages   int
}

// NewStrategy creates the widening search over the given property index
func NewStrategy(client Client, cfg model.SearchConfig) *Strategy {
	s := &Strategy{
		client:        client,
		postal:        postal.NewResolver(),
		pageSizeExact: cfg.PageSizeExact,
		pageSizeWide:  cfg.PageSizeWide,
		maxFSAPages:   cfg.MaxFSAPages,
	}
	if s.pageSizeExact <= 0 {
		s.pageSizeExact = 20
	}
	if s.pageSizeWide <= 0 {
		s.pageSizeWide = 100
	}
	if s.maxFSAPages <= 0 {
		s.maxFSAPages = 20
	}
	return s
}

// SearchWithFallback runs the tiers for one postal code or FSA. A bare FSA
// input goes straight to the FSA tier; retrying a three-character key at
// the exact tiers would fetch the same page twice.
func (s *Strategy) SearchWithFallback(ctx context.Context, code string, filters model.SearchFilters) (*model.SearchTierResult, error) {
	info := s.postal.Normalize(code)
	if info == nil {
		return nil, fmt.Errorf("%q: %w", code, ErrInvalidPostalCode)
	}

	if info.IsFull {
		// Tier 1: exact code, normal page size
		listings, err := s.fetchOne(ctx, info.Code, s.pageSizeExact, filters)
		if err != nil {
			return nil, err
		}
		if len(listings) > 0 {
			return &model.SearchTierResult{
				Tier:           model.TierExact,
				PostalCodeUsed: info.Code,
				Properties:     listings,
			}, nil
		}

		// Tier 2: exact code, large page size. Guards against the index
		// truncating before a code-specific hit appears.
		listings, err = s.fetchOne(ctx, info.Code, s.pageSizeWide, filters)
		if err != nil {
			return nil, err
		}
		if len(listings) > 0 {
			return &model.SearchTierResult{
				Tier:            model.TierPageSizeRetry,
				PostalCodeUsed:  info.Code,
				Properties:      listings,
				FallbackMessage: "Your search was expanded slightly to find these listings.",
			}, nil
		}
	}

	// Tier 3: broaden to the FSA and paginate exhaustively
	listings, err := s.fetchFSA(ctx, info.FSA, filters)
	if err != nil {
		return nil, err
	}
	if len(listings) > 0 {
		return &model.SearchTierResult{
			Tier:            model.TierFSAFallback,
			PostalCodeUsed:  info.FSA,
			Properties:      listings,
			FallbackMessage: fmt.Sprintf("No exact matches, so results were expanded to the broader %s area.", info.FSA),
		}, nil
	}

	return &model.SearchTierResult{
		Tier:           model.TierFSAFallback,
		PostalCodeUsed: info.FSA,
		Properties:     []model.Listing{},
		FallbackMessage: fmt.Sprintf("There are no active listings for %s or the broader %s area right now.",
			info.Code, info.FSA),
	}, nil
}

// fetchOne fetches a single page and cleans it
func (s *Strategy) fetchOne(ctx context.Context, code string, pageSize int, filters model.SearchFilters) ([]model.Listing, error) {
	page, err := s.client.Search(ctx, Params{
		PostalCode:      code,
		Page:            1,
		PageSize:        pageSize,
		TransactionType: filters.TransactionType,
	})
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", code, err)
	}
	seen := make(map[string]bool)
	return cleanListings(page.Listings, code, filters.TransactionType, seen), nil
}

// fetchFSA accumulates pages until a short or empty page, a page-count
// cap, or context cancellation. Duplicate IDs across pages are dropped.
func (s *Strategy) fetchFSA(ctx context.Context, fsa string, filters model.SearchFilters) ([]model.Listing, error) {
	seen := make(map[string]bool)
	var all []model.Listing

	for pageNum := 1; pageNum <= s.maxFSAPages; pageNum++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("search %s page %d: %w", fsa, pageNum, err)
		}

		page, err := s.client.Search(ctx, Params{
			PostalCode:      fsa,
			Page:            pageNum,
			PageSize:        s.pageSizeWide,
			TransactionType: filters.TransactionType,
		})
		if err != nil {
			return nil, fmt.Errorf("search %s page %d: %w", fsa, pageNum, err)
		}

		all = append(all, cleanListings(page.Listings, fsa, filters.TransactionType, seen)...)
		if len(page.Listings) < s.pageSizeWide {
			break
		}
	}
	return all, nil
}

// cleanListings deduplicates by listing ID and re-checks what the index
// was asked for. The upstream filter is not trusted: each listing's own
// postal code must start with the search code, and the transaction type
// must match when one was requested.
func cleanListings(listings []model.Listing, code string, tt model.TransactionType, seen map[string]bool) []model.Listing {
	prefix := compactCode(code)
	var kept []model.Listing
	for _, l := range listings {
		if l.ID == "" || seen[l.ID] {
			continue
		}
		if !strings.HasPrefix(compactCode(l.PostalCode), prefix) {
			continue
		}
		if tt != "" && l.TransactionType != "" && l.TransactionType != tt {
			continue
		}
		seen[l.ID] = true
		kept = append(kept, l)
	}
	return kept
}

func compactCode(code string) string {
	return strings.ToUpper(strings.ReplaceAll(code, " ", ""))
}
