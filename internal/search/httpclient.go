package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/akarpov/realocate/internal/model"
)

const maxResponseBytes = 5_000_000

// HTTPClient talks to the property index over its JSON query API
type HTTPClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewHTTPClient creates a property index client from configuration
func NewHTTPClient(cfg model.SearchConfig) *HTTPClient {
	return &HTTPClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
	}
}

type searchResponse struct {
	Listings []model.Listing `json:"listings"`
	Count    int             `json:"count"`
}

// Search fetches one page of listings
func (c *HTTPClient) Search(ctx context.Context, params Params) (*Page, error) {
	values := url.Values{}
	switch {
	case params.PostalCode != "":
		values.Set("postal_code", params.PostalCode)
	case params.AddressKey != "":
		values.Set("address_key", params.AddressKey)
	default:
		values.Set("lat", strconv.FormatFloat(params.Latitude, 'f', -1, 64))
		values.Set("lng", strconv.FormatFloat(params.Longitude, 'f', -1, 64))
		values.Set("radius_km", strconv.FormatFloat(params.RadiusKM, 'f', -1, 64))
	}
	if params.Page > 0 {
		values.Set("page", strconv.Itoa(params.Page))
	}
	if params.PageSize > 0 {
		values.Set("page_size", strconv.Itoa(params.PageSize))
	}
	if params.TransactionType != "" {
		values.Set("transaction_type", string(params.TransactionType))
	}

	endpoint := c.baseURL + "/listings?" + values.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search listings: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search listings: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var decoded searchResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &Page{Listings: decoded.Listings, Count: decoded.Count}, nil
}
