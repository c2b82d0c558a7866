package geocode

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/akarpov/realocate/internal/model"
)

func newTestGateway(primaryURL, secondaryURL string) *Gateway {
	return NewGateway(model.GeocodeConfig{
		PrimaryBaseURL:   primaryURL,
		SecondaryBaseURL: secondaryURL,
		Country:          "ca",
		Province:         "Ontario",
		UserAgent:        "realocate-test/0.1",
		Timeout:          2 * time.Second,
		RequestsPerSec:   1000,
		MaxRetries:       0,
		CacheSize:        10,
		CacheTTL:         time.Minute,
		MinConfidence:    0.6,
	})
}

const primaryHitBody = `[{"lat": "43.70", "lon": "-79.40", "display_name": "hit", "class": "highway", "type": "residential"}]`

func TestGateway_AddressAppendsRegion(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		fmt.Fprint(w, primaryHitBody)
	}))
	defer srv.Close()

	g := newTestGateway(srv.URL, srv.URL)
	if _, err := g.Address(context.Background(), "55 Bamburgh Circle", "Toronto"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "55 Bamburgh Circle, Toronto, Ontario, Canada" {
		t.Errorf("unexpected query %q", gotQuery)
	}
}

func TestGateway_IntersectionTriesVariants(t *testing.T) {
	var queries []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		queries = append(queries, q)
		// Only the ampersand phrasing resolves
		if strings.Contains(q, "&") {
			fmt.Fprint(w, photonIntersectionBody)
			return
		}
		fmt.Fprint(w, `{"features": []}`)
	}))
	defer srv.Close()

	g := newTestGateway(srv.URL, srv.URL)
	loc, err := g.IntersectionSecondary(context.Background(), "Bathurst", "Dupont", "Toronto")
	if err != nil {
		t.Fatalf("expected a variant to succeed, got %v", err)
	}
	if loc.Latitude != 43.6629 {
		t.Errorf("unexpected latitude %v", loc.Latitude)
	}
	if len(queries) != 2 {
		t.Fatalf("expected 2 attempts before the ampersand variant hit, got %d: %v", len(queries), queries)
	}
	if queries[0] != "Bathurst and Dupont, Toronto, Ontario, Canada" {
		t.Errorf("unexpected first variant %q", queries[0])
	}
}

func TestGateway_IntersectionExhaustsVariants(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		fmt.Fprint(w, `{"features": []}`)
	}))
	defer srv.Close()

	g := newTestGateway(srv.URL, srv.URL)
	if _, err := g.IntersectionSecondary(context.Background(), "Nowhere", "Nothing", ""); err == nil {
		t.Fatal("expected failure after all variants")
	}
	if got := requests.Load(); got != 4 {
		t.Errorf("expected all 4 variants tried, got %d", got)
	}
}

func TestGateway_PostalCodeQuery(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		fmt.Fprint(w, `[{"lat": "43.64", "lon": "-79.39", "display_name": "M5V", "class": "place", "type": "postcode"}]`)
	}))
	defer srv.Close()

	g := newTestGateway(srv.URL, srv.URL)

	full := &model.PostalCodeInfo{Code: "M5V 4B2", FSA: "M5V", IsFull: true}
	if _, err := g.PostalCode(context.Background(), full); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "M5V 4B2, Canada" {
		t.Errorf("unexpected full-code query %q", gotQuery)
	}

	fsa := &model.PostalCodeInfo{Code: "M5V", FSA: "M5V"}
	if _, err := g.PostalCode(context.Background(), fsa); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "M5V, Canada" {
		t.Errorf("unexpected FSA query %q", gotQuery)
	}
}

func TestGateway_NeighborhoodRetriesSpellings(t *testing.T) {
	var queries []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		queries = append(queries, q)
		if strings.Contains(q, "neighbourhood") {
			fmt.Fprint(w, primaryHitBody)
			return
		}
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	g := newTestGateway(srv.URL, srv.URL)
	if _, err := g.Neighborhood(context.Background(), "The Annex", "Toronto"); err != nil {
		t.Fatalf("expected the qualified spelling to succeed, got %v", err)
	}
	if len(queries) != 2 {
		t.Fatalf("expected 2 attempts, got %d: %v", len(queries), queries)
	}
	if !strings.HasPrefix(queries[1], "The Annex neighbourhood") {
		t.Errorf("unexpected second query %q", queries[1])
	}
}

func TestGateway_MinConfidence(t *testing.T) {
	g := newTestGateway("http://primary.invalid", "http://secondary.invalid")
	if got := g.MinConfidence(); got != 0.6 {
		t.Errorf("expected 0.6, got %v", got)
	}
}
