package resolve

import (
	"context"
	"fmt"
	"strings"

	"github.com/akarpov/realocate/internal/addresskey"
	"github.com/akarpov/realocate/internal/geocode"
	"github.com/akarpov/realocate/internal/intent"
	"github.com/akarpov/realocate/internal/llm"
	"github.com/akarpov/realocate/internal/model"
	"github.com/akarpov/realocate/internal/postal"
)

// Search radii by detection specificity. Generous on purpose: a radius
// tighter than the listings index's own precision yields empty searches.
const (
	radiusAddressWithUnit   = 1.0
	radiusAddress           = 1.5
	radiusIntersectionTight = 0.8
	radiusIntersectionLoose = 1.0
	radiusStreet            = 2.0
	radiusLandmark          = 2.5
	radiusNeighborhood      = 3.0
)

// Geocoder is the provider surface the orchestrator consumes
type Geocoder interface {
	Address(ctx context.Context, streetAddress, city string) (*model.GeocodedLocation, error)
	IntersectionSecondary(ctx context.Context, streetA, streetB, city string) (*model.GeocodedLocation, error)
	IntersectionPrimary(ctx context.Context, streetA, streetB, city string) (*model.GeocodedLocation, error)
	Landmark(ctx context.Context, name, city string) (*model.GeocodedLocation, error)
	PostalCode(ctx context.Context, info *model.PostalCodeInfo) (*model.GeocodedLocation, error)
	Neighborhood(ctx context.Context, name, city string) (*model.GeocodedLocation, error)
	MinConfidence() float64
}

// PhraseExtractor pulls a place phrase from free text when pattern
// matching cannot. Optional; a nil field means disabled.
type PhraseExtractor interface {
	ExtractPlace(ctx context.Context, text string) string
}

// Orchestrator runs the location detectors in strict priority order and
// produces at most one authoritative LocationContext per user turn.
type Orchestrator struct {
	classifier *intent.Classifier
	normalizer *addresskey.Normalizer
	postal     *postal.Resolver
	geocoder   Geocoder
	extractor  PhraseExtractor
}

// NewOrchestrator wires the full detection pipeline from configuration
func NewOrchestrator(cfg *model.Config) *Orchestrator {
	o := &Orchestrator{
		classifier: intent.New(),
		normalizer: addresskey.NewNormalizer(),
		postal:     postal.NewResolver(),
		geocoder:   geocode.NewGateway(cfg.Geocode),
	}
	if cfg.LLM.Provider != "" {
		e, err := llm.NewExtractor(cfg.LLM)
		if err != nil {
			fmt.Printf("Warning: Failed to initialize LLM provider: %v\n", err)
		} else if e != nil {
			o.extractor = e
		}
	}
	return o
}

// NewOrchestratorWith wires the pipeline around an injected geocoder
func NewOrchestratorWith(geocoder Geocoder, extractor PhraseExtractor) *Orchestrator {
	return &Orchestrator{
		classifier: intent.New(),
		normalizer: addresskey.NewNormalizer(),
		postal:     postal.NewResolver(),
		geocoder:   geocoder,
		extractor:  extractor,
	}
}

// Resolve runs the detectors against one user turn and returns the winning
// LocationContext, or nil when nothing location-like was found. Detector
// failures never abort the run; each stage falls through to the next.
//
// Priority order: a detected postal code is authoritative and skips all
// other stages. A digit-letter-digit token is unambiguous evidence of a
// postal code and must never be re-read as a street number later.
func (o *Orchestrator) Resolve(ctx context.Context, query model.LocationQuery) *model.LocationContext {
	text := strings.TrimSpace(query.RawText)
	if text == "" {
		return nil
	}

	cls := o.classifier.Classify(text, cityFromHint(query.SessionHint))
	city := cls.Components.City

	// Stage 1: postal code
	if info := o.postal.DetectInText(text); info != nil {
		return o.resolvePostal(ctx, info, city)
	}

	// Stage 2: full street address
	if cls.Intent == model.IntentAddressSearch && cls.Components.HasExactAddress() {
		if loc := o.resolveAddress(ctx, cls); loc != nil {
			return loc
		}
	}

	// Stage 3: intersection through the POI index
	streetA, streetB, isIntersection := o.classifier.DetectIntersection(text)
	if isIntersection {
		if loc := o.resolveIntersection(ctx, o.geocoder.IntersectionSecondary, streetA, streetB, city,
			model.DetectIntersectionSecondary, radiusIntersectionTight); loc != nil {
			return loc
		}
	}

	// Stage 4: street without a civic number
	if cls.Intent == model.IntentStreetSearch && cls.Components.HasStreetOnly() {
		if loc := o.resolveStreet(ctx, cls); loc != nil {
			return loc
		}
	}

	// Stage 5: landmark / ambiguous place name
	if phrase := o.landmarkPhrase(ctx, text); phrase != "" {
		if loc := o.resolveLandmark(ctx, phrase, city); loc != nil {
			return loc
		}
	}

	// Stage 6: intersection through the broad-coverage provider
	if isIntersection {
		if loc := o.resolveIntersection(ctx, o.geocoder.IntersectionPrimary, streetA, streetB, city,
			model.DetectIntersectionPrimary, radiusIntersectionLoose); loc != nil {
			return loc
		}
	}

	// Stage 7: known neighborhood name
	if name := FindNeighborhood(text); name != "" {
		if loc := o.resolveNeighborhood(ctx, name, city); loc != nil {
			return loc
		}
	}

	return nil
}

func (o *Orchestrator) resolvePostal(ctx context.Context, info *model.PostalCodeInfo, city string) *model.LocationContext {
	valid, _ := o.postal.ValidateCity(info, city)

	loc := &model.LocationContext{
		LocationType:    model.KindPostalCode,
		RadiusKM:        o.postal.RadiusFor(info),
		PostalCode:      info.Code,
		Confidence:      0.95,
		DetectionMethod: model.DetectPostalCode,
		IsValidated:     valid,
	}

	// Coordinates are an enrichment here. The code itself is authoritative,
	// so a geocoder outage does not demote the result.
	if geo, err := o.geocoder.PostalCode(ctx, info); err == nil {
		loc.Latitude = &geo.Latitude
		loc.Longitude = &geo.Longitude
	}
	return loc
}

func (o *Orchestrator) resolveAddress(ctx context.Context, cls intent.Result) *model.LocationContext {
	na := o.normalizer.Normalize(cls.Components, cls.Components.City)
	if na.Confidence == 0 {
		return nil
	}

	radius := radiusAddress
	if cls.Components.UnitNumber != "" {
		radius = radiusAddressWithUnit
	}

	loc := &model.LocationContext{
		LocationType:    model.KindAddress,
		RadiusKM:        radius,
		StreetAddress:   na.SearchQueryFallback,
		Confidence:      cls.Confidence,
		DetectionMethod: model.DetectStreetAddress,
		IsValidated:     true,
	}

	street := cls.Components.StreetNumber + " " + cls.Components.StreetName + " " + cls.Components.StreetSuffix
	if geo, err := o.geocoder.Address(ctx, street, cls.Components.City); err == nil {
		loc.Latitude = &geo.Latitude
		loc.Longitude = &geo.Longitude
		loc.Confidence = geo.Confidence
	}
	return loc
}

func (o *Orchestrator) resolveStreet(ctx context.Context, cls intent.Result) *model.LocationContext {
	na := o.normalizer.Normalize(cls.Components, cls.Components.City)
	if na.Confidence == 0 {
		return nil
	}

	street := cls.Components.StreetName + " " + cls.Components.StreetSuffix
	geo, err := o.geocoder.Address(ctx, street, cls.Components.City)
	if err != nil {
		return nil
	}

	return &model.LocationContext{
		LocationType:    model.KindAddress,
		Latitude:        &geo.Latitude,
		Longitude:       &geo.Longitude,
		RadiusKM:        radiusStreet,
		StreetAddress:   na.SearchQueryFallback,
		Confidence:      cls.Confidence,
		DetectionMethod: model.DetectStreetOnly,
		IsValidated:     true,
	}
}

type intersectionFunc func(ctx context.Context, streetA, streetB, city string) (*model.GeocodedLocation, error)

func (o *Orchestrator) resolveIntersection(ctx context.Context, geocodeFn intersectionFunc, streetA, streetB, city string, method model.DetectionMethod, radius float64) *model.LocationContext {
	geo, err := geocodeFn(ctx, streetA, streetB, city)
	if err != nil || geo.Confidence < o.geocoder.MinConfidence() {
		return nil
	}

	return &model.LocationContext{
		LocationType:    model.KindIntersection,
		Latitude:        &geo.Latitude,
		Longitude:       &geo.Longitude,
		RadiusKM:        radius,
		StreetAddress:   streetA + " and " + streetB,
		Confidence:      geo.Confidence,
		DetectionMethod: method,
		IsValidated:     true,
	}
}

func (o *Orchestrator) resolveLandmark(ctx context.Context, phrase, city string) *model.LocationContext {
	geo, err := o.geocoder.Landmark(ctx, phrase, city)
	if err != nil || geo.Confidence < o.geocoder.MinConfidence() {
		return nil
	}

	return &model.LocationContext{
		LocationType:    model.KindNeighborhood,
		Latitude:        &geo.Latitude,
		Longitude:       &geo.Longitude,
		RadiusKM:        radiusLandmark,
		Neighborhood:    phrase,
		Confidence:      geo.Confidence,
		DetectionMethod: model.DetectLandmark,
		IsValidated:     true,
	}
}

func (o *Orchestrator) resolveNeighborhood(ctx context.Context, name, city string) *model.LocationContext {
	geo, err := o.geocoder.Neighborhood(ctx, name, city)
	if err != nil {
		return nil
	}

	return &model.LocationContext{
		LocationType:    model.KindNeighborhood,
		Latitude:        &geo.Latitude,
		Longitude:       &geo.Longitude,
		RadiusKM:        radiusNeighborhood,
		Neighborhood:    name,
		Confidence:      geo.Confidence,
		DetectionMethod: model.DetectNeighborhood,
		IsValidated:     true,
	}
}

// landmarkPhrase picks the place phrase to geocode in the landmark stage.
// The LLM extractor is tried when enabled; otherwise a lexical strip of
// filler and property vocabulary is used.
func (o *Orchestrator) landmarkPhrase(ctx context.Context, text string) string {
	if o.extractor != nil {
		if phrase := o.extractor.ExtractPlace(ctx, text); phrase != "" {
			return phrase
		}
	}
	return stripToPlacePhrase(text)
}

// landmarkStopwords are tokens that never belong to a place name
var landmarkStopwords = map[string]bool{
	"a": true, "an": true, "the": true, "any": true, "some": true,
	"anything": true, "something": true, "area": true, "place": true,
	"is": true, "are": true, "there": true, "what": true, "whats": true,
	"how": true, "about": true, "show": true, "me": true, "find": true,
	"looking": true, "for": true, "please": true, "i": true, "want": true,
	"in": true, "near": true, "around": true, "at": true, "on": true,
	"close": true, "to": true, "by": true, "with": true, "under": true,
	"over": true, "and": true, "or": true,
	"properties": true, "property": true, "listings": true, "listing": true,
	"homes": true, "home": true, "houses": true, "house": true,
	"condos": true, "condo": true, "apartments": true, "apartment": true,
	"townhouse": true, "townhouses": true, "units": true, "unit": true,
	"sale": true, "rent": true, "lease": true, "buy": true,
	"bed": true, "beds": true, "bedroom": true, "bedrooms": true,
	"bath": true, "baths": true, "bathroom": true, "bathrooms": true,
	"br": true, "ba": true,
}

// stripToPlacePhrase removes filler and property vocabulary and keeps the
// longest run of remaining alphabetic tokens, capped at four words.
func stripToPlacePhrase(text string) string {
	tokens := strings.Fields(text)
	var best, current []string
	for _, tok := range tokens {
		word := strings.Trim(tok, ".,!?;:'\"")
		if word == "" || landmarkStopwords[strings.ToLower(word)] || !alphabetic(word) {
			if len(current) > len(best) {
				best = current
			}
			current = nil
			continue
		}
		current = append(current, word)
	}
	if len(current) > len(best) {
		best = current
	}
	if len(best) == 0 || len(best) > 4 {
		return ""
	}
	return strings.Join(best, " ")
}

func alphabetic(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && r != '\'' {
			return false
		}
	}
	return true
}

func cityFromHint(hint *model.LocationContext) string {
	if hint == nil {
		return ""
	}
	return hint.Neighborhood
}
