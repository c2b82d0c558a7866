package intent

import (
	"testing"

	"github.com/akarpov/realocate/internal/model"
)

func TestClassify_FullAddressWithUnit(t *testing.T) {
	c := New()

	result := c.Classify("55 Bamburgh Circle unit 1209", "")

	if result.Intent != model.IntentAddressSearch {
		t.Fatalf("expected address search, got %s (%s)", result.Intent, result.Reason)
	}
	if result.Confidence < 0.9 {
		t.Errorf("expected confidence >= 0.9, got %v", result.Confidence)
	}
	want := model.AddressComponents{
		StreetNumber: "55",
		StreetName:   "Bamburgh",
		StreetSuffix: "circle",
		UnitNumber:   "1209",
	}
	if result.Components != want {
		t.Errorf("components mismatch:\n got %+v\nwant %+v", result.Components, want)
	}
}

func TestClassify_BedroomCountIsNotAStreetNumber(t *testing.T) {
	c := New()

	cases := []string{
		"3 bedroom house",
		"2 bed 2 bath condo",
		"looking for a 4 br",
		"show me 3 bedroom listings",
	}
	for _, text := range cases {
		result := c.Classify(text, "")
		if result.Intent != model.IntentNotAddress {
			t.Errorf("%q: expected not-address, got %s (%s)", text, result.Intent, result.Reason)
		}
		if result.Confidence != 0.0 {
			t.Errorf("%q: not-address confidence must be exactly 0.0, got %v", text, result.Confidence)
		}
	}
}

func TestClassify_BedroomCountBesideRealAddress(t *testing.T) {
	c := New()

	result := c.Classify("3 bedroom at 55 Bamburgh Circle", "")

	if result.Intent != model.IntentAddressSearch {
		t.Fatalf("expected address search, got %s (%s)", result.Intent, result.Reason)
	}
	if result.Components.StreetNumber != "55" {
		t.Errorf("street number must come from the address, not the bedroom count: got %q",
			result.Components.StreetNumber)
	}
}

func TestClassify_FullAddressNoUnit(t *testing.T) {
	c := New()

	result := c.Classify("100 King Street", "")

	if result.Intent != model.IntentAddressSearch {
		t.Fatalf("expected address search, got %s", result.Intent)
	}
	if result.Confidence != ConfidenceFullAddress {
		t.Errorf("expected confidence %v, got %v", ConfidenceFullAddress, result.Confidence)
	}
}

func TestClassify_UnitVariants(t *testing.T) {
	c := New()

	cases := []struct {
		text string
		unit string
	}{
		{"55 Bamburgh Circle unit 1209", "1209"},
		{"55 Bamburgh Circle suite 1209", "1209"},
		{"55 Bamburgh Circle apt 1209", "1209"},
		{"55 Bamburgh Circle #1209", "1209"},
		{"55 Bamburgh Circle ph 12", "12"},
		{"1209 55 Bamburgh Circle", "1209"}, // Unit-before-number form
	}
	for _, tc := range cases {
		result := c.Classify(tc.text, "")
		if result.Intent != model.IntentAddressSearch {
			t.Errorf("%q: expected address search, got %s (%s)", tc.text, result.Intent, result.Reason)
			continue
		}
		if result.Components.UnitNumber != tc.unit {
			t.Errorf("%q: expected unit %q, got %q", tc.text, tc.unit, result.Components.UnitNumber)
		}
		if result.Confidence != ConfidenceFullAddressWithUnit {
			t.Errorf("%q: expected confidence %v, got %v", tc.text, ConfidenceFullAddressWithUnit, result.Confidence)
		}
	}
}

func TestClassify_StreetWithIndicator(t *testing.T) {
	c := New()

	result := c.Classify("properties on King Street", "")

	if result.Intent != model.IntentStreetSearch {
		t.Fatalf("expected street search, got %s (%s)", result.Intent, result.Reason)
	}
	if result.Confidence != ConfidenceStreetWithIndicator {
		t.Errorf("expected confidence %v, got %v", ConfidenceStreetWithIndicator, result.Confidence)
	}
	if result.Components.StreetName != "King" {
		t.Errorf("filler must be stripped from the name: got %q", result.Components.StreetName)
	}
	if result.Components.StreetNumber != "" {
		t.Errorf("street-only match must not carry a number, got %q", result.Components.StreetNumber)
	}
}

func TestClassify_StreetWithoutIndicator(t *testing.T) {
	c := New()

	result := c.Classify("King Street", "")

	if result.Intent != model.IntentStreetSearch {
		t.Fatalf("expected street search, got %s", result.Intent)
	}
	if result.Confidence != ConfidenceStreetBare {
		t.Errorf("expected confidence %v, got %v", ConfidenceStreetBare, result.Confidence)
	}
}

func TestClassify_TwoWordStreetName(t *testing.T) {
	c := New()

	result := c.Classify("condos on Spring Garden Avenue", "")

	if result.Intent != model.IntentStreetSearch {
		t.Fatalf("expected street search, got %s (%s)", result.Intent, result.Reason)
	}
	if result.Components.StreetName != "Spring Garden" {
		t.Errorf("expected 'Spring Garden', got %q", result.Components.StreetName)
	}
	if result.Components.StreetSuffix != "avenue" {
		t.Errorf("expected canonical 'avenue', got %q", result.Components.StreetSuffix)
	}
}

func TestClassify_SuffixWithoutName(t *testing.T) {
	c := New()

	result := c.Classify("2 listings on court", "")

	if result.Intent != model.IntentStreetSearch {
		t.Fatalf("expected street search, got %s (%s)", result.Intent, result.Reason)
	}
	if result.Confidence != ConfidenceStreetIncomplete {
		t.Errorf("expected confidence %v, got %v", ConfidenceStreetIncomplete, result.Confidence)
	}
	if result.Components.StreetSuffix != "court" {
		t.Errorf("expected suffix 'court', got %q", result.Components.StreetSuffix)
	}
	if result.Components.StreetName != "" {
		t.Errorf("dissolved name must stay empty, got %q", result.Components.StreetName)
	}
	if result.Components.StreetNumber != "" {
		t.Errorf("number must not attach without a name, got %q", result.Components.StreetNumber)
	}
}

func TestClassify_IndicatorWithBareSuffix(t *testing.T) {
	c := New()

	result := c.Classify("properties on street", "")

	if result.Intent != model.IntentStreetSearch {
		t.Fatalf("expected street search, got %s (%s)", result.Intent, result.Reason)
	}
	if result.Confidence != ConfidenceSuffixHint {
		t.Errorf("expected confidence %v, got %v", ConfidenceSuffixHint, result.Confidence)
	}
	if result.Components.StreetName != "" || result.Components.StreetSuffix != "" {
		t.Errorf("hint-only match must carry no components, got %q / %q",
			result.Components.StreetName, result.Components.StreetSuffix)
	}
}

func TestClassify_NotAddressAlwaysZero(t *testing.T) {
	c := New()

	cases := []string{
		"",
		"hello there",
		"what can you do",
		"show me something nice downtown",
	}
	for _, text := range cases {
		result := c.Classify(text, "")
		if result.Intent != model.IntentNotAddress {
			t.Errorf("%q: expected not-address, got %s (%s)", text, result.Intent, result.Reason)
		}
		if result.Confidence != 0.0 {
			t.Errorf("%q: expected confidence exactly 0.0, got %v", text, result.Confidence)
		}
	}
}

func TestClassify_ConfidenceAlwaysPositiveForMatches(t *testing.T) {
	c := New()

	cases := []string{
		"55 Bamburgh Circle unit 1209",
		"100 King Street",
		"on King Street",
		"King Street",
	}
	for _, text := range cases {
		result := c.Classify(text, "")
		if result.Confidence <= 0.0 || result.Confidence > 1.0 {
			t.Errorf("%q: expected confidence in (0,1], got %v", text, result.Confidence)
		}
	}
}

func TestClassify_CityFromTextAndHint(t *testing.T) {
	c := New()

	result := c.Classify("100 King Street in Toronto", "")
	if result.Components.City != "toronto" {
		t.Errorf("expected city from text, got %q", result.Components.City)
	}

	result = c.Classify("100 King Street", "Markham")
	if result.Components.City != "Markham" {
		t.Errorf("expected city from hint, got %q", result.Components.City)
	}

	// Explicit mention beats the hint
	result = c.Classify("100 King Street in Vaughan", "Markham")
	if result.Components.City != "vaughan" {
		t.Errorf("expected explicit city to win, got %q", result.Components.City)
	}
}

func TestIsAddressQuery(t *testing.T) {
	c := New()

	if !c.IsAddressQuery("55 Bamburgh Circle") {
		t.Error("expected address query")
	}
	if c.IsAddressQuery("3 bedroom house") {
		t.Error("bedroom count must not register as an address query")
	}
}

func TestDetectIntersection(t *testing.T) {
	c := New()

	cases := []struct {
		text   string
		first  string
		second string
		ok     bool
	}{
		{"King and Bay", "King", "Bay", true},
		{"near King & Bay", "King", "Bay", true},
		{"condos at Yonge and Eglinton", "Yonge", "Eglinton", true},
		{"King Street and Bay Street", "King Street", "Bay Street", true},
		{"2 bed and 2 bath", "", "", false},
		// Non-street chatter still passes lexically; the geocoder's
		// confidence threshold rejects it downstream.
		{"nice and quiet", "nice", "quiet", true},
		// Chatter before a real pair must not shadow it.
		{"nice and quiet near King and Bay", "King", "Bay", true},
		{"somewhere nice and warm near Yonge & Eglinton", "Yonge", "Eglinton", true},
	}
	for _, tc := range cases {
		first, second, ok := c.DetectIntersection(tc.text)
		if ok != tc.ok {
			t.Errorf("%q: expected ok=%v, got %v (%q / %q)", tc.text, tc.ok, ok, first, second)
			continue
		}
		if !ok {
			continue
		}
		if first != tc.first || second != tc.second {
			t.Errorf("%q: expected (%q, %q), got (%q, %q)", tc.text, tc.first, tc.second, first, second)
		}
	}
}
