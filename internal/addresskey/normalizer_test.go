package addresskey

import (
	"testing"

	"github.com/akarpov/realocate/internal/model"
)

func TestNormalize_ExactKey(t *testing.T) {
	n := NewNormalizer()

	components := model.AddressComponents{
		StreetNumber: "55",
		StreetName:   "Bamburgh",
		StreetSuffix: "Circle",
		UnitNumber:   "1209",
	}

	result := n.Normalize(components, "Toronto")

	if result.ExactAddressKey != "120955bamburghcircletoronto" {
		t.Errorf("expected exact key '120955bamburghcircletoronto', got %q", result.ExactAddressKey)
	}
	if result.StreetAddressKey != "bamburghcircletoronto" {
		t.Errorf("expected street key 'bamburghcircletoronto', got %q", result.StreetAddressKey)
	}
	// 0.5 base + 0.3 number + 0.1 unit + 0.1 alphabetic name
	if result.Confidence != 1.0 {
		t.Errorf("expected confidence 1.0, got %v", result.Confidence)
	}
}

func TestNormalize_SuffixCanonicalized(t *testing.T) {
	n := NewNormalizer()

	abbreviated := n.Normalize(model.AddressComponents{
		StreetNumber: "100",
		StreetName:   "King",
		StreetSuffix: "St",
	}, "Toronto")
	full := n.Normalize(model.AddressComponents{
		StreetNumber: "100",
		StreetName:   "King",
		StreetSuffix: "Street",
	}, "Toronto")

	if abbreviated.ExactAddressKey != full.ExactAddressKey {
		t.Errorf("abbreviated and full suffix must produce the same key: %q vs %q",
			abbreviated.ExactAddressKey, full.ExactAddressKey)
	}
	if abbreviated.ExactAddressKey != "100kingstreettoronto" {
		t.Errorf("expected '100kingstreettoronto', got %q", abbreviated.ExactAddressKey)
	}
}

func TestNormalize_CityOverrides(t *testing.T) {
	n := NewNormalizer()

	result := n.Normalize(model.AddressComponents{
		StreetNumber: "10",
		StreetName:   "Yonge",
		StreetSuffix: "Street",
	}, "Richmond Hill")

	if result.ExactAddressKey != "10yongestreetrichmondhill" {
		t.Errorf("expected '10yongestreetrichmondhill', got %q", result.ExactAddressKey)
	}

	result = n.Normalize(model.AddressComponents{
		StreetName:   "Keele",
		StreetSuffix: "Street",
	}, "King City")
	if result.StreetAddressKey != "keelestreetkingcity" {
		t.Errorf("expected 'keelestreetkingcity', got %q", result.StreetAddressKey)
	}
}

func TestNormalize_PunctuationStripped(t *testing.T) {
	n := NewNormalizer()

	result := n.Normalize(model.AddressComponents{
		StreetNumber: "5",
		StreetName:   "D'Arcy",
		StreetSuffix: "St.",
	}, "Toronto")

	if result.ExactAddressKey != "5darcystreettoronto" {
		t.Errorf("expected '5darcystreettoronto', got %q", result.ExactAddressKey)
	}
}

func TestNormalize_NoNumberNoExactKey(t *testing.T) {
	n := NewNormalizer()

	result := n.Normalize(model.AddressComponents{
		StreetName:   "Bamburgh",
		StreetSuffix: "Circle",
	}, "Toronto")

	if result.ExactAddressKey != "" {
		t.Errorf("exact key must be absent without a street number, got %q", result.ExactAddressKey)
	}
	if result.StreetAddressKey != "bamburghcircletoronto" {
		t.Errorf("expected street key, got %q", result.StreetAddressKey)
	}
	// 0.5 base + 0.1 alphabetic name
	if result.Confidence != 0.6 {
		t.Errorf("expected confidence 0.6, got %v", result.Confidence)
	}
}

func TestNormalize_MissingPartsZeroConfidence(t *testing.T) {
	n := NewNormalizer()

	cases := []model.AddressComponents{
		{StreetSuffix: "Street"},
		{StreetName: "Bamburgh"},
		{},
	}

	for _, c := range cases {
		result := n.Normalize(c, "Toronto")
		if result.Confidence != 0.0 {
			t.Errorf("components %+v: expected confidence 0.0, got %v", c, result.Confidence)
		}
		if result.ExactAddressKey != "" || result.StreetAddressKey != "" {
			t.Errorf("components %+v: expected no keys", c)
		}
		if len(result.Notes) == 0 {
			t.Errorf("components %+v: expected a note explaining the missing part", c)
		}
	}
}

func TestNormalize_ComponentCityWhenNoOverride(t *testing.T) {
	n := NewNormalizer()

	result := n.Normalize(model.AddressComponents{
		StreetNumber: "55",
		StreetName:   "Bamburgh",
		StreetSuffix: "Circle",
		City:         "Scarborough",
	}, "")

	if result.ExactAddressKey != "55bamburghcirclescarborough" {
		t.Errorf("expected component city in key, got %q", result.ExactAddressKey)
	}
}

func TestCanonicalSuffix(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"st", "street", true},
		{"St.", "street", true},
		{"AVE", "avenue", true},
		{"blvd", "boulevard", true},
		{"cir", "circle", true},
		{"crescent", "crescent", true},
		{"cr", "crescent", true},
		{"house", "", false},
	}

	for _, c := range cases {
		got, ok := CanonicalSuffix(c.in)
		if ok != c.ok || got != c.want {
			t.Errorf("CanonicalSuffix(%q) = (%q, %v), want (%q, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}
