package addresskey

import (
	"sort"
	"strings"
)

// suffixForms maps every accepted street-suffix spelling to its canonical
// long form. Abbreviations fold into the same canonical value so that
// "Bamburgh Cir" and "Bamburgh Circle" produce identical keys.
var suffixForms = map[string]string{
	"street":    "street",
	"st":        "street",
	"avenue":    "avenue",
	"ave":       "avenue",
	"av":        "avenue",
	"road":      "road",
	"rd":        "road",
	"drive":     "drive",
	"dr":        "drive",
	"circle":    "circle",
	"cir":       "circle",
	"circ":      "circle",
	"boulevard": "boulevard",
	"blvd":      "boulevard",
	"lane":      "lane",
	"ln":        "lane",
	"crescent":  "crescent",
	"cres":      "crescent",
	"cr":        "crescent",
	"court":     "court",
	"crt":       "court",
	"ct":        "court",
	"place":     "place",
	"pl":        "place",
	"terrace":   "terrace",
	"terr":      "terrace",
	"ter":       "terrace",
	"trail":     "trail",
	"trl":       "trail",
	"way":       "way",
	"gate":      "gate",
	"grove":     "grove",
	"grv":       "grove",
	"square":    "square",
	"sq":        "square",
	"parkway":   "parkway",
	"pkwy":      "parkway",
	"heights":   "heights",
	"hts":       "heights",
	"gardens":   "gardens",
	"gdns":      "gardens",
}

// CanonicalSuffix returns the canonical long form of a street suffix and
// whether the input is a recognized suffix at all. Trailing periods are
// tolerated ("St." == "st").
func CanonicalSuffix(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(s), "."))
	canonical, ok := suffixForms[s]
	return canonical, ok
}

// SuffixAlternation returns all accepted suffix spellings joined for use in
// a regular expression, longest first so that "crescent" wins over "cr".
func SuffixAlternation() string {
	forms := make([]string, 0, len(suffixForms))
	for form := range suffixForms {
		forms = append(forms, form)
	}
	sort.Slice(forms, func(i, j int) bool {
		if len(forms[i]) != len(forms[j]) {
			return len(forms[i]) > len(forms[j])
		}
		return forms[i] < forms[j]
	})
	return strings.Join(forms, "|")
}
