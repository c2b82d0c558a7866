package intent

import (
	"regexp"
	"strings"

	"github.com/akarpov/realocate/internal/addresskey"
	"github.com/akarpov/realocate/internal/model"
)

// Confidence ladder for classification outcomes. These values are tuned
// empirically; treat them as contract, not as something to re-derive.
const (
	ConfidenceFullAddressWithUnit = 0.95
	ConfidenceFullAddress         = 0.90
	ConfidenceStreetWithIndicator = 0.85
	ConfidenceStreetBare          = 0.75
	ConfidenceStreetIncomplete    = 0.60
	ConfidenceSuffixHint          = 0.50
)

// Result is the outcome of classifying one message
type Result struct {
	Intent     model.Intent            `json:"intent"`
	Components model.AddressComponents `json:"components"`
	Confidence float64                 `json:"confidence"` // Strictly 0.0 for NotAddress, (0,1] otherwise
	Reason     string                  `json:"reason"`     // Which pattern matched (e.g., "pattern:number+name+suffix")
}

// stopwords are tokens that can never be part of a street name. Includes
// location indicators, fillers, and property vocabulary.
var stopwords = map[string]bool{
	"on": true, "at": true, "in": true, "near": true, "the": true, "a": true,
	"an": true, "of": true, "to": true, "by": true, "along": true, "and": true,
	"for": true, "me": true, "properties": true, "listings": true,
	"listing": true, "property": true, "how": true, "what": true, "any": true,
	"much": true, "many": true, "show": true, "find": true, "house": true,
	"houses": true, "home": true, "homes": true, "condo": true, "condos": true,
	"apartment": true, "apartments": true, "unit": true, "units": true,
	"sale": true, "rent": true, "lease": true, "bed": true, "beds": true,
	"bedroom": true, "bedrooms": true, "bath": true, "baths": true,
	"bathroom": true, "bathrooms": true, "br": true, "ba": true,
}

// knownCities recognized in "in <city>" phrases
var knownCities = []string{
	"richmond hill", "north york", "king city", "east gwillimbury",
	"halton hills", "toronto", "mississauga", "markham", "vaughan",
	"scarborough", "etobicoke", "brampton", "oakville", "pickering",
	"ajax", "whitby", "oshawa", "burlington", "milton", "newmarket",
	"aurora",
}

// Classifier detects address and street mentions in conversational text
type Classifier struct {
	unitRe       *regexp.Regexp
	hashUnitRe   *regexp.Regexp
	bedBathRe    *regexp.Regexp
	unitBeforeRe *regexp.Regexp
	fullStreetRe *regexp.Regexp
	streetOnlyRe *regexp.Regexp
	bareSuffixRe *regexp.Regexp
	indicatorRe  *regexp.Regexp
	cityRe       *regexp.Regexp
}

// New creates a classifier with all patterns compiled
func New() *Classifier {
	sfx := addresskey.SuffixAlternation()
	name := `[A-Za-z][A-Za-z'.]*(?:\s+[A-Za-z][A-Za-z'.]*){0,2}`
	cities := strings.Join(knownCities, "|")

	return &Classifier{
		unitRe:     regexp.MustCompile(`(?i)\b(?:unit|suite|apt|apartment|ph)\.?\s*#?\s*(\d+[A-Za-z]?)\b`),
		hashUnitRe: regexp.MustCompile(`#\s*(\d+[A-Za-z]?)\b`),
		// Digit sequences adjacent to bedroom/bathroom vocabulary are
		// counts, never street numbers.
		bedBathRe:    regexp.MustCompile(`(?i)\b\d+\s*\+?\s*(?:bed(?:room)?s?|bath(?:room)?s?|br|ba)\b`),
		unitBeforeRe: regexp.MustCompile(`(?i)\b(\d{1,5})\s+(\d{1,6})\s+(` + name + `)\s+(` + sfx + `)\.?\b`),
		fullStreetRe: regexp.MustCompile(`(?i)\b(\d{1,6})\s+(` + name + `)\s+(` + sfx + `)\.?\b`),
		streetOnlyRe: regexp.MustCompile(`(?i)\b(` + name + `)\s+(` + sfx + `)\.?\b`),
		bareSuffixRe: regexp.MustCompile(`(?i)\b(?:` + sfx + `)\b`),
		indicatorRe:  regexp.MustCompile(`(?i)\b(?:on|at|near|along)\b`),
		cityRe:       regexp.MustCompile(`(?i)\b(?:in|around)\s+(` + cities + `)\b`),
	}
}

// IsAddressQuery is the fast-path check used by upstream routing.
func (c *Classifier) IsAddressQuery(text string) bool {
	return c.Classify(text, "").Intent != model.IntentNotAddress
}

// Classify extracts address components from text and decides whether the
// message is an address search, a street search, or neither. cityHint, when
// non-empty, backfills the city if the text names none.
func (c *Classifier) Classify(text string, cityHint string) Result {
	text = strings.TrimSpace(text)
	if text == "" {
		return Result{Intent: model.IntentNotAddress, Reason: "empty"}
	}

	var components model.AddressComponents

	// 1. Unit number, removed from the working text so its digits cannot
	// be mistaken for a street number.
	working := text
	if m := c.unitRe.FindStringSubmatchIndex(working); m != nil {
		components.UnitNumber = working[m[2]:m[3]]
		working = working[:m[0]] + " " + working[m[1]:]
	} else if m := c.hashUnitRe.FindStringSubmatchIndex(working); m != nil {
		components.UnitNumber = working[m[2]:m[3]]
		working = working[:m[0]] + " " + working[m[1]:]
	}

	// 2. Bed/bath counts removed before any street number is accepted.
	working = c.bedBathRe.ReplaceAllString(working, " ")

	// City, from explicit mention or the session hint
	if m := c.cityRe.FindStringSubmatch(text); m != nil {
		components.City = strings.ToLower(m[1])
	} else if cityHint != "" {
		components.City = cityHint
	}

	// 3. Unit-before-number form: "1209 55 Bamburgh Circle"
	if components.UnitNumber == "" {
		if m := c.unitBeforeRe.FindStringSubmatch(working); m != nil {
			name := cleanStreetName(m[3])
			if name != "" {
				components.UnitNumber = m[1]
				components.StreetNumber = m[2]
				components.StreetName = name
				components.StreetSuffix = canonical(m[4])
				return Result{
					Intent:     model.IntentAddressSearch,
					Components: components,
					Confidence: ConfidenceFullAddressWithUnit,
					Reason:     "pattern:unit+number+name+suffix",
				}
			}
		}
	}

	// 4. Full street form: number + name + suffix. The number counts only
	// when it sits directly against the street name; filler in between
	// ("2 condos on King Street") demotes the match to a street search.
	incompleteSuffix := ""
	for _, m := range c.fullStreetRe.FindAllStringSubmatch(working, -1) {
		raw := strings.Join(strings.Fields(m[2]), " ")
		name := cleanStreetName(m[2])
		if name == "" {
			incompleteSuffix = canonical(m[3])
			continue
		}
		components.StreetName = name
		components.StreetSuffix = canonical(m[3])
		if name != raw {
			break // Street name is real, number is not adjacent to it
		}
		components.StreetNumber = m[1]
		if components.UnitNumber != "" {
			return Result{
				Intent:     model.IntentAddressSearch,
				Components: components,
				Confidence: ConfidenceFullAddressWithUnit,
				Reason:     "pattern:number+name+suffix+unit",
			}
		}
		return Result{
			Intent:     model.IntentAddressSearch,
			Components: components,
			Confidence: ConfidenceFullAddress,
			Reason:     "pattern:number+name+suffix",
		}
	}

	if components.StreetName != "" {
		confidence := ConfidenceStreetBare
		reason := "pattern:name+suffix"
		if c.indicatorRe.MatchString(text) {
			confidence = ConfidenceStreetWithIndicator
			reason = "pattern:name+suffix+indicator"
		}
		return Result{
			Intent:     model.IntentStreetSearch,
			Components: components,
			Confidence: confidence,
			Reason:     reason,
		}
	}

	// 5. Street without a number: name + suffix
	for _, m := range c.streetOnlyRe.FindAllStringSubmatch(working, -1) {
		name := cleanStreetName(m[1])
		if name == "" {
			continue
		}
		components.StreetName = name
		components.StreetSuffix = canonical(m[2])
		confidence := ConfidenceStreetBare
		reason := "pattern:name+suffix"
		if c.indicatorRe.MatchString(text) {
			confidence = ConfidenceStreetWithIndicator
			reason = "pattern:name+suffix+indicator"
		}
		return Result{
			Intent:     model.IntentStreetSearch,
			Components: components,
			Confidence: confidence,
			Reason:     reason,
		}
	}

	// 6. Suffix seen next to a number but every candidate name dissolved
	// into filler words: street search, low confidence.
	if incompleteSuffix != "" {
		components.StreetSuffix = incompleteSuffix
		return Result{
			Intent:     model.IntentStreetSearch,
			Components: components,
			Confidence: ConfidenceStreetIncomplete,
			Reason:     "pattern:name+suffix:incomplete",
		}
	}

	// 7. Indicator plus a bare suffix token but no resolvable name
	if c.indicatorRe.MatchString(text) && c.bareSuffixRe.MatchString(working) {
		return Result{
			Intent:     model.IntentStreetSearch,
			Components: components,
			Confidence: ConfidenceSuffixHint,
			Reason:     "pattern:indicator+suffix",
		}
	}

	// True non-match: confidence is exactly zero, never partial.
	return Result{Intent: model.IntentNotAddress, Reason: "no-pattern"}
}

// cleanStreetName drops filler and indicator tokens, keeping only the
// trailing run of plausible name words ("properties on King" -> "King").
func cleanStreetName(raw string) string {
	tokens := strings.Fields(raw)
	var kept []string
	for i := len(tokens) - 1; i >= 0; i-- {
		token := strings.ToLower(strings.Trim(tokens[i], ".'"))
		if stopwords[token] {
			break
		}
		kept = append([]string{tokens[i]}, kept...)
	}
	return strings.Join(kept, " ")
}

// canonical folds a matched suffix to its long form
func canonical(s string) string {
	if long, ok := addresskey.CanonicalSuffix(s); ok {
		return long
	}
	return strings.ToLower(s)
}
