package intent

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	connectorRe = regexp.MustCompile(`(?i)\s+(?:and|&)\s+`)
	leftNameRe  = regexp.MustCompile(`([A-Za-z][A-Za-z'. ]{0,30})$`)
	rightNameRe = regexp.MustCompile(`^([A-Za-z][A-Za-z'. ]{0,30})`)
)

// DetectIntersection finds a "King and Bay" style cross-street mention.
// Every connector in the text is a candidate, so chatter early in a message
// ("nice and quiet near King and Bay") cannot shadow a real pair later on.
// Both sides are cleaned of filler; a pair of capitalized names wins over
// lowercase leftovers. Whether the streets really intersect is for the
// geocoder to decide.
func (c *Classifier) DetectIntersection(text string) (string, string, bool) {
	var first, second string
	for _, pos := range connectorRe.FindAllStringIndex(text, -1) {
		left := leftNameRe.FindStringSubmatch(text[:pos[0]])
		right := rightNameRe.FindStringSubmatch(text[pos[1]:])
		if left == nil || right == nil {
			continue
		}
		a := cleanStreetName(left[1])
		b := cleanLeadingName(right[1])
		if a == "" || b == "" || strings.EqualFold(a, b) {
			continue
		}
		if capitalized(a) && capitalized(b) {
			return a, b, true
		}
		if first == "" {
			first, second = a, b
		}
	}
	if first == "" {
		return "", "", false
	}
	return first, second, true
}

// cleanLeadingName keeps the leading run of plausible name words, stopping
// at the first filler token ("Bay in Toronto" -> "Bay").
func cleanLeadingName(raw string) string {
	tokens := strings.Fields(raw)
	var kept []string
	for _, t := range tokens {
		token := strings.ToLower(strings.Trim(t, ".'"))
		if stopwords[token] {
			break
		}
		kept = append(kept, t)
		if len(kept) == 3 {
			break
		}
	}
	return strings.Join(kept, " ")
}

// capitalized reports whether every word starts with an uppercase letter.
func capitalized(s string) bool {
	for _, w := range strings.Fields(s) {
		if !unicode.IsUpper(rune(w[0])) {
			return false
		}
	}
	return true
}
