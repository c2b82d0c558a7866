package postal

import (
	"regexp"
	"strings"

	"github.com/akarpov/realocate/internal/model"
)

// Radius heuristics in kilometers, by code specificity. Full codes pin a
// block or two; FSAs cover whole districts and need room.
const (
	RadiusFullCode = 0.5
	RadiusCoreFSA  = 1.0
	RadiusUrbanFSA = 1.5
	RadiusOuterFSA = 2.0
	RadiusRuralFSA = 5.0
)

// Canadian postal grammar: letter-digit-letter digit-letter-digit. The
// letters D, F, I, O, Q, U are never used; W and Z additionally never lead.
var (
	fullCodeRe = regexp.MustCompile(`(?i)\b([ABCEGHJKLMNPRSTVXY]\d[ABCEGHJKLMNPRSTVWXYZ])\s*[- ]?\s*(\d[ABCEGHJKLMNPRSTVWXYZ]\d)\b`)
	fsaOnlyRe  = regexp.MustCompile(`(?i)\b([ABCEGHJKLMNPRSTVXY]\d[ABCEGHJKLMNPRSTVWXYZ])\b`)
)

// Resolver validates, canonicalizes, and interprets Canadian postal codes
type Resolver struct{}

// NewResolver creates a new postal code resolver
func NewResolver() *Resolver {
	return &Resolver{}
}

// Normalize parses raw input into PostalCodeInfo. A 3-character input is
// treated as an FSA, a 6-character input as a full code canonicalized with
// exactly one space after the third character. Returns nil for anything
// that does not fit the grammar.
func (r *Resolver) Normalize(raw string) *model.PostalCodeInfo {
	compact := strings.ToUpper(strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(raw)))

	switch len(compact) {
	case 3:
		if !fsaOnlyRe.MatchString(compact) {
			return nil
		}
		return r.build(compact, "")
	case 6:
		m := fullCodeRe.FindStringSubmatch(compact[:3] + " " + compact[3:])
		if m == nil {
			return nil
		}
		return r.build(strings.ToUpper(m[1]), strings.ToUpper(m[2]))
	default:
		return nil
	}
}

// DetectInText scans free text for a postal code, trying the full-code
// pattern first and falling back to a bare FSA.
func (r *Resolver) DetectInText(text string) *model.PostalCodeInfo {
	if m := fullCodeRe.FindStringSubmatch(text); m != nil {
		return r.build(strings.ToUpper(m[1]), strings.ToUpper(m[2]))
	}
	if m := fsaOnlyRe.FindStringSubmatch(text); m != nil {
		return r.build(strings.ToUpper(m[1]), "")
	}
	return nil
}

// RadiusFor returns the search radius in km appropriate for the code's
// specificity.
func (r *Resolver) RadiusFor(info *model.PostalCodeInfo) float64 {
	switch {
	case info == nil:
		return RadiusOuterFSA
	case info.IsFull:
		return RadiusFullCode
	case !info.IsUrban:
		return RadiusRuralFSA
	case coreFSAs[info.FSA]:
		return RadiusCoreFSA
	case strings.HasPrefix(info.FSA, "M"):
		return RadiusUrbanFSA
	default:
		return RadiusOuterFSA
	}
}

// ValidateCity checks a user-supplied city against the curated FSA table.
// Sub-region aliases fold to their parent city first. An FSA without a
// table entry validates as consistent: absence of a rule is not a
// contradiction. When the check fails, the table's city is suggested.
func (r *Resolver) ValidateCity(info *model.PostalCodeInfo, city string) (bool, string) {
	if info == nil || city == "" {
		return true, ""
	}
	expected, ok := cityByFSA[info.FSA]
	if !ok {
		return true, ""
	}

	folded := strings.ToLower(strings.TrimSpace(city))
	if alias, ok := cityAliases[folded]; ok {
		folded = strings.ToLower(alias)
	}
	if folded == strings.ToLower(expected) {
		return true, ""
	}
	return false, expected
}

// build assembles PostalCodeInfo from a validated FSA and optional LDU.
func (r *Resolver) build(fsa, ldu string) *model.PostalCodeInfo {
	info := &model.PostalCodeInfo{
		FSA:      fsa,
		IsFull:   ldu != "",
		Province: provinceByLetter[fsa[0]],
		// A zero in the second position marks rural delivery.
		IsUrban: fsa[1] != '0',
		City:    cityByFSA[fsa],
	}
	if info.IsFull {
		info.Code = fsa + " " + ldu
	} else {
		info.Code = fsa
	}
	return info
}
