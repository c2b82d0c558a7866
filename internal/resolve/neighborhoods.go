package resolve

import (
	"sort"
	"strings"
)

// knownNeighborhoods is the curated Greater Toronto Area list for the
// last-resort neighborhood stage. Canonical display spellings; matched
// case-insensitively against the full utterance.
var knownNeighborhoods = []string{
	"Yorkville",
	"The Annex",
	"Kensington Market",
	"Liberty Village",
	"Leslieville",
	"Riverdale",
	"The Beaches",
	"Distillery District",
	"Little Italy",
	"Little Portugal",
	"Parkdale",
	"High Park",
	"Rosedale",
	"Forest Hill",
	"Cabbagetown",
	"Corktown",
	"The Junction",
	"Greektown",
	"Chinatown",
	"Harbourfront",
	"CityPlace",
	"Regent Park",
	"Moss Park",
	"Summerhill",
	"Davisville",
	"Leaside",
	"Don Mills",
	"Willowdale",
	"Agincourt",
	"Malvern",
	"Mimico",
	"Long Branch",
	"Swansea",
	"Bloor West Village",
	"Roncesvalles",
	"Trinity Bellwoods",
	"Queen West",
	"King West",
	"Entertainment District",
	"Financial District",
	"St. Lawrence Market",
	"Unionville",
	"Thornhill",
	"Maple",
	"Woodbridge",
	"Port Credit",
	"Streetsville",
}

// neighborhoodIndex is lowercase name -> canonical spelling, with names
// ordered longest first so "Bloor West Village" wins over "Queen West"
// style substring collisions.
var neighborhoodIndex = func() []struct{ lower, canonical string } {
	index := make([]struct{ lower, canonical string }, len(knownNeighborhoods))
	for i, name := range knownNeighborhoods {
		index[i] = struct{ lower, canonical string }{strings.ToLower(name), name}
	}
	sort.Slice(index, func(i, j int) bool {
		return len(index[i].lower) > len(index[j].lower)
	})
	return index
}()

// FindNeighborhood returns the canonical spelling of the first known
// neighborhood named in text, or "" when none is.
func FindNeighborhood(text string) string {
	lowered := strings.ToLower(text)
	for _, entry := range neighborhoodIndex {
		if containsWord(lowered, entry.lower) {
			return entry.canonical
		}
	}
	return ""
}

// containsWord reports whether needle occurs in haystack on word
// boundaries, so "maple" does not match inside "maplewood".
func containsWord(haystack, needle string) bool {
	for start := 0; ; {
		idx := strings.Index(haystack[start:], needle)
		if idx < 0 {
			return false
		}
		idx += start
		end := idx + len(needle)
		beforeOK := idx == 0 || !isWordChar(haystack[idx-1])
		afterOK := end == len(haystack) || !isWordChar(haystack[end])
		if beforeOK && afterOK {
			return true
		}
		start = idx + 1
	}
}

func isWordChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9'
}
