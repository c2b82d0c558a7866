package postal

// provinceByLetter maps the leading postal-code letter to its province or
// territory. The letters D, F, I, O, Q, and U are never assigned.
var provinceByLetter = map[byte]string{
	'A': "Newfoundland and Labrador",
	'B': "Nova Scotia",
	'C': "Prince Edward Island",
	'E': "New Brunswick",
	'G': "Quebec",
	'H': "Quebec",
	'J': "Quebec",
	'K': "Ontario",
	'L': "Ontario",
	'M': "Ontario",
	'N': "Ontario",
	'P': "Ontario",
	'R': "Manitoba",
	'S': "Saskatchewan",
	'T': "Alberta",
	'V': "British Columbia",
	'X': "Northwest Territories and Nunavut",
	'Y': "Yukon",
}

// coreFSAs are dense downtown forward sortation areas where even an
// FSA-level search stays tight. Used by the radius heuristic.
var coreFSAs = map[string]bool{
	"M5A": true, "M5B": true, "M5C": true, "M5E": true, "M5G": true,
	"M5H": true, "M5J": true, "M5K": true, "M5L": true, "M5S": true,
	"M5T": true, "M5V": true, "M5X": true, "M4W": true, "M4X": true,
	"M4Y": true, "M6G": true, "M6J": true, "M6K": true,
	"H2X": true, "H2Y": true, "H3A": true, "H3B": true,
	"V6B": true, "V6C": true, "V6E": true, "V6Z": true,
	"K1P": true, "T2P": true,
}

// cityByFSA is a curated table used to cross-check a user-supplied city
// against the postal code they gave. It is intentionally sparse: an FSA
// with no entry validates as consistent.
var cityByFSA = map[string]string{
	// Toronto (amalgamated: North York, Scarborough, Etobicoke fold in)
	"M1B": "Toronto", "M1C": "Toronto", "M1E": "Toronto", "M1P": "Toronto",
	"M2J": "Toronto", "M2M": "Toronto", "M2N": "Toronto", "M3C": "Toronto",
	"M4C": "Toronto", "M4E": "Toronto", "M4S": "Toronto", "M4W": "Toronto",
	"M4Y": "Toronto", "M5A": "Toronto", "M5B": "Toronto", "M5G": "Toronto",
	"M5H": "Toronto", "M5J": "Toronto", "M5S": "Toronto", "M5T": "Toronto",
	"M5V": "Toronto", "M6G": "Toronto", "M6J": "Toronto", "M6K": "Toronto",
	"M8V": "Toronto", "M9V": "Toronto", "M9W": "Toronto",
	// Greater Toronto Area
	"L3P": "Markham", "L3R": "Markham", "L6B": "Markham",
	"L4B": "Richmond Hill", "L4C": "Richmond Hill", "L4E": "Richmond Hill",
	"L4J": "Vaughan", "L4K": "Vaughan", "L4L": "Vaughan", "L6A": "Vaughan",
	"L4W": "Mississauga", "L5B": "Mississauga", "L5M": "Mississauga",
	"L6P": "Brampton", "L6R": "Brampton", "L6Y": "Brampton",
	"L1S": "Ajax", "L1V": "Pickering", "L1N": "Whitby", "L1H": "Oshawa",
	"L6H": "Oakville", "L6J": "Oakville", "L7A": "Brampton",
	"L3T": "Markham", "L7B": "King City", "L9N": "East Gwillimbury",
	// Other majors
	"K1A": "Ottawa", "K1P": "Ottawa", "K2P": "Ottawa",
	"H2X": "Montreal", "H2Y": "Montreal", "H3A": "Montreal", "H3B": "Montreal",
	"V5K": "Vancouver", "V6B": "Vancouver", "V6C": "Vancouver", "V6E": "Vancouver",
	"T2P": "Calgary", "T5J": "Edmonton",
}

// cityAliases folds common sub-region names to the city the curated table
// uses, so "North York" validates against a Toronto FSA.
var cityAliases = map[string]string{
	"north york":       "Toronto",
	"scarborough":      "Toronto",
	"etobicoke":        "Toronto",
	"east york":        "Toronto",
	"york":             "Toronto",
	"downtown toronto": "Toronto",
}
