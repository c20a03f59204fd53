// Package normalize maps vendor-specific team abbreviations, player
// names, and position codes to their canonical forms.
//
// Policy: normalize known exceptions only, never guess. Every function
// here is total — an input with no table entry passes through unchanged.
// The tables are immutable package-level data loaded once at init.
package normalize

import "strings"

// Vendor identifies an external data source with its own naming
// conventions.
type Vendor string

const (
	// VendorBoxScore is the daily box-score scraper feed.
	VendorBoxScore Vendor = "boxscore"
	// VendorDraftKings is the DraftKings salary CSV export.
	VendorDraftKings Vendor = "draftkings"
	// VendorFanDuel is the FanDuel salary CSV export.
	VendorFanDuel Vendor = "fanduel"
)

// Per-vendor team abbreviation discrepancies. Canonical forms are the
// NBA official three-letter codes stored on the teams table.
var teamAbbreviations = map[Vendor]map[string]string{
	VendorBoxScore: {
		"BRK": "BKN",
		"CHO": "CHA",
		"PHO": "PHX",
	},
	VendorDraftKings: {
		"GS":  "GSW",
		"NO":  "NOP",
		"NY":  "NYK",
		"SA":  "SAS",
		"PHO": "PHX",
	},
	VendorFanDuel: {
		"GS":  "GSW",
		"NO":  "NOP",
		"NY":  "NYK",
		"SA":  "SAS",
	},
}

type playerName struct {
	First string
	Last  string
}

// Per-vendor player name discrepancies: nicknames, punctuated initials,
// and suffixes the vendors render differently from the roster source.
var playerNames = map[Vendor]map[playerName]playerName{
	VendorDraftKings: {
		{"Guillermo", "Hernangomez"}: {"Willy", "Hernangomez"},
		{"J.J.", "Redick"}:           {"JJ", "Redick"},
		{"Ishmael", "Smith"}:         {"Ish", "Smith"},
		{"Glenn", "Robinson"}:        {"Glenn", "Robinson III"},
	},
	VendorFanDuel: {
		{"Guillermo", "Hernangomez"}: {"Willy", "Hernangomez"},
		{"Louis", "Williams"}:        {"Lou", "Williams"},
		{"C.J.", "McCollum"}:         {"CJ", "McCollum"},
	},
}

// TeamAbbreviation converts a vendor team abbreviation to canonical
// form. Unmapped abbreviations pass through unchanged.
func TeamAbbreviation(vendor Vendor, raw string) string {
	if canonical, ok := teamAbbreviations[vendor][raw]; ok {
		return canonical
	}
	return raw
}

// PlayerName converts a vendor (first, last) name pair to canonical
// form. Unmapped names pass through unchanged.
func PlayerName(vendor Vendor, first, last string) (string, string) {
	if canonical, ok := playerNames[vendor][playerName{first, last}]; ok {
		return canonical.First, canonical.Last
	}
	return first, last
}

// PositionCode coalesces a raw position code from the season statistics
// source into a canonical position abbreviation: bare "G" becomes "PG",
// bare "F" becomes "SF", any hyphenated combination ("G-F", "F-C")
// becomes "PG", and anything else passes through.
func PositionCode(raw string) string {
	switch {
	case raw == "G":
		return "PG"
	case raw == "F":
		return "SF"
	case strings.Contains(raw, "-"):
		return "PG"
	default:
		return raw
	}
}
