package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTeamAbbreviation(t *testing.T) {
	tests := []struct {
		name   string
		vendor Vendor
		raw    string
		want   string
	}{
		{"box score Brooklyn", VendorBoxScore, "BRK", "BKN"},
		{"box score Charlotte", VendorBoxScore, "CHO", "CHA"},
		{"box score Phoenix", VendorBoxScore, "PHO", "PHX"},
		{"draftkings Golden State", VendorDraftKings, "GS", "GSW"},
		{"draftkings New Orleans", VendorDraftKings, "NO", "NOP"},
		{"draftkings New York", VendorDraftKings, "NY", "NYK"},
		{"draftkings San Antonio", VendorDraftKings, "SA", "SAS"},
		{"draftkings Phoenix", VendorDraftKings, "PHO", "PHX"},
		{"fanduel Golden State", VendorFanDuel, "GS", "GSW"},
		{"fanduel San Antonio", VendorFanDuel, "SA", "SAS"},
		{"canonical passes through", VendorBoxScore, "BOS", "BOS"},
		{"unknown passes through", VendorDraftKings, "XYZ", "XYZ"},
		{"mapping is per-vendor", VendorFanDuel, "BRK", "BRK"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TeamAbbreviation(tt.vendor, tt.raw))
		})
	}
}

func TestPlayerName(t *testing.T) {
	tests := []struct {
		name      string
		vendor    Vendor
		first     string
		last      string
		wantFirst string
		wantLast  string
	}{
		{"draftkings nickname", VendorDraftKings, "Guillermo", "Hernangomez", "Willy", "Hernangomez"},
		{"draftkings punctuated initials", VendorDraftKings, "J.J.", "Redick", "JJ", "Redick"},
		{"draftkings suffix", VendorDraftKings, "Glenn", "Robinson", "Glenn", "Robinson III"},
		{"fanduel nickname", VendorFanDuel, "Louis", "Williams", "Lou", "Williams"},
		{"fanduel initials", VendorFanDuel, "C.J.", "McCollum", "CJ", "McCollum"},
		{"unmapped passes through", VendorDraftKings, "LeBron", "James", "LeBron", "James"},
		{"mapping is per-vendor", VendorFanDuel, "J.J.", "Redick", "J.J.", "Redick"},
		{"box scores have no name table", VendorBoxScore, "Louis", "Williams", "Louis", "Williams"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := PlayerName(tt.vendor, tt.first, tt.last)
			assert.Equal(t, tt.wantFirst, first, "First names should match")
			assert.Equal(t, tt.wantLast, last, "Last names should match")
		})
	}
}

func TestPositionCode(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"G", "PG"},
		{"F", "SF"},
		{"G-F", "PG"},
		{"F-C", "PG"},
		{"C-F", "PG"},
		{"PG", "PG"},
		{"SG", "SG"},
		{"SF", "SF"},
		{"PF", "PF"},
		{"C", "C"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, PositionCode(tt.raw))
		})
	}
}
