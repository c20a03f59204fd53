package importer

import "nbadfs/ingestion/internal/models"

// Canonical reference data. Teams use the NBA official three-letter
// abbreviations that vendor abbreviations normalize to.

// SiteDraftKings and SiteFanDuel are the supported DFS vendors
const (
	SiteDraftKings = "DraftKings"
	SiteFanDuel    = "FanDuel"
)

// CanonicalSites lists the supported DFS vendors
var CanonicalSites = []string{SiteDraftKings, SiteFanDuel}

// CanonicalPositions lists the five canonical player positions
var CanonicalPositions = []models.PositionInput{
	{Name: "Point Guard", Abbreviation: "PG"},
	{Name: "Shooting Guard", Abbreviation: "SG"},
	{Name: "Small Forward", Abbreviation: "SF"},
	{Name: "Power Forward", Abbreviation: "PF"},
	{Name: "Center", Abbreviation: "C"},
}

// CanonicalTeams lists the thirty NBA franchises
var CanonicalTeams = []models.TeamInput{
	{Name: "Atlanta Hawks", Abbreviation: "ATL"},
	{Name: "Boston Celtics", Abbreviation: "BOS"},
	{Name: "Brooklyn Nets", Abbreviation: "BKN"},
	{Name: "Charlotte Hornets", Abbreviation: "CHA"},
	{Name: "Chicago Bulls", Abbreviation: "CHI"},
	{Name: "Cleveland Cavaliers", Abbreviation: "CLE"},
	{Name: "Dallas Mavericks", Abbreviation: "DAL"},
	{Name: "Denver Nuggets", Abbreviation: "DEN"},
	{Name: "Detroit Pistons", Abbreviation: "DET"},
	{Name: "Golden State Warriors", Abbreviation: "GSW"},
	{Name: "Houston Rockets", Abbreviation: "HOU"},
	{Name: "Indiana Pacers", Abbreviation: "IND"},
	{Name: "Los Angeles Clippers", Abbreviation: "LAC"},
	{Name: "Los Angeles Lakers", Abbreviation: "LAL"},
	{Name: "Memphis Grizzlies", Abbreviation: "MEM"},
	{Name: "Miami Heat", Abbreviation: "MIA"},
	{Name: "Milwaukee Bucks", Abbreviation: "MIL"},
	{Name: "Minnesota Timberwolves", Abbreviation: "MIN"},
	{Name: "New Orleans Pelicans", Abbreviation: "NOP"},
	{Name: "New York Knicks", Abbreviation: "NYK"},
	{Name: "Oklahoma City Thunder", Abbreviation: "OKC"},
	{Name: "Orlando Magic", Abbreviation: "ORL"},
	{Name: "Philadelphia 76ers", Abbreviation: "PHI"},
	{Name: "Phoenix Suns", Abbreviation: "PHX"},
	{Name: "Portland Trail Blazers", Abbreviation: "POR"},
	{Name: "Sacramento Kings", Abbreviation: "SAC"},
	{Name: "San Antonio Spurs", Abbreviation: "SAS"},
	{Name: "Toronto Raptors", Abbreviation: "TOR"},
	{Name: "Utah Jazz", Abbreviation: "UTA"},
	{Name: "Washington Wizards", Abbreviation: "WAS"},
}
