package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeFantasyPoints(t *testing.T) {
	tests := []struct {
		name string
		box  BoxScore
		want float64
	}{
		{
			name: "scoreless line",
			box:  BoxScore{},
			want: 0,
		},
		{
			name: "points only",
			box:  BoxScore{Points: 20},
			want: 20,
		},
		{
			name: "every category",
			box: BoxScore{
				Points:               30,
				ThreePointFieldGoals: 4,
				TotalRebounds:        8,
				Assists:              6,
				Steals:               2,
				Blocks:               1,
				Turnovers:            3,
			},
			// 30 + 4*0.5 + 8*1.25 + 6*1.5 + 2*2 + 1*2 - 3*0.5
			want: 55.5,
		},
		{
			name: "turnovers can push the total negative",
			box:  BoxScore{Turnovers: 4},
			want: -2,
		},
		{
			name: "fractional rebound weight",
			box:  BoxScore{TotalRebounds: 3},
			want: 3.75,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.box.ComputeFantasyPoints()
			assert.Equal(t, tt.want, tt.box.FantasyPoints)
		})
	}
}

func TestComputeFantasyPoints_IgnoresUnweightedStats(t *testing.T) {
	box := BoxScore{
		FieldGoals:                  10,
		FieldGoalAttempts:           20,
		ThreePointFieldGoalAttempts: 8,
		FreeThrows:                  5,
		FreeThrowAttempts:           6,
		OffensiveRebounds:           3,
		DefensiveRebounds:           5,
		FoulsCommitted:              4,
	}
	box.ComputeFantasyPoints()
	assert.Zero(t, box.FantasyPoints, "Only weighted categories should score")
}

func TestBoxScoreLineInput_ToBoxScore(t *testing.T) {
	seconds := 2145
	line := &BoxScoreLineInput{
		FirstName:            "Russell",
		LastName:             "Westbrook",
		Team:                 "OKC",
		Opponent:             "DEN",
		SecondsPlayed:        &seconds,
		Points:               50,
		TotalRebounds:        16,
		Assists:              10,
		ThreePointFieldGoals: 4,
		Turnovers:            5,
	}

	box := line.ToBoxScore(42, 7)

	assert.Equal(t, 42, box.PlayerID, "Player ID should come from resolution")
	assert.Equal(t, 7, box.GameID, "Game ID should come from resolution")
	require.True(t, box.SecondsPlayed.Valid, "Seconds played should be set when present")
	assert.Equal(t, int32(2145), box.SecondsPlayed.Int32)
	// 50 + 4*0.5 + 16*1.25 + 10*1.5 - 5*0.5
	assert.Equal(t, 84.5, box.FantasyPoints, "Derived score should be computed on conversion")
}

func TestBoxScoreLineInput_ToBoxScore_NoMinutes(t *testing.T) {
	line := &BoxScoreLineInput{FirstName: "Dummy", LastName: "Player"}

	box := line.ToBoxScore(1, 1)
	assert.False(t, box.SecondsPlayed.Valid, "Missing seconds played should stay null")
}
