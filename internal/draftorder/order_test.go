package draftorder

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickToRoundPosition(t *testing.T) {
	cases := []struct {
		name         string
		overall      int
		teamCount    int
		linearRounds int
		wantRound    int
		wantPos      int
	}{
		{name: "first overall", overall: 1, teamCount: 16, linearRounds: 10, wantRound: 1, wantPos: 1},
		{name: "last pick of round one", overall: 16, teamCount: 16, linearRounds: 10, wantRound: 1, wantPos: 16},
		{name: "linear rounds repeat order", overall: 17, teamCount: 16, linearRounds: 10, wantRound: 2, wantPos: 1},
		{name: "last linear pick", overall: 160, teamCount: 16, linearRounds: 10, wantRound: 10, wantPos: 16},
		{name: "no reversal at the seam", overall: 161, teamCount: 16, linearRounds: 10, wantRound: 11, wantPos: 1},
		{name: "second snake round reverses", overall: 177, teamCount: 16, linearRounds: 10, wantRound: 12, wantPos: 16},
		{name: "second snake round last slot", overall: 192, teamCount: 16, linearRounds: 10, wantRound: 12, wantPos: 1},
		{name: "third snake round ascends again", overall: 193, teamCount: 16, linearRounds: 10, wantRound: 13, wantPos: 1},
		{name: "pure snake first round", overall: 3, teamCount: 4, linearRounds: 0, wantRound: 1, wantPos: 3},
		{name: "pure snake second round reversed", overall: 5, teamCount: 4, linearRounds: 0, wantRound: 2, wantPos: 4},
		{name: "odd linear rounds seam", overall: 16, teamCount: 5, linearRounds: 3, wantRound: 4, wantPos: 1},
		{name: "odd linear rounds second snake round", overall: 21, teamCount: 5, linearRounds: 3, wantRound: 5, wantPos: 5},
		{name: "single team", overall: 7, teamCount: 1, linearRounds: 2, wantRound: 7, wantPos: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			round, pos, err := PickToRoundPosition(tc.overall, tc.teamCount, tc.linearRounds)
			require.NoError(t, err)
			assert.Equal(t, tc.wantRound, round)
			assert.Equal(t, tc.wantPos, pos)
		})
	}
}

func TestPickToRoundPositionRejectsBadInput(t *testing.T) {
	_, _, err := PickToRoundPosition(0, 16, 10)
	assert.Error(t, err)

	_, _, err = PickToRoundPosition(1, 0, 10)
	assert.Error(t, err)

	_, err = RoundPositionToPick(1, 17, 16, 10)
	assert.Error(t, err)

	_, err = RoundPositionToPick(0, 1, 16, 10)
	assert.Error(t, err)
}

func TestRoundTripIdentity(t *testing.T) {
	configs := []struct {
		teamCount    int
		linearRounds int
		totalRounds  int
	}{
		{teamCount: 16, linearRounds: 10, totalRounds: 32},
		{teamCount: 12, linearRounds: 0, totalRounds: 15},
		{teamCount: 5, linearRounds: 3, totalRounds: 9},
		{teamCount: 8, linearRounds: 8, totalRounds: 8},
		{teamCount: 1, linearRounds: 1, totalRounds: 5},
	}

	for _, cfg := range configs {
		total := cfg.teamCount * cfg.totalRounds
		for overall := 1; overall <= total; overall++ {
			round, pos, err := PickToRoundPosition(overall, cfg.teamCount, cfg.linearRounds)
			require.NoError(t, err)
			back, err := RoundPositionToPick(round, pos, cfg.teamCount, cfg.linearRounds)
			require.NoError(t, err)
			require.Equal(t, overall, back,
				"round trip failed for overall %d with %d teams, %d linear rounds",
				overall, cfg.teamCount, cfg.linearRounds)
		}
	}
}

func TestLinearRoundsRepeatIdentically(t *testing.T) {
	teamCount := 10
	linearRounds := 4

	var firstRound []int
	for overall := 1; overall <= teamCount; overall++ {
		_, pos, err := PickToRoundPosition(overall, teamCount, linearRounds)
		require.NoError(t, err)
		firstRound = append(firstRound, pos)
	}

	for round := 2; round <= linearRounds; round++ {
		for i := 0; i < teamCount; i++ {
			overall := (round-1)*teamCount + i + 1
			_, pos, err := PickToRoundPosition(overall, teamCount, linearRounds)
			require.NoError(t, err)
			assert.Equal(t, firstRound[i], pos, "round %d slot %d diverged from round 1", round, i+1)
		}
	}
}

func TestGeneratePicks(t *testing.T) {
	order := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New()}

	picks, err := GeneratePicks(2026, order, 3, 2)
	require.NoError(t, err)
	require.Len(t, picks, 12)

	// Rounds 1 and 2 are linear, round 3 opens the snake phase ascending.
	for i, p := range picks {
		assert.Equal(t, i+1, p.Overall)
		assert.Equal(t, 2026, p.Season)
		assert.Nil(t, p.PlayerID)
		assert.Equal(t, p.OriginalOwnerID, p.CurrentOwnerID)
	}
	assert.Equal(t, order[0], picks[0].CurrentOwnerID)
	assert.Equal(t, order[3], picks[3].CurrentOwnerID)
	assert.Equal(t, order[0], picks[4].CurrentOwnerID)
	assert.Equal(t, order[0], picks[8].CurrentOwnerID)

	_, err = GeneratePicks(2026, nil, 3, 2)
	assert.Error(t, err)
}
