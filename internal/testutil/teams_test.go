package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/scricket/internal/match"
)

func TestTeamEntry(t *testing.T) {
	events := TeamEntry("Lions", 3)
	require.Len(t, events, 4)
	assert.Equal(t, match.AddPlayer{Player: match.NewPlayer("Lions", "P2", 2)}, events[2])
	assert.Equal(t, match.SubmitTeam{Name: "Lions"}, events[3])
}

func TestOpening(t *testing.T) {
	s, err := match.Replay(Opening("Lions", "Tigers", 11))
	require.NoError(t, err)

	assert.True(t, s.InProgress())
	assert.Equal(t, match.SideA, s.BattingSide())
	assert.Equal(t, 10, s.BowlerIndex())
	assert.Equal(t, match.HintNone, s.PendingSelection())
}
