package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func playedMatch(t *testing.T) *State {
	t.Helper()
	s := newInnings(t)
	applyAll(t, s,
		Runs{N: 1},
		ExtraEvent{Extra{Runs: 2, Kind: Wide}},
		Runs{N: 4},
		WicketEvent{Wicket{HowOut: Caught, Bowler: intPtr(10), Detail: CaughtBy{Fielder: 5}}},
		SelectOnStrike{Index: 2},
		ExtraEvent{Extra{Runs: 1, Kind: Bye}},
		Runs{N: 0},
		Runs{N: 6},
		SelectBowler{Index: 8},
		StartOver{},
		ExtraEvent{Extra{Runs: 1, Kind: NoBall}},
		WicketEvent{Wicket{HowOut: RunOut, Bowler: intPtr(8), Detail: RunOutAt{Batter: OffStrike, Fielder: intPtr(1)}}},
	)
	return s
}

func TestReplay_Equivalence(t *testing.T) {
	s := playedMatch(t)

	r, err := Replay(s.Events())
	require.NoError(t, err)
	assert.Equal(t, s, r)
	assert.Equal(t, s.Log(), r.Log(), "derived entries are regenerated")
}

func TestReplay_Prefixes(t *testing.T) {
	s := playedMatch(t)
	events := s.Events()

	live := New()
	for i, ev := range events {
		applyAll(t, live, ev)
		r, err := Replay(events[:i+1])
		require.NoError(t, err)
		require.Equal(t, live, r, "prefix %d", i)
	}
}

func TestReplay_ReportsFailingEvent(t *testing.T) {
	_, err := Replay([]Event{Runs{N: 1}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "replay event 0")
	assert.True(t, IsPrecondition(err))
}

func TestState_Undo(t *testing.T) {
	s := newInnings(t)
	applyAll(t, s, Runs{N: 4}, Runs{N: 1})

	undone, err := s.Undo()
	require.NoError(t, err)
	assert.Equal(t, s.Len()-1, undone.Len())
	assert.Equal(t, 4, undone.BattingTeam().Runs)
	assert.Equal(t, 0, undone.OnStrikeIndex())
	assert.Equal(t, 5, s.BattingTeam().Runs, "original state is untouched")
}

func TestState_Without(t *testing.T) {
	s := newInnings(t)
	applyAll(t, s, Runs{N: 1}, Runs{N: 2})

	edited, err := s.Without(s.Len() - 2)
	require.NoError(t, err)
	assert.Equal(t, 2, edited.BattingTeam().Runs)
	assert.Equal(t, 0, edited.OnStrikeIndex())

	bowlerSelection := s.Len() - 3
	_, err = s.Without(bowlerSelection)
	assert.Error(t, err, "runs without a bowler no longer apply")

	_, err = s.Without(s.Len())
	assert.True(t, IsLookup(err))
}

func TestState_EventsExcludeDerived(t *testing.T) {
	s := newInnings(t)
	for i := 0; i < BallsPerOver; i++ {
		applyAll(t, s, Runs{N: 0})
	}
	assert.Len(t, s.Events(), s.Len())
	assert.Len(t, s.Log(), s.Len()+1)
}

func TestKind_Classification(t *testing.T) {
	for _, k := range []Kind{KindRuns, KindExtra, KindWicket} {
		assert.True(t, k.IsBall(), k.Name())
		assert.False(t, k.IsSetup(), k.Name())
	}
	for _, k := range []Kind{KindAddPlayer, KindSubmitTeam} {
		assert.True(t, k.IsSetup(), k.Name())
		assert.False(t, k.IsBall(), k.Name())
	}
	for _, k := range []Kind{KindStartOver, KindEndOver, KindStartInnings, KindEndInnings, KindSelectBowler} {
		assert.False(t, k.IsBall() || k.IsSetup(), k.Name())
	}
}
