package match

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// enterTeams adds n players to each side and submits both teams.
func enterTeams(t *testing.T, s *State, n int) {
	t.Helper()
	for _, name := range []string{"Lions", "Tigers"} {
		for i := 0; i < n; i++ {
			_, err := s.Apply(AddPlayer{Player: NewPlayer(name, fmt.Sprintf("P%d", i), i)})
			require.NoError(t, err)
		}
		_, err := s.Apply(SubmitTeam{Name: name})
		require.NoError(t, err)
	}
}

// newInnings returns a match with A batting, batters 0 and 1 in and
// bowler 10 on.
func newInnings(t *testing.T) *State {
	t.Helper()
	s := New()
	enterTeams(t, s, 11)
	for _, ev := range []Event{
		StartInnings{Side: SideA},
		SelectOnStrike{Index: 0},
		SelectOffStrike{Index: 1},
		SelectBowler{Index: 10},
	} {
		_, err := s.Apply(ev)
		require.NoError(t, err)
	}
	return s
}

func applyAll(t *testing.T, s *State, events ...Event) Hint {
	t.Helper()
	var h Hint
	for _, ev := range events {
		var err error
		h, err = s.Apply(ev)
		require.NoError(t, err, "applying %s", ev.Kind())
	}
	return h
}
