package testutil

import (
	"fmt"

	"github.com/roach88/scricket/internal/match"
)

// TeamEntry returns the events that enter a team of n players named
// "<name> P0" to "<name> P<n-1>".
func TeamEntry(name string, n int) []match.Event {
	events := make([]match.Event, 0, n+1)
	for i := 0; i < n; i++ {
		events = append(events, match.AddPlayer{Player: match.NewPlayer(name, fmt.Sprintf("P%d", i), i)})
	}
	return append(events, match.SubmitTeam{Name: name})
}

// Opening returns both team entries followed by the start of the first
// innings: side A batting with players 0 and 1 in, and the last player of
// side B bowling.
func Opening(a, b string, n int) []match.Event {
	events := append(TeamEntry(a, n), TeamEntry(b, n)...)
	return append(events,
		match.StartInnings{Side: match.SideA},
		match.SelectOnStrike{Index: 0},
		match.SelectOffStrike{Index: 1},
		match.SelectBowler{Index: n - 1},
	)
}
