package scorecard

import (
	"fmt"

	"github.com/roach88/scricket/internal/match"
)

// Result summarises the match once the second innings has started:
// "Tigers need 12 runs to win", "Tigers won by 3 wickets",
// "Lions won by 12 runs" or "Match tied". It is empty before then.
func Result(s *match.State) string {
	order := inningsOrder(s)
	if len(order) < 2 {
		return ""
	}
	first, second := s.Team(order[0]), s.Team(order[1])
	target := first.Runs + 1

	switch {
	case second.Runs >= target:
		return fmt.Sprintf("%s won by %s", second.Name, plural(second.WicketsInHand(), "wicket"))
	case !inningsClosed(s, order[1]):
		return fmt.Sprintf("%s need %s to win", second.Name, plural(target-second.Runs, "run"))
	case second.Runs == first.Runs:
		return "Match tied"
	default:
		return fmt.Sprintf("%s won by %s", first.Name, plural(first.Runs-second.Runs, "run"))
	}
}

// inningsClosed reports whether side's first innings has ended.
func inningsClosed(s *match.State, side match.Side) bool {
	started := false
	for _, e := range s.Log() {
		switch ev := e.Event.(type) {
		case match.StartInnings:
			if ev.Side == side {
				started = true
			}
		case match.EndInnings:
			if started {
				return true
			}
		}
	}
	return false
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
