package match

import "fmt"

// Describe renders the one-line history text for a scoring event. Events
// that are not shown in the history return false.
func Describe(ev Event) (string, bool) {
	switch e := ev.(type) {
	case Runs:
		if e.N == 1 {
			return "1 run", true
		}
		return fmt.Sprintf("%d runs", e.N), true
	case WicketEvent:
		return "wicket: " + e.HowOut.String(), true
	case ExtraEvent:
		return "extra: " + e.Extra.Kind.String(), true
	case EndOver:
		return fmt.Sprintf("End of over: %d/%d (%s)", e.Summary.Wickets, e.Summary.Runs, e.Summary.Overs), true
	default:
		return "", false
	}
}

// Matchup renders the entry's context as "Bowler to Batter". Missing
// players render as "?".
func (s *State) Matchup(e Entry) string {
	return s.refName(e.Context.Bowler) + " to " + s.refName(e.Context.Batter)
}

func (s *State) refName(r PlayerRef) string {
	if !r.Side.Valid() {
		return "?"
	}
	p, ok := s.teams[r.Side].Player(r.Index)
	if !ok {
		return "?"
	}
	return p.Name()
}

// BattingLine renders "Name: runs (balls)".
func (p Player) BattingLine() string {
	return fmt.Sprintf("%s: %d (%d)", p.Name(), p.RunsScored, p.BallsFaced)
}

// BowlingLine renders "Name: wickets/runs (overs)".
func (p Player) BowlingLine() string {
	return fmt.Sprintf("%s: %d/%d (%s)", p.Name(), p.WicketsTaken, p.RunsConceded, p.OversBowled)
}
