package scorecard

import (
	"fmt"
	"strings"

	"github.com/roach88/scricket/internal/match"
)

// dismissal renders the scorecard dismissal column, e.g. "c Smith b Jones".
// Fielders and bowlers are looked up in the fielding team.
func dismissal(p match.Player, fielding match.Team) string {
	var bowler, fielder string
	if p.Dismissal != nil {
		bowler = name(fielding, p.Dismissal.Bowler)
		fielder = name(fielding, p.Dismissal.Fielder)
	}

	switch p.HowOut {
	case match.DidNotBat:
		return ""
	case match.NotOut:
		return "not out"
	case match.RetiredHurt, match.RetiredNotOut:
		return strings.ToLower(p.HowOut.String())
	case match.Bowled:
		return withBowler("b", bowler)
	case match.LBW:
		return withBowler("lbw b", bowler)
	case match.Stumped:
		return withBowler("st b", bowler)
	case match.HitWicket:
		return withBowler("hit wicket b", bowler)
	case match.Caught:
		switch {
		case fielder != "" && fielder == bowler:
			return withBowler("c & b", bowler)
		case fielder != "":
			return withBowler("c "+fielder+" b", bowler)
		default:
			return withBowler("c ? b", bowler)
		}
	case match.RunOut:
		if fielder != "" {
			return fmt.Sprintf("run out (%s)", fielder)
		}
		return "run out"
	default:
		return strings.ToLower(p.HowOut.String())
	}
}

func withBowler(prefix, bowler string) string {
	if bowler == "" {
		return prefix + " ?"
	}
	return prefix + " " + bowler
}

func name(t match.Team, idx *int) string {
	if idx == nil {
		return ""
	}
	p, ok := t.Player(*idx)
	if !ok {
		return "?"
	}
	return p.Name()
}
