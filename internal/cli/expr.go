package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/scricket/internal/match"
)

// ParseEvent turns a scoring expression into an event. Wickets and
// manual over ends need the live match to fill in the bowler and the
// running total.
//
//	4 | runs:4                      runs off the bat
//	extra:wide | extra:bye:2        extra, runs default to the kind's minimum
//	wicket:bowled                   dismissal credited to the current bowler
//	wicket:caught:3                 caught by fielder 3
//	wicket:run_out:off_strike[:3]   run out at an end, fielder optional
//	on:4 | off:4 | bowler:9         selections by roster index
//	start-innings:B | end-innings | start-over | end-over
func ParseEvent(s *match.State, expr string) (match.Event, error) {
	parts := strings.Split(strings.TrimSpace(expr), ":")
	head := parts[0]
	args := parts[1:]

	if n, err := strconv.Atoi(head); err == nil && len(args) == 0 {
		return match.Runs{N: n}, nil
	}

	switch head {
	case "runs":
		n, err := intArg(expr, args)
		if err != nil {
			return nil, err
		}
		return match.Runs{N: n}, nil
	case "extra":
		return parseExtra(expr, args)
	case "wicket":
		return parseWicket(s, expr, args)
	case "on", "off", "bowler":
		n, err := intArg(expr, args)
		if err != nil {
			return nil, err
		}
		switch head {
		case "on":
			return match.SelectOnStrike{Index: n}, nil
		case "off":
			return match.SelectOffStrike{Index: n}, nil
		default:
			return match.SelectBowler{Index: n}, nil
		}
	case "start-innings":
		if len(args) != 1 {
			return nil, fmt.Errorf("%q: want start-innings:A or start-innings:B", expr)
		}
		side, err := match.ParseSide(args[0])
		if err != nil {
			return nil, fmt.Errorf("%q: %w", expr, err)
		}
		return match.StartInnings{Side: side}, nil
	case "end-innings", "start-over", "end-over":
		if len(args) != 0 {
			return nil, fmt.Errorf("%q takes no arguments", head)
		}
		return control(s, head), nil
	default:
		return nil, fmt.Errorf("unknown event %q", expr)
	}
}

// control builds an argument-free control event. A manual over end closes
// the over at the running total.
func control(s *match.State, head string) match.Event {
	switch head {
	case "end-innings":
		return match.EndInnings{}
	case "start-over":
		return match.StartOver{}
	}
	t := s.BattingTeam()
	return match.EndOver{Summary: match.Summary{
		Runs:    t.Runs,
		Wickets: t.Wickets,
		Overs:   match.Overs{Overs: t.Overs.Overs + 1},
	}}
}

func parseExtra(expr string, args []string) (match.Event, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, fmt.Errorf("%q: want extra:<kind>[:runs]", expr)
	}
	kind, err := match.ParseExtraKind(args[0])
	if err != nil {
		return nil, fmt.Errorf("%q: %w", expr, err)
	}
	runs := kind.MinimumRuns()
	if len(args) == 2 {
		n, err := intArg(expr, args[1:])
		if err != nil {
			return nil, err
		}
		runs = n
	}
	return match.ExtraEvent{Extra: match.Extra{Kind: kind, Runs: runs}}, nil
}

func parseWicket(s *match.State, expr string, args []string) (match.Event, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%q: want wicket:<how_out>", expr)
	}
	howOut, err := match.ParseHowOut(args[0])
	if err != nil {
		return nil, fmt.Errorf("%q: %w", expr, err)
	}
	r := match.NewWicketResolver(howOut)
	rest := args[1:]

	if howOut == match.RunOut && len(rest) > 0 {
		end, err := match.ParseEnd(rest[0])
		if err != nil {
			return nil, fmt.Errorf("%q: %w", expr, err)
		}
		r.WithBatter(end)
		rest = rest[1:]
	}
	if len(rest) > 0 {
		if !r.AcceptsFielder() {
			return nil, fmt.Errorf("%q: %s takes no fielder", expr, howOut)
		}
		n, err := intArg(expr, rest)
		if err != nil {
			return nil, err
		}
		r.WithFielder(n)
	}

	w, err := s.ResolveWicket(r)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", expr, err)
	}
	return match.WicketEvent{Wicket: w}, nil
}

// intArg parses the single integer argument of expr.
func intArg(expr string, args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%q: want exactly one number", expr)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("%q: %q is not a number", expr, args[0])
	}
	return n, nil
}
