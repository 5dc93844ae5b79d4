package harness

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/roach88/scricket/internal/codec"
	"github.com/roach88/scricket/internal/engine"
	"github.com/roach88/scricket/internal/match"
)

// AssertionContext is what assertions may inspect.
type AssertionContext struct {
	Ctx     context.Context
	Session *engine.Session
	Engine  *engine.Engine
	State   *match.State
}

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
	Trace    []TraceEvent
}

func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nSteps:\n")
		for _, ev := range e.Trace {
			outcome := "hint " + ev.Hint
			if ev.Rejected != "" {
				outcome = "rejected (" + ev.Rejected + ")"
			}
			fmt.Fprintf(&buf, "  [%d] %s %s\n", ev.Step, ev.Type, outcome)
		}
	}
	return buf.String()
}

// mismatch collects field comparisons for one assertion.
type mismatch struct {
	expected []string
	actual   []string
}

func (m *mismatch) checkInt(field string, want *int, got int) {
	if want != nil && *want != got {
		m.expected = append(m.expected, fmt.Sprintf("%s=%d", field, *want))
		m.actual = append(m.actual, fmt.Sprintf("%s=%d", field, got))
	}
}

func (m *mismatch) checkString(field, want, got string) {
	if want != "" && want != got {
		m.expected = append(m.expected, fmt.Sprintf("%s=%s", field, want))
		m.actual = append(m.actual, fmt.Sprintf("%s=%s", field, got))
	}
}

func (m *mismatch) err(typ, subject string, trace []TraceEvent) error {
	if len(m.expected) == 0 {
		return nil
	}
	return &AssertionError{
		Type:     typ,
		Expected: subject + " " + strings.Join(m.expected, ", "),
		Actual:   subject + " " + strings.Join(m.actual, ", "),
		Trace:    trace,
	}
}

func assertTeamScore(s *match.State, a Assertion, trace []TraceEvent) error {
	side, err := match.ParseSide(a.Side)
	if err != nil {
		return fmt.Errorf("team_score: %w", err)
	}
	team := s.Team(side)

	var m mismatch
	m.checkInt("runs", a.Runs, team.Runs)
	m.checkInt("wickets", a.Wickets, team.Wickets)
	m.checkString("overs", a.Overs, team.Overs.String())
	m.checkInt("extras", a.Extras, team.Extras.Total())
	return m.err(AssertTeamScore, "side "+side.String(), trace)
}

func assertPlayer(s *match.State, a Assertion, trace []TraceEvent) error {
	side, err := match.ParseSide(a.Side)
	if err != nil {
		return fmt.Errorf("player: %w", err)
	}
	p, ok := s.Team(side).Player(*a.Index)
	if !ok {
		return &AssertionError{
			Type:     AssertPlayer,
			Expected: fmt.Sprintf("player %d on side %s", *a.Index, side),
			Actual:   fmt.Sprintf("roster has %d players", s.Team(side).Len()),
			Trace:    trace,
		}
	}

	var m mismatch
	m.checkInt("runs", a.Runs, p.RunsScored)
	m.checkInt("balls", a.Balls, p.BallsFaced)
	m.checkString("how_out", a.HowOut, p.HowOut.Name())
	m.checkInt("runs_conceded", a.RunsConceded, p.RunsConceded)
	m.checkInt("wickets_taken", a.WicketsTaken, p.WicketsTaken)
	m.checkString("overs_bowled", a.OversBowled, p.OversBowled.String())
	return m.err(AssertPlayer, p.Name(), trace)
}

func assertHint(result *Result, a Assertion) error {
	got, ok := result.hintAt(*a.Step)
	if !ok {
		return &AssertionError{
			Type:     AssertHint,
			Expected: fmt.Sprintf("step %d accepted with hint %s", *a.Step, a.Hint),
			Actual:   fmt.Sprintf("step %d was not accepted", *a.Step),
			Trace:    result.Trace,
		}
	}
	if got != a.Hint {
		return &AssertionError{
			Type:     AssertHint,
			Expected: fmt.Sprintf("step %d hint %s", *a.Step, a.Hint),
			Actual:   fmt.Sprintf("step %d hint %s", *a.Step, got),
			Trace:    result.Trace,
		}
	}
	return nil
}

func assertPending(s *match.State, a Assertion, trace []TraceEvent) error {
	if got := s.PendingSelection().String(); got != a.Hint {
		return &AssertionError{
			Type:     AssertPending,
			Expected: "pending " + a.Hint,
			Actual:   "pending " + got,
			Trace:    trace,
		}
	}
	return nil
}

func assertResult(result *Result, a Assertion) error {
	if result.Card.Result != *a.Text {
		return &AssertionError{
			Type:     AssertResult,
			Expected: fmt.Sprintf("%q", *a.Text),
			Actual:   fmt.Sprintf("%q", result.Card.Result),
			Trace:    result.Trace,
		}
	}
	return nil
}

// assertReplayEquivalent reopens the match from the store and round-trips
// the log through every codec format. Each rebuilt state must equal the
// live one.
func assertReplayEquivalent(actx *AssertionContext, trace []TraceEvent) error {
	fail := func(actual string) error {
		return &AssertionError{
			Type:     AssertReplayEquivalent,
			Expected: "rebuilt state equal to live state",
			Actual:   actual,
			Trace:    trace,
		}
	}

	reopened, err := actx.Engine.Open(actx.Ctx, actx.Session.ID())
	if err != nil {
		return fail(fmt.Sprintf("reopen failed: %v", err))
	}
	if !reflect.DeepEqual(reopened.State(), actx.State) {
		return fail("state reopened from store differs")
	}

	events := actx.State.Events()
	want, err := codec.Digest(events)
	if err != nil {
		return fail(err.Error())
	}
	for _, f := range []codec.Format{codec.Binary, codec.Text, codec.JSON} {
		data, err := codec.Serialize(events, f)
		if err != nil {
			return fail(fmt.Sprintf("%s: serialize: %v", f, err))
		}
		decoded, err := codec.Deserialize(data, f)
		if err != nil {
			return fail(fmt.Sprintf("%s: deserialize: %v", f, err))
		}
		if got, err := codec.Digest(decoded); err != nil || got != want {
			return fail(fmt.Sprintf("%s: digest %s, want %s", f, got, want))
		}
		rebuilt, err := match.Replay(decoded)
		if err != nil {
			return fail(fmt.Sprintf("%s: replay: %v", f, err))
		}
		if !reflect.DeepEqual(rebuilt, actx.State) {
			return fail(fmt.Sprintf("%s: replayed state differs", f))
		}
	}
	return nil
}

// EvaluateAssertions checks each assertion and returns the failure
// messages, in order.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errs []string
	for i, a := range assertions {
		var err error
		switch a.Type {
		case AssertTeamScore:
			err = assertTeamScore(actx.State, a, result.Trace)
		case AssertPlayer:
			err = assertPlayer(actx.State, a, result.Trace)
		case AssertHint:
			err = assertHint(result, a)
		case AssertPending:
			err = assertPending(actx.State, a, result.Trace)
		case AssertResult:
			err = assertResult(result, a)
		case AssertReplayEquivalent:
			err = assertReplayEquivalent(actx, result.Trace)
		default:
			err = fmt.Errorf("unknown assertion type %q", a.Type)
		}
		if err != nil {
			errs = append(errs, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return errs
}
