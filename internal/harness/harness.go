package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/scricket/internal/engine"
	"github.com/roach88/scricket/internal/match"
	"github.com/roach88/scricket/internal/scorecard"
	"github.com/roach88/scricket/internal/store"
	"github.com/roach88/scricket/internal/teamsheet"
	"github.com/roach88/scricket/internal/testutil"
)

// Harness runs one scenario against a session in an in-memory store.
type Harness struct {
	engine  *engine.Engine
	session *engine.Session
	clock   *testutil.StepClock
	logger  *slog.Logger
}

// Run executes a scenario and returns the result. An error means the
// scenario could not be run at all; step and assertion failures are
// reported in the result.
func Run(scenario *Scenario) (*Result, error) {
	result, _, err := run(scenario)
	return result, err
}

func run(scenario *Scenario) (*Result, []scorecard.Line, error) {
	ctx := context.Background()

	st, err := store.Open(":memory:")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	eng := engine.New(st,
		engine.WithLogger(logger),
		engine.WithIDGenerator(testutil.NewFixedMatchID(scenario.MatchID)),
	)

	h := &Harness{
		engine: eng,
		clock:  testutil.NewStepClock(),
		logger: logger,
	}

	if err := h.enterTeams(ctx, scenario); err != nil {
		return nil, nil, err
	}

	result := NewResult()
	h.executeSteps(ctx, scenario.Events, result)

	state := h.session.State()
	result.Card = scorecard.Build(state)

	actx := &AssertionContext{
		Ctx:     ctx,
		Session: h.session,
		Engine:  eng,
		State:   state,
	}
	for _, msg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(msg)
	}

	digest, err := h.session.Verify(ctx)
	if err != nil {
		result.AddError(fmt.Sprintf("verify: %v", err))
	}
	result.Digest = digest

	return result, scorecard.History(state), nil
}

// enterTeams creates the match and submits both team sheets.
func (h *Harness) enterTeams(ctx context.Context, scenario *Scenario) error {
	sheets := make([]teamsheet.Sheet, 0, len(scenario.Teams))
	for _, path := range scenario.Teams {
		sheet, err := teamsheet.ParseFile(path)
		if err != nil {
			return fmt.Errorf("failed to load team sheet: %w", err)
		}
		sheets = append(sheets, sheet)
	}
	ms := teamsheet.MatchSheet{Name: scenario.Name, Teams: sheets}

	sess, err := h.engine.NewMatch(ctx, scenario.Name)
	if err != nil {
		return fmt.Errorf("failed to create match: %w", err)
	}
	if _, err := sess.SubmitAll(ctx, ms.Events()); err != nil {
		return fmt.Errorf("failed to enter teams: %w", err)
	}
	h.session = sess
	return nil
}

// executeSteps submits each step. Steps after the first unexpected outcome
// are skipped, since the match no longer follows the script.
func (h *Harness) executeSteps(ctx context.Context, steps []Step, result *Result) {
	for i, step := range steps {
		n := h.clock.Next()
		ev, err := step.Event()
		if err != nil {
			result.AddError(fmt.Sprintf("step %d: %v", n, err))
			return
		}

		hint, err := h.session.Submit(ctx, ev)
		trace := TraceEvent{Step: n, Type: ev.Kind().Name()}

		switch {
		case err == nil && step.Reject != "":
			trace.Seq = h.session.Seq()
			trace.Hint = hint.String()
			result.Trace = append(result.Trace, trace)
			result.AddError(fmt.Sprintf("step %d (%s): accepted, expected %s rejection", n, trace.Type, step.Reject))
			return
		case err == nil:
			trace.Seq = h.session.Seq()
			trace.Hint = hint.String()
			result.Trace = append(result.Trace, trace)
		case !engine.IsRejected(err):
			result.AddError(fmt.Sprintf("step %d (%s): %v", n, trace.Type, err))
			return
		case !rejectionMatches(step.Reject, err):
			trace.Rejected = rejectionClass(err)
			result.Trace = append(result.Trace, trace)
			result.AddError(fmt.Sprintf("step %d (%s): %v", n, trace.Type, err))
			return
		default:
			trace.Rejected = rejectionClass(err)
			result.Trace = append(result.Trace, trace)
		}

		h.logger.Debug("step completed", "step", n, "index", i, "type", trace.Type, "hint", trace.Hint)
	}
}

func rejectionClass(err error) string {
	switch {
	case match.IsPrecondition(err):
		return RejectPrecondition
	case match.IsLookup(err):
		return RejectLookup
	default:
		return RejectAny
	}
}

// rejectionMatches reports whether err is the rejection the step declared.
// An undeclared rejection never matches.
func rejectionMatches(want string, err error) bool {
	switch want {
	case "":
		return false
	case RejectAny:
		return true
	default:
		return rejectionClass(err) == want
	}
}
