package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/scricket/internal/engine"
	"github.com/roach88/scricket/internal/match"
)

// Submitted is one accepted scoring expression.
type Submitted struct {
	Expr string `json:"expr"`
	Kind string `json:"kind"`
	Seq  int64  `json:"seq"`
	Hint string `json:"hint"`
}

// Status is where a match stands after a command changed it.
type Status struct {
	Match     string      `json:"match"`
	Submitted []Submitted `json:"submitted,omitempty"`
	Events    int         `json:"events"`
	Batting   string      `json:"batting,omitempty"`
	Score     string      `json:"score,omitempty"`
	Pending   string      `json:"pending"`
	Suggested *int        `json:"suggested_bowler,omitempty"`
	Options   []Choice    `json:"options,omitempty"`
}

// Choice is a player who may fill the pending selection.
type Choice struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

// NewScoreCommand creates the score command.
func NewScoreCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "score <match-id> <event>...",
		Short: "Submit scoring events",
		Long: `Submit one or more scoring events in order. Submission stops at the
first rejected event; earlier events stay recorded.

Events:
  4 | runs:4                      runs off the bat
  extra:wide | extra:bye:2        extras (runs default to the kind's minimum)
  wicket:bowled | wicket:lbw      dismissal credited to the current bowler
  wicket:caught:<fielder>         caught, fielder by roster index
  wicket:run_out:<end>[:fielder]  run out at on_strike or off_strike
  on:<i> | off:<i> | bowler:<i>   select batters or bowler by roster index
  start-innings:<A|B> | end-innings | start-over | end-over

Exit codes:
  0 - All events accepted
  1 - An event was rejected by the rules
  2 - Command error (bad expression, match not found, etc.)

Examples:
  scricket score $MATCH start-innings:A on:0 off:1 bowler:10
  scricket score $MATCH 1 4 extra:wide wicket:caught:3`,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(rootOpts, args[0], args[1:], cmd)
		},
	}
}

func runScore(opts *RootOptions, id string, exprs []string, cmd *cobra.Command) error {
	sess, closeFn, err := opts.openMatch(cmd, id)
	if err != nil {
		return err
	}
	defer closeFn()

	f := opts.formatter(cmd)
	var done []Submitted
	for _, expr := range exprs {
		ev, err := ParseEvent(sess.State(), expr)
		if err != nil {
			return f.Fail(ExitCommandError, CodeInvalidArgs, "invalid event", err)
		}
		hint, err := sess.Submit(cmd.Context(), ev)
		if err != nil {
			if engine.IsRejected(err) {
				return f.Fail(ExitFailure, CodeRejected,
					fmt.Sprintf("event %q rejected after %d accepted", expr, len(done)), err)
			}
			return opts.sessionError(cmd, err)
		}
		done = append(done, Submitted{Expr: expr, Kind: ev.Kind().Name(), Seq: sess.Seq(), Hint: hint.String()})
	}

	status := statusOf(sess)
	status.Submitted = done
	return f.Success(status, func(w io.Writer) error {
		for _, s := range done {
			fmt.Fprintf(w, "✓ %-14s #%d", s.Expr, s.Seq)
			if s.Hint != match.HintNone.String() {
				fmt.Fprintf(w, "  (%s)", s.Hint)
			}
			fmt.Fprintln(w)
		}
		return writeStatus(w, status)
	})
}

func statusOf(sess *engine.Session) Status {
	st := sess.State()
	status := Status{
		Match:   sess.ID(),
		Events:  st.Len(),
		Pending: st.PendingSelection().String(),
	}
	if st.Innings() > 0 {
		t := st.BattingTeam()
		status.Batting = t.Name
		status.Score = fmt.Sprintf("%d/%d (%s)", t.Wickets, t.Runs, t.Overs)
	}
	switch st.PendingSelection() {
	case match.HintSelectBatter:
		t := st.BattingTeam()
		status.Options = choices(t, t.SelectableBatters(st.OnStrikeIndex(), st.OffStrikeIndex()))
	case match.HintSelectBowler:
		if i, ok := st.SuggestedBowler(); ok {
			status.Suggested = &i
		}
		t := st.BowlingTeam()
		var idx []int
		for _, i := range append(t.BowledInOrder(), t.NotBowled()...) {
			if i != st.LastBowler() {
				idx = append(idx, i)
			}
		}
		status.Options = choices(t, idx)
	}
	return status
}

// choices names the players at idx.
func choices(t match.Team, idx []int) []Choice {
	out := make([]Choice, 0, len(idx))
	for _, i := range idx {
		if p, ok := t.Player(i); ok {
			out = append(out, Choice{Index: i, Name: p.Name()})
		}
	}
	return out
}

func writeStatus(w io.Writer, s Status) error {
	if s.Score != "" {
		fmt.Fprintf(w, "%s %s\n", s.Batting, s.Score)
	}
	return writePending(w, s)
}

// writePending writes the selection the match is waiting for, if any.
func writePending(w io.Writer, s Status) error {
	switch {
	case s.Suggested != nil:
		fmt.Fprintf(w, "Waiting for: %s (suggested: %d)\n", s.Pending, *s.Suggested)
	case s.Pending != match.HintNone.String():
		fmt.Fprintf(w, "Waiting for: %s\n", s.Pending)
	}
	for _, c := range s.Options {
		fmt.Fprintf(w, "  %2d  %s\n", c.Index, c.Name)
	}
	return nil
}

// NewUndoCommand creates the undo command.
func NewUndoCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "undo <match-id>",
		Short:         "Remove the last submitted event",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(rootOpts, args[0], cmd, func(sess *engine.Session) error {
				return sess.Undo(cmd.Context())
			})
		},
	}
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <match-id> <index>",
		Short: "Remove a submitted event by its index",
		Long: `Remove the submitted event at a 0-based index (see "show --history").
The remaining events are replayed; the deletion is refused if they no
longer form a legal match.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[1])
			if err != nil || index < 0 {
				return rootOpts.formatter(cmd).Fail(ExitCommandError, CodeInvalidArgs,
					fmt.Sprintf("invalid index %q", args[1]), nil)
			}
			return runEdit(rootOpts, args[0], cmd, func(sess *engine.Session) error {
				return sess.Delete(cmd.Context(), index)
			})
		},
	}
}

func runEdit(opts *RootOptions, id string, cmd *cobra.Command, edit func(*engine.Session) error) error {
	sess, closeFn, err := opts.openMatch(cmd, id)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := edit(sess); err != nil {
		return opts.sessionError(cmd, err)
	}
	status := statusOf(sess)
	return opts.formatter(cmd).Success(status, func(w io.Writer) error {
		fmt.Fprintf(w, "✓ %d events remain\n", status.Events)
		return writeStatus(w, status)
	})
}
