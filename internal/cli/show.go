package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/scricket/internal/match"
	"github.com/roach88/scricket/internal/scorecard"
)

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	History bool
}

// ShowResult is the show command's JSON payload.
type ShowResult struct {
	Name    string           `json:"name"`
	Card    scorecard.Card   `json:"card"`
	History []scorecard.Line `json:"history,omitempty"`
	Status  Status           `json:"status"`
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show <match-id>",
		Short: "Print the scorecard",
		Long: `Print the scorecard of a match, rebuilt from its event log.

With --history the ball-by-ball history follows the card. Each row starts
with the index of the submitted event it belongs to; rows the rules
produced on their own (over and innings ends) are marked "+".`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.History, "history", false, "include the ball-by-ball history")

	return cmd
}

func runShow(opts *ShowOptions, id string, cmd *cobra.Command) error {
	sess, closeFn, err := opts.openMatch(cmd, id)
	if err != nil {
		return err
	}
	defer closeFn()

	st := sess.State()
	res := ShowResult{
		Name:   sess.Name(),
		Card:   scorecard.Build(st),
		Status: statusOf(sess),
	}
	if opts.History {
		res.History = scorecard.History(st)
	}

	return opts.formatter(cmd).Success(res, func(w io.Writer) error {
		fmt.Fprintf(w, "%s\n\n", displayName(res.Name))
		if err := res.Card.Render(w); err != nil {
			return err
		}
		if opts.History {
			fmt.Fprintln(w, "\nHistory:")
			if err := scorecard.RenderHistory(w, res.History); err != nil {
				return err
			}
		}
		if res.Status.Pending != match.HintNone.String() {
			fmt.Fprintln(w)
		}
		return writePending(w, res.Status)
	})
}
