package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/scricket/internal/engine"
	"github.com/roach88/scricket/internal/store"
)

// ReplayMatchResult holds the replay result for a single match.
type ReplayMatchResult struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Events        int            `json:"events"`
	Kinds         map[string]int `json:"kinds,omitempty"`
	Digest        string         `json:"digest,omitempty"`
	Deterministic bool           `json:"deterministic"`
	Error         string         `json:"error,omitempty"`
}

// ReplayResult holds the overall replay result.
type ReplayResult struct {
	Matches          []ReplayMatchResult `json:"matches"`
	TotalMatches     int                 `json:"total_matches"`
	AllDeterministic bool                `json:"all_deterministic"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay [match-id]",
		Short: "Replay event logs and verify determinism",
		Long: `Rebuild matches from their stored event logs and check that each
replay reproduces the live match exactly. Reports the log digest of every
match; identical logs always have identical digests.

Without a match id every stored match is replayed.

Exit codes:
  0 - All matches replay deterministically
  1 - A log could not be replayed or diverged
  2 - Command error (database not found, match not found, etc.)

Examples:
  scricket replay
  scricket replay $MATCH --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(rootOpts, args, cmd)
		},
	}
	return cmd
}

func runReplay(opts *RootOptions, args []string, cmd *cobra.Command) error {
	ctx := cmd.Context()

	eng, closeFn, err := opts.openEngine(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	var ids []string
	if len(args) == 1 {
		ids = args
	} else {
		matches, err := eng.List(ctx)
		if err != nil {
			return opts.sessionError(cmd, err)
		}
		for _, m := range matches {
			ids = append(ids, m.ID)
		}
	}

	result := ReplayResult{
		Matches:          make([]ReplayMatchResult, 0, len(ids)),
		TotalMatches:     len(ids),
		AllDeterministic: true,
	}
	for _, id := range ids {
		r, err := replayMatch(ctx, eng, id)
		if err != nil {
			return opts.sessionError(cmd, err)
		}
		if !r.Deterministic {
			result.AllDeterministic = false
		}
		result.Matches = append(result.Matches, r)
	}

	if opts.Format == "json" {
		return outputReplayJSON(cmd, result)
	}
	return outputReplayText(cmd, result)
}

// replayMatch opens a match, which replays its log, and verifies the
// replay against a second read of the store.
func replayMatch(ctx context.Context, eng *engine.Engine, id string) (ReplayMatchResult, error) {
	r := ReplayMatchResult{ID: id}

	sess, err := eng.Open(ctx, id)
	if errors.Is(err, store.ErrMatchNotFound) {
		return r, err
	}
	if err != nil {
		r.Error = err.Error()
		return r, nil
	}
	r.Name = sess.Name()
	r.Events = len(sess.Events())

	digest, err := sess.Verify(ctx)
	if err != nil {
		r.Error = err.Error()
		return r, nil
	}
	r.Digest = digest
	r.Deterministic = true

	if r.Kinds, err = eng.KindCounts(ctx, id); err != nil {
		return r, err
	}
	return r, nil
}

// outputReplayJSON outputs the replay result as JSON.
func outputReplayJSON(cmd *cobra.Command, result ReplayResult) error {
	response := CLIResponse{Status: "ok", Data: result}
	if !result.AllDeterministic {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    CodeDeterminism,
			Message: "replay produced different results",
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}

	if !result.AllDeterministic {
		return NewExitError(ExitFailure, "determinism verification failed")
	}
	return nil
}

// outputReplayText outputs the replay result as human-readable text.
func outputReplayText(cmd *cobra.Command, result ReplayResult) error {
	w := cmd.OutOrStdout()

	if result.TotalMatches == 0 {
		fmt.Fprintln(w, "No matches found in database.")
		return nil
	}

	fmt.Fprintf(w, "Replayed %d match(es):\n\n", result.TotalMatches)
	for _, m := range result.Matches {
		if m.Deterministic {
			fmt.Fprintf(w, "✓ %s %s (%d events)\n", m.ID, displayName(m.Name), m.Events)
			fmt.Fprintf(w, "  digest: %s\n", m.Digest)
			continue
		}
		fmt.Fprintf(w, "✗ %s %s\n", m.ID, displayName(m.Name))
		fmt.Fprintf(w, "  %s\n", m.Error)
	}
	fmt.Fprintln(w)

	if !result.AllDeterministic {
		fmt.Fprintln(w, "✗ Determinism verification FAILED")
		return NewExitError(ExitFailure, "determinism verification failed")
	}
	fmt.Fprintln(w, "✓ All matches are deterministic")
	return nil
}
