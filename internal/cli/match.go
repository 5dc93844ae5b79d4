package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/scricket/internal/teamsheet"
)

// NewOptions holds flags for the new command.
type NewOptions struct {
	*RootOptions
	Teams    []string // one team sheet file per team, batting first
	TeamsDir string   // CUE package holding a whole match sheet
}

// MatchInfo describes a stored match in command output.
type MatchInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Events int    `json:"events"`
}

// NewNewCommand creates the new command.
func NewNewCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &NewOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "new [name]",
		Short: "Create a match from team sheets",
		Long: `Create a match and enter both teams from CUE team sheets.

Either pass two sheet files with --team (the first team is side A) or a
directory holding a CUE package with a whole match sheet via --teams.

Examples:
  scricket new "Final" --team lions.cue --team tigers.cue
  scricket new --teams ./final`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(opts, args, cmd)
		},
	}

	cmd.Flags().StringArrayVar(&opts.Teams, "team", nil, "team sheet file (repeat for both teams)")
	cmd.Flags().StringVar(&opts.TeamsDir, "teams", "", "directory with a CUE match sheet")

	return cmd
}

func runNew(opts *NewOptions, args []string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	ms, err := loadMatchSheet(opts)
	if err != nil {
		var se *teamsheet.SheetError
		if errors.As(err, &se) {
			return f.Fail(ExitCommandError, CodeTeamSheet, "invalid team sheet", err)
		}
		return f.Fail(ExitCommandError, CodeInvalidArgs, err.Error(), nil)
	}
	if len(args) == 1 {
		ms.Name = args[0]
	}

	eng, closeFn, err := opts.openEngine(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	sess, err := eng.Import(cmd.Context(), ms.Name, ms.Events())
	if err != nil {
		return opts.sessionError(cmd, err)
	}

	info := MatchInfo{ID: sess.ID(), Name: sess.Name(), Events: len(sess.Events())}
	return f.Success(info, func(w io.Writer) error {
		fmt.Fprintf(w, "✓ Created match %s\n", info.ID)
		fmt.Fprintf(w, "  %s: %s v %s\n", displayName(info.Name), ms.Teams[0].Name, ms.Teams[1].Name)
		return nil
	})
}

// loadMatchSheet reads the sheets named by the flags. Errors from the
// sheets themselves are *teamsheet.SheetError.
func loadMatchSheet(opts *NewOptions) (teamsheet.MatchSheet, error) {
	switch {
	case opts.TeamsDir != "" && len(opts.Teams) > 0:
		return teamsheet.MatchSheet{}, errors.New("use either --team or --teams, not both")
	case opts.TeamsDir != "":
		return teamsheet.LoadDir(opts.TeamsDir)
	case len(opts.Teams) != 2:
		return teamsheet.MatchSheet{}, fmt.Errorf("need two --team sheets, got %d", len(opts.Teams))
	}

	ms := teamsheet.MatchSheet{}
	for _, path := range opts.Teams {
		sheet, err := teamsheet.ParseFile(path)
		if err != nil {
			return teamsheet.MatchSheet{}, err
		}
		ms.Teams = append(ms.Teams, sheet)
	}
	ms.Name = ms.Teams[0].Name + " v " + ms.Teams[1].Name
	return ms, nil
}

func displayName(name string) string {
	if name == "" {
		return "(unnamed)"
	}
	return name
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List stored matches",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, cmd)
		},
	}
}

func runList(opts *RootOptions, cmd *cobra.Command) error {
	eng, closeFn, err := opts.openEngine(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	matches, err := eng.List(cmd.Context())
	if err != nil {
		return opts.sessionError(cmd, err)
	}

	infos := make([]MatchInfo, len(matches))
	for i, m := range matches {
		infos[i] = MatchInfo{ID: m.ID, Name: m.Name, Events: m.Events}
	}
	return opts.formatter(cmd).Success(infos, func(w io.Writer) error {
		if len(infos) == 0 {
			fmt.Fprintln(w, "No matches.")
			return nil
		}
		for _, m := range infos {
			fmt.Fprintf(w, "%s  %-30s %5d events\n", m.ID, displayName(m.Name), m.Events)
		}
		return nil
	})
}

// NewRemoveCommand creates the remove command.
func NewRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "remove <match-id>",
		Short:         "Delete a match and its event log",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(rootOpts, args[0], cmd)
		},
	}
}

func runRemove(opts *RootOptions, id string, cmd *cobra.Command) error {
	eng, closeFn, err := opts.openEngine(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := eng.Remove(cmd.Context(), id); err != nil {
		return opts.sessionError(cmd, err)
	}
	return opts.formatter(cmd).Success(MatchInfo{ID: id}, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "✓ Removed match %s\n", id)
		return err
	})
}
