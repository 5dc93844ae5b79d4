package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/scricket/internal/engine"
	"github.com/roach88/scricket/internal/store"
)

// DefaultDatabase is the store used when --db is not given.
const DefaultDatabase = "scricket.db"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	Database string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the scricket CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "scricket",
		Short: "scricket - ball-by-ball cricket scoring",
		Long: `Score cricket matches ball by ball. Every match is an append-only
event log in a SQLite database; scorecards, undo and exports are all
derived by replaying that log.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", DefaultDatabase, "path to SQLite database")

	cmd.AddCommand(NewNewCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewScoreCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewUndoCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewRemoveCommand(opts))
	cmd.AddCommand(NewReplayCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// formatter returns the output formatter for cmd.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{Format: o.Format, Writer: cmd.OutOrStdout()}
}

// logger writes engine logs to stderr: debug and up with --verbose,
// warnings otherwise.
func (o *RootOptions) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// openEngine opens the database and an engine over it. The caller must
// call the returned close function.
func (o *RootOptions) openEngine(cmd *cobra.Command) (*engine.Engine, func(), error) {
	st, err := store.Open(o.Database)
	if err != nil {
		return nil, nil, o.formatter(cmd).Fail(ExitCommandError, CodeStorage, "failed to open database", err)
	}
	logger := o.logger(cmd)
	logger.Debug("database opened", "path", o.Database)
	return engine.New(st, engine.WithLogger(logger)), func() { _ = st.Close() }, nil
}

// openMatch opens the engine and the match with the given id.
func (o *RootOptions) openMatch(cmd *cobra.Command, id string) (*engine.Session, func(), error) {
	eng, closeFn, err := o.openEngine(cmd)
	if err != nil {
		return nil, nil, err
	}
	sess, err := eng.Open(cmd.Context(), id)
	if err != nil {
		closeFn()
		return nil, nil, o.sessionError(cmd, err)
	}
	return sess, closeFn, nil
}

// sessionError reports an engine error with the matching code and exit
// status.
func (o *RootOptions) sessionError(cmd *cobra.Command, err error) error {
	f := o.formatter(cmd)
	switch {
	case errors.Is(err, store.ErrMatchNotFound):
		return f.Fail(ExitCommandError, CodeNotFound, "match not found", err)
	case engine.IsRejected(err):
		return f.Fail(ExitFailure, CodeRejected, "event rejected", err)
	case engine.IsCorruptLog(err), engine.IsReplayDiverged(err):
		return f.Fail(ExitFailure, CodeDeterminism, "stored log does not replay", err)
	default:
		return f.Fail(ExitFailure, CodeStorage, "storage error", err)
	}
}
