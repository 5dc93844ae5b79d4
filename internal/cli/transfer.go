package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/scricket/internal/codec"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Encoding string
	Output   string
}

// ExportResult describes a written export file.
type ExportResult struct {
	Match    string `json:"match"`
	Encoding string `json:"encoding"`
	Path     string `json:"path"`
	Events   int    `json:"events"`
	Digest   string `json:"digest"`
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export <match-id>",
		Short: "Write a match's event log",
		Long: `Write the submitted events of a match in one of the log encodings:
text (YAML), json or binary (msgpack). Without -o the log goes to stdout.

Examples:
  scricket export $MATCH > final.yaml
  scricket export $MATCH --encoding binary -o final.scrk`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Encoding, "encoding", "text", "log encoding (text|json|binary)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write to file instead of stdout")

	return cmd
}

func runExport(opts *ExportOptions, id string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	enc, err := codec.ParseFormat(opts.Encoding)
	if err != nil {
		return f.Fail(ExitCommandError, CodeInvalidArgs, "invalid encoding", err)
	}

	sess, closeFn, err := opts.openMatch(cmd, id)
	if err != nil {
		return err
	}
	defer closeFn()

	events := sess.Events()
	data, err := codec.Serialize(events, enc)
	if err != nil {
		return f.Fail(ExitFailure, CodeDecode, "failed to encode log", err)
	}

	if opts.Output == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	if err := os.WriteFile(opts.Output, data, 0644); err != nil {
		return f.Fail(ExitCommandError, CodeInvalidArgs, "failed to write export", err)
	}
	digest, err := codec.Digest(events)
	if err != nil {
		return f.Fail(ExitFailure, CodeDecode, "failed to digest log", err)
	}
	res := ExportResult{Match: id, Encoding: enc.String(), Path: opts.Output, Events: len(events), Digest: digest}
	return f.Success(res, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "✓ Exported %d events to %s (%s)\n", res.Events, res.Path, res.Encoding)
		return err
	})
}

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	*RootOptions
	Encoding string
	Name     string
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Create a match from an exported event log",
		Long: `Create a new match from an exported log. The log is replayed before
anything is stored, so a log that breaks the rules creates nothing.

The encoding is taken from the file extension (.yaml/.yml text, .json
json, anything else binary) unless --encoding is given.

Exit codes:
  0 - Match imported
  1 - The log could not be decoded or breaks the rules
  2 - Command error (file not found, etc.)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Encoding, "encoding", "", "log encoding (text|json|binary)")
	cmd.Flags().StringVar(&opts.Name, "name", "", "match name (default: file name)")

	return cmd
}

func runImport(opts *ImportOptions, path string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	encoding := opts.Encoding
	if encoding == "" {
		encoding = encodingFor(path)
	}
	enc, err := codec.ParseFormat(encoding)
	if err != nil {
		return f.Fail(ExitCommandError, CodeInvalidArgs, "invalid encoding", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return f.Fail(ExitCommandError, CodeInvalidArgs, "failed to read log", err)
	}
	events, err := codec.Deserialize(data, enc)
	if err != nil {
		return f.Fail(ExitFailure, CodeDecode, "failed to decode log", err)
	}

	name := opts.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	eng, closeFn, err := opts.openEngine(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	sess, err := eng.Import(cmd.Context(), name, events)
	if err != nil {
		return opts.sessionError(cmd, err)
	}

	info := MatchInfo{ID: sess.ID(), Name: sess.Name(), Events: len(events)}
	return f.Success(info, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "✓ Imported match %s (%d events)\n", info.ID, info.Events)
		return err
	})
}

func encodingFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return codec.Text.String()
	case ".json":
		return codec.JSON.String()
	default:
		return codec.Binary.String()
	}
}
