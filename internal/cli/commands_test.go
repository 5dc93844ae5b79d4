package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Lions lose two wickets for 9 and the chase starts, waiting on the
// Tigers' batters.
var firstInnings = [][]string{
	{"start-innings:A", "on:0", "off:1", "bowler:2", "4", "1", "extra:wide:1", "wicket:caught:0"},
	{"on:2", "2", "wicket:bowled"},
}

func scoreFirstInnings(t *testing.T, dir, id string) {
	t.Helper()
	for _, exprs := range firstInnings {
		out, err := execute(t, dir, append([]string{"score", id}, exprs...)...)
		require.NoError(t, err, out)
	}
}

func TestNew_TeamFiles(t *testing.T) {
	dir := t.TempDir()
	lions, tigers := writeSheets(t, dir)

	out, err := execute(t, dir, "new", "--team", lions, "--team", tigers, "--format", "json")
	require.NoError(t, err)

	resp := decode[MatchInfo](t, out)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "Lions v Tigers", resp.Data.Name)
	assert.Equal(t, 8, resp.Data.Events)

	out, err = execute(t, dir, "new", "Final", "--team", lions, "--team", tigers)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Created match ")
	assert.Contains(t, out, "Final: Lions v Tigers")
}

func TestNew_TeamsDir(t *testing.T) {
	dir := t.TempDir()
	sheets := filepath.Join(dir, "final")
	require.NoError(t, os.Mkdir(sheets, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(sheets, "match.cue"), []byte(`package final

name: "Final"
teams: [_lions, _tigers]

_lions: {name: "Lions", players: [{first: "Ada"}, {first: "Grace"}]}
_tigers: {name: "Tigers", players: [{first: "Ken"}, {first: "Radia"}]}
`), 0644))

	out, err := execute(t, dir, "new", "--teams", sheets, "--format", "json")
	require.NoError(t, err, out)
	resp := decode[MatchInfo](t, out)
	assert.Equal(t, "Final", resp.Data.Name)
	assert.Equal(t, 6, resp.Data.Events)
}

func TestNew_Errors(t *testing.T) {
	dir := t.TempDir()
	lions, _ := writeSheets(t, dir)
	bad := filepath.Join(dir, "bad.cue")
	require.NoError(t, os.WriteFile(bad, []byte(`name: "Solo"
players: [{first: "Ada"}]
`), 0644))

	tests := []struct {
		name string
		args []string
		code string
	}{
		{"one sheet", []string{"--team", lions}, CodeInvalidArgs},
		{"both flags", []string{"--team", lions, "--team", lions, "--teams", dir}, CodeInvalidArgs},
		{"invalid sheet", []string{"--team", lions, "--team", bad}, CodeTeamSheet},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"new", "--format", "json"}, tt.args...)
			out, err := execute(t, dir, args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			resp := decode[any](t, out)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}

	out, err := execute(t, dir, "list")
	require.NoError(t, err)
	assert.Equal(t, "No matches.\n", out)
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	id := newMatch(t, dir)

	out, err := execute(t, dir, "list", "--format", "json")
	require.NoError(t, err)
	resp := decode[[]MatchInfo](t, out)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, MatchInfo{ID: id, Name: "Lions v Tigers", Events: 8}, resp.Data[0])

	out, err = execute(t, dir, "list")
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "8 events")
}

func TestScore(t *testing.T) {
	dir := t.TempDir()
	id := newMatch(t, dir)

	out, err := execute(t, dir, append([]string{"score", id, "--format", "json"}, firstInnings[0]...)...)
	require.NoError(t, err, out)
	resp := decode[Status](t, out)
	require.Len(t, resp.Data.Submitted, 8)
	assert.Equal(t, Submitted{Expr: "4", Kind: "runs", Seq: 13, Hint: "none"}, resp.Data.Submitted[4])
	assert.Equal(t, "Lions", resp.Data.Batting)
	assert.Equal(t, "1/7 (0.3)", resp.Data.Score)
	assert.Equal(t, "select_batter", resp.Data.Pending)
	assert.Equal(t, []Choice{{Index: 2, Name: "Alan Turing"}}, resp.Data.Options)

	out, err = execute(t, dir, append([]string{"score", id}, firstInnings[1]...)...)
	require.NoError(t, err, out)
	assert.Contains(t, out, "✓ wicket:bowled")
	assert.Contains(t, out, "(select_batter)")
	assert.Contains(t, out, "Tigers 0/0 (0.0)")
	assert.Contains(t, out, "Waiting for: select_batter")
	assert.Contains(t, out, "   0  Ken Thompson\n   1  Radia Perlman\n   2  Barbara Liskov\n")
}

func TestScore_BowlerOptions(t *testing.T) {
	dir := t.TempDir()
	id := newMatch(t, dir)

	out, err := execute(t, dir, "score", id, "start-innings:A", "on:0", "off:1", "bowler:2",
		"1", "1", "1", "1", "1", "1", "--format", "json")
	require.NoError(t, err, out)
	resp := decode[Status](t, out)
	assert.Equal(t, "select_bowler", resp.Data.Pending)
	assert.Equal(t, "select_bowler", resp.Data.Submitted[9].Hint)
	assert.Nil(t, resp.Data.Suggested, "only one over bowled")
	assert.Equal(t, []Choice{{Index: 0, Name: "Ken Thompson"}, {Index: 1, Name: "Radia Perlman"}}, resp.Data.Options)

	out, err = execute(t, dir, "score", id, "bowler:0", "0", "0", "0", "0", "0", "0", "--format", "json")
	require.NoError(t, err, out)
	resp = decode[Status](t, out)
	require.NotNil(t, resp.Data.Suggested)
	assert.Equal(t, 2, *resp.Data.Suggested)
	assert.Equal(t, []Choice{{Index: 2, Name: "Barbara Liskov"}, {Index: 1, Name: "Radia Perlman"}}, resp.Data.Options)
	assert.Equal(t, "0/6 (2.0)", resp.Data.Score)
}

func TestScore_Rejected(t *testing.T) {
	dir := t.TempDir()
	id := newMatch(t, dir)
	scoreFirstInnings(t, dir, id)

	out, err := execute(t, dir, "score", id, "1", "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	resp := decode[any](t, out)
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeRejected, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, `event "1" rejected after 0 accepted`)

	out, err = execute(t, dir, "list", "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, 19, decode[[]MatchInfo](t, out).Data[0].Events)
}

func TestScore_StopsAtFirstRejection(t *testing.T) {
	dir := t.TempDir()
	id := newMatch(t, dir)

	_, err := execute(t, dir, "score", id, "start-innings:A", "4", "on:0")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	out, err := execute(t, dir, "list", "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, 9, decode[[]MatchInfo](t, out).Data[0].Events, "start-innings kept, rest not submitted")
}

func TestScore_InvalidExpression(t *testing.T) {
	dir := t.TempDir()
	id := newMatch(t, dir)

	for _, expr := range []string{"six", "wicket:caught", "extra:free_hit", "on:x"} {
		_, err := execute(t, dir, "score", id, expr)
		require.Error(t, err, expr)
		assert.Equal(t, ExitCommandError, GetExitCode(err), expr)
	}
}

func TestScore_MatchNotFound(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, dir, "score", "missing", "1", "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Equal(t, CodeNotFound, decode[any](t, out).Error.Code)
}

func TestShow(t *testing.T) {
	dir := t.TempDir()
	id := newMatch(t, dir)
	scoreFirstInnings(t, dir, id)

	out, err := execute(t, dir, "show", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Lions v Tigers\n\n")
	assert.Contains(t, out, "Innings 1: Lions 2/9 (0.5 overs)")
	assert.Contains(t, out, "c Ken Thompson b Barbara Liskov")
	assert.Contains(t, out, "Tigers need 10 runs to win")
	assert.Contains(t, out, "Waiting for: select_batter")
	assert.NotContains(t, out, "History:")

	out, err = execute(t, dir, "show", id, "--history", "--format", "json")
	require.NoError(t, err)
	resp := decode[ShowResult](t, out)
	require.Len(t, resp.Data.Card.Innings, 2)
	assert.Equal(t, 9, resp.Data.Card.Innings[0].Runs)
	assert.True(t, resp.Data.Card.Innings[1].InProgress)
	require.Len(t, resp.Data.History, 6)
	assert.Equal(t, "Barbara Liskov to Ada Lovelace", resp.Data.History[0].Matchup)
	assert.Equal(t, "wicket: Bowled", resp.Data.History[5].Text)
}

func TestUndo(t *testing.T) {
	dir := t.TempDir()
	id := newMatch(t, dir)
	scoreFirstInnings(t, dir, id)

	out, err := execute(t, dir, "undo", id, "--format", "json")
	require.NoError(t, err, out)
	resp := decode[Status](t, out)
	assert.Equal(t, 18, resp.Data.Events)
	assert.Equal(t, "Lions", resp.Data.Batting)
	assert.Equal(t, "1/9 (0.4)", resp.Data.Score)
	assert.Equal(t, "none", resp.Data.Pending)
}

func TestUndo_EmptyMatch(t *testing.T) {
	dir := t.TempDir()
	id := newMatch(t, dir)

	for i := 0; i < 8; i++ {
		_, err := execute(t, dir, "undo", id)
		require.NoError(t, err)
	}
	_, err := execute(t, dir, "undo", id)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestDelete(t *testing.T) {
	dir := t.TempDir()
	id := newMatch(t, dir)
	scoreFirstInnings(t, dir, id)

	out, err := execute(t, dir, "delete", id, "8", "--format", "json")
	require.Error(t, err, "deleting start-innings breaks the rest of the log")
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t, CodeRejected, decode[any](t, out).Error.Code)

	_, err = execute(t, dir, "delete", id, "x")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	out, err = execute(t, dir, "delete", id, "12", "--format", "json")
	require.NoError(t, err, out)
	resp := decode[Status](t, out)
	assert.Equal(t, 18, resp.Data.Events)
	assert.Equal(t, "Tigers", resp.Data.Batting)

	out, err = execute(t, dir, "show", id, "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, 5, decode[ShowResult](t, out).Data.Card.Innings[0].Runs)
}

func TestRemove(t *testing.T) {
	dir := t.TempDir()
	id := newMatch(t, dir)

	out, err := execute(t, dir, "remove", id)
	require.NoError(t, err)
	assert.Equal(t, "✓ Removed match "+id+"\n", out)

	out, err = execute(t, dir, "remove", id, "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Equal(t, CodeNotFound, decode[any](t, out).Error.Code)
}

func TestReplay(t *testing.T) {
	dir := t.TempDir()
	id := newMatch(t, dir)
	scoreFirstInnings(t, dir, id)

	out, err := execute(t, dir, "replay", "--format", "json")
	require.NoError(t, err, out)
	resp := decode[ReplayResult](t, out)
	assert.True(t, resp.Data.AllDeterministic)
	require.Equal(t, 1, resp.Data.TotalMatches)
	m := resp.Data.Matches[0]
	assert.Equal(t, id, m.ID)
	assert.Equal(t, 19, m.Events)
	assert.Len(t, m.Digest, 64)
	assert.Equal(t, 3, m.Kinds["runs"])
	assert.Equal(t, 2, m.Kinds["wicket"])
	assert.Equal(t, 6, m.Kinds["add_player"])

	out, err = execute(t, dir, "replay", id)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ "+id)
	assert.Contains(t, out, "digest: "+m.Digest)
	assert.Contains(t, out, "✓ All matches are deterministic")
}

func TestReplay_Empty(t *testing.T) {
	out, err := execute(t, t.TempDir(), "replay")
	require.NoError(t, err)
	assert.Equal(t, "No matches found in database.\n", out)
}

func TestReplay_MatchNotFound(t *testing.T) {
	_, err := execute(t, t.TempDir(), "replay", "missing")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestExportImport(t *testing.T) {
	dir := t.TempDir()
	id := newMatch(t, dir)
	scoreFirstInnings(t, dir, id)

	out, err := execute(t, dir, "export", id)
	require.NoError(t, err)
	assert.Contains(t, out, "version: 1")
	assert.Contains(t, out, "type: start_innings")

	for _, enc := range []string{"text", "json", "binary"} {
		t.Run(enc, func(t *testing.T) {
			path := filepath.Join(dir, "log."+enc)
			out, err := execute(t, dir, "export", id, "--encoding", enc, "-o", path, "--format", "json")
			require.NoError(t, err, out)
			exported := decode[ExportResult](t, out).Data
			assert.Equal(t, 19, exported.Events)

			out, err = execute(t, dir, "import", path, "--encoding", enc, "--name", "copy-"+enc, "--format", "json")
			require.NoError(t, err, out)
			imported := decode[MatchInfo](t, out).Data
			assert.NotEqual(t, id, imported.ID)
			assert.Equal(t, 19, imported.Events)

			out, err = execute(t, dir, "replay", imported.ID, "--format", "json")
			require.NoError(t, err)
			assert.Equal(t, exported.Digest, decode[ReplayResult](t, out).Data.Matches[0].Digest)
		})
	}
}

func TestImport_EncodingFromExtension(t *testing.T) {
	assert.Equal(t, "text", encodingFor("final.yaml"))
	assert.Equal(t, "text", encodingFor("final.YML"))
	assert.Equal(t, "json", encodingFor("final.json"))
	assert.Equal(t, "binary", encodingFor("final.scrk"))
}

func TestImport_Errors(t *testing.T) {
	dir := t.TempDir()

	illegal := filepath.Join(dir, "illegal.yaml")
	require.NoError(t, os.WriteFile(illegal, []byte("version: 1\nevents:\n  - {type: runs, runs: 4}\n"), 0644))
	out, err := execute(t, dir, "import", illegal, "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t, CodeRejected, decode[any](t, out).Error.Code)

	garbage := filepath.Join(dir, "garbage.json")
	require.NoError(t, os.WriteFile(garbage, []byte("not json"), 0644))
	out, err = execute(t, dir, "import", garbage, "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t, CodeDecode, decode[any](t, out).Error.Code)

	_, err = execute(t, dir, "import", filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	out, err = execute(t, dir, "list")
	require.NoError(t, err)
	assert.Equal(t, "No matches.\n", out, "failed imports create nothing")
}
