package teamsheet

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/scricket/internal/match"
)

//go:embed schema.cue
var schemaSrc string

// Player is one line of a team sheet.
type Player struct {
	First string `json:"first"`
	Last  string `json:"last"`
}

// Sheet is one team.
type Sheet struct {
	Name    string   `json:"name"`
	Players []Player `json:"players"`
}

// MatchSheet is both teams, first to be entered first.
type MatchSheet struct {
	Name  string  `json:"name"`
	Teams []Sheet `json:"teams"`
}

// SheetError reports an invalid sheet, with the CUE position when known.
type SheetError struct {
	Message string
	Pos     token.Pos
}

func (e *SheetError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return e.Message
}

// Parse reads a single team sheet.
func Parse(src []byte, filename string) (Sheet, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(src, cue.Filename(filename))

	var sheet Sheet
	if err := decode(ctx, v, "#TeamSheet", &sheet); err != nil {
		return Sheet{}, err
	}
	sheet = sheet.normalized()
	if err := sheet.check(); err != nil {
		return Sheet{}, err
	}
	return sheet, nil
}

// ParseFile reads a single team sheet from disk.
func ParseFile(path string) (Sheet, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Sheet{}, fmt.Errorf("read team sheet: %w", err)
	}
	return Parse(src, path)
}

// LoadDir loads the CUE package in dir as a match sheet.
func LoadDir(dir string) (MatchSheet, error) {
	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return MatchSheet{}, &SheetError{Message: fmt.Sprintf("no CUE instances in %s", dir)}
	}
	inst := instances[0]
	if inst.Err != nil {
		return MatchSheet{}, fromCUE(inst.Err)
	}

	v := ctx.BuildInstance(inst)
	var ms MatchSheet
	if err := decode(ctx, v, "#MatchSheet", &ms); err != nil {
		return MatchSheet{}, err
	}
	for i := range ms.Teams {
		ms.Teams[i] = ms.Teams[i].normalized()
		if err := ms.Teams[i].check(); err != nil {
			return MatchSheet{}, err
		}
	}
	return ms, nil
}

// decode unifies v with the schema definition def and decodes it into out.
func decode(ctx *cue.Context, v cue.Value, def string, out any) error {
	if err := v.Err(); err != nil {
		return fromCUE(err)
	}

	schema := ctx.CompileString(schemaSrc, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("team sheet schema: %w", err)
	}

	unified := schema.LookupPath(cue.ParsePath(def)).Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fromCUE(err)
	}
	if err := unified.Decode(out); err != nil {
		return fromCUE(err)
	}
	return nil
}

// fromCUE keeps the first CUE error and its position.
func fromCUE(err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &SheetError{Message: err.Error()}
	}
	first := errs[0]
	se := &SheetError{Message: first.Error()}
	if positions := errors.Positions(first); len(positions) > 0 {
		se.Pos = positions[0]
	}
	return se
}

func (s Sheet) normalized() Sheet {
	out := Sheet{Name: clean(s.Name), Players: make([]Player, len(s.Players))}
	for i, p := range s.Players {
		out.Players[i] = Player{First: clean(p.First), Last: clean(p.Last)}
	}
	return out
}

// check rejects two players whose names differ only by case.
func (s Sheet) check() error {
	fold := cases.Fold()
	seen := make(map[string]int, len(s.Players))
	for i, p := range s.Players {
		key := fold.String(p.First + " " + p.Last)
		if j, dup := seen[key]; dup {
			return &SheetError{Message: fmt.Sprintf("team %q: players %d and %d are both %q", s.Name, j, i, p.Name())}
		}
		seen[key] = i
	}
	return nil
}

// clean NFC-normalizes and collapses whitespace.
func clean(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}

// Name is the display name.
func (p Player) Name() string {
	return strings.TrimSpace(p.First + " " + p.Last)
}

// Events returns the team entry events for this sheet: one AddPlayer per
// line, then SubmitTeam.
func (s Sheet) Events() []match.Event {
	events := make([]match.Event, 0, len(s.Players)+1)
	for i, p := range s.Players {
		events = append(events, match.AddPlayer{Player: match.NewPlayer(p.First, p.Last, i)})
	}
	return append(events, match.SubmitTeam{Name: s.Name})
}

// Events returns the team entry events for both teams in order.
func (m MatchSheet) Events() []match.Event {
	var events []match.Event
	for _, t := range m.Teams {
		events = append(events, t.Events()...)
	}
	return events
}
