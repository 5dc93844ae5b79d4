package codec

import (
	"errors"
	"fmt"
	"sort"

	"github.com/roach88/scricket/internal/match"
)

// Record is the wire form of one event.
type Record struct {
	Type    string         `json:"type" yaml:"type"`
	Runs    *int           `json:"runs,omitempty" yaml:"runs,omitempty" codec:"runs"`
	Extra   string         `json:"extra,omitempty" yaml:"extra,omitempty" codec:"extra"`
	HowOut  string         `json:"how_out,omitempty" yaml:"how_out,omitempty" codec:"how_out"`
	Bowler  *int           `json:"bowler,omitempty" yaml:"bowler,omitempty" codec:"bowler"`
	Fielder *int           `json:"fielder,omitempty" yaml:"fielder,omitempty" codec:"fielder"`
	Batter  string         `json:"batter,omitempty" yaml:"batter,omitempty" codec:"batter"`
	Side    string         `json:"side,omitempty" yaml:"side,omitempty" codec:"side"`
	Index   *int           `json:"index,omitempty" yaml:"index,omitempty" codec:"index"`
	Name    *string        `json:"name,omitempty" yaml:"name,omitempty" codec:"name"`
	Player  *PlayerRecord  `json:"player,omitempty" yaml:"player,omitempty" codec:"player"`
	Summary *SummaryRecord `json:"summary,omitempty" yaml:"summary,omitempty" codec:"summary"`
}

// PlayerRecord is the wire form of a player carried by add_player.
type PlayerRecord struct {
	First        string             `json:"first" yaml:"first"`
	Last         string             `json:"last" yaml:"last"`
	Order        int                `json:"order" yaml:"order"`
	HowOut       string             `json:"how_out" yaml:"how_out"`
	Dismissal    *AttributionRecord `json:"dismissal,omitempty" yaml:"dismissal,omitempty" codec:"dismissal"`
	RunsScored   int                `json:"runs_scored,omitempty" yaml:"runs_scored,omitempty" codec:"runs_scored"`
	BallsFaced   int                `json:"balls_faced,omitempty" yaml:"balls_faced,omitempty" codec:"balls_faced"`
	BattingRank  *int               `json:"batting_rank,omitempty" yaml:"batting_rank,omitempty" codec:"batting_rank"`
	RunsConceded int                `json:"runs_conceded,omitempty" yaml:"runs_conceded,omitempty" codec:"runs_conceded"`
	WicketsTaken int                `json:"wickets_taken,omitempty" yaml:"wickets_taken,omitempty" codec:"wickets_taken"`
	OversBowled  *OversRecord       `json:"overs_bowled,omitempty" yaml:"overs_bowled,omitempty" codec:"overs_bowled"`
	BowlingRank  *int               `json:"bowling_rank,omitempty" yaml:"bowling_rank,omitempty" codec:"bowling_rank"`
	Extras       *ExtrasRecord      `json:"extras,omitempty" yaml:"extras,omitempty" codec:"extras"`
}

// AttributionRecord is the wire form of a wicket attribution.
type AttributionRecord struct {
	Bowler  *int `json:"bowler,omitempty" yaml:"bowler,omitempty" codec:"bowler"`
	Fielder *int `json:"fielder,omitempty" yaml:"fielder,omitempty" codec:"fielder"`
}

// OversRecord is the wire form of an overs counter.
type OversRecord struct {
	Overs int `json:"overs" yaml:"overs"`
	Balls int `json:"balls" yaml:"balls"`
}

// ExtrasRecord is the wire form of an extras ledger.
type ExtrasRecord struct {
	Wides       int `json:"wides,omitempty" yaml:"wides,omitempty" codec:"wides"`
	NoBalls     int `json:"no_balls,omitempty" yaml:"no_balls,omitempty" codec:"no_balls"`
	Byes        int `json:"byes,omitempty" yaml:"byes,omitempty" codec:"byes"`
	LegByes     int `json:"leg_byes,omitempty" yaml:"leg_byes,omitempty" codec:"leg_byes"`
	PenaltyRuns int `json:"penalty_runs,omitempty" yaml:"penalty_runs,omitempty" codec:"penalty_runs"`
}

// SummaryRecord is the wire form of an end-of-over snapshot.
type SummaryRecord struct {
	Runs    int `json:"runs" yaml:"runs"`
	Wickets int `json:"wickets" yaml:"wickets"`
	Overs   int `json:"overs" yaml:"overs"`
	Balls   int `json:"balls" yaml:"balls"`
}

// FromEvent converts an event to its wire form.
func FromEvent(ev match.Event) (Record, error) {
	if ev == nil {
		return Record{}, errors.New("nil event")
	}
	r := Record{Type: ev.Kind().Name()}
	switch e := ev.(type) {
	case match.Runs:
		r.Runs = intPtr(e.N)
	case match.ExtraEvent:
		if !e.Extra.Kind.Valid() {
			return Record{}, fmt.Errorf("extra: unknown kind %d", int(e.Extra.Kind))
		}
		r.Runs = intPtr(e.Runs)
		r.Extra = e.Extra.Kind.Name()
	case match.WicketEvent:
		if !e.HowOut.Valid() {
			return Record{}, fmt.Errorf("wicket: unknown dismissal %d", int(e.HowOut))
		}
		r.HowOut = e.HowOut.Name()
		r.Bowler = clone(e.Bowler)
		switch d := e.Detail.(type) {
		case match.CaughtBy:
			r.Fielder = intPtr(d.Fielder)
		case match.RunOutAt:
			r.Batter = d.Batter.String()
			r.Fielder = clone(d.Fielder)
		}
	case match.StartOver, match.EndInnings:
	case match.EndOver:
		r.Summary = &SummaryRecord{
			Runs:    e.Summary.Runs,
			Wickets: e.Summary.Wickets,
			Overs:   e.Summary.Overs.Overs,
			Balls:   e.Summary.Overs.Balls,
		}
	case match.StartInnings:
		r.Side = e.Side.String()
	case match.SelectOnStrike:
		r.Index = intPtr(e.Index)
	case match.SelectOffStrike:
		r.Index = intPtr(e.Index)
	case match.SelectBowler:
		r.Index = intPtr(e.Index)
	case match.AddPlayer:
		r.Player = fromPlayer(e.Player)
	case match.SubmitTeam:
		name := e.Name
		r.Name = &name
	default:
		return Record{}, fmt.Errorf("unsupported event %T", ev)
	}
	return r, nil
}

// FromEvents converts a whole log.
func FromEvents(events []match.Event) ([]Record, error) {
	out := make([]Record, len(events))
	for i, ev := range events {
		r, err := FromEvent(ev)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		out[i] = r
	}
	return out, nil
}

// Event converts a record back into an event. Missing or unexpected
// fields for the record's type are errors.
func (r Record) Event() (match.Event, error) {
	kind, err := match.ParseKind(r.Type)
	if err != nil {
		return nil, err
	}
	switch kind {
	case match.KindRuns:
		if err := r.expect(kind, "runs"); err != nil {
			return nil, err
		}
		return match.Runs{N: *r.Runs}, nil
	case match.KindExtra:
		if err := r.expect(kind, "runs", "extra"); err != nil {
			return nil, err
		}
		k, err := match.ParseExtraKind(r.Extra)
		if err != nil {
			return nil, err
		}
		return match.ExtraEvent{Extra: match.Extra{Runs: *r.Runs, Kind: k}}, nil
	case match.KindWicket:
		return r.wicket()
	case match.KindStartOver:
		if err := r.expect(kind); err != nil {
			return nil, err
		}
		return match.StartOver{}, nil
	case match.KindEndOver:
		if err := r.expect(kind, "summary"); err != nil {
			return nil, err
		}
		return match.EndOver{Summary: match.Summary{
			Runs:    r.Summary.Runs,
			Wickets: r.Summary.Wickets,
			Overs:   match.Overs{Overs: r.Summary.Overs, Balls: r.Summary.Balls},
		}}, nil
	case match.KindStartInnings:
		if err := r.expect(kind, "side"); err != nil {
			return nil, err
		}
		side, err := match.ParseSide(r.Side)
		if err != nil {
			return nil, err
		}
		return match.StartInnings{Side: side}, nil
	case match.KindEndInnings:
		if err := r.expect(kind); err != nil {
			return nil, err
		}
		return match.EndInnings{}, nil
	case match.KindSelectOnStrike, match.KindSelectOffStrike, match.KindSelectBowler:
		if err := r.expect(kind, "index"); err != nil {
			return nil, err
		}
		switch kind {
		case match.KindSelectOnStrike:
			return match.SelectOnStrike{Index: *r.Index}, nil
		case match.KindSelectOffStrike:
			return match.SelectOffStrike{Index: *r.Index}, nil
		default:
			return match.SelectBowler{Index: *r.Index}, nil
		}
	case match.KindAddPlayer:
		if err := r.expect(kind, "player"); err != nil {
			return nil, err
		}
		p, err := r.Player.player()
		if err != nil {
			return nil, err
		}
		return match.AddPlayer{Player: p}, nil
	case match.KindSubmitTeam:
		if err := r.expect(kind, "name"); err != nil {
			return nil, err
		}
		return match.SubmitTeam{Name: *r.Name}, nil
	}
	return nil, fmt.Errorf("unsupported event type %q", r.Type)
}

func (r Record) wicket() (match.Event, error) {
	if err := r.allow(match.KindWicket, "how_out", "bowler", "fielder", "batter"); err != nil {
		return nil, err
	}
	h, err := match.ParseHowOut(r.HowOut)
	if err != nil {
		return nil, err
	}
	w := match.Wicket{HowOut: h, Bowler: clone(r.Bowler)}
	switch {
	case r.Batter != "":
		end, err := match.ParseEnd(r.Batter)
		if err != nil {
			return nil, err
		}
		w.Detail = match.RunOutAt{Batter: end, Fielder: clone(r.Fielder)}
	case r.Fielder != nil:
		w.Detail = match.CaughtBy{Fielder: *r.Fielder}
	}
	return match.WicketEvent{Wicket: w}, nil
}

// present lists the optional fields that are set.
func (r Record) present() []string {
	var set []string
	add := func(name string, ok bool) {
		if ok {
			set = append(set, name)
		}
	}
	add("runs", r.Runs != nil)
	add("extra", r.Extra != "")
	add("how_out", r.HowOut != "")
	add("bowler", r.Bowler != nil)
	add("fielder", r.Fielder != nil)
	add("batter", r.Batter != "")
	add("side", r.Side != "")
	add("index", r.Index != nil)
	add("name", r.Name != nil)
	add("player", r.Player != nil)
	add("summary", r.Summary != nil)
	return set
}

// expect requires exactly the named fields.
func (r Record) expect(kind match.Kind, fields ...string) error {
	if err := r.allow(kind, fields...); err != nil {
		return err
	}
	set := r.present()
	for _, f := range fields {
		if !contains(set, f) {
			return fmt.Errorf("%s: missing field %q", kind, f)
		}
	}
	return nil
}

// allow rejects any set field not in fields.
func (r Record) allow(kind match.Kind, fields ...string) error {
	var extra []string
	for _, f := range r.present() {
		if !contains(fields, f) {
			extra = append(extra, f)
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		return fmt.Errorf("%s: unexpected fields %v", kind, extra)
	}
	return nil
}

func fromPlayer(p match.Player) *PlayerRecord {
	pr := &PlayerRecord{
		First:        p.FirstName,
		Last:         p.LastName,
		Order:        p.Order,
		HowOut:       p.HowOut.Name(),
		RunsScored:   p.RunsScored,
		BallsFaced:   p.BallsFaced,
		BattingRank:  clone(p.BattingRank),
		RunsConceded: p.RunsConceded,
		WicketsTaken: p.WicketsTaken,
		BowlingRank:  clone(p.BowlingRank),
	}
	if p.Dismissal != nil {
		pr.Dismissal = &AttributionRecord{Bowler: clone(p.Dismissal.Bowler), Fielder: clone(p.Dismissal.Fielder)}
	}
	if p.OversBowled != (match.Overs{}) {
		pr.OversBowled = &OversRecord{Overs: p.OversBowled.Overs, Balls: p.OversBowled.Balls}
	}
	if p.Extras != (match.Extras{}) {
		x := ExtrasRecord(p.Extras)
		pr.Extras = &x
	}
	return pr
}

func (pr *PlayerRecord) player() (match.Player, error) {
	h, err := match.ParseHowOut(pr.HowOut)
	if err != nil {
		return match.Player{}, fmt.Errorf("player %d: %w", pr.Order, err)
	}
	p := match.Player{
		FirstName:    pr.First,
		LastName:     pr.Last,
		Order:        pr.Order,
		HowOut:       h,
		RunsScored:   pr.RunsScored,
		BallsFaced:   pr.BallsFaced,
		BattingRank:  clone(pr.BattingRank),
		RunsConceded: pr.RunsConceded,
		WicketsTaken: pr.WicketsTaken,
		BowlingRank:  clone(pr.BowlingRank),
	}
	if pr.Dismissal != nil {
		p.Dismissal = &match.Attribution{Bowler: clone(pr.Dismissal.Bowler), Fielder: clone(pr.Dismissal.Fielder)}
	}
	if pr.OversBowled != nil {
		p.OversBowled = match.Overs{Overs: pr.OversBowled.Overs, Balls: pr.OversBowled.Balls}
	}
	if pr.Extras != nil {
		p.Extras = match.Extras(*pr.Extras)
	}
	return p, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func intPtr(v int) *int {
	return &v
}

func clone(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
