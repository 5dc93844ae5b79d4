package match

import "fmt"

// Kind identifies an event variant.
type Kind int

const (
	KindRuns Kind = iota
	KindExtra
	KindWicket
	KindStartOver
	KindEndOver
	KindStartInnings
	KindEndInnings
	KindSelectOnStrike
	KindSelectOffStrike
	KindSelectBowler
	KindAddPlayer
	KindSubmitTeam
)

var kindNames = [...]string{
	"runs", "extra", "wicket", "start_over", "end_over", "start_innings",
	"end_innings", "select_on_strike", "select_off_strike", "select_bowler",
	"add_player", "submit_team",
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k >= KindRuns && k <= KindSubmitTeam
}

// Name returns the snake_case wire name.
func (k Kind) Name() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

func (k Kind) String() string {
	return k.Name()
}

// ParseKind parses a wire name such as "select_bowler".
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown event kind %q", s)
}

// IsBall reports whether the kind is a delivery outcome.
func (k Kind) IsBall() bool {
	return k == KindRuns || k == KindExtra || k == KindWicket
}

// IsSetup reports whether the kind belongs to team entry.
func (k Kind) IsSetup() bool {
	return k == KindAddPlayer || k == KindSubmitTeam
}

// Event is one entry of the match log. The set of variants is closed.
type Event interface {
	Kind() Kind
	isEvent()
}

// Runs is a legal delivery with N runs off the bat.
type Runs struct {
	N int
}

// ExtraEvent is a delivery, or penalty, scored as an extra.
type ExtraEvent struct {
	Extra
}

// WicketEvent is a legal delivery on which a batter was dismissed.
type WicketEvent struct {
	Wicket
}

// StartOver marks the start of an over. It has no effect on state.
type StartOver struct{}

// EndOver closes the current over. Summary is the batting total at the
// moment the over closed.
type EndOver struct {
	Summary Summary
}

// StartInnings sends Side in to bat.
type StartInnings struct {
	Side Side
}

// EndInnings closes the current innings.
type EndInnings struct{}

// SelectOnStrike binds the striker by batting roster index.
type SelectOnStrike struct {
	Index int
}

// SelectOffStrike binds the non-striker by batting roster index.
type SelectOffStrike struct {
	Index int
}

// SelectBowler binds the bowler by bowling roster index.
type SelectBowler struct {
	Index int
}

// AddPlayer appends a player to the team being entered.
type AddPlayer struct {
	Player Player
}

// SubmitTeam names the team being entered and moves entry to the next side.
type SubmitTeam struct {
	Name string
}

// Summary is a team total snapshot.
type Summary struct {
	Runs    int
	Wickets int
	Overs   Overs
}

func (Runs) Kind() Kind            { return KindRuns }
func (ExtraEvent) Kind() Kind      { return KindExtra }
func (WicketEvent) Kind() Kind     { return KindWicket }
func (StartOver) Kind() Kind       { return KindStartOver }
func (EndOver) Kind() Kind         { return KindEndOver }
func (StartInnings) Kind() Kind    { return KindStartInnings }
func (EndInnings) Kind() Kind      { return KindEndInnings }
func (SelectOnStrike) Kind() Kind  { return KindSelectOnStrike }
func (SelectOffStrike) Kind() Kind { return KindSelectOffStrike }
func (SelectBowler) Kind() Kind    { return KindSelectBowler }
func (AddPlayer) Kind() Kind       { return KindAddPlayer }
func (SubmitTeam) Kind() Kind      { return KindSubmitTeam }

func (Runs) isEvent()            {}
func (ExtraEvent) isEvent()      {}
func (WicketEvent) isEvent()     {}
func (StartOver) isEvent()       {}
func (EndOver) isEvent()         {}
func (StartInnings) isEvent()    {}
func (EndInnings) isEvent()      {}
func (SelectOnStrike) isEvent()  {}
func (SelectOffStrike) isEvent() {}
func (SelectBowler) isEvent()    {}
func (AddPlayer) isEvent()       {}
func (SubmitTeam) isEvent()      {}

// Origin says whether a log entry was submitted by a caller or produced by
// the rules in response to one.
type Origin int

const (
	Submitted Origin = iota
	Derived
)

func (o Origin) String() string {
	if o == Derived {
		return "derived"
	}
	return "submitted"
}

// PlayerRef points at a roster slot on one side. Index is NoPlayer when
// nobody was bound.
type PlayerRef struct {
	Side  Side
	Index int
}

// Context is the display side-channel captured when an entry is logged.
// Replay never reads it.
type Context struct {
	Bowler PlayerRef
	Batter PlayerRef
}

// Entry is one log line. Index is the position, among submitted events,
// of the event that produced it.
type Entry struct {
	Event   Event
	Origin  Origin
	Index   int
	Context Context
}
