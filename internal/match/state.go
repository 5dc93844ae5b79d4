package match

// NoPlayer marks an unbound active-player slot.
const NoPlayer = -1

// MaxWickets ends an innings.
const MaxWickets = 10

// Hint tells the caller what selection the rules now expect.
type Hint int

const (
	HintNone Hint = iota
	HintSelectBowler
	HintSelectBatter
)

func (h Hint) String() string {
	switch h {
	case HintSelectBowler:
		return "select_bowler"
	case HintSelectBatter:
		return "select_batter"
	default:
		return "none"
	}
}

// State is the live match: two teams, the active players, innings
// bookkeeping and the log that produced them. The zero value is not
// usable; call New.
type State struct {
	teams   [2]Team
	batting Side

	onStrike  int
	offStrike int
	bowler    int

	lastBowler     int
	lastLastBowler int

	teamsSubmitted int
	innings        int
	inProgress     bool

	log       []Entry
	submitted int
}

// New returns an empty match awaiting team entry for side A.
func New() *State {
	return &State{
		batting:        SideA,
		onStrike:       NoPlayer,
		offStrike:      NoPlayer,
		bowler:         NoPlayer,
		lastBowler:     NoPlayer,
		lastLastBowler: NoPlayer,
	}
}

// Apply validates ev, appends it to the log and applies its effects. A
// rejected event returns a *RuleError and leaves the state untouched.
func (s *State) Apply(ev Event) (Hint, error) {
	if err := s.Check(ev); err != nil {
		return HintNone, err
	}
	s.record(ev, Submitted)
	hint := s.effect(ev)
	s.submitted++
	return hint, nil
}

// MustApply is Apply for callers that treat a rejected event as a bug.
func (s *State) MustApply(ev Event) Hint {
	h, err := s.Apply(ev)
	if err != nil {
		panic(err)
	}
	return h
}

// derive logs and applies an event the rules produced.
func (s *State) derive(ev Event) {
	s.record(ev, Derived)
	s.effect(ev)
}

func (s *State) record(ev Event, origin Origin) {
	s.log = append(s.log, Entry{
		Event:  ev,
		Origin: origin,
		Index:  s.submitted,
		Context: Context{
			Bowler: PlayerRef{Side: s.batting.Other(), Index: s.bowler},
			Batter: PlayerRef{Side: s.batting, Index: s.onStrike},
		},
	})
}

// Team returns a copy of the team on side.
func (s *State) Team(side Side) Team {
	return s.teams[side].clone()
}

// BattingSide is the side currently batting, or being entered before the
// first innings.
func (s *State) BattingSide() Side {
	return s.batting
}

// BowlingSide is the side opposing the batting side.
func (s *State) BowlingSide() Side {
	return s.batting.Other()
}

// BattingTeam returns a copy of the batting team.
func (s *State) BattingTeam() Team {
	return s.Team(s.batting)
}

// BowlingTeam returns a copy of the bowling team.
func (s *State) BowlingTeam() Team {
	return s.Team(s.batting.Other())
}

// OnStrikeIndex is the striker's batting roster index, or NoPlayer.
func (s *State) OnStrikeIndex() int { return s.onStrike }

// OffStrikeIndex is the non-striker's batting roster index, or NoPlayer.
func (s *State) OffStrikeIndex() int { return s.offStrike }

// BowlerIndex is the bowler's bowling roster index, or NoPlayer.
func (s *State) BowlerIndex() int { return s.bowler }

// LastBowler bowled the previous over.
func (s *State) LastBowler() int { return s.lastBowler }

// LastLastBowler bowled the over before the previous one.
func (s *State) LastLastBowler() int { return s.lastLastBowler }

// OnStrike returns the striker's record.
func (s *State) OnStrike() (Player, bool) {
	return s.teams[s.batting].Player(s.onStrike)
}

// OffStrike returns the non-striker's record.
func (s *State) OffStrike() (Player, bool) {
	return s.teams[s.batting].Player(s.offStrike)
}

// Bowler returns the current bowler's record.
func (s *State) Bowler() (Player, bool) {
	return s.teams[s.batting.Other()].Player(s.bowler)
}

// Innings is the number of innings started so far.
func (s *State) Innings() int { return s.innings }

// InProgress reports whether an innings is being played.
func (s *State) InProgress() bool { return s.inProgress }

// TeamsSubmitted is the number of SubmitTeam events applied.
func (s *State) TeamsSubmitted() int { return s.teamsSubmitted }

// Log returns a copy of every entry, derived ones included.
func (s *State) Log() []Entry {
	out := make([]Entry, len(s.log))
	copy(out, s.log)
	return out
}

// Events returns the submitted events in order. Replaying them rebuilds
// this state.
func (s *State) Events() []Event {
	out := make([]Event, 0, s.submitted)
	for _, e := range s.log {
		if e.Origin == Submitted {
			out = append(out, e.Event)
		}
	}
	return out
}

// Len is the number of submitted events.
func (s *State) Len() int { return s.submitted }

// BatterToReplace reports which active batting slot is empty, striker
// first.
func (s *State) BatterToReplace() (End, bool) {
	if !s.inProgress {
		return 0, false
	}
	if s.onStrike == NoPlayer {
		return OnStrike, true
	}
	if s.offStrike == NoPlayer {
		return OffStrike, true
	}
	return 0, false
}

// PendingSelection returns the selection needed before the next ball.
func (s *State) PendingSelection() Hint {
	if _, ok := s.BatterToReplace(); ok {
		return HintSelectBatter
	}
	if s.inProgress && s.bowler == NoPlayer {
		return HintSelectBowler
	}
	return HintNone
}

// SuggestedBowler is the bowler of two overs ago, the usual choice to
// bowl the next over from that end.
func (s *State) SuggestedBowler() (int, bool) {
	if s.lastLastBowler == NoPlayer {
		return NoPlayer, false
	}
	return s.lastLastBowler, true
}

// ResolveWicket finishes r against the current bowler.
func (s *State) ResolveWicket(r *WicketResolver) (Wicket, error) {
	var bowler *int
	if s.bowler != NoPlayer {
		bowler = intPtr(s.bowler)
	}
	return r.Resolve(bowler)
}

func (s *State) battingTeam() *Team { return &s.teams[s.batting] }
func (s *State) bowlingTeam() *Team { return &s.teams[s.batting.Other()] }
func (s *State) striker() *Player   { return s.battingTeam().player(s.onStrike) }
func (s *State) currentBowler() *Player {
	return s.bowlingTeam().player(s.bowler)
}

func (s *State) swapStrike() {
	s.onStrike, s.offStrike = s.offStrike, s.onStrike
}
