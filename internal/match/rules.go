package match

// Check reports whether ev may be applied now, without applying it.
func (s *State) Check(ev Event) error {
	if ev == nil {
		return preconditionf(Kind(-1), "nil event")
	}
	switch e := ev.(type) {
	case Runs:
		if e.N < 0 {
			return preconditionf(e.Kind(), "negative runs %d", e.N)
		}
		return s.checkDelivery(e.Kind())
	case ExtraEvent:
		if !e.Extra.Kind.Valid() {
			return preconditionf(e.Kind(), "unknown extra kind %d", int(e.Extra.Kind))
		}
		if e.Runs < 0 {
			return preconditionf(e.Kind(), "negative runs %d", e.Runs)
		}
		return s.checkDelivery(e.Kind())
	case WicketEvent:
		return s.checkWicket(e.Wicket)
	case StartOver, EndOver:
		if !s.inProgress {
			return preconditionf(ev.Kind(), "no innings in progress")
		}
	case StartInnings:
		if !e.Side.Valid() {
			return preconditionf(e.Kind(), "unknown side %s", e.Side)
		}
		if s.teamsSubmitted < 2 {
			return preconditionf(e.Kind(), "both teams must be submitted first")
		}
		if s.inProgress {
			return preconditionf(e.Kind(), "innings %d still in progress", s.innings)
		}
	case EndInnings:
		if !s.inProgress {
			return preconditionf(e.Kind(), "no innings in progress")
		}
	case SelectOnStrike:
		return s.checkBatter(e.Kind(), e.Index, s.onStrike, s.offStrike)
	case SelectOffStrike:
		return s.checkBatter(e.Kind(), e.Index, s.offStrike, s.onStrike)
	case SelectBowler:
		if !s.inProgress {
			return preconditionf(e.Kind(), "no innings in progress")
		}
		if s.bowler != NoPlayer {
			return preconditionf(e.Kind(), "bowler already selected")
		}
		if !s.inRoster(s.batting.Other(), e.Index) {
			return lookupError(e.Kind(), s.batting.Other(), e.Index, s.teams[s.batting.Other()].Len())
		}
	case AddPlayer:
		if want := s.teams[s.batting].Len(); e.Player.Order != want {
			return preconditionf(e.Kind(), "player order %d, next roster slot is %d", e.Player.Order, want)
		}
	case SubmitTeam:
		if s.innings > 0 {
			return preconditionf(e.Kind(), "teams cannot be submitted once play has started")
		}
		if s.teamsSubmitted >= 2 {
			return preconditionf(e.Kind(), "both teams already submitted")
		}
	default:
		return preconditionf(ev.Kind(), "unsupported event %T", ev)
	}
	return nil
}

func (s *State) inRoster(side Side, i int) bool {
	return i >= 0 && i < s.teams[side].Len()
}

func (s *State) checkDelivery(kind Kind) error {
	if !s.inProgress {
		return preconditionf(kind, "no innings in progress")
	}
	if s.onStrike == NoPlayer || s.offStrike == NoPlayer {
		return preconditionf(kind, "both batters must be selected")
	}
	if s.bowler == NoPlayer {
		return preconditionf(kind, "no bowler selected")
	}
	return nil
}

func (s *State) checkWicket(w Wicket) error {
	if err := s.checkDelivery(KindWicket); err != nil {
		return err
	}
	if err := w.check(); err != nil {
		return wrapRule(KindWicket, err)
	}
	fielding := s.batting.Other()
	size := s.teams[fielding].Len()
	if w.Bowler != nil && !s.inRoster(fielding, *w.Bowler) {
		return lookupError(KindWicket, fielding, *w.Bowler, size)
	}
	if f := w.Fielder(); f != nil && !s.inRoster(fielding, *f) {
		return lookupError(KindWicket, fielding, *f, size)
	}
	return nil
}

func (s *State) checkBatter(kind Kind, index, slot, other int) error {
	if !s.inProgress {
		return preconditionf(kind, "no innings in progress")
	}
	if slot != NoPlayer {
		return preconditionf(kind, "batter already selected")
	}
	if !s.inRoster(s.batting, index) {
		return lookupError(kind, s.batting, index, s.teams[s.batting].Len())
	}
	if index == other {
		return preconditionf(kind, "player %d is already batting", index)
	}
	if p := s.teams[s.batting].Players[index]; !p.HowOut.CanBat() {
		return preconditionf(kind, "%s is out (%s)", p.Name(), p.HowOut)
	}
	return nil
}

func (s *State) effect(ev Event) Hint {
	switch e := ev.(type) {
	case Runs:
		return s.scoreRuns(e.N)
	case ExtraEvent:
		return s.scoreExtra(e.Extra)
	case WicketEvent:
		return s.takeWicket(e.Wicket)
	case StartOver:
	case EndOver:
		s.endOver()
	case StartInnings:
		s.batting = e.Side
		s.innings++
		s.inProgress = true
	case EndInnings:
		s.endInnings()
	case SelectOnStrike:
		s.onStrike = e.Index
		s.sendIn(e.Index, OnStrike)
	case SelectOffStrike:
		s.offStrike = e.Index
		s.sendIn(e.Index, OffStrike)
	case SelectBowler:
		s.bowler = e.Index
		if p := s.currentBowler(); p.BowlingRank == nil {
			p.BowlingRank = intPtr(s.bowlingTeam().nextBowlingRank())
		}
	case AddPlayer:
		s.battingTeam().addPlayer(e.Player)
	case SubmitTeam:
		s.battingTeam().Name = e.Name
		s.teamsSubmitted++
		s.batting = SideB
	}
	return HintNone
}

// sendIn marks a batter as in. Openers take ranks 0 and 1; later batters
// take wickets+1. A returning batter keeps the first rank.
func (s *State) sendIn(index int, end End) {
	p := s.battingTeam().player(index)
	if p.BattingRank == nil {
		rank := s.battingTeam().Wickets + 1
		if s.battingTeam().Wickets == 0 {
			rank = int(end)
		}
		p.BattingRank = intPtr(rank)
	}
	p.HowOut = NotOut
}

func (s *State) scoreRuns(n int) Hint {
	striker := s.striker()
	striker.RunsScored += n
	striker.BallsFaced++

	bowler := s.currentBowler()
	bowler.RunsConceded += n
	bowler.OversBowled.AddBowlerBall()

	team := s.battingTeam()
	team.Runs += n
	team.Overs.AddBall()

	if n%2 == 1 {
		s.swapStrike()
	}
	return s.afterLegalBall()
}

func (s *State) scoreExtra(x Extra) Hint {
	team := s.battingTeam()
	team.Extras.Record(x)
	team.Runs += x.TeamRuns()

	s.currentBowler().bowlExtra(x)

	striker := s.striker()
	switch x.Kind {
	case NoBall:
		striker.RunsScored += x.Runs
		striker.BallsFaced++
	case Bye, LegBye:
		striker.BallsFaced++
		team.Overs.AddBall()
	}

	if x.Runs%2 == 1 {
		s.swapStrike()
	}
	if x.IsLegalBall() {
		return s.afterLegalBall()
	}
	return HintNone
}

func (s *State) takeWicket(w Wicket) Hint {
	if w.DismissedEnd() == OffStrike {
		s.swapStrike()
	}

	out := s.striker()
	out.HowOut = w.HowOut
	out.Dismissal = &Attribution{Bowler: cloneInt(w.Bowler), Fielder: w.Fielder()}

	team := s.battingTeam()
	team.Wickets++
	team.Overs.AddBall()

	bowler := s.currentBowler()
	bowler.WicketsTaken++
	bowler.OversBowled.AddBowlerBall()

	s.onStrike = NoPlayer

	if team.Wickets >= team.allOutAt() {
		s.derive(EndInnings{})
		s.derive(StartInnings{Side: s.batting})
		return HintSelectBatter
	}
	return s.afterLegalBall()
}

func (s *State) afterLegalBall() Hint {
	if !s.battingTeam().Overs.Complete() {
		return HintNone
	}
	s.derive(EndOver{Summary: s.overSummary()})
	return HintSelectBowler
}

// overSummary is the batting total as it stands once the over closes.
func (s *State) overSummary() Summary {
	t := s.battingTeam()
	return Summary{Runs: t.Runs, Wickets: t.Wickets, Overs: Overs{Overs: t.Overs.Overs + 1}}
}

func (s *State) endOver() {
	if s.bowler != NoPlayer {
		s.lastLastBowler = s.lastBowler
		s.lastBowler = s.bowler
	}
	s.bowler = NoPlayer
	s.swapStrike()
	s.battingTeam().Overs.EndOver()
}

func (s *State) endInnings() {
	if team := s.battingTeam(); team.Overs.Complete() {
		team.Overs.EndOver()
	}
	s.batting = s.batting.Other()
	s.onStrike = NoPlayer
	s.offStrike = NoPlayer
	s.bowler = NoPlayer
	s.lastBowler = NoPlayer
	s.lastLastBowler = NoPlayer
	s.inProgress = false
}
