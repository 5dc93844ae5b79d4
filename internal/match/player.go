package match

import "strings"

// Attribution records who took a wicket, by index into the fielding
// team's roster.
type Attribution struct {
	Bowler  *int
	Fielder *int
}

// Player is a single player's match record. Batting and bowling figures
// live on the same record; which ones move depends on the innings.
type Player struct {
	FirstName string
	LastName  string

	// Order is the player's index in the team roster.
	Order int

	HowOut      HowOut
	Dismissal   *Attribution
	RunsScored  int
	BallsFaced  int
	BattingRank *int

	RunsConceded int
	WicketsTaken int
	OversBowled  Overs
	BowlingRank  *int

	// Extras is the bowler's personal ledger.
	Extras Extras
}

// NewPlayer returns a fresh record for the roster slot order.
func NewPlayer(first, last string, order int) Player {
	return Player{FirstName: first, LastName: last, Order: order, HowOut: DidNotBat}
}

// Name is the display name.
func (p Player) Name() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

func (p Player) String() string {
	return p.Name()
}

// HasBatted reports whether the player has walked out to bat.
func (p Player) HasBatted() bool {
	return p.BattingRank != nil
}

// HasBowled reports whether the player has been selected to bowl.
func (p Player) HasBowled() bool {
	return p.BowlingRank != nil
}

// bowlExtra applies an extra to the bowler's figures.
func (p *Player) bowlExtra(e Extra) {
	if e.IsLegalBall() {
		p.OversBowled.AddBowlerBall()
	}
	p.Extras.Record(e)
}

// clone copies p without sharing any pointer fields.
func (p Player) clone() Player {
	c := p
	c.BattingRank = cloneInt(p.BattingRank)
	c.BowlingRank = cloneInt(p.BowlingRank)
	if p.Dismissal != nil {
		c.Dismissal = &Attribution{
			Bowler:  cloneInt(p.Dismissal.Bowler),
			Fielder: cloneInt(p.Dismissal.Fielder),
		}
	}
	return c
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func intPtr(v int) *int {
	return &v
}
