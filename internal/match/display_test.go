package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		event Event
		want  string
		shown bool
	}{
		{Runs{N: 1}, "1 run", true},
		{Runs{N: 0}, "0 runs", true},
		{Runs{N: 4}, "4 runs", true},
		{WicketEvent{Wicket{HowOut: LBW}}, "wicket: LBW", true},
		{ExtraEvent{Extra{Runs: 1, Kind: NoBall}}, "extra: No ball", true},
		{EndOver{Summary: Summary{Runs: 12, Wickets: 1, Overs: Overs{Overs: 2}}}, "End of over: 1/12 (2.0)", true},
		{SelectBowler{Index: 3}, "", false},
	}
	for _, tt := range tests {
		got, shown := Describe(tt.event)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.shown, shown)
	}
}

func TestState_Matchup(t *testing.T) {
	s := newInnings(t)
	applyAll(t, s, Runs{N: 4})

	log := s.Log()
	assert.Equal(t, "Tigers P10 to Lions P0", s.Matchup(log[len(log)-1]))
	assert.Equal(t, "? to ?", s.Matchup(log[0]))
}

func TestPlayer_Lines(t *testing.T) {
	p := NewPlayer("Ada", "Lovelace", 0)
	p.RunsScored = 37
	p.BallsFaced = 41
	p.WicketsTaken = 2
	p.RunsConceded = 18
	p.OversBowled = Overs{Overs: 3, Balls: 2}

	assert.Equal(t, "Ada Lovelace: 37 (41)", p.BattingLine())
	assert.Equal(t, "Ada Lovelace: 2/18 (3.2)", p.BowlingLine())
	assert.Equal(t, "2/37", Team{Runs: 37, Wickets: 2}.ScoreLine())
}
