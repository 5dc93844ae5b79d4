package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/scricket/internal/match"
	"github.com/roach88/scricket/internal/testutil"
)

func intPtr(v int) *int { return &v }

func TestParseEvent(t *testing.T) {
	s, err := match.Replay(testutil.Opening("Lions", "Tigers", 11))
	require.NoError(t, err)

	tests := []struct {
		expr string
		want match.Event
	}{
		{"4", match.Runs{N: 4}},
		{" runs:0 ", match.Runs{N: 0}},
		{"extra:wide", match.ExtraEvent{Extra: match.Extra{Kind: match.Wide, Runs: 0}}},
		{"extra:bye", match.ExtraEvent{Extra: match.Extra{Kind: match.Bye, Runs: 1}}},
		{"extra:no_ball:4", match.ExtraEvent{Extra: match.Extra{Kind: match.NoBall, Runs: 4}}},
		{"wicket:bowled", match.WicketEvent{Wicket: match.Wicket{HowOut: match.Bowled, Bowler: intPtr(10)}}},
		{"wicket:caught:3", match.WicketEvent{Wicket: match.Wicket{
			HowOut: match.Caught, Bowler: intPtr(10), Detail: match.CaughtBy{Fielder: 3},
		}}},
		{"wicket:run_out:off_strike", match.WicketEvent{Wicket: match.Wicket{
			HowOut: match.RunOut, Bowler: intPtr(10), Detail: match.RunOutAt{Batter: match.OffStrike},
		}}},
		{"wicket:run_out:on_strike:7", match.WicketEvent{Wicket: match.Wicket{
			HowOut: match.RunOut, Bowler: intPtr(10), Detail: match.RunOutAt{Batter: match.OnStrike, Fielder: intPtr(7)},
		}}},
		{"on:3", match.SelectOnStrike{Index: 3}},
		{"off:4", match.SelectOffStrike{Index: 4}},
		{"bowler:9", match.SelectBowler{Index: 9}},
		{"start-innings:b", match.StartInnings{Side: match.SideB}},
		{"end-innings", match.EndInnings{}},
		{"start-over", match.StartOver{}},
		{"end-over", match.EndOver{Summary: match.Summary{Overs: match.Overs{Overs: 1}}}},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := ParseEvent(s, tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseEvent_EndOverUsesRunningTotal(t *testing.T) {
	s, err := match.Replay(append(testutil.Opening("Lions", "Tigers", 11), match.Runs{N: 4}, match.Runs{N: 2}))
	require.NoError(t, err)

	got, err := ParseEvent(s, "end-over")
	require.NoError(t, err)
	assert.Equal(t, match.EndOver{Summary: match.Summary{Runs: 6, Overs: match.Overs{Overs: 1}}}, got)
}

func TestParseEvent_Errors(t *testing.T) {
	s, err := match.Replay(testutil.Opening("Lions", "Tigers", 11))
	require.NoError(t, err)

	tests := []struct {
		expr string
		want string
	}{
		{"", "unknown event"},
		{"six", "unknown event"},
		{"runs", "want exactly one number"},
		{"runs:x", "is not a number"},
		{"4:1", "unknown event"},
		{"extra", "want extra:<kind>[:runs]"},
		{"extra:free_hit", "unknown extra kind"},
		{"wicket", "want wicket:<how_out>"},
		{"wicket:out", "unknown dismissal"},
		{"wicket:caught", "caught requires a fielder"},
		{"wicket:run_out", "run out requires the dismissed batter"},
		{"wicket:run_out:middle", "unknown end"},
		{"wicket:bowled:3", "takes no fielder"},
		{"on", "want exactly one number"},
		{"start-innings", "want start-innings:A or start-innings:B"},
		{"start-innings:C", "unknown side"},
		{"end-over:1", "takes no arguments"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			_, err := ParseEvent(s, tt.expr)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
