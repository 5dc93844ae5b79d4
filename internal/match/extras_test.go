package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtras_Record(t *testing.T) {
	var x Extras
	x.Record(Extra{Runs: 2, Kind: Wide})
	x.Record(Extra{Runs: 4, Kind: NoBall})
	x.Record(Extra{Runs: 1, Kind: Bye})
	x.Record(Extra{Runs: 3, Kind: LegBye})
	x.Record(Extra{Runs: 5, Kind: PenaltyRuns})

	assert.Equal(t, Extras{Wides: 3, NoBalls: 1, Byes: 1, LegByes: 3}, x)
	assert.Equal(t, 8, x.Total())
	assert.Equal(t, "W: 3, NB: 1, B: 1, LB: 3", x.String())
}

func TestExtra_TeamRuns(t *testing.T) {
	tests := []struct {
		extra Extra
		want  int
		legal bool
	}{
		{Extra{Runs: 0, Kind: Wide}, 1, false},
		{Extra{Runs: 2, Kind: NoBall}, 3, false},
		{Extra{Runs: 2, Kind: Bye}, 2, true},
		{Extra{Runs: 1, Kind: LegBye}, 1, true},
		{Extra{Runs: 5, Kind: PenaltyRuns}, 5, false},
	}
	for _, tt := range tests {
		t.Run(tt.extra.Kind.Name(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.extra.TeamRuns())
			assert.Equal(t, tt.legal, tt.extra.IsLegalBall())
		})
	}
}

func TestExtraKind_Parse(t *testing.T) {
	for _, k := range ExtraKinds() {
		got, err := ParseExtraKind(k.Name())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseExtraKind("overthrow")
	assert.Error(t, err)
	assert.Equal(t, "Leg bye", LegBye.String())
}

func TestExtraKind_MinimumRuns(t *testing.T) {
	assert.Equal(t, 0, Wide.MinimumRuns())
	assert.Equal(t, 0, NoBall.MinimumRuns())
	assert.Equal(t, 1, Bye.MinimumRuns())
	assert.Equal(t, 1, PenaltyRuns.MinimumRuns())
}
