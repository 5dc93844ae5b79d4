package codec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/scricket/internal/match"
)

func ptr(v int) *int { return &v }

// everyVariant covers each event variant with its optional fields both set
// and unset.
func everyVariant() []match.Event {
	scored := match.NewPlayer("Ada", "Lovelace", 3)
	scored.HowOut = match.Caught
	scored.Dismissal = &match.Attribution{Bowler: ptr(4)}
	scored.RunsScored = 12
	scored.BallsFaced = 20
	scored.BattingRank = ptr(0)
	scored.OversBowled = match.Overs{Overs: 2, Balls: 1}
	scored.BowlingRank = ptr(1)
	scored.Extras = match.Extras{Wides: 2, LegByes: 1}

	return []match.Event{
		match.AddPlayer{Player: match.NewPlayer("Grace", "Hopper", 0)},
		match.AddPlayer{Player: scored},
		match.SubmitTeam{Name: "Lions"},
		match.SubmitTeam{Name: ""},
		match.StartInnings{Side: match.SideB},
		match.SelectOnStrike{Index: 0},
		match.SelectOffStrike{Index: 1},
		match.SelectBowler{Index: 10},
		match.StartOver{},
		match.Runs{N: 0},
		match.Runs{N: 6},
		match.ExtraEvent{Extra: match.Extra{Runs: 0, Kind: match.Wide}},
		match.ExtraEvent{Extra: match.Extra{Runs: 5, Kind: match.PenaltyRuns}},
		match.WicketEvent{Wicket: match.Wicket{HowOut: match.Bowled, Bowler: ptr(10)}},
		match.WicketEvent{Wicket: match.Wicket{HowOut: match.Caught, Bowler: ptr(10), Detail: match.CaughtBy{Fielder: 0}}},
		match.WicketEvent{Wicket: match.Wicket{HowOut: match.RunOut, Detail: match.RunOutAt{Batter: match.OffStrike}}},
		match.WicketEvent{Wicket: match.Wicket{HowOut: match.RunOut, Detail: match.RunOutAt{Batter: match.OnStrike, Fielder: ptr(2)}}},
		match.EndOver{Summary: match.Summary{Runs: 17, Wickets: 2, Overs: match.Overs{Overs: 1}}},
		match.EndInnings{},
	}
}

func TestSerialize_RoundTrip(t *testing.T) {
	events := everyVariant()
	for _, f := range []Format{Binary, Text, JSON} {
		t.Run(f.String(), func(t *testing.T) {
			data, err := Serialize(events, f)
			require.NoError(t, err)

			got, err := Deserialize(data, f)
			require.NoError(t, err)
			assert.Equal(t, events, got)
		})
	}
}

func TestSerialize_EmptyLog(t *testing.T) {
	for _, f := range []Format{Binary, Text, JSON} {
		data, err := Serialize(nil, f)
		require.NoError(t, err)
		got, err := Deserialize(data, f)
		require.NoError(t, err)
		assert.Empty(t, got)
	}
}

func TestSerialize_BinaryHeader(t *testing.T) {
	data, err := Serialize([]match.Event{match.Runs{N: 1}}, Binary)
	require.NoError(t, err)
	assert.Equal(t, "SCRK", string(data[:4]))
	assert.Equal(t, byte(Version), data[4])
}

func TestSerialize_CanonicalJSON(t *testing.T) {
	events := []match.Event{match.SelectBowler{Index: 3}, match.Runs{N: 4}}

	a, err := Serialize(events, JSON)
	require.NoError(t, err)
	b, err := Serialize(events, JSON)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, `{"events":[{"index":3,"type":"select_bowler"},{"runs":4,"type":"runs"}],"version":1}`, string(a))
}

func TestSerialize_TextIsReadable(t *testing.T) {
	data, err := Serialize([]match.Event{
		match.ExtraEvent{Extra: match.Extra{Runs: 1, Kind: match.LegBye}},
	}, Text)
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, "version: 1")
	assert.Contains(t, text, "type: extra")
	assert.Contains(t, text, "extra: leg_bye")
}

func TestDeserialize_AllOrNothing(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		index int
	}{
		{"unknown type", "version: 1\nevents:\n  - type: runs\n    runs: 1\n  - type: declare\n", 1},
		{"missing field", "version: 1\nevents:\n  - type: select_bowler\n", 0},
		{"unexpected field", "version: 1\nevents:\n  - type: runs\n    runs: 1\n    side: A\n", 0},
		{"bad extra kind", "version: 1\nevents:\n  - type: extra\n    runs: 1\n    extra: overthrow\n", 0},
		{"bad side", "version: 1\nevents:\n  - type: start_innings\n    side: C\n", 0},
		{"wrong version", "version: 2\nevents: []\n", -1},
		{"unknown key", "version: 1\nevents:\n  - type: runs\n    runs: 1\n    wagon_wheel: 3\n", -1},
		{"not yaml", "{{{", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := Deserialize([]byte(tt.data), Text)
			require.Error(t, err)
			assert.Nil(t, events)

			var de *DecodeError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.index, de.Index)
			assert.Equal(t, Text, de.Format)
		})
	}
}

func TestDeserialize_BinaryCorruption(t *testing.T) {
	data, err := Serialize(everyVariant(), Binary)
	require.NoError(t, err)

	_, err = Deserialize([]byte("JUNK"), Binary)
	assert.True(t, IsDecodeError(err))

	_, err = Deserialize(data[:len(data)/2], Binary)
	assert.True(t, IsDecodeError(err))

	bad := append([]byte{}, data...)
	bad[4] = 9
	_, err = Deserialize(bad, Binary)
	require.True(t, IsDecodeError(err))
	assert.Contains(t, err.Error(), "unsupported version 9")
}

func TestDeserialize_JSONRejectsUnknownFields(t *testing.T) {
	_, err := Deserialize([]byte(`{"version":1,"events":[{"type":"runs","runs":1,"boundary":true}]}`), JSON)
	assert.True(t, IsDecodeError(err))
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"binary", "text", "json", "yaml", "msgpack"} {
		_, err := ParseFormat(name)
		assert.NoError(t, err, name)
	}
	_, err := ParseFormat("bincode")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "bincode"))
}

func TestPayload_RoundTrip(t *testing.T) {
	for _, ev := range everyVariant() {
		data, err := CanonicalPayload(ev)
		require.NoError(t, err)

		got, err := EventFromPayload(data)
		require.NoError(t, err, string(data))
		assert.Equal(t, ev, got)
	}
}

func TestDigest(t *testing.T) {
	a := []match.Event{match.Runs{N: 1}, match.Runs{N: 2}}
	b := []match.Event{match.Runs{N: 2}, match.Runs{N: 1}}

	da, err := Digest(a)
	require.NoError(t, err)
	again, err := Digest(a)
	require.NoError(t, err)
	db, err := Digest(b)
	require.NoError(t, err)

	assert.Equal(t, da, again)
	assert.NotEqual(t, da, db, "order matters")
	assert.Len(t, da, 64)
}
