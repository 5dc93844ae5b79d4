package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIRObjectSortedKeys(t *testing.T) {
	obj := IRObject{"c": IRInt(1), "a": IRInt(2), "b": IRInt(3)}
	assert.Equal(t, []string{"a", "b", "c"}, obj.SortedKeys())
	assert.Empty(t, IRObject{}.SortedKeys())
}

func TestIRObjectSortedKeysUTF16Order(t *testing.T) {
	// U+1F600 encodes as a surrogate pair starting 0xD83D, which sorts
	// before U+FF5E in UTF-16 but after it in UTF-8 byte order.
	obj := IRObject{"\uFF5E": IRInt(1), "\U0001F600": IRInt(2)}
	assert.Equal(t, []string{"\U0001F600", "\uFF5E"}, obj.SortedKeys())
}

func TestParseObject(t *testing.T) {
	obj, err := ParseObject([]byte(`{"type":"extra","extra":{"runs":2,"kind":"wide"},"tags":["a",true]}`))
	require.NoError(t, err)

	assert.Equal(t, IRString("extra"), obj["type"])
	assert.Equal(t, IRObject{"runs": IRInt(2), "kind": IRString("wide")}, obj["extra"])
	assert.Equal(t, IRArray{IRString("a"), IRBool(true)}, obj["tags"])
}

func TestParseObjectRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"float", `{"runs":1.5}`},
		{"null", `{"bowler":null}`},
		{"not an object", `[1,2]`},
		{"malformed", `{"runs":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseObject([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}
