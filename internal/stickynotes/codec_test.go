package stickynotes

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeNotes(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    []Note
		wantErr bool
	}{
		{name: "nil data", data: "", want: []Note{}},
		{name: "whitespace", data: " \n", want: []Note{}},
		{name: "json null", data: "null", want: []Note{}},
		{name: "missing notes key", data: `{"other":1}`, want: []Note{}},
		{name: "null notes", data: `{"notes":null}`, want: []Note{}},
		{name: "empty notes", data: `{"notes":[]}`, want: []Note{}},
		{
			name: "current layout",
			data: `{"notes":[{"id":"a","title":"T","body":"B"},{"id":"b","body":"only body"}]}`,
			want: []Note{{ID: "a", Title: "T", Body: "B"}, {ID: "b", Body: "only body"}},
		},
		{
			name: "legacy layout",
			data: `{"notes":[{"noteID":"x","noteHead":"H","noteBody":"B"}]}`,
			want: []Note{{ID: "x", Title: "H", Body: "B"}},
		},
		{name: "missing id", data: `{"notes":[{"title":"T","body":"B"}]}`, wantErr: true},
		{name: "duplicate id", data: `{"notes":[{"id":"a"},{"id":"a"}]}`, wantErr: true},
		{name: "not json", data: `{notes`, wantErr: true},
		{name: "notes not a list", data: `{"notes":"x"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeNotes([]byte(tt.data))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedData)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeNotes_Layout(t *testing.T) {
	data, err := encodeNotes(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"notes":[]}`, string(data))

	data, err = encodeNotes([]Note{{ID: "a", Title: "", Body: "line1\nline2"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"notes":[{"id":"a","title":"","body":"line1\nline2"}]}`, string(data))
	assert.True(t, strings.Contains(string(data), "\n  "), "document should be indented")

	back, err := decodeNotes(data)
	require.NoError(t, err)
	assert.Equal(t, []Note{{ID: "a", Title: "", Body: "line1\nline2"}}, back)
}

func TestNewID(t *testing.T) {
	counts := make(map[rune]int)
	for range 2000 {
		id, err := NewID()
		require.NoError(t, err)
		require.Regexp(t, idPattern, id)
		for _, r := range id {
			counts[r]++
		}
	}
	// 32000 draws over 62 symbols; every symbol should appear.
	assert.Len(t, counts, len(idAlphabet))
}
