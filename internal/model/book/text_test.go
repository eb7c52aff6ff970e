package book

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Text
	}{
		{name: "string", in: `"Dune"`, want: "Dune"},
		{name: "empty string", in: `""`, want: ""},
		{name: "escaped string", in: `"Frank \"F\" Herbert"`, want: `Frank "F" Herbert`},
		{name: "integer", in: `1965`, want: "1965"},
		{name: "float", in: `19.5`, want: "19.5"},
		{name: "exponent", in: `1e2`, want: "100"},
		{name: "trailing zeros", in: `2.50`, want: "2.5"},
		{name: "negative", in: `-12`, want: "-12"},
		{name: "zero", in: `0`, want: ""},
		{name: "negative zero", in: `-0.0`, want: ""},
		{name: "true", in: `true`, want: "true"},
		{name: "false", in: `false`, want: ""},
		{name: "null", in: `null`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Text
			require.NoError(t, json.Unmarshal([]byte(tt.in), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestText_RejectsObjectsAndArrays(t *testing.T) {
	var p CreateBookPayload

	err := json.Unmarshal([]byte(`{"title":{"nested":true}}`), &p)
	assert.ErrorIs(t, err, ErrNotText)

	err = json.Unmarshal([]byte(`{"genre":["sci-fi"]}`), &p)
	assert.ErrorIs(t, err, ErrNotText)
}

func TestText_AbsentFieldStaysEmpty(t *testing.T) {
	var p PatchBookPayload
	require.NoError(t, json.Unmarshal([]byte(`{"genre":"Space Opera"}`), &p))

	assert.Equal(t, Fields{Genre: "Space Opera"}, p.Fields())
}
