package record

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		raw     any
		want    ID
		wantErr bool
	}{
		{name: "int", raw: 3, want: "3"},
		{name: "int64", raw: int64(42), want: "42"},
		{name: "uint", raw: uint(7), want: "7"},
		{name: "string", raw: "mock1", want: "mock1"},
		{name: "id", raw: ID("x"), want: "x"},
		{name: "integral float", raw: float64(2), want: "2"},
		{name: "json number", raw: json.Number("12"), want: "12"},
		{name: "fractional float", raw: 1.5, wantErr: true},
		{name: "empty string", raw: "  ", wantErr: true},
		{name: "padded string", raw: " 1 ", wantErr: true},
		{name: "trailing tab", raw: "mock1\t", wantErr: true},
		{name: "nil", raw: nil, wantErr: true},
		{name: "bool", raw: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseID(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestID_UnmarshalJSON(t *testing.T) {
	var payload struct {
		A ID `json:"a"`
		B ID `json:"b"`
	}

	err := json.Unmarshal([]byte(`{"a": 7, "b": "7"}`), &payload)
	require.NoError(t, err)
	assert.Equal(t, payload.A, payload.B)

	var bad ID
	assert.Error(t, json.Unmarshal([]byte(`{}`), &bad))
	assert.ErrorIs(t, json.Unmarshal([]byte(`" 1 "`), &bad), ErrInvalidID)
}

func TestMustID_Panics(t *testing.T) {
	assert.Equal(t, ID("5"), MustID(5))
	assert.Panics(t, func() { MustID("") })
}
