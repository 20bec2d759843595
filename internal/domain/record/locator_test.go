package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFind(t *testing.T) {
	records := sample()

	tests := []struct {
		name    string
		raw     any
		found   bool
		content string
	}{
		{name: "string id", raw: "2", found: true, content: "C"},
		{name: "int id", raw: 2, found: true, content: "C"},
		{name: "float id from json", raw: float64(0), found: true, content: "A"},
		{name: "missing id", raw: 99, found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseID(tt.raw)
			require.NoError(t, err)

			rec, ok := Find(records, id)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, id, rec.ID)
				assert.Equal(t, tt.content, rec.Content)
			} else {
				assert.Equal(t, Record{}, rec)
			}
		})
	}
}

func TestLocate(t *testing.T) {
	records := sample()

	hit := Locate(records, "0")
	assert.True(t, hit.Found)
	assert.Equal(t, "A", hit.Record.Content)

	miss := Locate(records, "nope")
	assert.False(t, miss.Found)

	assert.False(t, Locate(nil, "0").Found)
}
