package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAction(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, a Action)
	}{
		{
			name:  "diary create",
			input: `{"type":"CREATE","data":{"id":3,"content":"D","emotionId":2,"date":1700000000000}}`,
			check: func(t *testing.T, a Action) {
				c, ok := a.(Create)
				require.True(t, ok)
				assert.Equal(t, ID("3"), c.Record.ID)
				assert.Equal(t, "D", c.Record.Content)
				assert.Equal(t, Emotion(2), c.Record.Emotion)
				assert.Equal(t, int64(1700000000000), c.Record.Millis())
			},
		},
		{
			name:  "todo create with newItem",
			input: `{"type":"CREATE","newItem":{"id":3,"content":"신라면","isDone":false,"createDate":1700000000000}}`,
			check: func(t *testing.T, a Action) {
				c, ok := a.(Create)
				require.True(t, ok)
				assert.Equal(t, ID("3"), c.Record.ID)
				assert.Equal(t, "신라면", c.Record.Content)
				assert.Equal(t, int64(1700000000000), c.Record.Millis())
			},
		},
		{
			name:  "todo update toggles",
			input: `{"type":"UPDATE","id":1}`,
			check: func(t *testing.T, a Action) {
				assert.Equal(t, Toggle("1"), a)
			},
		},
		{
			name:  "diary update replaces",
			input: `{"type":"UPDATE","data":{"id":"mock2","content":"edited","emotionId":5,"date":0}}`,
			check: func(t *testing.T, a Action) {
				u, ok := a.(Update)
				require.True(t, ok)
				assert.Equal(t, ID("mock2"), u.ID)
				require.NotNil(t, u.Patch.Content)
				assert.Equal(t, "edited", *u.Patch.Content)
				require.NotNil(t, u.Patch.Emotion)
				assert.Equal(t, Emotion(5), *u.Patch.Emotion)
			},
		},
		{
			name:  "delete by targetId",
			input: `{"type":"DELETE","targetId":"mock1"}`,
			check: func(t *testing.T, a Action) {
				assert.Equal(t, Delete{ID: "mock1"}, a)
			},
		},
		{
			name:  "delete by numeric id",
			input: `{"type":"DELETE","id":2}`,
			check: func(t *testing.T, a Action) {
				assert.Equal(t, Delete{ID: "2"}, a)
			},
		},
		{
			name:  "init",
			input: `{"type":"INIT","data":[{"id":"mock1","content":"mock1","emotionId":1,"date":1},{"id":"mock2","content":"mock2","emotionId":2,"date":2}]}`,
			check: func(t *testing.T, a Action) {
				in, ok := a.(Init)
				require.True(t, ok)
				assert.Equal(t, []ID{"mock1", "mock2"}, ids(in.Records))
			},
		},
		{
			name:  "init without data empties",
			input: `{"type":"INIT"}`,
			check: func(t *testing.T, a Action) {
				in, ok := a.(Init)
				require.True(t, ok)
				assert.Empty(t, in.Records)
			},
		},
		{
			name:  "lower case type",
			input: `{"type":"delete","id":"0"}`,
			check: func(t *testing.T, a Action) {
				assert.Equal(t, ActionDelete, a.Name())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := DecodeAction([]byte(tt.input))
			require.NoError(t, err)
			tt.check(t, a)
		})
	}
}

func TestDecodeAction_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "unknown type", input: `{"type":"RESET"}`, wantErr: ErrUnknownAction},
		{name: "missing type", input: `{"id":1}`, wantErr: ErrUnknownAction},
		{name: "malformed json", input: `{"type":`, wantErr: ErrInvalidData},
		{name: "create without payload", input: `{"type":"CREATE"}`, wantErr: ErrInvalidData},
		{name: "create without id", input: `{"type":"CREATE","data":{"content":"x"}}`, wantErr: ErrInvalidID},
		{name: "delete without id", input: `{"type":"DELETE"}`, wantErr: ErrInvalidID},
		{name: "update with fractional id", input: `{"type":"UPDATE","id":1.5}`, wantErr: ErrInvalidID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := DecodeAction([]byte(tt.input))
			assert.Nil(t, a)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
