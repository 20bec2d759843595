package client

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"recordbook/internal/domain/record"
)

var sampleList = record.ListResponse{
	Kind:  record.KindDiary,
	Total: 2,
	Records: []record.Item{
		{ID: "mock1", Content: "첫 번째 일기", EmotionID: 1, Date: 1700000000000},
		{ID: "mock2", Content: "두 번째 일기", EmotionID: 4, Date: 1700000000000},
	},
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "", want: FormatText},
		{in: "JSON", want: FormatJSON},
		{in: "table", want: FormatTable},
		{in: "yaml", want: FormatYAML},
		{in: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrinter_Records(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewPrinter(&buf, FormatText).Records(sampleList))

		assert.Contains(t, buf.String(), "mock1")
		assert.Contains(t, buf.String(), "●●●●·")
		assert.Contains(t, buf.String(), "2 record(s)")
	})

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewPrinter(&buf, FormatTable).Records(sampleList))

		assert.Contains(t, buf.String(), "EMOTION")
		assert.Contains(t, buf.String(), "두 번째 일기")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewPrinter(&buf, FormatJSON).Records(sampleList))

		var got record.ListResponse
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, sampleList, got)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewPrinter(&buf, FormatYAML).Records(sampleList))

		var got map[string]any
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "diary", got["kind"])

		out := buf.String()
		assert.Contains(t, out, "emotionId: 4")
		assert.Contains(t, out, "isDone: false")
		assert.NotContains(t, out, "emotionid")

		var list record.ListResponse
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &list))
		assert.Equal(t, sampleList, list)
	})

	t.Run("empty search", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewPrinter(&buf, FormatText).Records(record.ListResponse{Kind: record.KindTodo, Query: "zzz"}))

		assert.Contains(t, buf.String(), `No records match "zzz"`)
	})
}

func TestPrinter_Mutation(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, FormatText)

	require.NoError(t, p.Mutation(record.KindTodo, record.MutationResponse{Action: record.ActionDelete, Total: 3}))
	assert.Contains(t, buf.String(), "delete: nothing changed")

	buf.Reset()
	item := record.Item{ID: "3", Content: "진라면", IsDone: true}
	require.NoError(t, p.Mutation(record.KindTodo, record.MutationResponse{Action: record.ActionUpdate, Affected: 1, Total: 4, Record: &item}))
	assert.Contains(t, buf.String(), "[x] 3")
	assert.Contains(t, buf.String(), "update: 1 record(s) affected, 4 in book")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "짜파게티", truncate("짜파게티", 4))
	assert.Equal(t, "짜파…", truncate("짜파게티", 3))
}
