package docstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApplyFields(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		doc    map[string]any
		fields map[string]any
		want   map[string]any
	}{
		{
			name:   "plain values overwrite",
			doc:    map[string]any{"name": "old", "keep": 1},
			fields: map[string]any{"name": "new"},
			want:   map[string]any{"name": "new", "keep": 1},
		},
		{
			name:   "server timestamp",
			doc:    map[string]any{},
			fields: map[string]any{"createdAt": ServerTimestamp},
			want:   map[string]any{"createdAt": now},
		},
		{
			name:   "union keeps order and skips duplicates",
			doc:    map[string]any{"tags": []any{"a", "b"}},
			fields: map[string]any{"tags": ArrayUnion("b", "c", "c")},
			want:   map[string]any{"tags": []any{"a", "b", "c"}},
		},
		{
			name:   "remove drops every equal element",
			doc:    map[string]any{"tags": []string{"a", "b", "a"}},
			fields: map[string]any{"tags": ArrayRemove("a")},
			want:   map[string]any{"tags": []any{"b"}},
		},
		{
			name:   "remove on non-array yields empty array",
			doc:    map[string]any{"tags": "scalar"},
			fields: map[string]any{"tags": ArrayRemove("a")},
			want:   map[string]any{"tags": []any{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			applyFields(tt.doc, tt.fields, now)
			assert.Equal(t, tt.want, tt.doc)
		})
	}
}

func TestUnionValues_DoesNotMutateInput(t *testing.T) {
	existing := []any{"a"}
	out := unionValues(existing, []any{"b"})

	assert.Equal(t, []any{"a"}, existing)
	assert.Equal(t, []any{"a", "b"}, out)
}

func TestNormalize_StructAndMapCompareEqual(t *testing.T) {
	type summary struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	assert.Equal(t,
		normalize(map[string]any{"id": "1", "name": "x"}),
		normalize(summary{ID: "1", Name: "x"}),
	)
}
