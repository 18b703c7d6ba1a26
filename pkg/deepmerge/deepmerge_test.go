package deepmerge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMerge(t *testing.T) {
	tests := []struct {
		name     string
		base     map[string]interface{}
		override map[string]interface{}
		want     map[string]interface{}
	}{
		{
			name:     "override scalar wins",
			base:     map[string]interface{}{"slot_duration_minutes": 60},
			override: map[string]interface{}{"slot_duration_minutes": 30},
			want:     map[string]interface{}{"slot_duration_minutes": 30},
		},
		{
			name:     "base keys survive",
			base:     map[string]interface{}{"slot_strategy": "fixed", "requires_confirmation": true},
			override: map[string]interface{}{"slot_strategy": "dynamic"},
			want:     map[string]interface{}{"slot_strategy": "dynamic", "requires_confirmation": true},
		},
		{
			name: "nested maps merge recursively",
			base: map[string]interface{}{
				"notifications": map[string]interface{}{"email": true, "sms": false},
			},
			override: map[string]interface{}{
				"notifications": map[string]interface{}{"sms": true},
			},
			want: map[string]interface{}{
				"notifications": map[string]interface{}{"email": true, "sms": true},
			},
		},
		{
			name:     "lists replace wholesale",
			base:     map[string]interface{}{"tags": []interface{}{"a", "b"}},
			override: map[string]interface{}{"tags": []interface{}{"c"}},
			want:     map[string]interface{}{"tags": []interface{}{"c"}},
		},
		{
			name:     "map replaced by scalar",
			base:     map[string]interface{}{"limit": map[string]interface{}{"soft": 1}},
			override: map[string]interface{}{"limit": 5},
			want:     map[string]interface{}{"limit": 5},
		},
		{
			name:     "nil base",
			base:     nil,
			override: map[string]interface{}{"a": 1},
			want:     map[string]interface{}{"a": 1},
		},
		{
			name:     "nil override",
			base:     map[string]interface{}{"a": 1},
			override: nil,
			want:     map[string]interface{}{"a": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.base, tt.override)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	base := map[string]interface{}{
		"nested": map[string]interface{}{"a": 1},
	}
	override := map[string]interface{}{
		"nested": map[string]interface{}{"b": 2},
	}

	Merge(base, override)

	assert.Equal(t, map[string]interface{}{"a": 1}, base["nested"])
	assert.Equal(t, map[string]interface{}{"b": 2}, override["nested"])
}
