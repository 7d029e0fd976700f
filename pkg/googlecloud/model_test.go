package googlecloud

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"5629499534213120", 5629499534213120, true},
		{"1", 1, true},
		{"0", 0, false},
		{"-4", 0, false},
		{"", 0, false},
		{"64f1c2aa9e", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseID(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestTaskKeyScopesByOwner(t *testing.T) {
	key, ok := taskKey("10", "20")
	assert.True(t, ok)
	assert.Equal(t, KindTask, key.Kind)
	assert.Equal(t, int64(20), key.ID)
	if assert.NotNil(t, key.Parent) {
		assert.Equal(t, KindUser, key.Parent.Kind)
		assert.Equal(t, int64(10), key.Parent.ID)
	}

	other, _ := taskKey("11", "20")
	assert.False(t, key.Equal(other))

	_, ok = taskKey("10", "not-an-id")
	assert.False(t, ok)
}
