package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPairKey_CanonicalOrder(t *testing.T) {
	// Act
	forward, err := NewPairKey("alice", "bob")
	require.NoError(t, err)
	reverse, err := NewPairKey("bob", "alice")
	require.NoError(t, err)

	// Assert
	assert.Equal(t, "alice", forward.First())
	assert.Equal(t, "bob", forward.Second())
	assert.True(t, forward.Equals(reverse))
	assert.Equal(t, "alice|bob", forward.String())
	assert.Equal(t, forward, reverse)
}

func TestNewPairKey_RejectsInvalidPairs(t *testing.T) {
	tests := []struct {
		name   string
		first  string
		second string
	}{
		{"empty first", "", "bob"},
		{"empty second", "alice", ""},
		{"both empty", "", ""},
		{"same id", "alice", "alice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := NewPairKey(tt.first, tt.second)
			assert.Error(t, err)
			assert.True(t, key.IsZero())
		})
	}
}

func TestPairKey_Contains(t *testing.T) {
	key, err := NewPairKey("s2", "s1")
	require.NoError(t, err)

	assert.True(t, key.Contains("s1"))
	assert.True(t, key.Contains("s2"))
	assert.False(t, key.Contains("s3"))
}
