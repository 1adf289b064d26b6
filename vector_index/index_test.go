package vector_index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceToScore(t *testing.T) {
	assert.Equal(t, 1.0, DistanceToScore(0))   // identical vectors
	assert.Equal(t, 0.5, DistanceToScore(1))   // orthogonal
	assert.Equal(t, 0.0, DistanceToScore(2))   // opposite
	assert.Equal(t, 1.0, DistanceToScore(-.1)) // clamped
	assert.Equal(t, 0.0, DistanceToScore(2.5)) // clamped
}

func TestOpen_RejectsInvalidConfig(t *testing.T) {
	_, err := Open(Config{Path: "", Dim: 768}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index path")

	_, err = Open(Config{Path: "index.db", Dim: 0}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dimension")
}
