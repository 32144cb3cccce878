package chess_test

import (
	"testing"

	"github.com/TrickNextos/multiplayer-chess-api/pkg/chess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPosition(t *testing.T) {
	tests := []struct {
		x, y  int
		valid bool
	}{
		{0, 0, true},
		{7, 7, true},
		{4, 3, true},
		{-1, 0, false},
		{0, -1, false},
		{8, 0, false},
		{0, 8, false},
	}
	for _, tc := range tests {
		_, ok := chess.NewPosition(tc.x, tc.y)
		assert.Equal(t, tc.valid, ok)
	}
}

func TestPositionAdd(t *testing.T) {
	p := chess.Position{X: 4, Y: 4}

	next, ok := p.Add(1, 1)
	require.True(t, ok)
	assert.Equal(t, chess.Position{X: 5, Y: 5}, next)

	unchanged, ok := p.Add(-10, 0)
	assert.False(t, ok)
	assert.Equal(t, p, unchanged)
}

func TestPositionString(t *testing.T) {
	tests := []struct {
		pos  chess.Position
		want string
	}{
		{chess.Position{X: 0, Y: 7}, "a1"},
		{chess.Position{X: 4, Y: 0}, "e8"},
		{chess.Position{X: 7, Y: 7}, "h1"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.pos.String())
	}
}
