package chess_test

import (
	"testing"

	"github.com/TrickNextos/multiplayer-chess-api/pkg/chess"
	"github.com/stretchr/testify/assert"
)

func TestKindDirections(t *testing.T) {
	assert.Equal(t, []int{0, 1}, queenDirs())
	assert.True(t, chess.Queen.Has(0))
	assert.True(t, chess.Queen.Has(1))
	assert.False(t, chess.Queen.Has(5))
	assert.True(t, chess.Knight.Has(5))
}

func queenDirs() []int {
	return chess.Queen.Directions()
}

func TestPieceFilename(t *testing.T) {
	tests := []struct {
		p    chess.Piece
		want string
	}{
		{chess.Piece{Color: chess.White, Kind: chess.Rook}, "wr"},
		{chess.Piece{Color: chess.Black, Kind: chess.Pawn}, "bp"},
		{chess.Piece{Color: chess.White, Kind: chess.Knight}, "wn"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.p.Filename())
	}
}
