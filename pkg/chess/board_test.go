package chess_test

import (
	"testing"

	"github.com/TrickNextos/multiplayer-chess-api/pkg/chess"
	"github.com/stretchr/testify/assert"
)

func TestBoardMovePieceReportsCapture(t *testing.T) {
	b := &chess.Board{}
	b.Place(&chess.Piece{Color: chess.White, Kind: chess.Rook}, pos(0, 0))
	b.Place(&chess.Piece{Color: chess.Black, Kind: chess.Pawn}, pos(0, 1))

	captured := b.MovePiece(pos(0, 0), pos(0, 1))
	assert.True(t, captured)
	assert.Nil(t, b.Get(pos(0, 0)))

	moved := b.Get(pos(0, 1))
	assert.NotNil(t, moved)
	assert.True(t, moved.Moved)
	assert.Equal(t, chess.White, moved.Color)
}

func TestBoardMovePieceFromEmptySquareIsNoop(t *testing.T) {
	b := &chess.Board{}
	captured := b.MovePiece(pos(3, 3), pos(3, 4))
	assert.False(t, captured)
	assert.Nil(t, b.Get(pos(3, 4)))
}

func TestStandardBoardSetup(t *testing.T) {
	b := chess.NewStandardBoard()

	count := 0
	b.Each(func(p *chess.Piece) { count++ })
	assert.Equal(t, 32, count)

	wk := b.Get(pos(4, 7))
	assert.NotNil(t, wk)
	assert.Equal(t, chess.King, wk.Kind)
	assert.Equal(t, chess.White, wk.Color)
}
