package chess_test

import (
	"testing"

	"github.com/TrickNextos/multiplayer-chess-api/pkg/chess"
	"github.com/stretchr/testify/assert"
)

func TestKnightMovesFromCenter(t *testing.T) {
	b := &chess.Board{}
	b.Place(&chess.Piece{Color: chess.White, Kind: chess.Knight}, pos(4, 4))
	b.Place(&chess.Piece{Color: chess.White, Kind: chess.King}, pos(0, 7))
	b.Place(&chess.Piece{Color: chess.Black, Kind: chess.King}, pos(0, 0))

	fake := chess.ChessGame{Board: b, Turn: chess.White, KingPositions: [2]chess.Position{pos(0, 7), pos(0, 0)}}
	var knightMoves []chess.Position
	for _, pm := range fake.LegalMoves() {
		if pm.Piece.Kind == chess.Knight {
			knightMoves = pm.Moves
		}
	}
	assert.Len(t, knightMoves, 8, "a knight in the center of an empty board has 8 destinations")
}

func TestRookRayStopsAtFirstPiece(t *testing.T) {
	b := &chess.Board{}
	b.Place(&chess.Piece{Color: chess.White, Kind: chess.Rook}, pos(0, 7))
	b.Place(&chess.Piece{Color: chess.White, Kind: chess.Pawn}, pos(0, 4))
	b.Place(&chess.Piece{Color: chess.White, Kind: chess.King}, pos(4, 7))
	b.Place(&chess.Piece{Color: chess.Black, Kind: chess.King}, pos(4, 0))

	g := chess.ChessGame{Board: b, Turn: chess.White, KingPositions: [2]chess.Position{pos(4, 7), pos(4, 0)}}

	var rookMoves []chess.Position
	for _, pm := range g.LegalMoves() {
		if pm.Piece.Kind == chess.Rook {
			rookMoves = pm.Moves
		}
	}
	for _, m := range rookMoves {
		assert.False(t, m.Y <= 4, "rook ray must stop before reaching its own pawn at y=4")
	}
	assert.Contains(t, rookMoves, pos(0, 6))
	assert.Contains(t, rookMoves, pos(0, 5))
	assert.NotContains(t, rookMoves, pos(0, 4))
	assert.NotContains(t, rookMoves, pos(0, 3))
}
