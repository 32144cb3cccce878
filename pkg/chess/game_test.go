package chess_test

import (
	"testing"

	"github.com/TrickNextos/multiplayer-chess-api/pkg/chess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pos(x, y int) chess.Position { return chess.Position{X: x, Y: y} }

func TestStartingPositionMoveCount(t *testing.T) {
	g := chess.NewGame()
	total := 0
	for _, pm := range g.LegalMoves() {
		total += len(pm.Moves)
	}
	assert.Equal(t, 20, total, "white has 20 legal moves in the starting position")
}

func TestEnPassantCapture(t *testing.T) {
	g, err := chess.Decode("4k3/3p4/8/4P3/8/8/8/4K3 b - -")
	require.NoError(t, err)

	_, err = g.Move(pos(3, 1), pos(3, 3)) // d7-d5, double push
	require.NoError(t, err)

	res, err := g.Move(pos(4, 3), pos(3, 2)) // exd6 en passant
	require.NoError(t, err)
	assert.True(t, res.Capture)
	assert.Nil(t, g.Board.Get(pos(3, 3)), "captured pawn removed from d5")
	assert.NotNil(t, g.Board.Get(pos(3, 2)), "capturing pawn landed on d6")
	assert.Nil(t, g.Board.Get(pos(4, 3)), "capturing pawn left e5")
}

func TestPinRestrictsRookToPinLine(t *testing.T) {
	g, err := chess.Decode("4r2k/8/8/8/8/8/4R3/4K3 w - -")
	require.NoError(t, err)

	var rookMoves []chess.Position
	for _, pm := range g.LegalMoves() {
		if pm.Piece.Pos == (pos(4, 6)) {
			rookMoves = pm.Moves
		}
	}

	want := map[chess.Position]bool{
		pos(4, 5): true, pos(4, 4): true, pos(4, 3): true,
		pos(4, 2): true, pos(4, 1): true, pos(4, 0): true,
	}
	got := map[chess.Position]bool{}
	for _, m := range rookMoves {
		got[m] = true
	}
	assert.Equal(t, want, got)

	_, err = g.Move(pos(4, 6), pos(3, 6)) // e2-d2, off the pin line
	assert.ErrorIs(t, err, chess.ErrIllegalMove)

	_, err = g.Move(pos(4, 6), pos(4, 4)) // e2-e4, along the pin line
	assert.NoError(t, err)
}

func TestCastleBlockedByAttackedPassSquare(t *testing.T) {
	g, err := chess.Decode("4kr2/8/8/8/8/8/8/4K2R w - -")
	require.NoError(t, err)

	var kingMoves []chess.Position
	for _, pm := range g.LegalMoves() {
		if pm.Piece.Pos == pos(4, 7) {
			kingMoves = pm.Moves
		}
	}

	for _, m := range kingMoves {
		assert.NotEqual(t, pos(6, 7), m, "kingside castle must be blocked: f1 is attacked")
	}

	_, err = g.Move(pos(4, 7), pos(6, 7))
	assert.ErrorIs(t, err, chess.ErrIllegalMove)
}

func TestScholarsMateCheckmate(t *testing.T) {
	g := chess.NewGame()

	moves := []struct{ from, to chess.Position }{
		{pos(4, 6), pos(4, 4)}, // 1. e4
		{pos(4, 1), pos(4, 3)}, // e5
		{pos(3, 7), pos(7, 3)}, // 2. Qh5
		{pos(1, 0), pos(2, 2)}, // Nc6
		{pos(5, 7), pos(2, 4)}, // 3. Bc4
		{pos(6, 0), pos(5, 2)}, // Nf6??
	}
	for _, m := range moves {
		_, err := g.Move(m.from, m.to)
		require.NoError(t, err)
	}

	res, err := g.Move(pos(7, 3), pos(5, 1)) // 4. Qxf7#
	require.NoError(t, err)
	assert.True(t, res.Checkmate)
	assert.Equal(t, "Qxf7", res.SAN)
}

func TestFENRoundTrip(t *testing.T) {
	const in = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq"

	g, err := chess.Decode(in)
	require.NoError(t, err)
	assert.Equal(t, in, chess.Encode(g))
}
