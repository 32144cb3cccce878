package chess

import "errors"

var (
	// ErrNotYourTurn is returned when a move is attempted by the side not
	// currently on the move.
	ErrNotYourTurn = errors.New("chess: not your turn")

	// ErrIllegalMove is returned when the requested from/to pair is not
	// among the mover's currently legal moves.
	ErrIllegalMove = errors.New("chess: illegal move")

	// ErrGameOver is returned when a move is attempted after the game has
	// already concluded.
	ErrGameOver = errors.New("chess: game is over")
)
