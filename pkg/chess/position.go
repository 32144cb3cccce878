package chess

import (
	"encoding/json"
	"fmt"
)

// Position is a square on the 8x8 board: 0 <= X,Y < 8.
type Position struct {
	X, Y int
}

// NewPosition validates the coordinates and returns the corresponding Position.
func NewPosition(x, y int) (Position, bool) {
	if !onBoard(x, y) {
		return Position{}, false
	}
	return Position{X: x, Y: y}, true
}

func onBoard(x, y int) bool {
	return x >= 0 && x < 8 && y >= 0 && y < 8
}

// Add returns the position offset by (dx,dy). If the result would leave the
// board, it returns the receiver unchanged and false.
func (p Position) Add(dx, dy int) (Position, bool) {
	x, y := p.X+dx, p.Y+dy
	if !onBoard(x, y) {
		return p, false
	}
	return Position{X: x, Y: y}, true
}

// File returns the algebraic file letter, 'a'..'h'.
func (p Position) File() rune {
	return rune('a' + p.X)
}

// Rank returns the algebraic rank digit, '1'..'8'. Rank is 8-Y: row 0 is
// rank 8 (black's back rank), row 7 is rank 1 (white's back rank).
func (p Position) Rank() rune {
	return rune('0' + (8 - p.Y))
}

// String renders the position in algebraic notation, e.g. "e4".
func (p Position) String() string {
	return fmt.Sprintf("%c%c", p.File(), p.Rank())
}

// wirePosition mirrors the client's tuple-struct encoding of a position as a
// two-field object keyed by index rather than name.
type wirePosition struct {
	X0 int `json:"0"`
	X1 int `json:"1"`
}

// MarshalJSON renders p as {"0":x,"1":y}, matching the outbound move
// envelope's position encoding.
func (p Position) MarshalJSON() ([]byte, error) {
	return json.Marshal(wirePosition{X0: p.X, X1: p.Y})
}

// UnmarshalJSON parses the {"0":x,"1":y} encoding used by inbound move
// requests, rejecting coordinates that are off the board.
func (p *Position) UnmarshalJSON(data []byte) error {
	var w wirePosition
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if !onBoard(w.X0, w.X1) {
		return fmt.Errorf("chess: position (%d,%d) is off the board", w.X0, w.X1)
	}
	p.X, p.Y = w.X0, w.X1
	return nil
}
