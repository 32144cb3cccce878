package chess

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Decode parses a FEN piece-placement and active-color record into a game.
// Halfmove/fullmove counters are accepted but not retained: this service has
// no wall-clock or repetition tracking (see Non-goals), so FEN here is a
// snapshot format for archival and debugging, not a full ruleset carrier.
func Decode(fen string) (*ChessGame, error) {
	parts := strings.Fields(strings.TrimSpace(fen))
	if len(parts) < 2 {
		return nil, fmt.Errorf("chess: invalid FEN %q", fen)
	}

	b := &Board{}
	ranks := strings.Split(parts[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("chess: invalid FEN ranks in %q", fen)
	}
	g := &ChessGame{Board: b, cantEnPassant: map[Position]bool{}}

	for y, rank := range ranks {
		x := 0
		for _, r := range rank {
			switch {
			case unicode.IsDigit(r):
				x += int(r - '0')
			default:
				c, k, ok := parsePieceLetter(r)
				if !ok {
					return nil, fmt.Errorf("chess: invalid piece %q in FEN %q", r, fen)
				}
				pos := Position{X: x, Y: y}
				b.Place(&Piece{Color: c, Kind: k, Pos: pos}, pos)
				if k == King {
					g.KingPositions[c.Index()] = pos
				}
				x++
			}
		}
		if x != 8 {
			return nil, fmt.Errorf("chess: invalid FEN rank width in %q", fen)
		}
	}

	switch parts[1] {
	case "w":
		g.Turn = White
	case "b":
		g.Turn = Black
	default:
		return nil, fmt.Errorf("chess: invalid active color in FEN %q", fen)
	}

	if len(parts) > 2 && parts[2] != "-" {
		markCastlingRights(b, parts[2])
	}
	return g, nil
}

// markCastlingRights flags kings/rooks as already-moved when the FEN denies
// them castling rights, since ChessGame derives castling availability from
// Piece.Moved rather than tracking a separate rights mask.
func markCastlingRights(b *Board, avail string) {
	allow := map[byte]bool{}
	for _, r := range avail {
		allow[byte(r)] = true
	}
	if !allow['K'] && !allow['Q'] {
		if k := b.Get(Position{X: 4, Y: 7}); k != nil && k.Kind == King {
			k.Moved = true
		}
	}
	if !allow['K'] {
		if rk := b.Get(Position{X: 7, Y: 7}); rk != nil && rk.Kind == Rook {
			rk.Moved = true
		}
	}
	if !allow['Q'] {
		if rk := b.Get(Position{X: 0, Y: 7}); rk != nil && rk.Kind == Rook {
			rk.Moved = true
		}
	}
	if !allow['k'] && !allow['q'] {
		if k := b.Get(Position{X: 4, Y: 0}); k != nil && k.Kind == King {
			k.Moved = true
		}
	}
	if !allow['k'] {
		if rk := b.Get(Position{X: 7, Y: 0}); rk != nil && rk.Kind == Rook {
			rk.Moved = true
		}
	}
	if !allow['q'] {
		if rk := b.Get(Position{X: 0, Y: 0}); rk != nil && rk.Kind == Rook {
			rk.Moved = true
		}
	}
}

// Encode renders the board, active color and castling availability as a FEN
// piece-placement record.
func Encode(g *ChessGame) string {
	var sb strings.Builder
	for y := 0; y < 8; y++ {
		blanks := 0
		for x := 0; x < 8; x++ {
			p := g.Board.Get(Position{X: x, Y: y})
			if p == nil {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteRune(pieceLetter(p))
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if y < 7 {
			sb.WriteString("/")
		}
	}

	turn := "w"
	if g.Turn == Black {
		turn = "b"
	}

	return fmt.Sprintf("%s %s %s", sb.String(), turn, castlingAvailability(g.Board))
}

func castlingAvailability(b *Board) string {
	var sb strings.Builder
	king := b.Get(Position{X: 4, Y: 7})
	if king != nil && king.Kind == King && !king.Moved {
		if rk := b.Get(Position{X: 7, Y: 7}); rk != nil && rk.Kind == Rook && !rk.Moved {
			sb.WriteString("K")
		}
		if rk := b.Get(Position{X: 0, Y: 7}); rk != nil && rk.Kind == Rook && !rk.Moved {
			sb.WriteString("Q")
		}
	}
	king = b.Get(Position{X: 4, Y: 0})
	if king != nil && king.Kind == King && !king.Moved {
		if rk := b.Get(Position{X: 7, Y: 0}); rk != nil && rk.Kind == Rook && !rk.Moved {
			sb.WriteString("k")
		}
		if rk := b.Get(Position{X: 0, Y: 0}); rk != nil && rk.Kind == Rook && !rk.Moved {
			sb.WriteString("q")
		}
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

func parsePieceLetter(r rune) (Color, Kind, bool) {
	c := White
	lower := r
	if unicode.IsLower(r) {
		c = Black
	} else {
		lower = unicode.ToLower(r)
	}
	switch lower {
	case 'p':
		return c, Pawn, true
	case 'n':
		return c, Knight, true
	case 'b':
		return c, Bishop, true
	case 'r':
		return c, Rook, true
	case 'q':
		return c, Queen, true
	case 'k':
		return c, King, true
	default:
		return c, 0, false
	}
}

func pieceLetter(p *Piece) rune {
	l := rune(p.Kind.Letter())
	if p.Color == White {
		return unicode.ToUpper(l)
	}
	return l
}
