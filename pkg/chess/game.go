package chess

import (
	"fmt"

	"github.com/seekerror/stdlib/pkg/lang"
)

// PieceMoves pairs a piece with its currently legal destinations, the shape
// broadcast to clients for every piece with at least one legal move (§6.2).
type PieceMoves struct {
	Piece *Piece
	Moves []Position
}

// MoveResult describes the effect of a successfully applied move.
type MoveResult struct {
	SAN       string
	Capture   bool
	Check     bool
	Checkmate bool
	Stalemate bool
}

// ChessGame holds the full mutable state of one game: board, whose turn it
// is, king locations (kept denormalized for fast threat scans) and en
// passant eligibility.
type ChessGame struct {
	Board         *Board
	KingPositions [2]Position
	Turn          Color
	EnPassant     [2]lang.Optional[Position]

	cantEnPassant map[Position]bool
}

// NewGame returns a game set up in the standard starting position.
func NewGame() *ChessGame {
	return &ChessGame{
		Board:         NewStandardBoard(),
		KingPositions: [2]Position{{X: 4, Y: 7}, {X: 4, Y: 0}},
		Turn:          White,
		cantEnPassant: map[Position]bool{},
	}
}

// candidate is one pseudo-legal destination tagged with the direction that
// produced it, needed to apply the right ExtraReq/SideEffect on commit.
type candidate struct {
	to    Position
	dirID int
}

func pseudoLegalMoves(b *Board, p *Piece) []candidate {
	var out []candidate
	for _, id := range p.Kind.Directions() {
		dir := directionTable[id]
		for _, ray := range dir.Rays(b, p.Pos, p.Color) {
			if dir.PreFiltered {
				for _, to := range ray {
					out = append(out, candidate{to: to, dirID: id})
				}
				continue
			}
			for _, to := range ray {
				target := b.Get(to)
				if target == nil {
					out = append(out, candidate{to: to, dirID: id})
					continue
				}
				if target.Color != p.Color {
					out = append(out, candidate{to: to, dirID: id})
				}
				break
			}
		}
	}
	return out
}

// LegalMoves returns every piece belonging to the side to move that has at
// least one legal destination, together with those destinations.
func (g *ChessGame) LegalMoves() []PieceMoves {
	ci := scanCheck(g.Board, g.KingPositions[g.Turn.Index()], g.Turn)
	g.cantEnPassant = ci.cantEnPassant

	var out []PieceMoves
	g.Board.Each(func(p *Piece) {
		if p.Color != g.Turn {
			return
		}
		cands := g.legalCandidates(ci, p)
		if len(cands) == 0 {
			return
		}
		moves := make([]Position, len(cands))
		for i, c := range cands {
			moves[i] = c.to
		}
		out = append(out, PieceMoves{Piece: p, Moves: moves})
	})
	return out
}

func (g *ChessGame) legalCandidates(ci *checkInfo, p *Piece) []candidate {
	candidates := pseudoLegalMoves(g.Board, p)

	isKing := p.Kind == King
	pinRay, pinned := ci.pinRay(p.Pos)

	var out []candidate
	for _, c := range candidates {
		if isKing {
			if c.dirID == dirCastle && ci.inCheck() {
				continue
			}
			if squareAttacked(g.Board, c.to, g.Turn.Opponent(), p.Pos, true) {
				continue
			}
			out = append(out, c)
			continue
		}

		if ci.doubleCheck() {
			continue
		}
		if pinned && !pinRay[c.to] {
			continue
		}
		if ci.inCheck() {
			resolves := ci.blockSquares[c.to]
			if c.dirID == dirEnPassant {
				if captured, ok := c.to.Add(0, -pawnForward(p.Color)); ok {
					resolves = resolves || ci.blockSquares[captured]
				}
			}
			if !resolves {
				continue
			}
		}
		if dir := directionTable[c.dirID]; dir.ExtraReq != nil {
			if !dir.ExtraReq(g, p.Pos, c.to, p.Color) {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

// Move validates and applies the move from->to for the side to move,
// returning the resulting SAN-ish description and game-ending status.
func (g *ChessGame) Move(from, to Position) (MoveResult, error) {
	mover := g.Board.Get(from)
	if mover == nil || mover.Color != g.Turn {
		return MoveResult{}, ErrNotYourTurn
	}

	ci := scanCheck(g.Board, g.KingPositions[g.Turn.Index()], g.Turn)
	g.cantEnPassant = ci.cantEnPassant

	var dirID int
	found := false
	for _, c := range g.legalCandidates(ci, mover) {
		if c.to == to {
			dirID = c.dirID
			found = true
			break
		}
	}
	if !found {
		if len(g.LegalMoves()) == 0 {
			return MoveResult{}, ErrGameOver
		}
		return MoveResult{}, ErrIllegalMove
	}

	san := g.algebraic(ci, mover, from, to, dirID)

	g.EnPassant[g.Turn.Index()] = lang.Optional[Position]{}
	captured := g.Board.MovePiece(from, to) || dirID == dirEnPassant
	if dir := directionTable[dirID]; dir.SideEffect != nil {
		dir.SideEffect(g, from, to, mover.Color)
	}
	if mover.Kind == King {
		g.KingPositions[mover.Color.Index()] = to
	}

	g.Turn = g.Turn.Opponent()

	opp := scanCheck(g.Board, g.KingPositions[g.Turn.Index()], g.Turn)
	hasReply := len(g.LegalMoves()) > 0
	checkmate := opp.inCheck() && !hasReply

	return MoveResult{
		SAN:       san,
		Capture:   captured,
		Check:     opp.inCheck(),
		Checkmate: checkmate,
		Stalemate: !opp.inCheck() && !hasReply,
	}, nil
}

func (g *ChessGame) algebraic(ci *checkInfo, p *Piece, from, to Position, dirID int) string {
	if dirID == dirCastle {
		if to.X > from.X {
			return "O-O"
		}
		return "O-O-O"
	}

	capture := g.Board.Get(to) != nil || dirID == dirEnPassant
	var letter string
	if p.Kind != Pawn {
		letter = string([]byte{upper(p.Kind.Letter())})
	} else if capture {
		letter = string(rune(from.File()))
	}

	disambig := ""
	if p.Kind != Pawn && g.ambiguous(ci, p, to) {
		disambig = string(rune(from.File()))
	}

	x := "x"
	if !capture {
		x = ""
	}
	return fmt.Sprintf("%s%s%s%s", letter, disambig, x, to.String())
}

// ambiguous reports whether another piece of p's own kind and color can also
// legally reach to, per spec's disambiguation-file rule.
func (g *ChessGame) ambiguous(ci *checkInfo, p *Piece, to Position) bool {
	found := false
	g.Board.Each(func(other *Piece) {
		if found || other == p || other.Kind != p.Kind || other.Color != p.Color {
			return
		}
		for _, c := range g.legalCandidates(ci, other) {
			if c.to == to {
				found = true
				return
			}
		}
	})
	return found
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}
