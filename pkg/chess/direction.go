package chess

import "github.com/seekerror/stdlib/pkg/lang"

// Stable direction-catalogue IDs. These values are load-bearing: they are
// compared against a piece's Kind.Directions() set during the threat scan and
// must not be renumbered.
const (
	dirRook        = 0
	dirBishop      = 1
	dirKing        = 2
	dirPawnCapture = 3
	dirPawnPush    = 4
	dirKnight      = 5
	dirEnPassant   = 6
	dirCastle      = 7
)

// checkableDirs are the direction kinds a king threat scan walks: any piece
// that can reach the king along one of these is giving check.
var checkableDirs = []int{dirRook, dirBishop, dirKing, dirPawnCapture, dirKnight}

// Ray is an ordered list of squares radiating outward from a piece's square,
// nearest first.
type Ray []Position

// Direction is one entry of the direction catalogue: a pure-function bundle
// keyed by a stable ID rather than a Go interface per direction kind, per the
// catalogue's dispatch-table design.
type Direction struct {
	ID int

	// Rays enumerates candidate squares reachable from pos by a piece of
	// color c sitting on b. For ray-sliding/step kinds (Rook, Bishop, King,
	// Knight) these are raw geometric candidates, later truncated at the
	// first occupied square by the generic pseudo-legal pass. Pawn, en
	// passant and castle rays are pre-filtered: occupancy and capture
	// eligibility are already baked into the returned squares, and the
	// generic pass takes them unmodified.
	Rays func(b *Board, pos Position, c Color) []Ray

	// PreFiltered marks a direction whose Rays already encode occupancy
	// rules, so the generic truncate-at-first-piece pass must not be
	// applied again.
	PreFiltered bool

	// ExtraReq is an additional precondition evaluated per candidate
	// destination after check/pin filtering, used by en passant (freshness
	// and pin safety). Castle has none: its path safety is checked inside
	// castleRays. A nil ExtraReq always passes.
	ExtraReq func(g *ChessGame, from, to Position, c Color) bool

	// SideEffect performs any board mutation beyond the moving piece itself
	// (removing the captured pawn on en passant, relocating the rook on
	// castling).
	SideEffect func(g *ChessGame, from, to Position, c Color)
}

var directionTable = map[int]Direction{
	dirRook:        {ID: dirRook, Rays: rookRays},
	dirBishop:      {ID: dirBishop, Rays: bishopRays},
	dirKing:        {ID: dirKing, Rays: kingRays},
	dirKnight:      {ID: dirKnight, Rays: knightRays},
	dirPawnCapture: {ID: dirPawnCapture, Rays: pawnCaptureRays, PreFiltered: true},
	dirPawnPush:    {ID: dirPawnPush, Rays: pawnPushRays, PreFiltered: true, SideEffect: pawnPushSideEffect},
	dirEnPassant:   {ID: dirEnPassant, Rays: enPassantRays, PreFiltered: true, ExtraReq: enPassantExtraReq, SideEffect: enPassantSideEffect},
	dirCastle:      {ID: dirCastle, Rays: castleRays, PreFiltered: true, SideEffect: castleSideEffect},
}

func rookRays(b *Board, pos Position, _ Color) []Ray {
	return slideRays(pos, [][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}})
}

func bishopRays(b *Board, pos Position, _ Color) []Ray {
	return slideRays(pos, [][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}})
}

func slideRays(pos Position, offsets [][2]int) []Ray {
	rays := make([]Ray, 0, len(offsets))
	for _, off := range offsets {
		var ray Ray
		cur := pos
		for {
			next, ok := cur.Add(off[0], off[1])
			if !ok {
				break
			}
			ray = append(ray, next)
			cur = next
		}
		rays = append(rays, ray)
	}
	return rays
}

func kingRays(b *Board, pos Position, _ Color) []Ray {
	offsets := [][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	var rays []Ray
	for _, off := range offsets {
		if next, ok := pos.Add(off[0], off[1]); ok {
			rays = append(rays, Ray{next})
		}
	}
	return rays
}

func knightRays(b *Board, pos Position, _ Color) []Ray {
	offsets := [][2]int{{-2, -1}, {-2, 1}, {2, -1}, {2, 1}, {-1, -2}, {1, -2}, {-1, 2}, {1, 2}}
	var rays []Ray
	for _, off := range offsets {
		if next, ok := pos.Add(off[0], off[1]); ok {
			rays = append(rays, Ray{next})
		}
	}
	return rays
}

func pawnForward(c Color) int {
	if c == White {
		return -1
	}
	return 1
}

func pawnHomeRank(c Color) int {
	if c == White {
		return 6
	}
	return 1
}

func pawnCaptureRays(b *Board, pos Position, c Color) []Ray {
	dy := pawnForward(c)
	var rays []Ray
	for _, dx := range []int{-1, 1} {
		to, ok := pos.Add(dx, dy)
		if !ok {
			continue
		}
		if target := b.Get(to); target != nil && target.Color != c {
			rays = append(rays, Ray{to})
		}
	}
	return rays
}

func pawnPushRays(b *Board, pos Position, c Color) []Ray {
	dy := pawnForward(c)
	one, ok := pos.Add(0, dy)
	if !ok || b.Get(one) != nil {
		return nil
	}
	ray := Ray{one}
	if pos.Y == pawnHomeRank(c) {
		if two, ok := pos.Add(0, 2*dy); ok && b.Get(two) == nil {
			ray = append(ray, two)
		}
	}
	return []Ray{ray}
}

func pawnPushSideEffect(g *ChessGame, from, to Position, c Color) {
	if abs(to.Y-from.Y) == 2 {
		g.EnPassant[c.Opponent().Index()] = lang.Some(to)
	}
}

func enPassantRays(b *Board, pos Position, c Color) []Ray {
	dy := pawnForward(c)
	var rays []Ray
	for _, dx := range []int{-1, 1} {
		adj, ok := pos.Add(dx, 0)
		if !ok {
			continue
		}
		target := b.Get(adj)
		if target == nil || target.Kind != Pawn || target.Color == c {
			continue
		}
		if to, ok := pos.Add(dx, dy); ok {
			rays = append(rays, Ray{to})
		}
	}
	return rays
}

func enPassantExtraReq(g *ChessGame, from, to Position, c Color) bool {
	capturedPawn, ok := to.Add(0, -pawnForward(c))
	if !ok {
		return false
	}
	target, hasTarget := g.EnPassant[c.Index()].V()
	if !hasTarget || target != capturedPawn {
		return false
	}
	return !g.cantEnPassant[capturedPawn] && !g.cantEnPassant[from]
}

func enPassantSideEffect(g *ChessGame, from, to Position, c Color) {
	capturedPawn, _ := to.Add(0, -pawnForward(c))
	g.Board.Remove(capturedPawn)
}

func castleRays(b *Board, pos Position, c Color) []Ray {
	king := b.Get(pos)
	if king == nil || king.Kind != King || king.Moved {
		return nil
	}
	if squareAttacked(b, pos, c.Opponent(), pos, true) {
		return nil
	}
	var rays []Ray
	for _, dx := range []int{-1, 1} {
		rookX := 0
		if dx == 1 {
			rookX = 7
		}
		rookPos := Position{X: rookX, Y: pos.Y}
		rook := b.Get(rookPos)
		if rook == nil || rook.Kind != Rook || rook.Moved {
			continue
		}
		clear := true
		for x := pos.X + dx; x != rookX; x += dx {
			if b.Get(Position{X: x, Y: pos.Y}) != nil {
				clear = false
				break
			}
		}
		if !clear {
			continue
		}
		pass, _ := pos.Add(dx, 0)
		dest, ok := pos.Add(2*dx, 0)
		if !ok {
			continue
		}
		if squareAttacked(b, pass, c.Opponent(), pos, true) || squareAttacked(b, dest, c.Opponent(), pos, true) {
			continue
		}
		rays = append(rays, Ray{dest})
	}
	return rays
}

func castleSideEffect(g *ChessGame, from, to Position, c Color) {
	dx := 1
	rookFrom := Position{X: 7, Y: from.Y}
	if to.X < from.X {
		dx = -1
		rookFrom = Position{X: 0, Y: from.Y}
	}
	rookTo := Position{X: from.X + dx, Y: from.Y}
	g.Board.MovePiece(rookFrom, rookTo)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
