package organizer

import (
	"context"

	"github.com/TrickNextos/multiplayer-chess-api/pkg/chess"
)

// movesFor builds the outbound "move" data for one recipient: the full
// legal-destination list for the side to move, or the same pieces with
// moves zeroed out for the side waiting (spec.md §4.5 broadcast discipline).
func movesFor(pms []chess.PieceMoves, includeMoves bool) []PieceMoves {
	out := make([]PieceMoves, 0, len(pms))
	for _, pm := range pms {
		entry := PieceMoves{
			Filename: pm.Piece.Filename(),
			Position: pm.Piece.Pos,
		}
		if includeMoves {
			entry.Moves = pm.Moves
		}
		out = append(out, entry)
	}
	return out
}

// broadcastMove sends the current "move" view to both participants: the
// mover sees full legal destinations, the opponent sees positions only.
func (o *Organizer) broadcastMove(ctx context.Context, g *Game) {
	legal := g.Engine.LegalMoves()
	mover := g.sideToMove()

	full := movesFor(legal, true)
	positionsOnly := movesFor(legal, false)

	seen := map[PlayerID]bool{}
	for _, p := range g.Participants {
		if seen[p] {
			continue
		}
		seen[p] = true
		if p == mover {
			o.send(ctx, p, "move", g.ID, full)
		} else {
			o.send(ctx, p, "move", g.ID, positionsOnly)
		}
	}
}

// broadcastMoveInfo sends the algebraic text of the move just played to
// both participants.
func (o *Organizer) broadcastMoveInfo(ctx context.Context, g *Game, san string) {
	o.sendToBoth(ctx, g, "move info", san)
}

// sendToBoth pushes the same envelope to both distinct participants of g.
func (o *Organizer) sendToBoth(ctx context.Context, g *Game, action string, data any) {
	seen := map[PlayerID]bool{}
	for _, p := range g.Participants {
		if seen[p] {
			continue
		}
		seen[p] = true
		o.send(ctx, p, action, g.ID, data)
	}
}
