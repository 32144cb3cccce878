package organizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/seekerror/logw"
)

// archive allocates a fresh UUID, writes the archive row and the move-text
// file, and logs (never propagates) any store failure per spec.md §7: the
// in-memory game is always removed once its outcome is final.
func (o *Organizer) archive(ctx context.Context, g *Game, outcome Outcome) {
	id := uuid.New().String()

	row := ArchivedGame{
		UUID:         id,
		White:        g.Participants[0],
		Black:        g.Participants[1],
		NumMoves:     len(g.MoveLog),
		Outcome:      outcome,
		Singleplayer: g.Singleplayer,
	}

	if err := o.store.InsertArchivedGame(ctx, row); err != nil {
		logw.Errorf(ctx, "archive insert failed for game %v (uuid %v): %v", g.ID, id, err)
	}
	if err := o.store.WriteGameFile(ctx, id, moveText(g.MoveLog)); err != nil {
		logw.Errorf(ctx, "archive file write failed for game %v (uuid %v): %v", g.ID, id, err)
	}

	delete(o.games, g.ID)
	logw.Infof(ctx, "game %v archived as %v, outcome=%v", g.ID, id, outcome)
}

// moveText renders a move log as PGN-shaped body text: "1. m1 m2 2. m3 m4 …".
func moveText(moves []string) string {
	var sb strings.Builder
	for i := 0; i < len(moves); i += 2 {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(fmt.Sprintf("%d. %s", i/2+1, moves[i]))
		if i+1 < len(moves) {
			sb.WriteByte(' ')
			sb.WriteString(moves[i+1])
		}
	}
	return sb.String()
}
