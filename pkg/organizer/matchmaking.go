package organizer

import (
	"context"
	"math/rand/v2"

	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

// handleNewGame implements the matchmaking table of spec.md §4.5.
func (o *Organizer) handleNewGame(ctx context.Context, req Request) {
	player := req.Player
	opts := req.NewGame

	if opts.GameType == Singleplayer {
		g := o.createGame(ctx, player, player, true)
		logw.Infof(ctx, "singleplayer game %v created for %v", g.ID, player)
		return
	}

	if opp, ok := opts.Opponent.V(); ok {
		if o.invitations[opp] != nil && o.invitations[opp][player] {
			// opp already invited us: consume the invitation and start.
			delete(o.invitations[opp], player)
			g := o.createGame(ctx, opp, player, false)
			logw.Infof(ctx, "direct-invite game %v created for %v vs %v", g.ID, opp, player)
			return
		}

		if o.invitations[player] == nil {
			o.invitations[player] = map[PlayerID]bool{}
		}
		o.invitations[player][opp] = true
		o.send(ctx, opp, "request", 0, requestPayload{RequestType: "game", User: player})
		return
	}

	// Anonymous multiplayer queue.
	if w, ok := o.waiting.V(); ok {
		o.waiting = lang.Optional[PlayerID]{}
		g := o.createGame(ctx, w, player, false)
		logw.Infof(ctx, "matchmade game %v created for %v vs %v", g.ID, w, player)
		return
	}
	o.waiting = lang.Some(player)
}

type requestPayload struct {
	RequestID   RequestID `json:"request_id,omitempty"`
	RequestType string    `json:"request_type"`
	User        PlayerID  `json:"user"`
	Text        string    `json:"text,omitempty"`
}

// createGame allocates a fresh game id, registers the session, and sends the
// initial init+move broadcast to both participants.
func (o *Organizer) createGame(ctx context.Context, white, black PlayerID, singleplayer bool) *Game {
	g := newGame(o.nextGameID(), white, black, singleplayer)
	o.games[g.ID] = g

	seen := map[PlayerID]bool{}
	for _, p := range g.Participants {
		if seen[p] {
			continue
		}
		seen[p] = true
		o.sendInit(ctx, g, p, true)
	}
	o.broadcastMove(ctx, g)
	return g
}

// nextGameID draws a random, currently-unused 32-bit game id. Ephemeral
// in-memory ids use a plain PRNG; the persisted archive identifier is a
// separate UUID allocated at archive time (SPEC_FULL §3).
func (o *Organizer) nextGameID() GameID {
	for {
		id := GameID(rand.Uint32())
		if _, exists := o.games[id]; !exists {
			return id
		}
	}
}
