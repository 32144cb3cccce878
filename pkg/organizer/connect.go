package organizer

import (
	"context"

	"github.com/seekerror/logw"
)

// handleConnect registers player's outbound queue and, per spec.md §4.5,
// replays init+move for every active game they participate in so a
// reconnecting client restores state (scenario S6).
func (o *Organizer) handleConnect(ctx context.Context, req Request) {
	o.outbound[req.Player] = &registration{out: req.Outbound}
	logw.Infof(ctx, "player %v connected", req.Player)

	for _, g := range o.games {
		if g.playerIndex(req.Player) < 0 {
			continue
		}
		if !o.sendInit(ctx, g, req.Player, false) {
			continue
		}
		o.sendMoveTo(ctx, g, req.Player)
	}
}

// handleClose drops player's outbound queue handle. Games are unaffected;
// the player may reconnect (idempotent per spec.md §8).
func (o *Organizer) handleClose(ctx context.Context, req Request) {
	if _, ok := o.outbound[req.Player]; !ok {
		return
	}
	delete(o.outbound, req.Player)
	logw.Infof(ctx, "player %v disconnected", req.Player)
}

// sendMoveTo sends just the move view relevant to one player of g, without
// touching the other participant. Used on reconnect.
func (o *Organizer) sendMoveTo(ctx context.Context, g *Game, player PlayerID) {
	legal := g.Engine.LegalMoves()
	mover := g.sideToMove()
	if player == mover {
		o.send(ctx, player, "move", g.ID, movesFor(legal, true))
	} else {
		o.send(ctx, player, "move", g.ID, movesFor(legal, false))
	}
}

type initPayload struct {
	Opponent PlayerData `json:"opponent"`
	Chat     [][2]any   `json:"chat"` // [is_self bool, text string]
	Moves    []string   `json:"moves"`
	AskDraw  *bool      `json:"ask_draw"`
	NewGame  bool       `json:"new_game"`
	Playing  string     `json:"playing"`
}

// sendInit builds and sends the "init" envelope that lets a client
// (re)establish a game's full state: opponent identity, chat history, move
// log, outstanding draw offer, and which side this player plays. On a
// PersistentStoreError from the opponent lookup, this game's init is
// aborted and the client is not informed (spec.md §7); it reports whether
// the envelope was sent.
func (o *Organizer) sendInit(ctx context.Context, g *Game, player PlayerID, isNew bool) bool {
	opponentID := g.opponentOf(player)

	data, err := o.store.GetPlayerData(ctx, opponentID)
	if err != nil {
		logw.Errorf(ctx, "player lookup failed for %v while building init for %v: %v", opponentID, player, err)
		return false
	}

	chat := make([][2]any, 0, len(g.Chat))
	for _, entry := range g.Chat {
		chat = append(chat, [2]any{entry.Player == player, entry.Text})
	}

	var askDraw *bool
	if offerer, ok := g.DrawOffer.V(); ok {
		canConfirm := offerer != player
		askDraw = &canConfirm
	}

	playing := "white"
	if g.playerIndex(player) == 1 {
		playing = "black"
	}

	o.send(ctx, player, "init", g.ID, initPayload{
		Opponent: data,
		Chat:     chat,
		Moves:    g.MoveLog,
		AskDraw:  askDraw,
		NewGame:  isNew,
		Playing:  playing,
	})
	return true
}
