package organizer

import (
	"context"
	"encoding/json"

	"github.com/seekerror/logw"
)

// Envelope is the stable outbound wire shape (spec.md §6.2).
type Envelope struct {
	Action string `json:"action"`
	GameID GameID `json:"game_id"`
	Data   any    `json:"data"`
}

// registration is a connected player's outbound queue handle. It has no
// close of its own: handleClose removes it from the outbound map, and a
// second Close for the same player finds nothing to remove.
type registration struct {
	out chan<- string
}

// send serializes one outbound envelope and pushes it to player's queue,
// best-effort: a full or missing queue silently drops the message (§7).
func (o *Organizer) send(ctx context.Context, player PlayerID, action string, gameID GameID, data any) {
	reg, ok := o.outbound[player]
	if !ok {
		return
	}

	body, err := json.Marshal(Envelope{Action: action, GameID: gameID, Data: data})
	if err != nil {
		logw.Errorf(ctx, "failed to marshal %v envelope for %v: %v", action, player, err)
		return
	}

	select {
	case reg.out <- string(body):
	default:
		logw.Debugf(ctx, "outbound queue full or closed for %v; dropping %v", player, action)
	}
}
