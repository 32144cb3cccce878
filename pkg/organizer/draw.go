package organizer

import (
	"context"

	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

// handleDraw runs the per-game draw-offer state machine (spec.md §4.5).
// Resign is handled separately in handleEnd since it always terminates.
func (o *Organizer) handleDraw(ctx context.Context, g *Game, who PlayerID, reason EndReason) {
	switch reason {
	case DrawAsk:
		if _, ok := g.DrawOffer.V(); !ok {
			g.DrawOffer = lang.Some(who)
			o.sendToBoth(ctx, g, "end", endPayload{Type: "draw-ask"})
		}
		// Offered(A) -> DrawAsk(A): no-op. Offered by a second distinct
		// player without a cancel in between is likewise a no-op (the
		// table only defines DrawAsk from the existing offerer or Idle).

	case DrawCancel:
		if offerer, ok := g.DrawOffer.V(); ok && offerer == who {
			g.DrawOffer = lang.Optional[PlayerID]{}
			o.sendToBoth(ctx, g, "end", endPayload{Type: "draw-cancel"})
		}
		// Offered(A) -> DrawCancel(B), B != A: ignored.

	case DrawConfirm:
		offerer, ok := g.DrawOffer.V()
		if !ok || offerer == who {
			// No offer outstanding, or the offerer tried to confirm their
			// own offer: ignored.
			return
		}

		logw.Infof(ctx, "game %v drawn by agreement", g.ID)
		o.sendToBoth(ctx, g, "end", endPayload{Type: "draw-confirm"})
		o.archive(ctx, g, OutcomeDraw)
	}
}

type endPayload struct {
	Type string `json:"type"`
	Win  *bool  `json:"win,omitempty"`
}
