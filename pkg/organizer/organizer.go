package organizer

import (
	"context"

	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/seekerror/stdlib/pkg/util/contextx"
	"github.com/seekerror/stdlib/pkg/util/iox"
)

// Version is the organizer's reported server version, mirroring
// pkg/engine/engine.go's package-level version stamp.
var Version = build.NewVersion(0, 1, 0)

// Organizer is the single-threaded game-organizer core of spec.md §4.5. It
// owns every active Game and every player's outbound queue handle; all
// mutation happens on the one goroutine running process, so no locks guard
// this state.
type Organizer struct {
	iox.AsyncCloser

	store Store

	games    map[GameID]*Game
	outbound map[PlayerID]*registration

	waiting     lang.Optional[PlayerID]
	invitations map[PlayerID]map[PlayerID]bool // inviter -> targets offered
	friends     map[RequestID]FriendOptions     // pending friend requests
}

// New constructs an Organizer backed by store and starts its event loop
// consuming requests from in. The loop exits when in is closed or Close is
// called.
func New(ctx context.Context, store Store, in <-chan Request) *Organizer {
	o := &Organizer{
		AsyncCloser: iox.NewAsyncCloser(),
		store:       store,
		games:       map[GameID]*Game{},
		outbound:    map[PlayerID]*registration{},
		invitations: map[PlayerID]map[PlayerID]bool{},
		friends:     map[RequestID]FriendOptions{},
	}
	go o.process(ctx, in)
	return o
}

// Submit enqueues a single request, blocking if the inbound channel the
// caller constructed New with is full. Transports typically own that
// channel directly and send on it; Submit exists for callers (tests, a
// single-process bootstrap) that only hold the Organizer handle.
func (o *Organizer) Submit(in chan<- Request, req Request) {
	in <- req
}

func (o *Organizer) process(ctx context.Context, in <-chan Request) {
	ctx, cancel := contextx.WithQuitCancel(ctx, o.Closed())
	defer cancel()
	defer o.Close()

	logw.Infof(ctx, "organizer started, version %v", Version)

	for {
		select {
		case req, ok := <-in:
			if !ok {
				logw.Infof(ctx, "organizer inbound channel closed; exiting")
				return
			}
			logw.Debugf(ctx, "organizer tick: %+v", req)
			o.dispatch(ctx, req)

		case <-o.Closed():
			logw.Infof(ctx, "organizer closed")
			return
		}
	}
}

func (o *Organizer) dispatch(ctx context.Context, req Request) {
	switch req.Kind {
	case KindConnect:
		o.handleConnect(ctx, req)
	case KindClose:
		o.handleClose(ctx, req)
	case KindNewGame:
		o.handleNewGame(ctx, req)
	case KindMove:
		o.handleMove(ctx, req)
	case KindChat:
		o.handleChat(ctx, req)
	case KindEnd:
		o.handleEnd(ctx, req)
	case KindFriendNew:
		o.handleFriendNew(ctx, req)
	case KindFriendAccept:
		o.handleFriendAccept(ctx, req)
	case KindFriendReject:
		o.handleFriendReject(ctx, req)
	default:
		logw.Errorf(ctx, "unknown request kind %v", req.Kind)
	}
}

// handleMove validates and applies a move, then broadcasts the resulting
// view and, on a terminal result, archives the game (spec.md §4.5).
func (o *Organizer) handleMove(ctx context.Context, req Request) {
	g, ok := o.games[req.GameID]
	if !ok {
		return // UnknownGame: silently dropped (§7)
	}
	if g.sideToMove() != req.Player {
		return // InvalidMove: not the caller's turn
	}

	res, err := g.Engine.Move(req.Move.From, req.Move.To)
	if err != nil {
		return // InvalidMove: silently dropped (§7)
	}

	g.MoveLog = append(g.MoveLog, res.SAN)

	o.broadcastMove(ctx, g)
	o.broadcastMoveInfo(ctx, g, res.SAN)

	if res.Checkmate || res.Stalemate {
		// The side now to move has no legal reply: the player who just
		// moved delivered the terminal blow. spec.md's organizer table
		// broadcasts this uniformly as "checkmate", regardless of whether
		// the mated side is in check (true checkmate) or not (stalemate);
		// this is carried over literally rather than introducing a
		// "stalemate" outbound type spec.md never defines.
		mover := g.Participants[g.Engine.Turn.Opponent().Index()]
		winnerIsWhite := mover == g.Participants[0]

		seen := map[PlayerID]bool{}
		for _, p := range g.Participants {
			if seen[p] {
				continue
			}
			seen[p] = true
			win := p == mover
			o.send(ctx, p, "end", g.ID, endPayload{Type: "checkmate", Win: &win})
		}

		outcome := OutcomeBlack
		if winnerIsWhite {
			outcome = OutcomeWhite
		}
		o.archive(ctx, g, outcome)
	}
}

// handleChat appends to the game chat log and forwards to the other
// participant(s).
func (o *Organizer) handleChat(ctx context.Context, req Request) {
	g, ok := o.games[req.GameID]
	if !ok {
		return
	}
	g.Chat = append(g.Chat, ChatEntry{Player: req.Player, Text: req.Chat})

	for _, p := range g.Participants {
		if p == req.Player {
			continue
		}
		o.send(ctx, p, "chat", g.ID, req.Chat)
	}
}

// handleEnd dispatches Resign immediately; draw-related reasons go through
// the per-game draw-offer state machine (draw.go).
func (o *Organizer) handleEnd(ctx context.Context, req Request) {
	g, ok := o.games[req.GameID]
	if !ok {
		return
	}
	if g.playerIndex(req.Player) < 0 {
		return // UnknownPlayer: not a participant of this game (§7)
	}

	if req.End == Resign {
		loser := req.Player
		winner := g.opponentOf(loser)
		winnerIsWhite := winner == g.Participants[0]

		seen := map[PlayerID]bool{}
		for _, p := range g.Participants {
			if seen[p] {
				continue
			}
			seen[p] = true
			win := p == winner
			o.send(ctx, p, "end", g.ID, endPayload{Type: "resign", Win: &win})
		}

		outcome := OutcomeBlack
		if winnerIsWhite {
			outcome = OutcomeWhite
		}
		o.archive(ctx, g, outcome)
		return
	}

	o.handleDraw(ctx, g, req.Player, req.End)
}

// handleFriendNew holds a pending friend request keyed by request id and
// notifies the target.
func (o *Organizer) handleFriendNew(ctx context.Context, req Request) {
	o.friends[req.Friend.RequestID] = req.Friend
	o.send(ctx, req.Friend.Target, "request", 0, requestPayload{
		RequestID:   req.Friend.RequestID,
		RequestType: "friend",
		User:        req.Friend.Issuer,
	})
}

// handleFriendAccept writes the friendship to the store if the request's
// issuer/target match the stored pair, then drops the record either way.
func (o *Organizer) handleFriendAccept(ctx context.Context, req Request) {
	pending, ok := o.friends[req.Friend.RequestID]
	delete(o.friends, req.Friend.RequestID)
	if !ok || pending.Issuer != req.Friend.Issuer || pending.Target != req.Friend.Target {
		return
	}

	if err := o.store.InsertFriendship(ctx, pending.Issuer, pending.Target); err != nil {
		logw.Errorf(ctx, "insert friendship %v/%v failed: %v", pending.Issuer, pending.Target, err)
	}
}

// handleFriendReject just drops the pending record.
func (o *Organizer) handleFriendReject(ctx context.Context, req Request) {
	delete(o.friends, req.Friend.RequestID)
}
