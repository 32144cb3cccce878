// Package ws is a minimal gorilla/websocket adapter translating decoded
// {action, game_id, data} JSON frames into organizer.Request values, and
// organizer outbound strings back onto the socket. It is deliberately thin:
// framing only, no auth — mirroring the teacher's small, focused adapters
// (cmd/livechess-uci/main.go's adaptor).
package ws

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"go.uber.org/atomic"

	"github.com/TrickNextos/multiplayer-chess-api/pkg/chess"
	"github.com/TrickNextos/multiplayer-chess-api/pkg/organizer"
)

func optionalPlayer(p organizer.PlayerID) lang.Optional[organizer.PlayerID] {
	return lang.Some(p)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// inboundFrame is the wire shape of a client-sent frame (spec.md §6.1).
type inboundFrame struct {
	Action string           `json:"action"`
	GameID organizer.GameID `json:"game_id"`
	Data   json.RawMessage  `json:"data"`
}

type moveData struct {
	From chess.Position `json:"from"`
	To   chess.Position `json:"to"`
}

type newGameData struct {
	PreferedColor *string             `json:"prefered_color"`
	Opponent      *organizer.PlayerID `json:"opponent"`
	GameType      string              `json:"game_type"`
}

type friendData struct {
	ID        organizer.PlayerID  `json:"id"`
	RequestID organizer.RequestID `json:"request_id"`
	MsgType   string              `json:"msg_type"`
}

// Server accepts websocket connections and bridges them to a single
// organizer inbound queue.
type Server struct {
	in      chan<- organizer.Request
	closing atomic.Bool // set by Stop; read concurrently by every connection's goroutines
}

// NewServer builds a Server submitting decoded requests onto in (typically
// the same channel organizer.New was constructed with).
func NewServer(in chan<- organizer.Request) *Server {
	return &Server{in: in}
}

// Stop marks the server as draining: connections already being served finish
// their current frame, but no further client frames are forwarded to the
// organizer. Safe to call concurrently with any number of HandleConn calls,
// mirroring uci.Driver's atomic active/closed flags.
func (s *Server) Stop() {
	s.closing.Store(true)
}

// HandleConn upgrades an HTTP request to a websocket and drives it until the
// client disconnects: it registers player's outbound queue, reads inbound
// frames until the connection closes, and tears the registration down.
// Authentication (resolving player from the request) happens upstream.
func (s *Server) HandleConn(ctx context.Context, w http.ResponseWriter, r *http.Request, player organizer.PlayerID) error {
	if s.closing.Load() {
		http.Error(w, "server draining", http.StatusServiceUnavailable)
		return nil
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	out := make(chan string, 64)
	s.in <- organizer.Connect(player, out)
	defer func() { s.in <- organizer.Close(player) }()

	done := make(chan struct{})
	go s.writeLoop(ctx, conn, out, done)

	s.readLoop(ctx, conn, player)
	close(done)
	return nil
}

func (s *Server) writeLoop(ctx context.Context, conn *websocket.Conn, out <-chan string, done <-chan struct{}) {
	for {
		select {
		case msg, ok := <-out:
			if !ok {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				logw.Errorf(ctx, "websocket write failed: %v", err)
				return
			}
		case <-done:
			return
		}
	}
}

func (s *Server) readLoop(ctx context.Context, conn *websocket.Conn, player organizer.PlayerID) {
	for {
		_, body, err := conn.ReadMessage()
		if err != nil {
			logw.Infof(ctx, "websocket closed for %v: %v", player, err)
			return
		}
		if s.closing.Load() {
			logw.Infof(ctx, "server draining; no longer reading from %v", player)
			return
		}

		var frame inboundFrame
		if err := json.Unmarshal(body, &frame); err != nil {
			logw.Debugf(ctx, "malformed frame from %v: %v", player, err)
			continue
		}

		req, ok := decode(player, frame)
		if !ok {
			logw.Debugf(ctx, "unrecognized or malformed action %q from %v", frame.Action, player)
			continue
		}
		s.in <- req
	}
}

func decode(player organizer.PlayerID, frame inboundFrame) (organizer.Request, bool) {
	switch frame.Action {
	case "move":
		var d moveData
		if json.Unmarshal(frame.Data, &d) != nil {
			return organizer.Request{}, false
		}
		return organizer.Move(player, frame.GameID, d.From, d.To), true

	case "chat":
		var text string
		if json.Unmarshal(frame.Data, &text) != nil {
			return organizer.Request{}, false
		}
		return organizer.Chat(player, frame.GameID, text), true

	case "new_game":
		var d newGameData
		if json.Unmarshal(frame.Data, &d) != nil {
			return organizer.Request{}, false
		}
		opts := organizer.NewGameOptions{GameType: organizer.Multiplayer}
		if d.GameType == "Singleplayer" {
			opts.GameType = organizer.Singleplayer
		}
		if d.Opponent != nil {
			opts.Opponent = optionalPlayer(*d.Opponent)
		}
		if d.PreferedColor != nil {
			switch *d.PreferedColor {
			case "White":
				opts.PreferredColor = lang.Some(chess.White)
			case "Black":
				opts.PreferredColor = lang.Some(chess.Black)
			}
		}
		return organizer.NewGame(player, opts), true

	case "end":
		var reason string
		if json.Unmarshal(frame.Data, &reason) != nil {
			return organizer.Request{}, false
		}
		er, ok := decodeEndReason(reason)
		if !ok {
			return organizer.Request{}, false
		}
		return organizer.End(player, frame.GameID, er), true

	case "friend":
		var d friendData
		if json.Unmarshal(frame.Data, &d) != nil {
			return organizer.Request{}, false
		}
		switch d.MsgType {
		case "New":
			return organizer.FriendNew(d.RequestID, player, d.ID), true
		case "Accept":
			return organizer.FriendAccept(d.RequestID, d.ID, player), true
		case "Reject":
			return organizer.FriendReject(d.RequestID, d.ID, player), true
		default:
			// "DeleteNotification" and any other variant: client-visible
			// ack only, per spec.md §9 Open Questions; no organizer state.
			return organizer.Request{}, false
		}

	default:
		return organizer.Request{}, false
	}
}

func decodeEndReason(s string) (organizer.EndReason, bool) {
	switch s {
	case "Resign":
		return organizer.Resign, true
	case "DrawAsk":
		return organizer.DrawAsk, true
	case "DrawConfirm":
		return organizer.DrawConfirm, true
	case "DrawCancel":
		return organizer.DrawCancel, true
	default:
		return 0, false
	}
}
