// Package organizer implements the game organizer: a single-threaded
// coordination engine that multiplexes many connected players onto a
// collection of in-progress chess games, driven by one inbound request
// channel per spec.md §4.5.
package organizer

import "github.com/TrickNextos/multiplayer-chess-api/pkg/chess"

// PlayerID identifies an already-authenticated player. Authentication and
// session issuance happen upstream; the organizer only ever sees the id.
type PlayerID string

// GameID is a stable, random 32-bit in-memory game identifier. It is distinct
// from the UUID allocated for an archived game record (see archive.go).
type GameID uint32

// RequestID keys a pending friend-request record.
type RequestID string

// GameType selects how a NewGame request is matched.
type GameType int

const (
	// Singleplayer creates a game whose two participants are the same player.
	Singleplayer GameType = iota
	// Multiplayer matches against the waiting slot or a named opponent.
	Multiplayer
)

// EndReason is the reason payload of an End request.
type EndReason int

const (
	Resign EndReason = iota
	DrawAsk
	DrawConfirm
	DrawCancel
)

func (r EndReason) String() string {
	switch r {
	case Resign:
		return "resign"
	case DrawAsk:
		return "draw-ask"
	case DrawConfirm:
		return "draw-confirm"
	case DrawCancel:
		return "draw-cancel"
	default:
		return "unknown"
	}
}

// FriendMsgType distinguishes the three friend-request sub-actions.
type FriendMsgType int

const (
	FriendNewMsg FriendMsgType = iota
	FriendAcceptMsg
	FriendRejectMsg
)

// PieceMoves is one entry of an outbound "move" envelope: a piece's filename,
// its current position, and its legal destinations (empty for the side not
// to move). Grounded on original_source's PieceWithMoves shape (SPEC_FULL §4).
type PieceMoves struct {
	Filename string           `json:"filename"`
	Position chess.Position   `json:"position"`
	Moves    []chess.Position `json:"moves"`
}

// ChatEntry is one line of a game's chat log.
type ChatEntry struct {
	Player PlayerID
	Text   string
}
