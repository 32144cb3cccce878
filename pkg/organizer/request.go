package organizer

import (
	"github.com/TrickNextos/multiplayer-chess-api/pkg/chess"
	"github.com/seekerror/stdlib/pkg/lang"
)

// Kind tags the variant of a Request. Go has no sum types; per the trait-
// object redesign note this collapses to a tagged variant plus a dispatch
// table in Organizer.process, rather than a type hierarchy.
type Kind int

const (
	KindConnect Kind = iota
	KindClose
	KindNewGame
	KindMove
	KindChat
	KindEnd
	KindFriendNew
	KindFriendAccept
	KindFriendReject
)

// NewGameOptions is the payload of a NewGame request.
type NewGameOptions struct {
	GameType GameType
	Opponent lang.Optional[PlayerID]

	// PreferredColor is accepted from the wire frame but not consulted by
	// matchmaking: spec.md leaves its effect unspecified beyond presence in
	// the inbound "new_game" frame, so it is carried through unused.
	PreferredColor lang.Optional[chess.Color]
}

// MoveOptions is the payload of a Move request.
type MoveOptions struct {
	From chess.Position
	To   chess.Position
}

// FriendOptions is the payload of FriendNew/FriendAccept/FriendReject.
type FriendOptions struct {
	RequestID RequestID
	Issuer    PlayerID
	Target    PlayerID
}

// Request is one inbound item of the organizer's single inbound queue. Only
// the fields relevant to Kind are populated; the rest are zero.
type Request struct {
	Kind     Kind
	Player   PlayerID
	GameID   GameID
	Outbound chan<- string // Connect only

	NewGame NewGameOptions
	Move    MoveOptions
	Chat    string
	End     EndReason
	Friend  FriendOptions
}

// Connect builds a Connect request registering out as player's outbound
// queue handle.
func Connect(player PlayerID, out chan<- string) Request {
	return Request{Kind: KindConnect, Player: player, Outbound: out}
}

// Close builds a Close request dropping player's outbound queue handle.
func Close(player PlayerID) Request {
	return Request{Kind: KindClose, Player: player}
}

// NewGame builds a NewGame request.
func NewGame(player PlayerID, opts NewGameOptions) Request {
	return Request{Kind: KindNewGame, Player: player, NewGame: opts}
}

// Move builds a Move request against an existing game.
func Move(player PlayerID, game GameID, from, to chess.Position) Request {
	return Request{Kind: KindMove, Player: player, GameID: game, Move: MoveOptions{From: from, To: to}}
}

// Chat builds a Chat request.
func Chat(player PlayerID, game GameID, text string) Request {
	return Request{Kind: KindChat, Player: player, GameID: game, Chat: text}
}

// End builds an End request (resign or draw state machine transition).
func End(player PlayerID, game GameID, reason EndReason) Request {
	return Request{Kind: KindEnd, Player: player, GameID: game, End: reason}
}

// FriendNew builds a FriendNew request.
func FriendNew(requestID RequestID, issuer, target PlayerID) Request {
	return Request{Kind: KindFriendNew, Player: issuer, Friend: FriendOptions{RequestID: requestID, Issuer: issuer, Target: target}}
}

// FriendAccept builds a FriendAccept request.
func FriendAccept(requestID RequestID, issuer, target PlayerID) Request {
	return Request{Kind: KindFriendAccept, Player: target, Friend: FriendOptions{RequestID: requestID, Issuer: issuer, Target: target}}
}

// FriendReject builds a FriendReject request.
func FriendReject(requestID RequestID, issuer, target PlayerID) Request {
	return Request{Kind: KindFriendReject, Player: target, Friend: FriendOptions{RequestID: requestID, Issuer: issuer, Target: target}}
}
