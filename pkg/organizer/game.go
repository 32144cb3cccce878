package organizer

import (
	"github.com/TrickNextos/multiplayer-chess-api/pkg/chess"
	"github.com/seekerror/stdlib/pkg/lang"
)

// Game is the organizer's view of one in-progress session: the rules engine
// plus the per-session derived state spec.md's ChessGame entity names beyond
// the board itself (participants, chat, move log, draw-offer).
type Game struct {
	ID           GameID
	Engine       *chess.ChessGame
	Participants [2]PlayerID // index 0 = White, 1 = Black; same id twice for Singleplayer
	Singleplayer bool

	Chat      []ChatEntry
	MoveLog   []string
	DrawOffer lang.Optional[PlayerID]
}

// newGame constructs a fresh session for the given participants. p0 plays
// White, p1 plays Black.
func newGame(id GameID, p0, p1 PlayerID, singleplayer bool) *Game {
	return &Game{
		ID:           id,
		Engine:       chess.NewGame(),
		Participants: [2]PlayerID{p0, p1},
		Singleplayer: singleplayer,
	}
}

// playerIndex returns the participant index of player, or -1 if player is
// not part of this game.
func (g *Game) playerIndex(player PlayerID) int {
	for i, p := range g.Participants {
		if p == player {
			return i
		}
	}
	return -1
}

// opponentOf returns the other participant's id.
func (g *Game) opponentOf(player PlayerID) PlayerID {
	i := g.playerIndex(player)
	return g.Participants[1-i]
}

// sideToMove returns the PlayerID whose turn it currently is.
func (g *Game) sideToMove() PlayerID {
	return g.Participants[g.Engine.Turn.Index()]
}
