package organizer_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/TrickNextos/multiplayer-chess-api/pkg/chess"
	"github.com/TrickNextos/multiplayer-chess-api/pkg/organizer"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct{}

func (fakeStore) GetPlayerData(ctx context.Context, id organizer.PlayerID) (organizer.PlayerData, error) {
	return organizer.PlayerData{ID: id, Username: string(id)}, nil
}
func (fakeStore) GetFriends(ctx context.Context, id organizer.PlayerID) ([]organizer.PlayerID, error) {
	return nil, nil
}
func (fakeStore) GetPlayerGames(ctx context.Context, id organizer.PlayerID) ([]organizer.ArchivedGame, error) {
	return nil, nil
}
func (fakeStore) InsertFriendship(ctx context.Context, a, b organizer.PlayerID) error { return nil }

type archivedCall struct {
	game organizer.ArchivedGame
	body string
}

type recordingStore struct {
	fakeStore
	archived chan archivedCall
}

func newRecordingStore() *recordingStore {
	return &recordingStore{archived: make(chan archivedCall, 8)}
}

func (s *recordingStore) InsertArchivedGame(ctx context.Context, g organizer.ArchivedGame) error {
	s.archived <- archivedCall{game: g}
	return nil
}
func (s *recordingStore) WriteGameFile(ctx context.Context, uuid string, body string) error {
	return nil
}

func pos(x, y int) chess.Position { return chess.Position{X: x, Y: y} }

// harness wires an Organizer to a shared inbound channel and one outbound
// channel per connected player, mirroring how a transport would drive it.
type harness struct {
	in    chan organizer.Request
	out   map[organizer.PlayerID]chan string
	store *recordingStore
}

func newHarness(t *testing.T) *harness {
	store := newRecordingStore()
	h := &harness{
		in:    make(chan organizer.Request, 64),
		out:   map[organizer.PlayerID]chan string{},
		store: store,
	}
	organizer.New(context.Background(), store, h.in)
	t.Cleanup(func() { close(h.in) })
	return h
}

func (h *harness) connect(t *testing.T, player organizer.PlayerID) chan string {
	out := make(chan string, 64)
	h.out[player] = out
	h.in <- organizer.Connect(player, out)
	return out
}

func (h *harness) drain(t *testing.T, player organizer.PlayerID) []envelope {
	var got []envelope
	out := h.out[player]
	for {
		select {
		case s := <-out:
			var e envelope
			require.NoError(t, json.Unmarshal([]byte(s), &e))
			got = append(got, e)
		case <-time.After(20 * time.Millisecond):
			return got
		}
	}
}

type envelope struct {
	Action string           `json:"action"`
	GameID organizer.GameID `json:"game_id"`
	Data   json.RawMessage  `json:"data"`
}

func lastOfAction(envs []envelope, action string) *envelope {
	for i := len(envs) - 1; i >= 0; i-- {
		if envs[i].Action == action {
			return &envs[i]
		}
	}
	return nil
}

// TestScholarsMateArchivesAsWhiteWin runs S1 end to end through the
// organizer's request queue.
func TestScholarsMateArchivesAsWhiteWin(t *testing.T) {
	h := newHarness(t)
	a, b := organizer.PlayerID("A"), organizer.PlayerID("B")
	h.connect(t, a)
	h.connect(t, b)

	h.in <- organizer.NewGame(a, organizer.NewGameOptions{GameType: organizer.Multiplayer})
	h.in <- organizer.NewGame(b, organizer.NewGameOptions{GameType: organizer.Multiplayer})

	aEnvs := h.drain(t, a)
	moveEnv := lastOfAction(aEnvs, "move")
	require.NotNil(t, moveEnv)
	gid := moveEnv.GameID

	moves := []struct{ from, to chess.Position }{
		{pos(4, 6), pos(4, 4)},
		{pos(4, 1), pos(4, 3)},
		{pos(5, 7), pos(2, 4)},
		{pos(1, 0), pos(2, 2)},
		{pos(3, 7), pos(7, 3)},
		{pos(6, 0), pos(5, 2)},
	}
	movers := []organizer.PlayerID{a, b, a, b, a, b}
	for i, m := range moves {
		h.in <- organizer.Move(movers[i], gid, m.from, m.to)
	}
	h.in <- organizer.Move(a, gid, pos(7, 3), pos(5, 1))

	envs := h.drain(t, a)
	end := lastOfAction(envs, "end")
	require.NotNil(t, end, "expected an end envelope for A")

	select {
	case call := <-h.store.archived:
		assert.Equal(t, organizer.OutcomeWhite, call.game.Outcome)
		assert.False(t, call.game.Singleplayer)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("expected an archive insert")
	}
}

// TestMatchmakingQueueIsFIFO runs S5: A and B queue first and are paired;
// C queues afterward and waits alone.
func TestMatchmakingQueueIsFIFO(t *testing.T) {
	h := newHarness(t)
	a, b, c := organizer.PlayerID("A"), organizer.PlayerID("B"), organizer.PlayerID("C")
	h.connect(t, a)
	h.connect(t, b)
	h.connect(t, c)

	h.in <- organizer.NewGame(a, organizer.NewGameOptions{GameType: organizer.Multiplayer})
	h.in <- organizer.NewGame(b, organizer.NewGameOptions{GameType: organizer.Multiplayer})
	h.in <- organizer.NewGame(c, organizer.NewGameOptions{GameType: organizer.Multiplayer})

	aInit := lastOfAction(h.drain(t, a), "init")
	bInit := lastOfAction(h.drain(t, b), "init")
	cEnvs := h.drain(t, c)

	require.NotNil(t, aInit)
	require.NotNil(t, bInit)
	assert.Equal(t, aInit.GameID, bInit.GameID, "A and B must be paired into the same game")
	assert.Nil(t, lastOfAction(cEnvs, "init"), "C must not get a game yet")
}

// TestReconnectReplaysInitAndMove covers S6: after Close+Connect, the
// reconnecting player receives one init then one move envelope with legal
// destinations, since it's still their turn.
func TestReconnectReplaysInitAndMove(t *testing.T) {
	h := newHarness(t)
	a, b := organizer.PlayerID("A"), organizer.PlayerID("B")
	h.connect(t, a)
	h.connect(t, b)
	h.in <- organizer.NewGame(a, organizer.NewGameOptions{GameType: organizer.Multiplayer})
	h.in <- organizer.NewGame(b, organizer.NewGameOptions{GameType: organizer.Multiplayer})
	h.drain(t, a)
	h.drain(t, b)

	h.in <- organizer.Close(a)
	h.connect(t, a)

	envs := h.drain(t, a)
	require.Len(t, envs, 2, "expected exactly init then move on reconnect")
	assert.Equal(t, "init", envs[0].Action)
	assert.Equal(t, "move", envs[1].Action)

	var data struct {
		Playing string `json:"playing"`
	}
	require.NoError(t, json.Unmarshal(envs[0].Data, &data))
	assert.Equal(t, "white", data.Playing)

	var moveEntries []organizer.PieceMoves
	require.NoError(t, json.Unmarshal(envs[1].Data, &moveEntries))
	total := 0
	for _, e := range moveEntries {
		total += len(e.Moves)
	}
	assert.Equal(t, 20, total, "it is still white's turn; A should see all 20 opening moves")
}

// TestDirectInviteConsumesReciprocalNewGame exercises the opponent-targeted
// NewGame path: B invites A, then A's own NewGame(opponent=B) starts the
// game immediately.
func TestDirectInviteConsumesReciprocalNewGame(t *testing.T) {
	h := newHarness(t)
	a, b := organizer.PlayerID("A"), organizer.PlayerID("B")
	h.connect(t, a)
	h.connect(t, b)

	h.in <- organizer.NewGame(b, organizer.NewGameOptions{GameType: organizer.Multiplayer, Opponent: lang.Some(a)})
	req := lastOfAction(h.drain(t, a), "request")
	require.NotNil(t, req, "A should receive a game-invite request envelope")

	h.in <- organizer.NewGame(a, organizer.NewGameOptions{GameType: organizer.Multiplayer, Opponent: lang.Some(b)})
	init := lastOfAction(h.drain(t, a), "init")
	assert.NotNil(t, init, "reciprocal NewGame must start the game")
}

// TestDrawOfferStateMachine covers Offered(A) -> DrawCancel(A) -> Idle, and a
// second DrawCancel being a no-op (§8 idempotence).
func TestDrawOfferStateMachine(t *testing.T) {
	h := newHarness(t)
	a, b := organizer.PlayerID("A"), organizer.PlayerID("B")
	h.connect(t, a)
	h.connect(t, b)
	h.in <- organizer.NewGame(a, organizer.NewGameOptions{GameType: organizer.Multiplayer})
	h.in <- organizer.NewGame(b, organizer.NewGameOptions{GameType: organizer.Multiplayer})
	moveEnv := lastOfAction(h.drain(t, a), "move")
	gid := moveEnv.GameID
	h.drain(t, b)

	h.in <- organizer.End(a, gid, organizer.DrawAsk)
	ask := lastOfAction(h.drain(t, b), "end")
	require.NotNil(t, ask)

	h.in <- organizer.End(a, gid, organizer.DrawCancel)
	cancel := lastOfAction(h.drain(t, b), "end")
	require.NotNil(t, cancel)

	h.in <- organizer.End(a, gid, organizer.DrawCancel) // no-op, already Idle
	assert.Empty(t, h.drain(t, b))
}
