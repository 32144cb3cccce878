// Package sqlstore is a reference implementation of organizer.Store backed
// by sqlite (via modernc.org/sqlite, pure Go, no cgo) through jmoiron/sqlx.
// It is one concrete adapter among possibly several; the organizer only
// depends on the organizer.Store interface (spec.md §6.3).
package sqlstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/TrickNextos/multiplayer-chess-api/pkg/organizer"
)

const schema = `
CREATE TABLE IF NOT EXISTS players (
	id       TEXT PRIMARY KEY,
	username TEXT NOT NULL,
	country  TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS friendships (
	a TEXT NOT NULL,
	b TEXT NOT NULL,
	PRIMARY KEY (a, b)
);

CREATE TABLE IF NOT EXISTS archived_games (
	uuid         TEXT PRIMARY KEY,
	white        TEXT NOT NULL,
	black        TEXT NOT NULL,
	num_moves    INTEGER NOT NULL,
	outcome      TEXT NOT NULL,
	singleplayer INTEGER NOT NULL
);
`

// Store is a sqlx-backed organizer.Store. It also writes archived move-text
// files under gamesDir.
type Store struct {
	db       *sqlx.DB
	gamesDir string
}

// Open opens (creating if necessary) a sqlite database at dsn and ensures
// gamesDir exists for archived game files.
func Open(dsn, gamesDir string) (*Store, error) {
	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %v: %w", dsn, err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	if err := os.MkdirAll(gamesDir, 0o755); err != nil {
		return nil, fmt.Errorf("create games dir %v: %w", gamesDir, err)
	}
	return &Store{db: db, gamesDir: gamesDir}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

type playerRow struct {
	ID       string `db:"id"`
	Username string `db:"username"`
	Country  string `db:"country"`
}

func (s *Store) GetPlayerData(ctx context.Context, id organizer.PlayerID) (organizer.PlayerData, error) {
	var row playerRow
	if err := s.db.GetContext(ctx, &row, `SELECT id, username, country FROM players WHERE id = ?`, string(id)); err != nil {
		return organizer.PlayerData{}, fmt.Errorf("get player %v: %w", id, err)
	}
	return organizer.PlayerData{ID: organizer.PlayerID(row.ID), Username: row.Username, Country: row.Country}, nil
}

func (s *Store) GetFriends(ctx context.Context, id organizer.PlayerID) ([]organizer.PlayerID, error) {
	var rows []string
	q := `SELECT b FROM friendships WHERE a = ? UNION SELECT a FROM friendships WHERE b = ?`
	if err := s.db.SelectContext(ctx, &rows, q, string(id), string(id)); err != nil {
		return nil, fmt.Errorf("get friends of %v: %w", id, err)
	}
	out := make([]organizer.PlayerID, len(rows))
	for i, r := range rows {
		out[i] = organizer.PlayerID(r)
	}
	return out, nil
}

type archivedGameRow struct {
	UUID         string `db:"uuid"`
	White        string `db:"white"`
	Black        string `db:"black"`
	NumMoves     int    `db:"num_moves"`
	Outcome      string `db:"outcome"`
	Singleplayer bool   `db:"singleplayer"`
}

func (s *Store) GetPlayerGames(ctx context.Context, id organizer.PlayerID) ([]organizer.ArchivedGame, error) {
	var rows []archivedGameRow
	q := `SELECT uuid, white, black, num_moves, outcome, singleplayer FROM archived_games WHERE white = ? OR black = ?`
	if err := s.db.SelectContext(ctx, &rows, q, string(id), string(id)); err != nil {
		return nil, fmt.Errorf("get games of %v: %w", id, err)
	}
	out := make([]organizer.ArchivedGame, len(rows))
	for i, r := range rows {
		out[i] = organizer.ArchivedGame{
			UUID:         r.UUID,
			White:        organizer.PlayerID(r.White),
			Black:        organizer.PlayerID(r.Black),
			NumMoves:     r.NumMoves,
			Outcome:      organizer.Outcome(r.Outcome),
			Singleplayer: r.Singleplayer,
		}
	}
	return out, nil
}

func (s *Store) InsertFriendship(ctx context.Context, a, b organizer.PlayerID) error {
	_, err := s.db.ExecContext(ctx, `INSERT OR IGNORE INTO friendships (a, b) VALUES (?, ?)`, string(a), string(b))
	if err != nil {
		return fmt.Errorf("insert friendship %v/%v: %w", a, b, err)
	}
	return nil
}

func (s *Store) InsertArchivedGame(ctx context.Context, g organizer.ArchivedGame) error {
	q := `INSERT INTO archived_games (uuid, white, black, num_moves, outcome, singleplayer) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, q, g.UUID, string(g.White), string(g.Black), g.NumMoves, string(g.Outcome), g.Singleplayer)
	if err != nil {
		return fmt.Errorf("insert archived game %v: %w", g.UUID, err)
	}
	return nil
}

func (s *Store) WriteGameFile(ctx context.Context, uuid string, body string) error {
	path := filepath.Join(s.gamesDir, uuid+".pgn")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return fmt.Errorf("write game file %v: %w", path, err)
	}
	return nil
}
