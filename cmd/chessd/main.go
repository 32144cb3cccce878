// chessd is the bootstrap for the game-organizer service: it wires the
// sqlite-backed store, the websocket transport, and the organizer event
// loop, then serves until terminated.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/seekerror/logw"

	"github.com/TrickNextos/multiplayer-chess-api/internal/config"
	"github.com/TrickNextos/multiplayer-chess-api/internal/store/sqlstore"
	"github.com/TrickNextos/multiplayer-chess-api/internal/transport/ws"
	"github.com/TrickNextos/multiplayer-chess-api/pkg/organizer"
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: chessd [options]

chessd is the game-organizer service for the multiplayer chess core.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	config.Setup()
	ctx := context.Background()

	store, err := sqlstore.Open(config.Settings.Store.DSN, config.Settings.Archive.Dir)
	if err != nil {
		logw.Exitf(ctx, "Open store failed: %v", err)
	}
	defer store.Close()

	in := make(chan organizer.Request, config.Settings.InboundLen)
	o := organizer.New(ctx, store, in)

	server := ws.NewServer(in)
	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		player := organizer.PlayerID(r.URL.Query().Get("player"))
		if player == "" {
			http.Error(w, "missing player", http.StatusBadRequest)
			return
		}
		if err := server.HandleConn(ctx, w, r, player); err != nil {
			logw.Errorf(ctx, "websocket handshake failed: %v", err)
		}
	})

	logw.Infof(ctx, "chessd listening on %v", config.Settings.Listen.Addr)
	go func() {
		if err := http.ListenAndServe(config.Settings.Listen.Addr, nil); err != nil {
			logw.Exitf(ctx, "HTTP server failed: %v", err)
		}
	}()

	<-o.Closed()
	server.Stop()
}
