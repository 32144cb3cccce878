// Package config holds the organizer service's configuration: defaults,
// overridden by a TOML file, overridden again by command-line flags.
package config

import (
	"context"
	"flag"

	"github.com/BurntSushi/toml"
	"github.com/seekerror/logw"
)

// Settings is the global configuration, populated by Setup.
var Settings conf

type conf struct {
	Listen     listenConfiguration
	Store      storeConfiguration
	Archive    archiveConfiguration
	Log        logConfiguration
	InboundLen int `toml:"inbound_queue_depth"`
}

type listenConfiguration struct {
	Addr string `toml:"addr"`
}

type storeConfiguration struct {
	DSN string `toml:"dsn"`
}

type archiveConfiguration struct {
	Dir string `toml:"dir"`
}

type logConfiguration struct {
	Level string `toml:"level"`
}

var (
	confFile     = flag.String("config", "./chessd.toml", "Path to TOML configuration file")
	listenAddr   = flag.String("listen", "", "Websocket listen address (overrides config file)")
	storeDSN     = flag.String("store-dsn", "", "sqlite DSN for the persistent store (overrides config file)")
	archiveDir   = flag.String("archive-dir", "", "Directory to write archived game PGN files (overrides config file)")
	logLevel     = flag.String("log-level", "", "Log level (overrides config file)")
	inboundDepth = flag.Int("inbound-queue-depth", 0, "Organizer inbound queue depth (overrides config file)")
)

// defaults applied before the config file and flags are layered on top.
func defaults() conf {
	return conf{
		Listen:     listenConfiguration{Addr: ":8080"},
		Store:      storeConfiguration{DSN: "chessd.sqlite"},
		Archive:    archiveConfiguration{Dir: "./games"},
		Log:        logConfiguration{Level: "info"},
		InboundLen: 256,
	}
}

// Setup reads the config file (if present) and layers command-line flag
// overrides on top, following frankkopp/FrankyGo's internal/config.Setup
// shape. Call after flag.Parse.
func Setup() {
	Settings = defaults()

	if _, err := toml.DecodeFile(*confFile, &Settings); err != nil {
		logw.Infof(context.Background(), "config file %v not found or invalid, using defaults: %v", *confFile, err)
	}

	if *listenAddr != "" {
		Settings.Listen.Addr = *listenAddr
	}
	if *storeDSN != "" {
		Settings.Store.DSN = *storeDSN
	}
	if *archiveDir != "" {
		Settings.Archive.Dir = *archiveDir
	}
	if *logLevel != "" {
		Settings.Log.Level = *logLevel
	}
	if *inboundDepth != 0 {
		Settings.InboundLen = *inboundDepth
	}
}
