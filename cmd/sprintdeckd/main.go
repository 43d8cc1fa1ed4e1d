// Package main provides the entry point for sprintdeckd, the
// development backend for the sprintdeck board. It serves the REST API
// over an embedded sqlite database.
//
// Usage:
//
//	sprintdeckd [-addr :8080] [-db sprintdeck.db]
//
// The token signing secret comes from SPRINTDECK_SECRET; a random
// default is fine for local development but sessions will not survive
// a restart without a fixed secret.
package main

import (
	"flag"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sprintdeck/sprintdeck/internal/server"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	dbPath := flag.String("db", "sprintdeck.db", "sqlite database path")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	secret := os.Getenv("SPRINTDECK_SECRET")
	if secret == "" {
		secret = uuid.NewString()
		log.Warn("SPRINTDECK_SECRET not set, sessions will not survive a restart")
	}

	store, err := server.OpenStore(*dbPath)
	if err != nil {
		log.WithError(err).Fatal("failed to open database")
	}
	defer store.Close()

	srv := server.New(store, server.NewTokenIssuer(secret), log)

	log.WithField("addr", *addr).Info("sprintdeckd listening")
	if err := srv.Router().Run(*addr); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}
