package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"domainwatch/internal/bot"
	"domainwatch/internal/checker"
	"domainwatch/internal/config"
	"domainwatch/internal/watchlist"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "2006-01-02 15:04:05"})

	// Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Could not load configuration")
	}

	// Watchlist
	store, err := watchlist.NewStore(cfg.WatchlistFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not load watchlist")
	}

	// Availability checker
	chk := checker.NewChecker(cfg.WhoisTimeout, cfg.Restrictions, cfg.TLDs)

	// Run bot
	if err := bot.New(cfg, store, chk).Run(); err != nil {
		log.Fatal().Err(err).Msg("Bot stopped with an error")
	}
}
