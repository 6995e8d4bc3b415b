package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"unoserver/internal/game"
	"unoserver/internal/logx"
	"unoserver/internal/session"
	"unoserver/internal/uno"
	"unoserver/internal/web"
)

// serve runs one session start to finish. Finishing the game and an
// under-populated lobby both exit cleanly.
func serve(cfg *config) error {
	log := logx.New(cfg.logFile, cfg.verbose)
	defer func() { _ = log.Sync() }()

	scfg := session.Config{
		Host:          cfg.host,
		Port:          cfg.port,
		MinPlayers:    cfg.minPlayers,
		MaxPlayers:    cfg.maxPlayers,
		AcceptTimeout: cfg.acceptTimeout,
		TurnTimeout:   cfg.turnTimeout,
	}
	if err := scfg.Validate(); err != nil {
		return err
	}

	metrics := &session.Metrics{}
	srv := &session.Server{
		Cfg:     scfg,
		Log:     log,
		Metrics: metrics,
		NewEngine: func(players int) (game.Engine, error) {
			return uno.New(players)
		},
	}

	if cfg.webAddr != "" {
		feed := web.NewFeed(log)
		web.NewServer(log, feed, metrics).Start(cfg.webAddr)
		srv.OnBroadcast = feed.Publish
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-quit
		log.Infow("shutting down", "signal", sig.String())
		_ = log.Sync()
		os.Exit(0)
	}()

	if err := srv.Run(); err != nil {
		if errors.Is(err, session.ErrNotEnoughPlayers) {
			log.Infow("session not started", "reason", err.Error())
			return nil
		}
		return err
	}
	return nil
}
