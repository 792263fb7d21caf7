package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lucasvmx/painel/internal/api"
	"github.com/lucasvmx/painel/internal/auth"
	"github.com/lucasvmx/painel/internal/cache"
	"github.com/lucasvmx/painel/internal/config"
	"github.com/lucasvmx/painel/internal/keepalive"
	"github.com/lucasvmx/painel/internal/session"
	"github.com/lucasvmx/painel/internal/ui"
	"github.com/lucasvmx/painel/internal/ui/messages"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	if err := os.MkdirAll(cfg.StateDir, 0o755); err != nil {
		log.Fatalf("creating state dir: %v", err)
	}

	// The TUI owns the terminal, so logs go to a file.
	logFile, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		log.Fatalf("opening log file: %v", err)
	}
	defer logFile.Close()
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: slog.LevelDebug}))

	db, err := cache.Open(cfg.CachePath)
	if err != nil {
		log.Fatalf("opening cache: %v", err)
	}
	defer db.Close()

	store := session.NewStore(cfg.SessionPath)
	client := api.NewClient(cfg.APIURL, cfg.RequestTimeout, store.Token, logger)
	svc := auth.NewService(client, store, logger)
	state := auth.NewState(svc, logger)

	// The session coordinator reacts to credential rejections raised by
	// the transport; the UI reacts separately once the program runs.
	client.OnUnauthorized(state.Invalidate)

	app := ui.NewApp(cfg, state, svc, db)
	p := tea.NewProgram(app, tea.WithAltScreen())
	client.OnUnauthorized(func() {
		p.Send(messages.SessionExpiredMsg{})
	})

	ka := keepalive.New(svc, state, db, cfg.KeepaliveInterval, logger)
	ka.Start(p)
	defer ka.Stop()

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
