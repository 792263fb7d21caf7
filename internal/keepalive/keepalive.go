// Package keepalive polls the session-validity endpoint while a user
// is logged in, so an expired session is noticed before the next user
// action trips over it. It never touches the credential itself.
package keepalive

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/lucasvmx/painel/internal/auth"
	"github.com/lucasvmx/painel/internal/cache"
	"github.com/lucasvmx/painel/internal/ui/messages"
)

// Sender delivers messages into the running UI program. *tea.Program
// satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// Keepalive re-checks the session in the background and refreshes the
// cached profile alongside.
type Keepalive struct {
	svc      *auth.Service
	state    *auth.State
	cache    *cache.DB
	interval time.Duration
	log      *slog.Logger

	program Sender
	stopCh  chan struct{}
}

// New creates a keepalive poller. A zero interval disables it.
func New(svc *auth.Service, state *auth.State, db *cache.DB, interval time.Duration, log *slog.Logger) *Keepalive {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Keepalive{
		svc:      svc,
		state:    state,
		cache:    db,
		interval: interval,
		log:      log.With("component", "keepalive"),
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background polling loop.
func (k *Keepalive) Start(program Sender) {
	if k.interval <= 0 {
		return
	}
	k.program = program
	go k.loop()
}

// Stop halts the background polling.
func (k *Keepalive) Stop() {
	select {
	case <-k.stopCh:
	default:
		close(k.stopCh)
	}
}

func (k *Keepalive) loop() {
	ticker := time.NewTicker(k.interval)
	defer ticker.Stop()

	for {
		select {
		case <-k.stopCh:
			return
		case <-ticker.C:
			k.poll()
		}
	}
}

func (k *Keepalive) poll() {
	user := k.state.CurrentUser()
	if user == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var g errgroup.Group
	g.Go(func() error {
		status := k.svc.CheckAuth(ctx)
		if status == nil {
			// Unreachable backend is not evidence the session died.
			return nil
		}
		if !status.Authenticated {
			k.log.Info("session no longer valid", "username", user.Username)
			k.state.Logout()
			if k.program != nil {
				k.program.Send(messages.SessionExpiredMsg{})
			}
		}
		return nil
	})
	g.Go(func() error {
		if profile := k.svc.Me(ctx); profile != nil {
			k.cache.PutProfile(profile)
		}
		return nil
	})
	g.Wait()
}
