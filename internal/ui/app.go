// Package ui is the terminal front end: a root model that routes
// between the login, registration and home views based on the session
// state.
package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lucasvmx/painel/internal/auth"
	"github.com/lucasvmx/painel/internal/cache"
	"github.com/lucasvmx/painel/internal/config"
	"github.com/lucasvmx/painel/internal/ui/home"
	"github.com/lucasvmx/painel/internal/ui/login"
	"github.com/lucasvmx/painel/internal/ui/messages"
	"github.com/lucasvmx/painel/internal/ui/register"
	"github.com/lucasvmx/painel/internal/ui/statusbar"
)

// ViewType identifies the active view.
type ViewType int

const (
	// ViewLoading blocks everything while the startup session check
	// runs; neither the login form nor the home view can be reached
	// until it settles.
	ViewLoading ViewType = iota
	ViewLogin
	ViewRegister
	ViewHome
)

// App is the root Bubble Tea model.
type App struct {
	activeView ViewType

	loginForm    login.Model
	registerForm register.Model
	homeView     home.Model
	statusBar    statusbar.Model

	cfg   config.Config
	state *auth.State
	svc   *auth.Service
	cache *cache.DB

	width  int
	height int
}

// NewApp creates the root application model.
func NewApp(cfg config.Config, state *auth.State, svc *auth.Service, db *cache.DB) *App {
	return &App{
		activeView: ViewLoading,
		statusBar:  statusbar.New(),
		cfg:        cfg,
		state:      state,
		svc:        svc,
		cache:      db,
	}
}

// Init kicks off the one-time session bootstrap.
func (a *App) Init() tea.Cmd {
	state := a.state
	return func() tea.Msg {
		state.Bootstrap(context.Background())
		return messages.BootstrapDoneMsg{User: state.CurrentUser()}
	}
}

// Update handles all messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		contentHeight := msg.Height - 1 // Reserve 1 line for status bar.
		a.statusBar.SetSize(msg.Width)
		a.loginForm.SetSize(msg.Width, contentHeight)
		a.registerForm.SetSize(msg.Width, contentHeight)
		a.homeView.SetSize(msg.Width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "q":
			// Only a plain key where no text input is focused.
			if a.activeView == ViewHome {
				return a, tea.Quit
			}
		case "esc":
			if a.activeView == ViewRegister {
				a.showLogin("")
				return a, nil
			}
		}
		// The loading view takes no input.
		if a.activeView == ViewLoading {
			return a, nil
		}

	case messages.BootstrapDoneMsg:
		if msg.User != nil {
			return a, a.showHome(msg.User.Username)
		}
		a.showLogin("")
		return a, nil

	case messages.LoginResultMsg:
		if msg.Err == nil && msg.User != nil {
			return a, a.showHome(msg.User.Username)
		}
		// Let the login form render the error.

	case messages.RegisterResultMsg:
		if msg.Err == nil {
			notice := msg.Message
			if notice == "" {
				notice = "Account created, you can sign in now"
			}
			a.showLogin(notice)
			return a, nil
		}
		// Let the register form render the error.

	case messages.OpenRegisterMsg:
		a.activeView = ViewRegister
		a.registerForm = register.New(a.state)
		a.registerForm.SetSize(a.width, a.height-1)
		return a, nil

	case messages.OpenLoginMsg:
		a.showLogin("")
		return a, nil

	case messages.LogoutMsg:
		a.state.Logout()
		a.showLogin("")
		return a, nil

	case messages.SessionExpiredMsg:
		// The session coordinator already cleared the credential; drop
		// the authenticated view. Unauthenticated views stay as they
		// are, and the bootstrap settles on its own.
		if a.activeView == ViewHome {
			a.showLogin("Session expired, sign in again")
		}
		return a, nil

	case messages.StatusMsg:
		a.statusBar.SetStatus(msg.Text, msg.IsError)
		return a, nil
	}

	// Route to the active view.
	var cmd tea.Cmd
	switch a.activeView {
	case ViewLogin:
		a.loginForm, cmd = a.loginForm.Update(msg)
	case ViewRegister:
		a.registerForm, cmd = a.registerForm.Update(msg)
	case ViewHome:
		a.homeView, cmd = a.homeView.Update(msg)
	}
	return a, cmd
}

// showLogin replaces whatever is on screen with a fresh login form.
func (a *App) showLogin(notice string) {
	a.activeView = ViewLogin
	a.loginForm = login.New(a.state, notice)
	a.loginForm.SetSize(a.width, a.height-1)
	a.statusBar.SetUser("")
	a.statusBar.SetStatus("", false)
}

// showHome switches to the authenticated home view and starts its
// profile load.
func (a *App) showHome(username string) tea.Cmd {
	a.activeView = ViewHome
	a.homeView = home.New(a.state, a.svc, a.cache, a.cfg)
	a.homeView.SetSize(a.width, a.height-1)
	a.statusBar.SetUser(username)
	a.statusBar.SetStatus("", false)
	return a.homeView.Init()
}

// View renders the application.
func (a *App) View() string {
	var content string
	switch a.activeView {
	case ViewLoading:
		content = lipgloss.Place(a.width, a.height-1, lipgloss.Center, lipgloss.Center,
			DimStyle.Render("Checking session..."))
	case ViewLogin:
		content = a.loginForm.View()
	case ViewRegister:
		content = a.registerForm.View()
	case ViewHome:
		content = a.homeView.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, content, a.statusBar.View())
}
