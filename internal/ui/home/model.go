// Package home is the authenticated landing view.
package home

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lucasvmx/painel/internal/api"
	"github.com/lucasvmx/painel/internal/auth"
	"github.com/lucasvmx/painel/internal/cache"
	"github.com/lucasvmx/painel/internal/config"
	"github.com/lucasvmx/painel/internal/ui/messages"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true).Padding(1, 0)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#828282")).Bold(true)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))
	adminStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#FFD700")).Bold(true).Padding(0, 1)
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

// Model is the home view.
type Model struct {
	state   *auth.State
	svc     *auth.Service
	cache   *cache.DB
	cfg     config.Config
	profile *api.Profile
	width   int
	height  int
}

// New creates the home view for the logged-in user.
func New(state *auth.State, svc *auth.Service, db *cache.DB, cfg config.Config) Model {
	return Model{
		state: state,
		svc:   svc,
		cache: db,
		cfg:   cfg,
	}
}

// Init loads the user's profile, cache first, then the network.
func (m Model) Init() tea.Cmd {
	user := m.state.CurrentUser()
	if user == nil {
		return nil
	}
	svc := m.svc
	db := m.cache
	ttl := m.cfg.ProfileTTL
	username := user.Username
	return func() tea.Msg {
		cached, fresh, _ := db.GetProfile(username, ttl)
		if fresh && cached != nil {
			return messages.ProfileLoadedMsg{Profile: cached}
		}
		fetched := svc.Me(context.Background())
		if fetched == nil {
			if cached != nil {
				return messages.ProfileLoadedMsg{Profile: cached}
			}
			return messages.ProfileLoadedMsg{Err: fmt.Errorf("profile unavailable")}
		}
		db.PutProfile(fetched)
		return messages.ProfileLoadedMsg{Profile: fetched}
	}
}

// SetSize sets the viewport dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "l" {
			return m, func() tea.Msg { return messages.LogoutMsg{} }
		}

	case messages.ProfileLoadedMsg:
		if msg.Err == nil {
			m.profile = msg.Profile
		}
		return m, nil
	}
	return m, nil
}

// View renders the home view.
func (m Model) View() string {
	user := m.state.CurrentUser()
	if user == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("Welcome, %s!", user.Username)))
	if m.state.IsAdmin() {
		sb.WriteString("  ")
		sb.WriteString(adminStyle.Render("ADMIN"))
	}
	sb.WriteString("\n\n")

	if m.profile != nil {
		sb.WriteString(labelStyle.Render("Username: "))
		sb.WriteString(valueStyle.Render(m.profile.Username))
		sb.WriteString("\n")
		if m.profile.Email != "" {
			sb.WriteString(labelStyle.Render("Email:    "))
			sb.WriteString(valueStyle.Render(m.profile.Email))
			sb.WriteString("\n")
		}
		sb.WriteString(labelStyle.Render("Roles:    "))
		sb.WriteString(valueStyle.Render(strings.Join(m.profile.Roles, ", ")))
		sb.WriteString("\n")
	} else {
		sb.WriteString(dimStyle.Render("Loading profile..."))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(hintStyle.Render("l") + " to log out, " + hintStyle.Render("q") + " to quit")

	content := sb.String()
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
