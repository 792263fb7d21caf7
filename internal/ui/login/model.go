// Package login is the sign-in form view.
package login

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lucasvmx/painel/internal/api"
	"github.com/lucasvmx/painel/internal/auth"
	"github.com/lucasvmx/painel/internal/ui/messages"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true).Padding(1, 0)
	subStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#828282"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))
)

// Model is the login form view.
type Model struct {
	usernameInput textinput.Model
	passwordInput textinput.Model
	focusIndex    int
	showPassword  bool
	err           string
	notice        string
	submitting    bool
	state         *auth.State
	width         int
	height        int
}

// New creates a new login form. notice is an optional line shown above
// the form, e.g. the success message after registering.
func New(state *auth.State, notice string) Model {
	usernameInput := textinput.New()
	usernameInput.Placeholder = "username"
	usernameInput.Focus()
	usernameInput.Width = 30

	passwordInput := textinput.New()
	passwordInput.Placeholder = "password"
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.Width = 30

	return Model{
		usernameInput: usernameInput,
		passwordInput: passwordInput,
		state:         state,
		notice:        notice,
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
		switch msg.String() {
		case "tab", "shift+tab":
			if m.focusIndex == 0 {
				m.focusIndex = 1
				m.usernameInput.Blur()
				m.passwordInput.Focus()
			} else {
				m.focusIndex = 0
				m.passwordInput.Blur()
				m.usernameInput.Focus()
			}
			return m, nil
		case "ctrl+t":
			m.showPassword = !m.showPassword
			if m.showPassword {
				m.passwordInput.EchoMode = textinput.EchoNormal
			} else {
				m.passwordInput.EchoMode = textinput.EchoPassword
			}
			return m, nil
		case "ctrl+r":
			if !m.submitting {
				return m, func() tea.Msg { return messages.OpenRegisterMsg{} }
			}
			return m, nil
		case "enter":
			if m.submitting {
				return m, nil
			}
			username := strings.TrimSpace(m.usernameInput.Value())
			password := m.passwordInput.Value()
			if username == "" || password == "" {
				m.err = "Username and password required"
				return m, nil
			}
			m.submitting = true
			m.err = ""
			m.notice = ""
			state := m.state
			return m, func() tea.Msg {
				user, err := state.Login(context.Background(), username, password)
				return messages.LoginResultMsg{User: user, Err: err}
			}
		}

	case messages.LoginResultMsg:
		m.submitting = false
		if msg.Err != nil {
			m.err = api.ErrorMessage(msg.Err)
			return m, nil
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.focusIndex == 0 {
		m.usernameInput, cmd = m.usernameInput.Update(msg)
	} else {
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}
	return m, cmd
}

// View renders the login form.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Login"))
	sb.WriteString("\n")
	sb.WriteString(subStyle.Render("Sign in to your account in seconds"))
	sb.WriteString("\n\n")

	if m.notice != "" {
		sb.WriteString(hintStyle.Render(m.notice))
		sb.WriteString("\n\n")
	}

	sb.WriteString(labelStyle.Render("Username:"))
	sb.WriteString("\n")
	sb.WriteString(m.usernameInput.View())
	sb.WriteString("\n\n")
	sb.WriteString(labelStyle.Render("Password:"))
	sb.WriteString("\n")
	sb.WriteString(m.passwordInput.View())
	sb.WriteString("\n\n")

	if m.err != "" {
		sb.WriteString(errorStyle.Render(m.err))
		sb.WriteString("\n\n")
	}

	if m.submitting {
		sb.WriteString("Signing in...")
	} else {
		sb.WriteString(hintStyle.Render("Enter") + " to sign in, " +
			hintStyle.Render("Ctrl+T") + " show/hide password, " +
			hintStyle.Render("Ctrl+R") + " create account")
	}

	content := sb.String()
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
