// Package register is the account-creation form view.
package register

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
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))
)

const numFields = 3

// Model is the registration form view.
type Model struct {
	inputs     []textinput.Model
	focusIndex int
	err        string
	submitting bool
	state      *auth.State
	width      int
	height     int
}

// New creates a new registration form.
func New(state *auth.State) Model {
	username := textinput.New()
	username.Placeholder = "username"
	username.Focus()
	username.Width = 30

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.Width = 30

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.Width = 30

	return Model{
		inputs: []textinput.Model{username, email, password},
		state:  state,
	}
}

// SetSize sets the viewport dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *Model) focus(i int) {
	m.inputs[m.focusIndex].Blur()
	m.focusIndex = i
	m.inputs[i].Focus()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			m.focus((m.focusIndex + 1) % numFields)
			return m, nil
		case "shift+tab":
			m.focus((m.focusIndex + numFields - 1) % numFields)
			return m, nil
		case "enter":
			if m.submitting {
				return m, nil
			}
			username := strings.TrimSpace(m.inputs[0].Value())
			email := strings.TrimSpace(m.inputs[1].Value())
			password := m.inputs[2].Value()
			if username == "" || email == "" || password == "" {
				m.err = "All fields are required"
				return m, nil
			}
			m.submitting = true
			m.err = ""
			state := m.state
			return m, func() tea.Msg {
				result, err := state.Register(context.Background(), username, email, password)
				if err != nil {
					return messages.RegisterResultMsg{Err: err}
				}
				return messages.RegisterResultMsg{Message: result.Message}
			}
		}

	case messages.RegisterResultMsg:
		m.submitting = false
		if msg.Err != nil {
			m.err = api.ErrorMessage(msg.Err)
			return m, nil
		}
		// Success transitions back to login; the app handles it.
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focusIndex], cmd = m.inputs[m.focusIndex].Update(msg)
	return m, cmd
}

// View renders the registration form.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Create account"))
	sb.WriteString("\n\n")

	labels := []string{"Username:", "Email:", "Password:"}
	for i, label := range labels {
		sb.WriteString(labelStyle.Render(label))
		sb.WriteString("\n")
		sb.WriteString(m.inputs[i].View())
		sb.WriteString("\n\n")
	}

	if m.err != "" {
		sb.WriteString(errorStyle.Render(m.err))
		sb.WriteString("\n\n")
	}

	if m.submitting {
		sb.WriteString("Creating account...")
	} else {
		sb.WriteString(hintStyle.Render("Enter") + " to register, " +
			hintStyle.Render("Esc") + " back to login")
	}

	content := sb.String()
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
