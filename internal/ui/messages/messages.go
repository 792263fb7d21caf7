package messages

import (
	"github.com/lucasvmx/painel/internal/api"
	"github.com/lucasvmx/painel/internal/auth"
)

// View transition messages.
type (
	OpenLoginMsg    struct{}
	OpenRegisterMsg struct{}
)

// Data messages.
type (
	// BootstrapDoneMsg reports the end of the startup session check.
	BootstrapDoneMsg struct {
		User *auth.User
	}

	LoginResultMsg struct {
		User *auth.User
		Err  error
	}

	RegisterResultMsg struct {
		Message string
		Err     error
	}

	LogoutMsg struct{}

	// SessionExpiredMsg is sent when the backend rejects the stored
	// credential, from any call, or the keepalive notices staleness.
	SessionExpiredMsg struct{}

	ProfileLoadedMsg struct {
		Profile *api.Profile
		Err     error
	}

	StatusMsg struct {
		Text    string
		IsError bool
	}
)
