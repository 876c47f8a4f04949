// Package ui provides the runner that launches the dashboard.
package ui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/habit/pkg/app"
	"tableflip.dev/habit/pkg/tui/dashboard"
)

// UI runs the full-screen dashboard over the service.
type UI struct {
	Service *app.Service
}

// Do runs the dashboard until the user quits or the session dies.
func (n *UI) Do(_ context.Context) error {
	if n.Service == nil {
		return errors.New("can not run ui, no service")
	}
	if n.Service.State() != app.Authenticated {
		return app.ErrNotAuthenticated
	}

	p := tea.NewProgram(dashboard.New(n.Service), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}

	if m, ok := final.(dashboard.Model); ok && m.Expired() {
		return errors.New("session expired, please log in again")
	}
	return nil
}
