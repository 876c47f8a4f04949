// Package logout provides the runner that ends the session.
package logout

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/habit/pkg/app"
)

// Logout discards the stored token and every cached snapshot.
type Logout struct {
	Service *app.Service
}

// Do runs the logout operation. Logging out twice is fine.
func (n *Logout) Do(_ context.Context) error {
	if n.Service == nil {
		return errors.New("can not logout, no service")
	}

	n.Service.Logout()
	_, _ = fmt.Fprintln(color.Output, color.New(color.Faint).Sprint("logged out"))
	return nil
}
