// Package whoami provides the runner that prints the account summary.
package whoami

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/habit/pkg/app"
	"tableflip.dev/habit/pkg/gateway"
	"tableflip.dev/habit/pkg/printers"
)

// Whoami refreshes and prints the signed-in user's stats and badges.
type Whoami struct {
	Service *app.Service
}

// Do runs the whoami operation.
func (n *Whoami) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not whoami, no service")
	}

	out := n.Service.RefreshAll(ctx)
	if n.Service.State() != app.Authenticated {
		if errors.Is(out.ProfileErr, gateway.ErrUnauthorized) || errors.Is(out.HabitsErr, gateway.ErrUnauthorized) {
			return errors.New("session expired, please log in again")
		}
		return app.ErrNotAuthenticated
	}
	if out.ProfileErr != nil {
		return out.ProfileErr
	}

	pp := printers.PrettyPrint{}
	fmt.Println("")

	pp.Stats(n.Service.User(), len(n.Service.Habits()), len(n.Service.Badges()))

	pp.NewLine()
	pp.Title("Achievements")
	pp.Badges(n.Service.Badges()...)

	return nil
}
