// Package get provides the runner that lists habits with their derived
// metrics.
package get

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/habit/pkg/app"
	"tableflip.dev/habit/pkg/gateway"
	"tableflip.dev/habit/pkg/printers"
)

// Get refreshes and prints the habit list.
type Get struct {
	ShowBadges bool
	Service    *app.Service
}

// Do runs the listing operation.
func (n *Get) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not get, no service")
	}

	out := n.Service.RefreshAll(ctx)
	if err := sessionErr(n.Service, out); err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	fmt.Println("")

	pp.Title("Habits")
	pp.Habits(n.Service.Habits()...)

	if n.ShowBadges {
		pp.Title("Achievements")
		pp.Badges(n.Service.Badges()...)
	}

	// Half the refresh may have failed; the printed data is whatever
	// did land.
	return out.HabitsErr
}

// sessionErr maps a refresh that ended the session to one friendly
// failure instead of two raw ones.
func sessionErr(svc *app.Service, out app.RefreshOutcome) error {
	if svc.State() == app.Unauthenticated {
		if errors.Is(out.ProfileErr, gateway.ErrUnauthorized) || errors.Is(out.HabitsErr, gateway.ErrUnauthorized) {
			return errors.New("session expired, please log in again")
		}
		return app.ErrNotAuthenticated
	}
	return nil
}
