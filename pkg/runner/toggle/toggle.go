// Package toggle provides the runner that marks today's completion.
package toggle

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/habit/pkg/app"
	"tableflip.dev/habit/pkg/gateway"
	"tableflip.dev/habit/pkg/habit"
	"tableflip.dev/habit/pkg/printers"
)

// Toggle flips today's completion for one habit, addressed by id or by
// name.
type Toggle struct {
	Target  string
	Service *app.Service
}

// Do runs the toggle operation.
func (n *Toggle) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not toggle, no service")
	}

	// Refresh first so the target resolves against the server's list.
	out := n.Service.RefreshAll(ctx)
	if n.Service.State() != app.Authenticated {
		if errors.Is(out.ProfileErr, gateway.ErrUnauthorized) || errors.Is(out.HabitsErr, gateway.ErrUnauthorized) {
			return errors.New("session expired, please log in again")
		}
		return app.ErrNotAuthenticated
	}
	if out.HabitsErr != nil {
		return out.HabitsErr
	}

	target := n.resolve()
	if target == nil {
		return fmt.Errorf("no habit matches %q", n.Target)
	}

	earned, err := n.Service.Toggle(ctx, target.ID)
	if errors.Is(err, gateway.ErrUnauthorized) {
		return errors.New("session expired, please log in again")
	}
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	fmt.Println("")
	pp.Title(target.Name)
	for _, h := range n.Service.Habits() {
		if h.ID == target.ID {
			pp.Habits(h)
		}
	}

	for _, b := range earned {
		info := b.Info()
		c := color.New(color.FgHiYellow, color.Bold)
		_, _ = fmt.Fprintf(color.Output, "%s new badge: %s\n", info.Symbol, c.Sprint(info.Name))
	}

	return nil
}

// resolve matches the target against habit ids first, then
// case-insensitive names.
func (n *Toggle) resolve() *habit.Habit {
	habits := n.Service.Habits()
	for _, h := range habits {
		if h.ID == n.Target {
			return h
		}
	}
	for _, h := range habits {
		if strings.EqualFold(h.Name, n.Target) {
			return h
		}
	}
	return nil
}
