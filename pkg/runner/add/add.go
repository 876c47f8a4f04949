// Package add provides the runner that creates a habit.
package add

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/habit/pkg/app"
	"tableflip.dev/habit/pkg/habit"
	"tableflip.dev/habit/pkg/printers"
)

// Add creates a habit and reprints the refreshed list.
type Add struct {
	Name     string
	Category habit.Category
	Service  *app.Service
}

// Do runs the add operation.
func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add, no service")
	}

	if err := n.Service.CreateHabit(ctx, n.Name, n.Category); err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	fmt.Println("")
	pp.Title("Habits")
	pp.Habits(n.Service.Habits()...)

	return nil
}
