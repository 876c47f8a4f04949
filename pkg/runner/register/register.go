// Package register provides the runner that creates an account.
package register

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/habit/pkg/app"
	"tableflip.dev/habit/pkg/printers"
)

// Register creates an account and opens a session for it.
type Register struct {
	Username string
	Email    string
	Password string
	Service  *app.Service
}

// Do runs the register operation.
func (n *Register) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not register, no service")
	}

	if err := n.Service.Register(ctx, n.Username, n.Email, n.Password); err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	fmt.Println("")

	user := n.Service.User()
	if user != nil {
		pp.Title(fmt.Sprintf("Welcome, %s", user.Username))
	}
	pp.Stats(user, len(n.Service.Habits()), len(n.Service.Badges()))

	return nil
}
