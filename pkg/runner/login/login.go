// Package login provides the runner that opens a session.
package login

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/habit/pkg/app"
	"tableflip.dev/habit/pkg/printers"
)

// Login authenticates with the habit service and prints the account
// summary.
type Login struct {
	Email    string
	Password string
	Service  *app.Service
}

// Do runs the login operation.
func (n *Login) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not login, no service")
	}

	if err := n.Service.Login(ctx, n.Email, n.Password); err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	fmt.Println("")

	user := n.Service.User()
	if user != nil {
		pp.Title(fmt.Sprintf("Welcome back, %s", user.Username))
	}
	pp.Stats(user, len(n.Service.Habits()), len(n.Service.Badges()))

	return nil
}
