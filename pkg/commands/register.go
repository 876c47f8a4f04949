package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/habit/pkg/commands/options"
	"tableflip.dev/habit/pkg/runner/register"
)

func addRegister(topLevel *cobra.Command) {
	ao := &options.AuthOptions{}

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		Example: `
habit register --username ada --email ada@example.com --password hunter2
`,
		RunE: func(_ *cobra.Command, _ []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			s := register.Register{
				Username: ao.Username,
				Email:    ao.Email,
				Password: ao.Password,
				Service:  svc,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddRegisterArgs(cmd, ao)

	topLevel.AddCommand(cmd)
}
