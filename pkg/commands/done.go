package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/habit/pkg/runner/toggle"
)

func addDone(topLevel *cobra.Command) {
	target := ""

	cmd := &cobra.Command{
		Use:     "done <habit>",
		Aliases: []string{"toggle", "complete"},
		Short:   "Flip today's completion for a habit",
		Long:    "Flip today's completion for a habit, addressed by id or by name. Running it again on the same day un-completes it.",
		Example: `
habit done Drink water
habit done 64f1c0ffee
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a habit id or name")
			}
			target = strings.Join(args, " ")
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			s := toggle.Toggle{
				Target:  target,
				Service: svc,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
