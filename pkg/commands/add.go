package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/habit/pkg/commands/options"
	"tableflip.dev/habit/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	ho := &options.HabitOptions{}
	name := ""

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a habit",
		Example: `
habit add Drink water
habit add Read 20 pages --category learning
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a habit name")
			}
			name = strings.Join(args, " ")
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			category, err := ho.Resolve()
			if err != nil {
				return err
			}
			svc, err := newService()
			if err != nil {
				return err
			}
			s := add.Add{
				Name:     name,
				Category: category,
				Service:  svc,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddCategoryArg(cmd, ho)

	topLevel.AddCommand(cmd)
}
