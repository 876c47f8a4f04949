package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/habit/pkg/commands/options"
	"tableflip.dev/habit/pkg/runner/get"
)

func addGet(topLevel *cobra.Command) {
	lo := &options.ListOptions{}

	cmd := &cobra.Command{
		Use:     "get",
		Aliases: []string{"list", "ls"},
		Short:   "List habits with streaks and completion rates",
		Example: `
habit get
habit get --badges
`,
		ValidArgs: []string{},
		RunE: func(_ *cobra.Command, _ []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			s := get.Get{
				ShowBadges: lo.ShowBadges,
				Service:    svc,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddShowBadgesArg(cmd, lo)

	topLevel.AddCommand(cmd)
}
