package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/habit/pkg/app"
	"tableflip.dev/habit/pkg/commands/options"
	"tableflip.dev/habit/pkg/gateway"
	"tableflip.dev/habit/pkg/session"
)

var (
	output = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "habit",
		Short: base.Wrap80("Habit tracking on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	options.AddOutputArg(cmd, output)
	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addKey(topLevel)
	addLogin(topLevel)
	addRegister(topLevel)
	addLogout(topLevel)
	addGet(topLevel)
	addAdd(topLevel)
	addDone(topLevel)
	addWhoami(topLevel)
	addVersion(topLevel)
}

// newService assembles the session store and gateway behind one
// reconciliation service, the way every subcommand needs them.
func newService() (*app.Service, error) {
	cfg, err := session.LoadConfig()
	if err != nil {
		return nil, err
	}
	store, err := session.Load(cfg)
	if err != nil {
		return nil, err
	}
	return app.New(store, gateway.New(cfg.APIBase(), store)), nil
}
