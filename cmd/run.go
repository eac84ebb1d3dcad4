package cmd

import (
	"github.com/spf13/cobra"

	"github.com/grovetools/launcher/cli"
	"github.com/grovetools/launcher/config"
)

// NewRunCmd creates the `run` command.
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [action]",
		Short: "Run an action, resolving its variables interactively",
		Long: `Runs a configured action. The action reference is either "group/label" or a
bare label when it is unique. Without an argument an interactive picker is
shown.

Placeholders of the form $name are resolved from the action's variables, from
other actions' variables, and from stored values, prompting where needed.
The final command is sent to the action's persistent terminal session.

Examples:
  # Pick an action interactively
  launcher run

  # Run by group and label
  launcher run Ops/Deploy

  # Run by unique label
  launcher run Deploy
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			handler := cli.NewErrorHandler(opts.Verbose)

			a, err := newApp(cmd)
			if err != nil {
				return handler.Handle(err)
			}
			defer a.terminals.CloseAll()

			action, err := resolveActionArg(cmd, a, args)
			if err != nil {
				return handler.Handle(err)
			}
			if err := a.runner.Run(cmd.Context(), action); err != nil {
				return handler.Handle(err)
			}
			return handler.Handle(a.waitFor(action))
		},
	}
	return cmd
}

// NewLastCmd creates the `last` command.
func NewLastCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "last [action]",
		Short: "Re-run an action with its last arguments",
		Long: `Replays the exact command text of the action's previous run in this process,
without prompting for variables again. Without a previous run the action runs
its normal resolution flow.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			handler := cli.NewErrorHandler(opts.Verbose)

			a, err := newApp(cmd)
			if err != nil {
				return handler.Handle(err)
			}
			defer a.terminals.CloseAll()

			action, err := resolveActionArg(cmd, a, args)
			if err != nil {
				return handler.Handle(err)
			}
			if err := a.runner.RunLast(cmd.Context(), action); err != nil {
				return handler.Handle(err)
			}
			return handler.Handle(a.waitFor(action))
		},
	}
	return cmd
}

func resolveActionArg(cmd *cobra.Command, a *app, args []string) (*config.Action, error) {
	if len(args) == 1 {
		return a.findAction(args[0])
	}
	return a.pickAction(cmd, a.cfg.Actions)
}
