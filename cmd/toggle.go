package cmd

import (
	"github.com/spf13/cobra"

	"github.com/grovetools/launcher/cli"
	"github.com/grovetools/launcher/config"
	"github.com/grovetools/launcher/errors"
	"github.com/grovetools/launcher/toggler"
)

// NewToggleCmd creates the `toggle` command.
func NewToggleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toggle [group]",
		Short: "Flip a two-state toggler command",
		Long: `Runs the next side of a configured toggler. The first invocation in a
process runs command1; toggler state lives in the process, so alternating
both sides of a long-running server belongs in 'launcher tui', where the
session and the flip state persist between toggles.

Without an argument an interactive picker is shown. An empty command side
sends an interrupt (Ctrl-C) to the toggler's terminal.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			handler := cli.NewErrorHandler(opts.Verbose)

			a, err := newApp(cmd)
			if err != nil {
				return handler.Handle(err)
			}
			defer a.terminals.CloseAll()

			t, err := pickToggler(cmd, a, args)
			if err != nil {
				return handler.Handle(err)
			}

			runner := toggler.NewRunner(toggler.NewState(), a.terminals)
			runner.SetRunTask(func(label string) error {
				return a.runner.RunTask(cmd.Context(), label)
			})
			if err := runner.Toggle(t); err != nil {
				return handler.Handle(err)
			}

			sess, ok := a.terminals.TogglerTerminal(t)
			if !ok {
				return nil
			}
			if err := sess.SendText("exit"); err != nil {
				return handler.Handle(err)
			}
			return handler.Handle(sess.Wait())
		},
	}
	return cmd
}

func pickToggler(cmd *cobra.Command, a *app, args []string) (*config.TogglerCommand, error) {
	if len(a.cfg.Togglers) == 0 {
		return nil, errors.ConfigInvalid("no togglers defined")
	}

	if len(args) == 1 {
		for _, t := range a.cfg.Togglers {
			if t.Group == args[0] || t.Key() == args[0] {
				return t, nil
			}
		}
		return nil, errors.New(errors.ErrCodeTogglerInvalid, "toggler '"+args[0]+"' not found").
			WithDetail("toggler", args[0])
	}

	keys := make([]string, 0, len(a.cfg.Togglers))
	for _, t := range a.cfg.Togglers {
		keys = append(keys, t.Key())
	}
	choice, err := a.input.PromptChoice(cmd.Context(), keys, "Select a toggler", "", false, false)
	if err != nil {
		return nil, err
	}
	for _, t := range a.cfg.Togglers {
		if t.Key() == choice {
			return t, nil
		}
	}
	return nil, errors.New(errors.ErrCodeTogglerInvalid, "toggler '"+choice+"' not found")
}
