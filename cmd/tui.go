package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/grovetools/launcher/cli"
	"github.com/grovetools/launcher/config"
	"github.com/grovetools/launcher/errors"
	"github.com/grovetools/launcher/input"
	"github.com/grovetools/launcher/toggler"
	"github.com/grovetools/launcher/tui"
)

// NewTuiCmd creates the `tui` command, the long-lived tree view.
func NewTuiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse and run actions in an interactive tree view",
		Long: `Launches the interactive tree of groups, actions and togglers. Terminal
sessions, last-command replay and toggler state persist for the lifetime of
the process, so repeated runs reuse their sessions the way an editor's
embedded terminals would.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			handler := cli.NewErrorHandler(opts.Verbose)

			a, err := newApp(cmd)
			if err != nil {
				return handler.Handle(err)
			}
			defer a.terminals.CloseAll()

			tui.InitializeTUI()
			return handler.Handle(runTreeLoop(cmd, a))
		},
	}
	return cmd
}

// runTreeLoop alternates between the tree program and action execution: the
// tree quits with an outcome, the loop performs it (variable prompts run
// outside the tree's tea program) and relaunches the tree.
func runTreeLoop(cmd *cobra.Command, a *app) error {
	logger := cli.GetLogger(cmd)

	togglerState := toggler.NewState()
	togglerRunner := toggler.NewRunner(togglerState, a.terminals)
	togglerRunner.SetRunTask(func(label string) error {
		return a.runner.RunTask(cmd.Context(), label)
	})

	// Config edits reload the tree between interactions.
	reloadCh := make(chan struct{}, 1)
	if configPath, err := config.FindConfigFile(a.configDir); err == nil {
		watcher, err := config.NewWatcher(configPath, 300, logger.WithField("component", "watcher"), func(string) {
			select {
			case reloadCh <- struct{}{}:
			default:
			}
		})
		if err == nil {
			go watcher.Start(cmd.Context())
		}
	}

	status := ""
	for {
		tree := tui.NewTree(a.cfg, togglerRunner.NextLabel, togglerRunner.IsFirst, reloadCh)
		if status != "" {
			tree.SetStatus(status)
			status = ""
		}

		p := tea.NewProgram(tree, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
		if _, err := p.Run(); err != nil {
			return err
		}

		switch tree.Outcome {
		case tui.OutcomeQuit:
			return nil

		case tui.OutcomeRun:
			if err := a.runner.Run(cmd.Context(), tree.SelectedAction); err != nil {
				status = statusForError(err)
			} else {
				status = "ran " + tree.SelectedAction.Identity()
			}

		case tui.OutcomeLast:
			if err := a.runner.RunLast(cmd.Context(), tree.SelectedAction); err != nil {
				status = statusForError(err)
			} else {
				status = "replayed " + tree.SelectedAction.Identity()
			}

		case tui.OutcomeToggle:
			if err := togglerRunner.Toggle(tree.SelectedToggler); err != nil {
				status = statusForError(err)
			} else {
				status = "next: " + togglerRunner.NextLabel(tree.SelectedToggler)
			}

		case tui.OutcomeReload:
			cfg, _, err := a.catalog()
			if err != nil {
				status = statusForError(err)
			} else {
				a.cfg = cfg
				status = "configuration reloaded"
			}
		}
	}
}

// statusForError renders an error for the tree's status line; cancellation
// stays silent.
func statusForError(err error) string {
	if input.IsCancelled(err) {
		return ""
	}
	if launcherErr, ok := err.(*errors.LauncherError); ok {
		return launcherErr.Message
	}
	return fmt.Sprintf("error: %v", err)
}
