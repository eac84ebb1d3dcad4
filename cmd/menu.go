package cmd

import (
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/grovetools/launcher/cli"
	"github.com/grovetools/launcher/config"
	"github.com/grovetools/launcher/errors"
	"github.com/grovetools/launcher/workspace"
)

// NewMenuCmd creates the `menu` command, the context-menu flow for a file or
// folder.
func NewMenuCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu <path>",
		Short: "Run a context-menu action against a file or folder",
		Long: `Offers the actions flagged isContextMenuCommand whose filePatterns match the
given path, then runs the chosen one with the clicked-item tokens
($clickedItemAbsolutePath, $clickedItemRelativePath) bound to it.

Examples:
  # Offer context actions for a source file
  launcher menu src/main.go

  # Run against a directory
  launcher menu ./migrations
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			handler := cli.NewErrorHandler(opts.Verbose)

			a, err := newApp(cmd)
			if err != nil {
				return handler.Handle(err)
			}
			defer a.terminals.CloseAll()

			clicked, err := filepath.Abs(args[0])
			if err != nil {
				return handler.Handle(err)
			}

			ws := workspace.Detect(a.cfg, a.configDir).WithClickedItem(clicked)
			candidates := workspace.ContextMenuActions(a.cfg.Actions, ws.RelativePath(clicked))
			if len(candidates) == 0 {
				return handler.Handle(errors.ConfigInvalid("no context-menu actions match " + args[0]))
			}

			action, err := a.pickContextAction(cmd, candidates)
			if err != nil {
				return handler.Handle(err)
			}
			if err := a.runner.RunWithClickedItem(cmd.Context(), action, clicked); err != nil {
				return handler.Handle(err)
			}
			return handler.Handle(a.waitFor(action))
		},
	}
	return cmd
}

// pickContextAction runs the two-step context-menu flow: a group pick narrows
// the matching actions, then an action pick selects within the group. Steps
// with a single candidate are skipped.
func (a *app) pickContextAction(cmd *cobra.Command, actions []*config.Action) (*config.Action, error) {
	byGroup := make(map[string][]*config.Action)
	var groups []string
	for _, action := range actions {
		group := action.EffectiveGroup()
		if _, ok := byGroup[group]; !ok {
			groups = append(groups, group)
		}
		byGroup[group] = append(byGroup[group], action)
	}
	sort.Strings(groups)

	group := groups[0]
	if len(groups) > 1 {
		var err error
		group, err = a.input.PromptChoice(cmd.Context(), groups, "Select a group", "", false, false)
		if err != nil {
			return nil, err
		}
	}

	candidates := byGroup[group]
	if len(candidates) == 0 {
		return nil, errors.ActionNotFound(group)
	}
	if len(candidates) == 1 {
		return candidates[0], nil
	}

	labels := make([]string, 0, len(candidates))
	for _, action := range candidates {
		labels = append(labels, action.EffectiveLabel())
	}
	choice, err := a.input.PromptChoice(cmd.Context(), labels, "Select an action", "", false, false)
	if err != nil {
		return nil, err
	}
	for _, action := range candidates {
		if action.EffectiveLabel() == choice {
			return action, nil
		}
	}
	return nil, errors.ActionNotFound(choice)
}
