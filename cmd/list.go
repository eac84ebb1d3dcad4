package cmd

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/grovetools/launcher/cli"
	"github.com/grovetools/launcher/config"
	"github.com/grovetools/launcher/tui/theme"
)

// NewListCmd creates the `list` command.
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List configured actions and togglers",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			handler := cli.NewErrorHandler(opts.Verbose)

			a, err := newApp(cmd)
			if err != nil {
				return handler.Handle(err)
			}

			if opts.JSONOutput {
				return handler.Handle(printListJSON(a.cfg))
			}
			printList(a.cfg)
			return nil
		},
	}
	return cmd
}

type listedAction struct {
	Group   string `json:"group"`
	Label   string `json:"label"`
	Command string `json:"command"`
}

type listedToggler struct {
	Group    string `json:"group"`
	Command1 string `json:"command1"`
	Command2 string `json:"command2"`
}

func printListJSON(cfg *config.Config) error {
	out := struct {
		Actions  []listedAction  `json:"actions"`
		Togglers []listedToggler `json:"togglers"`
	}{}
	for _, action := range cfg.Actions {
		out.Actions = append(out.Actions, listedAction{
			Group:   action.EffectiveGroup(),
			Label:   action.EffectiveLabel(),
			Command: action.Command,
		})
	}
	for _, t := range cfg.Togglers {
		out.Togglers = append(out.Togglers, listedToggler{
			Group:    t.Group,
			Command1: t.Command1.Label,
			Command2: t.Command2.Label,
		})
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func printList(cfg *config.Config) {
	t := theme.DefaultTheme

	byGroup := make(map[string][]*config.Action)
	for _, action := range cfg.Actions {
		group := action.EffectiveGroup()
		byGroup[group] = append(byGroup[group], action)
	}
	groups := make([]string, 0, len(byGroup))
	for group := range byGroup {
		groups = append(groups, group)
	}
	sort.Strings(groups)

	for _, group := range groups {
		fmt.Println(t.Group.Render(group))
		for _, action := range byGroup[group] {
			fmt.Printf("  %s  %s\n", t.Bold.Render(action.EffectiveLabel()), t.Muted.Render(action.Command))
		}
	}

	if len(cfg.Togglers) > 0 {
		fmt.Println(t.Header.Render("Togglers"))
		for _, toggle := range cfg.Togglers {
			fmt.Printf("  %s  %s\n", t.Bold.Render(toggle.Key()),
				t.Muted.Render(toggle.Command1.Label+" / "+toggle.Command2.Label))
		}
	}
}
