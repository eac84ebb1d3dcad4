// Package cmd wires the launcher subcommands.
package cmd

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grovetools/launcher/cli"
	"github.com/grovetools/launcher/config"
	"github.com/grovetools/launcher/errors"
	"github.com/grovetools/launcher/input"
	"github.com/grovetools/launcher/runner"
	"github.com/grovetools/launcher/storage"
	"github.com/grovetools/launcher/terminal"
	"github.com/grovetools/launcher/version"
)

// NewRootCmd assembles the launcher command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := cli.NewStandardCommand(
		"launcher",
		"Run configured commands with interactive variable resolution",
	)
	rootCmd.Version = version.Version
	cli.SetVersionTemplate(rootCmd, version.GetInfo())

	rootCmd.AddCommand(NewRunCmd())
	rootCmd.AddCommand(NewLastCmd())
	rootCmd.AddCommand(NewToggleCmd())
	rootCmd.AddCommand(NewMenuCmd())
	rootCmd.AddCommand(NewListCmd())
	rootCmd.AddCommand(NewTuiCmd())
	rootCmd.AddCommand(NewStorageCmd())
	rootCmd.AddCommand(NewLogsCmd())
	rootCmd.AddCommand(cli.NewVersionCommand("launcher"))

	cli.ApplyStyledHelpRecursive(rootCmd)

	return rootCmd
}

// app bundles the collaborators a subcommand needs to execute actions.
type app struct {
	cfg       *config.Config
	configDir string
	catalog   runner.Catalog
	store     *storage.ValueStorage
	terminals *terminal.Manager
	input     input.Host
	runner    *runner.Runner
}

// newApp loads the configuration and builds the execution stack around it.
func newApp(cmd *cobra.Command) (*app, error) {
	opts := cli.GetOptions(cmd)
	configPath, err := cli.InitConfig(opts.ConfigFile)
	if err != nil {
		return nil, err
	}
	if configPath == "" {
		return nil, errors.ConfigNotFound("launcher.yml")
	}

	logger := cli.GetLogger(cmd)
	configDir := filepath.Dir(configPath)

	// An explicit --config path is honored verbatim; otherwise the project
	// file is merged over the global one in the XDG config directory.
	catalog := func() (*config.Config, string, error) {
		var cfg *config.Config
		var err error
		if opts.ConfigFile != "" {
			cfg, err = config.Load(configPath)
		} else {
			cfg, err = config.LoadFromWithLogger(configDir, logger)
		}
		if err != nil {
			return nil, "", err
		}
		return cfg, configDir, nil
	}

	cfg, _, err := catalog()
	if err != nil {
		return nil, err
	}

	store := storage.New(configDir)
	host := terminal.NewPtyHost(cfg.Shell, nil)
	terminals := terminal.NewManager(host)
	in := input.NewTTY()

	return &app{
		cfg:       cfg,
		configDir: configDir,
		catalog:   catalog,
		store:     store,
		terminals: terminals,
		input:     in,
		runner:    runner.New(catalog, store, terminals, in),
	}, nil
}

// findAction resolves an action reference: "group/label" first, then a bare
// label. A bare label matching several actions is ambiguous and rejected.
func (a *app) findAction(ref string) (*config.Action, error) {
	for _, action := range a.cfg.Actions {
		if action.Identity() == ref {
			return action, nil
		}
	}

	var matches []*config.Action
	for _, action := range a.cfg.Actions {
		if action.EffectiveLabel() == ref {
			matches = append(matches, action)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return nil, errors.ActionNotFound(ref)
	default:
		var ids []string
		for _, m := range matches {
			ids = append(ids, m.Identity())
		}
		return nil, errors.New(errors.ErrCodeActionNotFound,
			"action '"+ref+"' is ambiguous, use one of: "+strings.Join(ids, ", ")).
			WithDetail("action", ref)
	}
}

// waitFor finishes a one-shot invocation: the action's shell receives an
// exit after the dispatched command so it terminates once the command is
// done, and the process waits for it to drain its output.
func (a *app) waitFor(action *config.Action) error {
	sess, err := a.terminals.ForAction(action)
	if err != nil {
		return err
	}
	if err := sess.SendText("exit"); err != nil {
		return err
	}
	return sess.Wait()
}

// pickAction prompts for an action when none was named on the command line.
func (a *app) pickAction(cmd *cobra.Command, actions []*config.Action) (*config.Action, error) {
	if len(actions) == 0 {
		return nil, errors.ConfigInvalid("no actions defined")
	}
	ids := make([]string, 0, len(actions))
	for _, action := range actions {
		ids = append(ids, action.Identity())
	}
	choice, err := a.input.PromptChoice(cmd.Context(), ids, "Select an action", "", false, false)
	if err != nil {
		return nil, err
	}
	return a.findAction(choice)
}
