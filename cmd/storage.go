package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/grovetools/launcher/cli"
	"github.com/grovetools/launcher/errors"
	"github.com/grovetools/launcher/tui/theme"
)

// NewStorageCmd creates the `storage` command group.
func NewStorageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "storage",
		Short: "Inspect and manage stored variable values",
	}
	cmd.AddCommand(newStorageShowCmd())
	cmd.AddCommand(newStorageResetCmd())
	return cmd
}

func newStorageShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the stored values grouped by action",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			handler := cli.NewErrorHandler(opts.Verbose)

			a, err := newApp(cmd)
			if err != nil {
				return handler.Handle(err)
			}

			data, err := a.store.Load()
			if err != nil {
				return handler.Handle(err)
			}

			if opts.JSONOutput {
				out, err := json.MarshalIndent(data, "", "  ")
				if err != nil {
					return handler.Handle(err)
				}
				fmt.Println(string(out))
				return nil
			}

			if len(data) == 0 {
				fmt.Println("No stored values.")
				return nil
			}

			t := theme.DefaultTheme
			groups := make([]string, 0, len(data))
			for group := range data {
				groups = append(groups, group)
			}
			sort.Strings(groups)
			for _, group := range groups {
				labels := make([]string, 0, len(data[group]))
				for label := range data[group] {
					labels = append(labels, label)
				}
				sort.Strings(labels)
				for _, label := range labels {
					fmt.Println(t.Group.Render(group + "/" + label))
					names := make([]string, 0, len(data[group][label]))
					for name := range data[group][label] {
						names = append(names, name)
					}
					sort.Strings(names)
					for _, name := range names {
						value := data[group][label][name]
						if value.IsList {
							fmt.Printf("  %s = %v\n", t.Bold.Render(name), value.List)
						} else {
							fmt.Printf("  %s = %s\n", t.Bold.Render(name), value.Str)
						}
					}
				}
			}
			return nil
		},
	}
}

func newStorageResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete the stored values file",
		Long: `Removes .launcher/values.json. The next stored value recreates it. This is
also the way out of a damaged values file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			handler := cli.NewErrorHandler(opts.Verbose)

			a, err := newApp(cmd)
			if err != nil {
				return handler.Handle(err)
			}

			path := a.store.Path()
			if err := os.Remove(path); err != nil {
				if os.IsNotExist(err) {
					fmt.Println("No stored values to remove.")
					return nil
				}
				return handler.Handle(errors.Wrap(err, errors.ErrCodeInternal, "failed to remove stored values"))
			}
			fmt.Printf("Removed %s\n", path)
			return nil
		},
	}
}
