package cmd

import (
	"fmt"
	"io"
	stdlog "log"
	"os"

	"github.com/hpcloud/tail"
	"github.com/spf13/cobra"

	"github.com/grovetools/launcher/cli"
	"github.com/grovetools/launcher/config"
	"github.com/grovetools/launcher/logging"
)

// NewLogsCmd creates the `logs` command.
func NewLogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs [component]",
		Short: "Show the launcher's own log output",
		Long: `Prints the log file a launcher component writes to, honoring the logging
section of launcher.yml when it configures an explicit file sink.

Examples:
  # Show today's runner logs
  launcher logs runner

  # Follow the terminal host logs
  launcher logs terminal -f
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			handler := cli.NewErrorHandler(opts.Verbose)

			component := "runner"
			if len(args) == 1 {
				component = args[0]
			}

			// The explicit file sink wins over the per-component default.
			var logCfg logging.Config
			if cfg, err := config.LoadDefault(); err == nil {
				_ = cfg.UnmarshalExtension("logging", &logCfg)
			}
			path := logging.LogFilePath(component, logCfg)
			if path == "" {
				return handler.Handle(fmt.Errorf("no log file location for component %q", component))
			}
			if _, err := os.Stat(path); err != nil {
				fmt.Printf("No logs at %s\n", path)
				return nil
			}

			follow, _ := cmd.Flags().GetBool("follow")
			t, err := tail.TailFile(path, tail.Config{
				Follow:   follow,
				ReOpen:   follow,
				Location: &tail.SeekInfo{Offset: 0, Whence: io.SeekStart},
				Logger:   stdlog.New(io.Discard, "", 0),
			})
			if err != nil {
				return handler.Handle(err)
			}

			for line := range t.Lines {
				if line.Err != nil {
					continue
				}
				fmt.Println(line.Text)
			}
			return nil
		},
	}
	cmd.Flags().BoolP("follow", "f", false, "Follow log output")
	return cmd
}
