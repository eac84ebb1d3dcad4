package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/grovetools/launcher/tui/theme"
)

const helpWidth = 60

// SetStyledHelp replaces a command's help output with the launcher's
// styled rendering.
func SetStyledHelp(cmd *cobra.Command) {
	cmd.SetHelpFunc(renderHelp)
}

// ApplyStyledHelpRecursive styles help for a command tree. Usage output on
// errors is suppressed; the error handler already prints a hint. Call after
// all subcommands are registered.
func ApplyStyledHelpRecursive(cmd *cobra.Command) {
	cmd.SetHelpFunc(renderHelp)
	cmd.SetUsageFunc(func(*cobra.Command) error { return nil })
	for _, sub := range cmd.Commands() {
		ApplyStyledHelpRecursive(sub)
	}
}

func renderHelp(cmd *cobra.Command, _ []string) {
	t := theme.DefaultTheme
	h := &helpRenderer{
		out:     cmd.OutOrStdout(),
		theme:   t,
		width:   wrapWidth(),
		section: lipgloss.NewStyle().Italic(true).Foreground(t.Colors.Yellow),
		name:    lipgloss.NewStyle().Bold(true).Foreground(t.Colors.Blue),
		flag:    lipgloss.NewStyle().Foreground(t.Colors.Violet),
	}
	h.render(cmd)
}

type helpRenderer struct {
	out     io.Writer
	theme   *theme.Theme
	width   int
	section lipgloss.Style
	name    lipgloss.Style
	flag    lipgloss.Style
}

func (h *helpRenderer) printf(format string, args ...any) {
	fmt.Fprintf(h.out, format, args...)
}

func (h *helpRenderer) render(cmd *cobra.Command) {
	title := lipgloss.NewStyle().Bold(true).Foreground(h.theme.Colors.Yellow)
	h.printf(" %s\n", title.Render(strings.ToUpper(cmd.CommandPath())))

	description, examples := splitExamples(cmd.Long)
	if cmd.Short != "" {
		for _, line := range wrap(cmd.Short, h.width) {
			h.printf(" %s\n", h.theme.Italic.Render(line))
		}
	}
	if description != "" && description != cmd.Short {
		h.printf("\n")
		for _, line := range wrap(description, h.width) {
			h.printf(" %s\n", line)
		}
	}

	if cmd.Runnable() || cmd.HasSubCommands() {
		h.printf("\n %s\n", h.section.Render("USAGE"))
		if cmd.Runnable() {
			h.printf(" %s\n", cmd.UseLine())
		}
		if cmd.HasSubCommands() {
			h.printf(" %s [command]\n", cmd.CommandPath())
		}
	}

	h.renderSubcommands(cmd)
	h.renderFlags(cmd)

	if cmd.Example != "" {
		examples = cmd.Example
	}
	if examples != "" {
		h.printf("\n %s\n", h.section.Render("EXAMPLES"))
		h.renderExamples(examples, cmd.CommandPath())
	}

	if cmd.HasSubCommands() {
		h.printf("\n Use \"%s [command] --help\" for more information.\n", cmd.CommandPath())
	}
}

func (h *helpRenderer) renderSubcommands(cmd *cobra.Command) {
	var subs []*cobra.Command
	pad := 0
	for _, sub := range cmd.Commands() {
		if !sub.IsAvailableCommand() {
			continue
		}
		subs = append(subs, sub)
		if len(sub.Name()) > pad {
			pad = len(sub.Name())
		}
	}
	if len(subs) == 0 {
		return
	}

	h.printf("\n %s\n", h.section.Render("COMMANDS"))
	for _, sub := range subs {
		padding := strings.Repeat(" ", pad-len(sub.Name()))
		h.printf(" %s%s  %s\n", h.name.Render(sub.Name()), padding, sub.Short)
	}
}

func (h *helpRenderer) renderFlags(cmd *cobra.Command) {
	var flags []*pflag.Flag
	cmd.LocalFlags().VisitAll(func(f *pflag.Flag) {
		if !f.Hidden {
			flags = append(flags, f)
		}
	})
	if len(flags) == 0 {
		return
	}

	// Parent commands get a one-line flag summary; leaf commands a table.
	if cmd.HasAvailableSubCommands() {
		names := make([]string, 0, len(flags))
		for _, f := range flags {
			if f.Shorthand != "" {
				names = append(names, "-"+f.Shorthand+"/--"+f.Name)
			} else {
				names = append(names, "--"+f.Name)
			}
		}
		h.printf("\n %s\n", h.theme.Muted.Render("Flags: "+strings.Join(names, ", ")))
		return
	}

	h.printf("\n %s\n", h.section.Render("FLAGS"))
	pad := 0
	for _, f := range flags {
		if n := len(flagLabel(f)); n > pad {
			pad = n
		}
	}
	for _, f := range flags {
		label := flagLabel(f)
		usage := f.Usage
		if f.DefValue != "" && f.DefValue != "false" && f.DefValue != "[]" {
			usage += h.theme.Muted.Render(" (default: " + f.DefValue + ")")
		}
		h.printf(" %s%s  %s\n", h.flag.Render(label), strings.Repeat(" ", pad-len(label)), usage)
	}
}

// renderExamples prints example lines: comment lines muted, command lines
// with the binary, subcommand and flags individually colored.
func (h *helpRenderer) renderExamples(examples, cmdPath string) {
	binary := strings.SplitN(cmdPath, " ", 2)[0]
	for _, line := range strings.Split(examples, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			h.printf("\n")
		case strings.HasPrefix(trimmed, "#"):
			h.printf(" %s\n", h.theme.Muted.Render(trimmed))
		default:
			h.printf("  %s\n", h.colorCommandLine(trimmed, binary))
		}
	}
}

func (h *helpRenderer) colorCommandLine(line, binary string) string {
	words := strings.Fields(line)
	for i, word := range words {
		switch {
		case i == 0 && word == binary:
			words[i] = h.name.Render(word)
		case i == 1 && !strings.HasPrefix(word, "-"):
			words[i] = lipgloss.NewStyle().Foreground(h.theme.Colors.Cyan).Render(word)
		case strings.HasPrefix(word, "-"):
			words[i] = h.flag.Render(word)
		}
	}
	return strings.Join(words, " ")
}

func flagLabel(f *pflag.Flag) string {
	if f.Shorthand != "" {
		return "-" + f.Shorthand + ", --" + f.Name
	}
	return "    --" + f.Name
}

// splitExamples cuts a Long description at its Examples: marker.
func splitExamples(long string) (description, examples string) {
	for _, marker := range []string{"\nExamples:\n", "\nExample:\n"} {
		if idx := strings.Index(long, marker); idx != -1 {
			return strings.TrimSpace(long[:idx]), strings.TrimSpace(long[idx+len(marker):])
		}
	}
	return strings.TrimSpace(long), ""
}

func wrapWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 || width > helpWidth {
		return helpWidth
	}
	return width
}

// wrap breaks text into lines of at most width characters, keeping existing
// line breaks.
func wrap(text string, width int) []string {
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		if len(paragraph) <= width {
			lines = append(lines, paragraph)
			continue
		}
		line := ""
		for _, word := range strings.Fields(paragraph) {
			switch {
			case line == "":
				line = word
			case len(line)+1+len(word) <= width:
				line += " " + word
			default:
				lines = append(lines, line)
				line = word
			}
		}
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
