package input

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/grovetools/launcher/tui/theme"
)

// TTY renders prompts with bubbletea on the controlling terminal.
type TTY struct{}

// NewTTY creates the terminal-backed input host.
func NewTTY() *TTY {
	return &TTY{}
}

func (t *TTY) PromptText(ctx context.Context, prompt, initial string, allowEmpty bool) (string, error) {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = prompt
	ti.SetValue(initial)
	ti.CursorEnd()
	ti.Focus()

	m := &textModel{title: prompt, input: ti, allowEmpty: allowEmpty}
	if err := runProgram(ctx, m); err != nil {
		return "", err
	}
	if m.cancelled {
		return "", ErrCancelled
	}
	return m.value, nil
}

func (t *TTY) PromptChoice(ctx context.Context, options []string, placeholder, initial string, allowAdditional, allowEmpty bool) (string, error) {
	// The preselected value is always offered, even when the options list
	// does not contain it.
	if initial != "" && !contains(options, initial) {
		options = append([]string{initial}, options...)
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = placeholder
	ti.Focus()

	m := &choiceModel{
		title:           placeholder,
		input:           ti,
		options:         options,
		initial:         initial,
		allowAdditional: allowAdditional,
		allowEmpty:      allowEmpty,
	}
	m.refilter()
	if err := runProgram(ctx, m); err != nil {
		return "", err
	}
	if m.cancelled {
		return "", ErrCancelled
	}
	return m.value, nil
}

func (t *TTY) PromptFolder(ctx context.Context, placeholder, defaultPath string) (string, error) {
	for {
		path, err := t.PromptText(ctx, placeholder, defaultPath, false)
		if err != nil {
			return "", err
		}
		info, statErr := os.Stat(path)
		if statErr == nil && info.IsDir() {
			return path, nil
		}
		defaultPath = path
	}
}

func runProgram(ctx context.Context, m tea.Model) error {
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithOutput(os.Stderr))
	_, err := p.Run()
	return err
}

func contains(options []string, value string) bool {
	for _, o := range options {
		if o == value {
			return true
		}
	}
	return false
}

type textModel struct {
	title      string
	input      textinput.Model
	allowEmpty bool

	invalid   bool
	value     string
	cancelled bool
}

func (m *textModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *textModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		case "enter":
			value := m.input.Value()
			if !m.allowEmpty && strings.TrimSpace(value) == "" {
				m.invalid = true
				return m, nil
			}
			m.value = value
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.invalid = false
	return m, cmd
}

func (m *textModel) View() string {
	if m.value != "" || m.cancelled {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n", theme.DefaultTheme.Title.Render(m.title), m.input.View())
	if m.invalid {
		fmt.Fprintf(&b, "%s\n", theme.DefaultTheme.Error.Render("Blank value not allowed"))
	}
	return b.String()
}

type choiceModel struct {
	title           string
	input           textinput.Model
	options         []string
	initial         string
	allowAdditional bool
	allowEmpty      bool

	filtered  []string
	selected  int
	invalid   string
	value     string
	cancelled bool
}

func (m *choiceModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *choiceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		case "up", "ctrl+p":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.selected < len(m.filtered)-1 {
				m.selected++
			}
			return m, nil
		case "enter":
			return m.accept()
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refilter()
	return m, cmd
}

func (m *choiceModel) accept() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())
	if m.selected >= 0 && m.selected < len(m.filtered) {
		// A highlighted entry wins over typed text unless the typed text is
		// an accepted additional value.
		if value == "" || !m.allowAdditional || contains(m.options, value) {
			value = m.filtered[m.selected]
		}
	}
	if value == "" {
		value = m.initial
	}

	if value == "" && !m.allowEmpty {
		m.invalid = "Blank value not allowed"
		return m, nil
	}
	if value != "" && !m.allowAdditional && !contains(m.options, value) {
		m.invalid = fmt.Sprintf("%q is not one of the options", value)
		return m, nil
	}

	m.value = value
	return m, tea.Quit
}

func (m *choiceModel) refilter() {
	m.invalid = ""
	query := strings.ToLower(strings.TrimSpace(m.input.Value()))
	m.filtered = m.filtered[:0]
	for _, o := range m.options {
		if query == "" || strings.Contains(strings.ToLower(o), query) {
			m.filtered = append(m.filtered, o)
		}
	}
	if m.selected >= len(m.filtered) {
		m.selected = len(m.filtered) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	if query == "" && m.initial != "" {
		for i, o := range m.filtered {
			if o == m.initial {
				m.selected = i
				break
			}
		}
	}
}

func (m *choiceModel) View() string {
	if m.value != "" || m.cancelled {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n", theme.DefaultTheme.Title.Render(m.title), m.input.View())
	for i, o := range m.filtered {
		if i == m.selected {
			fmt.Fprintf(&b, "%s\n", theme.DefaultTheme.Selected.Render("> "+o))
		} else {
			fmt.Fprintf(&b, "  %s\n", o)
		}
	}
	if len(m.filtered) == 0 {
		fmt.Fprintf(&b, "%s\n", theme.DefaultTheme.Muted.Render("(no matching option)"))
	}
	if m.invalid != "" {
		fmt.Fprintf(&b, "%s\n", theme.DefaultTheme.Error.Render(m.invalid))
	}
	return b.String()
}
