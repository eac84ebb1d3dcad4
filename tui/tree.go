package tui

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/grovetools/launcher/config"
	"github.com/grovetools/launcher/tui/theme"
)

// Outcome says what the user asked the tree view to do. The surrounding
// command loop performs the action (prompting happens outside the tree's tea
// program) and relaunches the tree.
type Outcome int

const (
	OutcomeQuit Outcome = iota
	OutcomeRun
	OutcomeLast
	OutcomeToggle
	OutcomeReload
)

type rowKind int

const (
	rowGroup rowKind = iota
	rowAction
	rowToggler
)

type row struct {
	kind    rowKind
	group   string
	action  *config.Action
	toggler *config.TogglerCommand
}

// NextLabelFunc returns the label of the side a toggler would run next.
type NextLabelFunc func(t *config.TogglerCommand) string

// FirstFunc reports whether a toggler's next invocation runs its first side.
// It selects between the label1/label2 taskbar texts.
type FirstFunc func(t *config.TogglerCommand) bool

// Tree is the interactive action browser.
type Tree struct {
	rows      []row
	taskbar   []string
	cursor    int
	width     int
	height    int
	status    string
	nextLabel NextLabelFunc
	first     FirstFunc
	reload    <-chan struct{}

	// Outcome of the finished program.
	Outcome         Outcome
	SelectedAction  *config.Action
	SelectedToggler *config.TogglerCommand
}

// NewTree builds the tree model for a catalog. nextLabel supplies the
// toggler side shown in a toggler row, first selects the taskbar text of a
// two-state toggler; reload, when non-nil, delivers config-change
// notifications that make the tree ask for a reload.
func NewTree(cfg *config.Config, nextLabel NextLabelFunc, first FirstFunc, reload <-chan struct{}) *Tree {
	t := &Tree{
		nextLabel: nextLabel,
		first:     first,
		reload:    reload,
	}
	t.build(cfg)
	return t
}

func (t *Tree) build(cfg *config.Config) {
	byGroup := make(map[string][]*config.Action)
	for _, action := range cfg.Actions {
		// Context-menu actions run through `launcher menu`, not the tree.
		if action.IsContextMenuCommand {
			continue
		}
		group := action.EffectiveGroup()
		byGroup[group] = append(byGroup[group], action)
	}
	togglersByGroup := make(map[string][]*config.TogglerCommand)
	for _, toggle := range cfg.Togglers {
		if !toggle.ShowOnExplorer {
			continue
		}
		togglersByGroup[toggle.Group] = append(togglersByGroup[toggle.Group], toggle)
	}

	groups := make([]string, 0, len(byGroup))
	for group := range byGroup {
		groups = append(groups, group)
	}
	for group := range togglersByGroup {
		if _, ok := byGroup[group]; !ok {
			groups = append(groups, group)
		}
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i] == config.DefaultGroup {
			return false
		}
		if groups[j] == config.DefaultGroup {
			return true
		}
		return groups[i] < groups[j]
	})

	t.buildTaskbar(cfg)

	t.rows = t.rows[:0]
	for _, group := range groups {
		t.rows = append(t.rows, row{kind: rowGroup, group: group})
		for _, action := range byGroup[group] {
			t.rows = append(t.rows, row{kind: rowAction, group: group, action: action})
		}
		for _, toggle := range togglersByGroup[group] {
			t.rows = append(t.rows, row{kind: rowToggler, group: group, toggler: toggle})
		}
	}
	if t.cursor >= len(t.rows) {
		t.cursor = 0
	}
	t.skipGroupRows(1)
}

// buildTaskbar collects the status bar texts of placeOnTaskbar actions and
// togglers. A toggler shows label1 while its first side is next, label2
// otherwise.
func (t *Tree) buildTaskbar(cfg *config.Config) {
	t.taskbar = t.taskbar[:0]
	for _, action := range cfg.Actions {
		if action.PlaceOnTaskbar == nil || action.IsContextMenuCommand {
			continue
		}
		t.taskbar = append(t.taskbar, action.PlaceOnTaskbar.Label)
	}
	for _, toggle := range cfg.Togglers {
		if toggle.PlaceOnTaskbar == nil {
			continue
		}
		label := toggle.PlaceOnTaskbar.Label1
		if t.first != nil && !t.first(toggle) {
			label = toggle.PlaceOnTaskbar.Label2
		}
		t.taskbar = append(t.taskbar, label)
	}
}

type reloadMsg struct{}

func (t *Tree) waitForReload() tea.Cmd {
	if t.reload == nil {
		return nil
	}
	ch := t.reload
	return func() tea.Msg {
		<-ch
		return reloadMsg{}
	}
}

func (t *Tree) Init() tea.Cmd {
	return t.waitForReload()
}

func (t *Tree) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		t.width = msg.Width
		t.height = msg.Height
		return t, nil

	case reloadMsg:
		t.Outcome = OutcomeReload
		return t, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			t.Outcome = OutcomeQuit
			return t, tea.Quit

		case "up", "k":
			t.moveCursor(-1)

		case "down", "j":
			t.moveCursor(1)

		case "enter":
			current := t.current()
			switch {
			case current.action != nil:
				t.Outcome = OutcomeRun
				t.SelectedAction = current.action
				return t, tea.Quit
			case current.toggler != nil:
				t.Outcome = OutcomeToggle
				t.SelectedToggler = current.toggler
				return t, tea.Quit
			}

		case "l":
			if current := t.current(); current.action != nil {
				t.Outcome = OutcomeLast
				t.SelectedAction = current.action
				return t, tea.Quit
			}

		case "t":
			if current := t.current(); current.toggler != nil {
				t.Outcome = OutcomeToggle
				t.SelectedToggler = current.toggler
				return t, tea.Quit
			}

		case "r":
			t.Outcome = OutcomeReload
			return t, tea.Quit
		}
	}
	return t, nil
}

func (t *Tree) current() row {
	if t.cursor < 0 || t.cursor >= len(t.rows) {
		return row{}
	}
	return t.rows[t.cursor]
}

func (t *Tree) moveCursor(delta int) {
	next := t.cursor + delta
	for next >= 0 && next < len(t.rows) && t.rows[next].kind == rowGroup {
		next += delta
	}
	if next >= 0 && next < len(t.rows) {
		t.cursor = next
	}
}

// skipGroupRows moves the cursor off a group header in the given direction.
func (t *Tree) skipGroupRows(delta int) {
	for t.cursor >= 0 && t.cursor < len(t.rows) && t.rows[t.cursor].kind == rowGroup {
		t.cursor += delta
	}
	if t.cursor < 0 || t.cursor >= len(t.rows) {
		t.cursor = 0
	}
}

func (t *Tree) View() string {
	th := theme.DefaultTheme
	var b strings.Builder

	b.WriteString(th.Header.Render("Launcher") + "\n\n")

	for i, r := range t.rows {
		switch r.kind {
		case rowGroup:
			b.WriteString(th.Group.Render(r.group) + "\n")

		case rowAction:
			line := fmt.Sprintf("  %s", r.action.EffectiveLabel())
			if i == t.cursor {
				line = th.Selected.Render(line)
			}
			b.WriteString(line + "  " + th.Muted.Render(r.action.Command) + "\n")

		case rowToggler:
			label := r.toggler.Key()
			if t.nextLabel != nil {
				label = fmt.Sprintf("%s → %s", r.toggler.Key(), t.nextLabel(r.toggler))
			}
			line := fmt.Sprintf("  ⇄ %s", label)
			if i == t.cursor {
				line = th.Selected.Render(line)
			}
			b.WriteString(line + "\n")
		}
	}

	b.WriteString("\n")
	if len(t.taskbar) > 0 {
		b.WriteString(th.Italic.Render(strings.Join(t.taskbar, "  |  ")) + "\n")
	}
	if t.status != "" {
		b.WriteString(th.Info.Render(t.status) + "\n")
	}
	b.WriteString(th.StatusBar.Render("enter run · l last · t/enter toggle · r reload · q quit"))
	return b.String()
}

// SetStatus shows a one-line message above the key hints.
func (t *Tree) SetStatus(status string) {
	t.status = status
}
