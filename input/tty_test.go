package input

import (
	"testing"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func newTestTextModel(initial string, allowEmpty bool) *textModel {
	ti := textinput.New()
	ti.SetValue(initial)
	ti.CursorEnd()
	ti.Focus()
	return &textModel{title: "Name?", input: ti, allowEmpty: allowEmpty}
}

func newTestChoiceModel(options []string, initial string, allowAdditional, allowEmpty bool) *choiceModel {
	ti := textinput.New()
	ti.Focus()
	m := &choiceModel{
		title:           "Pick one",
		input:           ti,
		options:         options,
		initial:         initial,
		allowAdditional: allowAdditional,
		allowEmpty:      allowEmpty,
	}
	m.refilter()
	return m
}

func typeText(t *testing.T, m tea.Model, text string) tea.Model {
	t.Helper()
	for _, r := range text {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func pressEnter(m tea.Model) (tea.Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: tea.KeyEnter})
}

func TestTextModelRejectsBlankUnlessAllowed(t *testing.T) {
	m := newTestTextModel("", false)

	updated, cmd := pressEnter(m)
	if cmd != nil {
		t.Fatal("blank confirm should not finish the prompt")
	}
	if !updated.(*textModel).invalid {
		t.Error("blank confirm should mark the input invalid")
	}

	updated = typeText(t, updated, "world")
	updated, cmd = pressEnter(updated)
	if cmd == nil {
		t.Fatal("valid input should finish the prompt")
	}
	if got := updated.(*textModel).value; got != "world" {
		t.Errorf("value = %q", got)
	}
}

func TestTextModelAllowsBlankWhenConfigured(t *testing.T) {
	m := newTestTextModel("", true)

	updated, cmd := pressEnter(m)
	if cmd == nil {
		t.Fatal("blank confirm should finish when empty values are allowed")
	}
	if got := updated.(*textModel).value; got != "" {
		t.Errorf("value = %q, want empty", got)
	}
}

func TestTextModelEscapeCancels(t *testing.T) {
	m := newTestTextModel("draft", false)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("escape should finish the prompt")
	}
	if !updated.(*textModel).cancelled {
		t.Error("escape should mark the prompt cancelled")
	}
}

func TestChoiceModelPicksHighlightedOption(t *testing.T) {
	m := newTestChoiceModel([]string{"dev", "prod"}, "", false, false)

	moved, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	updated, cmd := pressEnter(moved)
	if cmd == nil {
		t.Fatal("enter on a highlighted option should finish the prompt")
	}
	if got := updated.(*choiceModel).value; got != "prod" {
		t.Errorf("value = %q", got)
	}
}

func TestChoiceModelEmptyConfirmFallsBackToInitial(t *testing.T) {
	m := newTestChoiceModel([]string{"dev", "prod"}, "prod", false, false)

	updated, cmd := pressEnter(m)
	if cmd == nil {
		t.Fatal("enter should finish the prompt")
	}
	if got := updated.(*choiceModel).value; got != "prod" {
		t.Errorf("value = %q, want the preselected default", got)
	}
}

func TestChoiceModelFreeTextNeedsAllowAdditional(t *testing.T) {
	m := newTestChoiceModel([]string{"dev", "prod"}, "", false, false)

	typed := typeText(t, m, "hotfix")
	updated, cmd := pressEnter(typed)
	if cmd != nil {
		t.Fatal("free text should be rejected when additional values are not allowed")
	}
	if updated.(*choiceModel).invalid == "" {
		t.Error("rejected free text should mark the input invalid")
	}

	open := newTestChoiceModel([]string{"dev", "prod"}, "", true, false)
	typedOpen := typeText(t, open, "hotfix")
	accepted, cmd := pressEnter(typedOpen)
	if cmd == nil {
		t.Fatal("free text should be accepted with allowAdditionalValue")
	}
	if got := accepted.(*choiceModel).value; got != "hotfix" {
		t.Errorf("value = %q", got)
	}
}

func TestChoiceModelBlankConfirmRespectsAllowEmpty(t *testing.T) {
	strict := newTestChoiceModel(nil, "", false, false)
	updated, cmd := pressEnter(strict)
	if cmd != nil {
		t.Fatal("blank confirm should not finish without allowEmptyValue")
	}
	if updated.(*choiceModel).invalid == "" {
		t.Error("blank confirm should mark the input invalid")
	}

	lenient := newTestChoiceModel(nil, "", false, true)
	accepted, cmd := pressEnter(lenient)
	if cmd == nil {
		t.Fatal("blank confirm should finish with allowEmptyValue")
	}
	if got := accepted.(*choiceModel).value; got != "" {
		t.Errorf("value = %q, want empty", got)
	}
}
