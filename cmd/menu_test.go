package cmd

import (
	"context"
	"reflect"
	"testing"

	"github.com/spf13/cobra"

	"github.com/grovetools/launcher/config"
	"github.com/grovetools/launcher/input"
	"github.com/grovetools/launcher/testutil"
)

func contextMenuConfig() *config.Config {
	cfg := &config.Config{Actions: []*config.Action{
		{Label: "Lint", Group: "Files", Command: "lint ${file}", IsContextMenuCommand: true},
		{Label: "Format", Group: "Files", Command: "fmt ${file}", IsContextMenuCommand: true},
		{Label: "Open", Group: "Tools", Command: "open $clickedItemAbsolutePath", IsContextMenuCommand: true},
	}}
	cfg.SetDefaults()
	return cfg
}

func commandWithContext() *cobra.Command {
	c := &cobra.Command{}
	c.SetContext(context.Background())
	return c
}

func TestPickContextActionStagesGroupThenAction(t *testing.T) {
	cfg := contextMenuConfig()
	in := testutil.NewScriptedInput(testutil.Answer("Files"), testutil.Answer("Format"))
	a := &app{cfg: cfg, input: in}

	action, err := a.pickContextAction(commandWithContext(), cfg.Actions)
	if err != nil {
		t.Fatal(err)
	}
	if action.Identity() != "Files/Format" {
		t.Fatalf("picked %q", action.Identity())
	}

	prompts := in.Prompts()
	if len(prompts) != 2 {
		t.Fatalf("prompts = %d, want group pick then action pick", len(prompts))
	}
	if !reflect.DeepEqual(prompts[0].Options, []string{"Files", "Tools"}) {
		t.Errorf("group pick options = %v", prompts[0].Options)
	}
	if !reflect.DeepEqual(prompts[1].Options, []string{"Lint", "Format"}) {
		t.Errorf("action pick options = %v", prompts[1].Options)
	}
}

func TestPickContextActionSkipsSingleCandidates(t *testing.T) {
	cfg := contextMenuConfig()
	in := testutil.NewScriptedInput()
	a := &app{cfg: cfg, input: in}

	// One group with one action needs no interaction at all.
	action, err := a.pickContextAction(commandWithContext(), cfg.Actions[2:])
	if err != nil {
		t.Fatal(err)
	}
	if action.Identity() != "Tools/Open" {
		t.Fatalf("picked %q", action.Identity())
	}
	if len(in.Prompts()) != 0 {
		t.Errorf("unexpected prompts: %v", in.Prompts())
	}
}

func TestPickContextActionCancelPropagates(t *testing.T) {
	cfg := contextMenuConfig()
	in := testutil.NewScriptedInput(testutil.Cancel())
	a := &app{cfg: cfg, input: in}

	_, err := a.pickContextAction(commandWithContext(), cfg.Actions)
	if !input.IsCancelled(err) {
		t.Fatalf("err = %v, want cancellation", err)
	}
}
