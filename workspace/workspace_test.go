package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/grovetools/launcher/config"
)

func TestDetectRoots(t *testing.T) {
	t.Run("configured workspaces resolve against the config dir", func(t *testing.T) {
		dir := t.TempDir()
		cfg := &config.Config{Workspaces: []string{"frontend", "/abs/backend"}}

		ctx := Detect(cfg, dir)

		if len(ctx.Roots) != 2 {
			t.Fatalf("Roots = %v, want 2 entries", ctx.Roots)
		}
		if ctx.Roots[0] != filepath.Join(dir, "frontend") {
			t.Errorf("Roots[0] = %q", ctx.Roots[0])
		}
		if ctx.Roots[1] != "/abs/backend" {
			t.Errorf("Roots[1] = %q", ctx.Roots[1])
		}
		if ctx.BaseFolder() != filepath.Join(dir, "frontend") {
			t.Errorf("BaseFolder() = %q", ctx.BaseFolder())
		}
	})

	t.Run("config dir is the default root", func(t *testing.T) {
		dir := t.TempDir()
		ctx := Detect(&config.Config{}, dir)
		if len(ctx.Roots) != 1 || ctx.Roots[0] != dir {
			t.Errorf("Roots = %v, want [%s]", ctx.Roots, dir)
		}
	})
}

func TestDetectActiveFileFromEnv(t *testing.T) {
	t.Setenv(ActiveFileEnv, "/work/src/main.go")
	ctx := Detect(&config.Config{}, t.TempDir())
	if ctx.ActiveFile != "/work/src/main.go" {
		t.Errorf("ActiveFile = %q", ctx.ActiveFile)
	}
}

func TestDetectWithoutActiveFile(t *testing.T) {
	t.Setenv(ActiveFileEnv, "")
	t.Setenv("NVIM", "")
	ctx := Detect(&config.Config{}, t.TempDir())
	if ctx.ActiveFile != "" {
		t.Errorf("ActiveFile = %q, want empty", ctx.ActiveFile)
	}
}

func TestWorkspaceForAndRelativePath(t *testing.T) {
	ctx := Context{Roots: []string{"/work/frontend", "/work/backend"}}

	if got := ctx.WorkspaceFor("/work/backend/api/main.go"); got != "/work/backend" {
		t.Errorf("WorkspaceFor() = %q", got)
	}
	if got := ctx.WorkspaceFor("/elsewhere/file.go"); got != "" {
		t.Errorf("WorkspaceFor() = %q, want empty", got)
	}
	if got := ctx.RelativePath("/work/frontend/src/app.ts"); got != filepath.Join("src", "app.ts") {
		t.Errorf("RelativePath() = %q", got)
	}
	if got := ctx.RelativePath("/elsewhere/file.go"); got != "/elsewhere/file.go" {
		t.Errorf("RelativePath() kept absolute, got %q", got)
	}
}

func TestWithClickedItem(t *testing.T) {
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	ctx := Context{}.WithClickedItem("docs/readme.md")
	if ctx.ClickedItem != filepath.Join(cwd, "docs", "readme.md") {
		t.Errorf("ClickedItem = %q", ctx.ClickedItem)
	}
}

func TestContextMenuActions(t *testing.T) {
	actions := []*config.Action{
		{Command: "a", Label: "plain"},
		{Command: "b", Label: "any-file", IsContextMenuCommand: true},
		{Command: "c", Label: "go-only", IsContextMenuCommand: true, FilePatterns: []string{"**/*.go"}},
		{Command: "d", Label: "docs", IsContextMenuCommand: true, FilePatterns: []string{"docs/**"}},
	}

	got := ContextMenuActions(actions, "src/main.go")
	labels := make([]string, len(got))
	for i, a := range got {
		labels[i] = a.Label
	}
	want := []string{"any-file", "go-only"}
	if len(labels) != len(want) {
		t.Fatalf("ContextMenuActions() = %v, want %v", labels, want)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Fatalf("ContextMenuActions() = %v, want %v", labels, want)
		}
	}
}
