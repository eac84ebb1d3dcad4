// Package workspace resolves the editor/workspace surroundings of an
// invocation: workspace roots, the active document and the optional clicked
// item of a context-menu run.
package workspace

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/grovetools/launcher/config"
	"github.com/grovetools/launcher/logging"
)

// ActiveFileEnv names the active document for editors that export it to
// spawned processes. When unset, a running Neovim instance ($NVIM) is asked
// for its current buffer.
const ActiveFileEnv = "LAUNCHER_ACTIVE_FILE"

// Context captures the surroundings of one invocation.
type Context struct {
	// Roots are the workspace root directories; the first is the base
	// folder.
	Roots []string

	// ActiveFile is the absolute path of the active document, or "".
	ActiveFile string

	// ClickedItem is the absolute path of the item a context-menu run was
	// invoked on, or "".
	ClickedItem string
}

// Detect builds the context for an invocation. configDir is the directory of
// the project configuration file ("" when none was found); configured
// workspace roots are resolved relative to it.
func Detect(cfg *config.Config, configDir string) Context {
	ctx := Context{}

	if cfg != nil {
		for _, root := range cfg.Workspaces {
			if !filepath.IsAbs(root) {
				root = filepath.Join(configDir, root)
			}
			ctx.Roots = append(ctx.Roots, filepath.Clean(root))
		}
	}
	if len(ctx.Roots) == 0 {
		if configDir != "" {
			ctx.Roots = []string{configDir}
		} else if cwd, err := os.Getwd(); err == nil {
			ctx.Roots = []string{cwd}
		}
	}

	ctx.ActiveFile = os.Getenv(ActiveFileEnv)
	if ctx.ActiveFile == "" {
		ctx.ActiveFile = activeFileFromNvim(logging.NewLogger("workspace"))
	}
	if ctx.ActiveFile != "" && !filepath.IsAbs(ctx.ActiveFile) {
		if abs, err := filepath.Abs(ctx.ActiveFile); err == nil {
			ctx.ActiveFile = abs
		}
	}

	return ctx
}

// WithClickedItem returns a copy of the context carrying the clicked item as
// an absolute path.
func (c Context) WithClickedItem(path string) Context {
	if path != "" && !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}
	c.ClickedItem = path
	return c
}

// BaseFolder returns the first workspace root, or "".
func (c Context) BaseFolder() string {
	if len(c.Roots) == 0 {
		return ""
	}
	return c.Roots[0]
}

// WorkspaceFor returns the workspace root containing path, or "" when no
// root contains it.
func (c Context) WorkspaceFor(path string) string {
	for _, root := range c.Roots {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			continue
		}
		if rel == "." || (!strings.HasPrefix(rel, "..") && !filepath.IsAbs(rel)) {
			return root
		}
	}
	return ""
}

// RelativePath returns path relative to its containing workspace root, or
// the path unchanged when no root contains it.
func (c Context) RelativePath(path string) string {
	root := c.WorkspaceFor(path)
	if root == "" {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}
