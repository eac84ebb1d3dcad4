package workspace

import (
	"path/filepath"

	"github.com/moby/patternmatcher"

	"github.com/grovetools/launcher/config"
)

// MatchesPatterns reports whether the workspace-relative path matches any of
// the glob patterns. No patterns means everything matches.
func MatchesPatterns(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	pm, err := patternmatcher.New(patterns)
	if err != nil {
		return false
	}
	ok, err := pm.MatchesOrParentMatches(filepath.ToSlash(relPath))
	return err == nil && ok
}

// ContextMenuActions returns the actions offered for the clicked item:
// those flagged isContextMenuCommand whose filePatterns (if any) match the
// item's workspace-relative path.
func ContextMenuActions(actions []*config.Action, relPath string) []*config.Action {
	var out []*config.Action
	for _, action := range actions {
		if !action.IsContextMenuCommand {
			continue
		}
		if MatchesPatterns(relPath, action.FilePatterns) {
			out = append(out, action)
		}
	}
	return out
}
