package runner

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/grovetools/launcher/config"
	"github.com/grovetools/launcher/input"
	"github.com/grovetools/launcher/workspace"
)

var chooseRootFolderRe = regexp.MustCompile(`\$chooseRootFolder((?:/[^\s;&|"']*)?)`)

// Substituter rewrites command text, replacing built-in tokens with values
// from the invocation context. User $name placeholders are left for the
// resolver. One substituter serves one invocation: a folder chosen for
// $chooseRootFolder is reused for every text substituted with it.
type Substituter struct {
	ws      workspace.Context
	vars    map[string]string
	input   input.Host
	profile ShellProfile

	// defaultRootFolder preseeds the $chooseRootFolder dialog.
	defaultRootFolder string

	chosenFolder string
	folderChosen bool
}

// NewSubstituter creates a substituter for one invocation.
func NewSubstituter(ws workspace.Context, cfg *config.Config, in input.Host) *Substituter {
	s := &Substituter{
		ws:      ws,
		input:   in,
		profile: ProfilePosix,
	}
	if cfg != nil {
		s.vars = cfg.Variables
		s.profile = Profile(cfg.Shell.Profile)
		s.defaultRootFolder = cfg.DefaultRootFolder
	}
	return s
}

// Substitute replaces every built-in token in text. Cancelling the folder
// chooser returns the cancellation marker and aborts the caller's whole
// invocation.
func (s *Substituter) Substitute(ctx context.Context, text string) (string, error) {
	text = s.substituteInnerVariables(text)

	text, err := s.substituteChooseRootFolder(ctx, text)
	if err != nil {
		return "", err
	}

	text = s.substituteActiveFile(text)

	base := s.baseFolder()
	text = strings.ReplaceAll(text, "$baseFolderAbsolutePath", s.quote(base))

	if s.ws.ClickedItem != "" {
		text = strings.ReplaceAll(text, "$clickedItemAbsolutePath", s.quote(s.ws.ClickedItem))
		text = strings.ReplaceAll(text, "$clickedItemRelativePath", s.quote(s.ws.RelativePath(s.ws.ClickedItem)))
	}

	text = strings.ReplaceAll(text, "${pathSeparator}", string(os.PathSeparator))
	return text, nil
}

// substituteInnerVariables applies the user-configured variables: literal
// key to value replacement, before every other token. Longer keys first so
// one key cannot clip another.
func (s *Substituter) substituteInnerVariables(text string) string {
	if len(s.vars) == 0 {
		return text
	}
	keys := make([]string, 0, len(s.vars))
	for k := range s.vars {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	for _, k := range keys {
		text = strings.ReplaceAll(text, k, s.vars[k])
	}
	return text
}

// substituteChooseRootFolder runs before the generic path tokens because a
// trailing path fragment attached to the token is joined onto the chosen
// folder ($chooseRootFolder/sub/dir).
func (s *Substituter) substituteChooseRootFolder(ctx context.Context, text string) (string, error) {
	matches := chooseRootFolderRe.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text, nil
	}

	if !s.folderChosen {
		defaultPath := s.defaultRootFolder
		if defaultPath == "" {
			defaultPath = s.baseFolder()
		}
		folder, err := s.input.PromptFolder(ctx, "Choose a root folder", defaultPath)
		if err != nil {
			return "", err
		}
		s.chosenFolder = folder
		s.folderChosen = true
	}

	return chooseRootFolderRe.ReplaceAllStringFunc(text, func(match string) string {
		fragment := strings.TrimPrefix(match, "$chooseRootFolder")
		joined := s.chosenFolder
		if fragment != "" {
			joined = filepath.Join(joined, filepath.FromSlash(fragment))
		}
		return s.quote(joined)
	}), nil
}

func (s *Substituter) substituteActiveFile(text string) string {
	file := s.ws.ActiveFile

	// Without an active document the file-scoped tokens resolve to "".
	var base, name, ext, dir, wsFolder, quoted string
	if file != "" {
		base = filepath.Base(file)
		ext = filepath.Ext(file)
		name = strings.TrimSuffix(base, ext)
		dir = s.quote(filepath.Dir(file))
		wsFolder = s.quote(s.ws.WorkspaceFor(file))
		quoted = s.quote(file)
	}

	text = strings.ReplaceAll(text, "${file}", quoted)
	text = strings.ReplaceAll(text, "${fileBasenameNoExtension}", name)
	text = strings.ReplaceAll(text, "${fileBasename}", base)
	text = strings.ReplaceAll(text, "${fileExtname}", ext)
	text = strings.ReplaceAll(text, "${fileDirname}", dir)
	text = strings.ReplaceAll(text, "${fileWorkspaceFolder}", wsFolder)
	return text
}

func (s *Substituter) baseFolder() string {
	if s.ws.ClickedItem != "" {
		if root := s.ws.WorkspaceFor(s.ws.ClickedItem); root != "" {
			return root
		}
	}
	return s.ws.BaseFolder()
}

func (s *Substituter) quote(path string) string {
	if path == "" {
		return ""
	}
	return s.profile.QuotePath(path)
}
