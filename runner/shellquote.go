package runner

import (
	"strings"
)

// ShellProfile selects how substituted paths are quoted for the target
// shell. It is explicit configuration (shell.profile), never inferred from a
// terminal's display name.
type ShellProfile string

const (
	// ProfilePosix inserts paths unchanged.
	ProfilePosix ShellProfile = "posix"

	// ProfileCmd quotes paths for cmd.exe: double quotes, embedded quotes
	// escaped, separators normalized to backslashes.
	ProfileCmd ShellProfile = "cmd"

	// ProfileGitBash converts Windows drive paths to the /c/... form git
	// bash expects, with forward slashes and a lower-cased drive letter.
	ProfileGitBash ShellProfile = "git-bash"
)

// Profile returns the ShellProfile for a configured profile name, defaulting
// to posix.
func Profile(name string) ShellProfile {
	switch ShellProfile(name) {
	case ProfileCmd:
		return ProfileCmd
	case ProfileGitBash:
		return ProfileGitBash
	default:
		return ProfilePosix
	}
}

// QuotePath makes a resolved path safe as a single token for the profile's
// shell.
func (p ShellProfile) QuotePath(path string) string {
	switch p {
	case ProfileCmd:
		quoted := strings.ReplaceAll(path, "/", `\`)
		quoted = strings.ReplaceAll(quoted, `"`, `\"`)
		return `"` + quoted + `"`
	case ProfileGitBash:
		converted := strings.ReplaceAll(path, `\`, "/")
		if len(converted) >= 2 && converted[1] == ':' && isDriveLetter(converted[0]) {
			converted = "/" + strings.ToLower(converted[:1]) + converted[2:]
		}
		return converted
	default:
		return path
	}
}

func isDriveLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
