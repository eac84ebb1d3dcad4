package runner

import "testing"

func TestProfile(t *testing.T) {
	tests := []struct {
		name string
		want ShellProfile
	}{
		{"posix", ProfilePosix},
		{"cmd", ProfileCmd},
		{"git-bash", ProfileGitBash},
		{"", ProfilePosix},
		{"fish", ProfilePosix},
	}
	for _, tt := range tests {
		if got := Profile(tt.name); got != tt.want {
			t.Errorf("Profile(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestQuotePath(t *testing.T) {
	t.Run("posix leaves paths alone", func(t *testing.T) {
		if got := ProfilePosix.QuotePath("/home/dev/my project"); got != "/home/dev/my project" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("cmd wraps in double quotes with backslashes", func(t *testing.T) {
		got := ProfileCmd.QuotePath("C:/Users/dev/my project")
		want := `"C:\Users\dev\my project"`
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("git-bash converts drive letters", func(t *testing.T) {
		got := ProfileGitBash.QuotePath(`C:\Users\dev\repo`)
		want := "/c/Users/dev/repo"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("git-bash leaves driveless paths as forward slashes", func(t *testing.T) {
		got := ProfileGitBash.QuotePath(`src\main.go`)
		want := "src/main.go"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})
}
