package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/grovetools/launcher/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "launcher.yml", `
actions:
  - command: go test ./...
  - command: deploy --env $env
    label: Deploy
    group: Ops
    revealConsole: false
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	first := cfg.Actions[0]
	if first.EffectiveLabel() != "go test ./..." {
		t.Errorf("label should default to the command, got %q", first.EffectiveLabel())
	}
	if first.EffectiveGroup() != DefaultGroup {
		t.Errorf("group should default to %q, got %q", DefaultGroup, first.EffectiveGroup())
	}
	if !first.ShouldRevealConsole() {
		t.Errorf("revealConsole should default to true")
	}
	if first.Variables == nil {
		t.Errorf("variables should default to an empty map")
	}

	second := cfg.Actions[1]
	if second.Identity() != "Ops/Deploy" {
		t.Errorf("identity = %q", second.Identity())
	}
	if second.ShouldRevealConsole() {
		t.Errorf("explicit revealConsole: false lost")
	}

	if cfg.Shell.Profile != "posix" {
		t.Errorf("shell profile should default to posix, got %q", cfg.Shell.Profile)
	}
}

func TestLoadFromMergesGlobal(t *testing.T) {
	xdgDir := t.TempDir()
	globalDir := filepath.Join(xdgDir, "launcher")
	if err := os.MkdirAll(globalDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, globalDir, "launcher.yml", `
variables:
  "{{registry}}": ghcr.io/global
actions:
  - command: htop
    label: Monitor
    group: System
  - command: deploy --dry-run
    label: Deploy
    group: Ops
`)
	t.Setenv("XDG_CONFIG_HOME", xdgDir)

	projectDir := t.TempDir()
	writeFile(t, projectDir, "launcher.yml", `
actions:
  - command: deploy --env prod
    label: Deploy
    group: Ops
`)

	cfg, err := LoadFrom(projectDir)
	if err != nil {
		t.Fatal(err)
	}

	byIdentity := make(map[string]*Action, len(cfg.Actions))
	for _, action := range cfg.Actions {
		byIdentity[action.Identity()] = action
	}
	if _, ok := byIdentity["System/Monitor"]; !ok {
		t.Error("global-only action missing from the merged catalog")
	}
	deploy, ok := byIdentity["Ops/Deploy"]
	if !ok {
		t.Fatal("Ops/Deploy missing from the merged catalog")
	}
	if deploy.Command != "deploy --env prod" {
		t.Errorf("project config should override the global action, got %q", deploy.Command)
	}
	if cfg.Variables["{{registry}}"] != "ghcr.io/global" {
		t.Errorf("global inner variables should survive the merge, got %v", cfg.Variables)
	}
}

func TestLoadIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "launcher.yml", `
actions:
  - command: echo $name
    variables:
      $name:
        placeholder: Name?
  - command: deploy
    label: Deploy
    group: Ops
`)

	first, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first.Actions, second.Actions) {
		t.Errorf("loading twice produced different catalogs:\n%+v\n%+v", first.Actions, second.Actions)
	}
}

func TestLoadToml(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "launcher.toml", `
[[actions]]
command = "make build"
label = "Build"
group = "Make"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Actions) != 1 || cfg.Actions[0].Identity() != "Make/Build" {
		t.Fatalf("actions = %+v", cfg.Actions)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "launcher.yml"))
	if !errors.Is(err, errors.ErrCodeConfigNotFound) {
		t.Fatalf("expected CONFIG_NOT_FOUND, got %v", err)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errors.ErrorCode
	}{
		{
			name: "action without command",
			content: `
actions:
  - label: Broken
`,
			code: errors.ErrCodeConfigValidation,
		},
		{
			name: "toggler without group",
			content: `
togglers:
  - command1: {label: Start, command: npm start}
    command2: {label: Stop, command: ""}
`,
			code: errors.ErrCodeTogglerInvalid,
		},
		{
			name: "unknown shell profile",
			content: `
shell:
  profile: powershell
`,
			code: errors.ErrCodeConfigValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeFile(t, dir, "launcher.yml", tt.content)
			_, err := Load(path)
			if !errors.Is(err, tt.code) {
				t.Fatalf("expected %s, got %v", tt.code, err)
			}
		})
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("LAUNCHER_TEST_REGION", "eu-west-1")

	dir := t.TempDir()
	path := writeFile(t, dir, "launcher.yml", `
actions:
  - command: aws --region ${env:LAUNCHER_TEST_REGION} s3 ls
    label: S3
  - command: echo ${env:LAUNCHER_TEST_MISSING:-fallback}
    label: Fallback
  - command: cat ${file}
    label: Keep tokens
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := cfg.Actions[0].Command; got != "aws --region eu-west-1 s3 ls" {
		t.Errorf("env expansion: %q", got)
	}
	if got := cfg.Actions[1].Command; got != "echo fallback" {
		t.Errorf("default expansion: %q", got)
	}
	// Built-in tokens do not use the env: prefix and must survive untouched.
	if got := cfg.Actions[2].Command; got != "cat ${file}" {
		t.Errorf("built-in token rewritten: %q", got)
	}
}

func TestFindConfigFileWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "launcher.yml", "actions: []\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	found, err := FindConfigFile(nested)
	if err != nil {
		t.Fatal(err)
	}
	if found != filepath.Join(root, "launcher.yml") {
		t.Errorf("found %q", found)
	}
}

func TestUnmarshalExtension(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "launcher.yml", `
actions: []
logging:
  level: debug
  file:
    enabled: true
    path: /tmp/launcher.log
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	var logCfg struct {
		Level string `yaml:"level"`
		File  struct {
			Enabled bool   `yaml:"enabled"`
			Path    string `yaml:"path"`
		} `yaml:"file"`
	}
	if err := cfg.UnmarshalExtension("logging", &logCfg); err != nil {
		t.Fatal(err)
	}
	if logCfg.Level != "debug" || !logCfg.File.Enabled || logCfg.File.Path != "/tmp/launcher.log" {
		t.Errorf("extension = %+v", logCfg)
	}
}
