package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

//go:generate go run ../tools/schema-generator/

// DefaultGroup is the group assigned to actions that do not declare one.
const DefaultGroup = "Ungrouped"

// Action is a named, executable command template. Placeholders of the form
// $name are resolved by the runner; built-in tokens (${file},
// $baseFolderAbsolutePath, ...) are substituted from editor/workspace context.
type Action struct {
	Command    string               `yaml:"command" toml:"command" json:"command" jsonschema:"required,description=Command template with optional $name placeholders and built-in tokens"`
	Label      string               `yaml:"label,omitempty" toml:"label,omitempty" json:"label,omitempty" jsonschema:"description=Display label and identity component (defaults to the command text)"`
	Group      string               `yaml:"group,omitempty" toml:"group,omitempty" json:"group,omitempty" jsonschema:"description=Group name used for display and cross-action variable search (default: Ungrouped)"`
	Variables  map[string]*Variable `yaml:"variables,omitempty" toml:"variables,omitempty" json:"variables,omitempty" jsonschema:"description=Inline variable definitions keyed by placeholder name (including the $ prefix)"`
	PreCommand string               `yaml:"preCommand,omitempty" toml:"preCommand,omitempty" json:"preCommand,omitempty" jsonschema:"description=Command sent before the main command in the same terminal line (pre ; main)"`
	Cwd        string               `yaml:"cwd,omitempty" toml:"cwd,omitempty" json:"cwd,omitempty" jsonschema:"description=Working directory for the action's terminal"`

	RevealConsole                 *bool `yaml:"revealConsole,omitempty" toml:"revealConsole,omitempty" json:"revealConsole,omitempty" jsonschema:"description=Reveal the terminal after sending the command (default: true)"`
	IsContextMenuCommand          bool  `yaml:"isContextMenuCommand,omitempty" toml:"isContextMenuCommand,omitempty" json:"isContextMenuCommand,omitempty" jsonschema:"description=Offer this action in the context-menu flow (launcher menu <path>)"`
	SearchVariablesInCurrentGroup bool  `yaml:"searchVariablesInCurrentGroup,omitempty" toml:"searchVariablesInCurrentGroup,omitempty" json:"searchVariablesInCurrentGroup,omitempty" jsonschema:"description=Restrict cross-action variable search to this action's group"`
	SearchStoredValueInCurrentGroup bool `yaml:"searchStoredValueInCurrentGroup,omitempty" toml:"searchStoredValueInCurrentGroup,omitempty" json:"searchStoredValueInCurrentGroup,omitempty" jsonschema:"description=Restrict stored-value lookup to this action's own group and label"`

	PlaceOnTaskbar *TaskbarItem `yaml:"placeOnTaskbar,omitempty" toml:"placeOnTaskbar,omitempty" json:"placeOnTaskbar,omitempty" jsonschema:"description=Show this action in the status bar of the tree view"`
	FilePatterns   []string     `yaml:"filePatterns,omitempty" toml:"filePatterns,omitempty" json:"filePatterns,omitempty" jsonschema:"description=Glob patterns limiting which clicked items a context-menu action applies to"`
}

// EffectiveLabel returns the action's label, falling back to the command text.
func (a *Action) EffectiveLabel() string {
	if a.Label != "" {
		return a.Label
	}
	return a.Command
}

// EffectiveGroup returns the action's group, falling back to DefaultGroup.
func (a *Action) EffectiveGroup() string {
	if a.Group != "" {
		return a.Group
	}
	return DefaultGroup
}

// Identity returns the stable (group, label) identity string used to key
// value storage, terminal sessions and the last-command cache. Unlike the
// in-memory Action pointer it survives catalog reloads.
func (a *Action) Identity() string {
	return a.EffectiveGroup() + "/" + a.EffectiveLabel()
}

// ShouldRevealConsole reports whether the terminal is revealed after dispatch.
func (a *Action) ShouldRevealConsole() bool {
	return a.RevealConsole == nil || *a.RevealConsole
}

// Variable describes how a single placeholder obtains its value.
// Presence of Options selects pick mode; absence selects prompt mode.
type Variable struct {
	Placeholder          string        `yaml:"placeholder,omitempty" toml:"placeholder,omitempty" json:"placeholder,omitempty" jsonschema:"description=Prompt label shown to the user"`
	Options              []string      `yaml:"options,omitempty" toml:"options,omitempty" json:"options,omitempty" jsonschema:"description=Choices for pick mode; omit for free-text prompt mode"`
	AllowEmptyValue      bool          `yaml:"allowEmptyValue,omitempty" toml:"allowEmptyValue,omitempty" json:"allowEmptyValue,omitempty" jsonschema:"description=Accept an empty value"`
	AllowAdditionalValue bool          `yaml:"allowAdditionalValue,omitempty" toml:"allowAdditionalValue,omitempty" json:"allowAdditionalValue,omitempty" jsonschema:"description=Pick mode accepts free text that is not in the options"`
	StoreValue           bool          `yaml:"storeValue,omitempty" toml:"storeValue,omitempty" json:"storeValue,omitempty" jsonschema:"description=Persist the chosen value after a successful run"`
	DefaultValue         *DefaultValue `yaml:"defaultValue,omitempty" toml:"defaultValue,omitempty" json:"defaultValue,omitempty" jsonschema:"description=Default value behavior"`
}

// HasOptions reports whether the variable resolves in pick mode.
func (v *Variable) HasOptions() bool {
	return v.Options != nil
}

// Clone returns a deep copy. The resolver mutates Options and DefaultValue
// while merging stored values, and must not write through to the catalog.
func (v *Variable) Clone() *Variable {
	if v == nil {
		return nil
	}
	out := *v
	if v.Options != nil {
		out.Options = append([]string(nil), v.Options...)
	}
	if v.DefaultValue != nil {
		dv := *v.DefaultValue
		out.DefaultValue = &dv
	}
	return &out
}

// DefaultValue configures how a variable's default interacts with storage
// and interactive resolution.
type DefaultValue struct {
	Value                   string `yaml:"value,omitempty" toml:"value,omitempty" json:"value,omitempty" jsonschema:"description=Default value preseeded into the prompt or picker"`
	SkipDefault             bool   `yaml:"skipDefault,omitempty" toml:"skipDefault,omitempty" json:"skipDefault,omitempty" jsonschema:"description=Bypass interactive resolution when a stored or default value exists"`
	SetStoredValueAsDefault bool   `yaml:"setStoredValueAsDefault,omitempty" toml:"setStoredValueAsDefault,omitempty" json:"setStoredValueAsDefault,omitempty" jsonschema:"description=Refresh the default from storage before prompting"`
}

// TaskbarItem places an action on the status bar.
type TaskbarItem struct {
	Label   string `yaml:"label" toml:"label" json:"label" jsonschema:"required,description=Status bar text"`
	Tooltip string `yaml:"tooltip,omitempty" toml:"tooltip,omitempty" json:"tooltip,omitempty" jsonschema:"description=Status bar tooltip"`
}

// TogglerCommand is a group-scoped two-state flip between two commands.
type TogglerCommand struct {
	Group          string             `yaml:"group" toml:"group" json:"group" jsonschema:"required,description=Toggler group name"`
	Command1       ToggleSide         `yaml:"command1" toml:"command1" json:"command1" jsonschema:"required,description=First side (active on first invocation)"`
	Command2       ToggleSide         `yaml:"command2" toml:"command2" json:"command2" jsonschema:"required,description=Second side"`
	ShowOnExplorer bool               `yaml:"showOnExplorer,omitempty" toml:"showOnExplorer,omitempty" json:"showOnExplorer,omitempty" jsonschema:"description=Show the toggler in the tree view"`
	PlaceOnTaskbar *TogglerTaskbarItem `yaml:"placeOnTaskbar,omitempty" toml:"placeOnTaskbar,omitempty" json:"placeOnTaskbar,omitempty" jsonschema:"description=Show the toggler in the status bar"`
}

// Key returns the process-wide state key for the toggler.
func (t *TogglerCommand) Key() string {
	return t.Group + ":" + t.Command1.Label
}

// ToggleSide is one of the two alternate commands of a toggler. An empty
// Command means the side sends the interrupt byte to the toggler terminal.
type ToggleSide struct {
	Command string `yaml:"command,omitempty" toml:"command,omitempty" json:"command,omitempty" jsonschema:"description=Command text to send; empty sends an interrupt (Ctrl-C)"`
	Label   string `yaml:"label" toml:"label" json:"label" jsonschema:"required,description=Display label for this side"`
	RunTask string `yaml:"runTask,omitempty" toml:"runTask,omitempty" json:"runTask,omitempty" jsonschema:"description=Label of an action to run instead of sending command text"`
}

// TogglerTaskbarItem holds the two-state status bar texts for a toggler.
type TogglerTaskbarItem struct {
	Label1   string `yaml:"label1" toml:"label1" json:"label1" jsonschema:"required,description=Status bar text while the first side is next"`
	Label2   string `yaml:"label2" toml:"label2" json:"label2" jsonschema:"required,description=Status bar text while the second side is next"`
	Tooltip1 string `yaml:"tooltip1,omitempty" toml:"tooltip1,omitempty" json:"tooltip1,omitempty" jsonschema:"description=Tooltip while the first side is next"`
	Tooltip2 string `yaml:"tooltip2,omitempty" toml:"tooltip2,omitempty" json:"tooltip2,omitempty" jsonschema:"description=Tooltip while the second side is next"`
}

// ShellConfig selects the shell behind terminal sessions and the path-quoting
// policy applied to substituted paths. The profile is explicit configuration,
// never inferred from a terminal's display name.
type ShellConfig struct {
	Command string   `yaml:"command,omitempty" toml:"command,omitempty" json:"command,omitempty" jsonschema:"description=Shell executable launched for terminal sessions (default: $SHELL, else /bin/sh)"`
	Args    []string `yaml:"args,omitempty" toml:"args,omitempty" json:"args,omitempty" jsonschema:"description=Arguments passed to the shell"`
	Profile string   `yaml:"profile,omitempty" toml:"profile,omitempty" json:"profile,omitempty" jsonschema:"description=Path-quoting profile: posix (default), cmd, or git-bash"`
}

// Config is the root launcher configuration.
type Config struct {
	Name    string `yaml:"name,omitempty" toml:"name,omitempty" json:"name,omitempty" jsonschema:"description=Name of the configuration"`
	Version string `yaml:"version,omitempty" toml:"version,omitempty" json:"version,omitempty" jsonschema:"description=Configuration version (e.g. '1.0')"`

	// Variables are user-configured inner variables substituted literally
	// into commands before any built-in token.
	Variables map[string]string `yaml:"variables,omitempty" toml:"variables,omitempty" json:"variables,omitempty" jsonschema:"description=Inner variables substituted literally before built-in tokens"`

	Actions  []*Action         `yaml:"actions,omitempty" toml:"actions,omitempty" json:"actions,omitempty" jsonschema:"description=Runnable actions"`
	Togglers []*TogglerCommand `yaml:"togglers,omitempty" toml:"togglers,omitempty" json:"togglers,omitempty" jsonschema:"description=Two-state toggler commands"`

	Workspaces        []string    `yaml:"workspaces,omitempty" toml:"workspaces,omitempty" json:"workspaces,omitempty" jsonschema:"description=Workspace root directories; the first is the base folder"`
	DefaultRootFolder string      `yaml:"defaultRootFolder,omitempty" toml:"defaultRootFolder,omitempty" json:"defaultRootFolder,omitempty" jsonschema:"description=Path preseeded into the $chooseRootFolder dialog"`
	Shell             ShellConfig `yaml:"shell,omitempty" toml:"shell,omitempty" json:"shell,omitempty" jsonschema:"description=Shell and path-quoting configuration"`

	// Extensions holds free-form sections (e.g. logging) decoded on demand
	// with UnmarshalExtension.
	Extensions map[string]interface{} `yaml:",inline" toml:"-" json:"-" jsonschema:"-"`
}

// SetDefaults fills the defaulting rules of the catalog loader contract:
// label falls back to command, group to DefaultGroup, revealConsole to true
// and variables to an empty map.
func (c *Config) SetDefaults() {
	for _, action := range c.Actions {
		if action == nil {
			continue
		}
		if action.Label == "" {
			action.Label = action.Command
		}
		if action.Group == "" {
			action.Group = DefaultGroup
		}
		if action.RevealConsole == nil {
			revealed := true
			action.RevealConsole = &revealed
		}
		if action.Variables == nil {
			action.Variables = map[string]*Variable{}
		}
	}
	if c.Shell.Profile == "" {
		c.Shell.Profile = "posix"
	}
}

// UnmarshalExtension decodes a free-form extension section of launcher.yml
// into the provided target struct. The target must be a pointer. A missing
// section is not an error; the target keeps its zero value.
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "yaml",
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}
