// Package runner executes actions: it substitutes built-in tokens,
// resolves $name placeholders through layered lookup, storage and
// interactive prompts, dispatches the final text to the action's terminal
// session, and persists chosen values afterwards.
package runner

import (
	"context"
	"regexp"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/launcher/config"
	"github.com/grovetools/launcher/errors"
	"github.com/grovetools/launcher/input"
	"github.com/grovetools/launcher/logging"
	"github.com/grovetools/launcher/storage"
	"github.com/grovetools/launcher/terminal"
	"github.com/grovetools/launcher/workspace"
)

// placeholderRe finds $name placeholders in the substituted command text, in
// order of first appearance.
var placeholderRe = regexp.MustCompile(`\$\w+`)

// Catalog re-reads the configuration at the start of every top-level
// invocation, so edits are observed without restarting.
type Catalog func() (*config.Config, string, error)

// Runner owns the single-flight execution flag, the last-command cache and
// the collaborators of the resolution state machine.
type Runner struct {
	catalog   Catalog
	store     *storage.ValueStorage
	terminals *terminal.Manager
	input     input.Host
	log       *logrus.Entry

	mu           sync.Mutex
	executing    bool
	lastCommands map[string]string
}

// New creates a runner.
func New(catalog Catalog, store *storage.ValueStorage, terminals *terminal.Manager, in input.Host) *Runner {
	return &Runner{
		catalog:      catalog,
		store:        store,
		terminals:    terminals,
		input:        in,
		log:          logging.NewLogger("runner"),
		lastCommands: make(map[string]string),
	}
}

// begin claims the single-flight execution flag. A second top-level
// invocation while one runs is rejected, not queued.
func (r *Runner) begin() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.executing {
		return errors.ExecutionBusy()
	}
	r.executing = true
	return nil
}

func (r *Runner) end() {
	r.mu.Lock()
	r.executing = false
	r.mu.Unlock()
}

// Run executes the action, resolving its placeholders interactively.
func (r *Runner) Run(ctx context.Context, action *config.Action) error {
	return r.RunWithClickedItem(ctx, action, "")
}

// RunWithClickedItem executes the action in the context of a clicked file or
// folder, enabling the clicked-item tokens.
func (r *Runner) RunWithClickedItem(ctx context.Context, action *config.Action, clickedItem string) error {
	if err := r.begin(); err != nil {
		return err
	}
	defer r.end()
	return r.run(ctx, action, clickedItem)
}

// RunLast replays the action's last executed command without re-resolving
// variables. Without a cached command the action runs the full resolution
// flow instead.
func (r *Runner) RunLast(ctx context.Context, action *config.Action) error {
	if err := r.begin(); err != nil {
		return err
	}
	defer r.end()

	r.mu.Lock()
	last, ok := r.lastCommands[action.Identity()]
	r.mu.Unlock()

	if !ok {
		return r.run(ctx, action, "")
	}

	cfg, configDir, err := r.catalog()
	if err != nil {
		return err
	}
	ws := workspace.Detect(cfg, configDir)
	sub := NewSubstituter(ws, cfg, r.input)
	return r.dispatch(ctx, sub, action, last)
}

// RunTask executes the action with the given label, for toggler sides that
// declare runTask.
func (r *Runner) RunTask(ctx context.Context, label string) error {
	if err := r.begin(); err != nil {
		return err
	}
	defer r.end()

	cfg, _, err := r.catalog()
	if err != nil {
		return err
	}
	for _, action := range cfg.Actions {
		if action.EffectiveLabel() == label {
			return r.run(ctx, action, "")
		}
	}
	return errors.ActionNotFound(label)
}

type resolvedVariable struct {
	name   string
	value  string
	source *config.Action
}

func (r *Runner) run(ctx context.Context, action *config.Action, clickedItem string) error {
	cfg, configDir, err := r.catalog()
	if err != nil {
		return err
	}
	allActions := cfg.Actions

	ws := workspace.Detect(cfg, configDir)
	if clickedItem != "" {
		ws = ws.WithClickedItem(clickedItem)
	}

	sub := NewSubstituter(ws, cfg, r.input)
	command, err := sub.Substitute(ctx, action.Command)
	if err != nil {
		return err
	}

	resolved, err := r.resolvePlaceholders(ctx, &command, action, allActions)
	if err != nil {
		return err
	}

	if err := r.dispatch(ctx, sub, action, command); err != nil {
		return err
	}

	return r.storeResolvedValues(resolved, allActions)
}

// resolvePlaceholders walks the $name placeholders of command in order of
// first appearance and replaces every occurrence of each with its resolved
// value. One resolution per distinct name per invocation.
func (r *Runner) resolvePlaceholders(ctx context.Context, command *string, action *config.Action, allActions []*config.Action) ([]resolvedVariable, error) {
	names := placeholderRe.FindAllString(*command, -1)
	if len(names) == 0 {
		return nil, nil
	}

	var resolved []resolvedVariable
	done := make(map[string]bool)

	for _, varName := range names {
		if done[varName] {
			continue
		}

		varDetails, source := r.lookupVariable(varName, action, allActions)
		if varDetails == nil {
			return nil, errors.VariableNotFound(varName, action.SearchVariablesInCurrentGroup)
		}
		// The resolver mutates options and defaults below; never write
		// through to the shared catalog.
		varDetails = varDetails.Clone()

		stored, hasStored, err := r.store.StoredValueForVariable(source, varName)
		if err != nil {
			return nil, err
		}
		if hasStored && stored.IsList && varDetails.HasOptions() {
			// The stored most-recent-first list replaces the configured
			// options, so the last choice is offered first.
			varDetails.Options = stored.List
		}

		value, err := r.resolveValue(ctx, varDetails, source, varName, stored, hasStored)
		if err != nil {
			return nil, err
		}

		*command = replaceAllOccurrences(*command, varName, value)
		done[varName] = true
		resolved = append(resolved, resolvedVariable{name: varName, value: value, source: source})
	}
	return resolved, nil
}

// lookupVariable runs the layered lookup: inline definition first, then the
// other actions' variables maps. A group-restricted search only considers
// actions in the invoking action's group. First match wins and becomes the
// source action of record.
func (r *Runner) lookupVariable(varName string, action *config.Action, allActions []*config.Action) (*config.Variable, *config.Action) {
	if v, ok := action.Variables[varName]; ok && v != nil {
		return v, action
	}

	group := action.EffectiveGroup()
	for _, other := range allActions {
		if other.Identity() == action.Identity() {
			continue
		}
		v, ok := other.Variables[varName]
		if !ok || v == nil {
			continue
		}
		if action.SearchVariablesInCurrentGroup && other.EffectiveGroup() != group {
			continue
		}
		return v, other
	}
	return nil, nil
}

func (r *Runner) resolveValue(ctx context.Context, v *config.Variable, source *config.Action, varName string, stored storage.Value, hasStored bool) (string, error) {
	if v.DefaultValue != nil && v.DefaultValue.SkipDefault {
		if hasStored {
			return stored.First(), nil
		}
		if v.DefaultValue.Value != "" {
			return v.DefaultValue.Value, nil
		}
		return r.promptValue(ctx, v)
	}

	if v.DefaultValue != nil && v.DefaultValue.SetStoredValueAsDefault {
		if err := r.store.UpdateDefaultValue(source, varName, v); err != nil {
			return "", err
		}
	}
	return r.promptValue(ctx, v)
}

func (r *Runner) promptValue(ctx context.Context, v *config.Variable) (string, error) {
	initial := ""
	if v.DefaultValue != nil {
		initial = v.DefaultValue.Value
	}
	if v.HasOptions() {
		return r.input.PromptChoice(ctx, v.Options, v.Placeholder, initial, v.AllowAdditionalValue, v.AllowEmptyValue)
	}
	return r.input.PromptText(ctx, v.Placeholder, initial, v.AllowEmptyValue)
}

// dispatch sends the final text to the action's terminal session, records it
// for last-arguments replay once the send succeeds and reveals the terminal
// when configured. An action with a preCommand sends "pre ; command" as one
// line.
func (r *Runner) dispatch(ctx context.Context, sub *Substituter, action *config.Action, command string) error {
	sess, err := r.terminals.ForAction(action)
	if err != nil {
		return err
	}

	text := command
	if action.PreCommand != "" {
		pre, err := sub.Substitute(ctx, action.PreCommand)
		if err != nil {
			return err
		}
		text = pre + " ; " + command
	}

	if err := sess.SendText(text); err != nil {
		return err
	}

	r.mu.Lock()
	r.lastCommands[action.Identity()] = command
	r.mu.Unlock()

	if action.ShouldRevealConsole() {
		sess.Show()
	}

	r.log.WithFields(logrus.Fields{
		"action":  action.Identity(),
		"command": text,
	}).Debug("Dispatched command")
	return nil
}

// storeResolvedValues persists, per source action, every resolved variable
// whose current catalog definition has storeValue. Options-bearing variables
// keep a most-recent-first list with duplicates removed.
func (r *Runner) storeResolvedValues(resolved []resolvedVariable, allActions []*config.Action) error {
	bySource := make(map[string]map[string]storage.Value)
	sources := make(map[string]*config.Action)

	for _, rv := range resolved {
		current := findByIdentity(allActions, rv.source.Identity())
		if current == nil {
			continue
		}
		def, ok := current.Variables[rv.name]
		if !ok || def == nil || !def.StoreValue {
			continue
		}

		var value storage.Value
		if def.HasOptions() {
			existing, hasExisting, err := r.store.StoredValueForVariable(current, rv.name)
			if err != nil {
				return err
			}
			if hasExisting && existing.IsList {
				value = storage.ListValue(storage.PrependUnique(rv.value, existing.List))
			} else {
				value = storage.ListValue([]string{rv.value})
			}
		} else {
			value = storage.StringValue(rv.value)
		}

		id := current.Identity()
		if bySource[id] == nil {
			bySource[id] = make(map[string]storage.Value)
			sources[id] = current
		}
		bySource[id][rv.name] = value
	}

	for id, values := range bySource {
		if err := r.store.StoreValues(sources[id], values); err != nil {
			return err
		}
	}
	return nil
}

func findByIdentity(actions []*config.Action, identity string) *config.Action {
	for _, a := range actions {
		if a.Identity() == identity {
			return a
		}
	}
	return nil
}

// replaceAllOccurrences substitutes value for every occurrence of varName,
// without clipping longer placeholders sharing the prefix ($for vs $format).
func replaceAllOccurrences(command, varName, value string) string {
	re := regexp.MustCompile(regexp.QuoteMeta(varName) + `\b`)
	return re.ReplaceAllLiteralString(command, value)
}

// HasLastCommand reports whether a replayable command is cached for the
// action.
func (r *Runner) HasLastCommand(action *config.Action) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.lastCommands[action.Identity()]
	return ok
}

// LastCommand returns the cached final command text for the action.
func (r *Runner) LastCommand(action *config.Action) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	last, ok := r.lastCommands[action.Identity()]
	return last, ok
}
