// Package storage persists chosen variable values between launcher runs.
//
// Values live in a single JSON file under the workspace state directory
// (.launcher/values.json), keyed by action group, then action label, then
// variable name. Every operation is a whole-file read-modify-write; writes go
// through a temp file and rename so a crash never leaves a half-written
// record.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/grovetools/launcher/config"
	"github.com/grovetools/launcher/errors"
)

// FileName is the storage file name inside the state directory.
const FileName = "values.json"

// StateDir is the workspace state directory holding the storage file.
const StateDir = ".launcher"

// Data is the on-disk record shape: group → label → varName → value.
type Data map[string]map[string]map[string]Value

// ValueStorage reads and writes the persisted values of one workspace.
type ValueStorage struct {
	path string
}

// New returns storage rooted at the given workspace directory.
func New(workspaceRoot string) *ValueStorage {
	return &ValueStorage{path: filepath.Join(workspaceRoot, StateDir, FileName)}
}

// NewAtPath returns storage backed by an explicit file path.
func NewAtPath(path string) *ValueStorage {
	return &ValueStorage{path: path}
}

// Path returns the storage file path.
func (s *ValueStorage) Path() string {
	return s.path
}

// Load reads the whole record. A missing file yields an empty record. A file
// that exists but does not parse yields a STORAGE_DAMAGED error; callers must
// not write until the user fixes or deletes the file.
func (s *ValueStorage) Load() (Data, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Data{}, nil
		}
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "read storage file")
	}

	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, errors.StorageDamaged(s.path)
	}
	if data == nil {
		data = Data{}
	}
	return data, nil
}

func (s *ValueStorage) write(data Data) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "create storage directory")
	}

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "marshal storage data")
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "write storage file")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "replace storage file")
	}
	return nil
}

// StoreValues merges the given values into the record under the action's
// group and label and writes the file back. A damaged file skips the write
// and returns the damaged error.
func (s *ValueStorage) StoreValues(action *config.Action, values map[string]Value) error {
	if len(values) == 0 {
		return nil
	}

	data, err := s.Load()
	if err != nil {
		return err
	}

	group := action.EffectiveGroup()
	label := action.EffectiveLabel()

	if data[group] == nil {
		data[group] = map[string]map[string]Value{}
	}
	if data[group][label] == nil {
		data[group][label] = map[string]Value{}
	}
	for name, value := range values {
		data[group][label][name] = value
	}

	return s.write(data)
}

// StoredValues returns the values recorded under a specific group and label,
// or nil when none exist.
func (s *ValueStorage) StoredValues(group, label string) (map[string]Value, error) {
	data, err := s.Load()
	if err != nil {
		return nil, err
	}
	return data[group][label], nil
}

// StoredValueForVariable looks up a stored value for the variable as seen
// from the given action. With searchStoredValueInCurrentGroup the lookup is
// confined to the action's own group and label; otherwise every record is
// scanned, groups and labels in sorted order so the result does not depend
// on map iteration.
func (s *ValueStorage) StoredValueForVariable(action *config.Action, varName string) (Value, bool, error) {
	data, err := s.Load()
	if err != nil {
		return Value{}, false, err
	}

	if action.SearchStoredValueInCurrentGroup {
		value, ok := data[action.EffectiveGroup()][action.EffectiveLabel()][varName]
		return value, ok, nil
	}

	for _, group := range sortedKeys(data) {
		labels := data[group]
		for _, label := range sortedLabelKeys(labels) {
			if value, ok := labels[label][varName]; ok {
				return value, true, nil
			}
		}
	}
	return Value{}, false, nil
}

// UpdateDefaultValue refreshes the variable's default from storage when the
// variable opts in with setStoredValueAsDefault. A stored list contributes
// its most recent entry. Variables without that flag are left untouched.
func (s *ValueStorage) UpdateDefaultValue(action *config.Action, varName string, variable *config.Variable) error {
	if variable.DefaultValue == nil || !variable.DefaultValue.SetStoredValueAsDefault {
		return nil
	}

	stored, ok, err := s.StoredValueForVariable(action, varName)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if stored.IsList && len(stored.List) == 0 {
		return nil
	}

	variable.DefaultValue.Value = stored.First()
	return nil
}

func sortedKeys(data Data) []string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedLabelKeys(labels map[string]map[string]Value) []string {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
