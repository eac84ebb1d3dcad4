package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/grovetools/launcher/config"
	"github.com/grovetools/launcher/errors"
)

func testAction(group, label string) *config.Action {
	return &config.Action{Command: "echo " + label, Label: label, Group: group}
}

func TestStoreAndRetrieve(t *testing.T) {
	root := t.TempDir()
	s := New(root)
	action := testAction("Build", "compile")

	if err := s.StoreValues(action, map[string]Value{
		"$target": StringValue("linux"),
		"$mode":   ListValue([]string{"release", "debug"}),
	}); err != nil {
		t.Fatalf("StoreValues() error = %v", err)
	}

	t.Run("file lands in the state dir", func(t *testing.T) {
		path := filepath.Join(root, StateDir, FileName)
		if _, err := os.Stat(path); err != nil {
			t.Errorf("storage file not found at %s: %v", path, err)
		}
	})

	t.Run("string value round-trips", func(t *testing.T) {
		value, ok, err := s.StoredValueForVariable(action, "$target")
		if err != nil {
			t.Fatalf("StoredValueForVariable() error = %v", err)
		}
		if !ok {
			t.Fatal("StoredValueForVariable() ok = false")
		}
		if value.IsList || value.Str != "linux" {
			t.Errorf("got %+v, want string %q", value, "linux")
		}
	})

	t.Run("list value round-trips most-recent-first", func(t *testing.T) {
		value, ok, err := s.StoredValueForVariable(action, "$mode")
		if err != nil {
			t.Fatalf("StoredValueForVariable() error = %v", err)
		}
		if !ok || !value.IsList {
			t.Fatalf("got %+v, want a list", value)
		}
		if value.First() != "release" {
			t.Errorf("First() = %q, want %q", value.First(), "release")
		}
	})

	t.Run("unknown variable reports not found", func(t *testing.T) {
		_, ok, err := s.StoredValueForVariable(action, "$missing")
		if err != nil {
			t.Fatalf("StoredValueForVariable() error = %v", err)
		}
		if ok {
			t.Error("ok = true for a variable never stored")
		}
	})
}

func TestGroupRestrictedLookup(t *testing.T) {
	s := New(t.TempDir())

	other := testAction("Deploy", "push")
	if err := s.StoreValues(other, map[string]Value{"$env": StringValue("staging")}); err != nil {
		t.Fatalf("StoreValues() error = %v", err)
	}

	restricted := testAction("Build", "compile")
	restricted.SearchStoredValueInCurrentGroup = true

	t.Run("restricted misses other groups", func(t *testing.T) {
		_, ok, err := s.StoredValueForVariable(restricted, "$env")
		if err != nil {
			t.Fatalf("StoredValueForVariable() error = %v", err)
		}
		if ok {
			t.Error("restricted lookup found a value stored under another action")
		}
	})

	t.Run("global scan finds other groups", func(t *testing.T) {
		global := testAction("Build", "compile")
		value, ok, err := s.StoredValueForVariable(global, "$env")
		if err != nil {
			t.Fatalf("StoredValueForVariable() error = %v", err)
		}
		if !ok || value.Str != "staging" {
			t.Errorf("got (%+v, %v), want staging", value, ok)
		}
	})
}

func TestGlobalScanIsDeterministic(t *testing.T) {
	s := New(t.TempDir())

	// Same variable stored under two groups; the sorted-first group wins.
	if err := s.StoreValues(testAction("Zeta", "z"), map[string]Value{"$v": StringValue("from-zeta")}); err != nil {
		t.Fatalf("StoreValues() error = %v", err)
	}
	if err := s.StoreValues(testAction("Alpha", "a"), map[string]Value{"$v": StringValue("from-alpha")}); err != nil {
		t.Fatalf("StoreValues() error = %v", err)
	}

	reader := testAction("Build", "compile")
	for i := 0; i < 10; i++ {
		value, ok, err := s.StoredValueForVariable(reader, "$v")
		if err != nil {
			t.Fatalf("StoredValueForVariable() error = %v", err)
		}
		if !ok || value.Str != "from-alpha" {
			t.Fatalf("iteration %d: got (%+v, %v), want from-alpha", i, value, ok)
		}
	}
}

func TestDamagedFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, StateDir, FileName)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	damaged := []byte("{ not json")
	if err := os.WriteFile(path, damaged, 0644); err != nil {
		t.Fatal(err)
	}

	s := New(root)
	action := testAction("Build", "compile")

	t.Run("reads return the damaged error", func(t *testing.T) {
		_, _, err := s.StoredValueForVariable(action, "$v")
		if !errors.Is(err, errors.ErrCodeStorageDamaged) {
			t.Errorf("StoredValueForVariable() error = %v, want STORAGE_DAMAGED", err)
		}
		if _, err := s.Load(); !errors.Is(err, errors.ErrCodeStorageDamaged) {
			t.Errorf("Load() error = %v, want STORAGE_DAMAGED", err)
		}
	})

	t.Run("writes are skipped", func(t *testing.T) {
		err := s.StoreValues(action, map[string]Value{"$v": StringValue("x")})
		if !errors.Is(err, errors.ErrCodeStorageDamaged) {
			t.Errorf("StoreValues() error = %v, want STORAGE_DAMAGED", err)
		}
		raw, readErr := os.ReadFile(path)
		if readErr != nil {
			t.Fatal(readErr)
		}
		if string(raw) != string(damaged) {
			t.Error("StoreValues() modified a damaged file")
		}
	})

	t.Run("deleting the file recovers", func(t *testing.T) {
		if err := os.Remove(path); err != nil {
			t.Fatal(err)
		}
		if err := s.StoreValues(action, map[string]Value{"$v": StringValue("x")}); err != nil {
			t.Fatalf("StoreValues() after delete error = %v", err)
		}
		value, ok, err := s.StoredValueForVariable(action, "$v")
		if err != nil || !ok || value.Str != "x" {
			t.Errorf("got (%+v, %v, %v), want x", value, ok, err)
		}
	})
}

func TestUpdateDefaultValue(t *testing.T) {
	s := New(t.TempDir())
	action := testAction("Build", "compile")

	if err := s.StoreValues(action, map[string]Value{
		"$target": ListValue([]string{"arm64", "amd64"}),
	}); err != nil {
		t.Fatalf("StoreValues() error = %v", err)
	}

	t.Run("opted-in default takes the stored head", func(t *testing.T) {
		v := &config.Variable{DefaultValue: &config.DefaultValue{
			Value:                   "amd64",
			SetStoredValueAsDefault: true,
		}}
		if err := s.UpdateDefaultValue(action, "$target", v); err != nil {
			t.Fatalf("UpdateDefaultValue() error = %v", err)
		}
		if v.DefaultValue.Value != "arm64" {
			t.Errorf("default = %q, want %q", v.DefaultValue.Value, "arm64")
		}
	})

	t.Run("without the flag the default is untouched", func(t *testing.T) {
		v := &config.Variable{DefaultValue: &config.DefaultValue{Value: "amd64"}}
		if err := s.UpdateDefaultValue(action, "$target", v); err != nil {
			t.Fatalf("UpdateDefaultValue() error = %v", err)
		}
		if v.DefaultValue.Value != "amd64" {
			t.Errorf("default = %q, want unchanged %q", v.DefaultValue.Value, "amd64")
		}
	})

	t.Run("nothing stored leaves the default alone", func(t *testing.T) {
		v := &config.Variable{DefaultValue: &config.DefaultValue{
			Value:                   "amd64",
			SetStoredValueAsDefault: true,
		}}
		if err := s.UpdateDefaultValue(action, "$other", v); err != nil {
			t.Fatalf("UpdateDefaultValue() error = %v", err)
		}
		if v.DefaultValue.Value != "amd64" {
			t.Errorf("default = %q, want unchanged %q", v.DefaultValue.Value, "amd64")
		}
	})
}

func TestPrependUnique(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		existing []string
		want     []string
	}{
		{"empty history", "a", nil, []string{"a"}},
		{"new value", "c", []string{"a", "b"}, []string{"c", "a", "b"}},
		{"dedup moves to front", "b", []string{"a", "b", "c"}, []string{"b", "a", "c"}},
		{"already first", "a", []string{"a", "b"}, []string{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PrependUnique(tt.value, tt.existing)
			if len(got) != len(tt.want) {
				t.Fatalf("PrependUnique() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("PrependUnique() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}
