package storage

import "encoding/json"

// Value is a stored variable value: either a single string or a
// most-recent-first history list. The JSON encoding is the raw string or the
// raw array, matching the on-disk record shape.
type Value struct {
	Str    string
	List   []string
	IsList bool
}

// StringValue wraps a single string.
func StringValue(s string) Value {
	return Value{Str: s}
}

// ListValue wraps a history list.
func ListValue(list []string) Value {
	return Value{List: list, IsList: true}
}

// First returns the most recent value: the head of the list, or the string.
// An empty list yields "".
func (v Value) First() string {
	if v.IsList {
		if len(v.List) == 0 {
			return ""
		}
		return v.List[0]
	}
	return v.Str
}

// MarshalJSON encodes the value as a bare string or array.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.IsList {
		return json.Marshal(v.List)
	}
	return json.Marshal(v.Str)
}

// UnmarshalJSON decodes either form.
func (v *Value) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '[' {
		v.IsList = true
		v.Str = ""
		return json.Unmarshal(data, &v.List)
	}
	v.IsList = false
	v.List = nil
	return json.Unmarshal(data, &v.Str)
}

// PrependUnique puts value at the head of existing and drops any other
// occurrence of it, preserving the order of the rest.
func PrependUnique(value string, existing []string) []string {
	out := make([]string, 0, len(existing)+1)
	out = append(out, value)
	for _, v := range existing {
		if v != value {
			out = append(out, v)
		}
	}
	return out
}
