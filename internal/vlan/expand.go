package vlan

import (
	"errors"

	"github.com/gliverm/playwright/internal/validation"

	"gopkg.in/yaml.v3"
)

// IDs is an ordered VLAN ID set as written by operators: a mix of single
// IDs, explicit lists and {range: [...]} entries
type IDs []Entry

// Decode reads a VLAN ID set from node. A bare scalar is accepted as a set
// of one ID. Errors carry field paths rooted at path.
func Decode(path string, node *yaml.Node) (IDs, error) {
	node = validation.Unwrap(node)
	if validation.IsNull(node) {
		return nil, validation.Schemaf(path, "is required")
	}

	if node.Kind == yaml.ScalarNode {
		id, err := decodeID(path, node)
		if err != nil {
			return nil, err
		}
		return IDs{id}, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, validation.Schemaf(path, "must be a VLAN ID, a list or a range")
	}

	ids := make(IDs, 0, len(node.Content))
	var errs validation.Errors
	for i, item := range node.Content {
		entry, err := decodeEntry(validation.IndexPath(path, i), item)
		if err != nil {
			errs.Add(validation.IndexPath(path, i), err)
			continue
		}
		ids = append(ids, entry)
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

func decodeEntry(path string, node *yaml.Node) (Entry, error) {
	node = validation.Unwrap(node)
	switch node.Kind {
	case yaml.ScalarNode:
		return decodeID(path, node)
	case yaml.SequenceNode:
		values, err := decodeInts(path, node)
		if err != nil {
			return nil, err
		}
		return List(values), nil
	case yaml.MappingNode:
		if missing := validation.RequireKeys(path, node, "range"); len(missing) > 0 {
			return nil, missing
		}
		var raw struct {
			Range yaml.Node `yaml:"range"`
		}
		if err := validation.DecodeNode(path, node, &raw); err != nil {
			return nil, err
		}
		rangePath := validation.JoinPath(path, "range")
		if raw.Range.Kind != yaml.SequenceNode {
			return nil, validation.Schemaf(rangePath, "must be a list of 2 or 3 positive integers")
		}
		var spec []int
		if err := validation.DecodeNode(rangePath, &raw.Range, &spec); err != nil {
			return nil, err
		}
		r, err := NewRange(spec)
		if err != nil {
			return nil, rangeFailure(rangePath, err)
		}
		return r, nil
	}
	return nil, validation.Schemaf(path, "must be a VLAN ID, a list or a range")
}

func decodeID(path string, node *yaml.Node) (ID, error) {
	var v int
	if err := validation.DecodeNode(path, node, &v); err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, validation.Schemaf(path, "must be a positive integer, got %d", v)
	}
	return ID(v), nil
}

func decodeInts(path string, node *yaml.Node) ([]int, error) {
	values := make([]int, 0, len(node.Content))
	var errs validation.Errors
	for i, item := range node.Content {
		v, err := decodeID(validation.IndexPath(path, i), item)
		if err != nil {
			errs.Add(validation.IndexPath(path, i), err)
			continue
		}
		values = append(values, int(v))
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	return values, nil
}

// rangeFailure maps a RangeError to a field error: reversed bounds are a
// domain rule, anything else is a shape problem
func rangeFailure(path string, err error) error {
	var rangeErr *RangeError
	if errors.As(err, &rangeErr) && rangeErr.Order {
		return validation.Semanticf(path, "%s", rangeErr.Error())
	}
	return validation.Schemaf(path, "%v", err)
}

// UnmarshalYAML lets IDs be decoded directly as a struct field
func (ids *IDs) UnmarshalYAML(node *yaml.Node) error {
	decoded, err := Decode("", node)
	if err != nil {
		return err
	}
	*ids = decoded
	return nil
}

// MarshalYAML writes ranges back in their {range: [...]} form
func (ids IDs) MarshalYAML() (interface{}, error) {
	out := make([]interface{}, 0, len(ids))
	for _, e := range ids {
		switch v := e.(type) {
		case ID:
			out = append(out, int(v))
		case List:
			out = append(out, []int(v))
		case Range:
			spec := []int{v.start, v.stop}
			if v.step != 1 {
				spec = append(spec, v.step)
			}
			out = append(out, map[string][]int{"range": spec})
		}
	}
	return out, nil
}

// Expand flattens the set and removes repeats, keeping the first
// occurrence of every ID
func (ids IDs) Expand() ([]int, error) {
	return ExpandAt("", ids...)
}

// ExpandAt is Expand with error paths rooted at path
func (ids IDs) ExpandAt(path string) ([]int, error) {
	return ExpandAt(path, ids...)
}

// Expand concatenates the values of every entry in order, then drops
// duplicates while keeping first-occurrence order. It fails when an entry
// holds a non-positive ID.
func Expand(entries ...Entry) ([]int, error) {
	return ExpandAt("", entries...)
}

// ExpandAt is Expand with error paths rooted at path, so the entry at
// index i is reported as path[i]
func ExpandAt(path string, entries ...Entry) ([]int, error) {
	var all []int
	for i, e := range entries {
		values := e.Values()
		for _, v := range values {
			if v <= 0 {
				return nil, validation.Schemaf(validation.IndexPath(path, i), "must be a positive integer, got %d", v)
			}
		}
		all = append(all, values...)
	}
	return unique(all), nil
}

// unique returns values without repeats, in first-occurrence order
func unique[T comparable](values []T) []T {
	seen := make(map[T]struct{}, len(values))
	out := make([]T, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
