package validation

import (
	"errors"

	"gopkg.in/yaml.v3"
)

// DecodeNode decodes node into out and reports yaml type mismatches as schema
// errors at path. Errors raised by custom unmarshalers pass through untouched.
func DecodeNode(path string, node *yaml.Node, out interface{}) error {
	err := node.Decode(out)
	if err == nil {
		return nil
	}

	var verrs Errors
	if errors.As(err, &verrs) {
		return verrs
	}
	var verr *Error
	if errors.As(err, &verr) {
		return Errors{verr}
	}

	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) {
		errs := make(Errors, 0, len(typeErr.Errors))
		for _, msg := range typeErr.Errors {
			errs = append(errs, Schemaf(path, "%s", msg))
		}
		return errs
	}
	return Errors{Schemaf(path, "%v", err)}
}

// MappingKeys returns the keys of a mapping node in document order. Keys
// brought in through "<<" merge entries follow the literal keys, in merge
// order, and are listed once.
func MappingKeys(node *yaml.Node) []string {
	node = Unwrap(node)
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}

	seen := make(map[string]bool, len(node.Content)/2)
	keys := make([]string, 0, len(node.Content)/2)
	add := func(k string) {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		if !IsMergeKey(node.Content[i]) {
			add(node.Content[i].Value)
		}
	}
	for _, merged := range mergeSources(node) {
		for _, k := range MappingKeys(merged) {
			add(k)
		}
	}
	return keys
}

// MappingValue returns the value of key in a mapping node. A literal key
// wins over merged ones; among merged mappings the first listed wins.
func MappingValue(node *yaml.Node, key string) *yaml.Node {
	node = Unwrap(node)
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if !IsMergeKey(node.Content[i]) && node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	for _, merged := range mergeSources(node) {
		if v := MappingValue(merged, key); v != nil {
			return v
		}
	}
	return nil
}

// IsMergeKey reports whether key is a "<<" merge key
func IsMergeKey(key *yaml.Node) bool {
	return key.Kind == yaml.ScalarNode && key.Value == "<<" &&
		(key.Tag == "" || key.Tag == "!" || key.ShortTag() == "!!merge")
}

// mergeSources lists the mappings named by the "<<" entries of node. The
// value of a merge entry is a mapping, an alias or a sequence of either.
func mergeSources(node *yaml.Node) []*yaml.Node {
	var sources []*yaml.Node
	for i := 0; i+1 < len(node.Content); i += 2 {
		if !IsMergeKey(node.Content[i]) {
			continue
		}
		value := Unwrap(node.Content[i+1])
		if value == nil {
			continue
		}
		if value.Kind == yaml.SequenceNode {
			for _, item := range value.Content {
				if item = Unwrap(item); item != nil && item.Kind == yaml.MappingNode {
					sources = append(sources, item)
				}
			}
			continue
		}
		if value.Kind == yaml.MappingNode {
			sources = append(sources, value)
		}
	}
	return sources
}

// RequireKeys reports each key missing from the mapping node
func RequireKeys(path string, node *yaml.Node, keys ...string) Errors {
	node = Unwrap(node)
	if node == nil || node.Kind != yaml.MappingNode {
		return Errors{Schemaf(path, "must be a mapping")}
	}

	present := make(map[string]bool, len(node.Content)/2)
	for _, k := range MappingKeys(node) {
		present[k] = true
	}

	var errs Errors
	for _, k := range keys {
		if !present[k] {
			errs = append(errs, Schemaf(JoinPath(path, k), "is required"))
		}
	}
	return errs
}

// RejectNull reports each key of the mapping node whose value is an
// explicit null. Absent keys are left to RequireKeys.
func RejectNull(path string, node *yaml.Node, keys ...string) Errors {
	var errs Errors
	for _, k := range keys {
		if v := MappingValue(node, k); v != nil && IsNull(v) {
			errs = append(errs, Schemaf(JoinPath(path, k), "must not be null"))
		}
	}
	return errs
}

// Unwrap returns the content of a document node and follows aliases
func Unwrap(node *yaml.Node) *yaml.Node {
	for node != nil {
		switch {
		case node.Kind == yaml.DocumentNode && len(node.Content) > 0:
			node = node.Content[0]
		case node.Kind == yaml.AliasNode && node.Alias != nil:
			node = node.Alias
		default:
			return node
		}
	}
	return nil
}

// IsNull reports whether node is absent or an explicit null
func IsNull(node *yaml.Node) bool {
	node = Unwrap(node)
	return node == nil || (node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null")
}
