// Package defaults fills unset fields of per-item records from a shared
// defaults record. A field counts as unset only when its key was absent from
// the source document; an explicit null or empty value is kept.
package defaults

import (
	"sort"

	"github.com/gliverm/playwright/internal/validation"

	"gopkg.in/yaml.v3"
)

// Fields records which keys a record's YAML mapping carried. Embed it with a
// `yaml:"-"` tag and fill it from UnmarshalYAML through Decode. A Fields value
// never changes after it is built, so copies may share it.
type Fields struct {
	keys map[string]struct{}
}

// NewFields builds a presence set for records constructed in code
func NewFields(keys ...string) Fields {
	f := Fields{keys: make(map[string]struct{}, len(keys))}
	for _, k := range keys {
		f.keys[k] = struct{}{}
	}
	return f
}

// Has reports whether key was present in the source mapping
func (f Fields) Has(key string) bool {
	_, ok := f.keys[key]
	return ok
}

// Keys returns the present keys in sorted order
func (f Fields) Keys() []string {
	keys := make([]string, 0, len(f.keys))
	for k := range f.keys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// presence is implemented by any record embedding Fields
type presence interface {
	Has(key string) bool
}

// Decode decodes node into out and records the mapping keys node carried.
// It is meant for UnmarshalYAML methods:
//
//	func (c *Config) UnmarshalYAML(node *yaml.Node) error {
//		type plain Config
//		return defaults.Decode(node, (*plain)(c), &c.Fields)
//	}
func Decode(node *yaml.Node, out interface{}, fields *Fields) error {
	if err := node.Decode(out); err != nil {
		return err
	}

	// Keys merged in with "<<" count as present, as yaml.v3 decodes them
	*fields = NewFields(validation.MappingKeys(node)...)
	return nil
}
