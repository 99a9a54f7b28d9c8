package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gliverm/playwright/internal/validation"

	"gopkg.in/yaml.v3"
)

// Params is a parsed load-test parameter document: top-level section keys
// mapped to their raw YAML values. Each validator picks out the sections it
// owns and ignores the rest.
type Params struct {
	sections map[string]*yaml.Node
	order    []string

	// Source is the path the document was loaded from, empty otherwise
	Source string
}

// LoadParams reads the parameter document at path
func LoadParams(path string) (*Params, error) {
	if path == "" {
		return nil, fmt.Errorf("parameters file is required")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read parameters file %s: %w", path, err)
	}
	defer f.Close()

	p, err := readParams(f, path)
	if err != nil {
		return nil, err
	}
	p.Source = path
	return p, nil
}

// ReadParams reads a parameter document from r without closing it
func ReadParams(r io.Reader) (*Params, error) {
	return readParams(r, "")
}

// ParseParams parses a parameter document held in memory. Several YAML
// documents separated by "---" are merged; a section defined twice is an
// error. An empty document yields empty Params.
func ParseParams(data []byte) (*Params, error) {
	return readParams(bytes.NewReader(data), "")
}

// ParamsFromMap builds Params from already decoded data
func ParamsFromMap(m map[string]interface{}) (*Params, error) {
	var node yaml.Node
	if err := node.Encode(m); err != nil {
		return nil, fmt.Errorf("failed to encode parameters: %w", err)
	}

	p := newParams()
	if err := p.addDocument(&node, 0); err != nil {
		return nil, err
	}
	return p, nil
}

func newParams() *Params {
	return &Params{sections: make(map[string]*yaml.Node)}
}

func readParams(r io.Reader, source string) (*Params, error) {
	p := newParams()
	dec := yaml.NewDecoder(r)

	for i := 0; ; i++ {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &validation.ParseError{Source: source, Err: err}
		}
		if err := p.addDocument(&doc, i); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// addDocument merges the top-level keys of one YAML document
func (p *Params) addDocument(doc *yaml.Node, index int) error {
	root := validation.Unwrap(doc)
	if validation.IsNull(root) {
		return nil
	}
	if root.Kind != yaml.MappingNode {
		return validation.Schemaf(fmt.Sprintf("document %d", index+1), "must be a mapping of parameter sections")
	}

	var errs validation.Errors
	literal := make(map[string]bool, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		if validation.IsMergeKey(root.Content[i]) {
			continue
		}
		key := root.Content[i].Value
		literal[key] = true
		if _, exists := p.sections[key]; exists {
			errs = append(errs, validation.Schemaf(key, "is defined more than once"))
			continue
		}
		p.sections[key] = root.Content[i+1]
		p.order = append(p.order, key)
	}

	// Sections merged in with "<<" yield to the document's own keys
	for _, key := range validation.MappingKeys(root) {
		if literal[key] {
			continue
		}
		if _, exists := p.sections[key]; exists {
			errs = append(errs, validation.Schemaf(key, "is defined more than once"))
			continue
		}
		p.sections[key] = validation.MappingValue(root, key)
		p.order = append(p.order, key)
	}
	return errs.Err()
}

// Section returns the raw value of a top-level key
func (p *Params) Section(key string) (*yaml.Node, bool) {
	node, ok := p.sections[key]
	return node, ok
}

// Has reports whether the document defines key
func (p *Params) Has(key string) bool {
	_, ok := p.sections[key]
	return ok
}

// Keys returns the top-level keys in document order
func (p *Params) Keys() []string {
	keys := make([]string, len(p.order))
	copy(keys, p.order)
	return keys
}

// mapping rebuilds the document as one mapping node for decoding top-level
// parameters
func (p *Params) mapping() *yaml.Node {
	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, key := range p.order {
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			p.sections[key])
	}
	return root
}
