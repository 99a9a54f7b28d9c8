// Package validation provides the error taxonomy, field-path reporting and
// host format checks shared by the device and scenario loaders
package validation

import (
	"fmt"
	"strings"
)

// Kind separates shape violations from domain rule violations
type Kind int

const (
	// KindSchema covers type, presence, length and numeric bound violations
	KindSchema Kind = iota
	// KindSemantic covers domain rules such as range order or unresolved defaults
	KindSemantic
)

func (k Kind) String() string {
	switch k {
	case KindSchema:
		return "schema"
	case KindSemantic:
		return "semantic"
	default:
		return "unknown"
	}
}

// Error is a single validation failure located by its field path
type Error struct {
	Kind Kind
	Path string // e.g. "devices.olt1.connections.ssh.port"
	Msg  string
}

func (e *Error) Error() string {
	if e.Path == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

// Schemaf builds a schema error for path
func Schemaf(path, format string, args ...interface{}) *Error {
	return &Error{Kind: KindSchema, Path: path, Msg: fmt.Sprintf(format, args...)}
}

// Semanticf builds a semantic error for path
func Semanticf(path, format string, args ...interface{}) *Error {
	return &Error{Kind: KindSemantic, Path: path, Msg: fmt.Sprintf(format, args...)}
}

// Errors accumulates every failure found in one document
type Errors []*Error

func (es Errors) Error() string {
	msgs := make([]string, 0, len(es))
	for _, e := range es {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

// Unwrap lets errors.As reach the individual entries
func (es Errors) Unwrap() []error {
	errs := make([]error, 0, len(es))
	for _, e := range es {
		errs = append(errs, e)
	}
	return errs
}

// Err returns nil when nothing was recorded so callers can return it directly
func (es Errors) Err() error {
	if len(es) == 0 {
		return nil
	}
	return es
}

// Add records err, flattening nested Errors and wrapping foreign errors as
// schema errors at path
func (es *Errors) Add(path string, err error) {
	if err == nil {
		return
	}
	switch e := err.(type) {
	case Errors:
		*es = append(*es, e...)
	case *Error:
		*es = append(*es, e)
	default:
		*es = append(*es, Schemaf(path, "%v", err))
	}
}

// Has reports whether any recorded error is of kind k
func (es Errors) Has(k Kind) bool {
	for _, e := range es {
		if e.Kind == k {
			return true
		}
	}
	return false
}

// ParseError reports a document that could not be read or parsed
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("failed to parse document: %v", e.Err)
	}
	return fmt.Sprintf("failed to parse %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// JoinPath appends a child key to a dotted field path
func JoinPath(parent, child string) string {
	if parent == "" {
		return child
	}
	if child == "" {
		return parent
	}
	return parent + "." + child
}

// IndexPath appends a list index to a field path
func IndexPath(parent string, i int) string {
	return fmt.Sprintf("%s[%d]", parent, i)
}
