// Package validation provides unit tests for the error taxonomy
// WHY: Callers branch on error kind and unwrap parse failures
package validation

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestErrors_Accumulation tests that nested errors flatten into one list
// WHY: A single load reports every problem it found, not just the first
func TestErrors_Accumulation(t *testing.T) {
	var errs Errors
	assert.NoError(t, errs.Err(), "Empty list should not be an error")

	errs.Add("a", nil)
	errs.Add("a", Schemaf("a.b", "is required"))
	errs.Add("c", Errors{Semanticf("c[0]", "start > stop"), Schemaf("c[1]", "must be positive")})
	errs.Add("d", errors.New("boom"))

	require.Len(t, errs, 4)
	assert.True(t, errs.Has(KindSemantic))
	assert.Equal(t, "d", errs[3].Path)
	assert.Equal(t, KindSchema, errs[3].Kind)
	assert.Equal(t, "a.b: is required; c[0]: start > stop; c[1]: must be positive; d: boom", errs.Err().Error())

	var semantic *Error
	require.True(t, errors.As(errs.Err(), &semantic))
	assert.Equal(t, "a.b", semantic.Path, "errors.As returns the first entry")
}

// TestParseError tests wrapping of read and parse failures
// WHY: The underlying cause must stay reachable through errors.Is
func TestParseError(t *testing.T) {
	err := &ParseError{Source: "devices.yaml", Err: fs.ErrNotExist}
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Equal(t, "failed to parse devices.yaml: file does not exist", err.Error())

	anon := &ParseError{Err: errors.New("yaml: line 2: mapping values are not allowed in this context")}
	assert.Contains(t, anon.Error(), "line 2")
}

// TestPaths tests field path construction
// WHY: Paths appear verbatim in operator-facing messages
func TestPaths(t *testing.T) {
	assert.Equal(t, "b", JoinPath("", "b"))
	assert.Equal(t, "a", JoinPath("a", ""))
	assert.Equal(t, "a.b", JoinPath("a", "b"))
	assert.Equal(t, "a.list[3]", IndexPath("a.list", 3))
	assert.Equal(t, "schema", KindSchema.String())
	assert.Equal(t, "semantic", KindSemantic.String())
}
