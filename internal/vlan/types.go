// Package vlan expands the compact VLAN ID notations used in scenario
// documents into concrete, ordered VLAN ID sequences
package vlan

import (
	"fmt"
)

// Entry is one element of a VLAN ID set. The set of implementations is
// closed: ID, List and Range.
type Entry interface {
	// Values returns the IDs the entry stands for, in order
	Values() []int
	String() string

	entry()
}

// ID is a single VLAN ID
type ID int

// List is an explicit list of VLAN IDs kept in the given order
type List []int

// Range is a [start, stop) sequence of VLAN IDs advancing by step.
// Build it with NewRange so that start <= stop holds.
type Range struct {
	start int
	stop  int
	step  int
}

// NewRange builds a range from [start, stop] or [start, stop, step].
// All values must be positive and start must not exceed stop; step
// defaults to 1.
func NewRange(spec []int) (Range, error) {
	if len(spec) < 2 || len(spec) > 3 {
		return Range{}, &RangeError{Spec: spec, Reason: fmt.Sprintf("must contain 2 or 3 values, got %d", len(spec))}
	}
	for _, v := range spec {
		if v <= 0 {
			return Range{}, &RangeError{Spec: spec, Reason: fmt.Sprintf("values must be positive integers, got %d", v)}
		}
	}
	if spec[0] > spec[1] {
		return Range{}, &RangeError{Spec: spec, Reason: "start > stop", Order: true}
	}

	r := Range{start: spec[0], stop: spec[1], step: 1}
	if len(spec) == 3 {
		r.step = spec[2]
	}
	return r, nil
}

// Start returns the first ID of the range
func (r Range) Start() int { return r.start }

// Stop returns the exclusive upper bound
func (r Range) Stop() int { return r.stop }

// Step returns the increment between IDs
func (r Range) Step() int { return r.step }

// Values expands the range with an exclusive stop: [20, 23] yields 20, 21, 22
func (r Range) Values() []int {
	if r.step <= 0 || r.start >= r.stop {
		return []int{}
	}
	// start + i*step never passes stop, so a huge step cannot overflow
	count := (r.stop-r.start-1)/r.step + 1
	values := make([]int, 0, count)
	for i := 0; i < count; i++ {
		values = append(values, r.start+i*r.step)
	}
	return values
}

func (r Range) String() string {
	if r.step == 1 {
		return fmt.Sprintf("[%d, %d]", r.start, r.stop)
	}
	return fmt.Sprintf("[%d, %d, %d]", r.start, r.stop, r.step)
}

func (r Range) entry() {}

// Values returns the ID itself
func (id ID) Values() []int { return []int{int(id)} }

func (id ID) String() string { return fmt.Sprintf("%d", int(id)) }

func (id ID) entry() {}

// Values returns a copy of the list
func (l List) Values() []int {
	values := make([]int, len(l))
	copy(values, l)
	return values
}

func (l List) String() string { return fmt.Sprintf("%v", []int(l)) }

func (l List) entry() {}

// RangeError reports a range specification that cannot be built
type RangeError struct {
	Spec   []int
	Reason string

	// Order is set when the bounds are reversed
	Order bool
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("VLAN range %v invalid: %s", e.Spec, e.Reason)
}
