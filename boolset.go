// Package boolset implements a space-efficient boolean sequence over all
// non-negative uint64 indices. The sequence is never materialized: a sorted
// collection of disjoint ranges records the indices whose value differs from
// a single background bit, so flipping the entire infinite domain is a flag
// toggle rather than a rewrite.
package boolset

import (
	"fmt"
	"strings"
)

// Set represents an unbounded sequence of booleans, all false when created.
// For any index i, the value is "covered by a range" XOR the background bit.
type Set struct {
	ranges   rangeSet
	inverted bool
}

// New creates an empty set: every index reads false.
func New() *Set {
	return &Set{}
}

// FromRanges restores a set from externally supplied state. The ranges must
// satisfy the collection invariant or ErrMalformedState is returned; the
// input is deep-copied and never retained.
func FromRanges(ranges []Range, inverted bool) (*Set, error) {
	if err := validateRanges(ranges); err != nil {
		return nil, err
	}
	return &Set{ranges: rangeSet(ranges).clone(), inverted: inverted}, nil
}

// Get returns the value at idx.
func (s *Set) Get(idx uint64) bool {
	return s.ranges.contains(idx) != s.inverted
}

// Set sets the value at idx.
func (s *Set) Set(v bool, idx uint64) {
	if v != s.inverted {
		s.ranges.insert(idx, At(idx))
	} else {
		s.ranges.remove(idx, At(idx))
	}
}

// SetAll sets every index of the infinite domain to v in constant time.
func (s *Set) SetAll(v bool) {
	s.ranges = nil
	s.inverted = v
}

// SetRange sets every index in the closed window [start, end] to v.
func (s *Set) SetRange(v bool, start uint64, end Bound) error {
	if err := checkWindow(start, end); err != nil {
		return err
	}
	if v != s.inverted {
		s.ranges.insert(start, end)
	} else {
		s.ranges.remove(start, end)
	}
	return nil
}

// Flip inverts every index of the infinite domain by toggling the background
// bit. Constant time, the stored ranges are untouched.
func (s *Set) Flip() {
	s.inverted = !s.inverted
}

// FlipAt inverts the value at idx.
func (s *Set) FlipAt(idx uint64) {
	s.Set(!s.Get(idx), idx)
}

// FlipRange inverts every index in the closed window [start, end]. The whole
// domain takes the constant-time background toggle; any other window goes
// through the symmetric difference of the stored ranges.
func (s *Set) FlipRange(start uint64, end Bound) error {
	if err := checkWindow(start, end); err != nil {
		return err
	}
	if start == 0 && end.IsUnbounded() {
		s.Flip()
		return nil
	}
	s.ranges.xor(start, end)
	return nil
}

// First returns the smallest index in the closed window [start, end] whose
// value is v, if one exists.
func (s *Set) First(v bool, start uint64, end Bound) (uint64, bool, error) {
	if err := checkWindow(start, end); err != nil {
		return 0, false, err
	}
	idx, ok := s.ranges.first(v != s.inverted, start, end)
	return idx, ok, nil
}

// Last returns the largest index in the closed window [start, end] whose
// value is v. An unbounded result means v occurs at every sufficiently large
// index; ok == false means v never occurs in the window. The two must not be
// conflated.
func (s *Set) Last(v bool, start uint64, end Bound) (Bound, bool, error) {
	if err := checkWindow(start, end); err != nil {
		return Bound{}, false, err
	}
	pos, ok := s.ranges.last(v != s.inverted, start, end)
	return pos, ok, nil
}

// All reports whether every index in the closed window [start, end] has
// value v.
func (s *Set) All(v bool, start uint64, end Bound) (bool, error) {
	if err := checkWindow(start, end); err != nil {
		return false, err
	}
	_, ok := s.ranges.first(v == s.inverted, start, end)
	return !ok, nil
}

// Any reports whether some index in the closed window [start, end] has
// value v.
func (s *Set) Any(v bool, start uint64, end Bound) (bool, error) {
	if err := checkWindow(start, end); err != nil {
		return false, err
	}
	_, ok := s.ranges.first(v != s.inverted, start, end)
	return ok, nil
}

// Slice materializes the values of the half-open window [start, end). The
// end must be finite.
func (s *Set) Slice(start uint64, end Bound) ([]bool, error) {
	if end.IsUnbounded() {
		return nil, fmt.Errorf("slice to %s: %w", end, ErrInvalidArgument)
	}
	if start > end.Value() {
		return nil, fmt.Errorf("slice [%d,%d): %w", start, end.Value(), ErrInvalidArgument)
	}
	out := make([]bool, end.Value()-start)
	for i := range out {
		out[i] = s.Get(start + uint64(i))
	}
	return out, nil
}

// Count returns the number of true indices in the half-open window
// [start, end). The end must be finite.
func (s *Set) Count(start uint64, end Bound) (uint64, error) {
	if end.IsUnbounded() {
		return 0, fmt.Errorf("count to %s: %w", end, ErrInvalidArgument)
	}
	if start > end.Value() {
		return 0, fmt.Errorf("count [%d,%d): %w", start, end.Value(), ErrInvalidArgument)
	}
	if start == end.Value() {
		return 0, nil
	}

	var covered uint64
	for _, r := range s.ranges.overlap(start, At(end.Value()-1)) {
		covered += r.End.Value() - r.Start + 1
	}
	if s.inverted {
		return (end.Value() - start) - covered, nil
	}
	return covered, nil
}

// Len returns the smallest index from which the sequence stays constant
// forever: 0 when no ranges are stored, the start of the tail range when the
// last range is unbounded, and one past the last range otherwise.
func (s *Set) Len() uint64 {
	n := len(s.ranges)
	if n == 0 {
		return 0
	}
	last := s.ranges[n-1]
	if last.End.IsUnbounded() {
		return last.Start
	}
	return last.End.Value() + 1
}

// Clone returns an independent deep copy of the set.
func (s *Set) Clone() *Set {
	return &Set{ranges: s.ranges.clone(), inverted: s.inverted}
}

// Ranges returns a copy of the stored ranges, the indices whose value
// differs from the background bit.
func (s *Set) Ranges() []Range {
	return s.ranges.clone()
}

// Inverted returns the background bit, the value of every index not covered
// by a stored range.
func (s *Set) Inverted() bool {
	return s.inverted
}

// String formats the set as its background bit and stored ranges, e.g.
// "false+{[5,10] [20,inf)}".
func (s *Set) String() string {
	var b strings.Builder
	if s.inverted {
		b.WriteString("true+{")
	} else {
		b.WriteString("false+{")
	}
	for i, r := range s.ranges {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(r.String())
	}
	b.WriteByte('}')
	return b.String()
}
