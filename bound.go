package boolset

import "strconv"

// Bound is the upper limit of an index window: either a finite index or
// unbounded, meaning "this index and every larger one". The zero value is
// the finite index 0.
type Bound struct {
	value     uint64
	unbounded bool
}

// At returns a finite bound at index n.
func At(n uint64) Bound {
	return Bound{value: n}
}

// Unbounded returns the bound that extends past every finite index.
func Unbounded() Bound {
	return Bound{unbounded: true}
}

// IsUnbounded reports whether the bound extends past every finite index.
func (b Bound) IsUnbounded() bool {
	return b.unbounded
}

// Value returns the index of a finite bound. It is meaningful only when
// IsUnbounded reports false.
func (b Bound) Value() uint64 {
	return b.value
}

// atLeast reports whether the bound is at or above index n.
func (b Bound) atLeast(n uint64) bool {
	return b.unbounded || b.value >= n
}

// before reports whether b is strictly below o.
func (b Bound) before(o Bound) bool {
	if b.unbounded {
		return false
	}
	return o.unbounded || b.value < o.value
}

// String returns the index in decimal, or "inf" for an unbounded bound.
func (b Bound) String() string {
	if b.unbounded {
		return "inf"
	}
	return strconv.FormatUint(b.value, 10)
}

// Range is a closed interval [Start, End] of indices. End may be unbounded,
// in which case the range covers Start and every larger index.
type Range struct {
	Start uint64
	End   Bound
}

// contains reports whether idx falls inside the closed interval.
func (r Range) contains(idx uint64) bool {
	return idx >= r.Start && r.End.atLeast(idx)
}

// String formats the range as [start,end] or [start,inf).
func (r Range) String() string {
	start := strconv.FormatUint(r.Start, 10)
	if r.End.unbounded {
		return "[" + start + ",inf)"
	}
	return "[" + start + "," + strconv.FormatUint(r.End.value, 10) + "]"
}
