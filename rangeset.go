// Copyright (c) fullmetalScience and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package boolset

import (
	"math"
	"sort"
)

// rangeSet is a collection of ranges kept strictly increasing by start,
// mutually disjoint and never adjacent: merging on insert and splitting on
// remove preserve a gap of at least one index between neighbours. At most
// one range may be unbounded and it is always the last one.
type rangeSet []Range

// search returns the position of the first range starting after idx.
func (s rangeSet) search(idx uint64) int {
	return sort.Search(len(s), func(k int) bool { return s[k].Start > idx })
}

// contains reports whether idx is covered by some range.
func (s rangeSet) contains(idx uint64) bool {
	i := s.search(idx)
	return i > 0 && s[i-1].contains(idx)
}

// insert adds the closed interval [start, end] to the set, merging it with
// every range it overlaps or adjoins.
func (s *rangeSet) insert(start uint64, end Bound) {
	// Ends increase together with starts, so the leftmost range reaching
	// start-1 or further is binary-searchable.
	i := sort.Search(len(*s), func(k int) bool {
		r := (*s)[k]
		return r.End.unbounded || start == 0 || r.End.value >= start-1
	})

	// First range lying strictly beyond end+1, i.e. past the merge window.
	j := len(*s)
	if !end.unbounded && end.value != math.MaxUint64 {
		j = sort.Search(len(*s), func(k int) bool { return (*s)[k].Start > end.value+1 })
	}

	merged := Range{Start: start, End: end}
	if i < j {
		if first := (*s)[i]; first.Start < merged.Start {
			merged.Start = first.Start
		}
		if last := (*s)[j-1]; merged.End.before(last.End) {
			merged.End = last.End
		}
	}
	s.splice(i, j, merged)
}

// remove deletes the closed interval [start, end] from the set. Ranges fully
// covered by it disappear, ranges crossing one boundary are truncated and a
// range enclosing it is split in two, the right part keeping the original
// unboundedness.
func (s *rangeSet) remove(start uint64, end Bound) {
	i := sort.Search(len(*s), func(k int) bool { return (*s)[k].End.atLeast(start) })
	j := len(*s)
	if !end.unbounded {
		j = sort.Search(len(*s), func(k int) bool { return (*s)[k].Start > end.value })
	}
	if i >= j {
		return
	}

	remnants := make([]Range, 0, 2)
	if first := (*s)[i]; first.Start < start {
		remnants = append(remnants, Range{Start: first.Start, End: At(start - 1)})
	}
	if last := (*s)[j-1]; end.before(last.End) && end.value != math.MaxUint64 {
		remnants = append(remnants, Range{Start: end.value + 1, End: last.End})
	}
	s.splice(i, j, remnants...)
}

// xor flips coverage inside the closed interval [start, end]: covered
// sub-intervals become uncovered and vice versa. Indices outside the
// interval are untouched.
func (s *rangeSet) xor(start uint64, end Bound) {
	covered := s.overlap(start, end)
	uncovered := gaps(covered, start, end)
	for _, r := range covered {
		s.remove(r.Start, r.End)
	}
	for _, r := range uncovered {
		s.insert(r.Start, r.End)
	}
}

// overlap returns the covered sub-intervals of [start, end], clipped to it.
func (s rangeSet) overlap(start uint64, end Bound) []Range {
	i := sort.Search(len(s), func(k int) bool { return s[k].End.atLeast(start) })

	var out []Range
	for ; i < len(s); i++ {
		r := s[i]
		if !end.unbounded && r.Start > end.value {
			break
		}
		if r.Start < start {
			r.Start = start
		}
		if end.before(r.End) {
			r.End = end
		}
		out = append(out, r)
	}
	return out
}

// gaps returns the uncovered sub-intervals of [start, end], given the
// covered ones in ascending order.
func gaps(covered []Range, start uint64, end Bound) []Range {
	var out []Range
	next := start
	for _, r := range covered {
		if r.Start > next {
			out = append(out, Range{Start: next, End: At(r.Start - 1)})
		}
		if r.End.unbounded || r.End.value == math.MaxUint64 {
			return out
		}
		next = r.End.value + 1
	}
	if end.atLeast(next) {
		out = append(out, Range{Start: next, End: end})
	}
	return out
}

// first returns the smallest index within [start, end] that is covered
// (covered == true) or uncovered (covered == false), if one exists.
func (s rangeSet) first(covered bool, start uint64, end Bound) (uint64, bool) {
	i := s.search(start)

	if covered {
		if i > 0 && s[i-1].contains(start) {
			return start, true
		}
		if i < len(s) && end.atLeast(s[i].Start) {
			return s[i].Start, true
		}
		return 0, false
	}

	if i == 0 || !s[i-1].contains(start) {
		return start, true
	}
	r := s[i-1]
	if r.End.unbounded || r.End.value == math.MaxUint64 {
		return 0, false
	}
	if next := r.End.value + 1; end.atLeast(next) {
		return next, true
	}
	return 0, false
}

// last returns the largest index within [start, end] that is covered
// (covered == true) or uncovered (covered == false). An unbounded result
// means the sought coverage extends past every finite index; ok == false
// means it never occurs within the window.
func (s rangeSet) last(covered bool, start uint64, end Bound) (Bound, bool) {
	if end.unbounded {
		if covered {
			if n := len(s); n > 0 {
				r := s[n-1]
				if r.End.unbounded {
					return Unbounded(), true
				}
				if r.End.value >= start {
					return r.End, true
				}
			}
			return Bound{}, false
		}
		if n := len(s); n > 0 && s[n-1].End.unbounded {
			if tail := s[n-1].Start; tail > start {
				return At(tail - 1), true
			}
			return Bound{}, false
		}
		return Unbounded(), true
	}

	e := end.value
	i := s.search(e)

	if covered {
		if i == 0 {
			return Bound{}, false
		}
		r := s[i-1]
		last := e
		if !r.End.atLeast(e) {
			last = r.End.value
		}
		if last < start {
			return Bound{}, false
		}
		return At(last), true
	}

	if i == 0 || !s[i-1].contains(e) {
		if e >= start {
			return At(e), true
		}
		return Bound{}, false
	}
	r := s[i-1]
	if r.Start == 0 || r.Start-1 < start {
		return Bound{}, false
	}
	return At(r.Start - 1), true
}

// splice replaces the ranges in positions [i, j) with repl.
func (s *rangeSet) splice(i, j int, repl ...Range) {
	if grow := len(repl) - (j - i); grow > 0 {
		*s = append(*s, make([]Range, grow)...)
		copy((*s)[j+grow:], (*s)[j:])
		j += grow
	}
	copy((*s)[i:], repl)
	if i+len(repl) < j {
		*s = append((*s)[:i+len(repl)], (*s)[j:]...)
	}
}

// clone returns an independent copy of the set.
func (s rangeSet) clone() rangeSet {
	if s == nil {
		return nil
	}
	out := make(rangeSet, len(s))
	copy(out, s)
	return out
}
