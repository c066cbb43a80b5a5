package boolset

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidArgument reports a malformed window or index argument, such
	// as a window whose start exceeds its end, or an unbounded end passed to
	// an operation that needs a finite one.
	ErrInvalidArgument = errors.New("boolset: invalid argument")

	// ErrMalformedState reports externally supplied ranges that violate the
	// collection invariant: unsorted, overlapping or adjacent ranges, an
	// inverted range, or an unbounded range anywhere but last.
	ErrMalformedState = errors.New("boolset: malformed state")
)

// checkWindow rejects closed windows with start past end.
func checkWindow(start uint64, end Bound) error {
	if !end.atLeast(start) {
		return fmt.Errorf("window [%d,%s]: %w", start, end, ErrInvalidArgument)
	}
	return nil
}

// validateRanges checks the collection invariant on externally supplied
// ranges before they are adopted.
func validateRanges(ranges []Range) error {
	for i, r := range ranges {
		if !r.End.atLeast(r.Start) {
			return fmt.Errorf("range %d %s has start past end: %w", i, r, ErrMalformedState)
		}
		if r.End.IsUnbounded() && i != len(ranges)-1 {
			return fmt.Errorf("range %d %s is unbounded but not last: %w", i, r, ErrMalformedState)
		}
		if i == 0 {
			continue
		}
		prev := ranges[i-1]
		if prev.End.Value() == math.MaxUint64 || prev.End.Value()+1 >= r.Start {
			return fmt.Errorf("ranges %d %s and %d %s overlap, adjoin or are out of order: %w",
				i-1, prev, i, r, ErrMalformedState)
		}
	}
	return nil
}
