package rangemap

import (
	"fmt"
	"math"
)

var EmptyRange = Range{Start: 0, End: 0}

type Range struct {
	Start uint64 // inclusive
	End   uint64 // exclusive
}

// Point returns the single-value range [v, v+1). Panics for math.MaxUint64,
// which has no representable exclusive end.
func Point(v uint64) Range {
	if v == math.MaxUint64 {
		panic("rangemap: point range overflows uint64")
	}
	return Range{Start: v, End: v + 1}
}

// FromLength returns [start, start+length), or an error if the end overflows.
func FromLength(start, length uint64) (Range, error) {
	if length > math.MaxUint64-start {
		return EmptyRange, fmt.Errorf("%w: start %d length %d", ErrOverflow, start, length)
	}
	return Range{Start: start, End: start + length}, nil
}

func (r Range) Size() uint64 {
	return r.End - r.Start
}

func (r Range) IsEmpty() bool {
	return r.End <= r.Start
}

func (r Range) Less(other Range) bool {
	return r.Start < other.Start
}

func (r Range) Contains(v uint64) bool {
	return r.Start <= v && v < r.End
}

func (r Range) Overlaps(other Range) bool {
	return r.Start < other.End && other.Start < r.End
}

func (r Range) Adjacent(other Range) bool {
	return r.End == other.Start || other.End == r.Start
}

// Intersect returns [max(starts), min(ends)) and whether it is non-empty.
func (r Range) Intersect(other Range) (Range, bool) {
	out := Range{Start: max(r.Start, other.Start), End: min(r.End, other.End)}
	if out.Start >= out.End {
		return EmptyRange, false
	}
	return out, true
}

func (r Range) Merge(other Range) Range {
	if !r.Overlaps(other) && !r.Adjacent(other) {
		panic("cannot merge non-overlapping, non-adjacent ranges")
	}
	return Range{Start: min(r.Start, other.Start), End: max(r.End, other.End)}
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}

// TotalSize sums the sizes of ranges. Overlapping ranges are counted twice.
func TotalSize(ranges []Range) uint64 {
	var total uint64
	for _, r := range ranges {
		total += r.Size()
	}
	return total
}
