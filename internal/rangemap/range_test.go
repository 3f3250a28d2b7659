package rangemap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRange(t *testing.T) {
	t.Run("Size", func(t *testing.T) {
		testCases := []struct {
			name     string
			r        Range
			expected uint64
		}{
			{"positive size", Range{Start: 10, End: 20}, 10},
			{"zero size", Range{Start: 5, End: 5}, 0},
			{"full width", Range{Start: 0, End: math.MaxUint64}, math.MaxUint64},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				assert.Equal(t, tc.expected, tc.r.Size())
				assert.Equal(t, tc.expected == 0, tc.r.IsEmpty())
			})
		}
	})

	t.Run("Contains", func(t *testing.T) {
		r := Range{Start: 10, End: 20}
		assert.False(t, r.Contains(9))
		assert.True(t, r.Contains(10))
		assert.True(t, r.Contains(19))
		assert.False(t, r.Contains(20))
		assert.False(t, EmptyRange.Contains(0))
	})

	t.Run("Overlaps", func(t *testing.T) {
		testCases := []struct {
			name     string
			r1, r2   Range
			expected bool
		}{
			{"r2 starts during r1", Range{Start: 10, End: 20}, Range{Start: 15, End: 25}, true},
			{"r1 and r2 are adjacent", Range{Start: 10, End: 20}, Range{Start: 20, End: 30}, false},
			{"r2 contains r1", Range{Start: 10, End: 20}, Range{Start: 5, End: 25}, true},
			{"no overlap", Range{Start: 10, End: 20}, Range{Start: 25, End: 30}, false},
			{"identical ranges", Range{Start: 10, End: 20}, Range{Start: 10, End: 20}, true},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				assert.Equal(t, tc.expected, tc.r1.Overlaps(tc.r2))
				assert.Equal(t, tc.expected, tc.r2.Overlaps(tc.r1))
			})
		}
	})

	t.Run("Intersect", func(t *testing.T) {
		testCases := []struct {
			name     string
			r1, r2   Range
			expected Range
			ok       bool
		}{
			{"partial left", Range{Start: 50, End: 60}, Range{Start: 45, End: 54}, Range{Start: 50, End: 54}, true},
			{"contained", Range{Start: 50, End: 60}, Range{Start: 52, End: 54}, Range{Start: 52, End: 54}, true},
			{"adjacent", Range{Start: 50, End: 60}, Range{Start: 60, End: 70}, EmptyRange, false},
			{"disjoint", Range{Start: 79, End: 93}, Range{Start: 98, End: 100}, EmptyRange, false},
			{"empty operand", Range{Start: 55, End: 55}, Range{Start: 50, End: 60}, EmptyRange, false},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				got, ok := tc.r1.Intersect(tc.r2)
				assert.Equal(t, tc.ok, ok)
				assert.Equal(t, tc.expected, got)
				got, ok = tc.r2.Intersect(tc.r1)
				assert.Equal(t, tc.ok, ok)
				assert.Equal(t, tc.expected, got)
			})
		}
	})

	t.Run("Merge", func(t *testing.T) {
		assert.Equal(t, Range{Start: 10, End: 30}, Range{Start: 10, End: 20}.Merge(Range{Start: 20, End: 30}))
		assert.Equal(t, Range{Start: 10, End: 25}, Range{Start: 15, End: 25}.Merge(Range{Start: 10, End: 20}))
		assert.Panics(t, func() { Range{Start: 10, End: 20}.Merge(Range{Start: 21, End: 30}) })
	})

	t.Run("String", func(t *testing.T) {
		assert.Equal(t, "[10, 20)", Range{Start: 10, End: 20}.String())
	})
}

func TestPoint(t *testing.T) {
	assert.Equal(t, Range{Start: 79, End: 80}, Point(79))
	assert.Equal(t, uint64(1), Point(0).Size())
	assert.Panics(t, func() { Point(math.MaxUint64) })
}

func TestFromLength(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		r, err := FromLength(79, 14)
		require.NoError(t, err)
		assert.Equal(t, Range{Start: 79, End: 93}, r)
	})

	t.Run("ends exactly at max", func(t *testing.T) {
		r, err := FromLength(math.MaxUint64-10, 10)
		require.NoError(t, err)
		assert.Equal(t, uint64(math.MaxUint64), r.End)
	})

	t.Run("overflow", func(t *testing.T) {
		_, err := FromLength(math.MaxUint64-10, 11)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrOverflow)
	})
}

func TestTotalSize(t *testing.T) {
	assert.Equal(t, uint64(0), TotalSize(nil))
	assert.Equal(t, uint64(10), TotalSize([]Range{{Start: 50, End: 52}, {Start: 50, End: 52}, {Start: 54, End: 60}}))
}
