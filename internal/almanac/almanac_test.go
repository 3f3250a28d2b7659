package almanac

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/garethgeorge/almanac/internal/pipeline"
	"github.com/garethgeorge/almanac/internal/rangemap"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readExample(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("testdata/example.txt")
	require.NoError(t, err)
	return string(data)
}

func TestParse_Example(t *testing.T) {
	a, err := ParseString(readExample(t))
	require.NoError(t, err)

	assert.Equal(t, []uint64{79, 14, 55, 13}, a.Seeds)
	require.Equal(t, len(DefaultSchema), a.Pipeline.Len())

	stages := a.Pipeline.Stages()
	for i, name := range DefaultSchema {
		assert.Equal(t, name, stages[i].Name)
	}
	assert.Equal(t, 2, stages[0].Len())
	assert.Equal(t, 4, stages[2].Len())
	assert.Equal(t, rangemap.Range{Start: 98, End: 100}, stages[0].Entries[0].Input)
	assert.Equal(t, rangemap.Range{Start: 50, End: 52}, stages[0].Entries[0].Output)

	for _, s := range stages {
		for _, e := range s.Entries {
			assert.Equal(t, e.Input.Size(), e.Output.Size())
		}
	}
}

func TestParts_Example(t *testing.T) {
	input := readExample(t)

	one, err := PartOne(input)
	require.NoError(t, err)
	assert.Equal(t, uint64(35), one)

	two, err := PartTwo(input)
	require.NoError(t, err)
	assert.Equal(t, uint64(46), two)
}

func TestAlmanac_MinLocationParallel(t *testing.T) {
	a, err := ParseString(readExample(t))
	require.NoError(t, err)

	one, err := a.MinLocationParallel(context.Background(), PointSeeds, pipeline.WithParallelism(3))
	require.NoError(t, err)
	assert.Equal(t, uint64(35), one)

	two, err := a.MinLocationParallel(context.Background(), RangeSeeds)
	require.NoError(t, err)
	assert.Equal(t, uint64(46), two)
}

func TestAlmanac_RangeSeedsMatchExpandedPoints(t *testing.T) {
	a, err := ParseString(readExample(t))
	require.NoError(t, err)

	ranges, err := a.SeedRanges(RangeSeeds)
	require.NoError(t, err)

	var expanded []uint64
	for _, r := range ranges {
		for v := r.Start; v < r.End; v++ {
			expanded = append(expanded, v)
		}
	}
	points := &Almanac{Seeds: expanded, Pipeline: a.Pipeline}

	want, err := points.MinLocation(PointSeeds)
	require.NoError(t, err)
	got, err := a.MinLocation(RangeSeeds)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestAlmanac_SeedRanges(t *testing.T) {
	t.Run("points", func(t *testing.T) {
		a := &Almanac{Seeds: []uint64{79, 14}}
		ranges, err := a.SeedRanges(PointSeeds)
		require.NoError(t, err)
		assert.Equal(t, []rangemap.Range{{Start: 79, End: 80}, {Start: 14, End: 15}}, ranges)
	})

	t.Run("pairs", func(t *testing.T) {
		a := &Almanac{Seeds: []uint64{79, 14, 55, 13}}
		ranges, err := a.SeedRanges(RangeSeeds)
		require.NoError(t, err)
		assert.Equal(t, []rangemap.Range{{Start: 79, End: 93}, {Start: 55, End: 68}}, ranges)
	})

	t.Run("odd count", func(t *testing.T) {
		a := &Almanac{Seeds: []uint64{79, 14, 55}}
		_, err := a.SeedRanges(RangeSeeds)
		assert.ErrorIs(t, err, ErrOddSeedCount)
	})

	t.Run("pair overflows", func(t *testing.T) {
		a := &Almanac{Seeds: []uint64{1 << 63, 1 << 63}}
		_, err := a.SeedRanges(RangeSeeds)
		assert.ErrorIs(t, err, rangemap.ErrOverflow)
	})

	t.Run("point at max", func(t *testing.T) {
		a := &Almanac{Seeds: []uint64{18446744073709551615}}
		_, err := a.SeedRanges(PointSeeds)
		assert.ErrorIs(t, err, rangemap.ErrOverflow)
	})

	t.Run("unknown mode", func(t *testing.T) {
		_, err := (&Almanac{}).SeedRanges(SeedMode(9))
		assert.Error(t, err)
		assert.Equal(t, "SeedMode(9)", SeedMode(9).String())
	})
}

func TestAlmanac_NoSeeds(t *testing.T) {
	a, err := ParseString("seeds:\n\nseed-to-soil map:\n50 98 2\n")
	require.NoError(t, err)
	assert.Empty(t, a.Seeds)

	_, err = a.MinLocation(PointSeeds)
	assert.ErrorIs(t, err, pipeline.ErrNoResult)
	_, err = a.MinLocation(RangeSeeds)
	assert.ErrorIs(t, err, pipeline.ErrNoResult)
}

func TestParse_Lenient(t *testing.T) {
	t.Run("unknown stage is skipped", func(t *testing.T) {
		input := strings.Replace(readExample(t), "water-to-light map:", "water-to-sunshine map:", 1)
		a, err := ParseString(input)
		require.NoError(t, err)
		assert.Equal(t, 0, a.Pipeline.Stages()[3].Len(), "missing stage is identity")
	})

	t.Run("unknown stage block is not parsed", func(t *testing.T) {
		input := "seeds: 1\n\nbogus map:\nnot numbers here\n\nseed-to-soil map:\n10 1 1\n"
		a, err := ParseString(input)
		require.NoError(t, err)
		loc, err := a.MinLocation(PointSeeds)
		require.NoError(t, err)
		assert.Equal(t, uint64(10), loc)
	})

	t.Run("stray lines are skipped", func(t *testing.T) {
		input := "# comment\nseeds: 5\nnoise\n\nseed-to-soil map:\n100 5 1\n"
		a, err := ParseString(input)
		require.NoError(t, err)
		assert.Equal(t, uint64(100), a.Pipeline.MapPoint(5))
	})

	t.Run("repeated header appends", func(t *testing.T) {
		input := "seeds: 5 6\n\nseed-to-soil map:\n100 5 1\n\nseed-to-soil map:\n200 6 1\n"
		a, err := ParseString(input)
		require.NoError(t, err)
		assert.Equal(t, 2, a.Pipeline.Stages()[0].Len())
		assert.Equal(t, uint64(200), a.Pipeline.MapPoint(6))
	})

	t.Run("crlf line endings", func(t *testing.T) {
		input := strings.ReplaceAll(readExample(t), "\n", "\r\n")
		a, err := ParseString(input)
		require.NoError(t, err)
		loc, err := a.MinLocation(RangeSeeds)
		require.NoError(t, err)
		assert.Equal(t, uint64(46), loc)
	})

	t.Run("block ends at eof", func(t *testing.T) {
		a, err := ParseString("seeds: 3\nhumidity-to-location map:\n0 3 1")
		require.NoError(t, err)
		assert.Equal(t, uint64(0), a.Pipeline.MapPoint(3))
	})
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		line   int
		target error
	}{
		{"missing separator", "seeds 79 14\n", 1, ErrMissingSeparator},
		{"bad seed", "seeds: 79 x14\n", 1, strconv.ErrSyntax},
		{"negative seed", "seeds: -1\n", 1, strconv.ErrSyntax},
		{"seed out of range", "seeds: 18446744073709551616\n", 1, strconv.ErrRange},
		{"two fields", "seeds: 1\n\nseed-to-soil map:\n50 98\n", 4, ErrMalformedEntry},
		{"four fields", "seeds: 1\n\nseed-to-soil map:\n50 98 2 1\n", 4, ErrMalformedEntry},
		{"bad entry value", "seeds: 1\n\nseed-to-soil map:\n50 98 2\n52 5O 48\n", 5, strconv.ErrSyntax},
		{"entry overflow", "seeds: 1\n\nseed-to-soil map:\n50 18446744073709551615 2\n", 4, rangemap.ErrOverflow},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseString(tc.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.target)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tc.line, perr.Line)
			assert.Contains(t, err.Error(), "line "+strconv.Itoa(tc.line))
		})
	}
}

func TestParse_Overlaps(t *testing.T) {
	input := "seeds: 15\n\nseed-to-soil map:\n100 15 10\n0 10 10\n"

	t.Run("warns and keeps first match", func(t *testing.T) {
		var buf bytes.Buffer
		a, err := ParseString(input, WithLogger(zerolog.New(&buf)))
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "overlapping entries")
		assert.Contains(t, buf.String(), `"level":"warn"`)

		loc, err := a.MinLocation(PointSeeds)
		require.NoError(t, err)
		assert.Equal(t, uint64(100), loc)
	})

	t.Run("strict rejects", func(t *testing.T) {
		_, err := ParseString(input, WithStrict(true))
		require.Error(t, err)
		assert.ErrorIs(t, err, &rangemap.OverlapError{})
		assert.Contains(t, err.Error(), "seed-to-soil")
	})
}

func TestParse_CustomSchema(t *testing.T) {
	input := "seeds: 1 2\n\na-to-b map:\n10 1 2\n\nb-to-c map:\n0 11 1\n\nseed-to-soil map:\n500 0 100\n"

	a, err := ParseString(input, WithSchema("a-to-b", "b-to-c"))
	require.NoError(t, err)
	require.Equal(t, 2, a.Pipeline.Len())

	assert.Equal(t, uint64(10), a.Pipeline.MapPoint(1))
	assert.Equal(t, uint64(0), a.Pipeline.MapPoint(2))

	loc, err := a.MinLocation(RangeSeeds)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), loc)
}
