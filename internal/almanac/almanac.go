// Package almanac parses the seed almanac puzzle input and answers both of
// its questions with a range pipeline.
package almanac

import (
	"context"
	"fmt"
	"math"

	"github.com/garethgeorge/almanac/internal/pipeline"
	"github.com/garethgeorge/almanac/internal/rangemap"
)

// SeedMode selects how the numbers on the seeds line are read.
type SeedMode int

const (
	// PointSeeds reads every number as one seed.
	PointSeeds SeedMode = iota
	// RangeSeeds reads the numbers as (start, length) pairs.
	RangeSeeds
)

func (m SeedMode) String() string {
	switch m {
	case PointSeeds:
		return "point"
	case RangeSeeds:
		return "range"
	default:
		return fmt.Sprintf("SeedMode(%d)", int(m))
	}
}

// Almanac is a parsed puzzle input. It is not modified after parsing.
type Almanac struct {
	Seeds    []uint64
	Pipeline *pipeline.Pipeline
}

// SeedRanges interprets the seed numbers according to mode.
func (a *Almanac) SeedRanges(mode SeedMode) ([]rangemap.Range, error) {
	switch mode {
	case PointSeeds:
		ranges := make([]rangemap.Range, 0, len(a.Seeds))
		for _, s := range a.Seeds {
			if s == math.MaxUint64 {
				return nil, fmt.Errorf("seed %d: %w", s, rangemap.ErrOverflow)
			}
			ranges = append(ranges, rangemap.Point(s))
		}
		return ranges, nil
	case RangeSeeds:
		if len(a.Seeds)%2 != 0 {
			return nil, fmt.Errorf("%d seed values: %w", len(a.Seeds), ErrOddSeedCount)
		}
		ranges := make([]rangemap.Range, 0, len(a.Seeds)/2)
		for i := 0; i < len(a.Seeds); i += 2 {
			r, err := rangemap.FromLength(a.Seeds[i], a.Seeds[i+1])
			if err != nil {
				return nil, fmt.Errorf("seed pair %d: %w", i/2, err)
			}
			ranges = append(ranges, r)
		}
		return ranges, nil
	default:
		return nil, fmt.Errorf("unknown seed mode %v", mode)
	}
}

// MinLocation returns the lowest location reachable from the seeds.
func (a *Almanac) MinLocation(mode SeedMode) (uint64, error) {
	ranges, err := a.SeedRanges(mode)
	if err != nil {
		return 0, err
	}
	loc, err := a.Pipeline.MinLocation(ranges)
	if err != nil {
		return 0, fmt.Errorf("%v seeds: %w", mode, err)
	}
	return loc, nil
}

// MinLocationParallel is MinLocation with one task per seed range.
func (a *Almanac) MinLocationParallel(ctx context.Context, mode SeedMode, opts ...pipeline.Option) (uint64, error) {
	ranges, err := a.SeedRanges(mode)
	if err != nil {
		return 0, err
	}
	loc, err := a.Pipeline.MinLocationParallel(ctx, ranges, opts...)
	if err != nil {
		return 0, fmt.Errorf("%v seeds: %w", mode, err)
	}
	return loc, nil
}

// PartOne answers the point-seed question for a raw input.
func PartOne(input string) (uint64, error) {
	a, err := ParseString(input)
	if err != nil {
		return 0, err
	}
	return a.MinLocation(PointSeeds)
}

// PartTwo answers the range-seed question for a raw input.
func PartTwo(input string) (uint64, error) {
	a, err := ParseString(input)
	if err != nil {
		return 0, err
	}
	return a.MinLocation(RangeSeeds)
}
