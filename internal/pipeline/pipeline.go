package pipeline

import (
	"errors"
	"slices"

	"github.com/garethgeorge/almanac/internal/rangemap"
)

// ErrNoResult is returned when there are no values to take a minimum over.
var ErrNoResult = errors.New("no result: empty range set")

// Pipeline is an ordered, immutable list of translation stages.
type Pipeline struct {
	stages []rangemap.RangeMap
}

func New(stages ...rangemap.RangeMap) *Pipeline {
	return &Pipeline{stages: slices.Clone(stages)}
}

func (p *Pipeline) Len() int {
	return len(p.stages)
}

func (p *Pipeline) Stages() []rangemap.RangeMap {
	return slices.Clone(p.stages)
}

// MapPoint runs a single value through every stage.
func (p *Pipeline) MapPoint(v uint64) uint64 {
	for _, stage := range p.stages {
		v = stage.MapPoint(v)
	}
	return v
}

// PropagateStage pushes ranges through a single stage. The output covers
// exactly as many values as the input. Empty input ranges are dropped.
func PropagateStage(m rangemap.RangeMap, ranges []rangemap.Range) []rangemap.Range {
	pending := nonEmpty(ranges)
	return propagateStage(m, pending, make([]rangemap.Range, 0, len(pending)))
}

// propagateStage drains the pending worklist through m, appending results to
// out. pending's backing array is reused as the stack.
func propagateStage(m rangemap.RangeMap, pending, out []rangemap.Range) []rangemap.Range {
	for len(pending) > 0 {
		r := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		e, overlap, ok := m.FirstOverlap(r)
		if !ok {
			out = append(out, r)
			continue
		}
		out = append(out, e.TranslateRange(overlap))

		if r.Start < overlap.Start {
			pending = append(pending, rangemap.Range{Start: r.Start, End: overlap.Start})
		}
		if overlap.End < r.End {
			pending = append(pending, rangemap.Range{Start: overlap.End, End: r.End})
		}
	}
	return out
}

// Propagate pushes ranges through every stage and returns the final ranges.
// Empty input ranges are dropped.
func (p *Pipeline) Propagate(ranges []rangemap.Range) []rangemap.Range {
	cur := nonEmpty(ranges)
	next := make([]rangemap.Range, 0, len(cur))
	for _, stage := range p.stages {
		out := propagateStage(stage, cur, next[:0])
		cur, next = out, cur[:0]
	}
	return cur
}

// MinLocation returns the smallest value reachable from ranges.
func (p *Pipeline) MinLocation(ranges []rangemap.Range) (uint64, error) {
	return MinStart(p.Propagate(ranges))
}

// MinStart returns the smallest start among the non-empty ranges.
func MinStart(ranges []rangemap.Range) (uint64, error) {
	var best uint64
	found := false
	for _, r := range ranges {
		if r.IsEmpty() {
			continue
		}
		if !found || r.Start < best {
			best = r.Start
			found = true
		}
	}
	if !found {
		return 0, ErrNoResult
	}
	return best, nil
}

func nonEmpty(ranges []rangemap.Range) []rangemap.Range {
	out := make([]rangemap.Range, 0, len(ranges))
	for _, r := range ranges {
		if !r.IsEmpty() {
			out = append(out, r)
		}
	}
	return out
}
