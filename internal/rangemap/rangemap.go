package rangemap

// RangeMap is one translation stage. Values not covered by any entry map to
// themselves.
//
// Entry input ranges are expected to be disjoint. When they are not, every
// lookup resolves to the first matching entry in Entries order; use Validate
// to detect that case.
type RangeMap struct {
	// Name is used for diagnostics only.
	Name    string
	Entries []Entry
}

func New(name string, entries ...Entry) RangeMap {
	return RangeMap{Name: name, Entries: entries}
}

func (m RangeMap) Len() int {
	return len(m.Entries)
}

// MapPoint translates a single value.
func (m RangeMap) MapPoint(v uint64) uint64 {
	for _, e := range m.Entries {
		if e.Contains(v) {
			return e.Translate(v)
		}
	}
	return v
}

// FirstOverlap returns the first entry whose input range intersects r,
// together with the intersection.
func (m RangeMap) FirstOverlap(r Range) (Entry, Range, bool) {
	for _, e := range m.Entries {
		if overlap, ok := r.Intersect(e.Input); ok {
			return e, overlap, true
		}
	}
	return Entry{}, EmptyRange, false
}
