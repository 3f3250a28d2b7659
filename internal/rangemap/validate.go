package rangemap

import "github.com/google/btree"

type indexedEntry struct {
	Entry
	idx int
}

func lessIndexedEntry(a, b indexedEntry) bool {
	if a.Input.Start != b.Input.Start {
		return a.Input.Start < b.Input.Start
	}
	return a.idx < b.idx
}

// Overlaps sweeps the entries in input-start order and reports each entry
// whose input range intersects an entry that starts at or before it. Within a
// reported pair, First is the entry that wins lookups (earlier in Entries).
func (m RangeMap) Overlaps() []*OverlapError {
	byStart := btree.NewG[indexedEntry](32, lessIndexedEntry)
	for i, e := range m.Entries {
		if e.Input.IsEmpty() {
			continue
		}
		byStart.ReplaceOrInsert(indexedEntry{Entry: e, idx: i})
	}

	var overlaps []*OverlapError
	var reach indexedEntry // entry with the furthest End seen so far
	var seen bool
	byStart.Ascend(func(cur indexedEntry) bool {
		if seen && cur.Input.Start < reach.Input.End {
			first, second := reach, cur
			if second.idx < first.idx {
				first, second = second, first
			}
			overlaps = append(overlaps, &OverlapError{Stage: m.Name, First: first.Entry, Second: second.Entry})
		}
		if !seen || cur.Input.End > reach.Input.End {
			reach = cur
			seen = true
		}
		return true
	})
	return overlaps
}

// Validate returns the first overlap found by Overlaps, or nil.
func (m RangeMap) Validate() error {
	if overlaps := m.Overlaps(); len(overlaps) > 0 {
		return overlaps[0]
	}
	return nil
}
