// Package pipeline chains rangemap stages and pushes whole ranges of values
// through them without enumerating the values.
//
// Each stage is processed with an explicit worklist. A pending range is
// tested against the stage's entries; the first overlapping entry
// translates the overlap, and the parts of the range left and right of the
// overlap go back onto the worklist to be tested against the remaining
// entries. A range that overlaps nothing passes through unchanged. Zero
// length remainders are never queued.
//
// Translation is an order-preserving shift, so the minimum of every output
// range is its start and the minimum over the whole pipeline is the smallest
// start among the final ranges.
//
// Complexity: O(stages × ranges × entries) where the range count at each
// stage grows by at most two per entry boundary crossed.
//
// A single value v is the range [v, v+1); there is no separate point path
// for propagation.
package pipeline
