package rangemap

import (
	"errors"
	"fmt"
)

var ErrOverflow = errors.New("range end overflows uint64")

// OverlapError reports two entries of one map whose input ranges intersect.
// Lookups still resolve to the first entry in input order.
type OverlapError struct {
	Stage  string
	First  Entry
	Second Entry
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("stage %q: entry %v overlaps entry %v", e.Stage, e.First, e.Second)
}

func (e *OverlapError) Is(target error) bool {
	_, ok := target.(*OverlapError)
	return ok
}
