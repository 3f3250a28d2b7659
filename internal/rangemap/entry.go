package rangemap

import "fmt"

// Entry translates every value of Input to the value at the same offset in
// Output. Input and Output always have the same size.
type Entry struct {
	Input  Range
	Output Range
}

// NewEntry builds an entry from a "dest src length" triple.
func NewEntry(dest, src, length uint64) (Entry, error) {
	in, err := FromLength(src, length)
	if err != nil {
		return Entry{}, fmt.Errorf("source range: %w", err)
	}
	out, err := FromLength(dest, length)
	if err != nil {
		return Entry{}, fmt.Errorf("destination range: %w", err)
	}
	return Entry{Input: in, Output: out}, nil
}

func (e Entry) Contains(v uint64) bool {
	return e.Input.Contains(v)
}

// Translate shifts v from Input into Output. The result is meaningless when
// v is outside Input.
func (e Entry) Translate(v uint64) uint64 {
	return e.Output.Start + (v - e.Input.Start)
}

// TranslateRange shifts a sub-range of Input into Output.
func (e Entry) TranslateRange(r Range) Range {
	start := e.Translate(r.Start)
	return Range{Start: start, End: start + r.Size()}
}

func (e Entry) String() string {
	return fmt.Sprintf("%v->%v", e.Input, e.Output)
}
