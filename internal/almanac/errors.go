package almanac

import (
	"errors"
	"fmt"
)

var (
	ErrMissingSeparator = errors.New("missing ':' separator")
	ErrMalformedEntry   = errors.New("map entry must be \"dest src length\"")
	ErrOddSeedCount     = errors.New("range seeds need an even number of values")
)

// ParseError is a fatal error at a specific input line.
type ParseError struct {
	Line int
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("line %d: %s: %v", e.Line, e.Msg, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
