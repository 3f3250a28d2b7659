package almanac

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/garethgeorge/almanac/internal/pipeline"
	"github.com/garethgeorge/almanac/internal/rangemap"
	"github.com/rs/zerolog"
)

// DefaultSchema is the stage order of the puzzle almanac.
var DefaultSchema = []string{
	"seed-to-soil",
	"soil-to-fertilizer",
	"fertilizer-to-water",
	"water-to-light",
	"light-to-temperature",
	"temperature-to-humidity",
	"humidity-to-location",
}

const maxLineBytes = 1 << 20

type options struct {
	schema []string
	strict bool
	log    zerolog.Logger
}

type Option = func(*options)

// WithSchema sets the stage names, in pipeline order. Blocks whose header is
// not in the schema are skipped.
func WithSchema(names ...string) Option {
	return func(o *options) {
		o.schema = names
	}
}

// WithStrict makes overlapping entries within a stage a fatal error instead
// of a warning.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

func WithLogger(log zerolog.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

type lineScanner struct {
	*bufio.Scanner
	line int
}

func (s *lineScanner) Scan() bool {
	if !s.Scanner.Scan() {
		return false
	}
	s.line++
	return true
}

func (s *lineScanner) errorf(err error, format string, args ...any) *ParseError {
	return &ParseError{Line: s.line, Msg: fmt.Sprintf(format, args...), Err: err}
}

// Parse reads an almanac: a "seeds:" line followed by "<name> map:" blocks of
// "dest src length" triples, each block ending at a blank line or EOF.
func Parse(r io.Reader, opts ...Option) (*Almanac, error) {
	o := options{
		schema: DefaultSchema,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	ordinal := make(map[string]int, len(o.schema))
	for i, name := range o.schema {
		ordinal[name] = i
	}
	entries := make([][]rangemap.Entry, len(o.schema))

	sc := &lineScanner{Scanner: bufio.NewScanner(r)}
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var seeds []uint64
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "":
		case strings.HasSuffix(line, "map:"):
			name := strings.TrimSpace(strings.TrimSuffix(line, "map:"))
			idx, known := ordinal[name]
			if !known {
				o.log.Debug().Int("line", sc.line).Str("stage", name).Msg("skipping unknown stage")
			}
			block, err := parseBlock(sc, known)
			if err != nil {
				return nil, fmt.Errorf("parse stage %q: %w", name, err)
			}
			if known {
				entries[idx] = append(entries[idx], block...)
			}
		case strings.HasPrefix(line, "seeds"):
			var err error
			if seeds, err = parseSeeds(sc, line); err != nil {
				return nil, err
			}
		default:
			o.log.Debug().Int("line", sc.line).Str("text", line).Msg("skipping unrecognised line")
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read almanac: %w", err)
	}

	stages := make([]rangemap.RangeMap, len(o.schema))
	for i, name := range o.schema {
		stages[i] = rangemap.New(name, entries[i]...)
		for _, overlap := range stages[i].Overlaps() {
			if o.strict {
				return nil, fmt.Errorf("validate almanac: %w", overlap)
			}
			o.log.Warn().Err(overlap).Msg("overlapping entries, first match wins")
		}
	}

	return &Almanac{Seeds: seeds, Pipeline: pipeline.New(stages...)}, nil
}

// ParseString parses an almanac held in memory.
func ParseString(s string, opts ...Option) (*Almanac, error) {
	return Parse(strings.NewReader(s), opts...)
}

func parseSeeds(sc *lineScanner, line string) ([]uint64, error) {
	_, rest, ok := strings.Cut(line, ":")
	if !ok {
		return nil, sc.errorf(ErrMissingSeparator, "seeds line")
	}
	fields := strings.Fields(rest)
	seeds := make([]uint64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return nil, sc.errorf(err, "seed %q", f)
		}
		seeds = append(seeds, v)
	}
	return seeds, nil
}

// parseBlock consumes lines up to a blank line or EOF. When keep is false
// the lines are discarded unparsed.
func parseBlock(sc *lineScanner, keep bool) ([]rangemap.Entry, error) {
	var entries []rangemap.Entry
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			break
		}
		if !keep {
			continue
		}
		e, err := parseEntry(sc, line)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func parseEntry(sc *lineScanner, line string) (rangemap.Entry, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return rangemap.Entry{}, sc.errorf(ErrMalformedEntry, "got %d fields", len(fields))
	}
	var nums [3]uint64
	for i, f := range fields {
		v, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return rangemap.Entry{}, sc.errorf(err, "entry value %q", f)
		}
		nums[i] = v
	}
	e, err := rangemap.NewEntry(nums[0], nums[1], nums[2])
	if err != nil {
		return rangemap.Entry{}, sc.errorf(err, "entry %q", line)
	}
	return e, nil
}
