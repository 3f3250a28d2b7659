package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/garethgeorge/almanac/internal/almanac"
	"github.com/garethgeorge/almanac/internal/config"
	"github.com/garethgeorge/almanac/internal/ioutil"
	"github.com/garethgeorge/almanac/internal/logging"
	"github.com/garethgeorge/almanac/internal/pipeline"
	"github.com/garethgeorge/almanac/internal/progress"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type solveFlags struct {
	envFile     string
	part        int
	format      string
	parallelism int
	strict      bool
}

func (f *solveFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().IntVar(&f.part, "part", 0, "Which answer to print: 1 (point seeds), 2 (range seeds) or 0 for both")
	cmd.Flags().StringVar(&f.format, "format", "", "Output format: text, json, yaml (default: text)")
	cmd.Flags().IntVar(&f.parallelism, "parallelism", 0, "Concurrent seed range tasks; 1 runs sequentially (default: GOMAXPROCS)")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "Reject stages whose entries overlap")
}

func solveCmd() *cobra.Command {
	var f solveFlags

	cmd := &cobra.Command{
		Use:   "solve [FILE|-]",
		Short: "Print the lowest reachable location",
		Long: `Print the lowest reachable location for point seeds (part one) and
range seeds (part two). Reads standard input when FILE is omitted or "-".
zstd-compressed input is detected and decompressed.

Environment variables (flags take precedence):
  ALMANAC_LOG_LEVEL    debug, info, warn, error (default: info)
  ALMANAC_LOG_FORMAT   pretty, json (default: pretty)
  ALMANAC_PARALLELISM  concurrent seed range tasks (default: GOMAXPROCS)
  ALMANAC_STRICT       reject overlapping entries (default: false)
  ALMANAC_FORMAT       text, json, yaml (default: text)`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ioutil.StdinPath
			if len(args) == 1 {
				path = args[0]
			}
			r, err := newRunner(cmd, &f)
			if err != nil {
				return err
			}
			in, err := ioutil.ReadInput(path, cmd.InOrStdin())
			if err != nil {
				return err
			}
			return r.run(cmd.Context(), cmd.OutOrStdout(), in)
		},
	}
	f.register(cmd)

	return cmd
}

// runner holds the resolved settings for one command invocation.
type runner struct {
	cfg   config.Config
	log   zerolog.Logger
	modes []almanac.SeedMode
}

func newRunner(cmd *cobra.Command, f *solveFlags) (*runner, error) {
	cfg, err := config.Load(f.envFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed("format") {
		cfg.Format = config.OutputFormat(f.format)
	}
	if cmd.Flags().Changed("parallelism") {
		cfg.Parallelism = f.parallelism
	}
	if cmd.Flags().Changed("strict") {
		cfg.Strict = f.strict
	}
	cfg.Format = config.OutputFormat(strings.ToLower(string(cfg.Format)))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var modes []almanac.SeedMode
	switch f.part {
	case 0:
		modes = []almanac.SeedMode{almanac.PointSeeds, almanac.RangeSeeds}
	case 1:
		modes = []almanac.SeedMode{almanac.PointSeeds}
	case 2:
		modes = []almanac.SeedMode{almanac.RangeSeeds}
	default:
		return nil, fmt.Errorf("invalid --part %d: want 0, 1 or 2", f.part)
	}

	return &runner{
		cfg:   cfg,
		log:   logging.New(cmd.ErrOrStderr(), cfg.LogFormat, cfg.LogLevel),
		modes: modes,
	}, nil
}

// run solves and prints. A part with no result is left out of the output
// and its error is returned after printing the others.
func (r *runner) run(ctx context.Context, w io.Writer, in ioutil.Input) error {
	ans, err := r.solve(ctx, in)
	if err != nil && !errors.Is(err, pipeline.ErrNoResult) {
		return err
	}
	if werr := writeAnswers(w, r.cfg.Format, ans); werr != nil {
		return fmt.Errorf("write answers: %w", werr)
	}
	return err
}

// solve computes the requested parts. When the only failures are parts
// without a result, the answers found so far are returned alongside an
// error wrapping pipeline.ErrNoResult.
func (r *runner) solve(ctx context.Context, in ioutil.Input) (answers, error) {
	log := r.log.With().Str("input", fmt.Sprintf("%016x", in.Digest)).Logger()
	log.Info().Int("bytes", len(in.Data)).Bool("zstd", in.Compressed).Msg("solving")

	alm, err := almanac.Parse(bytes.NewReader(in.Data), almanac.WithStrict(r.cfg.Strict), almanac.WithLogger(log))
	if err != nil {
		return answers{}, fmt.Errorf("parse almanac: %w", err)
	}

	var ans answers
	var noResult []error
	for _, mode := range r.modes {
		start := time.Now()
		loc, err := r.minLocation(ctx, alm, mode, log)
		if errors.Is(err, pipeline.ErrNoResult) {
			log.Warn().Stringer("seeds", mode).Msg("no result")
			noResult = append(noResult, err)
			continue
		} else if err != nil {
			return answers{}, err
		}
		log.Info().Stringer("seeds", mode).Uint64("location", loc).Dur("elapsed", time.Since(start)).Msg("solved")
		ans.set(mode, loc)
	}
	return ans, errors.Join(noResult...)
}

func (r *runner) minLocation(ctx context.Context, alm *almanac.Almanac, mode almanac.SeedMode, log zerolog.Logger) (uint64, error) {
	if r.cfg.Parallelism == 1 {
		return alm.MinLocation(mode)
	}
	return alm.MinLocationParallel(ctx, mode,
		pipeline.WithParallelism(r.cfg.Parallelism),
		pipeline.WithLogger(log),
		pipeline.WithProgress(progress.NewLogBarProgressTracker(log)),
	)
}

type answers struct {
	PartOne *uint64 `json:"part_one,omitempty" yaml:"part_one,omitempty"`
	PartTwo *uint64 `json:"part_two,omitempty" yaml:"part_two,omitempty"`
}

func (a *answers) set(mode almanac.SeedMode, loc uint64) {
	switch mode {
	case almanac.PointSeeds:
		a.PartOne = &loc
	case almanac.RangeSeeds:
		a.PartTwo = &loc
	}
}

func writeAnswers(w io.Writer, format config.OutputFormat, a answers) error {
	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		return enc.Encode(a)
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(a); err != nil {
			return err
		}
		return enc.Close()
	default:
		if a.PartOne != nil {
			if _, err := fmt.Fprintf(w, "part one: %d\n", *a.PartOne); err != nil {
				return err
			}
		}
		if a.PartTwo != nil {
			if _, err := fmt.Fprintf(w, "part two: %d\n", *a.PartTwo); err != nil {
				return err
			}
		}
		return nil
	}
}
