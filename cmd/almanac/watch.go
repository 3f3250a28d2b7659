package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/garethgeorge/almanac/internal/ioutil"
	"github.com/spf13/cobra"
)

func watchCmd() *cobra.Command {
	var f solveFlags

	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Re-solve an almanac whenever it changes",
		Long: `Solve FILE, then solve it again each time it is written. Writes that
leave the content unchanged are ignored. Parse errors are logged and the
watch continues. Stops on interrupt.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newRunner(cmd, &f)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return r.watch(ctx, cmd.OutOrStdout(), args[0])
		},
	}
	f.register(cmd)

	return cmd
}

func (r *runner) watch(ctx context.Context, w io.Writer, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory so editors that replace the file are still seen.
	path = filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	var (
		last   uint64
		solved bool
	)
	resolve := func() {
		in, err := ioutil.ReadInput(path, nil)
		if err != nil {
			r.log.Error().Err(err).Str("path", path).Msg("read failed")
			return
		}
		if solved && in.Digest == last {
			r.log.Debug().Str("path", path).Msg("content unchanged")
			return
		}
		last, solved = in.Digest, true
		if err := r.run(ctx, w, in); err != nil && !errors.Is(err, context.Canceled) {
			r.log.Error().Err(err).Str("path", path).Msg("solve failed")
		}
	}

	resolve()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				resolve()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.log.Warn().Err(err).Msg("watcher error")
		}
	}
}
