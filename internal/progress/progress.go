package progress

import (
	"sync"

	"github.com/rs/zerolog"
)

type BarProgressTracker interface {
	SetMessage(msg string)
	SetTotal(total int64)
	SetDone(n int)
	SetError(err error)
	MarkFinished()
}

type NoopBarProgressTracker struct{}

var _ BarProgressTracker = NoopBarProgressTracker{}

func (n NoopBarProgressTracker) SetMessage(msg string) {}
func (n NoopBarProgressTracker) SetTotal(total int64)  {}
func (n NoopBarProgressTracker) SetDone(n2 int)        {}
func (n NoopBarProgressTracker) SetError(err error)    {}
func (n NoopBarProgressTracker) MarkFinished()         {}

// LogBarProgressTracker reports progress as debug log lines. It is safe for
// concurrent use.
type LogBarProgressTracker struct {
	log zerolog.Logger

	mu    sync.Mutex
	msg   string
	total int64
	done  int
	err   error
}

var _ BarProgressTracker = (*LogBarProgressTracker)(nil)

func NewLogBarProgressTracker(log zerolog.Logger) *LogBarProgressTracker {
	return &LogBarProgressTracker{log: log}
}

func (l *LogBarProgressTracker) SetMessage(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.msg = msg
}

func (l *LogBarProgressTracker) SetTotal(total int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.total = total
}

func (l *LogBarProgressTracker) SetDone(n int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.done = n
	l.log.Debug().Str("task", l.msg).Int("done", n).Int64("total", l.total).Msg("progress")
}

func (l *LogBarProgressTracker) SetError(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err == nil {
		l.err = err
	}
}

func (l *LogBarProgressTracker) MarkFinished() {
	l.mu.Lock()
	defer l.mu.Unlock()
	ev := l.log.Debug()
	if l.err != nil {
		ev = l.log.Warn().Err(l.err)
	}
	ev.Str("task", l.msg).Int("done", l.done).Int64("total", l.total).Msg("finished")
}

// Snapshot returns the current counters.
func (l *LogBarProgressTracker) Snapshot() (done int, total int64, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.done, l.total, l.err
}
