// Package mainloop provides a single goroutine, pinned to its OS thread,
// that runs UI-affine work in submission order.
//
// Lifecycle writes in gabanav are always funneled through a Loop so that
// observers see them from one thread, no matter which goroutine asked for
// the change.
package mainloop

import (
	"errors"
	"log/slog"
	"runtime"
	"sync"

	"github.com/BrandonKowalski/gabanav/pkg/gabanav/constants"
	"github.com/BrandonKowalski/gabanav/pkg/gabanav/internal"
	"go.uber.org/atomic"
)

// ErrStopped is the panic value used when work is submitted to a stopped loop.
var ErrStopped = errors.New("mainloop: loop stopped")

type task struct {
	fn   func()
	done chan any
}

// Loop runs submitted functions one at a time on a dedicated thread.
type Loop struct {
	name   string
	tasks  chan task
	quit   chan struct{}
	exited chan struct{}
	logger *slog.Logger

	startOnce sync.Once
	stopOnce  sync.Once
	running   atomic.Bool
	stopped   atomic.Bool
	threadID  atomic.Int64
	executed  atomic.Int64
}

// New creates a loop. It starts on first use or on Start.
func New(name string) *Loop {
	return &Loop{
		name:   name,
		tasks:  make(chan task, constants.DefaultLoopQueueSize),
		quit:   make(chan struct{}),
		exited: make(chan struct{}),
		logger: internal.GetInternalLogger().With("loop", name),
	}
}

var (
	mainOnce sync.Once
	mainLoop *Loop
)

// Main returns the process-wide UI loop. It is started lazily and never stopped.
func Main() *Loop {
	mainOnce.Do(func() {
		mainLoop = New("main")
		mainLoop.Start()
	})
	return mainLoop
}

// Start launches the loop goroutine. Calling it more than once is harmless.
func (l *Loop) Start() {
	l.startOnce.Do(func() {
		ready := make(chan struct{})
		go l.run(ready)
		<-ready
	})
}

func (l *Loop) run(ready chan<- struct{}) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(l.exited)

	l.threadID.Store(int64(currentThreadID()))
	l.running.Store(true)
	close(ready)

	l.logger.Debug("main loop started", "thread", l.threadID.Load())

	for {
		select {
		case t := <-l.tasks:
			l.execute(t)
		case <-l.quit:
			// Drain what was already queued so no caller is left blocked.
			for {
				select {
				case t := <-l.tasks:
					l.execute(t)
				default:
					l.running.Store(false)
					l.logger.Debug("main loop stopped", "executed", l.executed.Load())
					return
				}
			}
		}
	}
}

func (l *Loop) execute(t task) {
	defer func() {
		t.done <- recover()
	}()
	l.executed.Inc()
	t.fn()
}

// Do runs fn on the loop and blocks until it returns. A panic inside fn is
// re-raised in the caller. Calls made from the loop itself run inline.
//
// Detecting calls from the loop needs thread ids, which are only available
// on Linux. Elsewhere a call to Do from inside a task, directly or through a
// lifecycle observer, queues behind the running task and deadlocks.
func (l *Loop) Do(fn func()) {
	if l.stopped.Load() {
		panic(ErrStopped)
	}
	l.Start()

	if l.OnLoop() {
		fn()
		return
	}

	t := task{fn: fn, done: make(chan any, 1)}
	select {
	case l.tasks <- t:
	case <-l.exited:
		panic(ErrStopped)
	}

	select {
	case p := <-t.done:
		if p != nil {
			panic(p)
		}
	case <-l.exited:
		select {
		case p := <-t.done:
			if p != nil {
				panic(p)
			}
		default:
			panic(ErrStopped)
		}
	}
}

// OnLoop reports whether the caller is running on the loop's thread.
// It is always false on platforms without thread ids.
func (l *Loop) OnLoop() bool {
	if !threadAffinity || !l.running.Load() {
		return false
	}
	return l.threadID.Load() == int64(currentThreadID())
}

// Executed returns how many tasks have been run through the queue.
func (l *Loop) Executed() int64 {
	return l.executed.Load()
}

// Stop finishes queued work and ends the loop goroutine.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		l.stopped.Store(true)
		l.Start()
		close(l.quit)
		<-l.exited
	})
}
