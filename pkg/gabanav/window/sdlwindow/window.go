// Package sdlwindow provides a layout.WindowInfoRepository for an SDL window.
//
// All SDL calls are made on a mainloop.Loop, the same loop that drives
// entry lifecycles, so SDL only ever sees one thread.
package sdlwindow

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/BrandonKowalski/gabanav/pkg/gabanav/constants"
	"github.com/BrandonKowalski/gabanav/pkg/gabanav/internal"
	"github.com/BrandonKowalski/gabanav/pkg/gabanav/mainloop"
	"github.com/BrandonKowalski/gabanav/pkg/gabanav/window/evdevfold"
	"github.com/BrandonKowalski/gabanav/pkg/gabanav/window/layout"
	"github.com/veandco/go-sdl2/sdl"
)

// Window is an SDL window reporting its metrics and, when a switch device
// is configured, the posture of its hinge.
type Window struct {
	loop     *mainloop.Loop
	pollRate time.Duration
	folds    *evdevfold.Watcher
	logger   *slog.Logger

	// Only called on loop, and never once closed is closed.
	size    func() (int32, int32)
	destroy func()

	closeOnce sync.Once
	closed    chan struct{}
}

var _ layout.WindowInfoRepository = (*Window)(nil)

// Open initializes SDL video and creates a window on loop. A nil loop means
// mainloop.Main.
//
// The window covers the current display mode. In dev mode it is a decorated
// window sized from WINDOW_WIDTH and WINDOW_HEIGHT instead.
func Open(loop *mainloop.Loop, opts Options) (*Window, error) {
	if loop == nil {
		loop = mainloop.Main()
	}
	w := newWindow(loop)

	var err error
	loop.Do(func() {
		err = w.create(opts)
	})
	if err != nil {
		return nil, err
	}

	if opts.SwitchDevice != "" {
		w.folds = evdevfold.New(opts.SwitchDevice, w.hingeBounds)
	}
	return w, nil
}

func newWindow(loop *mainloop.Loop) *Window {
	return &Window{
		loop:     loop,
		pollRate: constants.DefaultWindowPollRate,
		logger:   internal.GetInternalLogger().With("component", "sdlwindow"),
		closed:   make(chan struct{}),
	}
}

func (w *Window) create(opts Options) error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("sdlwindow: init: %w", err)
	}

	x, y := int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED)
	var width, height int32

	if constants.IsDevMode() {
		opts.Borderless = false
		x, y = 50, 50
		width = w.envSize(constants.WindowWidthEnvVar, constants.DevWindowWidth)
		height = w.envSize(constants.WindowHeightEnvVar, constants.DevWindowHeight)
	} else {
		mode, err := sdl.GetCurrentDisplayMode(0)
		if err != nil {
			w.logger.Error("Failed to get display mode", "error", err)
			width, height = constants.DevWindowWidth, constants.DevWindowHeight
		} else {
			width, height = mode.W, mode.H
		}
	}

	w.logger.Debug("Initializing SDL window", "width", width, "height", height)

	window, err := sdl.CreateWindow(opts.Title, x, y, width, height, opts.flags())
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("sdlwindow: create window: %w", err)
	}
	w.size = window.GetSize
	w.destroy = func() {
		if err := window.Destroy(); err != nil {
			w.logger.Warn("Failed to destroy window", "error", err)
		}
		sdl.Quit()
	}
	return nil
}

func (w *Window) envSize(key string, fallback int32) int32 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil {
		w.logger.Warn("Invalid window size; using default", "var", key, "value", v, "error", err)
		return fallback
	}
	return int32(n)
}

func (w *Window) isClosed() bool {
	select {
	case <-w.closed:
		return true
	default:
		return false
	}
}

// Bounds returns the window's current bounds, or an empty Rect once the
// window is closed.
func (w *Window) Bounds() layout.Rect {
	var width, height int32
	w.loop.Do(func() {
		if w.isClosed() {
			return
		}
		width, height = w.size()
	})
	return layout.Rect{Right: int(width), Bottom: int(height)}
}

// hingeBounds places the hinge along the bottom edge of the window, where
// clamshell handhelds fold.
func (w *Window) hingeBounds() layout.Rect {
	b := w.Bounds()
	return layout.Rect{Left: 0, Top: b.Bottom, Right: b.Right, Bottom: b.Bottom}
}

// CurrentWindowMetrics emits the window's metrics now and whenever its size
// changes, until ctx is done or the window is closed.
func (w *Window) CurrentWindowMetrics(ctx context.Context) <-chan layout.WindowMetrics {
	out := make(chan layout.WindowMetrics)

	go func() {
		defer close(out)
		ticker := time.NewTicker(w.pollRate)
		defer ticker.Stop()

		var last layout.Rect
		first := true
		for {
			b := w.Bounds()
			if w.isClosed() {
				return
			}
			if first || b != last {
				first, last = false, b
				select {
				case out <- layout.WindowMetrics{Bounds: b}:
				case <-ctx.Done():
					return
				case <-w.closed:
					return
				}
			}
			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			case <-w.closed:
				return
			}
		}
	}()

	return out
}

// WindowLayoutInfo emits the window's display features until ctx is done
// or the window is closed. Without a switch device the window has none, and
// a single empty layout is emitted.
func (w *Window) WindowLayoutInfo(ctx context.Context) <-chan layout.WindowLayoutInfo {
	ctx, cancel := context.WithCancel(ctx)
	go func() {
		defer cancel()
		select {
		case <-w.closed:
		case <-ctx.Done():
		}
	}()

	if w.folds != nil {
		return w.folds.WindowLayoutInfo(ctx)
	}

	out := make(chan layout.WindowLayoutInfo)
	go func() {
		defer close(out)
		select {
		case out <- layout.NewWindowLayoutInfo():
		case <-ctx.Done():
			return
		}
		<-ctx.Done()
	}()
	return out
}

// Close destroys the window and shuts SDL down. Streams still running end,
// and Bounds reports an empty Rect from then on.
func (w *Window) Close() {
	w.closeOnce.Do(func() {
		w.loop.Do(func() {
			close(w.closed)
			w.destroy()
		})
	})
}
