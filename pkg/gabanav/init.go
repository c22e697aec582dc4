// Package gabanav provides navigation back stacks, entry lifecycles and
// window information for SDL applications on embedded Linux handhelds.
//
// The package wires the pieces together: logging, the main loop that owns
// every lifecycle change, and optionally an SDL window whose metrics and
// hinge posture can be observed.
package gabanav

import (
	"log/slog"
	"os"
	"sync"

	"github.com/BrandonKowalski/gabanav/pkg/gabanav/constants"
	"github.com/BrandonKowalski/gabanav/pkg/gabanav/internal"
	"github.com/BrandonKowalski/gabanav/pkg/gabanav/mainloop"
	"github.com/BrandonKowalski/gabanav/pkg/gabanav/window/layout"
	"github.com/BrandonKowalski/gabanav/pkg/gabanav/window/rxwindow"
	"github.com/BrandonKowalski/gabanav/pkg/gabanav/window/sdlwindow"
	"github.com/reactivex/rxgo/v2"
)

// Options configures gabanav initialization.
type Options struct {
	LogPath  string             // Full path for log file including filename (creates parent directories)
	LogLevel string             // Application log level; GABANAV_LOG_LEVEL is used when empty
	Window   *sdlwindow.Options // Window to open; nil runs without a window
}

var (
	mu     sync.Mutex
	window *sdlwindow.Window
)

// Init sets up logging, starts the main loop and opens the window, if any.
// Must be called before any window information is requested.
func Init(options Options) error {
	if options.LogPath != "" {
		internal.SetLogPath(options.LogPath)
	}

	if os.Getenv(constants.DebugEnvVar) != "" || constants.IsDevMode() {
		internal.SetInternalLogLevel(slog.LevelDebug)
	} else {
		internal.SetInternalLogLevel(slog.LevelError)
	}

	level := options.LogLevel
	if level == "" {
		level = os.Getenv(constants.LogLevelEnvVar)
	}
	internal.SetRawLogLevel(level)

	loop := mainloop.Main()

	if options.Window == nil {
		return nil
	}

	w, err := sdlwindow.Open(loop, *options.Window)
	if err != nil {
		internal.GetInternalLogger().Error("Failed to open window", "error", err)
		return NewInfrastructureError("open_window", err)
	}

	mu.Lock()
	window = w
	mu.Unlock()
	return nil
}

// Close releases the window and the log file.
func Close() {
	mu.Lock()
	w := window
	window = nil
	mu.Unlock()

	if w != nil {
		w.Close()
	}
	internal.CloseLogger()
}

// Loop returns the loop every lifecycle change runs on.
func Loop() *mainloop.Loop {
	return mainloop.Main()
}

// WindowInfo returns the repository of the window opened by Init.
func WindowInfo() (layout.WindowInfoRepository, error) {
	mu.Lock()
	defer mu.Unlock()
	if window == nil {
		return nil, ErrNoWindow
	}
	return window, nil
}

// WindowMetrics observes the metrics of the window opened by Init.
func WindowMetrics() (rxgo.Observable, error) {
	repo, err := WindowInfo()
	if err != nil {
		return nil, err
	}
	return rxwindow.CurrentWindowMetricsObservable(repo), nil
}

// WindowLayout observes the display features of the window opened by Init.
func WindowLayout() (rxgo.Observable, error) {
	repo, err := WindowInfo()
	if err != nil {
		return nil, err
	}
	return rxwindow.WindowLayoutInfoObservable(repo), nil
}

// SetLogPath sets the full path for the log file, including filename.
// Creates all necessary parent directories.
// Call before Init() to take effect during initialization.
func SetLogPath(path string) {
	internal.SetLogPath(path)
}

// GetLogger returns the application logger for structured logging.
func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

// SetLogLevel sets the minimum log level for the application logger.
func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

// SetRawLogLevel parses and sets the log level from a string (e.g., "debug", "info", "error").
func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}
