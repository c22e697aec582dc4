// Package constants defines shared constants and environment variable names
// used throughout gabanav.
package constants

import (
	"os"
	"time"
)

// Development is the environment variable value for development mode.
const Development = "DEV"

// Environment variable names read by gabanav.
const (
	EnvironmentEnvVar  = "ENVIRONMENT"
	LogLevelEnvVar     = "GABANAV_LOG_LEVEL"
	DebugEnvVar        = "GABANAV_DEBUG"
	WindowWidthEnvVar  = "WINDOW_WIDTH"
	WindowHeightEnvVar = "WINDOW_HEIGHT"
)

// IsDevMode returns true if running in development mode (ENVIRONMENT=DEV).
func IsDevMode() bool {
	return os.Getenv(EnvironmentEnvVar) == Development
}

// Default sizing used when a window is created in development mode.
const (
	DevWindowWidth  int32 = 1024
	DevWindowHeight int32 = 768
)

// Default timing and buffering constants.
const (
	DefaultLoopQueueSize     = 64                     // Pending tasks the main loop accepts before Do blocks
	DefaultWindowPollRate    = 100 * time.Millisecond // How often the SDL repository samples window size
	DefaultFlowableBufferLen = 128                    // Items a Flowable buffers before the producer blocks
)
