// Package evdevfold reports the fold posture of clamshell handhelds from the
// lid and tablet-mode switches of a Linux input device.
//
// The hinge of the device is reported as a single layout.FoldingFeature:
//
//	lid open, tablet mode off   HINGE, HALF_OPENED
//	lid open, tablet mode on    HINGE, FLAT
//	lid closed                  no features
package evdevfold

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/BrandonKowalski/gabanav/pkg/gabanav/internal"
	"github.com/BrandonKowalski/gabanav/pkg/gabanav/window/layout"
	"github.com/holoplot/go-evdev"
)

// DefaultDevicePath is where most handheld kernels expose the lid switch.
const DefaultDevicePath = "/dev/input/event0"

type device interface {
	State(t evdev.EvType) (evdev.StateMap, error)
	ReadOne() (*evdev.InputEvent, error)
	Close() error
}

// Posture is the position of the device's switches.
type Posture struct {
	LidClosed  bool
	TabletMode bool
}

// Layout describes the window layout in this posture for a hinge at hinge.
func (p Posture) Layout(hinge layout.Rect) layout.WindowLayoutInfo {
	if p.LidClosed {
		return layout.NewWindowLayoutInfo()
	}
	state := layout.FoldStateHalfOpened
	if p.TabletMode {
		state = layout.FoldStateFlat
	}
	feature, err := layout.NewFoldingFeature(hinge, layout.FoldTypeHinge, state)
	if err != nil {
		return layout.NewWindowLayoutInfo()
	}
	return layout.NewWindowLayoutInfo(feature)
}

// apply updates p from a switch event and reports whether it changed.
func (p *Posture) apply(ev *evdev.InputEvent) bool {
	if ev.Type != evdev.EV_SW {
		return false
	}
	on := ev.Value != 0
	switch ev.Code {
	case evdev.SW_LID:
		if p.LidClosed == on {
			return false
		}
		p.LidClosed = on
	case evdev.SW_TABLET_MODE:
		if p.TabletMode == on {
			return false
		}
		p.TabletMode = on
	default:
		return false
	}
	return true
}

// Watcher streams the layout of a device's hinge.
type Watcher struct {
	open   func() (device, error)
	hinge  func() layout.Rect
	logger *slog.Logger
}

// New watches the input device at path. hinge returns the bounds of the
// hinge in window coordinates each time the posture changes.
func New(path string, hinge func() layout.Rect) *Watcher {
	return newWatcher(func() (device, error) {
		return evdev.Open(path)
	}, hinge)
}

func newWatcher(open func() (device, error), hinge func() layout.Rect) *Watcher {
	return &Watcher{
		open:   open,
		hinge:  hinge,
		logger: internal.GetInternalLogger().With("component", "evdevfold"),
	}
}

// WindowLayoutInfo emits the current layout, then a new one every time the
// posture changes, until ctx is done or the device goes away. The channel
// is closed when the stream ends. If the device cannot be opened nothing
// is emitted.
func (w *Watcher) WindowLayoutInfo(ctx context.Context) <-chan layout.WindowLayoutInfo {
	out := make(chan layout.WindowLayoutInfo)

	dev, err := w.open()
	if err != nil {
		w.logger.Warn("unable to open switch device", "error", err)
		close(out)
		return out
	}

	go func() {
		defer close(out)

		stop := context.AfterFunc(ctx, func() {
			dev.Close()
		})
		defer func() {
			if stop() {
				dev.Close()
			}
		}()

		posture, err := initialPosture(dev)
		if err != nil {
			w.logger.Warn("unable to read switch state", "error", err)
		}
		if !w.send(ctx, out, posture) {
			return
		}

		for {
			ev, err := dev.ReadOne()
			if err != nil {
				if ctx.Err() == nil && !errors.Is(err, os.ErrClosed) {
					w.logger.Warn("switch device read failed", "error", err)
				}
				return
			}
			if posture.apply(ev) && !w.send(ctx, out, posture) {
				return
			}
		}
	}()

	return out
}

func (w *Watcher) send(ctx context.Context, out chan<- layout.WindowLayoutInfo, p Posture) bool {
	w.logger.Debug("posture", "lid_closed", p.LidClosed, "tablet_mode", p.TabletMode)
	select {
	case out <- p.Layout(w.hinge()):
		return true
	case <-ctx.Done():
		return false
	}
}

func initialPosture(dev device) (Posture, error) {
	states, err := dev.State(evdev.EV_SW)
	if err != nil {
		return Posture{}, fmt.Errorf("evdevfold: reading switch state: %w", err)
	}
	return Posture{
		LidClosed:  states[evdev.SW_LID],
		TabletMode: states[evdev.SW_TABLET_MODE],
	}, nil
}
