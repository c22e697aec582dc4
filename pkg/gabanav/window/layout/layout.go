// Package layout describes the window a UI is drawn in: its bounds and the
// physical display features, such as folds and hinges, that cross it.
package layout

import (
	"context"
	"errors"
	"fmt"
)

// Rect is an axis-aligned rectangle in pixels. Right and Bottom are exclusive.
type Rect struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// Width returns the horizontal extent of r.
func (r Rect) Width() int { return r.Right - r.Left }

// Height returns the vertical extent of r.
func (r Rect) Height() int { return r.Bottom - r.Top }

// IsEmpty reports whether r covers no area.
func (r Rect) IsEmpty() bool { return r.Width() <= 0 || r.Height() <= 0 }

func (r Rect) String() string {
	return fmt.Sprintf("Rect(%d, %d - %d, %d)", r.Left, r.Top, r.Right, r.Bottom)
}

// WindowMetrics holds the bounds of a window.
type WindowMetrics struct {
	Bounds Rect
}

// DisplayFeature is a physical feature of the display inside a window.
type DisplayFeature interface {
	Bounds() Rect
}

// WindowLayoutInfo lists the display features crossing a window.
type WindowLayoutInfo struct {
	DisplayFeatures []DisplayFeature
}

// NewWindowLayoutInfo builds layout info from features.
func NewWindowLayoutInfo(features ...DisplayFeature) WindowLayoutInfo {
	return WindowLayoutInfo{DisplayFeatures: features}
}

// FoldingFeatures returns the folding features only.
func (w WindowLayoutInfo) FoldingFeatures() []FoldingFeature {
	var out []FoldingFeature
	for _, f := range w.DisplayFeatures {
		if ff, ok := f.(FoldingFeature); ok {
			out = append(out, ff)
		}
	}
	return out
}

// WindowInfoRepository produces window information as it changes. Each
// call starts a new stream that is closed when ctx is done or the source
// runs out.
type WindowInfoRepository interface {
	CurrentWindowMetrics(ctx context.Context) <-chan WindowMetrics
	WindowLayoutInfo(ctx context.Context) <-chan WindowLayoutInfo
}

// ErrInvalidBounds is returned for folding feature bounds that cannot
// describe a fold.
var ErrInvalidBounds = errors.New("layout: invalid folding feature bounds")
