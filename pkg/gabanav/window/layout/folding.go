package layout

import "fmt"

// FoldType distinguishes a bendable screen from two screens joined by a hinge.
type FoldType int

const (
	FoldTypeFold FoldType = iota + 1
	FoldTypeHinge
)

func (t FoldType) String() string {
	switch t {
	case FoldTypeFold:
		return "FOLD"
	case FoldTypeHinge:
		return "HINGE"
	default:
		return fmt.Sprintf("FoldType(%d)", int(t))
	}
}

// FoldState is the posture of the device around the fold.
type FoldState int

const (
	FoldStateFlat FoldState = iota + 1
	FoldStateHalfOpened
)

func (s FoldState) String() string {
	switch s {
	case FoldStateFlat:
		return "FLAT"
	case FoldStateHalfOpened:
		return "HALF_OPENED"
	default:
		return fmt.Sprintf("FoldState(%d)", int(s))
	}
}

// Orientation of a fold relative to the window.
type Orientation int

const (
	OrientationVertical Orientation = iota + 1
	OrientationHorizontal
)

// OcclusionType says whether a fold hides part of the window.
type OcclusionType int

const (
	OcclusionNone OcclusionType = iota + 1
	OcclusionFull
)

// FoldingFeature is a fold or hinge crossing the window.
type FoldingFeature struct {
	bounds Rect
	typ    FoldType
	state  FoldState
}

// NewFoldingFeature validates bounds and builds a feature. A fold must be
// a line or a band touching the window edge: not zero-sized in both
// directions, and starting at the left or top edge.
func NewFoldingFeature(bounds Rect, typ FoldType, state FoldState) (FoldingFeature, error) {
	if bounds.Width() == 0 && bounds.Height() == 0 {
		return FoldingFeature{}, fmt.Errorf("%w: %s has no extent", ErrInvalidBounds, bounds)
	}
	if bounds.Left != 0 && bounds.Top != 0 {
		return FoldingFeature{}, fmt.Errorf("%w: %s must span the window", ErrInvalidBounds, bounds)
	}
	return FoldingFeature{bounds: bounds, typ: typ, state: state}, nil
}

// MustFoldingFeature is NewFoldingFeature for bounds known to be valid.
func MustFoldingFeature(bounds Rect, typ FoldType, state FoldState) FoldingFeature {
	f, err := NewFoldingFeature(bounds, typ, state)
	if err != nil {
		panic(err)
	}
	return f
}

func (f FoldingFeature) Bounds() Rect { return f.bounds }
func (f FoldingFeature) Type() FoldType { return f.typ }
func (f FoldingFeature) State() FoldState { return f.state }

// IsSeparating reports whether the feature splits the window into two
// logical areas: always for a hinge, and for a fold that is half opened.
func (f FoldingFeature) IsSeparating() bool {
	return f.typ == FoldTypeHinge || f.state == FoldStateHalfOpened
}

// Orientation is horizontal when the fold is wider than it is tall.
func (f FoldingFeature) Orientation() Orientation {
	if f.bounds.Width() > f.bounds.Height() {
		return OrientationHorizontal
	}
	return OrientationVertical
}

// OcclusionType is full when the feature has area, i.e. hides content.
func (f FoldingFeature) OcclusionType() OcclusionType {
	if f.bounds.Width() == 0 || f.bounds.Height() == 0 {
		return OcclusionNone
	}
	return OcclusionFull
}

func (f FoldingFeature) String() string {
	return fmt.Sprintf("FoldingFeature{%s, %s, %s}", f.bounds, f.typ, f.state)
}
