// Package page derives the usable page area for a picture book layout.
//
// A page is described by a size class (letter, a4, legal) and an orientation.
// The usable area is the raw paper size minus a fixed 0.5in margin on every
// side. All dimensions are in inches.
package page

import "github.com/picbook/picbook/pkg/errors"

// Size is a recognized paper size class.
type Size string

// Recognized paper size classes.
const (
	SizeLetter Size = "letter"
	SizeA4     Size = "a4"
	SizeLegal  Size = "legal"
)

// Orientation is the page orientation.
type Orientation string

// Recognized orientations.
const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// Margin is the fixed page margin in inches, applied to every side.
// It is not user-configurable; keeping it constant makes layout output
// reproducible across runs.
const Margin = 0.5

// paper holds raw portrait dimensions in inches for each size class.
var paper = map[Size]struct{ width, height float64 }{
	SizeLetter: {8.5, 11},
	SizeA4:     {8.27, 11.69},
	SizeLegal:  {8.5, 14},
}

// Geometry is the resolved page geometry for a run. Immutable once derived.
type Geometry struct {
	Size        Size        `json:"size"`
	Orientation Orientation `json:"orientation"`

	// Raw paper dimensions after orientation is applied, in inches.
	RawWidth  float64 `json:"raw_width"`
	RawHeight float64 `json:"raw_height"`

	// Usable dimensions with margins subtracted, in inches.
	UsableWidth  float64 `json:"usable_width"`
	UsableHeight float64 `json:"usable_height"`
}

// NewGeometry derives the usable page area from a size class and orientation.
// Landscape swaps the raw width and height before margin subtraction.
// Unrecognized values are configuration errors; there is no silent default.
func NewGeometry(size Size, orientation Orientation) (Geometry, error) {
	dims, ok := paper[size]
	if !ok {
		return Geometry{}, errors.New(errors.ErrCodeInvalidPageSize,
			"unknown page size: %q (must be one of: letter, a4, legal)", size)
	}

	w, h := dims.width, dims.height
	switch orientation {
	case Portrait:
		// identity
	case Landscape:
		w, h = h, w
	default:
		return Geometry{}, errors.New(errors.ErrCodeInvalidOrientation,
			"unknown orientation: %q (must be 'portrait' or 'landscape')", orientation)
	}

	return Geometry{
		Size:         size,
		Orientation:  orientation,
		RawWidth:     w,
		RawHeight:    h,
		UsableWidth:  w - 2*Margin,
		UsableHeight: h - 2*Margin,
	}, nil
}

// ParseSize parses a size class string as supplied on the command line.
func ParseSize(s string) (Size, error) {
	switch Size(s) {
	case SizeLetter, SizeA4, SizeLegal:
		return Size(s), nil
	}
	return "", errors.New(errors.ErrCodeInvalidPageSize,
		"unknown page size: %q (must be one of: letter, a4, legal)", s)
}

// ParseOrientation parses an orientation string as supplied on the command line.
func ParseOrientation(s string) (Orientation, error) {
	switch Orientation(s) {
	case Portrait, Landscape:
		return Orientation(s), nil
	}
	return "", errors.New(errors.ErrCodeInvalidOrientation,
		"unknown orientation: %q (must be 'portrait' or 'landscape')", s)
}
