package layout

import "github.com/picbook/picbook/pkg/errors"

const (
	// BaseDPI is the assumed pixel density when converting pixel dimensions
	// to a nominal size in inches.
	BaseDPI = 96.0

	// FitSafety is the extra uniform shrink applied when an image has to be
	// scaled down to the usable page area. The 5% headroom absorbs
	// floating-point rounding at the page boundary; the value is kept for
	// compatibility with existing documents.
	FitSafety = 0.95
)

// ResolveSize converts an image's pixel dimensions into a printable size in
// inches. The nominal size is pixels at BaseDPI multiplied by scale; if the
// result exceeds the usable page area in either dimension, a single
// additional uniform factor of min(usableW/w, usableH/h)*FitSafety is
// applied to both dimensions. The returned size therefore never exceeds the
// usable area, and the aspect ratio is preserved exactly.
//
// The caller is responsible for validating scale (see errors.ValidateScale);
// this function assumes a valid factor. Non-positive pixel dimensions fail
// with INVALID_IMAGE_DIMENSIONS.
func ResolveSize(pixelWidth, pixelHeight int, usableWidth, usableHeight, scale float64) (float64, float64, error) {
	if pixelWidth <= 0 || pixelHeight <= 0 {
		return 0, 0, errors.New(errors.ErrCodeInvalidImageDimensions,
			"non-positive pixel dimensions %dx%d", pixelWidth, pixelHeight)
	}

	w := float64(pixelWidth) / BaseDPI * scale
	h := float64(pixelHeight) / BaseDPI * scale

	if w > usableWidth || h > usableHeight {
		fit := usableWidth / w
		if hf := usableHeight / h; hf < fit {
			fit = hf
		}
		fit *= FitSafety
		w *= fit
		h *= fit
	}

	return w, h, nil
}
