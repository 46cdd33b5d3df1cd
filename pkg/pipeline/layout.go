package pipeline

import (
	"github.com/picbook/picbook/pkg/album"
	"github.com/picbook/picbook/pkg/errors"
	"github.com/picbook/picbook/pkg/layout"
)

// GenerateLayout computes a layout Document for an ordered album.
//
// Images whose size cannot be resolved (non-positive pixel dimensions from
// the scanner) are logged as warnings and excluded; the run proceeds with
// the remaining images rather than aborting. A configuration problem in the
// options is fatal and no layout is attempted.
func GenerateLayout(a *album.Album, opts Options) (*layout.Document, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	geometry, err := opts.Geometry()
	if err != nil {
		return nil, err
	}

	placed := make([]layout.PlacedImage, 0, a.Count())
	for _, img := range a.Images {
		w, h, err := layout.ResolveSize(img.PixelWidth, img.PixelHeight,
			geometry.UsableWidth, geometry.UsableHeight, opts.Scale)
		if err != nil {
			opts.Logger.Warn("excluding image from layout",
				"file", img.Filename, "code", errors.GetCode(err), "err", errors.UserMessage(err))
			continue
		}
		placed = append(placed, layout.PlacedImage{
			Filename:    img.Filename,
			PixelWidth:  img.PixelWidth,
			PixelHeight: img.PixelHeight,
			Width:       w,
			Height:      h,
		})
	}

	pages := layout.Pack(placed, geometry.UsableHeight, opts.Spacing, opts.MaxPerPage)

	return &layout.Document{
		Geometry:   geometry,
		ImageDir:   a.Dir,
		Scale:      opts.Scale,
		Spacing:    opts.Spacing,
		MaxPerPage: opts.MaxPerPage,
		Pages:      pages,
	}, nil
}
