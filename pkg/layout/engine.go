package layout

// DefaultSpacing is the default vertical gap between images on a page,
// in inches. It covers the caption line printed under each image.
const DefaultSpacing = 0.3

// Pack assigns placed images to pages with a single-pass greedy vertical
// packer. Images are processed strictly in input order:
//
//   - An empty page accepts the next image unconditionally, so a lone image
//     taller than the page is placed rather than dropped and progress is
//     guaranteed.
//   - Otherwise the image is appended only if the page's consumed height
//     plus the image height plus spacing stays within usableHeight.
//     Every placement adds height+spacing to the consumed total.
//   - A maxPerPage > 0 additionally closes a page once it holds that many
//     images, regardless of remaining height. Zero means unlimited.
//
// Failure to fit is not an error, only a page break. Zero input images
// yield zero pages.
func Pack(images []PlacedImage, usableHeight, spacing float64, maxPerPage int) []Page {
	var pages []Page
	var current Page

	for _, img := range images {
		if len(current.Images) > 0 {
			full := maxPerPage > 0 && len(current.Images) >= maxPerPage
			if full || current.Consumed+img.Height+spacing > usableHeight {
				pages = append(pages, current)
				current = Page{}
			}
		}
		current.Images = append(current.Images, img)
		current.Consumed += img.Height + spacing
	}

	if len(current.Images) > 0 {
		pages = append(pages, current)
	}
	return pages
}
