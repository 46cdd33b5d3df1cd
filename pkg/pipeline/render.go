package pipeline

import (
	"github.com/picbook/picbook/pkg/latex"
	"github.com/picbook/picbook/pkg/layout"
)

// RenderFromDocument generates all requested artifact formats from a layout
// Document. The returned map is keyed by format.
func RenderFromDocument(d *layout.Document, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		switch format {
		case FormatTex:
			texOpts := []latex.Option{latex.WithFontSize(opts.FontSize)}
			if !opts.Captions {
				texOpts = append(texOpts, latex.WithoutCaptions())
			}
			artifacts[format] = latex.Render(d, texOpts...)
		case FormatJSON:
			data, err := layout.MarshalDocument(d)
			if err != nil {
				return nil, err
			}
			artifacts[format] = data
		}
	}
	return artifacts, nil
}
