// Package latex emits a layout Document as a LaTeX picture book and
// optionally compiles it to PDF with pdflatex.
//
// The emitter makes no layout decisions: every image arrives with a resolved
// printable size in inches, and the package only translates pages into
// markup. Page geometry is written as explicit paperwidth/paperheight so the
// output is self-contained regardless of the local LaTeX default paper size.
package latex

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/picbook/picbook/pkg/layout"
	"github.com/picbook/picbook/pkg/page"
)

const (
	// defaultFontSize is the caption font size in points.
	defaultFontSize = 8

	// captionVSpace is the vertical gap between an image and its caption.
	captionVSpace = "0.1in"
)

// Option configures the renderer.
type Option func(*renderer)

type renderer struct {
	fontSize     int
	graphicsPath string
	captions     bool
}

// WithFontSize sets the caption font size in points.
func WithFontSize(pt int) Option {
	return func(r *renderer) {
		if pt > 0 {
			r.fontSize = pt
		}
	}
}

// WithGraphicsPath sets the \graphicspath directory. Defaults to the
// document's image directory.
func WithGraphicsPath(dir string) Option {
	return func(r *renderer) { r.graphicsPath = dir }
}

// WithoutCaptions disables the filename caption under each image.
func WithoutCaptions() Option {
	return func(r *renderer) { r.captions = false }
}

// Render emits the document as LaTeX source.
func Render(d *layout.Document, opts ...Option) []byte {
	r := renderer{
		fontSize:     defaultFontSize,
		graphicsPath: d.ImageDir,
		captions:     true,
	}
	for _, opt := range opts {
		opt(&r)
	}

	var b bytes.Buffer
	r.writePreamble(&b, d.Geometry)

	b.WriteString("\\begin{document}\n")
	for i, p := range d.Pages {
		if i > 0 {
			b.WriteString("\\clearpage\n\n")
		}
		r.writePage(&b, p)
	}
	b.WriteString("\\end{document}\n")

	return b.Bytes()
}

// writePreamble emits the document class, packages, and page geometry.
func (r *renderer) writePreamble(b *bytes.Buffer, g page.Geometry) {
	b.WriteString("\\documentclass{article}\n")
	b.WriteString("\\usepackage{graphicx}\n")
	b.WriteString("\\usepackage[utf8]{inputenc}\n")
	fmt.Fprintf(b, "\\usepackage[margin=%.1fin]{geometry}\n", page.Margin)
	fmt.Fprintf(b, "\\geometry{paperwidth=%s,paperheight=%s}\n",
		paperDim(g.Size, g.Orientation, true), paperDim(g.Size, g.Orientation, false))
	if r.graphicsPath != "" {
		fmt.Fprintf(b, "\\graphicspath{{%s/}}\n", strings.TrimSuffix(r.graphicsPath, "/"))
	}
	b.WriteString("\\pagestyle{empty}\n")
}

// writePage emits one page as a centered stack of images with captions.
func (r *renderer) writePage(b *bytes.Buffer, p layout.Page) {
	b.WriteString("\\begin{center}\n")
	for _, img := range p.Images {
		fmt.Fprintf(b, "\\includegraphics[width=%.3fin,height=%.3fin,keepaspectratio]{%s}\n\n",
			img.Width, img.Height, img.Filename)
		if r.captions {
			fmt.Fprintf(b, "\\vspace{%s}\n", captionVSpace)
			fmt.Fprintf(b, "{\\fontsize{%d}{%d}\\selectfont\\texttt{%s}}\n\n",
				r.fontSize, r.fontSize+2, Escape(img.Filename))
		}
	}
	b.WriteString("\\end{center}\n")
}

// paperDim returns the paper dimension string for the geometry line.
// A4 is conventionally expressed in millimeters, the other classes in inches.
func paperDim(size page.Size, orientation page.Orientation, width bool) string {
	type dims struct{ w, h string }
	var d dims
	switch size {
	case page.SizeA4:
		d = dims{"210mm", "297mm"}
	case page.SizeLegal:
		d = dims{"8.5in", "14in"}
	default:
		d = dims{"8.5in", "11in"}
	}
	if orientation == page.Landscape {
		d.w, d.h = d.h, d.w
	}
	if width {
		return d.w
	}
	return d.h
}

// latexSpecials are characters that must be escaped in caption text.
var latexSpecials = []string{"_", "&", "%", "$", "#", "{", "}", "~", "^"}

// Escape escapes LaTeX special characters in a filename for use in text.
func Escape(s string) string {
	for _, ch := range latexSpecials {
		s = strings.ReplaceAll(s, ch, "\\"+ch)
	}
	return s
}
