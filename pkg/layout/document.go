package layout

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/picbook/picbook/pkg/page"
)

// PlacedImage is an image bound to a resolved printable size in inches,
// ready for page assignment. Width and Height never exceed the usable page
// dimensions (enforced by ResolveSize, never by rejection).
type PlacedImage struct {
	Filename    string  `json:"filename"`
	PixelWidth  int     `json:"pixel_width"`
	PixelHeight int     `json:"pixel_height"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
}

// Page is an ordered sequence of placed images plus the vertical extent they
// consume, including inter-image spacing. Pages are immutable once emitted.
type Page struct {
	Images   []PlacedImage `json:"images"`
	Consumed float64       `json:"consumed_height"`
}

// Document is the serialized layout: the resolved page geometry, the layout
// parameters that produced it, and the pages themselves. It is the sole
// artifact handed to the document emitter.
type Document struct {
	Geometry page.Geometry `json:"geometry"`
	ImageDir string        `json:"image_dir,omitempty"`

	Scale      float64 `json:"scale"`
	Spacing    float64 `json:"spacing"`
	MaxPerPage int     `json:"max_per_page,omitempty"`

	Pages []Page `json:"pages"`
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int { return len(d.Pages) }

// ImageCount returns the total number of placed images across all pages.
func (d *Document) ImageCount() int {
	n := 0
	for _, p := range d.Pages {
		n += len(p.Images)
	}
	return n
}

// MarshalDocument serializes a Document to pretty-printed JSON bytes.
func MarshalDocument(d *Document) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// UnmarshalDocument deserializes JSON bytes into a Document.
// It validates that the geometry describes a positive usable area.
func UnmarshalDocument(data []byte) (*Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("unmarshal layout: %w", err)
	}
	if d.Geometry.UsableWidth <= 0 || d.Geometry.UsableHeight <= 0 {
		return nil, fmt.Errorf("layout has no usable page area")
	}
	return &d, nil
}

// WriteDocumentFile writes a Document to a JSON file.
func WriteDocumentFile(d *Document, path string) error {
	data, err := MarshalDocument(d)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadDocumentFile reads a Document from a JSON file.
func ReadDocumentFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalDocument(data)
}
