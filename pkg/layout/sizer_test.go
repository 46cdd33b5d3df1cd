package layout

import (
	"math"
	"testing"

	"github.com/picbook/picbook/pkg/errors"
)

const tolerance = 1e-9

func TestResolveSizeNominal(t *testing.T) {
	// 960x480 pixels at 96dpi and scale 1.0 is 10x5 inches; on a large
	// enough page no clamping happens.
	w, h, err := ResolveSize(960, 480, 12, 12, 1.0)
	if err != nil {
		t.Fatalf("ResolveSize: %v", err)
	}
	if math.Abs(w-10) > tolerance || math.Abs(h-5) > tolerance {
		t.Errorf("size = %vx%v, want 10x5", w, h)
	}
}

func TestResolveSizeScaleFactor(t *testing.T) {
	w, h, err := ResolveSize(960, 480, 12, 12, 0.5)
	if err != nil {
		t.Fatalf("ResolveSize: %v", err)
	}
	if math.Abs(w-5) > tolerance || math.Abs(h-2.5) > tolerance {
		t.Errorf("size = %vx%v, want 5x2.5", w, h)
	}
}

func TestResolveSizeClampsToUsableArea(t *testing.T) {
	tests := []struct {
		name    string
		pxW     int
		pxH     int
		usableW float64
		usableH float64
		scale   float64
	}{
		{name: "width overflow", pxW: 2000, pxH: 500, usableW: 7.5, usableH: 10, scale: 1.0},
		{name: "height overflow", pxW: 500, pxH: 2000, usableW: 7.5, usableH: 10, scale: 1.0},
		{name: "both overflow", pxW: 4000, pxH: 3000, usableW: 7.5, usableH: 10, scale: 1.0},
		{name: "overflow at min scale", pxW: 20000, pxH: 20000, usableW: 7.5, usableH: 10, scale: 0.1},
		{name: "tall panorama", pxW: 100, pxH: 9000, usableW: 10.69, usableH: 7.27, scale: 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, err := ResolveSize(tt.pxW, tt.pxH, tt.usableW, tt.usableH, tt.scale)
			if err != nil {
				t.Fatalf("ResolveSize: %v", err)
			}
			if w > tt.usableW+tolerance {
				t.Errorf("width %v exceeds usable %v", w, tt.usableW)
			}
			if h > tt.usableH+tolerance {
				t.Errorf("height %v exceeds usable %v", h, tt.usableH)
			}
		})
	}
}

func TestResolveSizeFitSafetyMargin(t *testing.T) {
	// A 1920x960 image at scale 1.0 is nominally 20x10 inches. On a 7.5x10
	// page the limiting axis is width: fit = 7.5/20 * 0.95, so the final
	// width is exactly 7.5*0.95 = 7.125.
	w, h, err := ResolveSize(1920, 960, 7.5, 10, 1.0)
	if err != nil {
		t.Fatalf("ResolveSize: %v", err)
	}
	if math.Abs(w-7.125) > tolerance {
		t.Errorf("width = %v, want 7.125 (95%% of usable width)", w)
	}
	if math.Abs(h-3.5625) > tolerance {
		t.Errorf("height = %v, want 3.5625", h)
	}
}

func TestResolveSizeAspectRatioPreserved(t *testing.T) {
	tests := []struct {
		name  string
		pxW   int
		pxH   int
		scale float64
	}{
		{name: "landscape 4:3", pxW: 1600, pxH: 1200, scale: 1.0},
		{name: "portrait 2:3", pxW: 1000, pxH: 1500, scale: 0.4},
		{name: "square", pxW: 3000, pxH: 3000, scale: 0.9},
		{name: "extreme panorama", pxW: 10000, pxH: 400, scale: 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, err := ResolveSize(tt.pxW, tt.pxH, 7.5, 10, tt.scale)
			if err != nil {
				t.Fatalf("ResolveSize: %v", err)
			}
			want := float64(tt.pxW) / float64(tt.pxH)
			if got := w / h; math.Abs(got-want) > 1e-6 {
				t.Errorf("aspect ratio = %v, want %v", got, want)
			}
		})
	}
}

func TestResolveSizeDegenerateDimensions(t *testing.T) {
	tests := []struct {
		name string
		pxW  int
		pxH  int
	}{
		{name: "zero width", pxW: 0, pxH: 100},
		{name: "zero height", pxW: 100, pxH: 0},
		{name: "negative width", pxW: -5, pxH: 100},
		{name: "negative height", pxW: 100, pxH: -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ResolveSize(tt.pxW, tt.pxH, 7.5, 10, 1.0)
			if !errors.Is(err, errors.ErrCodeInvalidImageDimensions) {
				t.Errorf("want INVALID_IMAGE_DIMENSIONS, got %v", err)
			}
		})
	}
}
