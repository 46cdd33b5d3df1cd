package album

import (
	"path/filepath"
	"testing"
	"time"
)

func TestOrder(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		images []Image
		want   []string
	}{
		{
			name: "ascending by timestamp",
			images: []Image{
				{Filename: "c.jpg", ModTime: base.Add(2 * time.Hour)},
				{Filename: "a.jpg", ModTime: base},
				{Filename: "b.jpg", ModTime: base.Add(time.Hour)},
			},
			want: []string{"a.jpg", "b.jpg", "c.jpg"},
		},
		{
			name: "equal timestamps break ties by filename",
			images: []Image{
				{Filename: "z.jpg", ModTime: base},
				{Filename: "a.jpg", ModTime: base},
				{Filename: "m.jpg", ModTime: base},
			},
			want: []string{"a.jpg", "m.jpg", "z.jpg"},
		},
		{
			name:   "empty album",
			images: nil,
			want:   nil,
		},
		{
			name: "single image",
			images: []Image{
				{Filename: "only.png", ModTime: base},
			},
			want: []string{"only.png"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Album{Images: tt.images}
			a.Order()
			if len(a.Images) != len(tt.want) {
				t.Fatalf("got %d images, want %d", len(a.Images), len(tt.want))
			}
			for i, want := range tt.want {
				if a.Images[i].Filename != want {
					t.Errorf("position %d = %q, want %q", i, a.Images[i].Filename, want)
				}
			}
		})
	}
}

func TestOrderDeterministic(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// Same set in two enumeration orders must sort identically.
	first := &Album{Images: []Image{
		{Filename: "b.jpg", ModTime: base},
		{Filename: "a.jpg", ModTime: base},
	}}
	second := &Album{Images: []Image{
		{Filename: "a.jpg", ModTime: base},
		{Filename: "b.jpg", ModTime: base},
	}}
	first.Order()
	second.Order()

	for i := range first.Images {
		if first.Images[i].Filename != second.Images[i].Filename {
			t.Fatalf("ordering depends on input order: %v vs %v", first.Images, second.Images)
		}
	}
}

func TestAlbumRoundTrip(t *testing.T) {
	a := &Album{
		Dir: "/photos",
		Images: []Image{
			{Filename: "a.jpg", PixelWidth: 800, PixelHeight: 600, ModTime: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
			{Filename: "b.png", PixelWidth: 1024, PixelHeight: 768, ModTime: time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)},
		},
	}

	path := filepath.Join(t.TempDir(), "album.json")
	if err := WriteAlbumFile(a, path); err != nil {
		t.Fatalf("WriteAlbumFile: %v", err)
	}

	got, err := ReadAlbumFile(path)
	if err != nil {
		t.Fatalf("ReadAlbumFile: %v", err)
	}
	if got.Dir != a.Dir {
		t.Errorf("Dir = %q, want %q", got.Dir, a.Dir)
	}
	if got.Count() != a.Count() {
		t.Fatalf("Count = %d, want %d", got.Count(), a.Count())
	}
	if got.Images[0].PixelWidth != 800 || got.Images[1].Filename != "b.png" {
		t.Errorf("round trip lost data: %+v", got.Images)
	}
}

func TestReadAlbumFileMissing(t *testing.T) {
	if _, err := ReadAlbumFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("reading a missing album file should fail")
	}
}
