// Package album models a scanned image directory and its ordering.
//
// An Album is the input to the layout pipeline: a list of images with their
// pixel dimensions and modification timestamps, read once from disk and
// never mutated afterwards. Albums serialize to JSON so that scanning and
// layout can run as separate commands.
package album

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"
)

// Image describes a single scanned image. Identity is the filename, which is
// unique within a run (all images come from one directory).
type Image struct {
	Filename    string    `json:"filename"`
	PixelWidth  int       `json:"pixel_width"`
	PixelHeight int       `json:"pixel_height"`
	ModTime     time.Time `json:"mod_time"`
}

// Album is an ordered collection of scanned images from one directory.
type Album struct {
	Dir    string  `json:"dir"`
	Images []Image `json:"images"`
}

// Count returns the number of images in the album.
func (a *Album) Count() int { return len(a.Images) }

// Order sorts the images ascending by modification time. Images sharing a
// timestamp are ordered by filename, so the result is deterministic across
// runs regardless of directory enumeration order.
//
// The ordering key is the file modification time, which is not a stable
// "creation time" across copy or move operations. That matches the behavior
// users already rely on; changing the key would silently reorder existing
// albums.
func (a *Album) Order() {
	sort.SliceStable(a.Images, func(i, j int) bool {
		ti, tj := a.Images[i].ModTime, a.Images[j].ModTime
		if ti.Equal(tj) {
			return a.Images[i].Filename < a.Images[j].Filename
		}
		return ti.Before(tj)
	})
}

// MarshalAlbum serializes an Album to pretty-printed JSON bytes.
func MarshalAlbum(a *Album) ([]byte, error) {
	return json.MarshalIndent(a, "", "  ")
}

// UnmarshalAlbum deserializes JSON bytes into an Album.
func UnmarshalAlbum(data []byte) (*Album, error) {
	var a Album
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("unmarshal album: %w", err)
	}
	return &a, nil
}

// WriteAlbumFile writes an Album to a JSON file.
func WriteAlbumFile(a *Album, path string) error {
	data, err := MarshalAlbum(a)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadAlbumFile reads an Album from a JSON file.
func ReadAlbumFile(path string) (*Album, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalAlbum(data)
}
