// Package cache provides caching for the picbook pipeline.
//
// The pipeline caches per stage: the scanned album keyed by a directory
// fingerprint, the computed layout keyed by the album hash plus layout
// options, and rendered artifacts keyed by the layout hash plus render
// options. A FileCache backs normal CLI runs; NullCache disables caching.
package cache

import (
	"context"
	"time"
)

// TTLs per cached stage. Albums expire quickly because only the directory
// fingerprint guards them; layouts and artifacts are pure functions of their
// keys and can live longer.
const (
	TTLAlbum    = 24 * time.Hour
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the storage interface for pipeline results.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// AlbumKeyOpts are the scan options that affect album content.
type AlbumKeyOpts struct {
	Dir string `json:"dir"`
}

// LayoutKeyOpts are the layout options that affect the computed document.
type LayoutKeyOpts struct {
	PageSize    string  `json:"page_size"`
	Orientation string  `json:"orientation"`
	Scale       float64 `json:"scale"`
	Spacing     float64 `json:"spacing"`
	MaxPerPage  int     `json:"max_per_page"`
}

// ArtifactKeyOpts are the render options that affect an emitted artifact.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	FontSize int    `json:"font_size"`
	Captions bool   `json:"captions"`
}

// Keyer generates cache keys for each pipeline stage.
type Keyer interface {
	// AlbumKey generates a key for a scanned album from the directory
	// fingerprint (names, sizes, mtimes).
	AlbumKey(fingerprint string, opts AlbumKeyOpts) string

	// LayoutKey generates a key for a computed layout.
	LayoutKey(albumHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// AlbumKey generates a key for a scanned album.
func (k *DefaultKeyer) AlbumKey(fingerprint string, opts AlbumKeyOpts) string {
	return hashKey("album", fingerprint, opts)
}

// LayoutKey generates a key for a computed layout.
func (k *DefaultKeyer) LayoutKey(albumHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", albumHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
