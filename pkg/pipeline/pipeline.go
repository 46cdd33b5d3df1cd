// Package pipeline provides the core picture-book pipeline for picbook.
//
// This package implements the complete scan → layout → emit pipeline used by
// the CLI. By centralizing this logic, every entry point gets the same
// validation, defaults, and caching behavior.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Scan: Read image dimensions and timestamps from a directory
//  2. Layout: Resolve printable sizes and assign images to pages
//  3. Emit: Generate output artifacts (LaTeX source, layout JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    PageSize:    "letter",
//	    Orientation: "portrait",
//	    Formats:     []string{"tex"},
//	}
//	result, err := runner.Execute(ctx, "./photos", opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	tex := result.Artifacts["tex"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/picbook/picbook/pkg/album"
	"github.com/picbook/picbook/pkg/cache"
	"github.com/picbook/picbook/pkg/errors"
	"github.com/picbook/picbook/pkg/layout"
	"github.com/picbook/picbook/pkg/page"
)

// =============================================================================
// Default Values - Single Source of Truth for the CLI
// =============================================================================

const (
	// DefaultPageSize is the default paper size class.
	DefaultPageSize = string(page.SizeLetter)

	// DefaultOrientation is the default page orientation.
	DefaultOrientation = string(page.Portrait)

	// DefaultScale is the default image scaling factor.
	DefaultScale = 1.0

	// DefaultSpacing is the default inter-image spacing in inches.
	DefaultSpacing = layout.DefaultSpacing

	// DefaultFontSize is the default caption font size in points.
	DefaultFontSize = 8
)

// Format constants for output artifacts.
const (
	FormatTex  = "tex"
	FormatJSON = "json"
)

// ValidFormats is the set of supported artifact formats.
var ValidFormats = map[string]bool{
	FormatTex:  true,
	FormatJSON: true,
}

// ValidateFormats checks that all requested formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if !ValidFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat,
				"invalid format: %q (must be 'tex' or 'json')", f)
		}
	}
	return nil
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the picture-book pipeline.
type Options struct {
	// Layout options
	PageSize    string  `json:"page_size,omitempty" toml:"page_size"`
	Orientation string  `json:"orientation,omitempty" toml:"orientation"`
	Scale       float64 `json:"scale,omitempty" toml:"scale"`
	Spacing     float64 `json:"spacing,omitempty" toml:"spacing"`
	MaxPerPage  int     `json:"max_per_page,omitempty" toml:"max_per_page"`

	// Emit options
	Formats  []string `json:"formats,omitempty" toml:"formats"`
	FontSize int      `json:"font_size,omitempty" toml:"font_size"`
	Captions bool     `json:"captions,omitempty" toml:"captions"`

	// Refresh bypasses the cache for the scan stage.
	Refresh bool `json:"refresh,omitempty" toml:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-" toml:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks all fields and applies defaults for the full
// pipeline. This method is idempotent - calling it multiple times has the
// same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()

	if _, err := page.ParseSize(o.PageSize); err != nil {
		return err
	}
	if _, err := page.ParseOrientation(o.Orientation); err != nil {
		return err
	}
	if err := errors.ValidateScale(o.Scale); err != nil {
		return err
	}
	if err := errors.ValidateSpacing(o.Spacing); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}

	o.validated = true
	return nil
}

// SetDefaults fills in zero-valued fields without validating.
func (o *Options) SetDefaults() {
	if o.PageSize == "" {
		o.PageSize = DefaultPageSize
	}
	if o.Orientation == "" {
		o.Orientation = DefaultOrientation
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Spacing == 0 {
		o.Spacing = DefaultSpacing
	}
	if o.FontSize == 0 {
		o.FontSize = DefaultFontSize
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatTex}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Geometry resolves the page geometry described by the options.
func (o *Options) Geometry() (page.Geometry, error) {
	size, err := page.ParseSize(o.PageSize)
	if err != nil {
		return page.Geometry{}, err
	}
	orientation, err := page.ParseOrientation(o.Orientation)
	if err != nil {
		return page.Geometry{}, err
	}
	return page.NewGeometry(size, orientation)
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		PageSize:    o.PageSize,
		Orientation: o.Orientation,
		Scale:       o.Scale,
		Spacing:     o.Spacing,
		MaxPerPage:  o.MaxPerPage,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		FontSize: o.FontSize,
		Captions: o.Captions,
	}
}

// =============================================================================
// Result - Pipeline Outputs
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Album is the scanned, ordered image set.
	Album *album.Album

	// AlbumHash is the content hash of the album.
	AlbumHash string

	// Document is the computed layout.
	Document *layout.Document

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ImageCount int
	PageCount  int
	ScanTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ScanHit   bool // Whether the album came from cache
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}
