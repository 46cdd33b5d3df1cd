package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/picbook/picbook/pkg/album"
	"github.com/picbook/picbook/pkg/cache"
	"github.com/picbook/picbook/pkg/layout"
	"github.com/picbook/picbook/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete scan → layout → emit pipeline with caching.
func (r *Runner) Execute(ctx context.Context, dir string, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Scan
	scanStart := time.Now()
	a, scanHit, err := r.ScanWithCacheInfo(ctx, dir, opts)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	result.Album = a
	result.Stats.ScanTime = time.Since(scanStart)
	result.Stats.ImageCount = a.Count()
	result.CacheInfo.ScanHit = scanHit

	// Compute album hash for cache keys
	if albumData, err := album.MarshalAlbum(a); err == nil {
		result.AlbumHash = cache.Hash(albumData)
	}

	r.Logger.Info("scanned album",
		"dir", dir,
		"images", a.Count(),
		"duration", result.Stats.ScanTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	doc, layoutHit, err := r.GenerateLayoutWithCacheInfo(ctx, a, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Document = doc
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.PageCount = doc.PageCount()
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"pages", doc.PageCount(),
		"placed", doc.ImageCount(),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Emit
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, doc, opts)
	if err != nil {
		return nil, fmt.Errorf("emit: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("emitted artifacts",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ScanWithCacheInfo scans an image directory with caching and returns cache
// hit info. The cache key is a fingerprint of the directory contents, so
// adding, removing, or touching an image invalidates the cached album.
func (r *Runner) ScanWithCacheInfo(ctx context.Context, dir string, opts Options) (*album.Album, bool, error) {
	r.applyLogger(&opts)

	observability.Pipeline().OnScanStart(ctx, dir)
	start := time.Now()

	fingerprint, err := album.Fingerprint(dir)
	if err != nil {
		observability.Pipeline().OnScanComplete(ctx, dir, 0, time.Since(start), err)
		return nil, false, err
	}
	cacheKey := r.Keyer.AlbumKey(fingerprint, cache.AlbumKeyOpts{Dir: dir})

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if a, err := album.UnmarshalAlbum(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "album")
				observability.Pipeline().OnScanComplete(ctx, dir, a.Count(), time.Since(start), nil)
				return a, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "album")
	}

	a, err := album.Scan(dir, opts.Logger)
	if err != nil {
		observability.Pipeline().OnScanComplete(ctx, dir, 0, time.Since(start), err)
		return nil, false, err
	}

	if data, err := album.MarshalAlbum(a); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLAlbum)
		observability.Cache().OnCacheSet(ctx, "album", len(data))
	}

	observability.Pipeline().OnScanComplete(ctx, dir, a.Count(), time.Since(start), nil)
	return a, false, nil
}

// Scan is a convenience wrapper that discards the cache hit info.
func (r *Runner) Scan(ctx context.Context, dir string, opts Options) (*album.Album, error) {
	a, _, err := r.ScanWithCacheInfo(ctx, dir, opts)
	return a, err
}

// GenerateLayoutWithCacheInfo computes a layout with caching and returns
// cache hit info.
func (r *Runner) GenerateLayoutWithCacheInfo(ctx context.Context, a *album.Album, opts Options) (*layout.Document, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	observability.Pipeline().OnLayoutStart(ctx, a.Count())
	start := time.Now()

	albumData, _ := album.MarshalAlbum(a)
	albumHash := cache.Hash(albumData)
	cacheKey := r.Keyer.LayoutKey(albumHash, opts.LayoutKeyOpts())

	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		if cached, err := layout.UnmarshalDocument(data); err == nil {
			observability.Cache().OnCacheHit(ctx, "layout")
			observability.Pipeline().OnLayoutComplete(ctx, cached.PageCount(), time.Since(start), nil)
			return cached, true, nil
		}
		// If deserialization fails, fall through to recompute
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	doc, err := GenerateLayout(a, opts)
	if err != nil {
		observability.Pipeline().OnLayoutComplete(ctx, 0, time.Since(start), err)
		return nil, false, err
	}

	if data, err := layout.MarshalDocument(doc); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	observability.Pipeline().OnLayoutComplete(ctx, doc.PageCount(), time.Since(start), nil)
	return doc, false, nil
}

// GenerateLayout is a convenience wrapper that discards the cache hit info.
func (r *Runner) GenerateLayout(ctx context.Context, a *album.Album, opts Options) (*layout.Document, error) {
	doc, _, err := r.GenerateLayoutWithCacheInfo(ctx, a, opts)
	return doc, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, doc *layout.Document, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	layoutData, err := layout.MarshalDocument(doc)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
		return artifacts, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	rendered, err := RenderFromDocument(doc, opts)
	if err != nil {
		observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return rendered, false, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, doc *layout.Document, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, doc, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
