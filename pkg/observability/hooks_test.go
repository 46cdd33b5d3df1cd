package observability

import (
	"context"
	"testing"
	"time"
)

// recordingPipelineHooks counts received pipeline events.
type recordingPipelineHooks struct {
	NoopPipelineHooks
	scanStarts  int
	layoutDones int
}

func (h *recordingPipelineHooks) OnScanStart(ctx context.Context, dir string) {
	h.scanStarts++
}

func (h *recordingPipelineHooks) OnLayoutComplete(ctx context.Context, pageCount int, d time.Duration, err error) {
	h.layoutDones++
}

// recordingCacheHooks counts received cache events.
type recordingCacheHooks struct {
	NoopCacheHooks
	hits int
}

func (h *recordingCacheHooks) OnCacheHit(ctx context.Context, keyType string) {
	h.hits++
}

func TestDefaultHooksAreNoop(t *testing.T) {
	Reset()
	ctx := context.Background()

	// Must not panic.
	Pipeline().OnScanStart(ctx, "/photos")
	Pipeline().OnScanComplete(ctx, "/photos", 3, time.Second, nil)
	Pipeline().OnLayoutStart(ctx, 3)
	Pipeline().OnLayoutComplete(ctx, 1, time.Second, nil)
	Pipeline().OnRenderStart(ctx, []string{"tex"})
	Pipeline().OnRenderComplete(ctx, []string{"tex"}, time.Second, nil)
	Cache().OnCacheHit(ctx, "layout")
	Cache().OnCacheMiss(ctx, "layout")
	Cache().OnCacheSet(ctx, "layout", 42)
}

func TestSetPipelineHooks(t *testing.T) {
	t.Cleanup(Reset)

	h := &recordingPipelineHooks{}
	SetPipelineHooks(h)

	ctx := context.Background()
	Pipeline().OnScanStart(ctx, "/photos")
	Pipeline().OnLayoutComplete(ctx, 2, time.Second, nil)

	if h.scanStarts != 1 {
		t.Errorf("scanStarts = %d, want 1", h.scanStarts)
	}
	if h.layoutDones != 1 {
		t.Errorf("layoutDones = %d, want 1", h.layoutDones)
	}
}

func TestSetCacheHooks(t *testing.T) {
	t.Cleanup(Reset)

	h := &recordingCacheHooks{}
	SetCacheHooks(h)

	Cache().OnCacheHit(context.Background(), "album")
	if h.hits != 1 {
		t.Errorf("hits = %d, want 1", h.hits)
	}
}

func TestSetNilHooksIgnored(t *testing.T) {
	t.Cleanup(Reset)

	SetPipelineHooks(nil)
	SetCacheHooks(nil)

	// Registry must still return usable hooks.
	Pipeline().OnScanStart(context.Background(), "/photos")
	Cache().OnCacheMiss(context.Background(), "album")
}
