// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup
// to receive events about exports, batch runs, and browser captures.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, never by libraries, so the export engine
// stays free of any metrics framework.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetExportHooks(&myExportHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Export().OnExportStart(ctx, panel, spec)
//	// ... capture, resample, encode ...
//	observability.Export().OnExportComplete(ctx, panel, spec, bytes, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Export Hooks
// =============================================================================

// ExportHooks receives events from the export engine.
type ExportHooks interface {
	// OnExportStart fires once the spec is validated, before fonts are awaited.
	OnExportStart(ctx context.Context, panel, spec string)

	// OnCapture fires after the region was rasterized at the capture scale.
	OnCapture(ctx context.Context, panel string, width, height int, scale float64)

	// OnExportComplete fires exactly once per export, on success or failure.
	OnExportComplete(ctx context.Context, panel, spec string, bytes int, duration time.Duration, err error)
}

// =============================================================================
// Batch Hooks
// =============================================================================

// BatchHooks receives events from the batch runner.
type BatchHooks interface {
	// OnBatchStart records the number of queued jobs.
	OnBatchStart(ctx context.Context, jobs int)

	// OnJobSkipped records a job rejected because its panel was busy.
	OnJobSkipped(ctx context.Context, panel string)

	// OnBatchComplete records the outcome of a whole run.
	OnBatchComplete(ctx context.Context, succeeded, failed int, duration time.Duration)
}

// =============================================================================
// Browser Hooks
// =============================================================================

// BrowserHooks receives events from the headless browser backend.
type BrowserHooks interface {
	// OnPageLoad records a page navigation and how long it took to settle.
	OnPageLoad(ctx context.Context, url string, duration time.Duration, err error)

	// OnFontsReady records how long document.fonts.ready took.
	OnFontsReady(ctx context.Context, url string, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopExportHooks is a no-op implementation of ExportHooks.
type NoopExportHooks struct{}

func (NoopExportHooks) OnExportStart(context.Context, string, string)        {}
func (NoopExportHooks) OnCapture(context.Context, string, int, int, float64) {}
func (NoopExportHooks) OnExportComplete(context.Context, string, string, int, time.Duration, error) {
}

// NoopBatchHooks is a no-op implementation of BatchHooks.
type NoopBatchHooks struct{}

func (NoopBatchHooks) OnBatchStart(context.Context, int)                        {}
func (NoopBatchHooks) OnJobSkipped(context.Context, string)                     {}
func (NoopBatchHooks) OnBatchComplete(context.Context, int, int, time.Duration) {}

// NoopBrowserHooks is a no-op implementation of BrowserHooks.
type NoopBrowserHooks struct{}

func (NoopBrowserHooks) OnPageLoad(context.Context, string, time.Duration, error) {}
func (NoopBrowserHooks) OnFontsReady(context.Context, string, time.Duration)      {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	exportHooks  ExportHooks  = NoopExportHooks{}
	batchHooks   BatchHooks   = NoopBatchHooks{}
	browserHooks BrowserHooks = NoopBrowserHooks{}
	hooksMu      sync.RWMutex
)

// SetExportHooks registers custom export hooks.
// This should be called once at application startup before any export.
func SetExportHooks(h ExportHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		exportHooks = h
	}
}

// SetBatchHooks registers custom batch hooks.
func SetBatchHooks(h BatchHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		batchHooks = h
	}
}

// SetBrowserHooks registers custom browser hooks.
func SetBrowserHooks(h BrowserHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		browserHooks = h
	}
}

// Export returns the registered export hooks.
func Export() ExportHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return exportHooks
}

// Batch returns the registered batch hooks.
func Batch() BatchHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return batchHooks
}

// Browser returns the registered browser hooks.
func Browser() BrowserHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return browserHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	exportHooks = NoopExportHooks{}
	batchHooks = NoopBatchHooks{}
	browserHooks = NoopBrowserHooks{}
}
