package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	e := NoopExportHooks{}
	e.OnExportStart(ctx, "slide-1", "91.4x91.4mm@300dpi")
	e.OnCapture(ctx, "slide-1", 1080, 1080, 2.5)
	e.OnExportComplete(ctx, "slide-1", "91.4x91.4mm@300dpi", 4096, time.Second, nil)

	b := NoopBatchHooks{}
	b.OnBatchStart(ctx, 7)
	b.OnJobSkipped(ctx, "slide-2")
	b.OnBatchComplete(ctx, 6, 1, time.Second)

	br := NoopBrowserHooks{}
	br.OnPageLoad(ctx, "file:///tmp/sleeve.html", time.Second, nil)
	br.OnFontsReady(ctx, "file:///tmp/sleeve.html", time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Export().(NoopExportHooks); !ok {
		t.Error("Export() should return NoopExportHooks by default")
	}
	if _, ok := Batch().(NoopBatchHooks); !ok {
		t.Error("Batch() should return NoopBatchHooks by default")
	}
	if _, ok := Browser().(NoopBrowserHooks); !ok {
		t.Error("Browser() should return NoopBrowserHooks by default")
	}

	customExport := &testExportHooks{}
	SetExportHooks(customExport)
	if Export() != customExport {
		t.Error("SetExportHooks should set custom hooks")
	}

	customBatch := &testBatchHooks{}
	SetBatchHooks(customBatch)
	if Batch() != customBatch {
		t.Error("SetBatchHooks should set custom hooks")
	}

	customBrowser := &testBrowserHooks{}
	SetBrowserHooks(customBrowser)
	if Browser() != customBrowser {
		t.Error("SetBrowserHooks should set custom hooks")
	}

	Reset()
	if _, ok := Export().(NoopExportHooks); !ok {
		t.Error("Reset() should restore NoopExportHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testExportHooks{}
	SetExportHooks(custom)
	SetExportHooks(nil)

	if Export() != custom {
		t.Error("SetExportHooks(nil) should be ignored")
	}

	Reset()
}

type testExportHooks struct{ NoopExportHooks }
type testBatchHooks struct{ NoopBatchHooks }
type testBrowserHooks struct{ NoopBrowserHooks }
