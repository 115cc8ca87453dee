package browser

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/microprint/pkg/errors"
	"github.com/matzehuels/microprint/pkg/export"
	"github.com/matzehuels/microprint/pkg/printspec"
)

const testPage = `<!doctype html>
<html><body style="margin:0">
<div id="card" style="width:300px;height:150px;background:#2e7d32"></div>
</body></html>`

func startPage(t *testing.T) (*Page, func()) {
	t.Helper()
	if !Available() {
		t.Skip("chrome not found")
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, testPage)
	}))

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	mgr := NewManager(Config{Logger: log.New(io.Discard)})
	if err := mgr.Start(ctx); err != nil {
		cancel()
		srv.Close()
		t.Skipf("chrome did not start: %v", err)
	}
	page, err := Open(ctx, mgr, srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	return page, func() {
		_ = page.Close()
		_ = mgr.Close()
		cancel()
		srv.Close()
	}
}

func TestOpenWithoutBrowser(t *testing.T) {
	mgr := NewManager(Config{Logger: log.New(io.Discard)})
	_, err := Open(context.Background(), mgr, "about:blank")
	if !errors.Is(err, errors.ErrCodeBackendUnavailable) {
		t.Errorf("got %v, want BACKEND_UNAVAILABLE", err)
	}
}

func TestStartAfterClose(t *testing.T) {
	mgr := NewManager(Config{})
	_ = mgr.Close()
	if err := mgr.Start(context.Background()); !errors.Is(err, errors.ErrCodeBackendUnavailable) {
		t.Errorf("got %v, want BACKEND_UNAVAILABLE", err)
	}
}

func TestElementExport(t *testing.T) {
	page, done := startPage(t)
	defer done()
	ctx := context.Background()

	if err := page.Ready(ctx); err != nil {
		t.Fatalf("Ready: %v", err)
	}

	el := page.Element("#card")
	rect, err := el.Bounds(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if rect.W <= 0 || rect.H <= 0 || rect.W != 2*rect.H {
		t.Errorf("bounds = %vx%v, want a 2:1 box", rect.W, rect.H)
	}

	engine := export.NewEngine(export.WithLogger(log.New(io.Discard)), export.WithFontGate(page))
	art, err := engine.ExportRegion(ctx, el, printspec.MustParse("100x50mm@150dpi"))
	if err != nil {
		t.Fatal(err)
	}
	if art.Width != 591 || art.Height != 295 {
		t.Errorf("artifact = %dx%d, want 591x295", art.Width, art.Height)
	}
}

func TestMissingElement(t *testing.T) {
	page, done := startPage(t)
	defer done()

	_, err := page.Element("#nope").Bounds(context.Background())
	if !errors.Is(err, errors.ErrCodeRegionUnavailable) {
		t.Errorf("got %v, want REGION_UNAVAILABLE", err)
	}
}
