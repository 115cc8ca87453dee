package pipeline

import (
	"context"
	"image"
	"image/color"
	"io"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/microprint/pkg/errors"
	"github.com/matzehuels/microprint/pkg/export"
	"github.com/matzehuels/microprint/pkg/printspec"
	"github.com/matzehuels/microprint/pkg/region"
)

// fakeProvider serves solid 100x100 regions. Panels listed in detached
// resolve to regions bound to an empty viewport.
type fakeProvider struct {
	detached map[string]bool
	panics   map[string]bool
	// during runs inside the paint function of every region.
	during func(id string)
	// scales records the preview scale of every resolved region.
	scales []float64
}

func (p *fakeProvider) Resolve(id string, scale float64, spec printspec.OutputSpec) (region.Region, string, error) {
	if id == "missing" {
		return nil, "", errors.New(errors.ErrCodeNotFound, "unknown panel %q", id)
	}
	p.scales = append(p.scales, scale)
	opts := []region.Option{region.WithScale(scale)}
	if p.detached[id] {
		opts = append(opts, region.WithViewport(region.NewViewport()))
	}
	paint := func(_ context.Context, ratio float64, bg color.NRGBA) (image.Image, error) {
		if p.during != nil {
			p.during(id)
		}
		if p.panics[id] {
			panic("renderer crashed")
		}
		n := int(100*ratio + 0.5)
		img := image.NewNRGBA(image.Rect(0, 0, n, n))
		for i := 0; i < len(img.Pix); i += 4 {
			img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 0x20, 0x60, 0x30, 0xff
		}
		return img, nil
	}
	return region.New(id, 100, 100, paint, opts...), id + ".png", nil
}

// memory records delivered files.
type memory struct {
	mu    sync.Mutex
	files map[string][]byte
}

func (m *memory) Deliver(_ context.Context, name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.files == nil {
		m.files = make(map[string][]byte)
	}
	m.files[name] = data
	return nil
}

func newTestRunner(p Provider, d export.Deliverer) *Runner {
	logger := log.New(io.Discard)
	return NewRunner(p, export.NewEngine(export.WithLogger(logger)), d, logger)
}

var post = printspec.MustParse("91.4x91.4mm@300dpi")

func TestRunExportsAllJobs(t *testing.T) {
	mem := &memory{}
	r := newTestRunner(&fakeProvider{}, mem)
	res, err := r.Run(context.Background(), []Job{
		{Panel: "slide-1", Spec: post},
		{Panel: "sleeve/side", Spec: printspec.MustParse("90x35mm@300dpi")},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !res.OK() || res.Stats.Succeeded != 2 {
		t.Fatalf("result = %+v, failures %v", res.Stats, res.Failures)
	}
	if a := res.Artifacts[0]; a.Width != 1080 || a.Height != 1080 || a.Filename != "slide-1.png" {
		t.Errorf("artifact 0 = %dx%d %q", a.Width, a.Height, a.Filename)
	}
	if a := res.Artifacts[1]; a.Width != 1063 || a.Height != 413 {
		t.Errorf("artifact 1 = %dx%d", a.Width, a.Height)
	}
	if len(mem.files) != 2 {
		t.Errorf("delivered %d files, want 2", len(mem.files))
	}
	if res.Stats.Bytes == 0 {
		t.Error("Stats.Bytes not counted")
	}
}

func TestRunIsolatesFailures(t *testing.T) {
	mem := &memory{}
	p := &fakeProvider{
		detached: map[string]bool{"slide-2": true},
		panics:   map[string]bool{"slide-3": true},
	}
	r := newTestRunner(p, mem)
	res, err := r.Run(context.Background(), []Job{
		{Panel: "slide-1", Spec: post},
		{Panel: "slide-2", Spec: post},
		{Panel: "slide-3", Spec: post},
		{Panel: "missing", Spec: post},
		{Panel: "slide-4", Spec: printspec.OutputSpec{WidthMM: 10, HeightMM: 10}},
		{Panel: "slide-5", Spec: post},
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []errors.Code{
		errors.ErrCodeRegionUnavailable,
		errors.ErrCodeUnknown,
		errors.ErrCodeNotFound,
		errors.ErrCodeInvalidSpec,
	}
	if len(res.Failures) != len(want) {
		t.Fatalf("got %d failures, want %d: %v", len(res.Failures), len(want), res.Failures)
	}
	for i, code := range want {
		if !errors.Is(res.Failures[i].Err, code) {
			t.Errorf("failure %d (%s) = %v, want %s", i, res.Failures[i].Job.Panel, res.Failures[i].Err, code)
		}
	}
	if res.Stats.Succeeded != 2 || res.Stats.Failed != 4 {
		t.Errorf("stats = %+v", res.Stats)
	}
	if len(mem.files) != 2 {
		t.Errorf("delivered %v, want slide-1 and slide-5 only", mem.files)
	}
	if busy := r.Busy.IDs(); len(busy) != 0 {
		t.Errorf("busy flags left set: %v", busy)
	}
}

func TestRunRejectsBusyPanel(t *testing.T) {
	mem := &memory{}
	r := newTestRunner(&fakeProvider{}, mem)
	r.Busy.TryAcquire("slide-1")

	res, err := r.Run(context.Background(), []Job{{Panel: "slide-1", Spec: post}, {Panel: "slide-2", Spec: post}})
	if err != nil {
		t.Fatal(err)
	}
	if res.Stats.Skipped != 1 || !errors.Is(res.Err(), errors.ErrCodeBusy) {
		t.Errorf("stats = %+v, err = %v", res.Stats, res.Err())
	}
	if !r.Busy.Active("slide-1") {
		t.Error("runner released a flag it did not own")
	}
	if _, ok := mem.files["slide-1.png"]; ok {
		t.Error("busy panel was delivered")
	}
}

func TestBusyDuringExport(t *testing.T) {
	var seen []bool
	var r *Runner
	p := &fakeProvider{during: func(id string) { seen = append(seen, r.Busy.Active(id)) }}
	r = newTestRunner(p, &memory{})
	if _, err := r.RunJob(context.Background(), Job{Panel: "slide-6", Spec: post}); err != nil {
		t.Fatal(err)
	}
	if len(seen) != 1 || !seen[0] {
		t.Errorf("busy during capture = %v, want [true]", seen)
	}
	if r.Busy.Active("slide-6") {
		t.Error("busy flag not cleared after export")
	}
}

func TestRunStopOnError(t *testing.T) {
	r := newTestRunner(&fakeProvider{detached: map[string]bool{"slide-1": true}}, &memory{})
	r.Options.StopOnError = true
	res, err := r.Run(context.Background(), []Job{{Panel: "slide-1", Spec: post}, {Panel: "slide-2", Spec: post}})
	if err != nil {
		t.Fatal(err)
	}
	if res.Stats.Succeeded != 0 || res.Stats.Failed != 2 {
		t.Errorf("stats = %+v", res.Stats)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	mem := &memory{}
	r := newTestRunner(&fakeProvider{}, mem)
	res, err := r.Run(ctx, []Job{{Panel: "slide-1", Spec: post}, {Panel: "slide-2", Spec: post}})
	if err != nil {
		t.Fatal(err)
	}
	if res.Stats.Failed != 2 || len(mem.files) != 0 {
		t.Errorf("stats = %+v, delivered %d", res.Stats, len(mem.files))
	}
}

func TestRunNeedsProviderAndDeliverer(t *testing.T) {
	if _, err := newTestRunner(nil, &memory{}).Run(context.Background(), nil); !errors.Is(err, errors.ErrCodeBackendUnavailable) {
		t.Errorf("nil provider: %v", err)
	}
	if _, err := newTestRunner(&fakeProvider{}, nil).Run(context.Background(), nil); !errors.Is(err, errors.ErrCodeDeliveryFailed) {
		t.Errorf("nil deliverer: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	var o Options
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if o.PreviewScale != DefaultPreviewScale || o.Logger == nil {
		t.Errorf("defaults = %+v", o)
	}
	bad := Options{PreviewScale: -1}
	if err := bad.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("negative scale: %v", err)
	}
}

func TestBusy(t *testing.T) {
	var b Busy
	if !b.TryAcquire("a") || b.TryAcquire("a") {
		t.Fatal("TryAcquire must succeed once")
	}
	b.TryAcquire("c")
	if ids := b.IDs(); len(ids) != 2 || ids[0] != "a" || ids[1] != "c" {
		t.Errorf("IDs = %v", ids)
	}
	b.Release("a")
	if b.Active("a") || !b.TryAcquire("a") {
		t.Error("Release did not clear the flag")
	}
}

func TestJobPreviewScale(t *testing.T) {
	mem := &memory{files: map[string][]byte{}}
	p := &fakeProvider{}
	r := newTestRunner(p, mem)
	r.Options.PreviewScale = 2

	res, err := r.Run(context.Background(), []Job{
		{Panel: "slide-1", Spec: post},
		{Panel: "slide-2", Spec: post, PreviewScale: 0.4},
		{Panel: "slide-3", Spec: post, PreviewScale: -1},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(p.scales) != 2 || p.scales[0] != 2 || p.scales[1] != 0.4 {
		t.Errorf("scales = %v, want [2 0.4]", p.scales)
	}
	for _, a := range res.Artifacts {
		if a.Width != 1080 || a.Height != 1080 {
			t.Errorf("%s = %dx%d, want 1080x1080", a.Panel, a.Width, a.Height)
		}
	}
	if len(res.Failures) != 1 || !errors.Is(res.Failures[0].Err, errors.ErrCodeInvalidInput) {
		t.Errorf("failures = %v, want one INVALID_INPUT", res.Failures)
	}
}
