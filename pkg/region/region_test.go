package region

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/matzehuels/microprint/pkg/errors"
)

func checker(w, h int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x/10+y/10)%2 == 0 {
				img.SetNRGBA(x, y, color.NRGBA{R: 0x20, G: 0x80, B: 0x20, A: 0xff})
			}
		}
	}
	return img
}

func TestRectEmpty(t *testing.T) {
	tests := []struct {
		r    Rect
		want bool
	}{
		{Rect{W: 10, H: 10}, false},
		{Rect{W: 0, H: 10}, true},
		{Rect{W: 10, H: 0}, true},
		{Rect{W: -1, H: 10}, true},
		{Rect{}, true},
	}
	for _, tt := range tests {
		if got := tt.r.Empty(); got != tt.want {
			t.Errorf("%+v.Empty() = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestDrawnBoundsFollowScale(t *testing.T) {
	ctx := context.Background()
	for _, s := range []float64{0.4, 0.5, 1, 2} {
		r := New("slide-1", 1080, 1080, nil, WithScale(s))
		rect, err := r.Bounds(ctx)
		if err != nil {
			t.Fatalf("Bounds() error: %v", err)
		}
		if rect.W != 1080*s || rect.H != 1080*s {
			t.Errorf("scale %v: Bounds() = %vx%v, want %vx%v", s, rect.W, rect.H, 1080*s, 1080*s)
		}
	}
}

func TestFromImageCapture(t *testing.T) {
	ctx := context.Background()
	r := FromImage("art", checker(100, 50), WithScale(0.5))

	rect, err := r.Bounds(ctx)
	if err != nil {
		t.Fatalf("Bounds() error: %v", err)
	}
	if rect.W != 50 || rect.H != 25 {
		t.Fatalf("Bounds() = %vx%v, want 50x25", rect.W, rect.H)
	}

	img, err := r.Capture(ctx, 4, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	if err != nil {
		t.Fatalf("Capture() error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 100 {
		t.Errorf("Capture(4) = %dx%d, want 200x100", b.Dx(), b.Dy())
	}
}

func TestCaptureFillsTransparentAreas(t *testing.T) {
	ctx := context.Background()
	src := image.NewNRGBA(image.Rect(0, 0, 20, 20)) // fully transparent
	bg := color.NRGBA{R: 0xfa, G: 0xf7, B: 0xf0, A: 0xff}

	img, err := FromImage("blank", src).Capture(ctx, 1, bg)
	if err != nil {
		t.Fatalf("Capture() error: %v", err)
	}
	_, _, _, a := img.At(10, 10).RGBA()
	if a != 0xffff {
		t.Errorf("alpha = %#x, want opaque", a)
	}
}

func TestViewportAttachment(t *testing.T) {
	ctx := context.Background()
	vp := NewViewport()
	r := FromImage("slide-2", checker(10, 10), WithViewport(vp))

	if _, err := r.Bounds(ctx); !errors.Is(err, errors.ErrCodeRegionUnavailable) {
		t.Fatalf("unmounted Bounds() error = %v, want REGION_UNAVAILABLE", err)
	}

	vp.Mount("slide-2")
	if _, err := r.Bounds(ctx); err != nil {
		t.Fatalf("mounted Bounds() error: %v", err)
	}
	if got := vp.Mounted(); len(got) != 1 || got[0] != "slide-2" {
		t.Errorf("Mounted() = %v", got)
	}

	vp.Unmount("slide-2")
	if _, err := r.Capture(ctx, 1, color.NRGBA{A: 255}); !errors.Is(err, errors.ErrCodeRegionUnavailable) {
		t.Errorf("detached Capture() error = %v, want REGION_UNAVAILABLE", err)
	}
	vp.Unmount("missing")
}

func TestDrawnWithoutPainter(t *testing.T) {
	_, err := New("x", 1, 1, nil).Capture(context.Background(), 1, color.NRGBA{A: 255})
	if !errors.Is(err, errors.ErrCodeBackendUnavailable) {
		t.Errorf("Capture() error = %v, want BACKEND_UNAVAILABLE", err)
	}
}
