package sleeve

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/matzehuels/microprint/pkg/errors"
	"github.com/matzehuels/microprint/pkg/fonts"
	"github.com/matzehuels/microprint/pkg/printspec"
	"github.com/matzehuels/microprint/pkg/region"
)

var white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

func rgba(t *testing.T, img image.Image) []byte {
	t.Helper()
	switch im := img.(type) {
	case *image.RGBA:
		return im.Pix
	case *image.NRGBA:
		return im.Pix
	}
	t.Fatalf("unexpected image type %T", img)
	return nil
}

func TestSize(t *testing.T) {
	tests := []struct {
		panel Panel
		bleed float64
		w, h  float64
	}{
		{Full, 0, 90, 330},
		{Full, 3, 96, 336},
		{Art, 0, 90, 130},
		{Nutrition, 3, 96, 136},
		{Side, 0, 90, 35},
	}
	for _, tt := range tests {
		s := New(fonts.Default(), WithBleed(tt.bleed))
		w, h, err := s.Size(tt.panel)
		if err != nil {
			t.Fatalf("Size(%s): %v", tt.panel, err)
		}
		if w != tt.w || h != tt.h {
			t.Errorf("Size(%s, bleed %v) = %vx%v, want %vx%v", tt.panel, tt.bleed, w, h, tt.w, tt.h)
		}
	}
}

func TestSizeMatchesSpecTrim(t *testing.T) {
	tests := []struct {
		panel Panel
		spec  string
	}{
		{Full, "96x336mm@300dpi+3mm"},
		{Art, "90x130mm@300dpi"},
		{Nutrition, "94x134mm@600dpi+2mm"},
		{Side, "96x41mm@300dpi+3mm"},
	}
	for _, tt := range tests {
		spec := printspec.MustParse(tt.spec)
		s := New(fonts.Default(), WithBleed(spec.BleedMM))
		w, h, err := s.Size(tt.panel)
		if err != nil {
			t.Fatalf("Size(%s): %v", tt.panel, err)
		}
		if w != spec.WidthMM || h != spec.HeightMM {
			t.Errorf("Size(%s) = %vx%v, want %vx%v", tt.panel, w, h, spec.WidthMM, spec.HeightMM)
		}
		tw, th := spec.TrimMM()
		if want := trimHeights[tt.panel]; tw != WidthMM || th != want {
			t.Errorf("%s trim = %vx%v, want %vx%v", tt.spec, tw, th, WidthMM, want)
		}
	}
}

func TestUnknownPanel(t *testing.T) {
	s := New(fonts.Default())
	if _, _, err := s.Size("sleeve/back"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Size: got %v, want NOT_FOUND", err)
	}
	if _, err := s.Region("sleeve/back"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Region: got %v, want NOT_FOUND", err)
	}
}

func TestDrawDimensions(t *testing.T) {
	s := New(fonts.Default(), WithBleed(3))
	for _, p := range Panels() {
		for _, dpmm := range []float64{1, 2.5} {
			img, err := s.Draw(p, dpmm, white)
			if err != nil {
				t.Fatalf("Draw(%s, %v): %v", p, dpmm, err)
			}
			w, h, _ := s.Size(p)
			ww, wh := int(math.Round(w*dpmm)), int(math.Round(h*dpmm))
			if b := img.Bounds(); b.Dx() != ww || b.Dy() != wh {
				t.Errorf("Draw(%s, %v) = %dx%d, want %dx%d", p, dpmm, b.Dx(), b.Dy(), ww, wh)
			}
		}
	}
}

func TestDrawRejectsZeroResolution(t *testing.T) {
	s := New(fonts.Default())
	if _, err := s.Draw(Art, 0, white); !errors.Is(err, errors.ErrCodeEmptyCapture) {
		t.Errorf("got %v, want EMPTY_CAPTURE", err)
	}
}

func TestDrawDeterministic(t *testing.T) {
	s := New(fonts.Default(), WithBleed(3))
	a, err := s.Draw(Full, 1.5, white)
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.Draw(Full, 1.5, white)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(rgba(t, a), rgba(t, b)) {
		t.Error("sleeve renders differently on a second draw")
	}
}

func TestPhoto(t *testing.T) {
	photo := image.NewNRGBA(image.Rect(0, 0, 40, 60))
	for i := range photo.Pix {
		photo.Pix[i] = 0xc0
	}
	plain, err := New(fonts.Default()).Draw(Art, 1, white)
	if err != nil {
		t.Fatal(err)
	}
	withPhoto, err := New(fonts.Default(), WithPhoto(photo)).Draw(Art, 1, white)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(rgba(t, plain), rgba(t, withPhoto)) {
		t.Error("photo did not change the art panel")
	}
}

func TestRegion(t *testing.T) {
	s := New(fonts.Default(), WithBleed(3))
	r, err := s.Region(Art, region.WithScale(2))
	if err != nil {
		t.Fatal(err)
	}
	if r.ID() != "sleeve/art" {
		t.Errorf("ID = %q", r.ID())
	}
	ctx := context.Background()
	rect, err := r.Bounds(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if rect.W != 192 || rect.H != 272 {
		t.Errorf("Bounds = %vx%v, want 192x272", rect.W, rect.H)
	}
	img, err := r.Capture(ctx, 0.5, white)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 96 || b.Dy() != 136 {
		t.Errorf("Capture = %dx%d, want 96x136", b.Dx(), b.Dy())
	}
}

func TestSplitTitle(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"microverdes de girassol", []string{"microverdes", "de girassol"}},
		{"girassol", []string{"girassol"}},
		{"de girassol", []string{"de girassol"}},
	}
	for _, tt := range tests {
		got := splitTitle(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("splitTitle(%q) = %q, want %q", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitTitle(%q) = %q, want %q", tt.in, got, tt.want)
			}
		}
	}
}
