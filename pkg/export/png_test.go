package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func TestEncodePNGWritesPhys(t *testing.T) {
	img := Resample(image.NewNRGBA(image.Rect(0, 0, 4, 4)), 8, 8, color.NRGBA{R: 255, A: 255})

	for _, dpi := range []float64{72, 150, 300, 600} {
		data, err := EncodePNG(img, dpi)
		if err != nil {
			t.Fatalf("EncodePNG(%v) error: %v", dpi, err)
		}
		got, ok := ReadDPI(data)
		if !ok || got != dpi {
			t.Errorf("ReadDPI() = %v, %v, want %v, true", got, ok, dpi)
		}
		if _, err := png.Decode(bytes.NewReader(data)); err != nil {
			t.Errorf("dpi %v: png with pHYs does not decode: %v", dpi, err)
		}
	}
}

func TestReadDPIMissing(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatal(err)
	}
	if _, ok := ReadDPI(buf.Bytes()); ok {
		t.Error("ReadDPI() found a pHYs chunk in a plain png")
	}
	if _, ok := ReadDPI([]byte("not a png")); ok {
		t.Error("ReadDPI() accepted garbage")
	}
}

func TestInsertPhysRejectsMalformed(t *testing.T) {
	if _, err := insertPhys([]byte("short"), 300); err == nil {
		t.Error("insertPhys() accepted a truncated png")
	}
}

func TestResampleExactSize(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 433, 431))
	for _, size := range []image.Point{{1080, 1080}, {1, 1}, {3969, 1134}, {433, 431}} {
		out := Resample(src, size.X, size.Y, color.NRGBA{A: 255})
		if b := out.Bounds(); b.Dx() != size.X || b.Dy() != size.Y {
			t.Errorf("Resample to %v = %dx%d", size, b.Dx(), b.Dy())
		}
	}
}

func TestResampleFlattensAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	src.SetNRGBA(5, 5, color.NRGBA{R: 255, A: 128})

	// A translucent background is forced opaque.
	out := Resample(src, 10, 10, color.NRGBA{B: 255, A: 10})
	for i := 3; i < len(out.Pix); i += 4 {
		if out.Pix[i] != 0xff {
			t.Fatalf("alpha at byte %d = %d, want 255", i, out.Pix[i])
		}
	}
	if got := out.NRGBAAt(0, 0); got != (color.NRGBA{B: 255, A: 255}) {
		t.Errorf("background pixel = %v", got)
	}
	if got := out.NRGBAAt(5, 5); got.R < 120 || got.B < 120 {
		t.Errorf("blended pixel = %v, want a mix of red and blue", got)
	}
}
