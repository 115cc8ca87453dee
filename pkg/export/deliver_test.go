package export

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/microprint/pkg/errors"
)

func TestFileDeliverer(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	d := NewFileDeliverer(dir)

	data := []byte("\x89PNG fake")
	if err := d.Deliver(context.Background(), "slide-1-capa.png", data); err != nil {
		t.Fatalf("Deliver() error: %v", err)
	}

	got, err := os.ReadFile(d.Path("slide-1-capa.png"))
	if err != nil {
		t.Fatalf("read delivered file: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("delivered %q, want %q", got, data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("dir has %d entries, want only the artifact", len(entries))
	}
}

func TestFileDelivererOverwrites(t *testing.T) {
	d := NewFileDeliverer(t.TempDir())
	ctx := context.Background()
	if err := d.Deliver(ctx, "a.png", []byte("one")); err != nil {
		t.Fatal(err)
	}
	if err := d.Deliver(ctx, "a.png", []byte("two")); err != nil {
		t.Fatal(err)
	}
	got, _ := os.ReadFile(d.Path("a.png"))
	if string(got) != "two" {
		t.Errorf("content = %q, want two", got)
	}
}

func TestFileDelivererRejectsBadNames(t *testing.T) {
	dir := t.TempDir()
	d := NewFileDeliverer(dir)
	for _, name := range []string{"", "../escape.png", "a/b.png", ".hidden.png", "x.jpg"} {
		err := d.Deliver(context.Background(), name, []byte("x"))
		if !errors.Is(err, errors.ErrCodeInvalidFilename) {
			t.Errorf("Deliver(%q) error = %v, want INVALID_FILENAME", name, err)
		}
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("rejected deliveries left %d files behind", len(entries))
	}
}

func TestFileDelivererCancelled(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewFileDeliverer(dir).Deliver(ctx, "a.png", []byte("x"))
	if !errors.Is(err, errors.ErrCodeDeliveryFailed) {
		t.Errorf("error = %v, want DELIVERY_FAILED", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "a.png")); !os.IsNotExist(statErr) {
		t.Error("cancelled delivery left a file behind")
	}
}

func TestWriterDeliverer(t *testing.T) {
	var buf bytes.Buffer
	if err := (WriterDeliverer{W: &buf}).Deliver(context.Background(), "x.png", []byte("data")); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "data" {
		t.Errorf("wrote %q", buf.String())
	}
}
