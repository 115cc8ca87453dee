package fonts

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/image/font/gofont/gomono"

	"github.com/matzehuels/microprint/pkg/errors"
)

func TestDefaultRegistry(t *testing.T) {
	r := Default()
	if err := r.Ready(context.Background()); err != nil {
		t.Fatalf("Ready() error: %v", err)
	}
	for _, role := range Roles {
		if r.Font(role) == nil {
			t.Errorf("Font(%s) = nil", role)
		}
		if r.Family(role) == nil {
			t.Errorf("Family(%s) = nil", role)
		}
	}

	face := r.Face(Display, 64)
	defer face.Close()
	if h := face.Metrics().Height.Ceil(); h < 64 || h > 100 {
		t.Errorf("64px face height = %d", h)
	}
}

func TestReadyBlocksUntilLoaded(t *testing.T) {
	r := NewRegistry(nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := r.Ready(ctx); !errors.Is(err, errors.ErrCodeUnknown) {
		t.Fatalf("Ready() before Load = %v, want UNKNOWN timeout", err)
	}

	r.Start(context.Background())
	if err := r.Ready(context.Background()); err != nil {
		t.Fatalf("Ready() after Start error: %v", err)
	}
}

func TestLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mono.ttf")
	if err := os.WriteFile(path, gomono.TTF, 0644); err != nil {
		t.Fatal(err)
	}

	r := NewRegistry(map[Role]string{Body: path}, nil)
	if err := r.Load(context.Background()); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if r.Font(Body) == r.Font(Display) {
		t.Error("configured body font should differ from display")
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "broken.ttf")
	if err := os.WriteFile(garbage, []byte("not a font"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		paths map[Role]string
	}{
		{"missing file", map[Role]string{Display: filepath.Join(dir, "nope.ttf")}},
		{"not a font", map[Role]string{Italic: garbage}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry(tt.paths, nil)
			err := r.Load(context.Background())
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Fatalf("Load() error = %v, want INVALID_CONFIG", err)
			}
			if err := r.Ready(context.Background()); err == nil {
				t.Error("Ready() should report the load failure")
			}
		})
	}
}

func TestFaceBeforeReadyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Face() before Load did not panic")
		}
	}()
	NewRegistry(nil, nil).Face(Body, 12)
}
