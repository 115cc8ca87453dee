package export

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/matzehuels/microprint/pkg/errors"
)

// Deliverer receives the encoded artifact. Implementations must either
// store all of data under name or nothing at all.
type Deliverer interface {
	Deliver(ctx context.Context, name string, data []byte) error
}

// DelivererFunc adapts a function to the Deliverer interface.
type DelivererFunc func(ctx context.Context, name string, data []byte) error

// Deliver implements Deliverer.
func (f DelivererFunc) Deliver(ctx context.Context, name string, data []byte) error {
	return f(ctx, name, data)
}

// FileDeliverer saves artifacts into a directory.
type FileDeliverer struct {
	Dir string
}

// NewFileDeliverer creates a deliverer writing into dir.
func NewFileDeliverer(dir string) *FileDeliverer {
	return &FileDeliverer{Dir: dir}
}

// Path returns where an artifact with the given name ends up.
func (f *FileDeliverer) Path(name string) string {
	return filepath.Join(f.Dir, name)
}

// Deliver writes data to a temporary file in the target directory and
// renames it into place.
func (f *FileDeliverer) Deliver(ctx context.Context, name string, data []byte) error {
	if err := errors.ValidateFilename(name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return errors.Wrap(errors.ErrCodeDeliveryFailed, err, "deliver %s", name)
	}
	if err := os.MkdirAll(f.Dir, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeDeliveryFailed, err, "create %s", f.Dir)
	}

	tmp, err := os.CreateTemp(f.Dir, ".microprint-*.tmp")
	if err != nil {
		return errors.Wrap(errors.ErrCodeDeliveryFailed, err, "create temp file")
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(errors.ErrCodeDeliveryFailed, err, "write %s", name)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrap(errors.ErrCodeDeliveryFailed, err, "sync %s", name)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeDeliveryFailed, err, "close %s", name)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeDeliveryFailed, err, "chmod %s", name)
	}
	if err := os.Rename(tmpName, f.Path(name)); err != nil {
		return errors.Wrap(errors.ErrCodeDeliveryFailed, err, "rename into %s", name)
	}
	return nil
}

// WriterDeliverer streams the artifact to W, ignoring the name. The
// export and capture commands use it for "--out -".
type WriterDeliverer struct {
	W io.Writer
}

// Deliver implements Deliverer.
func (d WriterDeliverer) Deliver(_ context.Context, name string, data []byte) error {
	if _, err := d.W.Write(data); err != nil {
		return errors.Wrap(errors.ErrCodeDeliveryFailed, err, "write %s", name)
	}
	return nil
}
