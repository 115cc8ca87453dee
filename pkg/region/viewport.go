package region

import (
	"sort"
	"sync"

	"github.com/matzehuels/microprint/pkg/errors"
)

// Viewport tracks which regions are attached to the screen.
//
// It stands in for the document a browser region lives in: the browsing UI
// mounts the regions it shows and unmounts them when they leave the screen.
// A region bound to a viewport is only available while mounted.
type Viewport struct {
	mu      sync.RWMutex
	mounted map[string]bool
}

// NewViewport creates an empty viewport.
func NewViewport() *Viewport {
	return &Viewport{mounted: make(map[string]bool)}
}

// Mount attaches the region with the given id.
func (v *Viewport) Mount(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.mounted[id] = true
}

// Unmount detaches the region with the given id. Unmounting an unknown id
// is a no-op.
func (v *Viewport) Unmount(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.mounted, id)
}

// Attached reports whether id is currently mounted.
func (v *Viewport) Attached(id string) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.mounted[id]
}

// Mounted returns the ids of all mounted regions in sorted order.
func (v *Viewport) Mounted() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	ids := make([]string, 0, len(v.mounted))
	for id := range v.mounted {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (v *Viewport) check(id string) error {
	if v != nil && !v.Attached(id) {
		return errors.New(errors.ErrCodeRegionUnavailable, "region %q is not attached", id)
	}
	return nil
}
