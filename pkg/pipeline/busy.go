package pipeline

import (
	"sort"
	"sync"
)

// Busy is the set of panels with an export in progress. The zero value is
// ready to use and it is safe for concurrent use.
type Busy struct {
	mu  sync.Mutex
	ids map[string]bool
}

// TryAcquire marks id busy. It returns false if id already was.
func (b *Busy) TryAcquire(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ids[id] {
		return false
	}
	if b.ids == nil {
		b.ids = make(map[string]bool)
	}
	b.ids[id] = true
	return true
}

// Release clears the busy flag of id.
func (b *Busy) Release(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.ids, id)
}

// Active reports whether id is busy.
func (b *Busy) Active(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ids[id]
}

// IDs returns the busy panels in sorted order.
func (b *Busy) IDs() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.ids))
	for id := range b.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
