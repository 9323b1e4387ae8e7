package route

import "sync"

// Navigator receives navigation commands
type Navigator interface {
	Navigate(path string)
}

// History is an in-memory navigation stack
type History struct {
	mu      sync.Mutex
	entries []string
}

// NewHistory creates a history positioned at start
func NewHistory(start string) *History {
	return &History{entries: []string{start}}
}

// Navigate pushes path
func (h *History) Navigate(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, path)
}

// Back pops the current entry and returns the new current path.
// The first entry is never popped.
func (h *History) Back() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.entries) > 1 {
		h.entries = h.entries[:len(h.entries)-1]
	}
	return h.entries[len(h.entries)-1]
}

// Current returns the current path
func (h *History) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.entries) == 0 {
		return ""
	}
	return h.entries[len(h.entries)-1]
}

// Entries returns every visited path in order
func (h *History) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}
