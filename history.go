package vgnav

import "sync"

// History is the host navigation primitive: the browser's session history
// or anything that behaves like it.  It is the only thing a Dispatcher uses
// to change the visible address.
type History interface {
	// Push adds a new entry with the given path and query to the navigation stack.
	Push(pathEtc string) error
	// Replace overwrites the current entry of the navigation stack.
	Replace(pathEtc string) error
	// OnChange registers listener to be called with the new path whenever
	// the position in the stack changes outside of Push and Replace
	// (back/forward).  The returned function removes the listener and may be
	// called any number of times.
	OnChange(listener func(pathEtc string)) (unsubscribe func())
	// CurrentPath returns the path and query of the current entry.
	CurrentPath() string
}

// MemoryHistory is a History kept in memory.  It is useful for tests and for
// running navigation logic outside of a browser.  Back, Forward and Go move
// through the stack and notify listeners the way a browser's back and forward
// buttons do.
type MemoryHistory struct {
	mu       sync.Mutex
	entries  []string
	index    int
	pushes   int
	replaces int

	listeners subscriptions[func(string)]
}

// NewMemoryHistory returns a MemoryHistory with a single entry for initial.
func NewMemoryHistory(initial string) *MemoryHistory {
	if initial == "" {
		initial = "/"
	}
	return &MemoryHistory{entries: []string{initial}}
}

// Push implements History.  Entries after the current one are discarded.
func (h *MemoryHistory) Push(pathEtc string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ensure()
	h.entries = append(h.entries[:h.index+1], pathEtc)
	h.index++
	h.pushes++
	return nil
}

// Replace implements History.
func (h *MemoryHistory) Replace(pathEtc string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ensure()
	h.entries[h.index] = pathEtc
	h.replaces++
	return nil
}

// OnChange implements History.
func (h *MemoryHistory) OnChange(listener func(pathEtc string)) (unsubscribe func()) {
	return h.listeners.add(listener)
}

// CurrentPath implements History.
func (h *MemoryHistory) CurrentPath() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ensure()
	return h.entries[h.index]
}

// Back moves one entry back, reporting false if already at the start.
func (h *MemoryHistory) Back() bool { return h.Go(-1) }

// Forward moves one entry forward, reporting false if already at the end.
func (h *MemoryHistory) Forward() bool { return h.Go(1) }

// Go moves n entries through the stack (negative is back) and notifies the
// listeners.  It reports false and does nothing if the target is out of range.
func (h *MemoryHistory) Go(n int) bool {

	h.mu.Lock()
	h.ensure()
	target := h.index + n
	if n == 0 || target < 0 || target >= len(h.entries) {
		h.mu.Unlock()
		return false
	}
	h.index = target
	p := h.entries[target]
	h.mu.Unlock()

	for _, l := range h.listeners.snapshot() {
		l(p)
	}

	return true
}

// Entries returns a copy of the navigation stack.
func (h *MemoryHistory) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ensure()
	return append([]string(nil), h.entries...)
}

// Index returns the position of the current entry.
func (h *MemoryHistory) Index() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.index
}

// Len returns the number of entries in the stack.
func (h *MemoryHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ensure()
	return len(h.entries)
}

// Pushes returns how many times Push was called.
func (h *MemoryHistory) Pushes() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pushes
}

// Replaces returns how many times Replace was called.
func (h *MemoryHistory) Replaces() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.replaces
}

// ensure makes the zero value usable, starting at "/".
func (h *MemoryHistory) ensure() {
	if len(h.entries) == 0 {
		h.entries = []string{"/"}
		h.index = 0
	}
}
