package sim

import "github.com/san-kum/quadsim/internal/quad"

// Entry is one sampled (simulation time, state snapshot) pair.
type Entry struct {
	Time  float64
	State quad.State
}

// History is a fixed-capacity ring buffer of sampled states. Push and
// eviction are O(1); when full, the oldest entry is overwritten.
type History struct {
	buf  []Entry
	head int // index of the oldest entry
	n    int
}

// NewHistory returns an empty history holding at most capacity entries.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{buf: make([]Entry, capacity)}
}

// Push appends an entry, evicting the oldest when full.
func (h *History) Push(e Entry) {
	if h.n < len(h.buf) {
		h.buf[(h.head+h.n)%len(h.buf)] = e
		h.n++
		return
	}
	h.buf[h.head] = e
	h.head = (h.head + 1) % len(h.buf)
}

// Len returns the number of stored entries.
func (h *History) Len() int { return h.n }

// Cap returns the capacity.
func (h *History) Cap() int { return len(h.buf) }

// Entries returns the stored entries oldest first, as a fresh slice.
func (h *History) Entries() []Entry {
	out := make([]Entry, h.n)
	for i := 0; i < h.n; i++ {
		out[i] = h.buf[(h.head+i)%len(h.buf)]
	}
	return out
}

// Last returns the most recent n entries, oldest first. It returns all
// entries when n exceeds the current length.
func (h *History) Last(n int) []Entry {
	if n > h.n {
		n = h.n
	}
	out := make([]Entry, n)
	start := h.n - n
	for i := 0; i < n; i++ {
		out[i] = h.buf[(h.head+start+i)%len(h.buf)]
	}
	return out
}

// Clear discards all entries without reallocating.
func (h *History) Clear() {
	h.head = 0
	h.n = 0
}
