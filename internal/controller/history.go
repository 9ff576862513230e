package controller

import "sync"

// defaultHistorySize is the default capacity of the state history ring.
const defaultHistorySize = 64

// stateHistory is a thread-safe circular buffer of state snapshots. It lets
// collaborators that attach late (a status view, a debug dump) see how the
// current state was reached without the controller holding every transition
// forever.
type stateHistory struct {
	mu       sync.RWMutex
	entries  []AuthState
	capacity int
	head     int  // Index where the next entry will be written
	count    int  // Number of entries currently in the buffer
	full     bool // Whether the buffer has wrapped around
}

// newStateHistory creates a history ring with the specified capacity.
// If capacity is 0 or negative, defaultHistorySize is used.
func newStateHistory(capacity int) *stateHistory {
	if capacity <= 0 {
		capacity = defaultHistorySize
	}
	return &stateHistory{
		entries:  make([]AuthState, capacity),
		capacity: capacity,
	}
}

// record appends a snapshot, overwriting the oldest entry once full.
func (h *stateHistory) record(state AuthState) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries[h.head] = state
	h.head = (h.head + 1) % h.capacity

	if h.count < h.capacity {
		h.count++
	} else {
		h.full = true
	}
}

// snapshot returns a copy of the recorded states, oldest first. The returned
// slice can be freely modified by the caller.
func (h *stateHistory) snapshot() []AuthState {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.count == 0 {
		return []AuthState{}
	}

	result := make([]AuthState, h.count)
	if h.full {
		// Buffer has wrapped; oldest entry is at head position.
		copied := copy(result, h.entries[h.head:])
		copy(result[copied:], h.entries[:h.head])
	} else {
		copy(result, h.entries[:h.count])
	}
	return result
}

// History returns the state transitions published so far, oldest first.
func (c *Controller) History() []AuthState {
	return c.history.snapshot()
}
