package ui

// SelectionHistory keeps a bounded trail of recently selected item ids
// so the host can jump back with a single key.
type SelectionHistory struct {
	entries  []string
	capacity int
}

// NewSelectionHistory creates a history holding at most capacity entries.
func NewSelectionHistory(capacity int) *SelectionHistory {
	if capacity < 2 {
		capacity = 2
	}
	return &SelectionHistory{capacity: capacity}
}

// Record appends an id to the trail. Empty ids and immediate repeats of
// the current entry are ignored.
func (h *SelectionHistory) Record(id string) {
	if id == "" {
		return
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == id {
		return
	}
	h.entries = append(h.entries, id)
	if len(h.entries) > h.capacity {
		h.entries = h.entries[len(h.entries)-h.capacity:]
	}
}

// Back discards the current entry and returns the one before it, or ""
// when there is nowhere to go.
func (h *SelectionHistory) Back() string {
	if len(h.entries) < 2 {
		return ""
	}
	h.entries = h.entries[:len(h.entries)-1]
	return h.entries[len(h.entries)-1]
}

// Current returns the most recent entry without consuming it.
func (h *SelectionHistory) Current() string {
	if len(h.entries) == 0 {
		return ""
	}
	return h.entries[len(h.entries)-1]
}

// Len returns the number of recorded entries.
func (h *SelectionHistory) Len() int {
	return len(h.entries)
}

// Entries returns a copy of the trail, oldest first.
func (h *SelectionHistory) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}
