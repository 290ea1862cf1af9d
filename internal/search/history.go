package search

import "github.com/kestrelchess/kestrel/internal/board"

// StateHistory tracks the hashes of positions visited on the path from the
// search root to the current node, so the searcher can recognize a
// one-fold repetition as a draw (spec.md §4.9: "If current_depth > 0 and
// hash appears in StateHistory: return EVEN").
type StateHistory struct {
	hashes []board.Hash
}

// NewStateHistory returns an empty history.
func NewStateHistory() *StateHistory {
	return &StateHistory{hashes: make([]board.Hash, 0, 64)}
}

// Push records hash as visited.
func (h *StateHistory) Push(hash board.Hash) {
	h.hashes = append(h.hashes, hash)
}

// Pop removes the most recently pushed hash, restoring the history to its
// state before the matching Push.
func (h *StateHistory) Pop() {
	h.hashes = h.hashes[:len(h.hashes)-1]
}

// Contains reports whether hash was already visited on this path.
func (h *StateHistory) Contains(hash board.Hash) bool {
	for _, v := range h.hashes {
		if v == hash {
			return true
		}
	}
	return false
}

// Clone returns an independent copy, used to give each lazy-SMP worker its
// own path history seeded from the same root.
func (h *StateHistory) Clone() *StateHistory {
	c := &StateHistory{hashes: make([]board.Hash, len(h.hashes), cap(h.hashes))}
	copy(c.hashes, h.hashes)
	return c
}
