package search

import (
	"testing"

	"github.com/kestrelchess/kestrel/internal/board"
)

func TestStateHistoryPushPopContains(t *testing.T) {
	h := NewStateHistory()
	s := board.StartingState()
	hash := s.Hash()

	if h.Contains(hash) {
		t.Fatalf("empty history should not contain anything")
	}
	h.Push(hash)
	if !h.Contains(hash) {
		t.Fatalf("expected history to contain pushed hash")
	}
	h.Pop()
	if h.Contains(hash) {
		t.Fatalf("expected history to forget popped hash")
	}
}

func TestStateHistoryCloneIsIndependent(t *testing.T) {
	h := NewStateHistory()
	h.Push(board.Hash(1))
	clone := h.Clone()
	clone.Push(board.Hash(2))

	if h.Contains(board.Hash(2)) {
		t.Errorf("pushing to a clone must not affect the original")
	}
	if !clone.Contains(board.Hash(1)) || !clone.Contains(board.Hash(2)) {
		t.Errorf("clone should retain original entries plus its own")
	}
}
