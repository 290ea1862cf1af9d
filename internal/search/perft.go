package search

import "github.com/kestrelchess/kestrel/internal/board"

// RootResult is one root move's subtree count, as reported by Perft's
// per-root-move callback (spec.md §4.10).
type RootResult struct {
	Move  board.Move
	State board.State
	Count uint64
}

// Perft enumerates every legal line to depth plies below s and returns the
// total leaf count, invoking onRoot once per root move with that move's
// own subtree count — used both for move-generator verification and for
// the interactive harness's .perft command (spec.md §4.10, §6).
func Perft(s board.State, depth int, onRoot func(RootResult)) uint64 {
	if depth <= 0 {
		return 1
	}

	moves := board.GenerateLegalMoves(s)
	var total uint64
	for _, r := range moves {
		count := perftCount(r.State, depth-1)
		total += count
		if onRoot != nil {
			onRoot(RootResult{Move: r.Move, State: r.State, Count: count})
		}
	}
	return total
}

// perftCount recurses without the per-root callback, since only the
// top-level split needs per-move attribution.
func perftCount(s board.State, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := board.GenerateLegalMoves(s)
	if depth == 1 {
		return uint64(len(moves))
	}
	var total uint64
	for _, r := range moves {
		total += perftCount(r.State, depth-1)
	}
	return total
}
