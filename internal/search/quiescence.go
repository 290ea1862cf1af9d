package search

import (
	"sort"

	"github.com/kestrelchess/kestrel/internal/board"
	"github.com/kestrelchess/kestrel/internal/eval"
)

// quiescence extends search along capture and promotion lines past the
// nominal depth limit, to avoid misjudging a position where the last move
// searched was a capture (spec.md §4.9). It has no depth limit of its own:
// the line runs dry once no captures remain or the stand-pat score fails
// high.
func (w *worker) quiescence(s board.State, alpha, beta eval.Evaluation, ply int) eval.Evaluation {
	w.nodes++
	if w.shouldStop() {
		return alpha
	}

	moves := board.GenerateLegalMoves(s)
	if len(moves) == 0 {
		return w.evaluator.Evaluate(s, s.Turn)
	}

	standPat := w.evaluator.Evaluate(s, s.Turn)

	var captures []board.MoveResult
	for _, m := range moves {
		if m.Move.IsCapture() || m.Move.IsPromotion() {
			captures = append(captures, m)
		}
	}
	if len(captures) == 0 {
		// Every legal reply is quiet: nothing to extend into, return the
		// position's static score unconditionally (spec.md §4.9).
		return standPat
	}

	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	sort.Slice(captures, func(i, j int) bool {
		return mvvLVA(captures[i].Move) > mvvLVA(captures[j].Move)
	})

	for _, c := range captures {
		score := -w.quiescence(c.State, -beta, -alpha, ply+1)
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

// mvvLVA scores a capture by most-valuable-victim, least-valuable-attacker
// — the cheap ordering heuristic quiescence uses to try its best captures
// first (spec.md §4.9's quiescence description).
func mvvLVA(m board.Move) int {
	if !m.IsCapture() {
		return 0
	}
	return m.Captured().Value()*16 - m.Piece().Value()
}
