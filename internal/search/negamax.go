package search

import (
	"github.com/kestrelchess/kestrel/internal/board"
	"github.com/kestrelchess/kestrel/internal/eval"
)

// negamax is the recursive alpha-beta search. extensionBudget is how many
// more plies of check extension remain available on this line (spec.md
// §4.9: the pre-check/main-loop/quiescence algorithm, max 16 ply total
// extension).
func (w *worker) negamax(s board.State, depth int, alpha, beta eval.Evaluation, ply, extensionBudget int) eval.Evaluation {
	if w.shouldStop() {
		return alpha
	}

	hash := s.Hash()
	if ply > 0 && w.history.Contains(hash) {
		return eval.Even
	}

	ttEntry, ttHit := w.tt.Probe(hash)
	if ttHit && ttEntry.Depth >= depth {
		switch ttEntry.Bound {
		case BoundExact:
			return ttEntry.Eval
		case BoundLower:
			if ttEntry.Eval > alpha {
				alpha = ttEntry.Eval
			}
		case BoundUpper:
			if ttEntry.Eval < beta {
				beta = ttEntry.Eval
			}
		}
		if alpha >= beta {
			return ttEntry.Eval
		}
	}

	if depth <= 0 {
		return w.quiescence(s, alpha, beta, ply)
	}

	moves := board.GenerateLegalMoves(s)
	if len(moves) == 0 {
		return w.evaluator.Evaluate(s, s.Turn)
	}

	priority := board.NoMove
	if ttHit {
		priority = ttEntry.Move
	}
	ordered := w.orderRoot(s, moves, priority)

	w.history.Push(hash)
	defer w.history.Pop()

	best := ordered[len(ordered)-1].Move
	bestEval := eval.NegInf
	bound := BoundUpper

	for i := len(ordered) - 1; i >= 0; i-- {
		r := ordered[i]
		if w.shouldStop() {
			break
		}
		extension := 0
		if extensionBudget > 0 && r.State.Board.IsCheck(r.State.Turn) {
			extension = 1
		}
		score := -w.negamax(r.State, depth-1+extension, -beta, -alpha, ply+1, extensionBudget-extension)
		if score > bestEval {
			bestEval = score
			best = r.Move
		}
		if score > alpha {
			alpha = score
			bound = BoundExact
		}
		if alpha >= beta {
			// Fail-hard cutoff (spec.md §4.9): store and return beta itself,
			// not the (tighter, but unproven) child-derived score.
			w.tt.Store(hash, depth, beta, BoundLower, best)
			return beta
		}
	}

	w.tt.Store(hash, depth, bestEval, bound, best)
	return bestEval
}
