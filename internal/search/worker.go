package search

import (
	"math/rand"
	"sync/atomic"

	"github.com/kestrelchess/kestrel/internal/board"
	"github.com/kestrelchess/kestrel/internal/eval"
)

// maxCheckExtension bounds how many extra plies a forcing line of checks
// may add to a single search, so a perpetual-check position can't stall
// iterative deepening indefinitely (spec.md §4.9: "max 16 ply total
// extension").
const maxCheckExtension = 16

// nodeCheckInterval is how often, in visited nodes, a worker polls its
// cancellation token — checking every node would make the atomic load a
// bottleneck under lazy-SMP contention (spec.md §4.9).
const nodeCheckInterval = 10_000

// worker carries the per-goroutine state of a single lazy-SMP search
// thread: its own move-ordering jitter source and path history, but the
// transposition table and cancellation token are shared across every
// worker searching the same root (spec.md §5).
type worker struct {
	id        int
	tt        *TranspositionTable
	history   *StateHistory
	evaluator eval.Evaluator
	stop      *atomic.Bool
	rng       *rand.Rand
	nodes     uint64
}

func newWorker(id int, tt *TranspositionTable, history *StateHistory, evaluator eval.Evaluator, stop *atomic.Bool, seed uint64) *worker {
	return &worker{
		id:        id,
		tt:        tt,
		history:   history,
		evaluator: evaluator,
		stop:      stop,
		rng:       rand.New(rand.NewSource(int64(seed) + int64(id))),
	}
}

func (w *worker) shouldStop() bool {
	w.nodes++
	if w.nodes%nodeCheckInterval == 0 {
		return w.stop.Load()
	}
	return false
}

// searchRoot runs one iterative-deepening iteration to targetDepth from s,
// returning the best move found, its evaluation, and whether the search
// was stopped before the iteration finished. priority, if not
// board.NoMove, is searched first — the coordinator passes the previous
// iteration's best move to worker 0 and NoMove to every other worker
// (spec.md §4.9's lazy-SMP task-assignment rule).
func (w *worker) searchRoot(s board.State, targetDepth int, priority board.Move) (board.Move, eval.Evaluation, bool) {
	moves := board.GenerateLegalMoves(s)
	if len(moves) == 0 {
		return board.NoMove, w.evaluator.Evaluate(s, s.Turn), false
	}

	ordered := w.orderRoot(s, moves, priority)

	alpha, beta := eval.NegInf, eval.PosInf
	best := ordered[len(ordered)-1].Move
	bestEval := eval.NegInf

	w.history.Push(s.Hash())
	defer w.history.Pop()

	for i := len(ordered) - 1; i >= 0; i-- {
		r := ordered[i]
		if w.shouldStop() {
			return best, bestEval, true
		}
		extension := 0
		if r.State.Board.IsCheck(r.State.Turn) {
			extension = 1
		}
		score := -w.negamax(r.State, targetDepth-1+extension, -beta, -alpha, 1, maxCheckExtension-extension)
		if score > bestEval {
			bestEval = score
			best = r.Move
		}
		if score > alpha {
			alpha = score
		}
	}

	w.tt.Store(s.Hash(), targetDepth, bestEval, BoundExact, best)
	return best, bestEval, w.shouldStop()
}

// orderRoot sorts a node's moves ascending by the cheap Estimate heuristic
// plus a small jitter, so parallel lazy-SMP workers explore the tree in
// slightly different orders (spec.md §4.9: "estimate+jitter [-10,+10]
// sort"). priority, if present, is placed last, so callers that iterate
// from the end search it first. It is used at the root and at every
// interior node.
func (w *worker) orderRoot(s board.State, moves board.MoveSet, priority board.Move) board.MoveSet {
	ordered := make(board.MoveSet, len(moves))
	copy(ordered, moves)

	scores := make(map[board.Move]float64, len(ordered))
	for _, r := range ordered {
		jitter := float64(w.rng.Intn(21) - 10)
		scores[r.Move] = float64(w.evaluator.Estimate(s, r.Move)) + jitter
	}

	sortMoveResults(ordered, func(a, b board.Move) bool {
		if priority != board.NoMove {
			if a == priority {
				return false
			}
			if b == priority {
				return true
			}
		}
		return scores[a] < scores[b]
	})
	return ordered
}

// sortMoveResults insertion-sorts ms ascending by less — small root move
// counts (at most a few dozen legal moves) make a simple insertion sort
// cheaper than pulling in sort.Slice's reflection overhead here.
func sortMoveResults(ms board.MoveSet, less func(a, b board.Move) bool) {
	for i := 1; i < len(ms); i++ {
		j := i
		for j > 0 && less(ms[j].Move, ms[j-1].Move) {
			ms[j], ms[j-1] = ms[j-1], ms[j]
			j--
		}
	}
}
