package search

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/kestrelchess/kestrel/internal/board"
	"github.com/kestrelchess/kestrel/internal/eval"
)

// maxLazySMPThreads caps how many goroutines a single iteration ever
// spawns, regardless of GOMAXPROCS (spec.md §4.9, §5).
const maxLazySMPThreads = 32

// Artifact carries state worth handing to the next analyze() call: the
// warmed transposition table and the previous best move, so a follow-up
// search (e.g. after the opponent replies) doesn't start cold (spec.md
// §4.9).
type Artifact struct {
	TT       *TranspositionTable
	BestMove board.Move
}

// Result is the final outcome delivered on the join handle when an
// analyze() run completes or is stopped.
type Result struct {
	Artifact   Artifact
	Line       []board.Move
	Evaluation eval.Evaluation
}

// Analyze runs iterative-deepening lazy-SMP search on s up to maxDepth,
// returning a join handle (closed with the final Result once the search
// ends), a control channel for Stop requests, and an event stream of
// Progress/BestMove/Warning notifications (spec.md §4.9). rootHistory, if
// non-nil, seeds every worker's repetition history with the actual game
// moves played to reach s — the caller (the UCI layer) is expected to
// rebuild it before each call, since the core treats history as an
// immutable snapshot captured at search start (spec.md §9).
func Analyze(s board.State, rngSeed uint64, evaluator eval.Evaluator, maxDepth int, prior *Artifact, rootHistory *StateHistory) (<-chan Result, chan<- Control, <-chan Event) {
	join := make(chan Result, 1)
	control := make(chan Control, 1)
	events := make(chan Event, 64)

	var tt *TranspositionTable
	var bestSoFar board.Move = board.NoMove
	if prior != nil && prior.TT != nil {
		tt = prior.TT
		bestSoFar = prior.BestMove
	} else {
		tt = NewTranspositionTable(1024)
	}

	stop := &atomic.Bool{}
	// Caller should close control once the search is no longer needed
	// (e.g. right after sending Stop) so this goroutine doesn't outlive it.
	go func() {
		for c := range control {
			if _, ok := c.(Stop); ok {
				stop.Store(true)
			}
		}
	}()

	go func() {
		defer close(join)
		defer close(events)

		var totalNodes uint64
		var line []board.Move
		var finalEval eval.Evaluation
		lastEmittedEval := eval.NegInf

		for depth := 1; depth <= maxDepth && !stop.Load(); depth++ {
			threads := lazySMPThreadCount(depth)
			results := make([]struct {
				move    board.Move
				eval    eval.Evaluation
				nodes   uint64
				stopped bool
			}, threads)

			var wg sync.WaitGroup
			for t := 0; t < threads; t++ {
				wg.Add(1)
				go func(t int) {
					defer wg.Done()
					taskDepth := depth
					priority := board.NoMove
					if t == 0 {
						priority = bestSoFar
						taskDepth = depth + 1
						if taskDepth > maxDepth {
							taskDepth = depth
						}
					} else if t%2 == 1 {
						taskDepth = depth + 1
						if taskDepth > maxDepth {
							taskDepth = depth
						}
					}
					var history *StateHistory
					if rootHistory != nil {
						history = rootHistory.Clone()
					} else {
						history = NewStateHistory()
					}
					w := newWorker(t, tt, history, evaluator, stop, rngSeed)
					move, score, stopped := w.searchRoot(s, taskDepth, priority)
					results[t].move = move
					results[t].eval = score
					results[t].nodes = w.nodes
					results[t].stopped = stopped
				}(t)
			}
			wg.Wait()

			interrupted := false
			best := results[0]
			for _, r := range results[1:] {
				if r.eval > best.eval {
					best = r
				}
				totalNodes += r.nodes
				if r.stopped {
					interrupted = true
				}
			}
			totalNodes += results[0].nodes
			if results[0].stopped {
				interrupted = true
			}
			bestSoFar = best.move
			finalEval = best.eval
			line = tt.PrincipalVariation(s, maxDepth)

			// A cancelled-mid-iteration result is only reported if it actually
			// improves on the last value we emitted (spec.md §4.9) — a
			// truncated iteration's score is not trustworthy enough to overwrite
			// a better prior iteration's BestMove otherwise.
			if !interrupted || finalEval > lastEmittedEval {
				saturation := tt.Saturation()
				events <- Progress{Depth: depth, NodesSearched: totalNodes, TranspositionSaturation: saturation}
				events <- BestMove{Line: line, Evaluation: finalEval}
				if saturation > 0.5 {
					events <- Warning{Message: "transposition table saturation above 0.5", Kind: WarningTranspositionSaturation}
				}
				lastEmittedEval = finalEval
			}
			if finalEval.IsTerminal() {
				break
			}
		}

		join <- Result{
			Artifact:   Artifact{TT: tt, BestMove: bestSoFar},
			Line:       line,
			Evaluation: finalEval,
		}
	}()

	return join, control, events
}

// lazySMPThreadCount implements spec.md §4.9's thread-count rule: shallow
// iterations aren't worth parallelizing, since goroutine spin-up and
// shared-TT contention dominate at low node counts.
func lazySMPThreadCount(depth int) int {
	if depth < 3 {
		return 1
	}
	n := runtime.GOMAXPROCS(0)
	if n > maxLazySMPThreads {
		n = maxLazySMPThreads
	}
	if n < 1 {
		n = 1
	}
	return n
}
