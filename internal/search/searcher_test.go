package search

import (
	"testing"
	"time"

	"github.com/kestrelchess/kestrel/internal/eval"
	"github.com/kestrelchess/kestrel/internal/notation"
)

func TestAnalyzeFindsMateInOne(t *testing.T) {
	s, err := notation.ParseFEN("k7/8/1K6/8/8/8/8/7R w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	join, control, events := Analyze(s, 1, eval.NewEvaluator(), 2, nil, nil)
	defer close(control)

	go func() {
		for range events {
		}
	}()

	select {
	case result := <-join:
		if result.Evaluation <= eval.Evaluation(9000) {
			t.Errorf("expected a near-mate evaluation, got %d", result.Evaluation)
		}
		if result.Artifact.BestMove.String() != "h1h8" {
			t.Errorf("expected mating move h1h8, got %s", result.Artifact.BestMove.String())
		}
	case <-time.After(10 * time.Second):
		t.Fatal("analyze did not complete in time")
	}
}

// TestAnalyzeFindsForcedMateInThree exercises spec.md §8's named "Forced
// mate in 3" scenario: at depth 4 the search must pick the bishop check
// c4-b5 (a quiet move onto the empty b5 square) that starts the forced
// mate against the black king on e8.
func TestAnalyzeFindsForcedMateInThree(t *testing.T) {
	s, err := notation.ParseFEN("r3k2r/ppp2Npp/1b5n/4p2b/2B1P2q/BQP2P2/P5PP/RN5K w kq - 1 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	join, control, events := Analyze(s, 1, eval.NewEvaluator(), 4, nil, nil)
	defer close(control)

	go func() {
		for range events {
		}
	}()

	select {
	case result := <-join:
		if result.Evaluation <= eval.Evaluation(9000) {
			t.Errorf("expected a mate-scored evaluation, got %d", result.Evaluation)
		}
		if result.Artifact.BestMove.String() != "c4b5" {
			t.Errorf("expected mating try c4b5, got %s", result.Artifact.BestMove.String())
		}
	case <-time.After(30 * time.Second):
		t.Fatal("analyze did not complete in time")
	}
}

// TestAnalyzeAvoidsRepetitionInWinningPosition exercises spec.md §8's named
// "Repetition avoidance in winning position" scenario: with the
// state-history already seeded with the position that would recur after
// the otherwise-immediate mating move Rd3d1, the search must steer away
// from that move (the StateHistory hash-match rule would score it as a
// draw, not a mate) while still reporting a winning evaluation.
func TestAnalyzeAvoidsRepetitionInWinningPosition(t *testing.T) {
	s, err := notation.ParseFEN("8/8/8/8/8/k2r4/8/K7 b - - 4 3")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	priorSeen, err := notation.ParseFEN("8/8/8/8/8/k7/8/K2r4 w - - 5 4")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	history := NewStateHistory()
	history.Push(priorSeen.Hash())

	join, control, events := Analyze(s, 1, eval.NewEvaluator(), 4, nil, history)
	defer close(control)

	go func() {
		for range events {
		}
	}()

	select {
	case result := <-join:
		if result.Artifact.BestMove.String() == "d3d1" {
			t.Errorf("expected search to avoid the repetition-triggering d3d1, got it as best move")
		}
		if result.Evaluation <= 0 {
			t.Errorf("expected a winning evaluation despite avoiding the repeated line, got %d", result.Evaluation)
		}
	case <-time.After(30 * time.Second):
		t.Fatal("analyze did not complete in time")
	}
}
