package search

import (
	"testing"

	"github.com/kestrelchess/kestrel/internal/board"
	"github.com/kestrelchess/kestrel/internal/notation"
)

// Known perft node counts from the starting position (standard reference
// values used to validate move generators).
func TestPerftStartingPosition(t *testing.T) {
	cases := []struct {
		depth int
		want  uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
	}

	for _, c := range cases {
		s := board.StartingState()
		got := Perft(s, c.depth, nil)
		if got != c.want {
			t.Errorf("perft(%d) = %d, want %d", c.depth, got, c.want)
		}
	}
}

// TestPerftStartingPositionDeepSeeds exercises spec.md §8's deeper seed
// depths, which is where castling, en passant, and promotion move-gen bugs
// actually tend to surface — shallower depths can pass with those broken.
func TestPerftStartingPositionDeepSeeds(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping deep perft in short mode")
	}
	cases := []struct {
		depth int
		want  uint64
	}{
		{4, 197281},
		{5, 4865609},
		{6, 119060324},
	}

	for _, c := range cases {
		s := board.StartingState()
		got := Perft(s, c.depth, nil)
		if got != c.want {
			t.Errorf("perft(%d) = %d, want %d", c.depth, got, c.want)
		}
	}
}

// TestPerftSecondSeedPosition exercises spec.md §8's second seed FEN, a
// position reached mid-game with a black knight on f2 attacking White's
// queen and rook, a pending promotion on d7, and castling rights for White
// only.
func TestPerftSecondSeedPosition(t *testing.T) {
	const fen = "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8"

	cases := []struct {
		depth int
		want  uint64
	}{
		{3, 62379},
	}
	if !testing.Short() {
		cases = append(cases, struct {
			depth int
			want  uint64
		}{5, 89941194})
	}

	for _, c := range cases {
		s, err := notation.ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN: %v", err)
		}
		got := Perft(s, c.depth, nil)
		if got != c.want {
			t.Errorf("perft(%d) = %d, want %d", c.depth, got, c.want)
		}
	}
}

func TestPerftRootSplitSumsToTotal(t *testing.T) {
	s := board.StartingState()
	var sum uint64
	var rootMoves int
	total := Perft(s, 3, func(r RootResult) {
		sum += r.Count
		rootMoves++
	})
	if sum != total {
		t.Errorf("root split sum %d != total %d", sum, total)
	}
	if rootMoves != 20 {
		t.Errorf("expected 20 root moves from starting position, got %d", rootMoves)
	}
}
