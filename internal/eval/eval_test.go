package eval

import (
	"testing"

	"github.com/kestrelchess/kestrel/internal/board"
)

func TestEvaluateStartingPositionIsSymmetric(t *testing.T) {
	e := NewEvaluator()
	s := board.StartingState()
	white := e.Evaluate(s, board.White)
	black := e.Evaluate(s, board.Black)
	if white != black {
		t.Errorf("starting position must score identically for both colors, got white=%d black=%d", white, black)
	}
}

func TestEvaluateFavorsExtraQueen(t *testing.T) {
	e := NewEvaluator()
	placement := map[board.Square]board.Piece{
		board.E1: board.WhiteKing,
		board.E8: board.BlackKing,
		board.D1: board.WhiteQueen,
	}
	s := board.State{
		Board:     board.NewBoardFromPieces(placement),
		Turn:      board.White,
		EnPassant: board.NoSquare,
		Clock:     board.Clock{FullMoveNumber: 1},
	}
	if e.Evaluate(s, board.White) <= 0 {
		t.Errorf("a lone extra queen must score positively for its owner")
	}
	if e.Evaluate(s, board.Black) >= 0 {
		t.Errorf("a lone extra queen must score negatively for the opponent")
	}
}

func TestEstimatePrefersWinningCaptureOverQuiet(t *testing.T) {
	e := NewEvaluator()
	s := board.StartingState()
	moves := board.GenerateLegalMoves(s)
	var quiet, capture board.Move
	placement := map[board.Square]board.Piece{
		board.E1: board.WhiteKing,
		board.E8: board.BlackKing,
		board.D4: board.WhiteQueen,
		board.D5: board.BlackPawn,
	}
	capState := board.State{
		Board:     board.NewBoardFromPieces(placement),
		Turn:      board.White,
		EnPassant: board.NoSquare,
		Clock:     board.Clock{FullMoveNumber: 1},
	}
	for _, r := range board.GenerateLegalMoves(capState) {
		if r.Move.IsCapture() {
			capture = r.Move
			break
		}
	}
	quiet = moves[0].Move
	if e.Estimate(capState, capture) <= e.Estimate(s, quiet) {
		t.Errorf("capturing a pawn with the queen must score higher than an arbitrary quiet opening move")
	}
}
