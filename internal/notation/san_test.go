package notation

import (
	"testing"

	"github.com/kestrelchess/kestrel/internal/board"
)

func TestParseSANResolvesAgainstLegalMoves(t *testing.T) {
	s := board.StartingState()
	q, err := ParseSAN("e4")
	if err != nil {
		t.Fatalf("ParseSAN: %v", err)
	}
	result, ok := board.GenerateLegalMoves(s).Find(q)
	if !ok {
		t.Fatalf("expected e4 to resolve to a legal move")
	}
	if result.Move.Destination() != board.E4 || result.Move.Piece() != board.Pawn {
		t.Errorf("expected a pawn move to e4, got %v", result.Move)
	}
}

func TestFormatSANDisambiguatesKnights(t *testing.T) {
	placement := map[board.Square]board.Piece{
		board.E1: board.WhiteKing,
		board.E8: board.BlackKing,
		board.B1: board.WhiteKnight,
		board.D1: board.WhiteKnight,
	}
	s := board.State{
		Board:     board.NewBoardFromPieces(placement),
		Turn:      board.White,
		EnPassant: board.NoSquare,
		Clock:     board.Clock{FullMoveNumber: 1},
	}
	toC3FromB1, toC3FromD1 := board.NoMove, board.NoMove
	for _, r := range board.GenerateLegalMoves(s) {
		if r.Move.Piece() == board.Knight && r.Move.Destination() == board.C3 {
			if r.Move.Origin() == board.B1 {
				toC3FromB1 = r.Move
			} else {
				toC3FromD1 = r.Move
			}
		}
	}
	if toC3FromB1 == board.NoMove || toC3FromD1 == board.NoMove {
		t.Fatalf("expected both knights to reach c3")
	}
	if FormatSAN(s, toC3FromB1) != "Nbc3" {
		t.Errorf("expected Nbc3, got %s", FormatSAN(s, toC3FromB1))
	}
	if FormatSAN(s, toC3FromD1) != "Ndc3" {
		t.Errorf("expected Ndc3, got %s", FormatSAN(s, toC3FromD1))
	}
}

func TestParseSANCastle(t *testing.T) {
	q, err := ParseSAN("O-O")
	if err != nil {
		t.Fatalf("ParseSAN: %v", err)
	}
	if q.CastleSide == nil || *q.CastleSide != board.CastleKingside {
		t.Errorf("expected kingside castle query")
	}
}
