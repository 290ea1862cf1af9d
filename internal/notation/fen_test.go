package notation

import (
	"testing"

	"github.com/kestrelchess/kestrel/internal/board"
)

func TestParseFENStartingPosition(t *testing.T) {
	s, err := ParseFEN(board.StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if s.Turn != board.White {
		t.Errorf("expected white to move")
	}
	if !s.Castle[board.White].Kingside || !s.Castle[board.Black].Queenside {
		t.Errorf("expected full castling rights")
	}
	if s.Board.PieceAt(board.E1) != board.WhiteKing {
		t.Errorf("expected white king on e1")
	}
}

func TestFormatFENRoundTrips(t *testing.T) {
	s, err := ParseFEN(board.StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	got := FormatFEN(s)
	if got != board.StartFEN {
		t.Errorf("round trip mismatch:\n got  %q\n want %q", got, board.StartFEN)
	}
}

func TestParseFENRejectsMalformedPlacement(t *testing.T) {
	_, err := ParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1")
	if err == nil {
		t.Fatalf("expected an error for a FEN with only 7 ranks")
	}
}

func TestParseFENEnPassantTarget(t *testing.T) {
	s, err := ParseFEN("rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if s.EnPassant != board.D6 {
		t.Errorf("expected en passant target d6, got %v", s.EnPassant)
	}
}
