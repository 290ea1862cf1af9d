package board

import "testing"

func TestStartingStateMoveCount(t *testing.T) {
	s := StartingState()
	moves := GenerateLegalMoves(s)
	if len(moves) != 20 {
		t.Errorf("expected 20 legal moves from the starting position, got %d", len(moves))
	}
}

func TestFoolsMateIsCheckmate(t *testing.T) {
	s := StartingState()
	queries := []MoveQuery{
		longAlgebraicQuery(t, "f2f3"),
		longAlgebraicQuery(t, "e7e5"),
		longAlgebraicQuery(t, "g2g4"),
		longAlgebraicQuery(t, "d8h4"),
	}
	final, err := s.ApplyMany(queries)
	if err != nil {
		t.Fatalf("ApplyMany: %v", err)
	}
	if !IsCheckmate(final) {
		t.Errorf("expected fool's mate to be checkmate")
	}
	if IsStalemate(final) {
		t.Errorf("checkmate must not also report as stalemate")
	}
}

func TestInsufficientMaterialKingVsKing(t *testing.T) {
	placement := map[Square]Piece{
		E1: WhiteKing,
		E8: BlackKing,
	}
	s := State{
		Board:     NewBoardFromPieces(placement),
		Turn:      White,
		EnPassant: NoSquare,
		Clock:     Clock{FullMoveNumber: 1},
	}
	if !IsInsufficientMaterial(s) {
		t.Errorf("king vs king must be insufficient material")
	}
}

func TestHashIsStableUnderTransposition(t *testing.T) {
	s := StartingState()
	viaKnights, err := s.ApplyMany([]MoveQuery{
		longAlgebraicQuery(t, "g1f3"),
		longAlgebraicQuery(t, "g8f6"),
		longAlgebraicQuery(t, "f3g1"),
		longAlgebraicQuery(t, "f6g8"),
	})
	if err != nil {
		t.Fatalf("ApplyMany: %v", err)
	}
	if viaKnights.Hash() != s.Hash() {
		t.Errorf("transposing back to the starting placement must hash identically")
	}
}

func TestEnPassantCapture(t *testing.T) {
	s := StartingState()
	mid, err := s.ApplyMany([]MoveQuery{
		longAlgebraicQuery(t, "e2e4"),
		longAlgebraicQuery(t, "a7a6"),
		longAlgebraicQuery(t, "e4e5"),
		longAlgebraicQuery(t, "d7d5"),
	})
	if err != nil {
		t.Fatalf("ApplyMany: %v", err)
	}
	if mid.EnPassant != D6 {
		t.Fatalf("expected en passant target d6, got %v", mid.EnPassant)
	}
	final, err := mid.ApplyMany([]MoveQuery{longAlgebraicQuery(t, "e5d6")})
	if err != nil {
		t.Fatalf("ApplyMany en passant capture: %v", err)
	}
	if final.Board.PieceAt(D5) != NoPiece {
		t.Errorf("captured pawn must be removed from d5")
	}
	if final.Board.PieceAt(D6) != WhitePawn {
		t.Errorf("capturing pawn must land on d6")
	}
}

func longAlgebraicQuery(t *testing.T, s string) MoveQuery {
	t.Helper()
	origin, err := ParseSquare(s[0:2])
	if err != nil {
		t.Fatalf("ParseSquare(%q): %v", s[0:2], err)
	}
	dest, err := ParseSquare(s[2:4])
	if err != nil {
		t.Fatalf("ParseSquare(%q): %v", s[2:4], err)
	}
	originRank, originFile := origin.Rank(), origin.File()
	destRank, destFile := dest.Rank(), dest.File()
	return MoveQuery{
		OriginRank: &originRank,
		OriginFile: &originFile,
		DestRank:   &destRank,
		DestFile:   &destFile,
	}
}
