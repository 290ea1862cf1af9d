package board

import "fmt"

// CastleRights records whether a color may still castle kingside and/or
// queenside (spec.md §3).
type CastleRights struct {
	Kingside  bool
	Queenside bool
}

// Clock tracks the fifty-move-rule half-move counter and the full-move
// number (spec.md §3).
type Clock struct {
	HalfMoveClock  int
	FullMoveNumber int
}

// State is the full, immutable chess position: a Board plus turn, castling
// rights, en-passant target, and clocks. Every transition produces a new
// State via Apply — the engine clones state on every move rather than
// incrementally mutating it in place (spec.md §1 Non-goals, §3).
type State struct {
	Board      *Board
	Turn       Color
	Castle     [2]CastleRights
	EnPassant  Square // NoSquare if none
	Clock      Clock
}

// StartFEN is the FEN string for the standard starting position. FEN
// parsing itself lives in internal/notation, which depends on this
// package — StartingState below builds the position directly to avoid an
// import cycle.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// startingPlacement is the piece arrangement of the standard opening
// position, indexed by Square.
var startingPlacement = map[Square]Piece{
	A1: WhiteRook, B1: WhiteKnight, C1: WhiteBishop, D1: WhiteQueen,
	E1: WhiteKing, F1: WhiteBishop, G1: WhiteKnight, H1: WhiteRook,
	A2: WhitePawn, B2: WhitePawn, C2: WhitePawn, D2: WhitePawn,
	E2: WhitePawn, F2: WhitePawn, G2: WhitePawn, H2: WhitePawn,
	A7: BlackPawn, B7: BlackPawn, C7: BlackPawn, D7: BlackPawn,
	E7: BlackPawn, F7: BlackPawn, G7: BlackPawn, H7: BlackPawn,
	A8: BlackRook, B8: BlackKnight, C8: BlackBishop, D8: BlackQueen,
	E8: BlackKing, F8: BlackBishop, G8: BlackKnight, H8: BlackRook,
}

// StartingState returns the standard chess starting position.
func StartingState() State {
	return State{
		Board:     NewBoardFromPieces(startingPlacement),
		Turn:      White,
		Castle:    [2]CastleRights{White: {Kingside: true, Queenside: true}, Black: {Kingside: true, Queenside: true}},
		EnPassant: NoSquare,
		Clock:     Clock{HalfMoveClock: 0, FullMoveNumber: 1},
	}
}

// rookStartSquares gives each color's rook home squares, indexed
// [color][CastleKingside-or-Queenside adjusted to 0/1].
var rookStartSquares = [2][2]Square{
	White: {A1, H1}, // [queenside, kingside]
	Black: {A8, H8},
}

var rookPostCastleSquares = [2][2]Square{
	White: {D1, F1},
	Black: {D8, F8},
}

// Apply plays m against s and returns the resulting State (spec.md §4.5).
// s is never mutated.
func (s State) Apply(m Move) (State, error) {
	placement := s.Board.ToPieceMap()
	mover := m.Mover()
	origin, dest := m.Origin(), m.Destination()

	movingPiece := NewPiece(m.Piece(), mover)
	delete(placement, origin)

	if m.IsEnPassant() {
		if s.EnPassant == NoSquare {
			return State{}, ErrIllegalEnPassant
		}
		capturedSq, ok := dest.Offset(0, -mover.Forward()/8)
		if !ok {
			return State{}, ErrIllegalEnPassant
		}
		delete(placement, capturedSq)
	} else if m.Captured() != NoPieceType {
		delete(placement, dest)
	}

	if m.IsPromotion() {
		placement[dest] = NewPiece(m.Promotion(), mover)
	} else {
		placement[dest] = movingPiece
	}

	if m.IsCastle() {
		side := 0
		if m.Castles() == CastleKingside {
			side = 1
		}
		rookFrom := rookStartSquares[mover][side]
		rookTo := rookPostCastleSquares[mover][side]
		delete(placement, rookFrom)
		placement[rookTo] = NewPiece(Rook, mover)
	}

	newBoard := NewBoardFromPieces(placement)

	newCastle := s.Castle
	if m.Piece() == King {
		newCastle[mover] = CastleRights{}
	}
	if newBoard.PieceAt(rookStartSquares[White][0]) != WhiteRook {
		newCastle[White].Queenside = false
	}
	if newBoard.PieceAt(rookStartSquares[White][1]) != WhiteRook {
		newCastle[White].Kingside = false
	}
	if newBoard.PieceAt(rookStartSquares[Black][0]) != BlackRook {
		newCastle[Black].Queenside = false
	}
	if newBoard.PieceAt(rookStartSquares[Black][1]) != BlackRook {
		newCastle[Black].Kingside = false
	}

	var newEnPassant Square = NoSquare
	if m.IsDoublePawnPush() {
		if sq, ok := dest.Offset(0, -mover.Forward()/8); ok {
			newEnPassant = sq
		}
	}

	halfMove := s.Clock.HalfMoveClock + 1
	if m.IsCapture() || m.Piece() == Pawn {
		halfMove = 0
	}
	fullMove := s.Clock.FullMoveNumber
	if mover == Black {
		fullMove++
	}

	return State{
		Board:     newBoard,
		Turn:      mover.Other(),
		Castle:    newCastle,
		EnPassant: newEnPassant,
		Clock:     Clock{HalfMoveClock: halfMove, FullMoveNumber: fullMove},
	}, nil
}

// ApplyMany applies a sequence of MoveQuerys in order, regenerating legal
// moves at each step (spec.md §4.5). Fails with ErrUnknownMove or
// ErrAmbiguousMove as soon as a query doesn't resolve to exactly one legal
// move.
func (s State) ApplyMany(queries []MoveQuery) (State, error) {
	cur := s
	for _, q := range queries {
		legal := GenerateLegalMoves(cur)
		matches := legal.FindAll(q)
		switch len(matches) {
		case 0:
			return State{}, fmt.Errorf("%w: %v", ErrUnknownMove, q)
		case 1:
			cur = matches[0].State
		default:
			return State{}, fmt.Errorf("%w: %v matches %d moves", ErrAmbiguousMove, q, len(matches))
		}
	}
	return cur, nil
}
