package board

import "errors"

// Errors surfaced by State.Apply, ApplyMany, and the notation codecs
// (spec.md §7). None of these are ever panics — bad external input always
// comes back as one of these.
var (
	// ErrIllegalEnPassant is returned when a move claims the en-passant
	// flag but the state has no en-passant target square.
	ErrIllegalEnPassant = errors.New("board: illegal en passant")
	// ErrUnknownMove is returned by ApplyMany when a query matches zero
	// legal moves.
	ErrUnknownMove = errors.New("board: unknown move")
	// ErrAmbiguousMove is returned by ApplyMany when a query matches two or
	// more legal moves.
	ErrAmbiguousMove = errors.New("board: ambiguous move")
	// ErrInvalidFEN is returned by notation parsers for malformed input.
	ErrInvalidFEN = errors.New("board: invalid FEN")
	// ErrInvalidMove is returned for malformed move notation.
	ErrInvalidMove = errors.New("board: invalid move")
	// ErrInvalidSquare is returned for malformed square notation.
	ErrInvalidSquare = errors.New("board: invalid square")
)
