package board

import (
	"fmt"
	"sync"
)

// Board holds one bitboard per PieceIndex (spec.md §3: 16 slots, 12 used —
// the remaining 4 correspond to Piece values ≥ NoPiece and stay empty),
// plus derived occupancy and a lazily-computed, cached per-color attack map.
//
// Board is immutable once built: State.Apply clones piece placement into a
// fresh Board, so the attack-map cache never needs invalidating within a
// Board's lifetime (spec.md §4.2, §9).
type Board struct {
	pieces [16]Bitboard

	occupied    [2]Bitboard
	allOccupied Bitboard
	kingSquare  [2]Square

	attackOnce  [2]sync.Once
	attackCache [2]Bitboard

	pawnAttackOnce  [2]sync.Once
	pawnAttackCache [2]Bitboard
}

// NewBoardFromPieces builds a Board from a map of occupied squares to the
// piece sitting there.
func NewBoardFromPieces(placement map[Square]Piece) *Board {
	b := &Board{}
	for sq, p := range placement {
		b.place(p, sq)
	}
	b.recomputeOccupancy()
	return b
}

// NewBoardFromSquareArray builds a Board from a dense 64-entry array
// (index = Square), NoPiece marking an empty square.
func NewBoardFromSquareArray(squares [64]Piece) *Board {
	b := &Board{}
	for sq := Square(0); sq < 64; sq++ {
		if squares[sq] != NoPiece {
			b.place(squares[sq], sq)
		}
	}
	b.recomputeOccupancy()
	return b
}

func (b *Board) place(p Piece, sq Square) {
	b.pieces[p] |= SquareBB(sq)
	if p.Type() == King {
		b.kingSquare[p.Color()] = sq
	}
}

func (b *Board) recomputeOccupancy() {
	var white, black Bitboard
	for p := Piece(0); p < NoPiece; p++ {
		if p.Color() == White {
			white |= b.pieces[p]
		} else {
			black |= b.pieces[p]
		}
	}
	b.occupied[White] = white
	b.occupied[Black] = black
	b.allOccupied = white | black
}

// PieceBoard returns the occupancy bitboard for a single PieceIndex.
func (b *Board) PieceBoard(p Piece) Bitboard {
	return b.pieces[p]
}

// PieceAt returns the piece occupying sq, or NoPiece if empty.
func (b *Board) PieceAt(sq Square) Piece {
	bb := SquareBB(sq)
	if b.allOccupied&bb == 0 {
		return NoPiece
	}
	c := White
	if b.occupied[Black]&bb != 0 {
		c = Black
	}
	for pt := Pawn; pt <= King; pt++ {
		if b.pieces[NewPiece(pt, c)]&bb != 0 {
			return NewPiece(pt, c)
		}
	}
	return NoPiece
}

// IsEmpty reports whether sq holds no piece.
func (b *Board) IsEmpty(sq Square) bool {
	return b.allOccupied&SquareBB(sq) == 0
}

// Occupied returns the union of one color's pieces.
func (b *Board) Occupied(c Color) Bitboard {
	return b.occupied[c]
}

// AllOccupied returns the union of every piece on the board.
func (b *Board) AllOccupied() Bitboard {
	return b.allOccupied
}

// KingSquare returns the square of a color's king.
func (b *Board) KingSquare(c Color) Square {
	return b.kingSquare[c]
}

// ToPieceMap converts the Board back to a square→piece map (used by the
// Board-reconstruction round-trip property, spec.md §8).
func (b *Board) ToPieceMap() map[Square]Piece {
	m := make(map[Square]Piece)
	for p := Piece(0); p < NoPiece; p++ {
		bb := b.pieces[p]
		for bb != 0 {
			sq := bb.Pop()
			m[sq] = p
		}
	}
	return m
}

// clone returns a deep copy suitable for mutation by Apply — the attack-map
// caches are intentionally NOT copied, since a mutated board needs to
// recompute them (spec.md §9: "a future apply clones the board and discards
// the previous cache").
func (b *Board) clone() *Board {
	nb := &Board{
		pieces:      b.pieces,
		occupied:    b.occupied,
		allOccupied: b.allOccupied,
		kingSquare:  b.kingSquare,
	}
	return nb
}

// colorAttacksSlow unions the attack bitboard of every piece c owns against
// the current overall occupancy, then removes squares occupied by c's own
// pieces — spec.md §4.2.
func (b *Board) colorAttacksSlow(c Color) Bitboard {
	var attacks Bitboard
	occ := b.allOccupied

	pawns := b.pieces[NewPiece(Pawn, c)]
	for pawns != 0 {
		sq := pawns.Pop()
		attacks |= PawnAttacks(sq, c)
	}
	knights := b.pieces[NewPiece(Knight, c)]
	for knights != 0 {
		attacks |= KnightAttacks(knights.Pop())
	}
	bishops := b.pieces[NewPiece(Bishop, c)]
	for bishops != 0 {
		attacks |= BishopAttacks(bishops.Pop(), occ)
	}
	rooks := b.pieces[NewPiece(Rook, c)]
	for rooks != 0 {
		attacks |= RookAttacks(rooks.Pop(), occ)
	}
	queens := b.pieces[NewPiece(Queen, c)]
	for queens != 0 {
		attacks |= QueenAttacks(queens.Pop(), occ)
	}
	kings := b.pieces[NewPiece(King, c)]
	for kings != 0 {
		attacks |= KingAttacks(kings.Pop())
	}

	return attacks &^ b.occupied[c]
}

// ColoredAttacks returns the union of every attack bitboard c's pieces
// project against the current occupancy, own pieces excluded. Computed once
// and cached for the Board's lifetime (spec.md §4.2, §9).
func (b *Board) ColoredAttacks(c Color) Bitboard {
	b.attackOnce[c].Do(func() {
		b.attackCache[c] = b.colorAttacksSlow(c)
	})
	return b.attackCache[c]
}

// ColoredPawnAttacks returns the union of c's pawn-attack squares only — a
// narrower variant used by move ordering (spec.md §4.2).
func (b *Board) ColoredPawnAttacks(c Color) Bitboard {
	b.pawnAttackOnce[c].Do(func() {
		var attacks Bitboard
		pawns := b.pieces[NewPiece(Pawn, c)]
		for pawns != 0 {
			attacks |= PawnAttacks(pawns.Pop(), c)
		}
		b.pawnAttackCache[c] = attacks
	})
	return b.pawnAttackCache[c]
}

// IsCheck reports whether c's king sits on a square attacked by the
// opponent (spec.md §4.2).
func (b *Board) IsCheck(c Color) bool {
	king := b.kingSquare[c]
	if king == NoSquare {
		return false
	}
	return b.ColoredAttacks(c.Other()).Test(king)
}

// AttackersTo returns every piece (either color) attacking sq given occ as
// the blocker set.
func (b *Board) AttackersTo(sq Square, occ Bitboard) Bitboard {
	return (PawnAttacks(sq, Black) & b.pieces[WhitePawn]) |
		(PawnAttacks(sq, White) & b.pieces[BlackPawn]) |
		(KnightAttacks(sq) & (b.pieces[WhiteKnight] | b.pieces[BlackKnight])) |
		(KingAttacks(sq) & (b.pieces[WhiteKing] | b.pieces[BlackKing])) |
		(BishopAttacks(sq, occ) & (b.pieces[WhiteBishop] | b.pieces[BlackBishop] | b.pieces[WhiteQueen] | b.pieces[BlackQueen])) |
		(RookAttacks(sq, occ) & (b.pieces[WhiteRook] | b.pieces[BlackRook] | b.pieces[WhiteQueen] | b.pieces[BlackQueen]))
}

// AttackersByColor returns c's pieces attacking sq given occ as the blocker
// set.
func (b *Board) AttackersByColor(sq Square, c Color, occ Bitboard) Bitboard {
	enemy := c.Other()
	return (PawnAttacks(sq, enemy) & b.pieces[NewPiece(Pawn, c)]) |
		(KnightAttacks(sq) & b.pieces[NewPiece(Knight, c)]) |
		(KingAttacks(sq) & b.pieces[NewPiece(King, c)]) |
		(BishopAttacks(sq, occ) & (b.pieces[NewPiece(Bishop, c)] | b.pieces[NewPiece(Queen, c)])) |
		(RookAttacks(sq, occ) & (b.pieces[NewPiece(Rook, c)] | b.pieces[NewPiece(Queen, c)]))
}

// ComputePinned returns the pieces of color c pinned to c's king — used by
// the move generator to restrict pinned sliders/pawns to their pin ray
// instead of relying solely on the post-hoc legality filter (recovered from
// _examples/original_source/weechess-core, see DESIGN.md).
func (b *Board) ComputePinned(c Color) Bitboard {
	them := c.Other()
	king := b.kingSquare[c]
	if king == NoSquare {
		return Empty
	}
	var pinned Bitboard

	snipers := RookAttacks(king, Empty) & (b.pieces[NewPiece(Rook, them)] | b.pieces[NewPiece(Queen, them)])
	for snipers != 0 {
		sq := snipers.Pop()
		blockers := Between(sq, king) & b.allOccupied
		if blockers.CountOnes() == 1 && blockers&b.occupied[c] != 0 {
			pinned |= blockers
		}
	}

	snipers = BishopAttacks(king, Empty) & (b.pieces[NewPiece(Bishop, them)] | b.pieces[NewPiece(Queen, them)])
	for snipers != 0 {
		sq := snipers.Pop()
		blockers := Between(sq, king) & b.allOccupied
		if blockers.CountOnes() == 1 && blockers&b.occupied[c] != 0 {
			pinned |= blockers
		}
	}

	return pinned
}

func (b *Board) String() string {
	s := "\n"
	for rank := 7; rank >= 0; rank-- {
		s += fmt.Sprintf("%d  ", rank+1)
		for file := 0; file < 8; file++ {
			p := b.PieceAt(NewSquare(file, rank))
			if p == NoPiece {
				s += ". "
			} else {
				s += p.String() + " "
			}
		}
		s += "\n"
	}
	s += "\n   a b c d e f g h\n"
	return s
}
