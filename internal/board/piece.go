// Package board implements the bitboard chess position representation:
// colors, pieces, squares, bitboards, the board itself, move encoding, the
// move generator with magic-bitboard sliding attacks, and the Zobrist hasher.
package board

// Color identifies a side to move.
type Color uint8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Other returns the opposing color.
func (c Color) Other() Color {
	return c ^ 1
}

// Forward returns the pawn push direction for this color as a square-index
// offset: +8 (one rank toward rank 8) for White, -8 (one rank toward rank
// 1) for Black.
func (c Color) Forward() int {
	if c == White {
		return 8
	}
	return -8
}

// HomeRank returns the pawn starting rank (0-indexed) for this color.
func (c Color) HomeRank() int {
	if c == White {
		return 1
	}
	return 6
}

// PromotionRank returns the rank (0-indexed) a pawn of this color promotes on.
func (c Color) PromotionRank() int {
	if c == White {
		return 7
	}
	return 0
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return "none"
	}
}

// PieceType represents the type of a chess piece.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType PieceType = 6
)

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return "none"
	}
}

// Char returns the FEN character for the piece type (lowercase).
func (pt PieceType) Char() byte {
	chars := []byte{'p', 'n', 'b', 'r', 'q', 'k', ' '}
	if pt > NoPieceType {
		return ' '
	}
	return chars[pt]
}

// Worth is each piece type's material value in whole pawns (spec.md §4.7
// Term 1: Pawn 1, Knight 3, Bishop 3.5, Rook 5, Queen 9, King 100).
var Worth = [7]float64{1, 3, 3.5, 5, 9, 100, 0}

// OnePawn is the centipawn value of a single pawn of material.
const OnePawn = 100

// Value returns the material value of the piece type in centipawns.
func (pt PieceType) Value() int {
	if pt > King {
		return 0
	}
	return int(Worth[pt] * OnePawn)
}

// Piece combines a PieceType and a Color into spec.md §3's 4-bit
// "PieceIndex". Encoded as pieceType + color*6; NoPiece marks an empty
// square.
type Piece uint8

const (
	WhitePawn   Piece = Piece(Pawn) + Piece(White)*6
	WhiteKnight Piece = Piece(Knight) + Piece(White)*6
	WhiteBishop Piece = Piece(Bishop) + Piece(White)*6
	WhiteRook   Piece = Piece(Rook) + Piece(White)*6
	WhiteQueen  Piece = Piece(Queen) + Piece(White)*6
	WhiteKing   Piece = Piece(King) + Piece(White)*6
	BlackPawn   Piece = Piece(Pawn) + Piece(Black)*6
	BlackKnight Piece = Piece(Knight) + Piece(Black)*6
	BlackBishop Piece = Piece(Bishop) + Piece(Black)*6
	BlackRook   Piece = Piece(Rook) + Piece(Black)*6
	BlackQueen  Piece = Piece(Queen) + Piece(Black)*6
	BlackKing   Piece = Piece(King) + Piece(Black)*6
	NoPiece     Piece = 12
)

// NewPiece creates a Piece from PieceType and Color. Invariant (spec.md §3):
// p.Type() and p.Color() recover exactly pt and c.
func NewPiece(pt PieceType, c Color) Piece {
	if pt >= NoPieceType || c >= NoColor {
		return NoPiece
	}
	return Piece(pt) + Piece(c)*6
}

// Type returns the PieceType of the piece.
func (p Piece) Type() PieceType {
	if p >= NoPiece {
		return NoPieceType
	}
	return PieceType(p % 6)
}

// Color returns the Color of the piece.
func (p Piece) Color() Color {
	if p >= NoPiece {
		return NoColor
	}
	return Color(p / 6)
}

// Value returns the material value of the piece in centipawns.
func (p Piece) Value() int {
	return p.Type().Value()
}

var pieceChars = "PNBRQKpnbrqk"

// Char returns the FEN character for the piece (uppercase = White).
func (p Piece) Char() byte {
	if p >= NoPiece {
		return '.'
	}
	return pieceChars[p]
}

// String returns the FEN character for the piece.
func (p Piece) String() string {
	return string(p.Char())
}

// PieceFromChar converts a FEN character to a Piece.
func PieceFromChar(c byte) Piece {
	switch c {
	case 'P':
		return WhitePawn
	case 'N':
		return WhiteKnight
	case 'B':
		return WhiteBishop
	case 'R':
		return WhiteRook
	case 'Q':
		return WhiteQueen
	case 'K':
		return WhiteKing
	case 'p':
		return BlackPawn
	case 'n':
		return BlackKnight
	case 'b':
		return BlackBishop
	case 'r':
		return BlackRook
	case 'q':
		return BlackQueen
	case 'k':
		return BlackKing
	default:
		return NoPiece
	}
}
