package notation

import (
	"fmt"

	"github.com/kestrelchess/kestrel/internal/board"
)

// ParseLongAlgebraic parses the chess-GUI wire format ("e2e4", "e7e8q") into
// a MoveQuery that pins down origin and destination exactly, resolving
// ambiguity (e.g. which rook, under/over-promotion) via State.ApplyMany's
// legal-move lookup (spec.md §4.4, §6).
func ParseLongAlgebraic(s string) (board.MoveQuery, error) {
	if len(s) < 4 || len(s) > 5 {
		return board.MoveQuery{}, fmt.Errorf("%w: %q", board.ErrInvalidMove, s)
	}
	origin, err := board.ParseSquare(s[0:2])
	if err != nil {
		return board.MoveQuery{}, fmt.Errorf("%w: %q", board.ErrInvalidMove, s)
	}
	dest, err := board.ParseSquare(s[2:4])
	if err != nil {
		return board.MoveQuery{}, fmt.Errorf("%w: %q", board.ErrInvalidMove, s)
	}

	originRank, originFile := origin.Rank(), origin.File()
	destRank, destFile := dest.Rank(), dest.File()
	q := board.MoveQuery{
		OriginRank: &originRank,
		OriginFile: &originFile,
		DestRank:   &destRank,
		DestFile:   &destFile,
	}

	if len(s) == 5 {
		promo, err := promotionFromChar(s[4])
		if err != nil {
			return board.MoveQuery{}, err
		}
		q.Promotion = &promo
	}

	return q, nil
}

// FormatLongAlgebraic renders m in the chess-GUI wire format.
func FormatLongAlgebraic(m board.Move) string {
	return m.String()
}

func promotionFromChar(c byte) (board.PieceType, error) {
	switch c {
	case 'n', 'N':
		return board.Knight, nil
	case 'b', 'B':
		return board.Bishop, nil
	case 'r', 'R':
		return board.Rook, nil
	case 'q', 'Q':
		return board.Queen, nil
	default:
		return board.NoPieceType, fmt.Errorf("%w: invalid promotion piece %q", board.ErrInvalidMove, c)
	}
}
