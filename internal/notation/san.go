package notation

import (
	"fmt"
	"strings"

	"github.com/kestrelchess/kestrel/internal/board"
)

// pieceLetters indexes PieceType (Pawn..King) to its SAN letter; Pawn is
// never written.
const pieceLetters = "PNBRQK"

// FormatSAN renders m, played against before, in Standard Algebraic
// Notation — disambiguation, capture and promotion markers, and a
// check/checkmate suffix computed by actually playing the move
// (spec.md §6).
func FormatSAN(before board.State, m board.Move) string {
	if m == board.NoMove {
		return "-"
	}
	if m.IsCastle() {
		return m.Castles().String() + checkSuffix(before, m)
	}

	pt := m.Piece()
	var sb strings.Builder
	if pt != board.Pawn {
		sb.WriteByte(pieceLetters[pt])
		sb.WriteString(disambiguation(before, m, pt))
	}
	if m.IsCapture() {
		if pt == board.Pawn {
			sb.WriteByte('a' + byte(m.Origin().File()))
		}
		sb.WriteByte('x')
	}
	sb.WriteString(m.Destination().String())
	if m.IsPromotion() {
		sb.WriteByte('=')
		sb.WriteByte(pieceLetters[m.Promotion()])
	}
	sb.WriteString(checkSuffix(before, m))
	return sb.String()
}

func checkSuffix(before board.State, m board.Move) string {
	after, err := before.Apply(m)
	if err != nil {
		return ""
	}
	if board.IsCheckmate(after) {
		return "#"
	}
	if after.Board.IsCheck(after.Turn) {
		return "+"
	}
	return ""
}

// disambiguation returns the minimal file/rank/square prefix needed to
// distinguish m from every other legal move of the same piece type to the
// same destination.
func disambiguation(before board.State, m board.Move, pt board.PieceType) string {
	legal := board.GenerateLegalMoves(before)
	origin := m.Origin()
	var sameFile, sameRank, ambiguous bool
	for _, r := range legal {
		if r.Move == m || r.Move.Piece() != pt || r.Move.Destination() != m.Destination() {
			continue
		}
		ambiguous = true
		if r.Move.Origin().File() == origin.File() {
			sameFile = true
		}
		if r.Move.Origin().Rank() == origin.Rank() {
			sameRank = true
		}
	}
	if !ambiguous {
		return ""
	}
	if !sameFile {
		return string(rune('a' + origin.File()))
	}
	if !sameRank {
		return string(rune('1' + origin.Rank()))
	}
	return origin.String()
}

// ParseSAN parses a Standard Algebraic Notation string into a MoveQuery,
// to be resolved against the legal moves of the position it was played in
// (spec.md §4.4, §6).
func ParseSAN(s string) (board.MoveQuery, error) {
	s = strings.TrimSpace(s)

	if s == "O-O" || s == "0-0" {
		side := board.CastleKingside
		return board.MoveQuery{CastleSide: &side}, nil
	}
	if s == "O-O-O" || s == "0-0-0" {
		side := board.CastleQueenside
		return board.MoveQuery{CastleSide: &side}, nil
	}

	s = strings.TrimSuffix(s, "+")
	s = strings.TrimSuffix(s, "#")
	if s == "" {
		return board.MoveQuery{}, fmt.Errorf("%w: empty SAN", board.ErrInvalidMove)
	}

	var q board.MoveQuery

	if idx := strings.IndexByte(s, '='); idx >= 0 {
		if idx+1 >= len(s) {
			return board.MoveQuery{}, fmt.Errorf("%w: %q", board.ErrInvalidMove, s)
		}
		promo, err := promotionFromChar(s[idx+1])
		if err != nil {
			return board.MoveQuery{}, err
		}
		q.Promotion = &promo
		s = s[:idx]
	}

	requireCapture := strings.Contains(s, "x")
	if requireCapture {
		q.RequireCapture = &requireCapture
		s = strings.ReplaceAll(s, "x", "")
	}

	pt := board.Pawn
	if len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z' {
		found := false
		for i := 0; i < len(pieceLetters); i++ {
			if pieceLetters[i] == s[0] {
				pt = board.PieceType(i)
				found = true
				break
			}
		}
		if !found {
			return board.MoveQuery{}, fmt.Errorf("%w: unknown piece letter %q", board.ErrInvalidMove, s[0])
		}
		s = s[1:]
	}
	q.Piece = &pt

	if len(s) < 2 {
		return board.MoveQuery{}, fmt.Errorf("%w: %q", board.ErrInvalidMove, s)
	}
	dest, err := board.ParseSquare(s[len(s)-2:])
	if err != nil {
		return board.MoveQuery{}, fmt.Errorf("%w: %q", board.ErrInvalidMove, s)
	}
	destRank, destFile := dest.Rank(), dest.File()
	q.DestRank, q.DestFile = &destRank, &destFile
	s = s[:len(s)-2]

	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'h':
			f := int(c - 'a')
			q.OriginFile = &f
		case c >= '1' && c <= '8':
			r := int(c - '1')
			q.OriginRank = &r
		default:
			return board.MoveQuery{}, fmt.Errorf("%w: unexpected disambiguation character %q", board.ErrInvalidMove, c)
		}
	}

	return q, nil
}
