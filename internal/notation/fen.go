// Package notation implements the external move and position text formats:
// FEN, long algebraic (the chess-GUI wire format), and Standard Algebraic
// Notation (SAN). It depends on internal/board but not vice versa, keeping
// the core position representation free of text-format concerns.
package notation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kestrelchess/kestrel/internal/board"
)

// ParseFEN parses a Forsyth-Edwards Notation string into a State
// (spec.md §6).
func ParseFEN(fen string) (board.State, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return board.State{}, fmt.Errorf("%w: need at least 4 fields, got %d", board.ErrInvalidFEN, len(parts))
	}

	placement, err := parsePiecePlacement(parts[0])
	if err != nil {
		return board.State{}, err
	}

	var turn board.Color
	switch parts[1] {
	case "w":
		turn = board.White
	case "b":
		turn = board.Black
	default:
		return board.State{}, fmt.Errorf("%w: invalid side to move %q", board.ErrInvalidFEN, parts[1])
	}

	castle, err := parseCastlingRights(parts[2])
	if err != nil {
		return board.State{}, err
	}

	enPassant := board.NoSquare
	if parts[3] != "-" {
		sq, err := board.ParseSquare(parts[3])
		if err != nil {
			return board.State{}, fmt.Errorf("%w: invalid en passant square %q", board.ErrInvalidFEN, parts[3])
		}
		enPassant = sq
	}

	clock := board.Clock{FullMoveNumber: 1}
	if len(parts) > 4 {
		hmc, err := strconv.Atoi(parts[4])
		if err != nil {
			return board.State{}, fmt.Errorf("%w: invalid half-move clock %q", board.ErrInvalidFEN, parts[4])
		}
		clock.HalfMoveClock = hmc
	}
	if len(parts) > 5 {
		fmn, err := strconv.Atoi(parts[5])
		if err != nil {
			return board.State{}, fmt.Errorf("%w: invalid full-move number %q", board.ErrInvalidFEN, parts[5])
		}
		clock.FullMoveNumber = fmn
	}

	return board.State{
		Board:     board.NewBoardFromPieces(placement),
		Turn:      turn,
		Castle:    castle,
		EnPassant: enPassant,
		Clock:     clock,
	}, nil
}

func parsePiecePlacement(placement string) (map[board.Square]board.Piece, error) {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("%w: need 8 ranks, got %d", board.ErrInvalidFEN, len(ranks))
	}

	out := make(map[board.Square]board.Piece)
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, c := range rankStr {
			if file > 7 {
				return nil, fmt.Errorf("%w: too many squares in rank %d", board.ErrInvalidFEN, rank+1)
			}
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			p := board.PieceFromChar(byte(c))
			if p == board.NoPiece {
				return nil, fmt.Errorf("%w: invalid piece character %q", board.ErrInvalidFEN, c)
			}
			out[board.NewSquare(file, rank)] = p
			file++
		}
		if file != 8 {
			return nil, fmt.Errorf("%w: invalid number of squares in rank %d", board.ErrInvalidFEN, rank+1)
		}
	}
	return out, nil
}

func parseCastlingRights(castling string) ([2]board.CastleRights, error) {
	var rights [2]board.CastleRights
	if castling == "-" {
		return rights, nil
	}
	for _, c := range castling {
		switch c {
		case 'K':
			rights[board.White].Kingside = true
		case 'Q':
			rights[board.White].Queenside = true
		case 'k':
			rights[board.Black].Kingside = true
		case 'q':
			rights[board.Black].Queenside = true
		default:
			return rights, fmt.Errorf("%w: invalid castling character %q", board.ErrInvalidFEN, c)
		}
	}
	return rights, nil
}

// FormatFEN renders s as a Forsyth-Edwards Notation string.
func FormatFEN(s board.State) string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := s.Board.PieceAt(board.NewSquare(file, rank))
			if p == board.NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(p.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if s.Turn == board.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(formatCastlingRights(s.Castle))

	sb.WriteByte(' ')
	sb.WriteString(s.EnPassant.String())

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(s.Clock.HalfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(s.Clock.FullMoveNumber))

	return sb.String()
}

func formatCastlingRights(rights [2]board.CastleRights) string {
	var sb strings.Builder
	if rights[board.White].Kingside {
		sb.WriteByte('K')
	}
	if rights[board.White].Queenside {
		sb.WriteByte('Q')
	}
	if rights[board.Black].Kingside {
		sb.WriteByte('k')
	}
	if rights[board.Black].Queenside {
		sb.WriteByte('q')
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}
