package eval

import "github.com/kestrelchess/kestrel/internal/board"

// Estimate returns a cheap pre-ordering score for playing m in s — used by
// the searcher to sort moves before the expensive recursive search visits
// them (spec.md §4.7).
func (e Evaluator) Estimate(s board.State, m board.Move) Evaluation {
	var score float64
	us := m.Mover()
	dest := m.Destination()

	if s.Board.ColoredPawnAttacks(us.Other()).Test(dest) {
		score -= float64(board.OnePawn) * board.Worth[m.Piece()]
	}

	switch {
	case m.IsCapture():
		score += float64(board.OnePawn) * board.Worth[m.Captured()] * 10
		score -= float64(board.OnePawn) * board.Worth[m.Piece()]
	}

	if m.IsCastle() {
		score += 2 * float64(board.OnePawn)
	}
	if m.IsDoublePawnPush() {
		score += 0.2 * float64(board.OnePawn)
	}
	if m.IsPromotion() {
		score += 2 * board.Worth[m.Promotion()] * float64(board.OnePawn)
	}

	if !m.IsCapture() && !m.IsCastle() && !m.IsPromotion() {
		from := pieceSquareValue(m.Piece(), m.Origin(), us, 0.5)
		to := pieceSquareValue(m.Piece(), dest, us, 0.5)
		score += (to - from) * 2
	}

	return Evaluation(score)
}
