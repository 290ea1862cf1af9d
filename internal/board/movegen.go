package board

// GeneratePseudoLegalMoves returns every pseudo-legal move in s — captures,
// quiets, castles, promotions, en-passant — without a final check for
// moves that leave the mover's own king in check (spec.md §4.3).
//
// Pieces pinned to the mover's king are restricted to squares along the
// pin line, and the king itself is restricted to squares the enemy does
// not attack (with the king's own square removed from occupancy, so a
// slider's attack is not blocked by the king it is checking). This trims
// some illegal moves early; it does not restrict non-king moves when the
// king is already in check, nor pin-test en-passant captures, so those
// are left to the legality filter in GenerateLegalMoves (recovered from
// _examples/original_source/weechess-core, see DESIGN.md).
func GeneratePseudoLegalMoves(s State) *MoveList {
	ml := &MoveList{}
	b := s.Board
	us := s.Turn
	them := us.Other()

	occ := b.AllOccupied()
	own := b.Occupied(us)
	enemies := b.Occupied(them)
	empty := Universe &^ occ
	pinned := b.ComputePinned(us)
	king := b.KingSquare(us)

	generatePawnMoves(ml, s, us, enemies, empty, pinned, king)

	knights := b.PieceBoard(NewPiece(Knight, us))
	for knights != 0 {
		from := knights.Pop()
		if pinned.Test(from) {
			continue // a pinned knight has no legal destination
		}
		addSimpleAttacks(ml, b, us, Knight, from, KnightAttacks(from)&^own)
	}

	addSliderMoves(ml, b, us, Bishop, b.PieceBoard(NewPiece(Bishop, us)), occ, own, pinned, king)
	addSliderMoves(ml, b, us, Rook, b.PieceBoard(NewPiece(Rook, us)), occ, own, pinned, king)
	addSliderMoves(ml, b, us, Queen, b.PieceBoard(NewPiece(Queen, us)), occ, own, pinned, king)

	generateKingMoves(ml, b, us, them, king, own, occ)
	generateCastlingMoves(ml, s, us, them)

	return ml
}

// generatePawnMoves appends every pawn push, capture, promotion, and
// en-passant move. Pin-restriction for pawns uses the full Line through the
// king and the pawn's square, since a pinned pawn may still capture the
// pinner or push along the pin ray.
func generatePawnMoves(ml *MoveList, s State, us Color, enemies, empty, pinned Bitboard, king Square) {
	b := s.Board
	pawns := b.PieceBoard(NewPiece(Pawn, us))
	promotionRank := RankMask[us.PromotionRank()]
	fwd := us.Forward()

	var push1, push2, attackL, attackR Bitboard
	if us == White {
		push1 = pawns.North() & empty
		push2 = (push1 & Rank3).North() & empty
		attackL = pawns.NorthWest() & enemies
		attackR = pawns.NorthEast() & enemies
	} else {
		push1 = pawns.South() & empty
		push2 = (push1 & Rank6).South() & empty
		attackL = pawns.SouthWest() & enemies
		attackR = pawns.SouthEast() & enemies
	}

	addPawnMoves := func(bb Bitboard, delta int) {
		for bb != 0 {
			to := bb.Pop()
			from := Square(int(to) - delta)
			if pinned.Test(from) && !Line(king, from).Test(to) {
				continue
			}
			if promotionRank.Test(to) {
				for _, pt := range [4]PieceType{Queen, Rook, Bishop, Knight} {
					ml.Add(NewMove(MoveSpec{
						Piece: Pawn, Origin: from, Destination: to,
						Captured: b.PieceAt(to).Type(), Promotion: pt, Mover: us,
					}))
				}
				continue
			}
			ml.Add(NewMove(MoveSpec{
				Piece: Pawn, Origin: from, Destination: to,
				Captured: capturedTypeAt(b, to), Promotion: NoPieceType, Mover: us,
			}))
		}
	}

	addPawnMoves(push1, fwd)
	addPawnMoves(attackL, fwd-1)
	addPawnMoves(attackR, fwd+1)

	for push2 != 0 {
		to := push2.Pop()
		from := Square(int(to) - 2*fwd)
		if pinned.Test(from) && !Line(king, from).Test(to) {
			continue
		}
		ml.Add(NewMove(MoveSpec{
			Piece: Pawn, Origin: from, Destination: to, Mover: us, DoublePush: true,
			Captured: NoPieceType, Promotion: NoPieceType,
		}))
	}

	if s.EnPassant != NoSquare {
		epBB := SquareBB(s.EnPassant)
		var attackers Bitboard
		if us == White {
			attackers = (epBB.SouthWest() | epBB.SouthEast()) & pawns
		} else {
			attackers = (epBB.NorthWest() | epBB.NorthEast()) & pawns
		}
		for attackers != 0 {
			from := attackers.Pop()
			ml.Add(NewMove(MoveSpec{
				Piece: Pawn, Origin: from, Destination: s.EnPassant,
				Captured: Pawn, Promotion: NoPieceType, EnPassant: true, Mover: us,
			}))
		}
	}
}

// capturedTypeAt returns the piece type occupying to, or NoPieceType.
func capturedTypeAt(b *Board, to Square) PieceType {
	return b.PieceAt(to).Type()
}

func addSimpleAttacks(ml *MoveList, b *Board, us Color, pt PieceType, from Square, targets Bitboard) {
	for targets != 0 {
		to := targets.Pop()
		ml.Add(NewMove(MoveSpec{
			Piece: pt, Origin: from, Destination: to,
			Captured: capturedTypeAt(b, to), Promotion: NoPieceType, Mover: us,
		}))
	}
}

func addSliderMoves(ml *MoveList, b *Board, us Color, pt PieceType, pieces, occ, own, pinned Bitboard, king Square) {
	for pieces != 0 {
		from := pieces.Pop()
		var attacks Bitboard
		switch pt {
		case Bishop:
			attacks = BishopAttacks(from, occ)
		case Rook:
			attacks = RookAttacks(from, occ)
		case Queen:
			attacks = QueenAttacks(from, occ)
		}
		attacks &^= own
		if pinned.Test(from) {
			attacks &= Line(king, from)
		}
		addSimpleAttacks(ml, b, us, pt, from, attacks)
	}
}

func generateKingMoves(ml *MoveList, b *Board, us, them Color, king Square, own, occ Bitboard) {
	occWithoutKing := occ &^ SquareBB(king)
	targets := KingAttacks(king) &^ own
	for targets != 0 {
		to := targets.Pop()
		if b.AttackersByColor(to, them, occWithoutKing) != 0 {
			continue
		}
		ml.Add(NewMove(MoveSpec{
			Piece: King, Origin: king, Destination: to,
			Captured: capturedTypeAt(b, to), Promotion: NoPieceType, Mover: us,
		}))
	}
}

func generateCastlingMoves(ml *MoveList, s State, us, them Color) {
	b := s.Board
	rights := s.Castle[us]
	occ := b.AllOccupied()
	king := b.KingSquare(us)

	attacked := func(sq Square) bool {
		return b.AttackersByColor(sq, them, occ) != 0
	}

	noCapturePromo := func(dest Square, side CastleSide) Move {
		return NewMove(MoveSpec{
			Piece: King, Origin: king, Destination: dest,
			Captured: NoPieceType, Promotion: NoPieceType,
			CastleSide: side, Mover: us,
		})
	}

	if us == White {
		if rights.Kingside && occ&(SquareBB(F1)|SquareBB(G1)) == 0 &&
			!attacked(E1) && !attacked(F1) && !attacked(G1) {
			ml.Add(noCapturePromo(G1, CastleKingside))
		}
		if rights.Queenside && occ&(SquareBB(B1)|SquareBB(C1)|SquareBB(D1)) == 0 &&
			!attacked(E1) && !attacked(D1) && !attacked(C1) {
			ml.Add(noCapturePromo(C1, CastleQueenside))
		}
	} else {
		if rights.Kingside && occ&(SquareBB(F8)|SquareBB(G8)) == 0 &&
			!attacked(E8) && !attacked(F8) && !attacked(G8) {
			ml.Add(noCapturePromo(G8, CastleKingside))
		}
		if rights.Queenside && occ&(SquareBB(B8)|SquareBB(C8)|SquareBB(D8)) == 0 &&
			!attacked(E8) && !attacked(D8) && !attacked(C8) {
			ml.Add(noCapturePromo(C8, CastleQueenside))
		}
	}
}

// GenerateLegalMoves returns every legal move in s together with the State
// reached by playing it (spec.md §4.3). This is the definitive filter: each
// pseudo-legal candidate is actually applied, and kept only if the mover's
// king is not left in check in the result, which removes every illegal
// move the pin and king restrictions above let through (check evasions,
// en-passant discovered checks).
func GenerateLegalMoves(s State) MoveSet {
	pseudo := GeneratePseudoLegalMoves(s)
	mover := s.Turn
	out := make(MoveSet, 0, pseudo.Len())
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)
		next, err := s.Apply(m)
		if err != nil {
			continue
		}
		if next.Board.IsCheck(mover) {
			continue
		}
		out = append(out, MoveResult{Move: m, State: next})
	}
	return out
}

// GenerateCaptures returns every legal capture (including promotions and
// en-passant) — used by quiescence search (spec.md §4.9).
func GenerateCaptures(s State) MoveSet {
	legal := GenerateLegalMoves(s)
	out := make(MoveSet, 0, len(legal))
	for _, r := range legal {
		if r.Move.IsCapture() || r.Move.IsPromotion() {
			out = append(out, r)
		}
	}
	return out
}

// HasLegalMoves reports whether s's side to move has at least one legal
// move, short-circuiting once the first is found.
func HasLegalMoves(s State) bool {
	pseudo := GeneratePseudoLegalMoves(s)
	mover := s.Turn
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)
		next, err := s.Apply(m)
		if err != nil {
			continue
		}
		if !next.Board.IsCheck(mover) {
			return true
		}
	}
	return false
}

// IsCheckmate reports whether s's side to move is in check with no legal
// reply.
func IsCheckmate(s State) bool {
	return s.Board.IsCheck(s.Turn) && !HasLegalMoves(s)
}

// IsStalemate reports whether s's side to move has no legal move but is
// not in check.
func IsStalemate(s State) bool {
	return !s.Board.IsCheck(s.Turn) && !HasLegalMoves(s)
}

// IsInsufficientMaterial reports whether neither side retains enough
// material to deliver checkmate (K vs K, K+minor vs K).
func IsInsufficientMaterial(s State) bool {
	b := s.Board
	if b.PieceBoard(WhitePawn)|b.PieceBoard(BlackPawn) != 0 ||
		b.PieceBoard(WhiteRook)|b.PieceBoard(BlackRook) != 0 ||
		b.PieceBoard(WhiteQueen)|b.PieceBoard(BlackQueen) != 0 {
		return false
	}
	wMinors := b.PieceBoard(WhiteKnight).CountOnes() + b.PieceBoard(WhiteBishop).CountOnes()
	bMinors := b.PieceBoard(BlackKnight).CountOnes() + b.PieceBoard(BlackBishop).CountOnes()
	if wMinors+bMinors == 0 {
		return true
	}
	if wMinors <= 1 && bMinors == 0 {
		return true
	}
	if bMinors <= 1 && wMinors == 0 {
		return true
	}
	return false
}

// IsDraw reports whether s is drawn by stalemate, the fifty-move rule, or
// insufficient material. Repetition is tracked separately by StateHistory
// (spec.md §4.11), which treats any earlier occurrence of a position as a
// draw, since it needs move history s alone lacks.
func IsDraw(s State) bool {
	if IsStalemate(s) {
		return true
	}
	if s.Clock.HalfMoveClock >= 100 {
		return true
	}
	return IsInsufficientMaterial(s)
}
