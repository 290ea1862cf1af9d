package board

// Move packs a single chess move into 32 bits (spec.md §3):
//
//	bits  0- 5  origin square        (6b)
//	bits  6-11  destination square   (6b)
//	bits 12-15  piece kind           (4b)
//	bits 16-19  captured piece kind  (4b, 0 = none, else PieceType+1)
//	bits 20-23  promotion piece kind (4b, 0 = none, else PieceType+1)
//	bit     24  en-passant flag
//	bit     25  double-pawn-push flag
//	bit     26  castle-queenside flag
//	bit     27  castle-kingside flag
//	bit     28  mover color (0 = White, 1 = Black)
//
// Invariants: at most one castle flag is set; captured ≠ none iff this is a
// capture; promotion ≠ none iff this is a promotion; en-passant ⇒ captured
// piece kind is Pawn.
type Move uint32

const (
	moveOriginShift  = 0
	moveDestShift    = 6
	movePieceShift   = 12
	moveCaptureShift = 16
	movePromoShift   = 20
	moveFieldMask    = 0x3F
	movePieceMask    = 0xF

	moveEnPassantBit  = 1 << 24
	moveDoublePushBit = 1 << 25
	moveCastleQSBit   = 1 << 26
	moveCastleKSBit   = 1 << 27
	moveColorBit      = 1 << 28
)

// NoMove represents the absence of a move.
const NoMove Move = 0xFFFFFFFF

// MoveSpec lists the fields accepted by NewMove — the constructor is the
// single choke point that enforces the packing invariants above.
type MoveSpec struct {
	Piece       PieceType
	Origin      Square
	Destination Square
	Captured    PieceType // NoPieceType if not a capture
	Promotion   PieceType // NoPieceType if not a promotion
	EnPassant   bool
	DoublePush  bool
	CastleSide  CastleSide // CastleNone, CastleKingside, or CastleQueenside
	Mover       Color
}

// CastleSide identifies which side, if any, a move castles toward.
type CastleSide uint8

const (
	CastleNone CastleSide = iota
	CastleKingside
	CastleQueenside
)

func packPieceField(pt PieceType) uint32 {
	if pt == NoPieceType {
		return 0
	}
	return uint32(pt) + 1
}

func unpackPieceField(v uint32) PieceType {
	if v == 0 {
		return NoPieceType
	}
	return PieceType(v - 1)
}

// NewMove packs a MoveSpec into a Move, per the layout documented above.
func NewMove(s MoveSpec) Move {
	m := uint32(s.Origin&moveFieldMask) << moveOriginShift
	m |= uint32(s.Destination&moveFieldMask) << moveDestShift
	m |= uint32(s.Piece) << movePieceShift
	m |= packPieceField(s.Captured) << moveCaptureShift
	m |= packPieceField(s.Promotion) << movePromoShift
	if s.EnPassant {
		m |= moveEnPassantBit
	}
	if s.DoublePush {
		m |= moveDoublePushBit
	}
	if s.CastleSide == CastleQueenside {
		m |= moveCastleQSBit
	}
	if s.CastleSide == CastleKingside {
		m |= moveCastleKSBit
	}
	if s.Mover == Black {
		m |= moveColorBit
	}
	return Move(m)
}

// Origin returns the move's origin square.
func (m Move) Origin() Square {
	return Square((uint32(m) >> moveOriginShift) & moveFieldMask)
}

// Destination returns the move's destination square.
func (m Move) Destination() Square {
	return Square((uint32(m) >> moveDestShift) & moveFieldMask)
}

// Piece returns the kind of piece being moved.
func (m Move) Piece() PieceType {
	return PieceType((uint32(m) >> movePieceShift) & movePieceMask)
}

// Captured returns the captured piece kind, or NoPieceType if this move is
// not a capture.
func (m Move) Captured() PieceType {
	return unpackPieceField((uint32(m) >> moveCaptureShift) & movePieceMask)
}

// IsCapture reports whether this move captures a piece.
func (m Move) IsCapture() bool {
	return m.Captured() != NoPieceType
}

// Promotion returns the promotion piece kind, or NoPieceType if this move
// does not promote.
func (m Move) Promotion() PieceType {
	return unpackPieceField((uint32(m) >> movePromoShift) & movePieceMask)
}

// IsPromotion reports whether this move promotes a pawn.
func (m Move) IsPromotion() bool {
	return m.Promotion() != NoPieceType
}

// IsEnPassant reports whether this move is an en-passant capture.
func (m Move) IsEnPassant() bool {
	return uint32(m)&moveEnPassantBit != 0
}

// IsDoublePawnPush reports whether this move is a two-square pawn push.
func (m Move) IsDoublePawnPush() bool {
	return uint32(m)&moveDoublePushBit != 0
}

// Castles reports which side this move castles toward, if any.
func (m Move) Castles() CastleSide {
	switch {
	case uint32(m)&moveCastleKSBit != 0:
		return CastleKingside
	case uint32(m)&moveCastleQSBit != 0:
		return CastleQueenside
	default:
		return CastleNone
	}
}

// IsCastle reports whether this move castles.
func (m Move) IsCastle() bool {
	return m.Castles() != CastleNone
}

// Mover returns the color of the side making this move.
func (m Move) Mover() Color {
	if uint32(m)&moveColorBit != 0 {
		return Black
	}
	return White
}

// IsQuiet reports whether this move is neither a capture nor a promotion.
func (m Move) IsQuiet() bool {
	return !m.IsCapture() && !m.IsPromotion()
}

// String renders the move in long algebraic notation (e.g. "e2e4", "e7e8q")
// — spec.md §6's chess-GUI wire format.
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.Origin().String() + m.Destination().String()
	if m.IsPromotion() {
		s += string(m.Promotion().Char())
	}
	return s
}

// MoveQuery is a partial specification of a move used to resolve short
// algebraic notation against the legal move list (spec.md §3, §4.4).
type MoveQuery struct {
	Piece          *PieceType
	OriginRank     *int
	OriginFile     *int
	DestRank       *int
	DestFile       *int
	Promotion      *PieceType
	CastleSide     *CastleSide
	RequireCapture *bool
}

// Matches reports whether m satisfies every field q specifies.
func (q MoveQuery) Matches(m Move) bool {
	if q.Piece != nil && *q.Piece != m.Piece() {
		return false
	}
	if q.OriginRank != nil && *q.OriginRank != m.Origin().Rank() {
		return false
	}
	if q.OriginFile != nil && *q.OriginFile != m.Origin().File() {
		return false
	}
	if q.DestRank != nil && *q.DestRank != m.Destination().Rank() {
		return false
	}
	if q.DestFile != nil && *q.DestFile != m.Destination().File() {
		return false
	}
	if q.Promotion != nil && *q.Promotion != m.Promotion() {
		return false
	}
	if q.CastleSide != nil && *q.CastleSide != m.Castles() {
		return false
	}
	if q.RequireCapture != nil && *q.RequireCapture != m.IsCapture() {
		return false
	}
	return true
}

// MoveResult pairs a legal move with the State reached by playing it
// (spec.md §4.3, §4.4).
type MoveResult struct {
	Move  Move
	State State
}

// MoveSet is a list of MoveResults with lookup-by-query support.
type MoveSet []MoveResult

// Find returns the first move matching q, used by notation application
// (spec.md §4.4). The bool is false if nothing matched.
func (ms MoveSet) Find(q MoveQuery) (MoveResult, bool) {
	for _, r := range ms {
		if q.Matches(r.Move) {
			return r, true
		}
	}
	return MoveResult{}, false
}

// FindAll returns every move matching q — used to detect ambiguous
// notation (spec.md §4.5 apply_many: AmbiguousMove).
func (ms MoveSet) FindAll(q MoveQuery) []MoveResult {
	var out []MoveResult
	for _, r := range ms {
		if q.Matches(r.Move) {
			out = append(out, r)
		}
	}
	return out
}

// Moves returns the bare moves, dropping successor states.
func (ms MoveSet) Moves() []Move {
	out := make([]Move, len(ms))
	for i, r := range ms {
		out[i] = r.Move
	}
	return out
}

// MoveList is a fixed-capacity, allocation-free move buffer reused across
// deep recursion (spec.md §4.3 "a reusable buffer form").
type MoveList struct {
	moves [256]Move
	count int
}

// Add appends a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves currently held.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Clear empties the list without releasing its backing array.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Slice returns the moves currently held as a slice sharing the list's
// backing array — callers must not retain it across the next Clear.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}

func (s CastleSide) String() string {
	switch s {
	case CastleKingside:
		return "O-O"
	case CastleQueenside:
		return "O-O-O"
	default:
		return ""
	}
}
