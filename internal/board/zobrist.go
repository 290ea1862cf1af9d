package board

// Hash is a 64-bit Zobrist position fingerprint (spec.md §3).
type Hash uint64

// DefaultZobristSeed is compiled into the binary so the opening-book build
// step and the runtime always agree on position hashes (spec.md §3, §6).
const DefaultZobristSeed uint64 = 0x98F107A2BEEF1234

// prng is a small reproducible xorshift64* generator — used only to seed
// the Zobrist tables, never for search-time randomness.
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	if seed == 0 {
		seed = 1
	}
	return &prng{state: seed}
}

func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

// Hasher holds the random tables behind Zobrist hashing: one 64-bit value
// per (square, PieceIndex) slot, and one per side to move (spec.md §4.6).
// Seedable so build-time and runtime tables can be kept in lockstep.
type Hasher struct {
	pieceTable [64][16]uint64
	sideTable  [2]uint64
}

// NewHasher builds a Hasher from a seeded PRNG.
func NewHasher(seed uint64) *Hasher {
	h := &Hasher{}
	rng := newPRNG(seed)
	for sq := 0; sq < 64; sq++ {
		for p := Piece(0); p < NoPiece; p++ {
			h.pieceTable[sq][p] = rng.next()
		}
	}
	h.sideTable[White] = 0 // White-to-move contributes nothing; only Black XORs in a key.
	h.sideTable[Black] = rng.next()
	return h
}

// DefaultHasher is the shared table used by State.Hash() and the opening
// book (same seed, so build-time and runtime hashes always agree).
var DefaultHasher = NewHasher(DefaultZobristSeed)

// Hash computes the Zobrist fingerprint of a Board+side-to-move pair:
// XOR of the (square, piece) key for every occupied slot, XOR the
// side-to-move key. Per spec.md §8, the hash depends ONLY on piece
// placement and side to move — never on castling rights, en-passant
// target, or clocks.
func (h *Hasher) Hash(b *Board, turn Color) Hash {
	var key uint64
	for p := Piece(0); p < NoPiece; p++ {
		bb := b.PieceBoard(p)
		for bb != 0 {
			sq := bb.Pop()
			key ^= h.pieceTable[sq][p]
		}
	}
	key ^= h.sideTable[turn]
	return Hash(key)
}

// Hash computes s's Zobrist fingerprint using DefaultHasher.
func (s State) Hash() Hash {
	return DefaultHasher.Hash(s.Board, s.Turn)
}
