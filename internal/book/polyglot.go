package book

import (
	"encoding/binary"
	"io"
	"os"
	"sort"

	"github.com/kestrelchess/kestrel/internal/board"
)

// Source is satisfied by both the Badger-backed Book and PolyglotBook, so
// internal/uci and internal/repl can hold either without caring which
// backed the opening move (spec.md §4.11 names only the lookup contract,
// not the storage format).
type Source interface {
	Lookup(s board.State) ([]Entry, bool)
	Weighted(s board.State, rngUint32 func(n uint32) uint32) (board.Move, bool)
}

// MultiSource tries each Source in order, returning the first hit — used
// to prefer the compiled Badger book over a supplementary third-party
// Polyglot file when both are configured.
type MultiSource []Source

func (m MultiSource) Lookup(s board.State) ([]Entry, bool) {
	for _, src := range m {
		if src == nil {
			continue
		}
		if entries, ok := src.Lookup(s); ok {
			return entries, true
		}
	}
	return nil, false
}

func (m MultiSource) Weighted(s board.State, rngUint32 func(n uint32) uint32) (board.Move, bool) {
	for _, src := range m {
		if src == nil {
			continue
		}
		if move, ok := src.Weighted(s, rngUint32); ok {
			return move, true
		}
	}
	return board.NoMove, false
}

// PolyglotBook serves moves out of a third-party Polyglot-format opening
// book (the ubiquitous .bin format most chess GUIs and engines share),
// loaded fully into memory. Adapted from the teacher's
// internal/board/polyglot.go + internal/book/book.go pair onto this
// repository's immutable board.State and MoveQuery resolution instead of
// the teacher's mutable Position/make-unmake model (see DESIGN.md).
type PolyglotBook struct {
	entries map[uint64][]polyglotEntry
}

type polyglotEntry struct {
	query  board.MoveQuery
	weight uint32
}

// LoadPolyglotFile opens and parses a Polyglot .bin file.
func LoadPolyglotFile(path string) (*PolyglotBook, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadPolyglotReader(f)
}

// LoadPolyglotReader parses a Polyglot book from r. Each entry is 16 bytes:
// 8-byte big-endian position key, 2-byte move, 2-byte weight, 4 bytes of
// learn data this repo ignores.
func LoadPolyglotReader(r io.Reader) (*PolyglotBook, error) {
	pb := &PolyglotBook{entries: make(map[uint64][]polyglotEntry)}

	var raw [16]byte
	for {
		_, err := io.ReadFull(r, raw[:])
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		key := binary.BigEndian.Uint64(raw[0:8])
		moveData := binary.BigEndian.Uint16(raw[8:10])
		weight := binary.BigEndian.Uint16(raw[10:12])

		query, ok := decodePolyglotMove(moveData)
		if !ok {
			continue
		}
		pb.entries[key] = append(pb.entries[key], polyglotEntry{query: query, weight: uint32(weight)})
	}
	return pb, nil
}

// decodePolyglotMove unpacks the Polyglot 16-bit move encoding (bits
// 0-5 to-square, 6-11 from-square, 12-14 promotion piece) into a
// MoveQuery, remapping the format's king-captures-rook castling encoding
// to this engine's king-steps-two-squares destination.
func decodePolyglotMove(data uint16) (board.MoveQuery, bool) {
	toFile := int(data & 7)
	toRank := int((data >> 3) & 7)
	fromFile := int((data >> 6) & 7)
	fromRank := int((data >> 9) & 7)
	promo := (data >> 12) & 7

	from := board.NewSquare(fromFile, fromRank)
	to := board.NewSquare(toFile, toRank)

	switch {
	case from == board.E1 && to == board.H1:
		to = board.G1
	case from == board.E1 && to == board.A1:
		to = board.C1
	case from == board.E8 && to == board.H8:
		to = board.G8
	case from == board.E8 && to == board.A8:
		to = board.C8
	}

	originRank, originFile := from.Rank(), from.File()
	destRank, destFile := to.Rank(), to.File()
	q := board.MoveQuery{
		OriginRank: &originRank,
		OriginFile: &originFile,
		DestRank:   &destRank,
		DestFile:   &destFile,
	}

	if promo > 0 {
		promoTypes := [...]board.PieceType{board.NoPieceType, board.Knight, board.Bishop, board.Rook, board.Queen}
		if int(promo) >= len(promoTypes) {
			return board.MoveQuery{}, false
		}
		pt := promoTypes[promo]
		q.Promotion = &pt
	}

	return q, true
}

// Lookup resolves every book entry at s against its legal moves, sorted by
// descending weight. Entries whose origin/destination no longer match a
// legal move (a stale or foreign-engine book disagreeing with this move
// generator) are silently dropped.
func (pb *PolyglotBook) Lookup(s board.State) ([]Entry, bool) {
	if pb == nil {
		return nil, false
	}
	raw, ok := pb.entries[polyglotHash(s)]
	if !ok || len(raw) == 0 {
		return nil, false
	}

	legal := board.GenerateLegalMoves(s)
	var entries []Entry
	for _, re := range raw {
		result, found := legal.Find(re.query)
		if !found {
			continue
		}
		entries = append(entries, Entry{Move: result.Move, Count: re.weight})
	}
	if len(entries) == 0 {
		return nil, false
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Count > entries[j].Count })
	return entries, true
}

// Weighted performs a Lookup and returns a single move chosen by weighted
// random selection over Count.
func (pb *PolyglotBook) Weighted(s board.State, rngUint32 func(n uint32) uint32) (board.Move, bool) {
	entries, ok := pb.Lookup(s)
	if !ok {
		return board.NoMove, false
	}
	var total uint32
	for _, e := range entries {
		total += e.Count
	}
	if total == 0 {
		return entries[0].Move, true
	}
	r := rngUint32(total)
	var cumulative uint32
	for _, e := range entries {
		cumulative += e.Count
		if r < cumulative {
			return e.Move, true
		}
	}
	return entries[len(entries)-1].Move, true
}
