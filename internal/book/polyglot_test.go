package book

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/kestrelchess/kestrel/internal/board"
)

func TestLoadPolyglotReaderResolvesKnownMove(t *testing.T) {
	s := board.StartingState()

	var buf bytes.Buffer
	var raw [16]byte
	binary.BigEndian.PutUint64(raw[0:8], polyglotHash(s))
	// e2e4: fromFile=4 fromRank=1, toFile=4 toRank=3, no promotion.
	moveData := uint16(4) | uint16(3)<<3 | uint16(4)<<6 | uint16(1)<<9
	binary.BigEndian.PutUint16(raw[8:10], moveData)
	binary.BigEndian.PutUint16(raw[10:12], 10)
	buf.Write(raw[:])

	pb, err := LoadPolyglotReader(&buf)
	if err != nil {
		t.Fatalf("LoadPolyglotReader: %v", err)
	}

	entries, ok := pb.Lookup(s)
	if !ok || len(entries) != 1 {
		t.Fatalf("expected one resolved entry, got %v ok=%v", entries, ok)
	}
	if entries[0].Move.Destination() != board.E4 || entries[0].Move.Piece() != board.Pawn {
		t.Errorf("expected e2e4, got %v", entries[0].Move)
	}

	move, ok := pb.Weighted(s, func(n uint32) uint32 { return 0 })
	if !ok {
		t.Fatalf("expected Weighted to return the single entry")
	}
	if move.Destination() != board.E4 {
		t.Errorf("expected Weighted to return e2e4, got %v", move)
	}
}

func TestLoadPolyglotReaderMissesUnknownPosition(t *testing.T) {
	pb, err := LoadPolyglotReader(bytes.NewReader(nil))
	if err != nil {
		t.Fatalf("LoadPolyglotReader: %v", err)
	}
	if _, ok := pb.Lookup(board.StartingState()); ok {
		t.Errorf("expected no entries in an empty book")
	}
}
