// Package book implements the opening book: a build-time-compiled mapping
// from a position's Hash to the set of moves recommended there, backed by
// a Badger key-value database (spec.md §4.11). Grounded on the teacher's
// internal/book/book.go Polyglot reader, replaced with the hash-seed and
// move-encoding this specification uses; the on-disk store itself is
// adapted from the badger usage shown in the rest of the example pack's
// storage-layer manifests (see DESIGN.md).
package book

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sort"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/kestrelchess/kestrel/internal/board"
)

// ErrClosed is returned by any Book method called after Close.
var ErrClosed = errors.New("book: database is closed")

// Entry is one recommended move at a position, with the number of corpus
// games it was observed in (used as its selection weight).
type Entry struct {
	Move  board.Move
	Count uint32
}

// Book is a read-only handle onto a compiled opening-book database.
type Book struct {
	db *badger.DB
}

// Open opens the Badger database at dir in read-only mode for serving
// lookups at runtime.
func Open(dir string) (*Book, error) {
	opts := badger.DefaultOptions(dir).WithReadOnly(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("book: open %s: %w", dir, err)
	}
	return &Book{db: db}, nil
}

// Close releases the underlying database handle.
func (b *Book) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

// key encodes a Hash as the big-endian bytes Badger uses as the row key.
func key(h board.Hash) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(h))
	return buf[:]
}

// encodeEntries serializes a set of Entry into a value blob: a 4-byte
// count followed by (4-byte move, 4-byte count) pairs.
func encodeEntries(entries []Entry) []byte {
	buf := make([]byte, 4+8*len(entries))
	binary.BigEndian.PutUint32(buf[0:4], uint32(len(entries)))
	for i, e := range entries {
		off := 4 + i*8
		binary.BigEndian.PutUint32(buf[off:off+4], uint32(e.Move))
		binary.BigEndian.PutUint32(buf[off+4:off+8], e.Count)
	}
	return buf
}

func decodeEntries(buf []byte) ([]Entry, error) {
	if len(buf) < 4 {
		return nil, fmt.Errorf("book: truncated entry header")
	}
	n := binary.BigEndian.Uint32(buf[0:4])
	if len(buf) < int(4+8*n) {
		return nil, fmt.Errorf("book: truncated entry body")
	}
	entries := make([]Entry, n)
	for i := range entries {
		off := 4 + i*8
		entries[i] = Entry{
			Move:  board.Move(binary.BigEndian.Uint32(buf[off : off+4])),
			Count: binary.BigEndian.Uint32(buf[off+4 : off+8]),
		}
	}
	return entries, nil
}

// Lookup returns the recommended moves at s, sorted by descending
// frequency, or (nil, false) if the position isn't in the book (spec.md
// §4.11's `lookup(state) → Option<set>`).
func (b *Book) Lookup(s board.State) ([]Entry, bool) {
	if b == nil || b.db == nil {
		return nil, false
	}

	var entries []Entry
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(s.Hash()))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			decoded, err := decodeEntries(val)
			if err != nil {
				return err
			}
			entries = decoded
			return nil
		})
	})
	if err != nil || entries == nil {
		return nil, false
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Count > entries[j].Count })
	return entries, true
}

// Weighted performs a Lookup and returns a single move chosen by weighted
// random selection over Count, for use as the engine's book-move reply.
func (b *Book) Weighted(s board.State, rngUint32 func(n uint32) uint32) (board.Move, bool) {
	entries, ok := b.Lookup(s)
	if !ok || len(entries) == 0 {
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
