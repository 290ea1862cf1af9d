// Package search implements the iterative-deepening, lazy-SMP alpha-beta
// searcher: the sharded transposition table, quiescence search, negamax
// recursion, perft, and the asynchronous analyze() coordinator
// (spec.md §4.8, §4.9, §4.10). Concurrency is realized the way the
// teacher's worker pool does it — goroutines, channels, sync.RWMutex, and
// an atomic.Bool cancellation token — generalized from one flat table to
// spec.md's sharded, bucketed design.
package search

import (
	"sync"

	"github.com/kestrelchess/kestrel/internal/board"
	"github.com/kestrelchess/kestrel/internal/eval"
)

// Bound identifies which side of the true value a stored Evaluation
// represents (spec.md §4.9's Exact/LowerBound/UpperBound probe outcomes).
type Bound uint8

const (
	BoundExact Bound = iota
	BoundLower
	BoundUpper
)

// Entry is a single cached search result (spec.md §4.8).
type Entry struct {
	Hash     board.Hash
	Move     board.Move
	Eval     eval.Evaluation
	Depth    int
	Bound    Bound
	occupied bool
}

// bucketSlots is the number of (hash, entry) slots per bucket.
const bucketSlots = 8

// numShards is the number of independently-locked shards the table is
// divided into (spec.md §4.8: "~128 shards").
const numShards = 128

type bucket struct {
	slots [bucketSlots]Entry
}

type shard struct {
	mu       sync.RWMutex
	buckets  []bucket
	inserted int
}

// TranspositionTable is the sharded, bucketed cache of search results
// shared across every lazy-SMP worker (spec.md §4.8).
type TranspositionTable struct {
	shards          [numShards]*shard
	bucketsPerShard uint64
}

// entryBytes approximates an Entry's footprint for the size-to-bucket-count
// conversion below (hash 8 + move 4 + eval 8 + depth 8 + bound 1, rounded
// up for alignment).
const entryBytes = 32

// NewTranspositionTable builds a table sized to roughly sizeMB megabytes,
// split evenly across numShards shards (default ~1 GiB per spec.md §4.8).
func NewTranspositionTable(sizeMB int) *TranspositionTable {
	if sizeMB <= 0 {
		sizeMB = 1024
	}
	totalBytes := uint64(sizeMB) * 1024 * 1024
	totalBuckets := totalBytes / (bucketSlots * entryBytes)
	bucketsPerShard := totalBuckets / numShards
	bucketsPerShard = roundDownPow2(bucketsPerShard)
	if bucketsPerShard == 0 {
		bucketsPerShard = 1
	}

	tt := &TranspositionTable{bucketsPerShard: bucketsPerShard}
	for i := range tt.shards {
		tt.shards[i] = &shard{buckets: make([]bucket, bucketsPerShard)}
	}
	return tt
}

func roundDownPow2(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

// shardAndBucket splits a hash into a shard index (low 7 bits, since
// numShards == 128) and a bucket index within that shard.
func (tt *TranspositionTable) shardAndBucket(hash board.Hash) (int, uint64) {
	h := uint64(hash)
	shardIdx := int(h & (numShards - 1))
	bucketIdx := (h >> 7) & (tt.bucketsPerShard - 1)
	return shardIdx, bucketIdx
}

// Probe looks up hash, scanning its bucket's slots for an exact match
// (spec.md §4.8).
func (tt *TranspositionTable) Probe(hash board.Hash) (Entry, bool) {
	shardIdx, bucketIdx := tt.shardAndBucket(hash)
	s := tt.shards[shardIdx]
	s.mu.RLock()
	defer s.mu.RUnlock()
	b := &s.buckets[bucketIdx]
	for i := range b.slots {
		if b.slots[i].occupied && b.slots[i].Hash == hash {
			return b.slots[i], true
		}
	}
	return Entry{}, false
}

// Store inserts or overwrites a result for hash (spec.md §4.8): an empty
// slot is filled and counted as new; a slot with the same hash is
// overwritten with no count change; otherwise a slot is deterministically
// chosen by (hash XOR move bits) mod bucketSlots and replaced.
func (tt *TranspositionTable) Store(hash board.Hash, depth int, e eval.Evaluation, bound Bound, move board.Move) {
	shardIdx, bucketIdx := tt.shardAndBucket(hash)
	s := tt.shards[shardIdx]
	s.mu.Lock()
	defer s.mu.Unlock()
	b := &s.buckets[bucketIdx]

	entry := Entry{Hash: hash, Move: move, Eval: e, Depth: depth, Bound: bound, occupied: true}

	for i := range b.slots {
		if !b.slots[i].occupied {
			b.slots[i] = entry
			s.inserted++
			return
		}
		if b.slots[i].Hash == hash {
			b.slots[i] = entry
			return
		}
	}

	replaceIdx := (uint64(hash) ^ uint64(move)) % bucketSlots
	b.slots[replaceIdx] = entry
}

// Saturation returns the fraction of slots holding a stored entry, across
// every shard (spec.md §4.8).
func (tt *TranspositionTable) Saturation() float64 {
	var inserted, total uint64
	for _, s := range tt.shards {
		s.mu.RLock()
		inserted += uint64(s.inserted)
		s.mu.RUnlock()
	}
	total = numShards * tt.bucketsPerShard * bucketSlots
	if total == 0 {
		return 0
	}
	return float64(inserted) / float64(total)
}

// PrincipalVariation walks the table from s, following each position's
// stored best move, stopping at maxDepth moves or the first cache miss
// (spec.md §4.8).
func (tt *TranspositionTable) PrincipalVariation(s board.State, maxDepth int) []board.Move {
	line := make([]board.Move, 0, maxDepth)
	cur := s
	for i := 0; i < maxDepth; i++ {
		entry, ok := tt.Probe(cur.Hash())
		if !ok || entry.Move == board.NoMove {
			break
		}
		next, err := cur.Apply(entry.Move)
		if err != nil {
			break
		}
		line = append(line, entry.Move)
		cur = next
	}
	return line
}
