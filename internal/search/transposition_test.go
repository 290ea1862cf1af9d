package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelchess/kestrel/internal/board"
	"github.com/kestrelchess/kestrel/internal/eval"
)

func TestTranspositionStoreProbe(t *testing.T) {
	tt := NewTranspositionTable(1)
	s := board.StartingState()
	hash := s.Hash()

	_, ok := tt.Probe(hash)
	require.False(t, ok, "expected miss on empty table")

	move := board.GenerateLegalMoves(s)[0].Move
	tt.Store(hash, 4, eval.Evaluation(37), BoundExact, move)

	entry, ok := tt.Probe(hash)
	require.True(t, ok, "expected hit after store")
	assert.Equal(t, eval.Evaluation(37), entry.Eval)
	assert.Equal(t, 4, entry.Depth)
	assert.Equal(t, BoundExact, entry.Bound)
	assert.Equal(t, move, entry.Move)
}

func TestTranspositionOverwriteSameHash(t *testing.T) {
	tt := NewTranspositionTable(1)
	s := board.StartingState()
	hash := s.Hash()
	move := board.GenerateLegalMoves(s)[0].Move

	tt.Store(hash, 2, eval.Evaluation(10), BoundLower, move)
	tt.Store(hash, 5, eval.Evaluation(20), BoundExact, move)

	entry, ok := tt.Probe(hash)
	require.True(t, ok)
	assert.Equal(t, 5, entry.Depth)
	assert.Equal(t, eval.Evaluation(20), entry.Eval)
	assert.Equal(t, BoundExact, entry.Bound)
	assert.Equal(t, 1, tt.shards[hash2shard(tt, hash)].inserted, "overwrite must not double-count saturation")
}

func hash2shard(tt *TranspositionTable, hash board.Hash) int {
	idx, _ := tt.shardAndBucket(hash)
	return idx
}

func TestTranspositionSaturation(t *testing.T) {
	tt := NewTranspositionTable(1)
	assert.Zero(t, tt.Saturation())

	s := board.StartingState()
	moves := board.GenerateLegalMoves(s)
	for i, r := range moves {
		tt.Store(board.Hash(uint64(i+1)<<20), i, eval.Evaluation(i), BoundExact, r.Move)
	}

	assert.Greater(t, tt.Saturation(), 0.0)
}

func TestPrincipalVariationStopsOnMiss(t *testing.T) {
	tt := NewTranspositionTable(1)
	s := board.StartingState()
	line := tt.PrincipalVariation(s, 5)
	assert.Empty(t, line)
}
