package search

import (
	"github.com/kestrelchess/kestrel/internal/board"
	"github.com/kestrelchess/kestrel/internal/eval"
)

// Event is the sum type streamed back over analyze()'s event channel
// (spec.md §4.9).
type Event interface{ isEvent() }

// Progress reports the end of one completed iterative-deepening iteration.
type Progress struct {
	Depth                   int
	NodesSearched           uint64
	TranspositionSaturation float64
}

func (Progress) isEvent() {}

// BestMove reports the best line found so far, refined as the search goes
// deeper.
type BestMove struct {
	Line       []board.Move
	Evaluation eval.Evaluation
}

func (BestMove) isEvent() {}

// WarningKind classifies a Warning event.
type WarningKind int

const (
	WarningTranspositionSaturation WarningKind = iota
)

// Warning reports a condition worth surfacing without stopping the search
// — e.g. transposition-table saturation exceeding 0.5 (spec.md §4.8).
type Warning struct {
	Message string
	Kind    WarningKind
}

func (Warning) isEvent() {}

// Control is the sum type accepted over analyze()'s control channel.
type Control interface{ isControl() }

// Stop requests the search halt and return its best result so far.
type Stop struct{}

func (Stop) isControl() {}
