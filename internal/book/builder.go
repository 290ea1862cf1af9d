package book

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/kestrelchess/kestrel/internal/board"
	"github.com/kestrelchess/kestrel/internal/notation"
)

// moveNumberPattern matches "12." / "12..." move-number prefixes so they
// can be stripped from a transcript line; result markers are not matched.
var moveNumberPattern = regexp.MustCompile(`\d+\.(\.\.)?`)

// Builder accumulates (hash, move) observations from a corpus of game
// transcripts and writes the compiled counts to a fresh Badger database
// (spec.md §4.11's "parse a corpus... recording (hash(state_before),
// move_applied) pairs up to a fixed depth").
type Builder struct {
	maxPlies int
	counts   map[board.Hash]map[board.Move]uint32
}

// NewBuilder returns a Builder that records at most maxPlies half-moves
// per game.
func NewBuilder(maxPlies int) *Builder {
	return &Builder{
		maxPlies: maxPlies,
		counts:   make(map[board.Hash]map[board.Move]uint32),
	}
}

// AddGame parses one game transcript (SAN movetext, optionally prefixed
// with move numbers and a trailing result marker) and records its
// opening.
func (bld *Builder) AddGame(transcript string) error {
	tokens := tokenizeTranscript(transcript)
	state := board.StartingState()

	for i, tok := range tokens {
		if i >= bld.maxPlies {
			break
		}
		query, err := notation.ParseSAN(tok)
		if err != nil {
			return fmt.Errorf("book: game token %q: %w", tok, err)
		}
		legal := board.GenerateLegalMoves(state)
		matches := legal.FindAll(query)
		if len(matches) == 0 {
			return fmt.Errorf("book: token %q has no matching legal move at ply %d", tok, i)
		}
		if len(matches) > 1 {
			return fmt.Errorf("book: token %q at ply %d: %w", tok, i, board.ErrAmbiguousMove)
		}
		result := matches[0]

		hash := state.Hash()
		if bld.counts[hash] == nil {
			bld.counts[hash] = make(map[board.Move]uint32)
		}
		bld.counts[hash][result.Move]++

		state = result.State
	}
	return nil
}

// AddCorpus reads newline-delimited game transcripts from r, one game per
// line, skipping lines a game fails to parse rather than aborting the
// whole corpus.
func (bld *Builder) AddCorpus(r io.Reader) (gamesAdded, gamesSkipped int, err error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if addErr := bld.AddGame(line); addErr != nil {
			gamesSkipped++
			continue
		}
		gamesAdded++
	}
	if scanErr := scanner.Err(); scanErr != nil {
		return gamesAdded, gamesSkipped, scanErr
	}
	return gamesAdded, gamesSkipped, nil
}

func tokenizeTranscript(transcript string) []string {
	fields := strings.Fields(transcript)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = moveNumberPattern.ReplaceAllString(f, "")
		switch f {
		case "", "1-0", "0-1", "1/2-1/2", "*":
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// Write compiles the accumulated counts into a fresh Badger database at
// dir, one row per distinct position hash.
func (bld *Builder) Write(dir string) error {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return fmt.Errorf("book: open %s for write: %w", dir, err)
	}
	defer db.Close()

	return db.Update(func(txn *badger.Txn) error {
		for hash, moves := range bld.counts {
			entries := make([]Entry, 0, len(moves))
			for move, count := range moves {
				entries = append(entries, Entry{Move: move, Count: count})
			}
			if err := txn.Set(key(hash), encodeEntries(entries)); err != nil {
				return err
			}
		}
		return nil
	})
}

// Positions returns the number of distinct positions recorded so far.
func (bld *Builder) Positions() int {
	return len(bld.counts)
}
