// Package uci implements the Universal Chess Interface protocol, wiring
// stdin/stdout commands to the position model, searcher, and opening book
// (spec.md §6). Grounded on the teacher's internal/uci/uci.go command
// loop, adapted to the State/search.Analyze contract this specification
// uses in place of the teacher's *Engine.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kestrelchess/kestrel/internal/board"
	"github.com/kestrelchess/kestrel/internal/book"
	"github.com/kestrelchess/kestrel/internal/eval"
	"github.com/kestrelchess/kestrel/internal/notation"
	"github.com/kestrelchess/kestrel/internal/search"
)

const engineName = "Kestrel"
const engineAuthor = "kestrel contributors"

// UCI is a single protocol session: one position, one evaluator, one
// warm transposition table/best-move artifact carried across searches.
type UCI struct {
	out       io.Writer
	log       *zap.SugaredLogger
	evaluator eval.Evaluator
	book      book.Source
	ttSizeMB  int
	rngSeed   uint64

	state    board.State
	history  *search.StateHistory
	artifact *search.Artifact

	control    chan<- search.Control
	done       chan struct{}
	lastStatus search.Progress
}

// New creates a session that writes engine responses to out and logs
// diagnostics through log.
func New(out io.Writer, log *zap.SugaredLogger, ttSizeMB int, ob book.Source) *UCI {
	return &UCI{
		out:       out,
		log:       log,
		evaluator: eval.NewEvaluator(),
		book:      ob,
		ttSizeMB:  ttSizeMB,
		rngSeed:   0x5EED,
		state:     board.StartingState(),
		history:   search.NewStateHistory(),
	}
}

func (u *UCI) reply(format string, args ...any) {
	fmt.Fprintf(u.out, format+"\n", args...)
}

// Run reads commands from r until "quit" or EOF (spec.md §6).
func (u *UCI) Run(r io.Reader) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "uci":
			u.handleUCI()
		case "isready":
			u.reply("readyok")
		case "ucinewgame":
			u.handleNewGame()
		case "position":
			u.handlePosition(args)
		case "go":
			u.handleGo(args)
		case "stop":
			u.handleStop()
		case "quit":
			u.handleStop()
			return
		case "d", ".board":
			u.reply("%s", u.state.Board.String())
		case ".status":
			u.handleStatus()
		default:
			u.log.Debugw("unrecognized UCI command", "command", cmd)
		}
	}
}

func (u *UCI) handleUCI() {
	u.reply("id name %s", engineName)
	u.reply("id author %s", engineAuthor)
	u.reply("option name Hash type spin default %d min 1 max 65536", u.ttSizeMB)
	u.reply("uciok")
}

func (u *UCI) handleNewGame() {
	u.state = board.StartingState()
	u.history = search.NewStateHistory()
	u.artifact = nil
}

// handlePosition implements "position startpos|fen <fen> [moves ...]". It
// also rebuilds history from the replayed moves, so the searcher can
// detect repeating the actual game rather than only repetitions that
// arise within its own search tree (spec.md §9's "StateHistory... the
// UCI layer is expected to rebuild it from the played game").
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	idx := 0
	history := search.NewStateHistory()
	switch args[0] {
	case "startpos":
		u.state = board.StartingState()
		idx = 1
	case "fen":
		fenFields := args[1:]
		movesAt := len(fenFields)
		for i, f := range fenFields {
			if f == "moves" {
				movesAt = i
				break
			}
		}
		fen := strings.Join(fenFields[:movesAt], " ")
		s, err := notation.ParseFEN(fen)
		if err != nil {
			u.log.Warnw("invalid FEN from position command", "fen", fen, "error", err)
			u.reply("info string invalid FEN %q: %v", fen, err)
			return
		}
		u.state = s
		idx = 1 + movesAt
	default:
		return
	}

	if idx < len(args) && args[idx] == "moves" {
		for _, token := range args[idx+1:] {
			q, err := notation.ParseLongAlgebraic(token)
			if err != nil {
				u.log.Warnw("invalid move token", "token", token, "error", err)
				u.reply("info string invalid move token %q: %v", token, err)
				return
			}
			legal := board.GenerateLegalMoves(u.state)
			result, ok := legal.Find(q)
			if !ok {
				u.log.Warnw("move not legal in current position", "token", token)
				u.reply("info string illegal move %q in current position", token)
				return
			}
			history.Push(u.state.Hash())
			u.state = result.State
		}
	}
	u.history = history
}

// handleGo implements "go [depth N] [movetime MS]" (spec.md §6); other
// arguments, including wtime/btime, are ignored. Depth (default 12) is the
// only limit the searcher itself understands; movetime is enforced here by
// sending Stop after the deadline, and without it the search has no time
// limit.
func (u *UCI) handleGo(args []string) {
	depth := 12
	var moveTime time.Duration

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			if i+1 < len(args) {
				if d, err := strconv.Atoi(args[i+1]); err == nil {
					depth = d
				}
				i++
			}
		case "movetime":
			if i+1 < len(args) {
				if ms, err := strconv.Atoi(args[i+1]); err == nil {
					moveTime = time.Duration(ms) * time.Millisecond
				}
				i++
			}
		}
	}

	if u.book != nil {
		if move, ok := u.book.Weighted(u.state, func(n uint32) uint32 { return rand.Uint32() % n }); ok {
			u.reply("bestmove %s", notation.FormatLongAlgebraic(move))
			return
		}
	}

	join, control, events := search.Analyze(u.state, u.rngSeed, u.evaluator, depth, u.artifact, u.history)
	u.control = control
	u.done = make(chan struct{})

	var timer *time.Timer
	if moveTime > 0 {
		timer = time.AfterFunc(moveTime, u.handleStop)
	}

	go func() {
		defer close(u.done)
		for ev := range events {
			switch e := ev.(type) {
			case search.Progress:
				u.lastStatus = e
				u.reply("info depth %d nodes %d", e.Depth, e.NodesSearched)
			case search.BestMove:
				pv := make([]string, len(e.Line))
				for i, m := range e.Line {
					pv[i] = notation.FormatLongAlgebraic(m)
				}
				u.reply("info score cp %d pv %s", int(e.Evaluation), strings.Join(pv, " "))
			case search.Warning:
				u.log.Warnw("search warning", "message", e.Message)
			}
		}
	}()

	result := <-join
	close(control)
	u.control = nil
	<-u.done
	if timer != nil {
		timer.Stop()
	}
	u.artifact = &result.Artifact
	u.reply("bestmove %s", notation.FormatLongAlgebraic(result.Artifact.BestMove))
}

func (u *UCI) handleStop() {
	if u.control == nil {
		return
	}
	select {
	case u.control <- search.Stop{}:
	default:
	}
}

// handleStatus prints the last completed iteration's progress — a
// non-standard diagnostic command (spec.md §6).
func (u *UCI) handleStatus() {
	u.reply("info string status depth=%d nodes=%d saturation=%.3f",
		u.lastStatus.Depth, u.lastStatus.NodesSearched, u.lastStatus.TranspositionSaturation)
}
