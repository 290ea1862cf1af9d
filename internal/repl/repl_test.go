package repl

import "testing"

func TestRunCommandPerft(t *testing.T) {
	m := New()
	if m.runCommand(".perft 2") {
		t.Fatal("perft should not quit the console")
	}
	last := m.lines[len(m.lines)-1]
	if last != "perft(2) = 400" {
		t.Errorf("unexpected perft output: %q", last)
	}
}

func TestRunCommandMoveAndBoard(t *testing.T) {
	m := New()
	m.runCommand("e2e4")
	m.runCommand(".board")
	if len(m.lines) < 2 {
		t.Fatalf("expected board output appended, got %v", m.lines)
	}
}

func TestRunCommandQuit(t *testing.T) {
	m := New()
	if !m.runCommand(".quit") {
		t.Error("expected .quit to signal exit")
	}
}

func TestRunCommandInvalidMove(t *testing.T) {
	m := New()
	m.runCommand("z9z9")
	last := m.lines[len(m.lines)-1]
	if last == "" {
		t.Error("expected an error message for an invalid move")
	}
}
