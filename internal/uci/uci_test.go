package uci

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func newTestUCI(t *testing.T) (*UCI, *bytes.Buffer) {
	t.Helper()
	logger := zap.NewNop().Sugar()
	out := &bytes.Buffer{}
	return New(out, logger, 16, nil), out
}

func TestHandleUCIRepliesUciok(t *testing.T) {
	u, out := newTestUCI(t)
	u.Run(strings.NewReader("uci\n"))
	if !strings.Contains(out.String(), "uciok") {
		t.Errorf("expected uciok in output, got %q", out.String())
	}
}

func TestHandlePositionAndGo(t *testing.T) {
	u, out := newTestUCI(t)
	u.Run(strings.NewReader("position startpos moves e2e4 e7e5\ngo depth 1\n"))
	if !strings.Contains(out.String(), "bestmove") {
		t.Errorf("expected a bestmove line, got %q", out.String())
	}
}
