// Command kestrel-uci runs the engine as a UCI protocol handler speaking
// over stdin/stdout, the integration point a chess GUI drives (spec.md
// §6). Grounded on the teacher's cmd/chessplay-uci/main.go entry point,
// pared down to drop the NNUE-weight auto-discovery this specification's
// evaluator has no use for.
package main

import (
	"flag"
	"os"

	"go.uber.org/zap"

	"github.com/kestrelchess/kestrel/internal/book"
	"github.com/kestrelchess/kestrel/internal/config"
	"github.com/kestrelchess/kestrel/internal/uci"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	logger := newLogger(cfg.LogLevel)
	defer logger.Sync()

	var sources book.MultiSource
	if cfg.BookPath != "" {
		ob, err := book.Open(cfg.BookPath)
		if err != nil {
			logger.Warnw("opening book unavailable", "path", cfg.BookPath, "error", err)
		} else {
			defer ob.Close()
			sources = append(sources, ob)
		}
	}
	if cfg.PolyglotBookPath != "" {
		pb, err := book.LoadPolyglotFile(cfg.PolyglotBookPath)
		if err != nil {
			logger.Warnw("polyglot book unavailable", "path", cfg.PolyglotBookPath, "error", err)
		} else {
			sources = append(sources, pb)
		}
	}

	var ob book.Source
	if len(sources) > 0 {
		ob = sources
	}

	protocol := uci.New(os.Stdout, logger.Sugar(), cfg.TranspositionSizeMB, ob)
	protocol.Run(os.Stdin)
}

func newLogger(level string) *zap.Logger {
	zapCfg := zap.NewProductionConfig()
	if lvl, err := zap.ParseAtomicLevel(level); err == nil {
		zapCfg.Level = lvl
	}
	logger, err := zapCfg.Build()
	if err != nil {
		logger = zap.NewNop()
	}
	return logger
}
