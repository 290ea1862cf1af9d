// Command kestrel-bookgen compiles a corpus of game transcripts into the
// Badger-backed opening book database internal/book serves at runtime
// (spec.md §4.11, SPEC_FULL.md §4.B).
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/kestrelchess/kestrel/internal/book"
)

func main() {
	out := flag.String("out", "book.db", "output directory for the compiled Badger database")
	maxPlies := flag.Int("plies", 20, "maximum half-moves recorded per game")
	flag.Parse()

	if flag.NArg() == 0 {
		log.Fatal("usage: kestrel-bookgen -out book.db transcripts.txt [more.txt ...]")
	}

	bld := book.NewBuilder(*maxPlies)
	var totalAdded, totalSkipped int

	for _, path := range flag.Args() {
		f, err := os.Open(path)
		if err != nil {
			log.Fatalf("opening %s: %v", path, err)
		}
		added, skipped, err := bld.AddCorpus(f)
		f.Close()
		if err != nil {
			log.Fatalf("reading %s: %v", path, err)
		}
		totalAdded += added
		totalSkipped += skipped
		fmt.Printf("%s: %d games added, %d skipped\n", path, added, skipped)
	}

	if err := bld.Write(*out); err != nil {
		log.Fatalf("writing book to %s: %v", *out, err)
	}

	fmt.Printf("wrote %d positions from %d games (%d skipped) to %s\n",
		bld.Positions(), totalAdded, totalSkipped, *out)
}
