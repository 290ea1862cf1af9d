// Command kestrel-cli runs the interactive operator console for
// exploring positions, running perft, and driving analyze() by hand
// (spec.md §6).
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kestrelchess/kestrel/internal/repl"
)

func main() {
	p := tea.NewProgram(repl.New())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
