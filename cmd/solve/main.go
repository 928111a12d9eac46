// Command solve finds a minimal move sequence for a level file and prints
// it. Exit status is non-zero when the level cannot be solved or the search
// hits its state limit.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sokoban-go/sokoban/game/engine"
	"github.com/sokoban-go/sokoban/game/solver"
)

func main() {
	maxStates := flag.Int("max-states", solver.DefaultMaxStates, "Maximum number of board states to explore")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] LEVEL_FILE\n\nOptions:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	level, err := engine.LoadLevelConfig(flag.Arg(0))
	if err != nil {
		fmt.Printf("Error loading level: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Solving %s (%dx%d)...\n", level.Name, level.Width, level.Height)

	result, err := solver.Solve(level, *maxStates)
	if err != nil {
		fmt.Printf("%v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Solved in %d moves (%d states explored)\n", len(result.Moves), result.StatesExplored)
	fmt.Println(strings.Join(result.Moves, ","))
}
