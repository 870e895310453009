// ttt plays interactive tic-tac-toe in the terminal, human against one of the
// registered engines.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/janpfeifer/must"
	"github.com/janpfeifer/tttGo/internal/players"
	_ "github.com/janpfeifer/tttGo/internal/players/default"
	"github.com/janpfeifer/tttGo/internal/searchers"
	"github.com/janpfeifer/tttGo/internal/state"
	"github.com/janpfeifer/tttGo/internal/ui/cli"
	"github.com/janpfeifer/tttGo/internal/ui/spinning"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

var (
	flagHuman = flag.String("human", "X",
		"Which player the human plays, \"X\" (starts) or \"O\".")
	flagEngine = flag.String("engine", players.DefaultConfig,
		"Engine configuration string, e.g. \"mcts,c=1.4,seed=42\" or \"random\".")
	flagNumSimulations = flag.Int("simulations", 100,
		"Number of simulation rollouts the engine runs before each of its moves.")
	flagStart = flag.String("start", "",
		"Start from the given position instead of the empty board, as a 9-mark "+
			"diagram like \"X.O|.X.|...\". X is assumed to have moved first.")
	flagSeed = flag.Int64("seed", 0,
		"Seed of the engine's random-fallback generator. 0 seeds from the clock.")

	globalCtx = context.Background()
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	var cancel func()
	globalCtx, cancel = context.WithCancel(globalCtx)
	spinning.SafeInterrupt(cancel, 3*time.Second)
	defer cancel()

	human := must.M1(state.PlayerString(*flagHuman))
	if human != state.PlayerX && human != state.PlayerO {
		klog.Exitf("Invalid --human=%q, want X or O", *flagHuman)
	}
	board := state.NewBoard()
	if *flagStart != "" {
		// With equal cell counts X moves next, otherwise O.
		board = must.M1(state.Parse(*flagStart, state.PlayerX))
		if board.NumEmpty()%2 == 0 {
			board = must.M1(state.Parse(*flagStart, state.PlayerO))
		}
	}
	engine := must.M1(must.M1(players.New(*flagEngine)).NewSearcher())

	seed := *flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewPCG(uint64(seed), 0))

	ui := cli.New(true)
	for !board.IsTerminal() {
		if globalCtx.Err() != nil {
			return
		}
		ui.PrintBoard(board)
		fmt.Println()
		var err error
		if board.Turn() == human {
			board, err = humanMove(ui, board)
		} else {
			board, err = engineMove(engine, board, rng)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Println("\nBye!")
				return
			}
			klog.Exitf("Failed to play: %+v", err)
		}
	}
	ui.PrintBoard(board)
	fmt.Println()
	if board.Winner() != state.PlayerNone {
		ui.PrintWinner(board)
	} else {
		ui.PrintDraw()
	}
}

func humanMove(ui *cli.UI, board state.Board) (state.Board, error) {
	cell, err := ui.ReadMove(board)
	if err != nil {
		return board, err
	}
	return board.Apply(cell)
}

// engineMove runs the simulation budget and takes the engine's move, falling
// back to a uniformly random move when the engine offers no opinion.
func engineMove(engine searchers.Searcher[state.Board], board state.Board, rng *rand.Rand) (state.Board, error) {
	s := spinning.New(globalCtx)
	err := engine.RunSimulations(board, *flagNumSimulations)
	s.Done()
	if err != nil {
		return board, err
	}
	next, err := engine.SelectMove(board)
	if err != nil {
		if !errors.Is(err, searchers.ErrNoStatistics) {
			return board, err
		}
		var ok bool
		next, ok = board.RandomMove(rng)
		if !ok {
			return board, errors.Errorf("no move available on board %s", board)
		}
	}
	action, err := state.MoveIndex(board, next)
	if err != nil {
		return board, errors.WithMessagef(err, "engine returned an illegal successor for board %s", board)
	}
	fmt.Printf("Engine plays cell %d (row %d, column %d).\n",
		action+1, action/state.NumRows+1, action%state.NumRows+1)
	return next, nil
}
