// selfplay plays a batch of engine-vs-engine tic-tac-toe games and saves the
// (state, turn, action) records of the search-chosen moves as a JSON training
// dataset.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/janpfeifer/must"
	"github.com/janpfeifer/tttGo/internal/dataset"
	"github.com/janpfeifer/tttGo/internal/players"
	_ "github.com/janpfeifer/tttGo/internal/players/default"
	"github.com/janpfeifer/tttGo/internal/profilers"
	"github.com/janpfeifer/tttGo/internal/selfplay"
	"github.com/janpfeifer/tttGo/internal/ui/cli"
	"github.com/janpfeifer/tttGo/internal/ui/spinning"
	"k8s.io/klog/v2"
)

var (
	flagNumGames = flag.Int("num_games", selfplay.DefaultNumGames,
		"Number of games to play in the batch.")
	flagNumSimulations = flag.Int("simulations", selfplay.DefaultNumSimulations,
		"Number of simulation rollouts the engine runs before each move.")
	flagEngine = flag.String("engine", players.DefaultConfig,
		"Engine configuration string: the engine name followed by comma-separated "+
			"parameters, e.g. \"mcts,c=1.4,seed=42\" or \"random\".")
	flagOutput = flag.String("output", "dataset.json",
		"File name where to save the dataset.")
	flagSeed = flag.Int64("seed", 0,
		"Seed of the driver's random-fallback generator. 0 seeds from the clock.")
	flagPrintSteps = flag.Bool("print_steps", true,
		"Print the board after each move. Disable for long quiet batches.")
)

// globalCtx is cancelled when the program is interrupted (Ctrl+C), so a
// truncated batch still reports and saves the records collected so far.
var globalCtx = context.Background()

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	var cancel func()
	globalCtx, cancel = context.WithCancel(globalCtx)
	spinning.SafeInterrupt(cancel, 5*time.Second)
	defer cancel()

	profilers.Setup(globalCtx)
	defer profilers.OnQuit()

	factory := must.M1(players.New(*flagEngine))
	recorder := dataset.NewRecorder()
	cfg := selfplay.Config{
		Games:       *flagNumGames,
		Simulations: *flagNumSimulations,
		Seed:        *flagSeed,
	}
	if *flagPrintSteps {
		cfg.UI = cli.New(true)
	}
	stats, err := selfplay.Run(globalCtx, cfg, factory, recorder)
	if err != nil {
		klog.Exitf("Self-play with engine %q failed: %+v", factory, err)
	}
	printReport(stats)
	must.M(recorder.Save(*flagOutput))
	fmt.Printf("Saved %d records to %q.\n", recorder.Len(), *flagOutput)
}

func printReport(stats selfplay.Stats) {
	pct := func(count int) float64 {
		if stats.Games == 0 {
			return 0
		}
		return 100 * float64(count) / float64(stats.Games)
	}
	fmt.Printf("\nPlayed %d games: X wins %d (%.1f%%), O wins %d (%.1f%%), draws %d (%.1f%%).\n",
		stats.Games,
		stats.XWins, pct(stats.XWins),
		stats.OWins, pct(stats.OWins),
		stats.Draws, pct(stats.Draws))
	fmt.Printf("Game length: %.1f±%.1f moves. Recorded %d samples.\n",
		stats.MeanMoves(), stats.StdDevMoves(), stats.Records)
}
