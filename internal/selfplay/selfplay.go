// Package selfplay runs batches of engine-vs-engine games and records the
// search-chosen transitions for training.
//
// Each turn the driver hands the current board to the engine for a fixed
// budget of simulations and advances along the engine's chosen move. If the
// engine has no statistics to choose from, the driver falls back to a
// uniformly random move; those transitions carry random provenance and are
// kept out of the dataset.
package selfplay

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/janpfeifer/tttGo/internal/dataset"
	"github.com/janpfeifer/tttGo/internal/searchers"
	"github.com/janpfeifer/tttGo/internal/state"
	"github.com/janpfeifer/tttGo/internal/ui/cli"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
	"k8s.io/klog/v2"
)

// Assert the board satisfies the engine contract: this is the one place the
// game rules and the searchers meet.
func assertState[S searchers.State[S]]() {}

var _ = assertState[state.Board]

const (
	// DefaultNumGames played per batch.
	DefaultNumGames = 500

	// DefaultNumSimulations run by the engine before each move.
	DefaultNumSimulations = 100
)

// EngineFactory builds one fresh engine per game. *players.Factory implements
// it; tests plug in their own.
type EngineFactory interface {
	NewSearcher() (searchers.Searcher[state.Board], error)
}

// Config of a self-play batch. The zero value gets the defaults filled in by
// Run.
type Config struct {
	// Games to play. Defaults to DefaultNumGames.
	Games int

	// Simulations the engine runs before each move. Defaults to
	// DefaultNumSimulations.
	Simulations int

	// Seed of the driver's random-fallback generator. 0 seeds from the clock.
	Seed int64

	// UI renders the board after every move when set. Nil plays quietly and
	// prints a progress line instead.
	UI *cli.UI
}

// Stats of a finished (or interrupted) batch.
type Stats struct {
	Games, XWins, OWins, Draws int

	// Records appended to the dataset, counting only search-chosen moves.
	Records int

	// MovesPerGame holds the length of each finished game.
	MovesPerGame []float64
}

// MeanMoves returns the average game length.
func (s Stats) MeanMoves() float64 {
	if len(s.MovesPerGame) == 0 {
		return 0
	}
	return stat.Mean(s.MovesPerGame, nil)
}

// StdDevMoves returns the standard deviation of the game lengths.
func (s Stats) StdDevMoves() float64 {
	if len(s.MovesPerGame) < 2 {
		return 0
	}
	return stat.StdDev(s.MovesPerGame, nil)
}

// Run plays cfg.Games games sequentially, recording every search-chosen
// transition into recorder. It stops early without error when ctx is
// cancelled between games, so an interrupted batch still reports and saves
// what it collected.
func Run(ctx context.Context, cfg Config, engines EngineFactory, recorder *dataset.Recorder) (Stats, error) {
	if cfg.Games == 0 {
		cfg.Games = DefaultNumGames
	}
	if cfg.Simulations == 0 {
		cfg.Simulations = DefaultNumSimulations
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewPCG(uint64(seed), 0))

	var stats Stats
	start := time.Now()
	printUpdate := func() {
		if cfg.UI != nil {
			return // The rendered boards tell the story already.
		}
		fmt.Printf("\rSelf-playing: %5d of %d games (%d/%d/%d X-Wins/O-Wins/Draws) in %s\x1b[0K",
			stats.Games, cfg.Games, stats.XWins, stats.OWins, stats.Draws,
			time.Since(start).Round(time.Second))
	}
	printUpdate()
	for gameIdx := range cfg.Games {
		if ctx.Err() != nil {
			fmt.Printf("\nInterrupted: %s\n", ctx.Err())
			stats.Records = recorder.Len()
			return stats, nil
		}
		engine, err := engines.NewSearcher()
		if err != nil {
			return stats, err
		}
		winner, numMoves, err := playGame(cfg, engine, rng, recorder)
		if err != nil {
			return stats, errors.WithMessagef(err, "game %d failed", gameIdx)
		}
		stats.Games++
		stats.MovesPerGame = append(stats.MovesPerGame, float64(numMoves))
		switch winner {
		case state.PlayerX:
			stats.XWins++
		case state.PlayerO:
			stats.OWins++
		default:
			stats.Draws++
		}
		klog.V(1).Infof("Game %d: winner=%s in %d moves, %d records so far",
			gameIdx, winner, numMoves, recorder.Len())
		printUpdate()
	}
	printUpdate()
	if cfg.UI == nil {
		fmt.Println()
	}
	stats.Records = recorder.Len()
	return stats, nil
}

// playGame runs one game to the end and returns the winner (PlayerNone on a
// draw) and the number of moves played.
func playGame(cfg Config, engine searchers.Searcher[state.Board], rng *rand.Rand, recorder *dataset.Recorder) (state.Player, int, error) {
	board := state.NewBoard()
	numMoves := 0
	for !board.IsTerminal() {
		if err := engine.RunSimulations(board, cfg.Simulations); err != nil {
			return state.PlayerNone, numMoves, err
		}
		next, err := engine.SelectMove(board)
		random := false
		if err != nil {
			if !errors.Is(err, searchers.ErrNoStatistics) {
				return state.PlayerNone, numMoves, err
			}
			// No statistics to choose from: play a random move instead. It
			// carries random provenance and stays out of the dataset.
			var ok bool
			next, ok = board.RandomMove(rng)
			if !ok {
				return state.PlayerNone, numMoves, errors.Errorf(
					"no random move available on non-terminal board %s", board)
			}
			random = true
		}
		if !random {
			action, err := state.MoveIndex(board, next)
			if err != nil {
				return state.PlayerNone, numMoves, errors.WithMessagef(err,
					"engine returned an illegal successor for board %s", board)
			}
			recorder.Record(board, action)
		}
		board = next
		numMoves++
		if cfg.UI != nil {
			cfg.UI.PrintBoard(board)
			if board.Winner() != state.PlayerNone {
				cfg.UI.PrintWinner(board)
			}
		}
		if klog.V(2).Enabled() {
			klog.Infof("Move %d (random=%v): %s", numMoves, random, board)
		}
	}
	return board.Winner(), numMoves, nil
}
