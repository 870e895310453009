package selfplay_test

import (
	"context"
	"testing"

	"github.com/janpfeifer/tttGo/internal/dataset"
	"github.com/janpfeifer/tttGo/internal/searchers"
	"github.com/janpfeifer/tttGo/internal/searchers/mcts"
	"github.com/janpfeifer/tttGo/internal/selfplay"
	"github.com/janpfeifer/tttGo/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// factoryFunc adapts a function to the selfplay.EngineFactory interface.
type factoryFunc func() (searchers.Searcher[state.Board], error)

func (f factoryFunc) NewSearcher() (searchers.Searcher[state.Board], error) {
	return f()
}

// mctsFactory builds one seeded searcher per game, each game getting its own
// seed so the batch does not replay the same game over and over.
func mctsFactory() selfplay.EngineFactory {
	seed := int64(0)
	return factoryFunc(func() (searchers.Searcher[state.Board], error) {
		seed++
		return mcts.New[state.Board](mcts.DefaultExploration, seed), nil
	})
}

func TestRunSmallBatch(t *testing.T) {
	recorder := dataset.NewRecorder()
	cfg := selfplay.Config{Games: 5, Simulations: 50, Seed: 1}
	stats, err := selfplay.Run(context.Background(), cfg, mctsFactory(), recorder)
	require.NoError(t, err)

	assert.Equal(t, 5, stats.Games)
	assert.Equal(t, 5, stats.XWins+stats.OWins+stats.Draws)
	require.Len(t, stats.MovesPerGame, 5)

	// A game lasts between 5 moves (fastest win) and 9 (full board), and with
	// simulations before every move the engine always has statistics: no
	// random fallbacks, so every single move is recorded.
	totalMoves := 0
	for _, moves := range stats.MovesPerGame {
		assert.GreaterOrEqual(t, moves, 5.0)
		assert.LessOrEqual(t, moves, float64(state.NumCells))
		totalMoves += int(moves)
	}
	assert.Equal(t, totalMoves, recorder.Len())
	assert.Equal(t, recorder.Len(), stats.Records)
	assert.GreaterOrEqual(t, stats.MeanMoves(), 5.0)
	assert.LessOrEqual(t, stats.MeanMoves(), 9.0)
}

func TestRandomEngineRecordsNothing(t *testing.T) {
	factory := factoryFunc(func() (searchers.Searcher[state.Board], error) {
		return searchers.NewRandom[state.Board](), nil
	})
	recorder := dataset.NewRecorder()
	cfg := selfplay.Config{Games: 10, Simulations: 5, Seed: 42}
	stats, err := selfplay.Run(context.Background(), cfg, factory, recorder)
	require.NoError(t, err)

	// The random engine defers every move to the random fallback, so the
	// games complete but every transition carries random provenance and the
	// dataset stays empty.
	assert.Equal(t, 10, stats.Games)
	assert.Zero(t, recorder.Len())
	assert.Zero(t, stats.Records)
}

func TestRunInterrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	recorder := dataset.NewRecorder()
	stats, err := selfplay.Run(ctx, selfplay.Config{Games: 3, Simulations: 10}, mctsFactory(), recorder)
	require.NoError(t, err, "an interrupted batch is not an error")
	assert.Zero(t, stats.Games)
	assert.Zero(t, recorder.Len())
}

func TestRunReproducible(t *testing.T) {
	run := func() selfplay.Stats {
		recorder := dataset.NewRecorder()
		cfg := selfplay.Config{Games: 4, Simulations: 20, Seed: 7}
		stats, err := selfplay.Run(context.Background(), cfg, mctsFactory(), recorder)
		require.NoError(t, err)
		return stats
	}
	first, second := run(), run()
	assert.Equal(t, first.MovesPerGame, second.MovesPerGame)
	assert.Equal(t, [3]int{first.XWins, first.OWins, first.Draws},
		[3]int{second.XWins, second.OWins, second.Draws})
}
