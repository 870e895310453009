package players_test

import (
	"testing"

	"github.com/janpfeifer/tttGo/internal/players"
	_ "github.com/janpfeifer/tttGo/internal/players/default"
	"github.com/janpfeifer/tttGo/internal/searchers"
	"github.com/janpfeifer/tttGo/internal/state"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMCTS(t *testing.T) {
	factory, err := players.New("mcts,c=1.4,seed=42")
	require.NoError(t, err)
	assert.Equal(t, "mcts", factory.String())

	// A fresh engine per game: params are cloned per call, so building twice
	// must work and yield distinct instances.
	first, err := factory.NewSearcher()
	require.NoError(t, err)
	second, err := factory.NewSearcher()
	require.NoError(t, err)
	assert.NotSame(t, first, second)
}

func TestNewRandom(t *testing.T) {
	factory, err := players.New("random")
	require.NoError(t, err)
	engine, err := factory.NewSearcher()
	require.NoError(t, err)

	require.NoError(t, engine.RunSimulations(state.NewBoard(), 10))
	_, err = engine.SelectMove(state.NewBoard())
	require.Error(t, err)
	assert.True(t, errors.Is(err, searchers.ErrNoStatistics))
}

func TestNewDefault(t *testing.T) {
	factory, err := players.New("")
	require.NoError(t, err)
	assert.Equal(t, players.DefaultConfig, factory.String())
}

func TestNewErrors(t *testing.T) {
	if _, err := players.New("alphabeta,max_depth=2"); err == nil {
		t.Errorf("Expected error for the unknown engine name")
	}

	// Unknown parameters surface on the first NewSearcher call.
	factory, err := players.New("mcts,max_depth=2")
	require.NoError(t, err)
	if _, err := factory.NewSearcher(); err == nil {
		t.Errorf("Expected error for the unknown mcts parameter max_depth")
	}
	factory, err = players.New("random,c=1.4")
	require.NoError(t, err)
	if _, err := factory.NewSearcher(); err == nil {
		t.Errorf("Expected error for parameters passed to the random engine")
	}
}
