// Package _default registers the engine modules shipped with the repository,
// to be blank-imported by any front-end:
//
//   - "mcts": the UCT searcher, e.g. "mcts,c=1.4,seed=42".
//   - "random": the no-search baseline, always falling back to random moves.
package _default

import (
	"slices"

	"github.com/janpfeifer/tttGo/internal/generics"
	"github.com/janpfeifer/tttGo/internal/parameters"
	"github.com/janpfeifer/tttGo/internal/players"
	"github.com/janpfeifer/tttGo/internal/searchers"
	"github.com/janpfeifer/tttGo/internal/searchers/mcts"
	"github.com/janpfeifer/tttGo/internal/state"
	"github.com/pkg/errors"
)

func init() {
	players.RegisterModule("mcts", mctsModule{})
	players.RegisterModule("random", randomModule{})
}

type mctsModule struct{}

var _ players.Module = mctsModule{}

// NewSearcher implements players.Module.
func (mctsModule) NewSearcher(params parameters.Params) (searchers.Searcher[state.Board], error) {
	return mcts.NewFromParams[state.Board](params)
}

type randomModule struct{}

var _ players.Module = randomModule{}

// NewSearcher implements players.Module. The random engine takes no
// parameters.
func (randomModule) NewSearcher(params parameters.Params) (searchers.Searcher[state.Board], error) {
	if len(params) > 0 {
		return nil, errors.Errorf("unknown parameters %v passed to random engine",
			slices.Collect(generics.SortedKeys(params)))
	}
	return searchers.NewRandom[state.Board](), nil
}
