package mcts

import (
	"slices"

	"github.com/janpfeifer/tttGo/internal/generics"
	"github.com/janpfeifer/tttGo/internal/parameters"
	"github.com/janpfeifer/tttGo/internal/searchers"
	"github.com/pkg/errors"
)

// NewFromParams builds a Searcher from configuration parameters, popping the
// ones it understands:
//
//   - "c": exploration constant, must be >= 0. Default DefaultExploration.
//   - "seed": seed of the playout generator. Default 0, meaning seed from the
//     clock.
//
// Anything left over in params is an unknown parameter and fails.
func NewFromParams[S searchers.State[S]](params parameters.Params) (*Searcher[S], error) {
	c, err := parameters.PopParamOr(params, "c", DefaultExploration)
	if err != nil {
		return nil, err
	}
	if c < 0 {
		return nil, errors.Errorf("negative exploration constant c=%g not possible", c)
	}
	seed, err := parameters.PopParamOr(params, "seed", int64(0))
	if err != nil {
		return nil, err
	}
	if len(params) > 0 {
		return nil, errors.Errorf("unknown parameters %v passed to mcts engine",
			slices.Collect(generics.SortedKeys(params)))
	}
	return New[S](c, seed), nil
}
