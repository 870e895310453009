package searchers

import (
	"github.com/pkg/errors"
)

// NewRandom returns the baseline engine that never searches: RunSimulations is
// a no-op and SelectMove always reports ErrNoStatistics, pushing the caller to
// its random fallback. Games played with it complete normally but produce no
// training records, since every transition carries random provenance. Useful
// to smoke-test the self-play loop and as a floor for engine comparisons.
func NewRandom[S State[S]]() Searcher[S] {
	return random[S]{}
}

type random[S State[S]] struct{}

// RunSimulations implements Searcher: there is nothing to simulate.
func (random[S]) RunSimulations(root S, n int) error {
	return nil
}

// SelectMove implements Searcher: it defers every choice to the caller's
// random fallback.
func (random[S]) SelectMove(root S) (S, error) {
	var zero S
	if root.IsTerminal() {
		return zero, errors.Errorf("select move on terminal state %v", root)
	}
	return zero, errors.Wrapf(ErrNoStatistics, "random engine keeps no statistics")
}
