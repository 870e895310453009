// Package searchers defines the contract between the self-play loop and the
// search engines that pick its moves.
//
// Engines never see game rules directly: they work against any State, an
// immutable comparable value that enumerates its successors and scores its
// terminal positions. The one State implementation in this repository is
// state.Board.
package searchers

import (
	"github.com/pkg/errors"
)

// State is the capability contract a game state must satisfy to be searched.
// Implementations must be immutable comparable values: engines key their
// statistics by state value and rely on equal values being the same position.
type State[S any] interface {
	comparable

	// Moves returns every legal successor state, or an empty slice on a
	// terminal state.
	Moves() []S

	// IsTerminal reports whether the game is over.
	IsTerminal() bool

	// Reward scores a terminal state for its player to move. Calling it on a
	// non-terminal state is an error.
	Reward() (float32, error)
}

// Searcher is the interface all search engines implement. A Searcher instance
// serves a single game: statistics accumulate across the moves of that game.
type Searcher[S State[S]] interface {
	// RunSimulations runs n simulation rollouts anchored at root, updating the
	// engine's internal statistics. How a rollout works is the engine's
	// business.
	RunSimulations(root S, n int) error

	// SelectMove returns the engine's chosen successor, one of root.Moves().
	// If the engine holds no statistics for root the error wraps
	// ErrNoStatistics and the caller decides what to do -- the self-play
	// driver falls back to a uniformly random move. Calling SelectMove on a
	// terminal state is a caller bug and fails with a plain error.
	SelectMove(root S) (S, error)
}

// ErrNoStatistics is reported by Searcher.SelectMove when the engine has not
// accumulated any statistics for the given state. Match it with errors.Is.
var ErrNoStatistics = errors.New("no search statistics for state")
