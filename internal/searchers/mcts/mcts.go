// Package mcts implements a Monte Carlo Tree Search engine for the
// searchers.Searcher contract.
//
// It is the plain UCT variant (Upper Confidence bounds applied to Trees) with
// uniformly random playouts: no value network, no policy priors. Statistics
// are keyed by state value, which is why searchers.State requires comparable
// implementations.
//
// References:
//
//   - Kocsis & Szepesvári, "Bandit based Monte-Carlo Planning", ECML 2006.
//   - Browne et al., "A Survey of Monte Carlo Tree Search Methods", 2012.
package mcts

import (
	"math/rand/v2"
	"time"

	"github.com/chewxy/math32"
	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/tttGo/internal/searchers"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// DefaultExploration is the exploration constant used when the configuration
// does not set "c". Rewards live in [-1, 1], for which sqrt(2) is the usual
// textbook choice.
const DefaultExploration = float32(1.4)

// Searcher is a UCT searcher over states of type S. One Searcher serves one
// game: statistics accumulate across the moves of that game and positions
// reached earlier keep their visit counts when the root advances.
//
// Not safe for concurrent use.
type Searcher[S searchers.State[S]] struct {
	c   float32
	rng *rand.Rand

	// children holds the expanded successor lists, keyed by state. A state
	// missing from the map was never expanded; a terminal state maps to an
	// empty list.
	children map[S][]S

	// visits and totals accumulate per state the number of rollouts through it
	// and the summed rollout values from the perspective of the player that
	// moved into it, so a parent picks among children by maximizing.
	visits map[S]int
	totals map[S]float32
}

// New creates a Searcher with exploration constant c. A seed of 0 seeds the
// playout generator from the clock; anything else makes searches reproducible.
func New[S searchers.State[S]](c float32, seed int64) *Searcher[S] {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Searcher[S]{
		c:        c,
		rng:      rand.New(rand.NewPCG(uint64(seed), 0)),
		children: make(map[S][]S),
		visits:   make(map[S]int),
		totals:   make(map[S]float32),
	}
}

// RunSimulations implements searchers.Searcher: it runs n rollouts anchored at
// root. Errors come only from reward contract violations and are fatal to the
// search.
func (s *Searcher[S]) RunSimulations(root S, n int) error {
	for range n {
		if err := s.rollout(root); err != nil {
			return err
		}
	}
	return nil
}

// rollout runs one simulation: descend the expanded tree by UCT, expand the
// reached leaf, finish the game with random play and backpropagate the result.
func (s *Searcher[S]) rollout(root S) error {
	path := s.selectPath(root)
	leaf := path[len(path)-1]
	s.expand(leaf)
	value, err := s.simulate(leaf)
	if err != nil {
		return err
	}
	s.backpropagate(path, value)
	return nil
}

// selectPath descends from root picking the UCT-best child at every fully
// explored node. The path ends at the first unexpanded or terminal node, or at
// a randomly picked unexplored child.
func (s *Searcher[S]) selectPath(root S) []S {
	path := make([]S, 0, 8)
	node := root
	for {
		path = append(path, node)
		children, expanded := s.children[node]
		if !expanded || len(children) == 0 {
			return path
		}
		var unexplored []S
		for _, child := range children {
			if _, ok := s.children[child]; !ok {
				unexplored = append(unexplored, child)
			}
		}
		if len(unexplored) > 0 {
			path = append(path, unexplored[s.rng.IntN(len(unexplored))])
			return path
		}
		node = s.uctSelect(node, children)
	}
}

// uctSelect picks the child maximizing mean value plus the exploration bonus
// c*sqrt(ln(N_parent)/N_child). All children must have been visited before.
func (s *Searcher[S]) uctSelect(node S, children []S) S {
	logN := math32.Log(float32(s.visits[node]))
	best := -1
	bestBound := math32.Inf(-1)
	for i, child := range children {
		n := s.visits[child]
		if n == 0 {
			exceptions.Panicf("mcts: UCT selection reached unvisited child %v of %v", child, node)
		}
		bound := s.totals[child]/float32(n) + s.c*math32.Sqrt(logN/float32(n))
		if bound > bestBound {
			bestBound = bound
			best = i
		}
	}
	return children[best]
}

// expand stores node's successors. Terminal nodes store an empty list, which
// selectPath treats as "nothing beneath, evaluate here".
func (s *Searcher[S]) expand(node S) {
	if _, ok := s.children[node]; ok {
		return
	}
	s.children[node] = node.Moves()
}

// simulate plays uniformly random moves from node until the game ends and
// returns the terminal reward converted to the perspective of the player that
// moved into node.
func (s *Searcher[S]) simulate(node S) (float32, error) {
	invert := false
	for !node.IsTerminal() {
		moves := node.Moves()
		node = moves[s.rng.IntN(len(moves))]
		invert = !invert
	}
	reward, err := node.Reward()
	if err != nil {
		return 0, err
	}
	// Reward scores the terminal state for its mover; the player that moved
	// into it gets the negation, and so on back up the playout.
	value := -reward
	if invert {
		value = -value
	}
	return value, nil
}

// backpropagate adds value to every node of the path, flipping the sign per
// ply: one player's gain is the other's loss.
func (s *Searcher[S]) backpropagate(path []S, value float32) {
	for i := len(path) - 1; i >= 0; i-- {
		node := path[i]
		s.visits[node]++
		s.totals[node] += value
		value = -value
	}
}

// SelectMove implements searchers.Searcher: it returns the most visited child
// of root, breaking ties by mean value. Visit counts make a more robust policy
// than raw means, since a lucky child with few visits cannot outrank one
// vetted by many rollouts.
func (s *Searcher[S]) SelectMove(root S) (S, error) {
	var zero S
	if root.IsTerminal() {
		return zero, errors.Errorf("select move on terminal state %v", root)
	}
	children, ok := s.children[root]
	if !ok {
		return zero, errors.Wrapf(searchers.ErrNoStatistics, "state %v was never expanded", root)
	}
	if len(children) == 0 {
		exceptions.Panicf("mcts: non-terminal state %v expanded to an empty successor list", root)
	}
	best := -1
	bestVisits := -1
	bestMean := math32.Inf(-1)
	for i, child := range children {
		n := s.visits[child]
		if n == 0 {
			// No rollout ever went through it: no opinion.
			continue
		}
		mean := s.totals[child] / float32(n)
		if n > bestVisits || (n == bestVisits && mean > bestMean) {
			best = i
			bestVisits = n
			bestMean = mean
		}
	}
	if best < 0 {
		return zero, errors.Wrapf(searchers.ErrNoStatistics, "no child of state %v was ever visited", root)
	}
	if klog.V(2).Enabled() {
		klog.Infof("mcts: chose child %d of %v: %d of %d visits, mean value %.3f",
			best, root, bestVisits, s.visits[root], bestMean)
	}
	return children[best], nil
}
