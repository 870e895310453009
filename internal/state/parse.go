package state

import (
	"github.com/pkg/errors"
)

// Parse builds a Board from a 9-mark diagram and the player to move. The
// diagram uses 'X', 'O' and '.' (or '_') per cell, in row order; '|', '/' and
// whitespace are accepted as separators, so both "X.O|.X.|..O" and multi-line
// layouts parse. Winner and terminal status are recomputed from the cells; the
// diagram itself is trusted to be reachable.
func Parse(diagram string, turn Player) (Board, error) {
	if turn != PlayerX && turn != PlayerO {
		return Board{}, errors.Errorf("invalid player to move %q, want X or O", turn)
	}
	b := Board{turn: turn}
	cell := 0
	for _, r := range diagram {
		var mark Player
		switch r {
		case 'X', 'x':
			mark = PlayerX
		case 'O', 'o':
			mark = PlayerO
		case '.', '_':
			mark = PlayerNone
		case '|', '/', ' ', '\t', '\n':
			continue
		default:
			return Board{}, errors.Errorf("invalid mark %q in board diagram %q", r, diagram)
		}
		if cell >= NumCells {
			return Board{}, errors.Errorf("board diagram %q has more than %d cells", diagram, NumCells)
		}
		b.cells[cell] = mark
		cell++
	}
	if cell != NumCells {
		return Board{}, errors.Errorf("board diagram %q has %d cells, want %d", diagram, cell, NumCells)
	}
	b.winner = findWinner(b.cells)
	b.terminal = b.winner != PlayerNone || b.NumEmpty() == 0
	return b, nil
}

// MustParse is Parse for hardcoded diagrams, mostly in tests: it panics on a
// malformed diagram.
func MustParse(diagram string, turn Player) Board {
	b, err := Parse(diagram, turn)
	if err != nil {
		panic(err)
	}
	return b
}
