// Package state holds the tic-tac-toe board representation and the rules of
// the game: move enumeration, move application, winner detection and terminal
// rewards.
//
// Board is an immutable value: every move builds a new Board, and values
// compare (and hash) by content, so search engines can key their statistics
// directly by Board.
package state

import (
	"math/rand/v2"
	"strings"

	"github.com/pkg/errors"
)

//go:generate go tool enumer -type=Player -trimprefix=Player -values -text -json -yaml state.go

// Player identifies one of the two players. PlayerNone doubles as the empty
// cell mark and as "no winner yet".
type Player uint8

const (
	PlayerNone Player = iota
	PlayerX
	PlayerO
)

// Opponent returns the other player. PlayerNone is its own opponent.
func (p Player) Opponent() Player {
	switch p {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	}
	return PlayerNone
}

const (
	// NumCells of the board. Cell i sits at row i/3, column i%3.
	NumCells = 9

	// NumRows of the board; there are as many columns.
	NumRows = 3
)

// winningLines are the 8 index triples that end the game when occupied by one
// player: 3 rows, 3 columns and the 2 diagonals.
var winningLines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// Board is one tic-tac-toe position: the 9 cells, whose turn it is to move,
// and the winner/terminal status, both computed once at construction.
//
// The zero Board is not a valid position: use NewBoard or Parse.
type Board struct {
	cells    [NumCells]Player
	turn     Player
	winner   Player
	terminal bool
}

// NewBoard returns the empty board, PlayerX to move.
func NewBoard() Board {
	return Board{turn: PlayerX}
}

// Cell returns the mark at cell i, PlayerNone if empty.
func (b Board) Cell(i int) Player {
	return b.cells[i]
}

// Cells returns a copy of the 9 cell marks.
func (b Board) Cells() [NumCells]Player {
	return b.cells
}

// Turn returns the player to move. It keeps alternating through the final
// move, so on a terminal board it names the player who did not move last.
func (b Board) Turn() Player {
	return b.turn
}

// Winner returns the player with a completed line, or PlayerNone while there
// is no winner. Terminal positions have no successors, so a winner can never
// be overwritten.
func (b Board) Winner() Player {
	return b.winner
}

// IsTerminal reports whether the game is over: a player won or the board is
// full.
func (b Board) IsTerminal() bool {
	return b.terminal
}

// NumEmpty returns how many cells are still free.
func (b Board) NumEmpty() int {
	count := 0
	for _, c := range b.cells {
		if c == PlayerNone {
			count++
		}
	}
	return count
}

// Moves returns the successor positions, one per empty cell in ascending cell
// order, or nil if the board is terminal. Each successor has the mover's mark
// placed, the turn flipped and winner/terminal freshly computed.
func (b Board) Moves() []Board {
	if b.terminal {
		return nil
	}
	moves := make([]Board, 0, b.NumEmpty())
	for i, c := range b.cells {
		if c == PlayerNone {
			moves = append(moves, b.apply(i))
		}
	}
	return moves
}

// RandomMove plays one uniformly random legal move. It returns false if the
// board is terminal and there is nothing to play.
func (b Board) RandomMove(rng *rand.Rand) (Board, bool) {
	if b.terminal {
		return Board{}, false
	}
	empty := make([]int, 0, NumCells)
	for i, c := range b.cells {
		if c == PlayerNone {
			empty = append(empty, i)
		}
	}
	return b.apply(empty[rng.IntN(len(empty))]), true
}

// Apply places the mover's mark at the given cell and returns the successor
// position. It fails if the game is already over, the cell index is out of
// range or the cell is taken.
func (b Board) Apply(cell int) (Board, error) {
	if b.terminal {
		return Board{}, errors.Errorf("cannot move on terminal board %s", b)
	}
	if cell < 0 || cell >= NumCells {
		return Board{}, errors.Errorf("cell %d out of range [0, %d)", cell, NumCells)
	}
	if b.cells[cell] != PlayerNone {
		return Board{}, errors.Errorf("cell %d of board %s is already taken by %s", cell, b, b.cells[cell])
	}
	return b.apply(cell), nil
}

// apply builds the successor without validating: callers guarantee the cell is
// empty and the board is not terminal.
func (b Board) apply(cell int) Board {
	next := b
	next.cells[cell] = b.turn
	next.turn = b.turn.Opponent()
	next.winner = findWinner(next.cells)
	next.terminal = next.winner != PlayerNone || next.NumEmpty() == 0
	return next
}

// findWinner scans the 8 winning lines for three equal non-empty marks.
func findWinner(cells [NumCells]Player) Player {
	for _, line := range winningLines {
		mark := cells[line[0]]
		if mark != PlayerNone && mark == cells[line[1]] && mark == cells[line[2]] {
			return mark
		}
	}
	return PlayerNone
}

// Reward scores a finished game for the player to move: -1 if the opponent
// won, 0 on a draw. Asking before the game is over is an error.
//
// The mover can never be the winner of the same terminal board -- the winning
// move flips the turn away from whoever made it -- so winner == turn is
// reported as an error as well: it means move generation or turn alternation
// broke upstream. The check is kept deliberately rather than folded into the
// default case.
func (b Board) Reward() (float32, error) {
	if !b.terminal {
		return 0, errors.Errorf("reward requested for unfinished board %s", b)
	}
	switch b.winner {
	case b.turn:
		return 0, errors.Errorf("reward requested for board %s where the mover %s has already won", b, b.turn)
	case b.turn.Opponent():
		// The opponent made the last move and won.
		return -1, nil
	case PlayerNone:
		// Full board, no line completed.
		return 0, nil
	}
	return 0, errors.Errorf("board %s has unrecognized winner %d", b, uint8(b.winner))
}

// MoveIndex recovers which cell was played between a position and its
// successor: the single cell that changed from empty to the mover's mark.
func MoveIndex(before, after Board) (int, error) {
	move := -1
	for i := range before.cells {
		if before.cells[i] == after.cells[i] {
			continue
		}
		if move >= 0 {
			return -1, errors.Errorf("boards %s and %s differ in more than one cell (%d and %d)",
				before, after, move, i)
		}
		if before.cells[i] != PlayerNone || after.cells[i] != before.turn {
			return -1, errors.Errorf("cell %d changed from %s to %s, which is not a move by %s",
				i, before.cells[i], after.cells[i], before.turn)
		}
		move = i
	}
	if move < 0 {
		return -1, errors.Errorf("boards %s and %s are identical, no move to recover", before, after)
	}
	return move, nil
}

// String returns the compact one-line diagram of the position, rows separated
// by "|", e.g. "X.O|.X.|..O". Parse accepts it back.
func (b Board) String() string {
	var sb strings.Builder
	sb.Grow(NumCells + NumRows - 1)
	for i, c := range b.cells {
		if i > 0 && i%NumRows == 0 {
			sb.WriteByte('|')
		}
		sb.WriteByte(markLetter(c))
	}
	return sb.String()
}

func markLetter(p Player) byte {
	switch p {
	case PlayerX:
		return 'X'
	case PlayerO:
		return 'O'
	}
	return '.'
}
