package state_test

import (
	"math/rand/v2"
	"testing"

	"github.com/janpfeifer/tttGo/internal/generics"
	. "github.com/janpfeifer/tttGo/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoard(t *testing.T) {
	b := NewBoard()
	assert.Equal(t, PlayerX, b.Turn())
	assert.Equal(t, PlayerNone, b.Winner())
	assert.False(t, b.IsTerminal())
	assert.Equal(t, NumCells, b.NumEmpty())
}

func TestApplyCenter(t *testing.T) {
	// Empty board, X plays the center.
	b, err := NewBoard().Apply(4)
	require.NoError(t, err)
	assert.Equal(t, PlayerX, b.Cell(4))
	assert.Equal(t, PlayerO, b.Turn())
	assert.Equal(t, PlayerNone, b.Winner())
	assert.False(t, b.IsTerminal())
	assert.Equal(t, NumCells-1, b.NumEmpty())
	for i := 0; i < NumCells; i++ {
		if i != 4 && b.Cell(i) != PlayerNone {
			t.Errorf("Cell %d should be empty after a single move at 4, got %s", i, b.Cell(i))
		}
	}
}

func TestApplyErrors(t *testing.T) {
	b := MustParse("X........", PlayerO)
	if _, err := b.Apply(0); err == nil {
		t.Errorf("Expected error applying a move on the taken cell 0 of %s", b)
	}
	if _, err := b.Apply(-1); err == nil {
		t.Errorf("Expected error applying a move out of range (-1)")
	}
	if _, err := b.Apply(NumCells); err == nil {
		t.Errorf("Expected error applying a move out of range (%d)", NumCells)
	}

	won := MustParse("XXX|OO.|...", PlayerO)
	require.True(t, won.IsTerminal())
	if _, err := won.Apply(5); err == nil {
		t.Errorf("Expected error applying a move on terminal board %s", won)
	}
}

func TestMoves(t *testing.T) {
	b := MustParse("X.O|.X.|...", PlayerO)
	moves := b.Moves()
	assert.Len(t, moves, b.NumEmpty())

	// Each successor differs from the parent in exactly one cell, which gets
	// the mover's mark, and flips the turn.
	for _, next := range moves {
		idx, err := MoveIndex(b, next)
		require.NoError(t, err)
		assert.Equal(t, PlayerNone, b.Cell(idx))
		assert.Equal(t, PlayerO, next.Cell(idx))
		assert.Equal(t, PlayerX, next.Turn())
	}

	// Exactly one successor per empty cell.
	want := generics.SetWith(
		MustParse("XOO|.X.|...", PlayerX),
		MustParse("X.O|OX.|...", PlayerX),
		MustParse("X.O|.XO|...", PlayerX),
		MustParse("X.O|.X.|O..", PlayerX),
		MustParse("X.O|.X.|.O.", PlayerX),
		MustParse("X.O|.X.|..O", PlayerX),
	)
	assert.Equal(t, want, generics.SetWith(moves...))
}

func TestMovesOnTerminal(t *testing.T) {
	for _, diagram := range []string{"XXX|OO.|...", "XOX|OXO|OXO"} {
		b := MustParse(diagram, PlayerO)
		require.True(t, b.IsTerminal())
		assert.Empty(t, b.Moves(), "terminal board %s must have no moves", b)
	}
}

func TestWinnerDetection(t *testing.T) {
	tests := []struct {
		diagram string
		turn    Player
		winner  Player
	}{
		{"XXX|OO.|...", PlayerO, PlayerX}, // top row
		{"OO.|XXX|...", PlayerO, PlayerX}, // middle row
		{"...|OO.|XXX", PlayerO, PlayerX}, // bottom row
		{"OX.|OX.|O.X", PlayerX, PlayerO}, // left column
		{"XO.|XOX|.O.", PlayerX, PlayerO}, // middle column
		{"X.O|X.O|.XO", PlayerX, PlayerO}, // right column
		{"XO.|OX.|..X", PlayerO, PlayerX}, // main diagonal
		{"X.O|XO.|O.X", PlayerX, PlayerO}, // anti diagonal
		{"X.O|.X.|...", PlayerO, PlayerNone},
		{"XOX|OXO|OXO", PlayerX, PlayerNone}, // full board, draw
	}
	for _, test := range tests {
		b := MustParse(test.diagram, test.turn)
		if got := b.Winner(); got != test.winner {
			t.Errorf("Board %s: winner=%s, want %s", b, got, test.winner)
		}
		wantTerminal := test.winner != PlayerNone || b.NumEmpty() == 0
		if got := b.IsTerminal(); got != wantTerminal {
			t.Errorf("Board %s: terminal=%v, want %v", b, got, wantTerminal)
		}
	}
}

func TestReward(t *testing.T) {
	// Non-terminal board: reward is a contract violation.
	open := MustParse("X.O|.X.|...", PlayerO)
	if _, err := open.Reward(); err == nil {
		t.Errorf("Expected error asking reward of non-terminal board %s", open)
	}

	// X completed the top row and the turn flipped to O: O just lost.
	lost := MustParse("XXX|OO.|...", PlayerO)
	reward, err := lost.Reward()
	require.NoError(t, err)
	assert.Equal(t, float32(-1), reward)

	// Full board, no line: a draw is worth 0 to either side.
	draw := MustParse("XOX|OXO|OXO", PlayerX)
	require.True(t, draw.IsTerminal())
	require.Equal(t, PlayerNone, draw.Winner())
	reward, err = draw.Reward()
	require.NoError(t, err)
	assert.Equal(t, float32(0), reward)

	// A board where the mover already won is unreachable through correct turn
	// alternation; asking its reward must fail loudly.
	corrupt := MustParse("XXX|OO.|...", PlayerX)
	if _, err := corrupt.Reward(); err == nil {
		t.Errorf("Expected error asking reward where mover %s already won on %s", corrupt.Turn(), corrupt)
	}
}

func TestRandomMove(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))

	terminal := MustParse("XXX|OO.|...", PlayerO)
	if _, ok := terminal.RandomMove(rng); ok {
		t.Errorf("Expected no random move from terminal board %s", terminal)
	}

	// Over many draws every empty cell must eventually be chosen, and every
	// result must be a legal successor.
	b := MustParse("X.O|.X.|...", PlayerO)
	seen := generics.MakeSet[int]()
	for range 200 {
		next, ok := b.RandomMove(rng)
		require.True(t, ok)
		idx, err := MoveIndex(b, next)
		require.NoError(t, err)
		seen.Insert(idx)
	}
	assert.Equal(t, generics.SetWith(1, 3, 5, 6, 7, 8), seen)
}

func TestMoveIndex(t *testing.T) {
	b := NewBoard()
	for _, next := range b.Moves() {
		idx, err := MoveIndex(b, next)
		require.NoError(t, err)
		applied, err := b.Apply(idx)
		require.NoError(t, err)
		assert.Equal(t, next, applied)
	}

	if _, err := MoveIndex(b, b); err == nil {
		t.Errorf("Expected error recovering a move between identical boards")
	}
	if _, err := MoveIndex(b, MustParse("X.X|...|...", PlayerO)); err == nil {
		t.Errorf("Expected error recovering a move when two cells changed")
	}
	if _, err := MoveIndex(b, MustParse("O..|...|...", PlayerX)); err == nil {
		t.Errorf("Expected error when the changed cell has the wrong mark")
	}
}

func TestParseAndString(t *testing.T) {
	tests := []string{
		".........",
		"X.O|.X.|..O",
		"XXX|OO.|...",
		"XOX|OXO|OXO",
	}
	for _, diagram := range tests {
		b := MustParse(diagram, PlayerX)
		again := MustParse(b.String(), PlayerX)
		assert.Equal(t, b, again, "Parse(String()) must round-trip for %q", diagram)
	}

	// Multi-line diagrams with '_' for empties parse too.
	b, err := Parse("X _ O\n. X .\n. . O", PlayerO)
	require.NoError(t, err)
	assert.Equal(t, MustParse("X.O|.X.|..O", PlayerO), b)

	if _, err := Parse("X.O|.X.|..", PlayerX); err == nil {
		t.Errorf("Expected error parsing a diagram with 8 cells")
	}
	if _, err := Parse("X.O|.X.|..OX", PlayerX); err == nil {
		t.Errorf("Expected error parsing a diagram with 10 cells")
	}
	if _, err := Parse("X.Z|.X.|..O", PlayerX); err == nil {
		t.Errorf("Expected error parsing a diagram with an invalid mark")
	}
	if _, err := Parse(".........", PlayerNone); err == nil {
		t.Errorf("Expected error parsing with an invalid player to move")
	}
}

// TestRandomPlayouts checks the global invariants along full random games:
// strict turn alternation, monotonically filling cells, termination within 9
// moves, a winner only on terminal boards, and reward in {-1, 0}.
func TestRandomPlayouts(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 0))
	for range 100 {
		b := NewBoard()
		var numMoves int
		for !b.IsTerminal() {
			require.LessOrEqual(t, numMoves, NumCells)
			require.Equal(t, PlayerNone, b.Winner(),
				"only terminal boards may have a winner, got %s on %s", b.Winner(), b)
			next, ok := b.RandomMove(rng)
			require.True(t, ok)
			assert.Equal(t, b.Turn().Opponent(), next.Turn())
			assert.Equal(t, b.NumEmpty()-1, next.NumEmpty())
			b = next
			numMoves++
		}
		assert.Empty(t, b.Moves())
		reward, err := b.Reward()
		require.NoError(t, err)
		if reward != -1 && reward != 0 {
			t.Errorf("Reward of terminal board %s is %g, want -1 or 0", b, reward)
		}
		if b.Winner() == PlayerNone {
			assert.Zero(t, b.NumEmpty(), "a winnerless terminal board must be full: %s", b)
		}
	}
}
