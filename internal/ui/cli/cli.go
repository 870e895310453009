// Package cli implements the textual front end: board rendering with the
// 1-indexed row/column legend, winner announcements and, for the interactive
// binary, reading human moves.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/tttGo/internal/state"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// Render returns the plain-text grid of a position, a 3x3 board with 1-based
// row and column labels:
//
//	  1 2 3
//	1 X
//	2   O
//	3
//
// It starts and ends with a newline so consecutive boards read as separate
// blocks.
func Render(b state.Board) string {
	return render(b, markText)
}

// render builds the grid, delegating how each cell is drawn so PrintBoard can
// slot in colored marks without changing the layout.
func render(b state.Board, mark func(state.Player) string) string {
	var sb strings.Builder
	sb.WriteString("\n  1 2 3\n")
	for row := range state.NumRows {
		sb.WriteString(strconv.Itoa(row + 1))
		for col := range state.NumRows {
			sb.WriteByte(' ')
			sb.WriteString(mark(b.Cell(row*state.NumRows + col)))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func markText(p state.Player) string {
	switch p {
	case state.PlayerX:
		return "X"
	case state.PlayerO:
		return "O"
	case state.PlayerNone:
		return " "
	}
	exceptions.Panicf("cli: cannot render invalid player %d", uint8(p))
	return ""
}

var ansiFilter = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// displayWidth of s removes its color/control sequences and returns the
// length of what is left.
func displayWidth(s string) int {
	return len(ansiFilter.ReplaceAllString(s, ""))
}

// printCentered prints a block of lines centered to the terminal width, or
// flush left when the width is unknown.
func printCentered(block string) {
	terminalWidth, _, _ := term.GetSize(int(os.Stdout.Fd()))
	blockWidth := 0
	lines := strings.Split(block, "\n")
	for _, line := range lines {
		if w := displayWidth(line); w > blockWidth {
			blockWidth = w
		}
	}
	indent := max((terminalWidth-blockWidth)/2, 0)
	for _, line := range lines {
		if len(line) == 0 {
			fmt.Println()
			continue
		}
		fmt.Printf("%s%s\n", strings.Repeat(" ", indent), line)
	}
}

// UI prints boards and announcements to stdout and reads human moves.
type UI struct {
	color  bool
	reader *bufio.Reader

	styleX, styleO, styleDraw lipgloss.Style
}

// New creates a UI reading human moves from stdin. With color enabled the
// marks and announcements are styled; disable it when piping output.
func New(color bool) *UI {
	return NewWithInput(color, os.Stdin)
}

// NewWithInput is New with the human-move input stream made explicit.
func NewWithInput(color bool, in io.Reader) *UI {
	return &UI{
		color:  color,
		reader: bufio.NewReader(in),
		styleX: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),  // Red.
		styleO: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")), // Blue.
		styleDraw: lipgloss.NewStyle().
			Background(lipgloss.Color("13")).
			Foreground(lipgloss.Color("0")).
			Padding(0, 2),
	}
}

// mark renders one cell, styled when color is enabled.
func (ui *UI) mark(p state.Player) string {
	text := markText(p)
	if !ui.color || p == state.PlayerNone {
		return text
	}
	return ui.styleFor(p).Render(text)
}

func (ui *UI) styleFor(p state.Player) lipgloss.Style {
	switch p {
	case state.PlayerX:
		return ui.styleX
	case state.PlayerO:
		return ui.styleO
	}
	exceptions.Panicf("cli: no style for player %d", uint8(p))
	return lipgloss.Style{}
}

// PrintBoard prints the grid of the position.
func (ui *UI) PrintBoard(b state.Board) {
	fmt.Print(render(b, ui.mark))
}

// PrintWinner announces the winner of a finished game. Boards without a
// winner announce nothing.
func (ui *UI) PrintWinner(b state.Board) {
	winner := b.Winner()
	if winner == state.PlayerNone {
		return
	}
	message := fmt.Sprintf("%s wins", winner)
	if ui.color {
		printCentered(ui.styleFor(winner).Render(message))
	} else {
		fmt.Println(message)
	}
	fmt.Println()
}

// PrintDraw announces a draw.
func (ui *UI) PrintDraw() {
	if ui.color {
		printCentered(ui.styleDraw.Render("*** DRAW ***"))
	} else {
		fmt.Println("Draw")
	}
	fmt.Println()
}

// moveParser accepts "row col" (also "row,col") or a single cell number,
// all 1-based.
var moveParser = regexp.MustCompile(`^\s*(\d)(?:[\s,]+(\d))?\s*$`)

// ReadMove prompts for the mover's next move and returns the chosen cell
// index (0-8). It accepts "row col" or a single cell number 1-9, both
// 1-based, and re-prompts on malformed input and occupied cells. The error is
// io.EOF when the input stream ends.
func (ui *UI) ReadMove(b state.Board) (int, error) {
	for {
		fmt.Printf("%s to move (row col, or cell 1-9) > ", ui.mark(b.Turn()))
		text, err := ui.reader.ReadString('\n')
		if err != nil {
			return -1, err
		}
		cell, err := parseMove(text)
		if err != nil {
			fmt.Printf("  * %v, please try again.\n", err)
			continue
		}
		if b.Cell(cell) != state.PlayerNone {
			fmt.Printf("  * Cell %d is already taken by %s, please try again.\n", cell+1, b.Cell(cell))
			continue
		}
		return cell, nil
	}
}

// parseMove converts the human notation to a cell index.
func parseMove(text string) (int, error) {
	matches := moveParser.FindStringSubmatch(text)
	if matches == nil {
		return -1, errors.Errorf("failed to parse move %q", strings.TrimSpace(text))
	}
	first, err := strconv.Atoi(matches[1])
	if err != nil {
		return -1, errors.Wrapf(err, "failed to parse move %q", strings.TrimSpace(text))
	}
	if matches[2] == "" {
		// Single number: a cell, 1 to 9.
		if first < 1 || first > state.NumCells {
			return -1, errors.Errorf("cell %d out of range 1-%d", first, state.NumCells)
		}
		return first - 1, nil
	}
	col, err := strconv.Atoi(matches[2])
	if err != nil {
		return -1, errors.Wrapf(err, "failed to parse move %q", strings.TrimSpace(text))
	}
	if first < 1 || first > state.NumRows || col < 1 || col > state.NumRows {
		return -1, errors.Errorf("row and column must be between 1 and %d, got %d %d",
			state.NumRows, first, col)
	}
	return (first-1)*state.NumRows + (col - 1), nil
}
