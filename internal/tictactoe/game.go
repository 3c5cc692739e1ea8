package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/mindgames-backend/internal/apperror"
	"github.com/rocketscienceinc/mindgames-backend/internal/rules"
)

type Mark string

const (
	Empty Mark = ""
	X     Mark = "X"
	O     Mark = "O"
)

const boardSize = 9

var (
	ErrCellOccupied = fmt.Errorf("%w: cell is already occupied", apperror.ErrInvalidMove)
	ErrGameFinished = fmt.Errorf("%w: %w", apperror.ErrInvalidMove, apperror.ErrGameFinished)

	WinCombos = [][3]int{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
		{0, 3, 6},
		{1, 4, 7},
		{2, 5, 8},
		{0, 4, 8},
		{2, 4, 6},
	}
)

// Game is a tic-tac-toe position. It is a value: Play returns a new one.
type Game struct {
	Board [boardSize]Mark `json:"board"`
	Next  Mark            `json:"next"`
}

// Result is the outcome of Evaluate. Winner is Empty while nobody has a line.
type Result struct {
	Winner Mark `json:"winner"`
	Draw   bool `json:"draw"`
}

func (that Result) IsTerminal() bool {
	return that.Winner != Empty || that.Draw
}

func New() Game {
	return Game{Next: X}
}

// Play places the next mark on cell. A rejected move returns the game unchanged.
func (that Game) Play(cell int) (Game, error) {
	if cell < 0 || cell >= boardSize {
		return that, fmt.Errorf("%w: cell %d", apperror.ErrOutOfRange, cell)
	}

	if that.Evaluate().Winner != Empty {
		return that, ErrGameFinished
	}

	if that.Board[cell] != Empty {
		return that, ErrCellOccupied
	}

	next := that
	next.Board[cell] = that.Next
	next.Next = rules.Alternate(that.Next, X, O)

	return next, nil
}

// Evaluate checks the eight lines; the first complete one wins.
func (that Game) Evaluate() Result {
	for _, combo := range WinCombos {
		a, b, c := that.Board[combo[0]], that.Board[combo[1]], that.Board[combo[2]]
		if a != Empty && a == b && b == c {
			return Result{Winner: a}
		}
	}

	// the game will continue until all the squares are full
	for _, cell := range that.Board {
		if cell == Empty {
			return Result{}
		}
	}

	return Result{Draw: true}
}

func (that Game) Count(mark Mark) int {
	var n int
	for _, cell := range that.Board {
		if cell == mark {
			n++
		}
	}

	return n
}
