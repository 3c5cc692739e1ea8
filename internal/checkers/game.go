// Package checkers implements the simplified checkers played in the app.
//
// Plain moves go one row forward diagonally. Captures jump an adjacent
// opposing piece in any diagonal direction. Capturing is optional, chains are
// not continued automatically, there are no kings, and a player only loses by
// running out of pieces.
package checkers

import (
	"fmt"

	"github.com/rocketscienceinc/mindgames-backend/internal/apperror"
	"github.com/rocketscienceinc/mindgames-backend/internal/rules"
)

type Piece int

const (
	None Piece = iota
	Player1
	Player2
)

const (
	BoardSize = 8
	startRows = 3
)

var ErrGameFinished = fmt.Errorf("%w: %w", apperror.ErrInvalidMove, apperror.ErrGameFinished)

type Grid [BoardSize][BoardSize]Piece

type Game struct {
	Grid     Grid         `json:"grid"`
	Current  Piece        `json:"current"`
	Selected *rules.Coord `json:"selected,omitempty"`
	Winner   Piece        `json:"winner"`
}

// New returns the starting position with player 1 to move.
func New() Game {
	var grid Grid

	for row := range BoardSize {
		for col := range BoardSize {
			pos := rules.Coord{Row: row, Col: col}
			if !pos.IsDark() {
				continue
			}

			switch {
			case row < startRows:
				grid[row][col] = Player1
			case row >= BoardSize-startRows:
				grid[row][col] = Player2
			}
		}
	}

	return Game{Grid: grid, Current: Player1}
}

// FromGrid builds an arbitrary position. The winner is derived from the grid.
func FromGrid(grid Grid, current Piece) Game {
	game := Game{Grid: grid, Current: current}
	game.Winner = game.CheckTerminal()

	return game
}

// SelectOrMove handles a tap on (row, col): it arms a piece, moves the armed
// piece, switches the armed piece, or cancels the selection.
func (that Game) SelectOrMove(row, col int) (Game, error) {
	target := rules.Coord{Row: row, Col: col}
	if !target.In(BoardSize) {
		return that, fmt.Errorf("%w: square (%d,%d)", apperror.ErrOutOfRange, row, col)
	}

	if that.Winner != None {
		return that, ErrGameFinished
	}

	next := that
	piece := that.at(target)

	if that.Selected == nil && piece == that.Current {
		next.Selected = &target
		return next, nil
	}

	if that.Selected != nil && that.IsValidMove(*that.Selected, target) {
		next.move(*that.Selected, target)
		next.Selected = nil
		next.Current = rules.Alternate(that.Current, Player1, Player2)
		next.Winner = next.CheckTerminal()

		return next, nil
	}

	if piece == that.Current {
		next.Selected = &target
		return next, nil
	}

	next.Selected = nil

	return next, fmt.Errorf("%w: square (%d,%d)", apperror.ErrInvalidMove, row, col)
}

// IsValidMove reports whether the current player's piece at from may go to to.
func (that Game) IsValidMove(from, to rules.Coord) bool {
	if !from.In(BoardSize) || !to.In(BoardSize) {
		return false
	}

	if that.at(from) != that.Current || that.at(to) != None {
		return false
	}

	dr, dc := from.Delta(to)

	if rules.Abs(dc) == 1 && dr == forward(that.Current) {
		return true
	}

	if rules.Abs(dc) == 2 && rules.Abs(dr) == 2 {
		jumped := that.at(from.Midpoint(to))
		return jumped != None && jumped != that.Current
	}

	return false
}

// CheckTerminal returns the winner, or None while both sides have pieces.
func (that Game) CheckTerminal() Piece {
	switch {
	case that.Count(Player1) == 0:
		return Player2
	case that.Count(Player2) == 0:
		return Player1
	default:
		return None
	}
}

func (that Game) Count(p Piece) int {
	var n int
	for _, row := range that.Grid {
		for _, cell := range row {
			if cell == p {
				n++
			}
		}
	}

	return n
}

func (that Game) at(c rules.Coord) Piece {
	return that.Grid[c.Row][c.Col]
}

func (that *Game) move(from, to rules.Coord) {
	that.Grid[to.Row][to.Col] = that.Grid[from.Row][from.Col]
	that.Grid[from.Row][from.Col] = None

	if _, dc := from.Delta(to); rules.Abs(dc) == 2 {
		mid := from.Midpoint(to)
		that.Grid[mid.Row][mid.Col] = None
	}
}

// forward is the row step of a plain move: player 1 moves down the board.
func forward(p Piece) int {
	if p == Player1 {
		return 1
	}

	return -1
}
