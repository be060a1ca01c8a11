package entity

import (
	"github.com/rocketscienceinc/tictactoe-contract/internal/apperror"
)

// Symbol - a mark on the board. EmptyCell marks a free cell and is never a player's symbol.
type Symbol string

const (
	PlayerX   Symbol = "X"
	PlayerO   Symbol = "O"
	EmptyCell Symbol = ""
)

const BoardSize = 9

// WinCombos - rows, columns, then diagonals. Winner scans them in this order.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Opponent - returns the other player's symbol.
func (that Symbol) Opponent() Symbol {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}

func (that Symbol) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

// Game - one round of tic-tac-toe. It is a value: copying a Game copies its board.
type Game struct {
	Board [BoardSize]Symbol `json:"board"`
	Turn  Symbol            `json:"turn"`
}

// NewGame - creates a round with an empty board and X to move.
func NewGame() Game {
	return Game{Turn: PlayerX}
}

// MakeTurn - places symbol on cell and passes the turn to the opponent.
func (that *Game) MakeTurn(symbol Symbol, cell int) error {
	if that.Turn != symbol {
		return apperror.ErrNotYourTurn
	}

	if cell < 0 || cell >= len(that.Board) || that.Board[cell] != EmptyCell {
		return &apperror.CellError{Cell: cell}
	}

	that.Board[cell] = symbol
	that.Turn = symbol.Opponent()

	return nil
}

// Winner - returns the symbol owning a complete line, if any.
func (that Game) Winner() (Symbol, bool) {
	for _, combo := range WinCombos {
		a, b, c := that.Board[combo[0]], that.Board[combo[1]], that.Board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return a, true
		}
	}

	return EmptyCell, false
}

func (that Game) IsFull() bool {
	for _, cell := range that.Board {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// IsOver - true when someone won or the board is full (a draw).
func (that Game) IsOver() bool {
	if _, ok := that.Winner(); ok {
		return true
	}

	return that.IsFull()
}
