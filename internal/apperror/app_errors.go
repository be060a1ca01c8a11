package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrSessionNotFound     = errors.New("session not found")
	ErrGameInProgress      = errors.New("game in progress")
	ErrNoPendingInvitation = errors.New("no pending invitation")
	ErrNoGameInProgress    = errors.New("no game in progress")
	ErrNotInvolved         = errors.New("player is not involved")
	ErrNotYourTurn         = errors.New("Not your turn")
	ErrIllegalCell         = errors.New("illegal cell")
)

// SessionError - a session-level failure carrying the identities it concerns.
type SessionError struct {
	Err    error
	Host   string
	Guest  string
	Player string
}

func NewSessionError(err error, host, guest string) *SessionError {
	return &SessionError{Err: err, Host: host, Guest: guest}
}

func (that *SessionError) Error() string {
	switch {
	case errors.Is(that.Err, ErrSessionNotFound):
		return fmt.Sprintf("no session between %s and %s", that.Host, that.Guest)
	case errors.Is(that.Err, ErrGameInProgress):
		return fmt.Sprintf("A Game in progress already exists between %s and %s", that.Host, that.Guest)
	case errors.Is(that.Err, ErrNoPendingInvitation):
		return fmt.Sprintf("No pending invitation for %s from %s", that.Guest, that.Host)
	case errors.Is(that.Err, ErrNoGameInProgress):
		return fmt.Sprintf("No game in progress between %s and %s", that.Host, that.Guest)
	case errors.Is(that.Err, ErrNotInvolved):
		return fmt.Sprintf("The player %s is not involved in a game between %s and %s", that.Player, that.Host, that.Guest)
	default:
		return that.Err.Error()
	}
}

func (that *SessionError) Unwrap() error {
	return that.Err
}

// CellError - the move targets a cell outside the board or an occupied one.
type CellError struct {
	Cell int
}

func (that *CellError) Error() string {
	return fmt.Sprintf("Cell %d is already occupied or out of range", that.Cell)
}

func (that *CellError) Unwrap() error {
	return ErrIllegalCell
}
