package apperror

import "errors"

var (
	ErrInvalidMove     = errors.New("invalid move")
	ErrOutOfRange      = errors.New("input is out of range")
	ErrGameFinished    = errors.New("game is already finished")
	ErrUnknownGame     = errors.New("unknown game")
	ErrSessionNotFound = errors.New("session not found")
	ErrPlayerNotFound  = errors.New("player not found")
	ErrNotFound        = errors.New("not found")
)
