package game

import "errors"

var (
	ErrIllegalTransition     = errors.New("illegal transition")
	ErrIllegalTarget         = errors.New("illegal target")
	ErrInsufficientResources = errors.New("insufficient resources")
	ErrGameOver              = errors.New("game is over")
	ErrUnknownClass          = errors.New("unknown class")
	ErrUnknownAction         = errors.New("unknown action")
)
