package blinky

import "errors"

var (
	ErrInvalidOptions = errors.New("invalid options")
	ErrNoBoard        = errors.New("no board")
)
