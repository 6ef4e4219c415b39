package catcher

import "github.com/pkg/errors"

var (
	// ErrInvalidAction is returned by Step for an action outside the action
	// space. It signals a caller bug; the environment is left untouched.
	ErrInvalidAction = errors.New("invalid action")

	// ErrInvalidConfig is returned when a Config cannot drive a simulation.
	ErrInvalidConfig = errors.New("invalid config")
)
