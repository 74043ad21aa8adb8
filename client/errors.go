package client

import "errors"

var (
	// ErrInvalidModel reports a model kind the engine does not route.
	ErrInvalidModel = errors.New("invalid model kind")

	// ErrModelUnavailable reports a model kind that routes nowhere yet.
	ErrModelUnavailable = errors.New("model is not connected yet")
)
