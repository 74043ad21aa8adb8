package audio

import "errors"

var (
	ErrNoSamples     = errors.New("source produced no samples")
	ErrUnknownFormat = errors.New("unknown audio format")
)
