package extract

import "errors"

var (
	ErrCorruptMedia         = errors.New("media metadata unreadable or zero duration")
	ErrEmptyExtraction      = errors.New("extraction produced no audio data")
	ErrUnplayableExtraction = errors.New("extracted audio failed validation")
)
