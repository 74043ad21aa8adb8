package audionorm

import (
	"errors"

	"github.com/ooloteam/audionorm/capture"
	"github.com/ooloteam/audionorm/extract"
)

// UserMessage maps an error from any processing path to text fit for
// an end user. Unknown errors get a generic message rather than
// leaking internals.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, capture.ErrDeviceUnavailable):
		return "Could not access the recording device. Check that a microphone is connected and permitted."
	case errors.Is(err, capture.ErrRecorderBusy):
		return "A recording is already in progress. Stop it before starting another."
	case errors.Is(err, ErrUnsupportedInput):
		return "This file type is not supported. Upload an audio or video file."
	case errors.Is(err, extract.ErrCorruptMedia):
		return "Could not read this media file. It may be corrupt or incomplete."
	case errors.Is(err, extract.ErrEmptyExtraction),
		errors.Is(err, extract.ErrUnplayableExtraction):
		return "Could not get usable audio out of this media file."
	}

	return "Something went wrong while processing the audio. Please try again."
}
