package audionorm

import "errors"

// ErrUnsupportedInput reports an asset whose name and declared MIME
// type match neither the audio nor the video family.
var ErrUnsupportedInput = errors.New("unsupported input type")
