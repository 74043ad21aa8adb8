package capture

import "errors"

var (
	ErrDeviceUnavailable = errors.New("capture device unavailable")
	ErrRecorderBusy      = errors.New("a recording is already in progress")
	ErrNotRecording      = errors.New("no recording in progress")
	ErrNoEncoding        = errors.New("device offers no usable encoding")
)
