package capture

import "context"

// DeviceConfig carries the constraints requested when acquiring the
// capture device.
type DeviceConfig struct {
	SampleRate     int // requested rate in Hz; backends may deliver another
	Channels       int
	FramesPerChunk int

	// Processing hints; honored by backends that support them.
	EchoCancellation bool
	NoiseSuppression bool
}

// Stream is an open capture stream. Read blocks until one chunk of
// frames has been captured.
type Stream interface {
	// Read fills dst with interleaved 16-bit PCM frames and returns
	// the number of values written.
	Read(dst []int16) (int, error)

	// Close stops the stream and releases the device. A Read blocked
	// at close time returns an error.
	Close() error
}

// Device abstracts the capture hardware so the recorder can be tested
// without a microphone.
type Device interface {
	// Acquire opens the device with the given constraints. Denial or
	// absence of a device must be reported by wrapping
	// ErrDeviceUnavailable.
	Acquire(ctx context.Context, cfg DeviceConfig) (Stream, error)

	// Encodings lists the MIME types the device-side encoder can
	// emit, in no particular order.
	Encodings() []string

	// Available reports whether a capture device is present, without
	// acquiring it.
	Available() bool
}
