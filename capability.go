package audionorm

import (
	"context"
	"sort"

	"github.com/ooloteam/audionorm/capture"
)

// Capabilities reports what this engine can do on the host it runs on.
type Capabilities struct {
	// DecodeFormats lists the registry keys of the decodable audio
	// formats, sorted.
	DecodeFormats []string

	// CaptureAvailable is true when a capture device is present.
	CaptureAvailable bool

	// ExtractionAvailable is true when the external video decoder is
	// installed and executable.
	ExtractionAvailable bool

	// SupportedEncoders is the capture encoding preference order in
	// effect, most preferred first.
	SupportedEncoders []string

	// TargetSampleRate is the canonical output rate in Hz.
	TargetSampleRate int
}

// Capabilities probes the host. The probe runs the external decoder's
// version check, so it respects ctx.
func (e *Engine) Capabilities(ctx context.Context) Capabilities {
	formats := e.registry.Formats()
	sort.Strings(formats)

	encoders := e.cfg.EncoderPriority
	if len(encoders) == 0 {
		encoders = capture.DefaultEncoderPriority
	}

	return Capabilities{
		DecodeFormats:       formats,
		CaptureAvailable:    e.device.Available(),
		ExtractionAvailable: e.extractor.VerifyInstalled(ctx) == nil,
		SupportedEncoders:   encoders,
		TargetSampleRate:    e.renderer.TargetRate(),
	}
}
