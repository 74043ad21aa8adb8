package audio

import (
	"fmt"

	"github.com/ooloteam/audionorm/utils"
)

// CanonicalRate is the sample rate every normalized buffer is rendered
// at, matching what the inference service expects.
const CanonicalRate = 16000

// NormalizedAudio is the canonical decoded form: one channel of float32
// samples with magnitudes clamped to [-1, 1].
type NormalizedAudio struct {
	Samples    []float32
	SampleRate int
	Channels   int
}

// Duration of the buffer in seconds.
func (n NormalizedAudio) Duration() float64 {
	if n.SampleRate == 0 {
		return 0
	}
	return float64(len(n.Samples)) / float64(n.SampleRate)
}

// Renderer performs the offline normalization pass: drain a decoded
// source completely, merge its channels to mono, and resample to the
// target rate in a single non-real-time rendering step.
type Renderer struct {
	targetRate int
}

// NewRenderer creates a renderer for targetRate. A rate <= 0 selects
// CanonicalRate.
func NewRenderer(targetRate int) *Renderer {
	if targetRate <= 0 {
		targetRate = CanonicalRate
	}
	return &Renderer{targetRate: targetRate}
}

func (r *Renderer) TargetRate() int { return r.targetRate }

// Render produces the normalized form of src. A source that is already
// mono at the target rate passes through without a resample pass.
func (r *Renderer) Render(src Source) (NormalizedAudio, error) {
	interleaved, err := ReadAll(src)
	if err != nil {
		return NormalizedAudio{}, fmt.Errorf("render: %w", err)
	}
	if len(interleaved) == 0 {
		return NormalizedAudio{}, ErrNoSamples
	}

	mono := MergeMono(interleaved, src.Channels())
	out := Resample(mono, src.SampleRate(), r.targetRate)

	for i, s := range out {
		out[i] = utils.Clamp(s)
	}

	return NormalizedAudio{
		Samples:    out,
		SampleRate: r.targetRate,
		Channels:   1,
	}, nil
}
