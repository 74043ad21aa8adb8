package audio

import (
	"math"

	"github.com/ooloteam/audionorm/utils"
)

// Resample converts a mono sample buffer from srcRate to dstRate using
// Catmull-Rom cubic interpolation. The output length is
// ceil(len(in) * dstRate / srcRate), which keeps the duration of the
// rendered buffer within one sample of the source duration.
//
// When downsampling, a one-pole low-pass stage runs over the input
// first to suppress aliasing above the destination Nyquist frequency.
func Resample(in []float32, srcRate, dstRate int) []float32 {
	if len(in) == 0 || srcRate == dstRate {
		return in
	}

	if srcRate < dstRate {
		return interpolate(in, srcRate, dstRate)
	}

	// One-pole low-pass: y[n] = alpha*x[n] + (1-alpha)*y[n-1].
	const alpha = float32(0.5)
	filtered := make([]float32, len(in))
	state := in[0]
	for i, x := range in {
		state = alpha*x + (1-alpha)*state
		filtered[i] = state
	}

	return interpolate(filtered, srcRate, dstRate)
}

func interpolate(in []float32, srcRate, dstRate int) []float32 {
	outLen := int(math.Ceil(float64(len(in)) * float64(dstRate) / float64(srcRate)))
	out := make([]float32, outLen)
	ratio := float64(srcRate) / float64(dstRate)

	last := len(in) - 1
	for i := range out {
		pos := float64(i) * ratio
		idx := int(pos)
		frac := float32(pos - float64(idx))

		// Neighbor frames with edge clamping.
		y1 := in[min(idx, last)]
		y0 := y1
		if idx > 0 {
			y0 = in[idx-1]
		}
		y2 := in[min(idx+1, last)]
		y3 := in[min(idx+2, last)]

		out[i] = utils.CubicInterpolate(y0, y1, y2, y3, frac)
	}

	return out
}
