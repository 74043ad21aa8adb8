package audio

// MergeMono folds interleaved multi-channel samples into a single
// channel by averaging. A mono input is returned as-is.
func MergeMono(interleaved []float32, channels int) []float32 {
	if channels <= 1 {
		return interleaved
	}

	frames := len(interleaved) / channels
	out := make([]float32, frames)

	switch channels {
	case 2:
		for f := range frames {
			idx := f << 1
			out[f] = (interleaved[idx] + interleaved[idx+1]) * 0.5
		}
	default:
		inv := float32(1.0) / float32(channels)
		for f := range frames {
			base := f * channels
			sum := float32(0)
			for c := range channels {
				sum += interleaved[base+c]
			}
			out[f] = sum * inv
		}
	}

	return out
}
