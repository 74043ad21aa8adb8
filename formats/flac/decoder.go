package flac

import (
	"fmt"
	"io"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"

	"github.com/ooloteam/audionorm/audio"
)

// flacReader is the part of flac.Stream the source needs, split out so
// tests can substitute it.
type flacReader interface {
	ParseNext() (*frame.Frame, error)
}

type source struct {
	dec        flacReader
	sampleRate int
	channels   int
	scale      float32 // 1 / (1 << (bps-1))

	pending []float32 // interleaved leftovers from the last frame
	eof     bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	written := 0
	for written < len(dst) {
		if len(s.pending) == 0 {
			if s.eof {
				break
			}
			if err := s.decodeFrame(); err != nil {
				if err == io.EOF {
					s.eof = true
					continue
				}
				return written, err
			}
		}

		n := copy(dst[written:], s.pending)
		s.pending = s.pending[n:]
		written += n
	}

	if written == 0 {
		return 0, io.EOF
	}
	if s.eof && len(s.pending) == 0 {
		return written, io.EOF
	}
	return written, nil
}

// decodeFrame pulls the next FLAC frame and interleaves its per-channel
// subframes into the pending buffer.
func (s *source) decodeFrame() error {
	f, err := s.dec.ParseNext()
	if err != nil {
		return err
	}

	blockSize := len(f.Subframes[0].Samples)
	out := make([]float32, blockSize*s.channels)

	for ch := 0; ch < s.channels && ch < len(f.Subframes); ch++ {
		samples := f.Subframes[ch].Samples
		for i := 0; i < blockSize && i < len(samples); i++ {
			out[i*s.channels+ch] = float32(samples[i]) * s.scale
		}
	}

	s.pending = out
	return nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("flac decode: %w", err)
	}

	info := stream.Info
	if info == nil || info.NChannels == 0 {
		return nil, ErrUnsupportedFlacLayout
	}

	return &source{
		dec:        stream,
		sampleRate: int(info.SampleRate),
		channels:   int(info.NChannels),
		scale:      1.0 / float32(int64(1)<<(info.BitsPerSample-1)),
	}, nil
}
