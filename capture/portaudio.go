package capture

import (
	"context"
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// PortAudioDevice drives the default system input through portaudio.
// It emits uncompressed PCM only; the recorder wraps that in a WAV
// container.
type PortAudioDevice struct{}

func NewPortAudioDevice() *PortAudioDevice {
	return &PortAudioDevice{}
}

func (*PortAudioDevice) Encodings() []string {
	return []string{"audio/wav"}
}

func (*PortAudioDevice) Available() bool {
	if err := portaudio.Initialize(); err != nil {
		return false
	}
	defer portaudio.Terminate()

	_, err := portaudio.DefaultInputDevice()
	return err == nil
}

func (*PortAudioDevice) Acquire(ctx context.Context, cfg DeviceConfig) (Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}

	buf := make([]int16, cfg.FramesPerChunk*cfg.Channels)
	stream, err := portaudio.OpenDefaultStream(
		cfg.Channels,
		0,
		float64(cfg.SampleRate),
		cfg.FramesPerChunk,
		buf,
	)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}

	return &paStream{stream: stream, buf: buf}, nil
}

type paStream struct {
	stream *portaudio.Stream
	buf    []int16
}

func (s *paStream) Read(dst []int16) (int, error) {
	if err := s.stream.Read(); err != nil {
		return 0, err
	}
	return copy(dst, s.buf), nil
}

func (s *paStream) Close() error {
	s.stream.Stop()
	err := s.stream.Close()
	portaudio.Terminate()
	return err
}
