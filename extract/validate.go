package extract

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/ooloteam/audionorm/formats/wav"
)

// validateTimeout bounds the playability probe.
const validateTimeout = 3 * time.Second

// DecodeValidator checks that a finished buffer is actually decodable
// audio, not just bytes with a plausible header. It is used as a gate
// after video extraction only; uploaded audio files are trusted to be
// playable.
type DecodeValidator struct{}

func NewDecodeValidator() *DecodeValidator {
	return &DecodeValidator{}
}

// Validate resolves true when the buffer decodes and yields at least
// one sample before the timeout, false otherwise. It never returns an
// error: an undecodable buffer and a stuck decode both mean "not
// playable".
func (v *DecodeValidator) Validate(ctx context.Context, data []byte) bool {
	ctx, cancel := context.WithTimeout(ctx, validateTimeout)
	defer cancel()

	done := make(chan bool, 1)
	go func() {
		done <- decodeProbe(data)
	}()

	select {
	case ok := <-done:
		return ok
	case <-ctx.Done():
		return false
	}
}

func decodeProbe(data []byte) bool {
	src, err := wav.Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		return false
	}
	defer src.Close()

	buf := make([]float32, 4096)
	n, err := src.ReadSamples(buf)

	return n > 0 && (err == nil || err == io.EOF)
}
