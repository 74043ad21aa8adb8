package capture

import (
	"context"
	"encoding/binary"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ooloteam/audionorm/formats/wav"
)

// State of a capture session.
type State int

const (
	StateIdle State = iota
	StateRecording
	StateStopping
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	}
	return "unknown"
}

// Normalizer turns an encoded capture buffer into canonical WAV bytes.
// ok=false means normalization could not run and the caller should use
// the original buffer.
type Normalizer interface {
	Normalize(data []byte, mimeType string) (out []byte, ok bool)
}

// Config for the recorder.
type Config struct {
	SampleRate      int           // requested device rate; default 16000
	ChunkInterval   time.Duration // accumulation interval; default 100ms
	EncoderPriority []string      // preference order; default DefaultEncoderPriority
}

// Result of a finished recording.
type Result struct {
	Bytes    []byte
	MIMEType string

	// Normalized is false when normalization failed and Bytes holds
	// the original encoded capture instead of canonical WAV.
	Normalized bool
}

// session is the exclusive owner of an acquired device stream.
type session struct {
	stream Stream
	codec  string
	rate   int
	chunks [][]byte
}

// Recorder drives a capture device through the
// Idle→Recording→Stopping→Stopped lifecycle. At most one session is
// active at a time; a second Start fails fast rather than queueing.
type Recorder struct {
	device     Device
	normalizer Normalizer
	cfg        Config

	mtx   sync.Mutex
	state State
	sess  *session
	stop  chan struct{}
	done  chan struct{}
}

func NewRecorder(device Device, normalizer Normalizer, cfg Config) *Recorder {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = 16000
	}
	if cfg.ChunkInterval <= 0 {
		cfg.ChunkInterval = 100 * time.Millisecond
	}
	if len(cfg.EncoderPriority) == 0 {
		cfg.EncoderPriority = DefaultEncoderPriority
	}

	return &Recorder{
		device:     device,
		normalizer: normalizer,
		cfg:        cfg,
	}
}

// State reports the current session state.
func (r *Recorder) State() State {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	return r.state
}

// Start acquires the device and begins accumulating chunks. It fails
// with ErrRecorderBusy while a previous session has not finished its
// teardown, and with ErrDeviceUnavailable when the device is denied or
// absent.
func (r *Recorder) Start(ctx context.Context) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if r.state != StateIdle && r.state != StateStopped {
		return ErrRecorderBusy
	}

	framesPerChunk := r.cfg.SampleRate * int(r.cfg.ChunkInterval/time.Millisecond) / 1000
	stream, err := r.device.Acquire(ctx, DeviceConfig{
		SampleRate:       r.cfg.SampleRate,
		Channels:         1,
		FramesPerChunk:   framesPerChunk,
		EchoCancellation: true,
		NoiseSuppression: true,
	})
	if err != nil {
		return fmt.Errorf("acquire: %w", err)
	}

	codec, ok := Negotiate(r.cfg.EncoderPriority, r.device.Encodings())
	if !ok {
		supported := r.device.Encodings()
		if len(supported) == 0 {
			stream.Close()
			return ErrNoEncoding
		}
		codec = supported[0]
	}

	r.sess = &session{
		stream: stream,
		codec:  codec,
		rate:   r.cfg.SampleRate,
	}
	r.state = StateRecording
	r.stop = make(chan struct{})
	r.done = make(chan struct{})

	go r.captureLoop(ctx, r.sess, framesPerChunk, r.stop, r.done)

	return nil
}

func (r *Recorder) captureLoop(ctx context.Context, sess *session, framesPerChunk int, stop, done chan struct{}) {
	defer close(done)

	buf := make([]int16, framesPerChunk)

	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			return
		default:
		}

		n, err := sess.stream.Read(buf)
		if n > 0 {
			// A read already in flight when stop fires still lands
			// here; dropping it would lose the tail of the recording.
			r.appendChunk(sess, buf[:n])
		}
		if err != nil {
			select {
			case <-stop:
			default:
				log.Printf("capture: stream read: %v", err)
			}
			return
		}
	}
}

func (r *Recorder) appendChunk(sess *session, frames []int16) {
	chunk := make([]byte, len(frames)*2)
	for i, v := range frames {
		binary.LittleEndian.PutUint16(chunk[2*i:], uint16(v))
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()

	if r.state != StateRecording && r.state != StateStopping {
		return
	}
	sess.chunks = append(sess.chunks, chunk)
}

// Stop finalizes the session: it releases the device, concatenates the
// accumulated chunks into one buffer tagged with the negotiated MIME
// type, and normalizes it. If normalization fails the original encoded
// buffer is returned with Normalized=false instead of an error.
func (r *Recorder) Stop() (Result, error) {
	r.mtx.Lock()
	if r.state != StateRecording {
		r.mtx.Unlock()
		return Result{}, ErrNotRecording
	}
	r.state = StateStopping
	sess, stop, done := r.sess, r.stop, r.done
	r.mtx.Unlock()

	close(stop)
	sess.stream.Close() // unblocks a pending read
	<-done

	r.mtx.Lock()
	var total int
	for _, c := range sess.chunks {
		total += len(c)
	}
	pcm := make([]byte, 0, total)
	for _, c := range sess.chunks {
		pcm = append(pcm, c...)
	}
	r.state = StateStopped
	r.sess = nil
	r.mtx.Unlock()

	encoded := wav.WrapPCM16(pcm, sess.rate)

	if r.normalizer == nil {
		return Result{Bytes: encoded, MIMEType: wav.MIMEType, Normalized: false}, nil
	}

	normalized, ok := r.normalizer.Normalize(encoded, sess.codec)
	if !ok {
		return Result{Bytes: encoded, MIMEType: sess.codec, Normalized: false}, nil
	}

	return Result{Bytes: normalized, MIMEType: wav.MIMEType, Normalized: true}, nil
}
