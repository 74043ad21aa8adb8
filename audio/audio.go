package audio

import (
	"fmt"
	"io"
	"sync"
)

// Source is a stream of decoded PCM audio.
type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns the number of float32 values written. When n == 0 with
	// err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry maps format keys (e.g., "wav", "mp3", "ogg") to decoders.
type Registry struct {
	codecs map[string]Decoder

	mtx sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
	}
}

func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[format] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[format]
	return d, ok
}

// DecoderFor sniffs an encoded buffer and returns the registered
// decoder for the container it carries. Unrecognized magic numbers and
// recognized-but-unregistered formats both report ErrUnknownFormat.
func (r *Registry) DecoderFor(data []byte) (Decoder, error) {
	format, ok := DetectFormat(data)
	if !ok {
		return nil, ErrUnknownFormat
	}

	d, ok := r.Get(format)
	if !ok {
		return nil, fmt.Errorf("%w: no decoder registered for %q", ErrUnknownFormat, format)
	}
	return d, nil
}

// Formats returns the registered format keys in unspecified order.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	keys := make([]string, 0, len(r.codecs))
	for k := range r.codecs {
		keys = append(keys, k)
	}
	return keys
}

// ReadAll drains src into a single interleaved sample buffer.
func ReadAll(src Source) ([]float32, error) {
	var all []float32
	buf := make([]float32, 4096)

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			all = append(all, buf[:n]...)
		}

		if err == io.EOF {
			return all, nil
		}
		if err != nil {
			return all, err
		}
	}
}
