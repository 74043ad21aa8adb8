package audionorm

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/ooloteam/audionorm/audio"
	"github.com/ooloteam/audionorm/capture"
	"github.com/ooloteam/audionorm/config"
	"github.com/ooloteam/audionorm/extract"
	"github.com/ooloteam/audionorm/formats/aiff"
	"github.com/ooloteam/audionorm/formats/flac"
	"github.com/ooloteam/audionorm/formats/mp3"
	"github.com/ooloteam/audionorm/formats/vorbis"
	"github.com/ooloteam/audionorm/formats/wav"
)

// Result of processing one asset.
type Result struct {
	Bytes    []byte
	MIMEType string
	Kind     SourceKind

	// Normalized is false when Bytes holds the original (or raw
	// extracted) buffer because the canonical render could not run.
	Normalized bool

	// ForcedStop is true for video assets whose extraction was ended
	// by the deadline rather than the natural end of the stream.
	ForcedStop bool
}

// Engine wires the format registry, the offline renderer, the capture
// backend and the video extractor behind one entry point. It is the
// Normalizer the other packages degrade through: when it reports
// ok=false, callers keep the original buffer instead of failing.
type Engine struct {
	registry  *audio.Registry
	renderer  *audio.Renderer
	device    capture.Device
	extractor *extract.Extractor
	cfg       config.Config
}

// NewEngine builds an engine from cfg. A zero Config works: every
// field falls back to the same default config.Load would have used.
func NewEngine(cfg config.Config) *Engine {
	if cfg.TargetSampleRate <= 0 {
		cfg.TargetSampleRate = config.DefaultTargetSampleRate
	}
	if cfg.ChunkInterval <= 0 {
		cfg.ChunkInterval = config.DefaultChunkInterval
	}

	registry := audio.NewRegistry()
	registry.Register("wav", wav.Decoder{})
	registry.Register("mp3", mp3.Decoder{})
	registry.Register("ogg", vorbis.Decoder{})
	registry.Register("flac", flac.Decoder{})
	registry.Register("aiff", aiff.Decoder{})

	e := &Engine{
		registry: registry,
		renderer: audio.NewRenderer(cfg.TargetSampleRate),
		device:   &capture.PortAudioDevice{},
		cfg:      cfg,
	}

	e.extractor = extract.NewExtractor(nil, e, extract.NewDecodeValidator(), extract.Config{
		FFmpegPath:  cfg.FFmpegPath,
		FFprobePath: cfg.FFprobePath,
		TempDir:     cfg.TempDir,
	})

	return e
}

// Process routes an asset to its processing family and returns the
// canonical (or degraded) result. Assets in neither family fail with
// ErrUnsupportedInput.
func (e *Engine) Process(ctx context.Context, asset MediaAsset) (Result, error) {
	switch Classify(asset) {
	case KindAudio:
		return e.processAudio(asset), nil
	case KindVideo:
		return e.processVideo(ctx, asset)
	}

	return Result{}, fmt.Errorf("%w: %q (%s)", ErrUnsupportedInput, asset.Name, asset.MIMEType)
}

func (e *Engine) processAudio(asset MediaAsset) Result {
	if out, ok := e.Normalize(asset.Data, asset.MIMEType); ok {
		return Result{Bytes: out, MIMEType: wav.MIMEType, Kind: KindAudio, Normalized: true}
	}

	// Undecodable audio is still worth keeping; the caller gets the
	// original bytes and the Normalized=false tag.
	return Result{Bytes: asset.Data, MIMEType: asset.MIMEType, Kind: KindAudio}
}

func (e *Engine) processVideo(ctx context.Context, asset MediaAsset) (Result, error) {
	res, err := e.extractor.Extract(ctx, asset.Data, asset.Name)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Bytes:      res.Bytes,
		MIMEType:   res.MIMEType,
		Kind:       KindVideo,
		Normalized: res.Normalized,
		ForcedStop: res.ForcedStop,
	}, nil
}

// Normalize renders an encoded buffer into canonical WAV at the target
// rate. ok=false means the buffer could not be decoded; it never
// returns an error because every caller treats failure as "keep the
// original".
func (e *Engine) Normalize(data []byte, mimeType string) ([]byte, bool) {
	if e.isCanonical(data) {
		return data, true
	}

	decoder, err := e.registry.DecoderFor(data)
	if err != nil {
		format, ok := formatFromMIME(mimeType)
		if !ok {
			return nil, false
		}
		decoder, ok = e.registry.Get(format)
		if !ok {
			return nil, false
		}
	}

	src, err := decoder.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, false
	}
	defer src.Close()

	rendered, err := e.renderer.Render(src)
	if err != nil {
		return nil, false
	}

	return wav.Encode(rendered.Samples, rendered.SampleRate, 16), true
}

// isCanonical reports whether data is already a PCM WAV in the target
// shape: format code 1, one channel, 16 bits, target rate. Such a
// buffer passes through untouched rather than taking a decode/render
// round trip.
func (e *Engine) isCanonical(data []byte) bool {
	if len(data) < 44 {
		return false
	}
	if !bytes.HasPrefix(data, []byte("RIFF")) || !bytes.Equal(data[8:12], []byte("WAVE")) {
		return false
	}

	formatCode := binary.LittleEndian.Uint16(data[20:22])
	channels := binary.LittleEndian.Uint16(data[22:24])
	rate := binary.LittleEndian.Uint32(data[24:28])
	bits := binary.LittleEndian.Uint16(data[34:36])

	return formatCode == 1 &&
		channels == 1 &&
		bits == 16 &&
		int(rate) == e.renderer.TargetRate()
}

func formatFromMIME(mimeType string) (string, bool) {
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}

	switch strings.ToLower(strings.TrimSpace(mimeType)) {
	case "audio/wav", "audio/x-wav", "audio/wave":
		return "wav", true
	case "audio/mpeg", "audio/mp3":
		return "mp3", true
	case "audio/ogg", "application/ogg":
		return "ogg", true
	case "audio/flac", "audio/x-flac":
		return "flac", true
	case "audio/aiff", "audio/x-aiff":
		return "aiff", true
	}

	return "", false
}

// NewRecorder builds a live-capture recorder that normalizes through
// this engine. A nil device selects the default hardware backend.
func (e *Engine) NewRecorder(device capture.Device) *capture.Recorder {
	if device == nil {
		device = e.device
	}

	return capture.NewRecorder(device, e, capture.Config{
		SampleRate:      e.cfg.TargetSampleRate,
		ChunkInterval:   e.cfg.ChunkInterval,
		EncoderPriority: e.cfg.EncoderPriority,
	})
}
