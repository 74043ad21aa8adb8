package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ooloteam/audionorm/formats/wav"
)

// JobState tracks an extraction through its lifecycle.
type JobState int

const (
	JobLoadingMetadata JobState = iota
	JobCapturing
	JobFinalizing
	JobDone
	JobFailed
)

func (s JobState) String() string {
	switch s {
	case JobLoadingMetadata:
		return "loading-metadata"
	case JobCapturing:
		return "capturing"
	case JobFinalizing:
		return "finalizing"
	case JobDone:
		return "done"
	case JobFailed:
		return "failed"
	}
	return "unknown"
}

// deadlineMargin absorbs decoder startup and scheduling slack on top
// of the media's own duration.
const deadlineMargin = 2 * time.Second

// Normalizer turns an encoded capture buffer into canonical WAV bytes.
// ok=false means normalization could not run and the original buffer
// should be used.
type Normalizer interface {
	Normalize(data []byte, mimeType string) (out []byte, ok bool)
}

// Validator gates an extracted buffer on playability.
type Validator interface {
	Validate(ctx context.Context, data []byte) bool
}

// Config for the extractor.
type Config struct {
	FFmpegPath  string // default "ffmpeg"
	FFprobePath string // default "ffprobe"
	TempDir     string // default os.TempDir()
}

// Result of a finished extraction.
type Result struct {
	Bytes    []byte
	MIMEType string

	// Normalized is false when normalization fell back to the raw
	// captured buffer.
	Normalized bool

	// ForcedStop is true when the deadline fired before the decode
	// stream ended naturally; the chunks captured up to that point
	// are still included.
	ForcedStop bool

	DurationSeconds float64
}

// Extractor obtains the audio track of a video asset by streaming it
// through an external decoder, bounded by a deadline derived from the
// probed duration.
type Extractor struct {
	runner     CommandRunner
	normalizer Normalizer
	validator  Validator
	cfg        Config

	mtx   sync.Mutex
	state JobState
}

func NewExtractor(runner CommandRunner, normalizer Normalizer, validator Validator, cfg Config) *Extractor {
	if cfg.FFmpegPath == "" {
		cfg.FFmpegPath = "ffmpeg"
	}
	if cfg.FFprobePath == "" {
		cfg.FFprobePath = "ffprobe"
	}
	if cfg.TempDir == "" {
		cfg.TempDir = os.TempDir()
	}
	if runner == nil {
		runner = ExecCommandRunner{}
	}

	return &Extractor{
		runner: runner,

		normalizer: normalizer,
		validator:  validator,
		cfg:        cfg,
	}
}

// State reports the state the most recent job reached. Timeouts never
// fail silently: a deadline firing forces Finalizing before the job
// settles in Done or Failed.
func (e *Extractor) State() JobState {
	e.mtx.Lock()
	defer e.mtx.Unlock()
	return e.state
}

func (e *Extractor) setState(s JobState) {
	e.mtx.Lock()
	e.state = s
	e.mtx.Unlock()
}

// VerifyInstalled checks that the external decoder is present.
func (e *Extractor) VerifyInstalled(ctx context.Context) error {
	if _, err := e.runner.Output(ctx, e.cfg.FFmpegPath, "-version"); err != nil {
		return fmt.Errorf("ffmpeg not found or not executable: %w", err)
	}
	return nil
}

// Extract runs the full pipeline on an in-memory video asset:
// metadata probe, bounded real-time decode into a chunk sink,
// normalization, and validation. name is used only for the temp file
// suffix.
func (e *Extractor) Extract(ctx context.Context, data []byte, name string) (Result, error) {
	e.setState(JobLoadingMetadata)

	path, cleanup, err := e.spill(data, name)
	if err != nil {
		e.setState(JobFailed)
		return Result{}, err
	}
	defer cleanup()

	meta, err := Probe(ctx, e.runner, e.cfg.FFprobePath, path)
	if err != nil {
		e.setState(JobFailed)
		return Result{}, err
	}

	e.setState(JobCapturing)
	pcm, forced, err := e.capture(ctx, path, meta)
	if err != nil {
		e.setState(JobFailed)
		return Result{}, err
	}

	e.setState(JobFinalizing)
	encoded := wav.WrapPCM16(pcm, meta.SampleRate)

	out, normalized := encoded, false
	if e.normalizer != nil {
		if n, ok := e.normalizer.Normalize(encoded, wav.MIMEType); ok {
			out, normalized = n, true
		}
	}

	if e.validator != nil && !e.validator.Validate(ctx, out) {
		e.setState(JobFailed)
		return Result{}, ErrUnplayableExtraction
	}

	e.setState(JobDone)
	return Result{
		Bytes:           out,
		MIMEType:        wav.MIMEType,
		Normalized:      normalized,
		ForcedStop:      forced,
		DurationSeconds: meta.DurationSeconds,
	}, nil
}

// capture streams the decoded audio track into an in-memory chunk
// sink. Two conditions end the capture, whichever fires first: the
// stream's natural end, or a deadline at duration + margin. On
// deadline the decoder is killed and the chunks captured so far are
// kept; a final chunk that lands during teardown is accepted rather
// than discarded.
func (e *Extractor) capture(ctx context.Context, path string, meta Metadata) ([]byte, bool, error) {
	deadline := time.Duration(meta.DurationSeconds*float64(time.Second)) + deadlineMargin
	cctx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	stream, err := e.runner.Stream(cctx, e.cfg.FFmpegPath,
		"-i", path,
		"-vn",
		"-ac", "1",
		"-f", "s16le",
		"-",
	)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrEmptyExtraction, err)
	}
	defer stream.Close()

	var sink []byte
	buf := make([]byte, 32*1024)
	for {
		n, err := stream.Read(buf)
		if n > 0 {
			sink = append(sink, buf[:n]...)
		}
		if err != nil {
			break
		}
	}

	// Only the deadline counts as a forced stop; a cancelled parent
	// context is the caller's doing and surfaces as its error.
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	forced := errors.Is(cctx.Err(), context.DeadlineExceeded)

	if len(sink) == 0 {
		return nil, forced, ErrEmptyExtraction
	}

	// Truncate a trailing partial frame left by a mid-sample kill.
	sink = sink[:len(sink)&^1]

	return sink, forced, nil
}

// spill writes the asset to a temp file so the external decoder can
// seek in it; many containers need that. The cleanup func removes it
// on every exit path.
func (e *Extractor) spill(data []byte, name string) (string, func(), error) {
	ext := filepath.Ext(name)
	f, err := os.CreateTemp(e.cfg.TempDir, "extract-*"+ext)
	if err != nil {
		return "", nil, fmt.Errorf("spill: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", nil, fmt.Errorf("spill: %w", err)
	}
	f.Close()

	path := f.Name()
	return path, func() { os.Remove(path) }, nil
}
