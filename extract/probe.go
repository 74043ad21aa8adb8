package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// metadataTimeout bounds how long the probe may take. It is
// independent of the media's own duration and exists purely to catch
// unreadable files.
const metadataTimeout = 10 * time.Second

// Metadata describes the audio track of a probed container.
type Metadata struct {
	DurationSeconds float64
	SampleRate      int
}

type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		SampleRate string `json:"sample_rate"`
	} `json:"streams"`
}

// Probe reads container metadata via ffprobe. A missing, zero or
// unparsable duration, or a probe that never answers within the fixed
// bound, is reported as ErrCorruptMedia.
func Probe(ctx context.Context, runner CommandRunner, ffprobePath, path string) (Metadata, error) {
	ctx, cancel := context.WithTimeout(ctx, metadataTimeout)
	defer cancel()

	out, err := runner.Output(ctx, ffprobePath,
		"-v", "error",
		"-select_streams", "a:0",
		"-show_entries", "format=duration:stream=sample_rate",
		"-of", "json",
		path,
	)
	if err != nil {
		return Metadata{}, fmt.Errorf("%w: %v", ErrCorruptMedia, err)
	}

	var parsed probeOutput
	if err := json.Unmarshal(out, &parsed); err != nil {
		return Metadata{}, fmt.Errorf("%w: %v", ErrCorruptMedia, err)
	}

	duration, err := strconv.ParseFloat(parsed.Format.Duration, 64)
	if err != nil || duration <= 0 {
		return Metadata{}, fmt.Errorf("%w: no usable duration", ErrCorruptMedia)
	}

	meta := Metadata{DurationSeconds: duration, SampleRate: 44100}
	if len(parsed.Streams) > 0 {
		if rate, err := strconv.Atoi(parsed.Streams[0].SampleRate); err == nil && rate > 0 {
			meta.SampleRate = rate
		}
	}

	return meta, nil
}
