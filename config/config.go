// Package config loads engine settings from the environment, with an
// optional .env file merged in first.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults for settings that are not present in the environment.
const (
	DefaultTargetSampleRate = 16000
	DefaultChunkInterval    = 100 * time.Millisecond
	DefaultFFmpegPath       = "ffmpeg"
	DefaultFFprobePath      = "ffprobe"
)

// Config carries every tunable of the engine. Zero values never reach
// the caller: Load fills defaults for anything the environment omits.
type Config struct {
	// TargetSampleRate is the canonical output rate in Hz.
	TargetSampleRate int

	// ChunkInterval is the cadence at which a live capture session
	// hands off buffered samples.
	ChunkInterval time.Duration

	// EncoderPriority orders the container/codec encodings preferred
	// for live capture, most preferred first. Empty means use the
	// built-in order.
	EncoderPriority []string

	// FFmpegPath and FFprobePath locate the external decoder used for
	// video extraction.
	FFmpegPath  string
	FFprobePath string

	// TempDir receives spilled media during extraction. Empty means
	// the system temp dir.
	TempDir string

	// InferenceURL is the endpoint normalized audio is submitted to.
	// Empty disables submission.
	InferenceURL string

	// StorageRoot is the directory uploads are archived under. Empty
	// disables archiving.
	StorageRoot string
}

// Load reads settings from the environment. Files, when given, are
// merged into the environment first, .env style; a missing implicit
// .env is not an error, a missing named file is.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return Config{}, err
		}
	} else if err := godotenv.Load(files...); err != nil {
		return Config{}, err
	}

	cfg := Config{
		TargetSampleRate: DefaultTargetSampleRate,
		ChunkInterval:    DefaultChunkInterval,
		FFmpegPath:       DefaultFFmpegPath,
		FFprobePath:      DefaultFFprobePath,
		TempDir:          os.Getenv("AUDIONORM_TEMP_DIR"),
		InferenceURL:     os.Getenv("AUDIONORM_INFERENCE_URL"),
		StorageRoot:      os.Getenv("AUDIONORM_STORAGE_ROOT"),
	}

	if v := os.Getenv("AUDIONORM_TARGET_RATE"); v != "" {
		rate, err := strconv.Atoi(v)
		if err != nil || rate <= 0 {
			return Config{}, fmt.Errorf("AUDIONORM_TARGET_RATE: invalid rate %q", v)
		}
		cfg.TargetSampleRate = rate
	}

	if v := os.Getenv("AUDIONORM_CHUNK_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("AUDIONORM_CHUNK_INTERVAL: invalid duration %q", v)
		}
		cfg.ChunkInterval = d
	}

	if v := os.Getenv("AUDIONORM_ENCODER_PRIORITY"); v != "" {
		for _, enc := range strings.Split(v, ",") {
			if enc = strings.TrimSpace(enc); enc != "" {
				cfg.EncoderPriority = append(cfg.EncoderPriority, enc)
			}
		}
	}

	if v := os.Getenv("AUDIONORM_FFMPEG"); v != "" {
		cfg.FFmpegPath = v
	}
	if v := os.Getenv("AUDIONORM_FFPROBE"); v != "" {
		cfg.FFprobePath = v
	}

	return cfg, nil
}
