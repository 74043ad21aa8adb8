package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"AUDIONORM_TARGET_RATE",
		"AUDIONORM_CHUNK_INTERVAL",
		"AUDIONORM_ENCODER_PRIORITY",
		"AUDIONORM_FFMPEG",
		"AUDIONORM_FFPROBE",
		"AUDIONORM_TEMP_DIR",
		"AUDIONORM_INFERENCE_URL",
		"AUDIONORM_STORAGE_ROOT",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.TargetSampleRate != 16000 {
		t.Errorf("TargetSampleRate = %d, want 16000", cfg.TargetSampleRate)
	}
	if cfg.ChunkInterval != 100*time.Millisecond {
		t.Errorf("ChunkInterval = %v, want 100ms", cfg.ChunkInterval)
	}
	if cfg.FFmpegPath != "ffmpeg" || cfg.FFprobePath != "ffprobe" {
		t.Errorf("decoder paths = %q/%q, want ffmpeg/ffprobe", cfg.FFmpegPath, cfg.FFprobePath)
	}
	if len(cfg.EncoderPriority) != 0 {
		t.Errorf("EncoderPriority = %v, want empty", cfg.EncoderPriority)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("AUDIONORM_TARGET_RATE", "22050")
	t.Setenv("AUDIONORM_CHUNK_INTERVAL", "250ms")
	t.Setenv("AUDIONORM_ENCODER_PRIORITY", "audio/ogg;codecs=opus, audio/wav ,")
	t.Setenv("AUDIONORM_FFMPEG", "/opt/ffmpeg/bin/ffmpeg")
	t.Setenv("AUDIONORM_INFERENCE_URL", "http://localhost:5000/predict")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.TargetSampleRate != 22050 {
		t.Errorf("TargetSampleRate = %d, want 22050", cfg.TargetSampleRate)
	}
	if cfg.ChunkInterval != 250*time.Millisecond {
		t.Errorf("ChunkInterval = %v, want 250ms", cfg.ChunkInterval)
	}
	want := []string{"audio/ogg;codecs=opus", "audio/wav"}
	if len(cfg.EncoderPriority) != len(want) {
		t.Fatalf("EncoderPriority = %v, want %v", cfg.EncoderPriority, want)
	}
	for i := range want {
		if cfg.EncoderPriority[i] != want[i] {
			t.Errorf("EncoderPriority[%d] = %q, want %q", i, cfg.EncoderPriority[i], want[i])
		}
	}
	if cfg.FFmpegPath != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("FFmpegPath = %q", cfg.FFmpegPath)
	}
	if cfg.InferenceURL != "http://localhost:5000/predict" {
		t.Errorf("InferenceURL = %q", cfg.InferenceURL)
	}
}

func TestLoad_FromFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "engine.env")
	contents := "AUDIONORM_TARGET_RATE=8000\nAUDIONORM_STORAGE_ROOT=/srv/uploads\n"
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error = %v", path, err)
	}

	if cfg.TargetSampleRate != 8000 {
		t.Errorf("TargetSampleRate = %d, want 8000", cfg.TargetSampleRate)
	}
	if cfg.StorageRoot != "/srv/uploads" {
		t.Errorf("StorageRoot = %q, want /srv/uploads", cfg.StorageRoot)
	}
}

func TestLoad_MissingNamedFile(t *testing.T) {
	clearEnv(t)

	if _, err := Load(filepath.Join(t.TempDir(), "absent.env")); err == nil {
		t.Error("Load() error = nil for a missing named file")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non-numeric rate", "AUDIONORM_TARGET_RATE", "fast"},
		{"zero rate", "AUDIONORM_TARGET_RATE", "0"},
		{"negative rate", "AUDIONORM_TARGET_RATE", "-16000"},
		{"bad interval", "AUDIONORM_CHUNK_INTERVAL", "soon"},
		{"negative interval", "AUDIONORM_CHUNK_INTERVAL", "-1s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Errorf("Load() error = nil with %s=%q", tt.key, tt.value)
			}
		})
	}
}
