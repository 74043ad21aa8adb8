package audionorm

import (
	"context"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/ooloteam/audionorm/audio"
	"github.com/ooloteam/audionorm/capture"
	"github.com/ooloteam/audionorm/config"
	"github.com/ooloteam/audionorm/extract"
	"github.com/ooloteam/audionorm/formats/wav"
	"github.com/ooloteam/audionorm/internal/audiotest"
	"github.com/ooloteam/audionorm/utils"
)

// encodeWAV builds a multi-channel PCM16 WAV buffer. The production
// encoder is mono-only, so tests hand-roll the header for stereo
// fixtures.
func encodeWAV(rate, channels int, samples []int16) []byte {
	dataLen := len(samples) * 2
	buf := make([]byte, 44+dataLen)

	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], uint32(36+dataLen))
	copy(buf[8:12], "WAVE")
	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16)
	binary.LittleEndian.PutUint16(buf[20:22], 1)
	binary.LittleEndian.PutUint16(buf[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(buf[24:28], uint32(rate))
	binary.LittleEndian.PutUint32(buf[28:32], uint32(rate*channels*2))
	binary.LittleEndian.PutUint16(buf[32:34], uint16(channels*2))
	binary.LittleEndian.PutUint16(buf[34:36], 16)
	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], uint32(dataLen))

	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[44+2*i:], uint16(s))
	}

	return buf
}

func sineWAV(t *testing.T, rate, channels, frames int) []byte {
	t.Helper()

	src := audiotest.NewSineSource(rate, channels, frames, 440)
	interleaved, err := audio.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}

	samples := make([]int16, len(interleaved))
	for i, f := range interleaved {
		samples[i] = utils.Float32ToInt16(f)
	}

	return encodeWAV(rate, channels, samples)
}

func wavHeader(t *testing.T, data []byte) (rate uint32, channels uint16, dataLen uint32) {
	t.Helper()

	if len(data) < 44 {
		t.Fatalf("buffer too short for a WAV header: %d bytes", len(data))
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		t.Fatal("buffer is not a RIFF/WAVE container")
	}

	return binary.LittleEndian.Uint32(data[24:28]),
		binary.LittleEndian.Uint16(data[22:24]),
		binary.LittleEndian.Uint32(data[40:44])
}

func TestEngine_ProcessAudio_EndToEnd(t *testing.T) {
	t.Parallel()

	// Five seconds of 44.1 kHz stereo in, five seconds of 16 kHz mono
	// out.
	const seconds = 5
	asset := MediaAsset{
		Name:     "take.wav",
		MIMEType: "audio/wav",
		Data:     sineWAV(t, 44100, 2, 44100*seconds),
	}

	e := NewEngine(config.Config{})
	result, err := e.Process(context.Background(), asset)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if result.Kind != KindAudio {
		t.Errorf("Kind = %v, want audio", result.Kind)
	}
	if !result.Normalized {
		t.Error("Normalized = false, want true")
	}
	if result.MIMEType != "audio/wav" {
		t.Errorf("MIMEType = %q, want audio/wav", result.MIMEType)
	}

	rate, channels, dataLen := wavHeader(t, result.Bytes)
	if rate != 16000 {
		t.Errorf("output rate = %d, want 16000", rate)
	}
	if channels != 1 {
		t.Errorf("output channels = %d, want 1", channels)
	}

	wantSamples := uint32(16000 * seconds)
	if got := dataLen / 2; got != wantSamples {
		t.Errorf("output samples = %d, want %d", got, wantSamples)
	}
}

func TestEngine_Normalize_CanonicalPassthrough(t *testing.T) {
	t.Parallel()

	samples := make([]float32, 16000)
	for i := range samples {
		samples[i] = float32(math.Sin(float64(i) / 20))
	}
	data := wav.Encode(samples, 16000, 16)

	e := NewEngine(config.Config{})
	out, ok := e.Normalize(data, "audio/wav")
	if !ok {
		t.Fatal("Normalize() ok = false for canonical input")
	}

	if &out[0] != &data[0] {
		t.Error("canonical buffer was re-rendered instead of passed through")
	}
}

func TestEngine_Normalize_UndecodableBuffer(t *testing.T) {
	t.Parallel()

	e := NewEngine(config.Config{})

	if _, ok := e.Normalize([]byte("definitely not audio data at all"), "audio/m4a"); ok {
		t.Error("Normalize() ok = true for undecodable bytes")
	}
	if _, ok := e.Normalize(nil, ""); ok {
		t.Error("Normalize() ok = true for an empty buffer")
	}
}

func TestEngine_ProcessAudio_DegradesOnUndecodable(t *testing.T) {
	t.Parallel()

	// m4a has no registered decoder; the original bytes come back
	// tagged un-normalized instead of an error.
	original := []byte("m4a-ish bytes with no decoder")
	asset := MediaAsset{Name: "voice.m4a", MIMEType: "audio/mp4", Data: original}

	e := NewEngine(config.Config{})
	result, err := e.Process(context.Background(), asset)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if result.Normalized {
		t.Error("Normalized = true, want false")
	}
	if string(result.Bytes) != string(original) {
		t.Error("degraded result does not carry the original bytes")
	}
	if result.MIMEType != "audio/mp4" {
		t.Errorf("MIMEType = %q, want the declared audio/mp4", result.MIMEType)
	}
}

func TestEngine_Process_Unsupported(t *testing.T) {
	t.Parallel()

	e := NewEngine(config.Config{})

	_, err := e.Process(context.Background(), MediaAsset{Name: "notes.txt", MIMEType: "text/plain"})
	if !errors.Is(err, ErrUnsupportedInput) {
		t.Errorf("Process() error = %v, want ErrUnsupportedInput", err)
	}
}

// fakeRunner stands in for the external decoder pair. The ffprobe call
// gets canned JSON; the ffmpeg stream serves pcm and ends.
type fakeRunner struct {
	probeJSON string
	pcm       []byte
}

func (f *fakeRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	if strings.Contains(name, "ffprobe") {
		return []byte(f.probeJSON), nil
	}
	return []byte("ffmpeg version 6.0"), nil
}

func (f *fakeRunner) Stream(ctx context.Context, name string, args ...string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(string(f.pcm))), nil
}

func TestEngine_Process_Video(t *testing.T) {
	t.Parallel()

	// One second of 16 kHz tone as the "extracted" track; already at
	// the canonical rate, so normalization passes it straight through.
	frames := 16000
	pcm := make([]byte, frames*2)
	for i := 0; i < frames; i++ {
		v := int16(8000 * math.Sin(float64(i)/10))
		binary.LittleEndian.PutUint16(pcm[2*i:], uint16(v))
	}

	runner := &fakeRunner{
		probeJSON: `{"format":{"duration":"1.0"},"streams":[{"sample_rate":"16000"}]}`,
		pcm:       pcm,
	}

	e := NewEngine(config.Config{})
	e.extractor = extract.NewExtractor(runner, e, extract.NewDecodeValidator(), extract.Config{})

	result, err := e.Process(context.Background(), MediaAsset{Name: "clip.mp4", Data: []byte("mp4 bytes")})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if result.Kind != KindVideo {
		t.Errorf("Kind = %v, want video", result.Kind)
	}
	if !result.Normalized {
		t.Error("Normalized = false, want true")
	}
	if result.ForcedStop {
		t.Error("ForcedStop = true, want false")
	}

	rate, channels, dataLen := wavHeader(t, result.Bytes)
	if rate != 16000 || channels != 1 {
		t.Errorf("output header = %d Hz / %d ch, want 16000 / 1", rate, channels)
	}
	if int(dataLen) != len(pcm) {
		t.Errorf("output payload = %d bytes, want %d", dataLen, len(pcm))
	}
}

// fakeCaptureStream serves its chunks, signals on served, then blocks
// until closed.
type fakeCaptureStream struct {
	chunks [][]int16
	next   int

	served chan struct{}
	once   sync.Once
	closed chan struct{}
}

func newFakeCaptureStream(chunks [][]int16) *fakeCaptureStream {
	return &fakeCaptureStream{
		chunks: chunks,
		served: make(chan struct{}),
		closed: make(chan struct{}),
	}
}

func (s *fakeCaptureStream) Read(dst []int16) (int, error) {
	if s.next < len(s.chunks) {
		n := copy(dst, s.chunks[s.next])
		s.next++
		if s.next == len(s.chunks) {
			close(s.served)
		}
		return n, nil
	}
	<-s.closed
	return 0, errors.New("stream closed")
}

func (s *fakeCaptureStream) Close() error {
	s.once.Do(func() { close(s.closed) })
	return nil
}

type fakeCaptureDevice struct {
	stream *fakeCaptureStream
}

func (d *fakeCaptureDevice) Acquire(ctx context.Context, cfg capture.DeviceConfig) (capture.Stream, error) {
	return d.stream, nil
}

func (d *fakeCaptureDevice) Encodings() []string { return []string{"audio/wav"} }
func (d *fakeCaptureDevice) Available() bool     { return true }

func TestEngine_RecorderNormalizesThroughEngine(t *testing.T) {
	t.Parallel()

	chunk := make([]int16, 1600)
	for i := range chunk {
		chunk[i] = 1000
	}
	device := &fakeCaptureDevice{stream: newFakeCaptureStream([][]int16{chunk, chunk})}

	e := NewEngine(config.Config{})
	rec := e.NewRecorder(device)

	if err := rec.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	<-device.stream.served
	result, err := rec.Stop()
	if err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	if !result.Normalized {
		t.Error("Normalized = false, want true")
	}
	if result.MIMEType != "audio/wav" {
		t.Errorf("MIMEType = %q, want audio/wav", result.MIMEType)
	}

	rate, channels, dataLen := wavHeader(t, result.Bytes)
	if rate != 16000 || channels != 1 {
		t.Errorf("output header = %d Hz / %d ch, want 16000 / 1", rate, channels)
	}
	if want := uint32(2 * len(chunk) * 2); dataLen != want {
		t.Errorf("output payload = %d bytes, want %d", dataLen, want)
	}
}

func TestEngine_Capabilities(t *testing.T) {
	t.Parallel()

	e := NewEngine(config.Config{})
	e.device = &fakeCaptureDevice{}
	e.extractor = extract.NewExtractor(&fakeRunner{}, e, nil, extract.Config{})

	caps := e.Capabilities(context.Background())

	want := []string{"aiff", "flac", "mp3", "ogg", "wav"}
	if len(caps.DecodeFormats) != len(want) {
		t.Fatalf("DecodeFormats = %v, want %v", caps.DecodeFormats, want)
	}
	for i := range want {
		if caps.DecodeFormats[i] != want[i] {
			t.Errorf("DecodeFormats[%d] = %q, want %q", i, caps.DecodeFormats[i], want[i])
		}
	}

	if !caps.CaptureAvailable {
		t.Error("CaptureAvailable = false, want true")
	}
	if !caps.ExtractionAvailable {
		t.Error("ExtractionAvailable = false, want true")
	}
	if len(caps.SupportedEncoders) == 0 || caps.SupportedEncoders[0] != capture.DefaultEncoderPriority[0] {
		t.Errorf("SupportedEncoders = %v, want the default priority order", caps.SupportedEncoders)
	}
	if caps.TargetSampleRate != 16000 {
		t.Errorf("TargetSampleRate = %d, want 16000", caps.TargetSampleRate)
	}
}
