// Package audionorm turns heterogeneous media (live device capture,
// uploaded audio files, uploaded video files) into one canonical form:
// 16 kHz mono 16-bit PCM inside a WAV container, ready for a
// downstream inference service.
//
// # The three paths
//
// Live capture (package capture) drives a microphone through an
// Idle→Recording→Stopping→Stopped lifecycle, accumulating 100 ms PCM
// chunks and normalizing the concatenated take on stop.
//
// Audio uploads decode through the format registry (WAV, MP3, Ogg
// Vorbis, FLAC, AIFF), then pass through an offline rendering step
// that merges channels to mono and resamples to the target rate.
//
// Video uploads (package extract) stream their audio track out of the
// container via an external decoder, bounded by a deadline derived
// from the probed duration, then normalize like any other capture.
//
// # Quick start
//
//	cfg, _ := config.Load()
//	engine := audionorm.NewEngine(cfg)
//
//	asset := audionorm.MediaAsset{
//		Name:     "meeting.mp3",
//		MIMEType: "audio/mpeg",
//		Data:     data,
//	}
//	result, err := engine.Process(ctx, asset)
//	// result.Bytes is canonical WAV when result.Normalized is true
//
// # Degradation over failure
//
// Normalization never turns a captured recording into an error: when
// the canonical render cannot run, the original encoded buffer is
// returned tagged Normalized=false, and the caller decides what to do
// with it. Hard errors are reserved for inputs that produced no audio
// at all; UserMessage maps them to text fit for an end user.
package audionorm
