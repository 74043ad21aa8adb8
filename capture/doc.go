// Package capture records live audio from an input device and hands
// the finished buffer to the normalization pipeline.
//
// # Session Lifecycle
//
// A recording moves through Idle → Recording → Stopping → Stopped.
// Chunks accumulate on a fixed interval (100ms by default) to bound
// the memory-versus-latency tradeoff, and finalization is only
// reachable from Stopping. The device is held exclusively: a second
// Start while a session is active fails fast with ErrRecorderBusy
// rather than queueing.
//
//	rec := capture.NewRecorder(capture.NewPortAudioDevice(), normalizer, capture.Config{})
//	if err := rec.Start(ctx); err != nil { ... }
//	result, err := rec.Stop()
//
// # Degrade, Don't Fail
//
// Stop never fails because of normalization. When the decoded capture
// cannot be normalized, the original encoded buffer comes back with
// Result.Normalized=false so callers can observe the substitution
// without error handling.
//
// # Encoder Negotiation
//
// The preferred encoding is chosen from a priority list that is plain
// configuration data (DefaultEncoderPriority); the portaudio backend
// only offers uncompressed PCM, which the recorder wraps in a WAV
// container.
//
// # Device Failures
//
// Acquisition problems (no device, permission denied) surface as
// ErrDeviceUnavailable, which the caller is expected to present as a
// distinct, user-actionable condition.
package capture
