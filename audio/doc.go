// Package audio provides the core primitives of the normalization
// engine.
//
// The building blocks are:
//   - Source interface for decoded PCM input
//   - Registry for format decoder registration
//   - DetectFormat for container sniffing by magic numbers
//   - MergeMono and Resample for channel folding and rate conversion
//   - Renderer for the offline normalization pass
//
// # Source Interface
//
// Every decoder produces a Source:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    Close() error
//	}
//
// Samples are float32 in [-1.0, 1.0]; 0.0 is silence. The normalized
// representation keeps intermediate processing free of bit-depth
// concerns and avoids clipping between stages.
//
// # Offline Rendering
//
// Unlike a streaming pipeline, the Renderer drains its source
// completely and produces the whole output buffer in one pass:
//
//	renderer := audio.NewRenderer(audio.CanonicalRate)
//	normalized, err := renderer.Render(source)
//
// The output is always mono at the target rate, clamped to [-1, 1].
// The output length is ceil(duration × targetRate), so duration is
// preserved within one sample.
//
// # Format Registry
//
// Decoders register under a format key and are looked up either by the
// caller's declared type or by sniffing the buffer:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	if key, ok := audio.DetectFormat(buf); ok {
//	    dec, _ := registry.Get(key)
//	}
//
// # Error Handling
//
// Sources return io.EOF when drained. Renderer returns ErrNoSamples
// for a source that decodes to nothing; callers in the normalization
// path treat any render failure as a signal to fall back to the
// original encoded buffer.
package audio
