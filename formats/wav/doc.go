// Package wav provides WAV decoding and the canonical RIFF/WAVE
// encoder of the normalization engine.
//
// # Decoding
//
// The Decoder wraps github.com/go-audio/wav, which walks the RIFF
// chunk list, so files with extra chunks (LIST, fact, cue) decode the
// same as canonical 44-byte-header files:
//
//	source, err := wav.Decoder{}.Decode(bytes.NewReader(data))
//
// PCM at 8, 16, 24 and 32 bits is accepted; samples come out as
// float32 in [-1.0, 1.0].
//
// # Encoding
//
// Encode is the terminal step of the pipeline. It is a pure function
// from mono float32 samples to a complete WAV buffer:
//
//	buf := wav.Encode(samples, 16000, 16)
//
// The header is always RIFF/WAVE with a 16-byte fmt chunk, format
// code 1 (uncompressed PCM), one channel. Only bit depths 8 and 16
// are valid; any other depth panics, since that is a programming
// error rather than a runtime condition.
package wav
