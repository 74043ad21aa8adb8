// Package mp3 wraps github.com/hajimehoshi/go-mp3 behind the engine's
// audio.Source interface. go-mp3 always outputs interleaved stereo
// 16-bit PCM at the stream's native rate; channel folding and
// resampling happen downstream in the offline renderer.
package mp3
