// Package aiff wraps github.com/go-audio/aiff behind the engine's
// audio.Source interface. AIFF shows up occasionally in uploads from
// macOS recording tools; decoding mirrors the wav package.
package aiff
