// Package vorbis wraps github.com/jfreymuth/oggvorbis behind the
// engine's audio.Source interface. The library decodes directly to
// interleaved float32, so no sample conversion happens here.
package vorbis
