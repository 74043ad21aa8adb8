// Package flac wraps github.com/mewkiz/flac behind the engine's
// audio.Source interface. FLAC frames carry one subframe per channel;
// the source interleaves them and normalizes by the stream's bit
// depth.
package flac
