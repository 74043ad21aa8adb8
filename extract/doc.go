// Package extract obtains the audio track of a video asset without a
// server-side transcoding service, by streaming the container through
// an external decoder (ffmpeg) into an in-memory chunk sink.
//
// # Pipeline
//
// An extraction moves through loading-metadata → capturing →
// finalizing → done (or failed):
//
//  1. ffprobe reads the container's duration and audio sample rate; a
//     missing or zero duration, or a probe that does not answer within
//     10 seconds, fails with ErrCorruptMedia.
//  2. ffmpeg decodes the audio track to raw mono s16le on stdout. The
//     capture is bounded by a deadline of duration + 2s; whichever
//     fires first, natural end of stream or the deadline, ends the
//     capture. A deadline kill keeps the chunks already captured.
//  3. Zero captured bytes fail with ErrEmptyExtraction.
//  4. The capture is wrapped in a WAV container, normalized, and
//     gated through a Validator; a rejected result fails with
//     ErrUnplayableExtraction.
//
// Temp files and decoder processes are released on every exit path,
// including cancellation and deadline kills.
//
// # Testing
//
// Both external binaries sit behind the CommandRunner interface, so
// the whole pipeline runs in tests against canned process output.
package extract
