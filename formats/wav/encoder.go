package wav

import (
	"encoding/binary"

	"github.com/ooloteam/audionorm/utils"
)

// MIMEType identifies the container this package produces.
const MIMEType = "audio/wav"

const headerSize = 44

// Encode serializes mono float32 samples into a complete RIFF/WAVE
// buffer with an uncompressed PCM fmt chunk (format code 1, chunk size
// 16). bitDepth must be 8 or 16; anything else is a caller bug and
// panics.
//
// 16-bit output clamps each sample to [-1, 1] and scales positives by
// 32767 and negatives by 32768, written little-endian. 8-bit output is
// offset by +128 and written unsigned.
func Encode(samples []float32, sampleRate, bitDepth int) []byte {
	var bytesPerSample int
	switch bitDepth {
	case 8:
		bytesPerSample = 1
	case 16:
		bytesPerSample = 2
	default:
		panic("wav: bit depth must be 8 or 16")
	}

	dataSize := len(samples) * bytesPerSample
	buf := make([]byte, headerSize+dataSize)

	writeHeader(buf, sampleRate, bitDepth, dataSize)

	switch bitDepth {
	case 8:
		for i, s := range samples {
			buf[headerSize+i] = utils.Float32ToUint8(s)
		}
	case 16:
		for i, s := range samples {
			v := utils.Float32ToInt16(s)
			binary.LittleEndian.PutUint16(buf[headerSize+2*i:], uint16(v))
		}
	}

	return buf
}

// WrapPCM16 wraps raw little-endian 16-bit mono PCM bytes in a WAV
// container without touching the payload. Capture paths that already
// hold s16le data use this instead of Encode to avoid a float round
// trip.
func WrapPCM16(pcm []byte, sampleRate int) []byte {
	buf := make([]byte, headerSize+len(pcm))
	writeHeader(buf, sampleRate, 16, len(pcm))
	copy(buf[headerSize:], pcm)
	return buf
}

func writeHeader(buf []byte, sampleRate, bitDepth, dataSize int) {
	const numChannels = 1
	blockAlign := numChannels * bitDepth / 8
	byteRate := sampleRate * blockAlign

	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], uint32(36+dataSize))
	copy(buf[8:12], "WAVE")

	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16) // PCM fmt chunk size
	binary.LittleEndian.PutUint16(buf[20:22], 1)  // PCM format
	binary.LittleEndian.PutUint16(buf[22:24], numChannels)
	binary.LittleEndian.PutUint32(buf[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(buf[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(buf[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(buf[34:36], uint16(bitDepth))

	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], uint32(dataSize))
}
