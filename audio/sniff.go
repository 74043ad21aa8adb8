package audio

import "bytes"

// DetectFormat inspects the leading bytes of an encoded buffer and
// returns the registry key of the container it recognizes. Detection is
// by magic numbers only; it never touches the payload.
func DetectFormat(data []byte) (string, bool) {
	if len(data) < 12 {
		return "", false
	}

	switch {
	case bytes.HasPrefix(data, []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WAVE")):
		return "wav", true
	case bytes.HasPrefix(data, []byte("FORM")) && bytes.Equal(data[8:12], []byte("AIFF")):
		return "aiff", true
	case bytes.HasPrefix(data, []byte("OggS")):
		return "ogg", true
	case bytes.HasPrefix(data, []byte("fLaC")):
		return "flac", true
	case bytes.HasPrefix(data, []byte("ID3")):
		return "mp3", true
	case data[0] == 0xFF && data[1]&0xE0 == 0xE0:
		// Raw MPEG audio frame sync.
		return "mp3", true
	}

	return "", false
}
