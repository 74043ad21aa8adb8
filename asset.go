package audionorm

import (
	"path/filepath"
	"strings"
)

// SourceKind is the processing family an asset routes to.
type SourceKind int

const (
	KindUnsupported SourceKind = iota
	KindAudio
	KindVideo
)

func (k SourceKind) String() string {
	switch k {
	case KindAudio:
		return "audio"
	case KindVideo:
		return "video"
	}
	return "unsupported"
}

// MediaAsset is an uploaded media file: its original name, the MIME
// type the uploader declared (possibly empty or wrong), and the raw
// bytes.
type MediaAsset struct {
	Name     string
	MIMEType string
	Data     []byte
}

var audioExts = map[string]bool{
	".wav":  true,
	".mp3":  true,
	".m4a":  true,
	".ogg":  true,
	".flac": true,
	".aac":  true,
	".aiff": true,
	".aif":  true,
}

var videoExts = map[string]bool{
	".mp4":  true,
	".avi":  true,
	".mov":  true,
	".mkv":  true,
	".webm": true,
	".3gp":  true,
	".wmv":  true,
	".flv":  true,
	".m4v":  true,
}

// Classify routes an asset by its file extension or its declared MIME
// type; either signal alone is enough. Extensions are matched
// case-insensitively, so "CLIP.MKV" classifies the same as "clip.mkv".
// The audio family wins when the two signals disagree.
func Classify(asset MediaAsset) SourceKind {
	ext := strings.ToLower(filepath.Ext(asset.Name))

	mime := asset.MIMEType
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	mime = strings.ToLower(strings.TrimSpace(mime))

	switch {
	case audioExts[ext] || strings.HasPrefix(mime, "audio/"):
		return KindAudio
	case videoExts[ext] || strings.HasPrefix(mime, "video/"):
		return KindVideo
	}

	return KindUnsupported
}
