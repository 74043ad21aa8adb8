package capture

// DefaultEncoderPriority is the default preference order for the
// device-side encoder. The "best" encoding is environment-specific, so
// the order is configuration data, not logic; config.Load lets
// deployments override it.
var DefaultEncoderPriority = []string{
	"audio/webm;codecs=opus",
	"audio/webm;codecs=vorbis",
	"audio/webm",
	"audio/mp4;codecs=aac",
	"audio/aac",
	"audio/ogg;codecs=opus",
	"audio/ogg;codecs=vorbis",
	"audio/wav",
}

// Negotiate picks the first entry of priority that the device
// supports. ok is false when nothing matches.
func Negotiate(priority, supported []string) (string, bool) {
	set := make(map[string]struct{}, len(supported))
	for _, s := range supported {
		set[s] = struct{}{}
	}

	for _, want := range priority {
		if _, ok := set[want]; ok {
			return want, true
		}
	}

	return "", false
}
