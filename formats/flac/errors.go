package flac

import "errors"

var ErrUnsupportedFlacLayout = errors.New("unsupported FLAC layout")
