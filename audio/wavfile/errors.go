package wavfile

import (
	"fmt"

	"github.com/cwbudde/algo-spectrogram/dsp/core"
)

var (
	// ErrNotWavFile is returned when the input has no valid RIFF/WAVE header.
	ErrNotWavFile = fmt.Errorf("%w: not a WAV file", core.ErrArgument)

	// ErrUnsupportedLayout is returned for non-PCM encodings or bit depths
	// other than 16, 24 and 32.
	ErrUnsupportedLayout = fmt.Errorf("%w: unsupported WAV layout", core.ErrArgument)

	errEmptyPath = fmt.Errorf("%w: empty path", core.ErrArgument)
)
