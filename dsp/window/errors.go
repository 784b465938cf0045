package window

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-spectrogram/dsp/core"
)

var (
	errEmptyCoeffs      = errors.New("window coefficients must not be empty")
	errZeroCoherentGain = errors.New("window coherent gain is zero")
	errMismatchedLength = fmt.Errorf("%w: samples and coefficients must have same length", core.ErrArgument)

	// ErrUnknownType is returned for window types outside the supported set.
	ErrUnknownType = fmt.Errorf("%w: unknown window type", core.ErrConfiguration)
)
