package core

import "errors"

// Error classes shared by every stage of the spectrogram chain. Package level
// errors wrap one of these so callers can branch with errors.Is.
var (
	// ErrConfiguration reports invalid construction or reconfiguration
	// parameters. The object is not created (or not modified).
	ErrConfiguration = errors.New("invalid configuration")

	// ErrArgument reports a per-call argument error such as a buffer of the
	// wrong length. Existing state is left untouched.
	ErrArgument = errors.New("invalid argument")
)
