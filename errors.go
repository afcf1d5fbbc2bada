package psxstr

// Error is a codec error code. Errors returned by the package wrap one of
// these codes, so callers test them with errors.Is.
type Error int

// Error codes.
const (
	ErrNone Error = iota
	ErrFormatNotRecognized
	ErrEndOfStream
	ErrReadCorruption
	ErrTooMuchEnergy
	ErrIncompatibleQuantization
	ErrFrameTooLarge
	ErrInvalidFrameSize
)

var errMessages = [...]string{
	ErrNone:                     "No error",
	ErrFormatNotRecognized:      "Frame format not recognized",
	ErrEndOfStream:              "Unexpected end of bitstream",
	ErrReadCorruption:           "Corrupted bitstream",
	ErrTooMuchEnergy:            "Coefficient too large for the format",
	ErrIncompatibleQuantization: "Incompatible quantization scales",
	ErrFrameTooLarge:            "Frame does not fit in the available space",
	ErrInvalidFrameSize:         "Invalid frame dimensions",
}

// Error implements the error interface.
func (e Error) Error() string {
	if e >= 0 && int(e) < len(errMessages) {
		return errMessages[e]
	}
	return "unknown error"
}
