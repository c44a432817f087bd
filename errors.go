package pixbuf

import "errors"

// Common errors for buffer operations.
var (
	// ErrNilBuffer is returned when a required buffer handle is nil.
	ErrNilBuffer = errors.New("pixbuf: nil image buffer")

	// ErrInvalidGeometry is returned when width, height or depth fail
	// validation at creation time.
	ErrInvalidGeometry = errors.New("pixbuf: invalid geometry")

	// ErrInvalidValue is returned when a setter receives an out-of-range value.
	ErrInvalidValue = errors.New("pixbuf: invalid value")

	// ErrAllocFailed is returned when the configured allocator could not
	// satisfy a pixel-storage request.
	ErrAllocFailed = errors.New("pixbuf: allocation failed")
)
