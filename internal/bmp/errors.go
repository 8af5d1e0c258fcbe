package bmp

import "fmt"

// FormatError reports that the input is not a well-formed 24-bit bitmap:
// a bad signature, a truncated header or truncated pixel data.
type FormatError struct {
	Reason string
	Err    error // Underlying read error, if any
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return "bmp: invalid format: " + e.Reason + ": " + e.Err.Error()
	}
	return "bmp: invalid format: " + e.Reason
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// UnsupportedDepthError reports a bitmap whose bits-per-pixel is not 24.
type UnsupportedDepthError struct {
	BitCount uint16
}

func (e *UnsupportedDepthError) Error() string {
	return fmt.Sprintf("bmp: unsupported color depth: %d bits per pixel (only 24 is supported)", e.BitCount)
}

// AllocationError reports that the pixel buffer for an image could not be obtained.
type AllocationError struct {
	Width, Height int64
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("bmp: cannot allocate pixel buffer for %dx%d image", e.Width, e.Height)
}
