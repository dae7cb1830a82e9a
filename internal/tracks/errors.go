package tracks

import "errors"

var (
	// ErrMissingRequiredField indicates a track lacks a field its summary needs.
	ErrMissingRequiredField = errors.New("missing required field")
	// ErrUnmappedRangeToken indicates an HDR format token with no canonical label.
	ErrUnmappedRangeToken = errors.New("unmapped dynamic range token")
)
