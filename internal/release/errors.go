package release

import (
	"errors"

	"nfog/internal/textlayout"
	"nfog/internal/tracks"
)

// Render failures. Every error returned by this package or by templates
// wraps one of these.
var (
	ErrInvalidArgument      = textlayout.ErrInvalidArgument
	ErrMissingRequiredField = tracks.ErrMissingRequiredField
	ErrUnmappedRangeToken   = tracks.ErrUnmappedRangeToken
	ErrInvalidID            = errors.New("invalid external id")
)
