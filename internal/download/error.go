package download

import "errors"

// Error definitions for the download package.
var (
	ErrUnsupportedScheme = errors.New("unsupported model id scheme")
	ErrBadStatus         = errors.New("unexpected HTTP status")
	ErrInvalidHubRef     = errors.New("invalid hub reference")
)
