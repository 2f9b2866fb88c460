// Package download fetches pre-exported model artifacts to local files.
package download

import (
	"context"
	"fmt"
	"strings"
)

const (
	schemeHTTP  = "http://"
	schemeHTTPS = "https://"
	schemeHub   = "hf://"
)

// Downloader writes the artifact identified by modelID to filePath.
type Downloader interface {
	Download(ctx context.Context, modelID, filePath string) error
}

// Router dispatches a download to the downloader handling the id scheme.
// hf:// ids fall back to HTTP through the hub's resolve endpoint when Hub is nil.
type Router struct {
	HTTP Downloader
	Hub  Downloader
}

// Download downloads modelID to filePath.
func (r *Router) Download(ctx context.Context, modelID, filePath string) error {
	switch {
	case strings.HasPrefix(modelID, schemeHTTP), strings.HasPrefix(modelID, schemeHTTPS):
		if r.HTTP == nil {
			return fmt.Errorf("%w: %s", ErrUnsupportedScheme, modelID)
		}
		return r.HTTP.Download(ctx, modelID, filePath)

	case strings.HasPrefix(modelID, schemeHub):
		if r.Hub != nil {
			return r.Hub.Download(ctx, modelID, filePath)
		}
		if r.HTTP == nil {
			return fmt.Errorf("%w: %s", ErrUnsupportedScheme, modelID)
		}

		ref, err := ParseHubRef(modelID)
		if err != nil {
			return err
		}
		return r.HTTP.Download(ctx, ref.ResolveURL(), filePath)

	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedScheme, modelID)
	}
}
