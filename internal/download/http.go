package download

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/docker/go-units"
	"github.com/opencontainers/go-digest"
)

const defaultUserAgent = "samplegen"

// HTTP downloads artifacts over HTTP(S).
// The body is written to a temporary file next to the target and renamed
// into place once complete, so a failed download never leaves a partial artifact.
type HTTP struct {
	client    *http.Client
	userAgent string
	hubToken  string
}

// HTTPOption configures an HTTP downloader.
type HTTPOption func(*HTTP)

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) HTTPOption {
	return func(d *HTTP) {
		d.userAgent = ua
	}
}

// WithHubToken sends token as a bearer token to the Hugging Face hub.
func WithHubToken(token string) HTTPOption {
	return func(d *HTTP) {
		d.hubToken = token
	}
}

// NewHTTP creates an HTTP downloader. A nil client uses http.DefaultClient.
func NewHTTP(client *http.Client, opts ...HTTPOption) *HTTP {
	if client == nil {
		client = http.DefaultClient
	}

	d := &HTTP{
		client:    client,
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Download fetches rawURL into filePath.
func (d *HTTP) Download(ctx context.Context, rawURL, filePath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", d.userAgent)
	if d.hubToken != "" && isHubHost(req.URL) {
		req.Header.Set("Authorization", "Bearer "+d.hubToken)
	}

	start := time.Now()
	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s from %s", ErrBadStatus, resp.Status, rawURL)
	}

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(filePath)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	digester := digest.Canonical.Digester()
	n, err := io.Copy(io.MultiWriter(tmp, digester.Hash()), resp.Body)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", filePath, err)
	}

	if err := os.Rename(tmpPath, filePath); err != nil {
		return fmt.Errorf("failed to move artifact into place: %w", err)
	}

	slog.Info("Artifact downloaded",
		"url", rawURL,
		"path", filePath,
		"size", units.HumanSize(float64(n)),
		"digest", digester.Digest().String(),
		"elapsed", time.Since(start).Round(time.Millisecond))

	return nil
}

func isHubHost(u *url.URL) bool {
	return u.Hostname() == hubHost
}
