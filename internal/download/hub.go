package download

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/ekisa-team/samplegen/internal/runner"
	"github.com/ekisa-team/samplegen/internal/xfs"
)

const (
	hubHost         = "huggingface.co"
	defaultRevision = "main"
)

// HubRef points at a single file in a Hugging Face repository:
// hf://<owner>/<repo>[@<revision>]/<path/in/repo>.
type HubRef struct {
	Repo     string
	File     string
	Revision string
}

// ParseHubRef parses an hf:// model id. The revision is attached to the repo
// so the file path may contain '@'.
func ParseHubRef(modelID string) (HubRef, error) {
	rest, ok := strings.CutPrefix(modelID, schemeHub)
	if !ok {
		return HubRef{}, fmt.Errorf("%w: %s", ErrInvalidHubRef, modelID)
	}

	parts := strings.SplitN(rest, "/", 3)
	if len(parts) != 3 {
		return HubRef{}, fmt.Errorf("%w: %s", ErrInvalidHubRef, modelID)
	}

	owner, repo, file := parts[0], parts[1], parts[2]
	revision := defaultRevision
	if name, rev, found := strings.Cut(repo, "@"); found {
		repo, revision = name, rev
	}

	if owner == "" || repo == "" || file == "" || revision == "" {
		return HubRef{}, fmt.Errorf("%w: %s", ErrInvalidHubRef, modelID)
	}

	file = path.Clean(file)
	if path.IsAbs(file) || file == "." || file == ".." || strings.HasPrefix(file, "../") {
		return HubRef{}, fmt.Errorf("%w: file escapes the repository: %s", ErrInvalidHubRef, modelID)
	}

	return HubRef{
		Repo:     owner + "/" + repo,
		File:     file,
		Revision: revision,
	}, nil
}

// ResolveURL returns the hub URL serving the file contents.
func (r HubRef) ResolveURL() string {
	return (&url.URL{
		Scheme: "https",
		Host:   hubHost,
		Path:   path.Join("/", r.Repo, "resolve", r.Revision, r.File),
	}).String()
}

// Hub downloads single files from the Hugging Face hub with the hf CLI.
type Hub struct {
	executor *runner.Executor
	token    string
}

// NewHub creates a hub downloader running the hf CLI through executor.
func NewHub(executor *runner.Executor, token string) *Hub {
	return &Hub{executor: executor, token: token}
}

// Download fetches the hf:// modelID into filePath.
func (h *Hub) Download(ctx context.Context, modelID, filePath string) error {
	ref, err := ParseHubRef(modelID)
	if err != nil {
		return err
	}

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	stage, err := os.MkdirTemp(dir, ".hf-*")
	if err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer os.RemoveAll(stage)

	args := h.buildArgs(ref, stage)

	slog.Info("Downloading hub file", "repo", ref.Repo, "file", ref.File, "revision", ref.Revision)
	stdout, stderr, err := h.executor.Execute(ctx, args, nil)
	if err != nil {
		slog.Error("hf download failed", "repo", ref.Repo, "file", ref.File, "output", string(stdout))
		return fmt.Errorf("hf download failed: %w\nstderr: %s", err, stderr)
	}

	if err := xfs.Move(filepath.Join(stage, filepath.FromSlash(ref.File)), filePath); err != nil {
		return fmt.Errorf("failed to move %s into place: %w", ref.File, err)
	}

	return nil
}

// buildArgs builds hf command-line arguments.
func (h *Hub) buildArgs(ref HubRef, localDir string) []string {
	args := []string{
		"download",
		ref.Repo,
		ref.File,
		"--local-dir", localDir,
		"--revision", ref.Revision,
	}

	if h.token != "" {
		args = append(args, "--token", h.token)
	}

	return args
}
