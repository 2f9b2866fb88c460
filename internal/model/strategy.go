package model

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/ekisa-team/samplegen/internal/xfs"
)

// Downloader writes the artifact identified by modelID to filePath.
type Downloader interface {
	Download(ctx context.Context, modelID, filePath string) error
}

// ExportOptions configures an export.
type ExportOptions struct {
	// Monolith forces the export into a single ONNX file.
	Monolith bool

	// Task is the export task, DefaultTask lets the exporter infer it.
	Task string
}

// Exporter exports the hub model modelID into outputFolder, producing ArtifactName there.
type Exporter interface {
	Export(ctx context.Context, modelID, outputFolder string, opts ExportOptions) error
}

// DownloaderFunc adapts a function to Downloader.
type DownloaderFunc func(ctx context.Context, modelID, filePath string) error

// Download calls f.
func (f DownloaderFunc) Download(ctx context.Context, modelID, filePath string) error {
	return f(ctx, modelID, filePath)
}

// ArtifactPath returns the artifact path inside folder.
func ArtifactPath(folder string) string {
	return filepath.Join(folder, ArtifactName)
}

func needsFetch(filePath string, forceDownload bool) bool {
	return forceDownload || !xfs.IsFile(filePath)
}

// DirectDownload fetches a pre-exported artifact with a Downloader.
type DirectDownload struct {
	modelID    string
	downloader Downloader
}

// NewDirectDownload creates a DirectDownload strategy for modelID.
func NewDirectDownload(modelID string, downloader Downloader) DirectDownload {
	return DirectDownload{modelID: modelID, downloader: downloader}
}

// GetModel downloads the artifact into folder unless it is already there.
// The returned path is not checked after the download.
func (d DirectDownload) GetModel(ctx context.Context, folder string, forceDownload bool) (string, error) {
	filePath := ArtifactPath(folder)
	if !needsFetch(filePath, forceDownload) {
		return filePath, nil
	}

	if d.downloader == nil {
		return "", ErrMissingDownloader
	}

	slog.Info("Download model", "model_id", d.modelID, "path", filePath, "force", forceDownload)
	if err := d.downloader.Download(ctx, d.modelID, filePath); err != nil {
		return "", fmt.Errorf("download %s: %w", d.modelID, err)
	}

	return filePath, nil
}

// OptimumExport exports a hub model into a single ONNX artifact with an Exporter.
type OptimumExport struct {
	modelID  string
	task     string
	exporter Exporter
}

// NewOptimumExport creates an OptimumExport strategy for modelID and task.
func NewOptimumExport(modelID, task string, exporter Exporter) OptimumExport {
	if task == "" {
		task = DefaultTask
	}
	return OptimumExport{modelID: modelID, task: task, exporter: exporter}
}

// GetModel exports the artifact into folder unless it is already there.
// The returned path is not checked after the export.
func (o OptimumExport) GetModel(ctx context.Context, folder string, forceDownload bool) (string, error) {
	filePath := ArtifactPath(folder)
	if !needsFetch(filePath, forceDownload) {
		return filePath, nil
	}

	if o.exporter == nil {
		return "", ErrMissingExporter
	}

	slog.Info("Download model", "model_id", o.modelID, "path", filePath, "task", o.task, "force", forceDownload)
	opts := ExportOptions{Monolith: true, Task: o.task}
	if err := o.exporter.Export(ctx, o.modelID, folder, opts); err != nil {
		return "", fmt.Errorf("export %s: %w", o.modelID, err)
	}

	return filePath, nil
}
