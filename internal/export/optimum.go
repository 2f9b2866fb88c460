// Package export turns hub models into ONNX artifacts with optimum-cli.
package export

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ekisa-team/samplegen/internal/model"
	"github.com/ekisa-team/samplegen/internal/runner"
)

const (
	// DefaultBinary is the optimum CLI looked up on PATH.
	DefaultBinary = "optimum-cli"

	// DefaultTimeout bounds a single export.
	DefaultTimeout = 30 * time.Minute
)

// Optimum implements model.Exporter with `optimum-cli export onnx`.
type Optimum struct {
	executor *runner.Executor
}

// NewOptimum creates an exporter running optimum-cli through executor.
func NewOptimum(executor *runner.Executor) *Optimum {
	return &Optimum{executor: executor}
}

// Export exports modelID into outputFolder.
func (o *Optimum) Export(ctx context.Context, modelID, outputFolder string, opts model.ExportOptions) error {
	if err := os.MkdirAll(outputFolder, 0o755); err != nil {
		return fmt.Errorf("failed to create output folder: %w", err)
	}

	args := o.buildArgs(modelID, outputFolder, opts)

	stream, err := o.executor.Stream(ctx, args, nil)
	if err != nil {
		return err
	}

	for chunk := range stream {
		if chunk.Done {
			if chunk.Error != nil {
				return fmt.Errorf("optimum export failed: %w", chunk.Error)
			}
			break
		}

		if line := bytes.TrimSpace(chunk.Data); len(line) > 0 {
			slog.Debug("optimum-cli", "model_id", modelID, "line", string(line))
		}
	}

	slog.Info("Model exported", "model_id", modelID, "folder", outputFolder, "task", opts.Task)
	return nil
}

// buildArgs builds optimum-cli command-line arguments.
func (o *Optimum) buildArgs(modelID, outputFolder string, opts model.ExportOptions) []string {
	args := []string{"export", "onnx", "--model", modelID}

	if opts.Task != "" {
		args = append(args, "--task", opts.Task)
	}

	if opts.Monolith {
		args = append(args, "--monolith")
	}

	return append(args, outputFolder)
}
