// Package model defines the contract every sample-generation model fulfils
// and the strategies used to obtain its ONNX artifact on local storage.
package model

import "context"

const (
	// DefaultTask lets the exporter infer the task from the model.
	DefaultTask = "auto"

	// ArtifactName is the file name of every fetched artifact.
	ArtifactName = "model.onnx"
)

// Sample is a raw dataset entry handed to Preprocess, keyed by field name.
type Sample map[string]any

// Inputs are model inputs keyed by tensor name.
type Inputs map[string]any

// Outputs are model outputs keyed by tensor name.
type Outputs map[string]any

// Model is implemented by every model family.
type Model interface {
	// ID identifies the model at its source: a URL, a hub file or a hub repo.
	ID() string

	// Name returns the family name the model is registered under.
	Name() string

	// Task returns the export task. Defaults to DefaultTask.
	Task() string

	// GetModel makes sure the artifact exists in folder and returns its path.
	// The artifact is (re)fetched when forceDownload is set or it is missing.
	GetModel(ctx context.Context, folder string, forceDownload bool) (string, error)

	// Preprocess converts a dataset sample into model inputs.
	Preprocess(sample Sample) (Inputs, error)

	// IsDecoder reports whether the model also implements Decoder.
	IsDecoder() bool
}

// Decoder is a model that is run step by step, feeding each step's outputs
// back into the next step's inputs.
type Decoder interface {
	Model

	// DecodeStep derives the next step's inputs from the current inputs and outputs.
	DecodeStep(inputs Inputs, outputs Outputs) (Inputs, error)
}

// Base provides the identifier, the task and the decoder flag.
// Families embed it together with a fetch strategy; Base alone is not a Model.
type Base struct {
	id   string
	task string
}

// NewBase creates a Base. An empty task means DefaultTask.
func NewBase(id, task string) Base {
	return Base{id: id, task: task}
}

// ID returns the model identifier.
func (b Base) ID() string {
	return b.id
}

// Task returns the export task.
func (b Base) Task() string {
	if b.task == "" {
		return DefaultTask
	}
	return b.task
}

// IsDecoder returns false.
func (Base) IsDecoder() bool {
	return false
}

// DecoderBase is Base for decoder families.
type DecoderBase struct {
	Base
}

// NewDecoderBase creates a DecoderBase. An empty task means DefaultTask.
func NewDecoderBase(id, task string) DecoderBase {
	return DecoderBase{Base: NewBase(id, task)}
}

// IsDecoder returns true.
func (DecoderBase) IsDecoder() bool {
	return true
}
