package config

// Config holds the main configuration for the application.
type Config struct {
	Version string                 `json:"version"           yaml:"version"`
	Storage StorageConfig          `json:"storage,omitempty" yaml:"storage,omitempty"`
	Models  map[string]ModelConfig `json:"models"            yaml:"models"`
}

// StorageConfig holds configuration for the artifact cache.
type StorageConfig struct {
	ModelsDir string `json:"models_dir,omitempty" yaml:"models_dir,omitempty"`
}

// ModelConfig holds configuration for a specific model.
type ModelConfig struct {
	// Family is the registered model family. Defaults to the model key.
	Family string `json:"family,omitempty"         yaml:"family,omitempty"`

	// ID overrides the family's default model identifier.
	ID string `json:"id,omitempty"             yaml:"id,omitempty"`

	// Task overrides the family's default export task.
	Task string `json:"task,omitempty"           yaml:"task,omitempty"`

	// ForceDownload refetches the artifact even when it already exists.
	ForceDownload bool `json:"force_download,omitempty" yaml:"force_download,omitempty"`
}

// FamilyName returns the configured family, falling back to key.
func (m ModelConfig) FamilyName(key string) string {
	if m.Family != "" {
		return m.Family
	}
	return key
}
