package model

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/ekisa-team/samplegen/internal/config"
	"github.com/ekisa-team/samplegen/internal/envvar"
	"github.com/ekisa-team/samplegen/internal/xfs"
)

// Manager fetches the artifacts of every configured model.
type Manager struct {
	registry  *Registry
	instances map[string]*Instance
	modelsDir string
	mu        sync.RWMutex
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithModelsDir pins the models directory, taking precedence over the
// environment and the config.
func WithModelsDir(dir string) ManagerOption {
	return func(m *Manager) {
		m.modelsDir = dir
	}
}

// NewManager creates a new Manager backed by the given family registry.
func NewManager(registry *Registry, opts ...ManagerOption) *Manager {
	m := &Manager{
		registry:  registry,
		instances: make(map[string]*Instance),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Fetch fetches every model in cfg, one after the other, in key order.
// Each artifact lands in <models dir>/<key>/model.onnx. The first failure
// stops the run; instances fetched before it are kept.
func (m *Manager) Fetch(ctx context.Context, cfg *config.Config, force bool) ([]*Instance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	modelsPath := ResolveModelsPath(cfg)
	if m.modelsDir != "" {
		modelsPath = xfs.ExpandTilde(m.modelsDir)
	}
	if err := os.MkdirAll(modelsPath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to prepare models directory %s: %w", modelsPath, err)
	}

	keys := make([]string, 0, len(cfg.Models))
	for key := range cfg.Models {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	fetched := make([]*Instance, 0, len(keys))
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return fetched, err
		}

		modelConfig := cfg.Models[key]
		mdl, err := m.registry.New(modelConfig.FamilyName(key), Options{
			ID:   modelConfig.ID,
			Task: modelConfig.Task,
		})
		if err != nil {
			return fetched, fmt.Errorf("model %s: %w", key, err)
		}

		instance := NewInstance(key, mdl)
		m.instances[key] = instance

		folder := filepath.Join(modelsPath, key)
		path, err := mdl.GetModel(ctx, folder, force || modelConfig.ForceDownload)
		if err != nil {
			instance.SetError(err)
			slog.Error("Failed to fetch model", "key", key, "model_id", instance.ID, "error", err)
			return fetched, fmt.Errorf("model %s: %w", key, err)
		}

		instance.SetReady(path)
		fetched = append(fetched, instance)
		slog.Info("Model ready", "key", key, "family", instance.Family, "model_id", instance.ID, "path", path)
	}

	for key := range m.instances {
		if _, ok := cfg.Models[key]; !ok {
			delete(m.instances, key)
			slog.Info("Model removed from config", "key", key)
		}
	}

	return fetched, nil
}

// Get returns the instance configured under key.
func (m *Manager) Get(key string) (*Instance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	instance, ok := m.instances[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInstanceNotFetched, key)
	}
	return instance, nil
}

// List returns every known instance in key order.
func (m *Manager) List() []*Instance {
	m.mu.RLock()
	defer m.mu.RUnlock()

	instances := make([]*Instance, 0, len(m.instances))
	for _, instance := range m.instances {
		instances = append(instances, instance)
	}
	slices.SortFunc(instances, func(a, b *Instance) int {
		return strings.Compare(a.Key, b.Key)
	})

	return instances
}

// ResolveModelsPath returns the path to the models directory.
// Precedence:
// 1. SAMPLEGEN_MODELS_PATH environment variable.
// 2. ModelsDir field in the config.
// 3. Default models path.
func ResolveModelsPath(cfg *config.Config) string {
	if p := os.Getenv(envvar.SamplegenModelsPath); p != "" {
		return xfs.ExpandTilde(p)
	}
	if cfg.Storage.ModelsDir != "" {
		return xfs.ExpandTilde(cfg.Storage.ModelsDir)
	}
	return xfs.ExpandTilde(config.DefaultModelsPath())
}
