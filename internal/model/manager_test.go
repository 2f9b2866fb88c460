package model

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ekisa-team/samplegen/internal/config"
	"github.com/ekisa-team/samplegen/internal/envvar"
)

func newTestManager(t *testing.T, d *MockDownloader, e *MockExporter) *Manager {
	t.Helper()
	t.Setenv(envvar.SamplegenModelsPath, "")

	var tools Tools
	if d != nil {
		tools.Downloader = d
	}
	if e != nil {
		tools.Exporter = e
	}

	reg := NewRegistry(tools)
	require.NoError(t, reg.Register("download-model", newDownloadModel))
	require.NoError(t, reg.Register("export-decoder", newExportDecoder))

	return NewManager(reg)
}

func TestManager_Fetch(t *testing.T) {
	dir := t.TempDir()
	d := new(MockDownloader)
	e := new(MockExporter)
	m := newTestManager(t, d, e)

	cfg := &config.Config{
		Version: "1",
		Storage: config.StorageConfig{ModelsDir: dir},
		Models: map[string]config.ModelConfig{
			"download-model": {ID: "https://example.com/model.onnx"},
			"decoder":        {Family: "export-decoder", ID: "gpt2", Task: "text-generation"},
		},
	}

	d.On("Download", mock.Anything, "https://example.com/model.onnx",
		filepath.Join(dir, "download-model", ArtifactName)).Return(nil).Once()
	e.On("Export", mock.Anything, "gpt2", filepath.Join(dir, "decoder"),
		ExportOptions{Monolith: true, Task: "text-generation"}).Return(nil).Once()

	fetched, err := m.Fetch(context.Background(), cfg, false)
	require.NoError(t, err)
	require.Len(t, fetched, 2)

	// Keys are processed in sorted order.
	assert.Equal(t, "decoder", fetched[0].Key)
	assert.Equal(t, "export-decoder", fetched[0].Family)
	assert.True(t, fetched[0].Decoder)
	assert.Equal(t, StatusReady, fetched[0].Status)
	assert.NotNil(t, fetched[0].FetchedAt)
	assert.Equal(t, filepath.Join(dir, "decoder", ArtifactName), fetched[0].Path)

	assert.Equal(t, "download-model", fetched[1].Key)
	assert.False(t, fetched[1].Decoder)

	got, err := m.Get("decoder")
	require.NoError(t, err)
	assert.Same(t, fetched[0], got)
	assert.Len(t, m.List(), 2)

	d.AssertExpectations(t)
	e.AssertExpectations(t)
}

func TestManager_FetchForce(t *testing.T) {
	dir := t.TempDir()
	d := new(MockDownloader)
	m := newTestManager(t, d, nil)

	seedArtifact(t, filepath.Join(dir, "cached"))
	seedArtifact(t, filepath.Join(dir, "forced"))

	cfg := &config.Config{
		Storage: config.StorageConfig{ModelsDir: dir},
		Models: map[string]config.ModelConfig{
			"cached": {Family: "download-model", ID: "cached-id"},
			"forced": {Family: "download-model", ID: "forced-id", ForceDownload: true},
		},
	}

	d.On("Download", mock.Anything, "forced-id", mock.Anything).Return(nil).Once()

	_, err := m.Fetch(context.Background(), cfg, false)
	require.NoError(t, err)
	d.AssertExpectations(t)

	d.On("Download", mock.Anything, "cached-id", mock.Anything).Return(nil).Once()
	d.On("Download", mock.Anything, "forced-id", mock.Anything).Return(nil).Once()

	_, err = m.Fetch(context.Background(), cfg, true)
	require.NoError(t, err)
	d.AssertExpectations(t)
}

func TestManager_FetchStopsAtFirstFailure(t *testing.T) {
	dir := t.TempDir()
	d := new(MockDownloader)
	m := newTestManager(t, d, nil)
	cause := errors.New("no route to host")

	cfg := &config.Config{
		Storage: config.StorageConfig{ModelsDir: dir},
		Models: map[string]config.ModelConfig{
			"a": {Family: "download-model", ID: "a-id"},
			"b": {Family: "download-model", ID: "b-id"},
			"c": {Family: "download-model", ID: "c-id"},
		},
	}

	d.On("Download", mock.Anything, "a-id", mock.Anything).Return(nil).Once()
	d.On("Download", mock.Anything, "b-id", mock.Anything).Return(cause).Once()

	fetched, err := m.Fetch(context.Background(), cfg, false)
	assert.ErrorIs(t, err, cause)
	require.Len(t, fetched, 1)
	assert.Equal(t, "a", fetched[0].Key)

	failed, err := m.Get("b")
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, failed.Status)
	assert.Contains(t, failed.Error, "no route to host")

	_, err = m.Get("c")
	assert.ErrorIs(t, err, ErrInstanceNotFetched)
	d.AssertNotCalled(t, "Download", mock.Anything, "c-id", mock.Anything)
}

func TestManager_FetchUnknownFamily(t *testing.T) {
	m := newTestManager(t, nil, nil)
	cfg := &config.Config{
		Storage: config.StorageConfig{ModelsDir: t.TempDir()},
		Models:  map[string]config.ModelConfig{"llama": {}},
	}

	_, err := m.Fetch(context.Background(), cfg, false)
	assert.ErrorIs(t, err, ErrUnknownFamily)
}

func TestManager_FetchDropsRemovedModels(t *testing.T) {
	dir := t.TempDir()
	m := newTestManager(t, new(MockDownloader), nil)
	seedArtifact(t, filepath.Join(dir, "a"))
	seedArtifact(t, filepath.Join(dir, "b"))

	cfg := &config.Config{
		Storage: config.StorageConfig{ModelsDir: dir},
		Models: map[string]config.ModelConfig{
			"a": {Family: "download-model", ID: "a-id"},
			"b": {Family: "download-model", ID: "b-id"},
		},
	}
	_, err := m.Fetch(context.Background(), cfg, false)
	require.NoError(t, err)

	delete(cfg.Models, "b")
	_, err = m.Fetch(context.Background(), cfg, false)
	require.NoError(t, err)

	require.Len(t, m.List(), 1)
	assert.Equal(t, "a", m.List()[0].Key)
}

func TestManager_FetchCanceled(t *testing.T) {
	m := newTestManager(t, new(MockDownloader), nil)
	cfg := &config.Config{
		Storage: config.StorageConfig{ModelsDir: t.TempDir()},
		Models:  map[string]config.ModelConfig{"a": {Family: "download-model", ID: "a-id"}},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Fetch(ctx, cfg, false)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolveModelsPath(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{ModelsDir: "/srv/models"}}

	t.Setenv(envvar.SamplegenModelsPath, "")
	assert.Equal(t, "/srv/models", ResolveModelsPath(cfg))
	assert.Equal(t, config.DefaultModelsPath(), ResolveModelsPath(&config.Config{}))

	t.Setenv(envvar.SamplegenModelsPath, "/env/models")
	assert.Equal(t, "/env/models", ResolveModelsPath(cfg))
}

func TestManager_FetchModelsDirOptionWins(t *testing.T) {
	dir := t.TempDir()
	d := new(MockDownloader)
	m := newTestManager(t, d, nil)
	m = NewManager(m.registry, WithModelsDir(dir))
	t.Setenv(envvar.SamplegenModelsPath, filepath.Join(t.TempDir(), "env"))

	cfg := &config.Config{
		Version: "1",
		Storage: config.StorageConfig{ModelsDir: filepath.Join(t.TempDir(), "config")},
		Models: map[string]config.ModelConfig{
			"download-model": {ID: "https://example.com/model.onnx"},
		},
	}

	d.On("Download", mock.Anything, "https://example.com/model.onnx",
		filepath.Join(dir, "download-model", ArtifactName)).Return(nil).Once()

	fetched, err := m.Fetch(context.Background(), cfg, false)
	require.NoError(t, err)
	require.Len(t, fetched, 1)
	assert.Equal(t, filepath.Join(dir, "download-model", ArtifactName), fetched[0].Path)
	d.AssertExpectations(t)
}
