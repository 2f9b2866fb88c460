package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterAndNew(t *testing.T) {
	d := new(MockDownloader)
	reg := NewRegistry(Tools{Downloader: d})

	require.NoError(t, reg.Register("download-model", newDownloadModel))

	m, err := reg.New("download-model", Options{ID: "https://example.com/model.onnx", Task: "image-classification"})
	require.NoError(t, err)

	assert.Equal(t, "download-model", m.Name())
	assert.Equal(t, "https://example.com/model.onnx", m.ID())
	assert.Equal(t, "image-classification", m.Task())
	assert.Equal(t, d, m.(*downloadModel).downloader, "factories receive the registry tools")
}

func TestRegistry_Duplicate(t *testing.T) {
	reg := NewRegistry(Tools{})

	require.NoError(t, reg.Register("gpt2", newExportDecoder))
	err := reg.Register("gpt2", newExportDecoder)

	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestRegistry_Unknown(t *testing.T) {
	_, err := NewRegistry(Tools{}).New("missing", Options{})
	assert.ErrorIs(t, err, ErrUnknownFamily)
}

func TestRegistry_Names(t *testing.T) {
	reg := NewRegistry(Tools{})
	require.NoError(t, reg.Register("resnet50", newDownloadModel))
	require.NoError(t, reg.Register("gpt2", newExportDecoder))
	require.NoError(t, reg.Register("bert", newExportDecoder))

	assert.Equal(t, []string{"bert", "gpt2", "resnet50"}, reg.Names())
}

func TestRegistry_DecoderWithoutDecodeStep(t *testing.T) {
	reg := NewRegistry(Tools{})
	require.NoError(t, reg.Register("stepless", newStepless))

	m, err := reg.New("stepless", Options{ID: "https://example.com/model.onnx"})

	assert.ErrorIs(t, err, ErrIncompleteDecoder)
	assert.Nil(t, m)
}

func TestRegistry_DecoderIsDecoder(t *testing.T) {
	reg := NewRegistry(Tools{})
	require.NoError(t, reg.Register("gpt2", newExportDecoder))

	m, err := reg.New("gpt2", Options{ID: "gpt2"})
	require.NoError(t, err)

	_, ok := m.(Decoder)
	assert.True(t, ok)
}
