package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekisa-team/samplegen/internal/families"
	"github.com/ekisa-team/samplegen/internal/model"
)

func TestRenderFamilies(t *testing.T) {
	reg := model.NewRegistry(model.Tools{})
	require.NoError(t, families.Register(reg))

	var buf bytes.Buffer
	renderFamilies(&buf, reg)

	out := buf.String()
	assert.Contains(t, out, "FAMILY")
	assert.Contains(t, out, families.GPT2ID)
	assert.Contains(t, out, "fill-mask")
	assert.Contains(t, out, "resnet50")
}

func TestRenderInstances(t *testing.T) {
	m := families.NewBERT(model.Options{}, model.Tools{})

	ready := model.NewInstance("bert", m)
	ready.SetReady("/models/bert/model.onnx")

	failed := model.NewInstance("bert-large", m)
	failed.SetError(errors.New("exit status 1"))

	var buf bytes.Buffer
	renderInstances(&buf, []*model.Instance{ready, failed})

	out := buf.String()
	assert.Contains(t, out, "/models/bert/model.onnx")
	assert.Contains(t, out, "ready")
	assert.Contains(t, out, "failed: exit status 1")
}
