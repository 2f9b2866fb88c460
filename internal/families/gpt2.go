package families

import (
	"fmt"
	"slices"

	"github.com/ekisa-team/samplegen/internal/model"
	"github.com/ekisa-team/samplegen/mapsafe"
)

const (
	// GPT2Name is the registered family name.
	GPT2Name = "gpt2"

	// GPT2ID is the hub model exported on demand.
	GPT2ID = "openai-community/gpt2"

	// GPT2VocabSize is the number of logits per position.
	GPT2VocabSize = 50257

	gpt2Task = "text-generation"
)

// GPT2 is a decoder exported from the hub and run one token at a time.
type GPT2 struct {
	model.DecoderBase
	model.OptimumExport

	vocabSize int
}

// NewGPT2 is the gpt2 factory.
func NewGPT2(opts model.Options, tools model.Tools) model.Model {
	id := opts.ID
	if id == "" {
		id = GPT2ID
	}
	task := opts.Task
	if task == "" {
		task = gpt2Task
	}

	return &GPT2{
		DecoderBase:   model.NewDecoderBase(id, task),
		OptimumExport: model.NewOptimumExport(id, task, tools.Exporter),
		vocabSize:     GPT2VocabSize,
	}
}

// Name returns the family name.
func (*GPT2) Name() string {
	return GPT2Name
}

// Preprocess builds the prompt inputs.
func (*GPT2) Preprocess(sample model.Sample) (model.Inputs, error) {
	ids, err := tokenIDs(sample)
	if err != nil {
		return nil, err
	}

	return model.Inputs{
		"input_ids":      ids,
		"attention_mask": filled(len(ids), 1),
	}, nil
}

// DecodeStep appends the greedy next token, read from the last position of
// the flattened [seq, vocab] "logits" output, to the inputs.
func (g *GPT2) DecodeStep(inputs model.Inputs, outputs model.Outputs) (model.Inputs, error) {
	ids, ok := lookupInt64s(inputs, "input_ids")
	if !ok || len(ids) == 0 {
		return nil, missing("input_ids")
	}

	logits, ok := mapsafe.Lookup[[]float32](outputs, "logits")
	if !ok {
		return nil, missing("logits")
	}
	if len(logits) < g.vocabSize || len(logits)%g.vocabSize != 0 {
		return nil, fmt.Errorf("logits length %d is not a multiple of vocab size %d", len(logits), g.vocabSize)
	}

	last := logits[len(logits)-g.vocabSize:]
	next := int64(0)
	for i, v := range last {
		if v > last[next] {
			next = int64(i)
		}
	}

	ids = append(slices.Clone(ids), next)
	return model.Inputs{
		"input_ids":      ids,
		"attention_mask": filled(len(ids), 1),
	}, nil
}

var _ model.Decoder = (*GPT2)(nil)
