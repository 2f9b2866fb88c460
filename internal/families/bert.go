package families

import "github.com/ekisa-team/samplegen/internal/model"

const (
	// BERTName is the registered family name.
	BERTName = "bert"

	// BERTID is the hub model exported on demand.
	BERTID = "google-bert/bert-base-uncased"

	bertTask = "fill-mask"
)

// BERT is an encoder exported from the hub.
type BERT struct {
	model.Base
	model.OptimumExport
}

// NewBERT is the bert factory.
func NewBERT(opts model.Options, tools model.Tools) model.Model {
	id := opts.ID
	if id == "" {
		id = BERTID
	}
	task := opts.Task
	if task == "" {
		task = bertTask
	}

	return &BERT{
		Base:          model.NewBase(id, task),
		OptimumExport: model.NewOptimumExport(id, task, tools.Exporter),
	}
}

// Name returns the family name.
func (*BERT) Name() string {
	return BERTName
}

// Preprocess expands token ids into the three encoder inputs.
func (*BERT) Preprocess(sample model.Sample) (model.Inputs, error) {
	ids, err := tokenIDs(sample)
	if err != nil {
		return nil, err
	}

	return model.Inputs{
		"input_ids":      ids,
		"attention_mask": filled(len(ids), 1),
		"token_type_ids": filled(len(ids), 0),
	}, nil
}
