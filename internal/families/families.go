// Package families holds the concrete model families known to samplegen.
package families

import (
	"errors"

	"github.com/ekisa-team/samplegen/internal/model"
)

// Register adds every built-in family to reg.
func Register(reg *model.Registry) error {
	return errors.Join(
		reg.Register(ResNet50Name, NewResNet50),
		reg.Register(BERTName, NewBERT),
		reg.Register(GPT2Name, NewGPT2),
	)
}

// tokenIDs reads the int64 token ids of a text sample.
func tokenIDs(sample model.Sample) ([]int64, error) {
	ids, ok := lookupInt64s(sample, "input_ids")
	if !ok || len(ids) == 0 {
		return nil, missing("input_ids")
	}
	return ids, nil
}

func filled(n int, v int64) []int64 {
	s := make([]int64, n)
	for i := range s {
		s[i] = v
	}
	return s
}

var (
	_ model.Model = (*ResNet50)(nil)
	_ model.Model = (*BERT)(nil)
)
