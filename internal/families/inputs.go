package families

import (
	"fmt"

	"github.com/ekisa-team/samplegen/internal/model"
	"github.com/ekisa-team/samplegen/mapsafe"
)

func missing(name string) error {
	return fmt.Errorf("%w: %s", model.ErrMissingInput, name)
}

// lookupInt64s accepts []int64 or []int, the latter being what JSON-ish callers build.
func lookupInt64s(m map[string]any, key string) ([]int64, bool) {
	if ids, ok := mapsafe.Lookup[[]int64](m, key); ok {
		return ids, true
	}

	ints, ok := mapsafe.Lookup[[]int](m, key)
	if !ok {
		return nil, false
	}

	ids := make([]int64, len(ints))
	for i, v := range ints {
		ids[i] = int64(v)
	}
	return ids, true
}
