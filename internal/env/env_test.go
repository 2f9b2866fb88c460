package env

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ekisa-team/samplegen/internal/envvar"
)

func TestParse(t *testing.T) {
	tests := map[string]Environment{
		"":            Development,
		"dev":         Development,
		"prod":        Production,
		" Production": Production,
		"staging":     Development,
	}

	for in, want := range tests {
		assert.Equal(t, want, Parse(in), "input %q", in)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(envvar.SamplegenEnv, "production")
	assert.True(t, FromEnv().IsProduction())

	t.Setenv(envvar.SamplegenEnv, "")
	assert.False(t, FromEnv().IsProduction())
}
