package env

import (
	"os"
	"strings"

	"github.com/ekisa-team/samplegen/internal/envvar"
)

// Environment is the runtime environment the binary runs in.
type Environment string

const (
	// Development enables human-friendly console output and debug logging.
	Development Environment = "development"

	// Production enables structured JSON output.
	Production Environment = "production"
)

// FromEnv reads the environment from SAMPLEGEN_ENV, defaulting to Development.
func FromEnv() Environment {
	return Parse(os.Getenv(envvar.SamplegenEnv))
}

// Parse converts a raw value into an Environment.
func Parse(value string) Environment {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "prod", "production":
		return Production
	default:
		return Development
	}
}

// IsProduction reports whether e is Production.
func (e Environment) IsProduction() bool {
	return e == Production
}
