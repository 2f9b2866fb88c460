package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "samplegen"

// DefaultConfigPath returns the default samplegen config directory.
func DefaultConfigPath() string {
	return platformDir("XDG_CONFIG_HOME", ".config",
		filepath.Join("AppData", "Roaming"),
		filepath.Join("Library", "Application Support"),
		"config",
	)
}

// DefaultConfigFile returns the default config file path.
func DefaultConfigFile() string {
	return filepath.Join(DefaultConfigPath(), "config.yaml")
}

// DefaultModelsPath returns the default directory artifacts are fetched into.
func DefaultModelsPath() string {
	return filepath.Join(platformDir("XDG_CACHE_HOME", ".cache",
		filepath.Join("AppData", "Local"),
		filepath.Join("Library", "Caches"),
		"",
	), "models")
}

// platformDir resolves the per-user application directory for the current OS.
// fallback is used under ./samplegen when the home directory is unknown.
func platformDir(xdgEnv, xdgDefault, windows, darwin, fallback string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", appName, fallback)
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, windows, appName)
	case "darwin":
		return filepath.Join(home, darwin, appName)
	default: // Linux, BSD, etc.
		if xdg := os.Getenv(xdgEnv); xdg != "" {
			return filepath.Join(xdg, appName)
		}
		return filepath.Join(home, xdgDefault, appName)
	}
}
