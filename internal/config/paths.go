package config

import (
	"os"
	"path/filepath"
	"strings"
)

const envConfigDir = "LIVEREQ_CONFIG_DIR"

// Dir resolves the configuration directory. LIVEREQ_CONFIG_DIR wins,
// then the user config dir, then a dot directory in the working dir.
func Dir() string {
	if dir := strings.TrimSpace(os.Getenv(envConfigDir)); dir != "" {
		return dir
	}
	if base, err := os.UserConfigDir(); err == nil && base != "" {
		return filepath.Join(base, "livereq")
	}
	return ".livereq"
}

func LogPath() string {
	return filepath.Join(Dir(), "livereq.log")
}
