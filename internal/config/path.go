package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath resolves a configured file path: a leading ~ becomes the
// user's home directory, then $VAR references are expanded. The path is
// returned unchanged when the home directory cannot be determined.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			if path == "~" {
				path = home
			} else {
				path = filepath.Join(home, path[2:])
			}
		}
	}

	return os.ExpandEnv(path)
}
