package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigFileName is the file FindConfig looks for.
const ConfigFileName = "memedir.yaml"

// FindConfig recursively looks upwards from startDir for a memedir.yaml.
// If found, returns its absolute path.
func FindConfig(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if hasFile(dir, ConfigFileName) {
			return filepath.Join(dir, ConfigFileName), nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("%s not found", ConfigFileName)
}

func hasFile(dir, name string) bool {
	info, err := os.Stat(filepath.Join(dir, name))
	return err == nil && !info.IsDir()
}
