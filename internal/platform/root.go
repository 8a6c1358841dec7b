package platform

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/kana/pkg/adapters/fs"
)

// FindRoot looks upwards from startDir for an archive root, i.e. a
// directory holding an "info" directory or a ".kana" marker.
// It returns the absolute path of the root.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if hasDir(dir, fs.InfoDir) || hasFile(dir, fs.SystemDir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("archive root not found from %s", startDir)
}

func hasFile(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}

func hasDir(dir, name string) bool {
	info, err := os.Stat(filepath.Join(dir, name))
	return err == nil && info.IsDir()
}
