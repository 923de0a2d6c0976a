package storage

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	flowerrors "taskflow/internal/errors"
)

// FindProjectRoot walks up from cwd looking for a .git directory.
// Returns the directory containing .git, or an error if not found.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := cwd
	for {
		gitPath := filepath.Join(dir, ".git")
		info, err := os.Stat(gitPath)
		if err == nil && info.IsDir() {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root without finding .git
			return "", flowerrors.NotInRepoError{}
		}
		dir = parent
	}
}

// SanitizePath converts an absolute path to a safe directory name.
// "/Users/alice/myproject" -> "Users-alice-myproject"
func SanitizePath(path string) string {
	result := strings.TrimPrefix(path, "/")

	re := regexp.MustCompile(`[^a-zA-Z0-9]+`)
	result = re.ReplaceAllString(result, "-")

	return strings.Trim(result, "-")
}
