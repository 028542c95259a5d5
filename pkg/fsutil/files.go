package fsutil

import (
	"fmt"
	"os"
)

// DirPermissions is the default permission set for created directories.
const DirPermissions = 0o755

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// DirExists reports whether path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// EnsureDir creates the directory (and any parents) if it does not exist yet.
func EnsureDir(path string) error {
	if path == "" {
		return fmt.Errorf("directory path cannot be empty")
	}
	if err := os.MkdirAll(path, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}
