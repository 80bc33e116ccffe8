package infra

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileSystemManager resolves and prepares local paths.
type FileSystemManager struct {
	homeDir string
}

// NewFileSystemManager creates a new filesystem manager.
func NewFileSystemManager() *FileSystemManager {
	home, _ := os.UserHomeDir()
	return &FileSystemManager{homeDir: home}
}

// NewFileSystemManagerWithHome creates a filesystem manager with custom home (for testing).
func NewFileSystemManagerWithHome(home string) *FileSystemManager {
	return &FileSystemManager{homeDir: home}
}

// Exists checks if a path exists.
func (fm *FileSystemManager) Exists(path string) bool {
	_, err := os.Stat(fm.ExpandHome(path))
	return err == nil
}

// EnsureParentDir creates the directory that will hold path.
func (fm *FileSystemManager) EnsureParentDir(path string) error {
	dir := filepath.Dir(fm.ExpandHome(path))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// ExpandHome expands ~ to the user's home directory.
func (fm *FileSystemManager) ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(fm.homeDir, path[2:])
	}
	if path == "~" {
		return fm.homeDir
	}
	return path
}
