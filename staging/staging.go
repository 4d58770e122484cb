package staging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	// DirName is the staging directory created next to the project file.
	DirName = ".rendering"

	// MaxNameLength is the longest accepted file name in bytes.
	MaxNameLength = 255

	dirPerm = 0o755
)

// ValidateName checks that filename is a single safe path element.
func ValidateName(filename string) error {
	if filename == "" || filename == "." {
		return fmt.Errorf("%w: %q", ErrInvalidName, filename)
	}
	if len(filename) > MaxNameLength {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrNameTooLong, len(filename), MaxNameLength)
	}

	// Check for path traversal indicators
	if filename == ".." || strings.Contains(filename, "..") {
		return fmt.Errorf("%w: %q", ErrDirectoryTraversal, filename)
	}
	if strings.ContainsAny(filename, `/\`) || strings.ContainsRune(filename, filepath.Separator) {
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, filename)
	}
	if strings.ContainsRune(filename, 0) {
		return fmt.Errorf("%w: %q contains a NUL byte", ErrInvalidName, filename)
	}
	return nil
}

// Dir returns the staging directory for the project file at projectPath.
func Dir(projectPath string) string {
	return filepath.Join(filepath.Dir(projectPath), DirName)
}

// Resolve returns <dir(projectPath)>/.rendering/<filename>, creating the
// staging directory and any missing ancestors.
func Resolve(projectPath, filename string) (string, error) {
	if err := ValidateName(filename); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "Resolve",
			"filename": filename,
			"error":    err.Error(),
		}).Error("File name validation failed")
		return "", err
	}

	dir := Dir(projectPath)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return "", fmt.Errorf("create staging directory: %w", err)
	}

	path := filepath.Join(dir, filename)

	logrus.WithFields(logrus.Fields{
		"function": "Resolve",
		"dir":      dir,
		"path":     path,
	}).Debug("Resolved staging path")

	return path, nil
}

// Clean removes the staging directory of projectPath and everything in it.
// A missing directory is not an error.
func Clean(projectPath string) error {
	dir := Dir(projectPath)
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("clean staging directory: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"function": "Clean",
		"dir":      dir,
	}).Info("Removed staging directory")

	return nil
}
