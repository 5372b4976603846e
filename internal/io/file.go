// Package ioutils provides file system utilities for student-records.
//
// All functions that accept a context.Context check it before touching the
// file system, though the file operations themselves are not interruptible.
package ioutils

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// ReadFile reads the whole file at path.
//
// Returns ctx.Err() without opening the file if the context is already done.
func ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

// WriteFile writes data to a file, creating it if necessary.
//
// The file is created with mode 0644. If the file already exists,
// it is truncated before writing.
//
// Example:
//
//	err := WriteFile(ctx, "students.json", data)
func WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// HasExtension reports whether name ends with ext and has at least one
// character before it.
//
// Example:
//
//	HasExtension("data.json", ".json") // true
//	HasExtension("json", ".json")      // false
//	HasExtension(".json", ".json")     // false
func HasExtension(name, ext string) bool {
	return strings.HasSuffix(name, ext) && len(name) > len(ext)
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// EnsureParentDir creates the directory that will hold the file at path.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return EnsureDir(dir)
}
