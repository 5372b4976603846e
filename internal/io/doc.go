// Package ioutils provides file system utilities.
//
// This package contains functions for:
//   - Reading and writing whole files
//   - Checking file name extensions
//   - Directory creation
//
// # File Operations
//
//	// Write data to file
//	err := ioutils.WriteFile(ctx, "/path/to/students.json", data)
//
//	// Read it back
//	data, err := ioutils.ReadFile(ctx, "/path/to/students.json")
//
//	// Ensure the parent directory of an export target exists
//	err := ioutils.EnsureParentDir("/reports/2025/class.xlsx")
//
// # File Names
//
//	ioutils.HasExtension("students.json", ".json") // true
//	ioutils.HasExtension(".json", ".json")         // false, no base name
package ioutils
