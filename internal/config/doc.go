// Package config provides configuration management for student-records.
//
// This package handles:
//   - Loading and saving settings from JSON or YAML files
//   - Default configuration values
//   - Overrides from RECORDS_* environment variables
//   - Validation of the resulting values
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Save/load prompts offer students.json
//	// The shell pauses after every operation
//	// Tables use a normal border
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/records.yaml")
//	if err != nil {
//	    // Uses defaults if file doesn't exist, errors on bad content
//	}
//
// # Environment
//
//	// RECORDS_DATA_FILE=class.json RECORDS_LOG_LEVEL=debug
//	err := settings.ApplyEnv()
//
// # Configuration Options
//
// Settings includes options for:
//   - The default records file and loading it at startup
//   - Pausing after each shell operation
//   - Table border style
//   - Export concurrency
//   - Log file and level
package config
