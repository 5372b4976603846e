package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	ioutils "github.com/handiism/student-records/internal/io"
)

// Environment variables that override file settings.
const (
	EnvDataFile    = "RECORDS_DATA_FILE"
	EnvAutoLoad    = "RECORDS_AUTO_LOAD"
	EnvLogFile     = "RECORDS_LOG_FILE"
	EnvLogLevel    = "RECORDS_LOG_LEVEL"
	EnvTableBorder = "RECORDS_TABLE_BORDER"
)

var validate = validator.New()

// Settings holds all configuration options.
type Settings struct {
	// Records file
	DataFile string `json:"data_file" yaml:"data_file" validate:"omitempty,endswith=.json,min=6"`
	AutoLoad bool   `json:"auto_load" yaml:"auto_load"`

	// Shell behaviour
	PauseAfterOperation bool   `json:"pause_after_operation" yaml:"pause_after_operation"`
	TableBorder         string `json:"table_border" yaml:"table_border" validate:"oneof=normal rounded thick double ascii markdown"`

	// Exports
	ExportConcurrency int `json:"export_concurrency" yaml:"export_concurrency" validate:"min=1,max=16"`

	// Logging
	LogFile  string `json:"log_file" yaml:"log_file"`
	LogLevel string `json:"log_level" yaml:"log_level" validate:"oneof=debug info warn error"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		DataFile: "students.json",
		AutoLoad: false,

		PauseAfterOperation: true,
		TableBorder:         "normal",

		ExportConcurrency: 4,

		LogLevel: "info",
	}
}

// Load reads settings from a JSON or YAML file, chosen by extension
// (.yaml/.yml is YAML, anything else JSON). Missing keys keep their defaults.
// A missing file yields the defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if isYAML(path) {
		err = yaml.Unmarshal(data, settings)
	} else {
		err = json.Unmarshal(data, settings)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return settings, nil
}

// Resolve returns the effective settings: the file at path (defaults when
// path is empty) with environment overrides applied.
func Resolve(path string) (*Settings, error) {
	settings := DefaultSettings()
	if path != "" {
		var err error
		if settings, err = Load(path); err != nil {
			return nil, err
		}
	}
	if err := settings.ApplyEnv(); err != nil {
		return nil, err
	}
	return settings, nil
}

// Save writes settings to a JSON or YAML file, chosen by extension.
func (s *Settings) Save(path string) error {
	if err := ioutils.EnsureParentDir(path); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(s)
	} else {
		data, err = json.MarshalIndent(s, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides settings from RECORDS_* environment variables.
// Unset or empty variables are ignored.
func (s *Settings) ApplyEnv() error {
	if v := os.Getenv(EnvDataFile); v != "" {
		s.DataFile = v
	}
	if v := os.Getenv(EnvAutoLoad); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvAutoLoad, err)
		}
		s.AutoLoad = b
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		s.LogFile = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		s.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv(EnvTableBorder); v != "" {
		s.TableBorder = strings.ToLower(v)
	}
	return s.Validate()
}

// Validate checks field constraints.
func (s *Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func formatValidationError(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", field, e.Param()))
		case "endswith":
			msgs = append(msgs, fmt.Sprintf("%s must end with %s", field, e.Param()))
		case "min", "max":
			msgs = append(msgs, fmt.Sprintf("%s is out of range (%s %s)", field, e.Tag(), e.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", field))
		}
	}
	return fmt.Errorf("invalid settings: %s", strings.Join(msgs, "; "))
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
