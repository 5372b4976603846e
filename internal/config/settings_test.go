package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, "students.json", s.DataFile)
	assert.True(t, s.PauseAfterOperation)
	assert.Equal(t, 4, s.ExportConcurrency)
	assert.NoError(t, s.Validate())
}

func TestLoad_MissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, "normal", s.TableBorder)
}

func TestLoad_Formats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"json", "records.json", `{"data_file": "class.json", "table_border": "rounded"}`},
		{"yaml", "records.yaml", "data_file: class.json\ntable_border: rounded\n"},
		{"yml", "records.yml", "data_file: class.json\ntable_border: rounded\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Load(writeFile(t, tt.file, tt.content))
			require.NoError(t, err)
			assert.Equal(t, "class.json", s.DataFile)
			assert.Equal(t, "rounded", s.TableBorder)
			// untouched keys keep defaults
			assert.Equal(t, "info", s.LogLevel)
		})
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", `{"data_file": `},
		{"border", `{"table_border": "dotted"}`},
		{"data file", `{"data_file": "class.txt"}`},
		{"concurrency", `{"export_concurrency": 0}`},
		{"level", `{"log_level": "loud"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "records.json", tt.content))
			assert.Error(t, err)
		})
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	for _, name := range []string{"nested/records.json", "nested/records.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			want := DefaultSettings()
			want.AutoLoad = true
			want.LogFile = "records.log"
			want.ExportConcurrency = 2

			require.NoError(t, want.Save(path))
			got, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvDataFile, "term2.json")
	t.Setenv(EnvAutoLoad, "true")
	t.Setenv(EnvLogLevel, "DEBUG")
	t.Setenv(EnvTableBorder, "Double")

	s := DefaultSettings()
	require.NoError(t, s.ApplyEnv())
	assert.Equal(t, "term2.json", s.DataFile)
	assert.True(t, s.AutoLoad)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, "double", s.TableBorder)
}

func TestApplyEnv_Invalid(t *testing.T) {
	t.Run("bool", func(t *testing.T) {
		t.Setenv(EnvAutoLoad, "sometimes")
		assert.Error(t, DefaultSettings().ApplyEnv())
	})
	t.Run("border", func(t *testing.T) {
		t.Setenv(EnvTableBorder, "dotted")
		assert.Error(t, DefaultSettings().ApplyEnv())
	})
}

func TestResolve(t *testing.T) {
	path := writeFile(t, "records.yaml", "data_file: file.json\nauto_load: true\n")
	t.Setenv(EnvDataFile, "env.json")

	s, err := Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, "env.json", s.DataFile, "environment should win")
	assert.True(t, s.AutoLoad, "AutoLoad from file was lost")

	s, err = Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "env.json", s.DataFile)
	assert.False(t, s.AutoLoad)
}
