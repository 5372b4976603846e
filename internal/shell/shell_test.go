package shell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/student-records/internal/config"
	"github.com/handiism/student-records/internal/model"
	"github.com/handiism/student-records/internal/store"
)

func runShell(t *testing.T, st *store.Store, input string) string {
	t.Helper()
	settings := config.DefaultSettings()
	settings.PauseAfterOperation = false

	var out bytes.Buffer
	sh, err := New(st, settings, strings.NewReader(input), &out, nil)
	require.NoError(t, err)
	require.NoError(t, sh.Run(context.Background()))
	return out.String()
}

func lines(parts ...string) string {
	return strings.Join(parts, "\n") + "\n"
}

func TestShell_WelcomeMenuExit(t *testing.T) {
	out := runShell(t, store.New(nil), "7\n")

	assert.True(t, strings.HasPrefix(out, "\nWelcome to Smart Student Record System!\n"))
	assert.Contains(t, out, "\nMenu:\n1. Add Student Record\n2. View All Student Records\n")
	assert.Contains(t, out, "7. Exit\nChoose an option: ")
	assert.True(t, strings.HasSuffix(out, "Exiting the program. Goodbye!\n"))
}

func TestShell_InvalidChoices(t *testing.T) {
	out := runShell(t, store.New(nil), lines("abc", "9", "0", " 7 "))

	assert.Equal(t, 1, strings.Count(out, MsgInvalidInput))
	assert.Equal(t, 2, strings.Count(out, MsgInvalidMenu))
	assert.Contains(t, out, MsgGoodbye)
}

func TestShell_EOFExits(t *testing.T) {
	st := store.New(nil)
	out := runShell(t, st, lines("1", "S1", "Ann", "Math"))

	// input ended while asking for a mark, nothing is stored
	assert.Contains(t, out, "Enter marks for Math: ")
	assert.Equal(t, 0, st.Len())
	assert.NotContains(t, out, MsgGoodbye)
}

func TestShell_AddAndView(t *testing.T) {
	st := store.New(nil)
	out := runShell(t, st, lines(
		"1", "S1", "Ann", "Math, Eng", "abc", "-5", "101", "80", "90",
		"2",
		"7",
	))

	assert.Contains(t, out, "Enter marks for Math: ")
	assert.Contains(t, out, "Enter marks for Eng: ")
	assert.Contains(t, out, "Marks must be a whole number.")
	assert.Contains(t, out, "Marks cannot be negative.")
	assert.Contains(t, out, "Marks cannot be greater than 100.")
	assert.Contains(t, out, MsgAdded)
	assert.Contains(t, out, "85.00")

	require.Equal(t, 1, st.Len())
	s, err := st.FindByID("S1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Math", " Eng"}, s.Subjects)
	assert.Equal(t, []string{"Math", "Eng"}, s.Marks.Subjects())
}

func TestShell_DuplicateIDStopsBeforeName(t *testing.T) {
	st := store.New(nil)
	out := runShell(t, st, lines(
		"1", "S1", "Ann", "Math", "80",
		"1", "S1",
		"7",
	))

	assert.Contains(t, out, "Enter Student ID: Error: Student ID must be unique.\n")
	assert.Equal(t, 1, strings.Count(out, promptName))
	assert.Equal(t, 1, st.Len())
}

func TestShell_EmptyStore(t *testing.T) {
	out := runShell(t, store.New(nil), lines("2", "3", "S9", "4", "7"))

	assert.Contains(t, out, "No student records found.")
	assert.Contains(t, out, "Student not found.")
	assert.Contains(t, out, "No student records to analyze.")
}

func TestShell_Top(t *testing.T) {
	st := store.New(nil)
	out := runShell(t, st, lines(
		"1", "S1", "Ann", "Math", "70",
		"1", "S2", "Bob", "Math", "85",
		"1", "S3", "Cid", "Math", "85",
		"4",
		"7",
	))

	idx := strings.Index(out, MsgTopHeader)
	require.NotEqual(t, -1, idx)
	table := out[idx:]
	assert.Contains(t, table, "S2")
	assert.Contains(t, table, "S3")
	assert.NotContains(t, table, "S1")
	assert.Less(t, strings.Index(table, "S2"), strings.Index(table, "S3"))
}

func TestShell_SaveLoad(t *testing.T) {
	t.Chdir(t.TempDir())

	st := store.New(nil)
	out := runShell(t, st, lines(
		"1", "S1", "Ann", "Math", "80",
		"5", "  class.json  ",
		"5", "class.txt",
		"6", "missing.json",
		"6", "class.json",
		"7",
	))

	assert.Contains(t, out, "Records successfully saved to class.json.")
	assert.Contains(t, out, "Error: Filename must end with '.json' and can not be empty.")
	assert.Contains(t, out, "Error loading from file: open missing.json: ")
	assert.Contains(t, out, "Records successfully loaded from class.json.")

	_, err := os.Stat(filepath.Join(".", "class.json"))
	assert.NoError(t, err)
	assert.Equal(t, 1, st.Len())
}

func TestShell_Pause(t *testing.T) {
	var out bytes.Buffer
	sh, err := New(store.New(nil), config.DefaultSettings(), strings.NewReader(lines("2", "", "7")), &out, nil)
	require.NoError(t, err)
	require.NoError(t, sh.Run(context.Background()))

	assert.Equal(t, 1, strings.Count(out.String(), promptPause))
}

func TestShell_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sh, err := New(store.New(nil), nil, strings.NewReader("7\n"), &bytes.Buffer{}, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, sh.Run(ctx), context.Canceled)
}

func TestNew_BadBorder(t *testing.T) {
	settings := config.DefaultSettings()
	settings.TableBorder = "dotted"
	_, err := New(store.New(nil), settings, strings.NewReader(""), &bytes.Buffer{}, nil)
	assert.Error(t, err)
}

func TestFailure(t *testing.T) {
	tests := []struct {
		name  string
		op    Op
		err   error
		want  string
		level Level
	}{
		{"duplicate", OpAdd, &store.OpError{Op: "add", Err: store.ErrDuplicateID}, "Error: Student ID must be unique.", LevelError},
		{"not found", OpSearch, &store.OpError{Op: "find", Err: store.ErrNotFound}, "Student not found.", LevelWarning},
		{"view empty", OpView, store.ErrNoRecords, "No student records found.", LevelWarning},
		{"top empty", OpTop, store.ErrNoRecords, "No student records to analyze.", LevelWarning},
		{"file name", OpLoad, store.ErrInvalidFileName, "Error: Filename must end with '.json' and can not be empty.", LevelError},
		{"save", OpSave, &store.OpError{Op: "save", Path: "x.json", Err: errors.New("disk full")}, "Error saving to file: disk full", LevelError},
		{"load", OpLoad, &store.OpError{Op: "load", Path: "x.json", Err: errors.New("bad data")}, "Error loading from file: bad data", LevelError},
		{"other", OpAdd, errors.New("boom"), "Error: boom", LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Failure(tt.op, tt.err)
			assert.Equal(t, tt.want, got.Message)
			assert.Equal(t, tt.level, got.Level)
		})
	}
}

func TestMarkRejected(t *testing.T) {
	_, err := model.ParseMark("seven")
	assert.Equal(t, "Marks must be a whole number.", MarkRejected(err))
	assert.Equal(t, "Marks cannot be negative.", MarkRejected(model.ErrNegativeMark))
	assert.Equal(t, "Marks cannot be greater than 100.", MarkRejected(model.ErrMarkTooHigh))
}
