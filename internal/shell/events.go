package shell

import (
	"errors"
	"fmt"

	"github.com/handiism/student-records/internal/model"
	"github.com/handiism/student-records/internal/store"
)

// Level indicates the severity of an operator message.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

// Event is a message for the operator.
type Event struct {
	Message string
	Level   Level
}

// Op identifies a menu operation.
type Op int

const (
	OpAdd Op = iota + 1
	OpView
	OpSearch
	OpTop
	OpSave
	OpLoad
	OpExit
)

// Menu entries, in order. Entry i is chosen with i+1.
var menuItems = []string{
	"Add Student Record",
	"View All Student Records",
	"Search Student by ID",
	"View Top-Performing Student(s)",
	"Save Records to File",
	"Load Records from File",
	"Exit",
}

// MenuItems returns the menu labels in order.
func MenuItems() []string {
	items := make([]string, len(menuItems))
	copy(items, menuItems)
	return items
}

// Operator messages.
const (
	MsgWelcome      = "\nWelcome to Smart Student Record System!"
	MsgAdded        = "Student added successfully!"
	MsgTopHeader    = "Top Performing Student(s):"
	MsgGoodbye      = "Exiting the program. Goodbye!"
	MsgInvalidInput = "Please enter a valid number."
	MsgInvalidMenu  = "Invalid choice, please try again."

	msgDuplicateID  = "Error: Student ID must be unique."
	msgNotFound     = "Student not found."
	msgNoRecords    = "No student records found."
	msgNothingToTop = "No student records to analyze."
	msgBadFileName  = "Error: Filename must end with '.json' and can not be empty."
)

// Saved reports a successful save.
func Saved(path string) Event {
	return Event{Message: fmt.Sprintf("Records successfully saved to %s.", path), Level: LevelSuccess}
}

// Loaded reports a successful load.
func Loaded(path string) Event {
	return Event{Message: fmt.Sprintf("Records successfully loaded from %s.", path), Level: LevelSuccess}
}

// Failure describes an error returned by a store operation.
// Not-found errors are warnings; everything else is an error.
func Failure(op Op, err error) Event {
	level := LevelError
	if store.KindOf(err) == store.KindNotFound {
		level = LevelWarning
	}

	switch {
	case errors.Is(err, store.ErrInvalidFileName):
		return Event{Message: msgBadFileName, Level: level}
	case errors.Is(err, store.ErrDuplicateID):
		return Event{Message: msgDuplicateID, Level: level}
	case errors.Is(err, store.ErrNotFound):
		return Event{Message: msgNotFound, Level: level}
	case errors.Is(err, store.ErrNoRecords):
		if op == OpTop {
			return Event{Message: msgNothingToTop, Level: level}
		}
		return Event{Message: msgNoRecords, Level: level}
	}

	cause := store.Cause(err)
	switch op {
	case OpSave:
		return Event{Message: "Error saving to file: " + cause.Error(), Level: level}
	case OpLoad:
		return Event{Message: "Error loading from file: " + cause.Error(), Level: level}
	default:
		return Event{Message: "Error: " + cause.Error(), Level: level}
	}
}

// MarkRejected explains why a mark was not accepted.
func MarkRejected(err error) string {
	switch {
	case errors.Is(err, model.ErrNegativeMark):
		return "Marks cannot be negative."
	case errors.Is(err, model.ErrMarkTooHigh):
		return "Marks cannot be greater than 100."
	case errors.Is(err, model.ErrMarkNotInteger):
		return "Marks must be a whole number."
	default:
		return "Error: " + err.Error()
	}
}
